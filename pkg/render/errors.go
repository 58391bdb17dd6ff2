package render

import (
	"errors"
	"fmt"
)

// ErrRender marks every renderer failure so callers can tell rendering errors
// apart from load or build errors.
var ErrRender = errors.New("render: failed")

// Wrap tags err with ErrRender and the renderer name. A nil err stays nil.
func Wrap(renderer string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrRender, renderer, err)
}
