package dataset

import (
	"errors"
	"fmt"
)

// ErrMalformedInput wraps every failure caused by the document itself: invalid
// JSON, duplicate keys, missing or mistyped fields.
var ErrMalformedInput = errors.New("dataset: malformed input")

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, fmt.Sprintf(format, args...))
}
