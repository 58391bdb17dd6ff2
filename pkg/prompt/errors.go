package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNothingSelected is returned when a required multi-select comes back
	// empty.
	ErrNothingSelected = errors.New("prompt: nothing selected")
)
