package model

import "errors"

var (
	// ErrUnknownStatus reports a status outside the closed set.
	ErrUnknownStatus = errors.New("model: unknown status")
	// ErrInvalidDate reports a date that is neither yyyy-mm-dd nor yyyy-mm.
	ErrInvalidDate = errors.New("model: invalid date")
	// ErrDateOrder reports an end of life earlier than the first release.
	ErrDateOrder = errors.New("model: end of life precedes first release")
	// ErrInvalidIdentifier reports a version key that is not a PEP 440 version.
	ErrInvalidIdentifier = errors.New("model: invalid version identifier")
	// ErrDuplicateIdentifier reports two keys naming the same version.
	ErrDuplicateIdentifier = errors.New("model: duplicate version identifier")
)
