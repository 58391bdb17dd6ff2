package model

import (
	"fmt"
	"strings"
)

// Status is the lifecycle phase of a branch.
type Status string

const (
	StatusFeature   Status = "feature"
	StatusBugfix    Status = "bugfix"
	StatusSecurity  Status = "security"
	StatusEndOfLife Status = "end-of-life"
)

var knownStatuses = []Status{StatusFeature, StatusBugfix, StatusSecurity, StatusEndOfLife}

// Statuses returns the closed set of statuses in lifecycle order.
func Statuses() []Status {
	return append([]Status(nil), knownStatuses...)
}

// ParseStatus validates raw against the closed status set. Unknown values are
// an input error, never mapped to a fallback.
func ParseStatus(raw string) (Status, error) {
	candidate := Status(strings.TrimSpace(raw))
	for _, s := range knownStatuses {
		if s == candidate {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
}

// EndOfLife reports whether the branch no longer receives updates.
func (s Status) EndOfLife() bool {
	return s == StatusEndOfLife
}

func (s Status) String() string {
	return string(s)
}
