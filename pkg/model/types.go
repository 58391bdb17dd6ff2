package model

import (
	"time"

	internalmodel "github.com/goliatone/go-releasecycle/internal/model"
)

// Status re-exports the internal lifecycle status enumeration.
type Status = internalmodel.Status

const (
	StatusFeature   = internalmodel.StatusFeature
	StatusBugfix    = internalmodel.StatusBugfix
	StatusSecurity  = internalmodel.StatusSecurity
	StatusEndOfLife = internalmodel.StatusEndOfLife
)

type VersionRecord = internalmodel.VersionRecord
type Dataset = internalmodel.Dataset

const (
	DateLayout  = internalmodel.DateLayout
	MonthLayout = internalmodel.MonthLayout
)

var (
	ErrUnknownStatus       = internalmodel.ErrUnknownStatus
	ErrInvalidDate         = internalmodel.ErrInvalidDate
	ErrDateOrder           = internalmodel.ErrDateOrder
	ErrInvalidIdentifier   = internalmodel.ErrInvalidIdentifier
	ErrDuplicateIdentifier = internalmodel.ErrDuplicateIdentifier
)

// ParseStatus validates a raw status string against the closed set.
func ParseStatus(raw string) (Status, error) {
	return internalmodel.ParseStatus(raw)
}

// Statuses returns every known status in lifecycle order.
func Statuses() []Status {
	return internalmodel.Statuses()
}

// ParseDate reads yyyy-mm-dd or yyyy-mm (approximated to the first of the
// month).
func ParseDate(raw string) (time.Time, error) {
	return internalmodel.ParseDate(raw)
}

// FormatDate renders a date as yyyy-mm-dd.
func FormatDate(d time.Time) string {
	return internalmodel.FormatDate(d)
}

// DateOnly truncates t to midnight UTC.
func DateOnly(t time.Time) time.Time {
	return internalmodel.DateOnly(t)
}
