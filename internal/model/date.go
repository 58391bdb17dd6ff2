package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the canonical yyyy-mm-dd layout.
	DateLayout = "2006-01-02"
	// MonthLayout is the truncated yyyy-mm layout accepted in input documents.
	MonthLayout = "2006-01"
)

// ParseDate reads yyyy-mm-dd or yyyy-mm. A month-only value is approximated to
// the first day of that month; this is a deliberate approximation used for
// end-of-life dates announced to the month, not an error.
func ParseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if len(value) == len(MonthLayout) {
		value += "-01"
	}
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return d, nil
}

// FormatDate renders d as yyyy-mm-dd.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
