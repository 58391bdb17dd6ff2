package svg

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/goliatone/go-releasecycle/pkg/model"
	"github.com/goliatone/go-releasecycle/pkg/profile"
)

// Layout maps calendar dates and rows onto SVG user units. Every size is a
// multiple of the profile scale.
type Layout struct {
	profile   profile.Profile
	first     time.Time
	last      time.Time
	totalDays float64
}

// NewLayout prepares the date axis for [first, last].
func NewLayout(p profile.Profile, first, last time.Time) (Layout, error) {
	first, last = model.DateOnly(first), model.DateOnly(last)
	total := days(last.Sub(first))
	if total <= 0 {
		return Layout{}, fmt.Errorf("%w: %s to %s", model.ErrDegenerateRange, model.FormatDate(first), model.FormatDate(last))
	}
	if p.IsZero() {
		return Layout{}, fmt.Errorf("svg layout: profile is not resolved")
	}
	return Layout{profile: p, first: first, last: last, totalDays: total}, nil
}

// X converts a date to a horizontal coordinate:
// (L + days(d-first)/days(last-first) * (W-L-R)) * S.
func (l Layout) X(d time.Time) float64 {
	p := l.profile
	ratio := days(model.DateOnly(d).Sub(l.first)) / l.totalDays
	return (ratio*(p.DiagramWidth-p.LegendWidth-p.RightMargin) + p.LegendWidth) * p.Scale
}

// YearX is the coordinate of 1 January of year.
func (l Layout) YearX(year int) float64 {
	return l.X(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
}

// PlotStart and PlotEnd bound the bar area horizontally.
func (l Layout) PlotStart() float64 {
	return l.profile.LegendWidth * l.profile.Scale
}

func (l Layout) PlotEnd() float64 {
	return (l.profile.DiagramWidth - l.profile.RightMargin) * l.profile.Scale
}

// Width of the whole drawing.
func (l Layout) Width() float64 {
	return l.profile.DiagramWidth * l.profile.Scale
}

// Height is (maxRow + 2) line heights: one row per record plus padding and the
// year label row.
func (l Layout) Height(maxRow int) float64 {
	return float64(maxRow+2) * l.LineHeight()
}

// LineHeight is the scaled height of one row.
func (l Layout) LineHeight() float64 {
	return l.profile.LineHeight * l.profile.Scale
}

// RowCenter is the vertical centre of row.
func (l Layout) RowCenter(row int) float64 {
	return float64(row) * l.LineHeight()
}

// Clamp limits d to the visible date range.
func (l Layout) Clamp(d time.Time) time.Time {
	d = model.DateOnly(d)
	if d.Before(l.first) {
		return l.first
	}
	if d.After(l.last) {
		return l.last
	}
	return d
}

// Contains reports whether d falls inside the visible date range.
func (l Layout) Contains(d time.Time) bool {
	d = model.DateOnly(d)
	return !d.Before(l.first) && !d.After(l.last)
}

// Years lists every calendar year from first to last inclusive.
func (l Layout) Years() []int {
	out := make([]int, 0, l.last.Year()-l.first.Year()+1)
	for year := l.first.Year(); year <= l.last.Year(); year++ {
		out = append(out, year)
	}
	return out
}

func days(d time.Duration) float64 {
	return math.Round(d.Hours() / 24)
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
