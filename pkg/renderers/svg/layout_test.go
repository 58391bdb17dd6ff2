package svg

import (
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-releasecycle/pkg/model"
	"github.com/goliatone/go-releasecycle/pkg/profile"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLayout_DateMapping(t *testing.T) {
	layout, err := NewLayout(profile.Default(), date(2000, 1, 1), date(2000, 1, 11))
	if err != nil {
		t.Fatalf("new layout: %v", err)
	}

	cases := []struct {
		at   time.Time
		want float64
	}{
		{date(2000, 1, 1), 126},
		{date(2000, 1, 6), 472.5},
		{date(2000, 1, 11), 819},
	}
	for _, tc := range cases {
		if got := layout.X(tc.at); got != tc.want {
			t.Errorf("X(%s): want %v, got %v", model.FormatDate(tc.at), tc.want, got)
		}
	}
	if layout.PlotStart() != 126 || layout.PlotEnd() != 819 {
		t.Fatalf("plot bounds: %v..%v", layout.PlotStart(), layout.PlotEnd())
	}
	if layout.Width() != 828 {
		t.Fatalf("width: want 828, got %v", layout.Width())
	}
	if layout.Height(11) != 351 {
		t.Fatalf("height: want 351, got %v", layout.Height(11))
	}
}

func TestLayout_YearsAndClamp(t *testing.T) {
	layout, err := NewLayout(profile.Default(), date(2019, 8, 1), date(2030, 10, 1))
	if err != nil {
		t.Fatalf("new layout: %v", err)
	}

	years := layout.Years()
	if len(years) != 12 || years[0] != 2019 || years[11] != 2030 {
		t.Fatalf("unexpected years: %v", years)
	}
	if got := layout.Clamp(date(2010, 7, 3)); !got.Equal(date(2019, 8, 1)) {
		t.Fatalf("clamp low: %s", model.FormatDate(got))
	}
	if got := layout.Clamp(date(2031, 1, 1)); !got.Equal(date(2030, 10, 1)) {
		t.Fatalf("clamp high: %s", model.FormatDate(got))
	}
	if layout.Contains(date(2031, 1, 1)) || !layout.Contains(date(2026, 10, 17)) {
		t.Fatalf("contains reported wrong range membership")
	}
	if layout.YearX(2019) >= layout.PlotStart() {
		t.Fatalf("1 January 2019 should sit left of the plot area")
	}
}

func TestLayout_RejectsDegenerateRange(t *testing.T) {
	_, err := NewLayout(profile.Default(), date(2020, 1, 1), date(2020, 1, 1))
	if !errors.Is(err, model.ErrDegenerateRange) {
		t.Fatalf("expected ErrDegenerateRange, got %v", err)
	}
	if _, err := NewLayout(profile.Profile{}, date(2020, 1, 1), date(2021, 1, 1)); err == nil {
		t.Fatalf("expected error for unresolved profile")
	}
}

func TestNum(t *testing.T) {
	cases := map[float64]string{
		126:                "126",
		472.5:              "472.5",
		452.69863013698625: "452.7",
		0.004:              "0",
	}
	for in, want := range cases {
		if got := num(in); got != want {
			t.Errorf("num(%v): want %s, got %s", in, want, got)
		}
	}
}
