package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrEmptyView reports a view that keeps no records.
	ErrEmptyView = errors.New("model: view keeps no records")
	// ErrNoActiveRecords reports an active view over a dataset where every
	// branch is end-of-life.
	ErrNoActiveRecords = errors.New("model: no active branches")
	// ErrDegenerateRange reports a timeline whose last date is not after its
	// first date.
	ErrDegenerateRange = errors.New("model: timeline range is empty")
)

// KeepFunc decides whether a record is drawn in a view.
type KeepFunc func(VersionRecord) bool

// View selects and orders records for a diagram.
type View struct {
	// Name identifies the view in rendered ids (e.g. "all", "active").
	Name string
	// Keep filters records. Nil keeps every record.
	Keep KeepFunc
	// Pinned identifiers are always drawn, separated from the row above by an
	// empty row.
	Pinned []string
	// Start fixes the left edge of the timeline. Nil uses the earliest first
	// release among the kept records.
	Start *time.Time
}

// NewView returns a view drawing every record.
func NewView(name string) View {
	return View{Name: name}
}

// NewActiveView returns a view limited to branches that are still supported,
// plus any branch whose end of life falls after the earliest first release of a
// supported branch. The timeline starts at that first release, or at
// startOverride when it is earlier.
func NewActiveView(name string, ds Dataset, pinned []string, startOverride *time.Time) (View, error) {
	var (
		cutoff time.Time
		found  bool
	)
	for _, rec := range ds.Records {
		if rec.Status.EndOfLife() {
			continue
		}
		if !found || rec.FirstReleaseDate.Before(cutoff) {
			cutoff = rec.FirstReleaseDate
			found = true
		}
	}
	if !found {
		return View{}, fmt.Errorf("view %s: %w", name, ErrNoActiveRecords)
	}

	start := cutoff
	if startOverride != nil && startOverride.Before(start) {
		start = DateOnly(*startOverride)
	}

	return View{
		Name: name,
		Keep: func(rec VersionRecord) bool {
			return !rec.EndOfLifeDate.Before(cutoff)
		},
		Pinned: append([]string(nil), pinned...),
		Start:  &start,
	}, nil
}

// TimelineRecord is a kept record with its vertical position. Row 1 is the
// top row of bars; the year labels sit below the highest row.
type TimelineRecord struct {
	VersionRecord
	Row    int  `json:"row"`
	Pinned bool `json:"pinned"`
}

// Timeline is the result of applying a View to a Dataset.
type Timeline struct {
	Name      string           `json:"name"`
	Records   []TimelineRecord `json:"records"`
	FirstDate time.Time        `json:"first_date"`
	LastDate  time.Time        `json:"last_date"`
	// MissingPinned lists pinned identifiers absent from the dataset.
	MissingPinned []string `json:"missing_pinned,omitempty"`
}

// MaxRow returns the highest assigned row, 0 for an empty timeline.
func (t Timeline) MaxRow() int {
	highest := 0
	for _, rec := range t.Records {
		if rec.Row > highest {
			highest = rec.Row
		}
	}
	return highest
}

// Ascending returns the records oldest first.
func (t Timeline) Ascending() []TimelineRecord {
	out := make([]TimelineRecord, len(t.Records))
	for i, rec := range t.Records {
		out[len(t.Records)-1-i] = rec
	}
	return out
}

// ApplyView filters ds through v and assigns rows top-down. Records keep the
// dataset order (newest first); the newest gets the highest row so that,
// drawn top to bottom, the oldest branch appears first.
func ApplyView(ds Dataset, v View) (Timeline, error) {
	pinned := make(map[string]bool, len(v.Pinned))
	for _, id := range v.Pinned {
		if id = strings.TrimSpace(id); id != "" {
			pinned[id] = false
		}
	}

	var kept []TimelineRecord
	for _, rec := range ds.Records {
		_, isPinned := pinned[rec.Identifier]
		if isPinned {
			pinned[rec.Identifier] = true
		}
		if isPinned || v.Keep == nil || v.Keep(rec) {
			kept = append(kept, TimelineRecord{VersionRecord: rec, Pinned: isPinned})
		}
	}
	if len(kept) == 0 {
		return Timeline{}, fmt.Errorf("view %s: %w", v.Name, ErrEmptyView)
	}

	var missing []string
	for _, id := range v.Pinned {
		if seen, ok := pinned[strings.TrimSpace(id)]; ok && !seen {
			missing = append(missing, strings.TrimSpace(id))
		}
	}

	gaps := 0
	for _, rec := range kept {
		if rec.Pinned {
			gaps++
		}
	}
	row := len(kept) + gaps
	for i := range kept {
		if kept[i].Pinned {
			row--
		}
		kept[i].Row = row
		row--
	}

	first := kept[0].FirstReleaseDate
	last := kept[0].EndOfLifeDate
	for _, rec := range kept[1:] {
		if rec.FirstReleaseDate.Before(first) {
			first = rec.FirstReleaseDate
		}
		if rec.EndOfLifeDate.After(last) {
			last = rec.EndOfLifeDate
		}
	}
	if v.Start != nil {
		first = DateOnly(*v.Start)
	}
	if !last.After(first) {
		return Timeline{}, fmt.Errorf("view %s: %w: %s to %s", v.Name, ErrDegenerateRange, FormatDate(first), FormatDate(last))
	}

	return Timeline{
		Name:          v.Name,
		Records:       kept,
		FirstDate:     first,
		LastDate:      last,
		MissingPinned: missing,
	}, nil
}
