package model_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-releasecycle/pkg/model"
	"github.com/goliatone/go-releasecycle/pkg/testsupport"
)

func rowsByIdentifier(tl model.Timeline) map[string]int {
	rows := make(map[string]int, len(tl.Records))
	for _, rec := range tl.Records {
		rows[rec.Identifier] = rec.Row
	}
	return rows
}

func TestApplyView_All(t *testing.T) {
	ds := testsupport.BuildDataset(t, testsupport.FixtureReleaseCycle, testsupport.Date(t, "2026-10-17"))

	tl, err := model.ApplyView(ds, model.NewView("all"))
	if err != nil {
		t.Fatalf("apply view: %v", err)
	}

	if len(tl.Records) != ds.Len() {
		t.Fatalf("expected %d records, got %d", ds.Len(), len(tl.Records))
	}
	if tl.MaxRow() != ds.Len() {
		t.Fatalf("expected max row %d, got %d", ds.Len(), tl.MaxRow())
	}
	rows := rowsByIdentifier(tl)
	if rows["3.14"] != 17 || rows["2.6"] != 1 {
		t.Fatalf("unexpected rows: 3.14=%d 2.6=%d", rows["3.14"], rows["2.6"])
	}
	if got := model.FormatDate(tl.FirstDate); got != "2008-10-01" {
		t.Fatalf("first date: want 2008-10-01, got %s", got)
	}
	if got := model.FormatDate(tl.LastDate); got != "2030-10-01" {
		t.Fatalf("last date: want 2030-10-01, got %s", got)
	}

	asc := tl.Ascending()
	if asc[0].Identifier != "2.6" || asc[len(asc)-1].Identifier != "3.14" {
		t.Fatalf("ascending order wrong: %s..%s", asc[0].Identifier, asc[len(asc)-1].Identifier)
	}
}

func TestApplyView_ActiveWithPinnedBranch(t *testing.T) {
	ds := testsupport.BuildDataset(t, testsupport.FixtureReleaseCycle, testsupport.Date(t, "2026-10-17"))
	override := testsupport.Date(t, "2019-08-01")

	view, err := model.NewActiveView("active", ds, []string{"2.7"}, &override)
	if err != nil {
		t.Fatalf("active view: %v", err)
	}
	tl, err := model.ApplyView(ds, view)
	if err != nil {
		t.Fatalf("apply view: %v", err)
	}

	want := map[string]int{
		"3.14": 11, "3.13": 10, "3.12": 9, "3.11": 8, "3.10": 7,
		"3.9": 6, "3.8": 5, "3.7": 4, "3.6": 3, "2.7": 1,
	}
	if diff := testsupport.CompareGolden(want, rowsByIdentifier(tl)); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	for _, rec := range tl.Records {
		if rec.Pinned != (rec.Identifier == "2.7") {
			t.Fatalf("pinned flag wrong for %s", rec.Identifier)
		}
	}
	if got := model.FormatDate(tl.FirstDate); got != "2019-08-01" {
		t.Fatalf("first date: want 2019-08-01, got %s", got)
	}
	if got := model.FormatDate(tl.LastDate); got != "2030-10-01" {
		t.Fatalf("last date: want 2030-10-01, got %s", got)
	}
	if len(tl.MissingPinned) != 0 {
		t.Fatalf("unexpected missing pinned: %v", tl.MissingPinned)
	}
}

func TestApplyView_ActiveWithoutOverride(t *testing.T) {
	ds := testsupport.BuildDataset(t, testsupport.FixtureReleaseCycle, testsupport.Date(t, "2026-10-17"))
	late := testsupport.Date(t, "2024-01-01")

	view, err := model.NewActiveView("active", ds, nil, &late)
	if err != nil {
		t.Fatalf("active view: %v", err)
	}
	tl, err := model.ApplyView(ds, view)
	if err != nil {
		t.Fatalf("apply view: %v", err)
	}
	// An override later than the cutoff is ignored.
	if got := model.FormatDate(tl.FirstDate); got != "2020-10-05" {
		t.Fatalf("first date: want 2020-10-05, got %s", got)
	}
	if tl.MaxRow() != len(tl.Records) {
		t.Fatalf("no gap expected without pinned records: max row %d, records %d", tl.MaxRow(), len(tl.Records))
	}
	if _, ok := rowsByIdentifier(tl)["3.5"]; ok {
		t.Fatalf("3.5 ended before the cutoff and should be dropped")
	}
}

func TestApplyView_MissingPinned(t *testing.T) {
	ds := testsupport.BuildDataset(t, testsupport.FixtureMinimal, testsupport.Date(t, "2026-10-17"))

	tl, err := model.ApplyView(ds, model.View{Name: "all", Pinned: []string{"2.7"}})
	if err != nil {
		t.Fatalf("apply view: %v", err)
	}
	if len(tl.MissingPinned) != 1 || tl.MissingPinned[0] != "2.7" {
		t.Fatalf("expected 2.7 reported missing, got %v", tl.MissingPinned)
	}
	if tl.MaxRow() != 2 {
		t.Fatalf("expected max row 2, got %d", tl.MaxRow())
	}
}

func TestApplyView_EmptyAndDegenerate(t *testing.T) {
	ds := testsupport.BuildDataset(t, testsupport.FixtureMinimal, testsupport.Date(t, "2026-10-17"))

	none := model.View{Name: "none", Keep: func(model.VersionRecord) bool { return false }}
	if _, err := model.ApplyView(ds, none); !errors.Is(err, model.ErrEmptyView) {
		t.Fatalf("expected ErrEmptyView, got %v", err)
	}

	start := testsupport.Date(t, "2031-01-01")
	late := model.View{Name: "late", Start: &start}
	if _, err := model.ApplyView(ds, late); !errors.Is(err, model.ErrDegenerateRange) {
		t.Fatalf("expected ErrDegenerateRange, got %v", err)
	}
}

func TestNewActiveView_AllEndOfLife(t *testing.T) {
	ds := testsupport.BuildDataset(t, testsupport.FixtureMinimal, testsupport.Date(t, "2026-10-17"))
	ds.Records = ds.Records[1:]

	if _, err := model.NewActiveView("active", ds, nil, nil); !errors.Is(err, model.ErrNoActiveRecords) {
		t.Fatalf("expected ErrNoActiveRecords, got %v", err)
	}
}
