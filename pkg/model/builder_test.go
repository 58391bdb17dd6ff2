package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-releasecycle/pkg/dataset"
	"github.com/goliatone/go-releasecycle/pkg/model"
	"github.com/goliatone/go-releasecycle/pkg/policy"
	"github.com/goliatone/go-releasecycle/pkg/testsupport"
)

func TestBuilder_SortsNewestFirst(t *testing.T) {
	ds := testsupport.BuildDataset(t, testsupport.FixtureReleaseCycle, testsupport.Date(t, "2026-10-17"))

	want := []string{
		"3.14", "3.13", "3.12", "3.11", "3.10", "3.9", "3.8", "3.7", "3.6",
		"3.5", "3.4", "3.3", "3.2", "3.1", "3.0", "2.7", "2.6",
	}
	got := make([]string, 0, ds.Len())
	for _, rec := range ds.Records {
		got = append(got, rec.Identifier)
	}
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_DerivesFields(t *testing.T) {
	today := testsupport.Date(t, "2026-10-17")
	ds := testsupport.BuildDataset(t, testsupport.FixtureReleaseCycle, today)

	if !ds.Today.Equal(today) {
		t.Fatalf("today not recorded: %v", ds.Today)
	}

	cases := []struct {
		id            string
		securityStart string
		eolDate       string
		firstFuture   bool
		eolFuture     bool
	}{
		{id: "3.14", securityStart: "2027-10-01", eolDate: "2030-10-01", firstFuture: false, eolFuture: true},
		{id: "3.13", securityStart: "2026-10-07", eolDate: "2029-10-01", firstFuture: false, eolFuture: true},
		{id: "3.12", securityStart: "2025-04-01", eolDate: "2028-10-01", firstFuture: false, eolFuture: true},
		{id: "3.10", securityStart: "2023-04-04", eolDate: "2026-10-01", firstFuture: false, eolFuture: false},
		{id: "3.8", securityStart: "2021-04-13", eolDate: "2024-10-07", firstFuture: false, eolFuture: false},
	}
	for _, tc := range cases {
		rec, ok := ds.Record(tc.id)
		if !ok {
			t.Fatalf("record %s missing", tc.id)
		}
		if got := model.FormatDate(rec.SecurityStartDate); got != tc.securityStart {
			t.Errorf("%s security start: want %s, got %s", tc.id, tc.securityStart, got)
		}
		if got := model.FormatDate(rec.EndOfLifeDate); got != tc.eolDate {
			t.Errorf("%s end of life: want %s, got %s", tc.id, tc.eolDate, got)
		}
		if rec.FirstReleaseFuture != tc.firstFuture {
			t.Errorf("%s first release future: want %v", tc.id, tc.firstFuture)
		}
		if rec.EndOfLifeFuture != tc.eolFuture {
			t.Errorf("%s end of life future: want %v", tc.id, tc.eolFuture)
		}
	}

	rec, _ := ds.Record("3.14")
	if rec.EndOfLife != "2030-10" {
		t.Fatalf("raw end of life spelling should be kept, got %q", rec.EndOfLife)
	}
}

func TestBuilder_FutureFirstRelease(t *testing.T) {
	ds := testsupport.BuildDataset(t, testsupport.FixtureReleaseCycle, testsupport.Date(t, "2025-06-01"))

	rec, _ := ds.Record("3.14")
	if !rec.FirstReleaseFuture {
		t.Fatalf("3.14 first release should be in the future on 2025-06-01")
	}
	rec, _ = ds.Record("3.13")
	if rec.FirstReleaseFuture {
		t.Fatalf("3.13 first release should be in the past on 2025-06-01")
	}
}

func TestBuilder_CustomRules(t *testing.T) {
	rules, err := policy.NewRules(1, policy.Rule{Constraint: ">= 3.12", Years: 3})
	if err != nil {
		t.Fatalf("rules: %v", err)
	}

	ds, err := model.NewBuilder(model.WithRules(rules)).Build(
		testsupport.LoadDocument(t, testsupport.FixtureMinimal),
		testsupport.Date(t, "2026-10-17"),
	)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	rec, _ := ds.Record("3.13")
	if got := model.FormatDate(rec.SecurityStartDate); got != "2027-10-07" {
		t.Fatalf("3.13 security start: want 2027-10-07, got %s", got)
	}
	rec, _ = ds.Record("3.7")
	if got := model.FormatDate(rec.SecurityStartDate); got != "2019-06-27" {
		t.Fatalf("3.7 security start: want 2019-06-27, got %s", got)
	}
}

func TestBuilder_Errors(t *testing.T) {
	record := func(status, first, eol string) string {
		return `{"branch": "x", "pep": 1, "status": "` + status + `", "first_release": "` + first +
			`", "end_of_life": "` + eol + `", "release_manager": "RM"}`
	}

	cases := []struct {
		name string
		raw  string
		want error
	}{
		{
			name: "unknown status",
			raw:  `{"3.12": ` + record("prerelease", "2023-10-02", "2028-10") + `}`,
			want: model.ErrUnknownStatus,
		},
		{
			name: "end of life before first release",
			raw:  `{"3.12": ` + record("bugfix", "2023-10-02", "2023-09") + `}`,
			want: model.ErrDateOrder,
		},
		{
			name: "impossible date",
			raw:  `{"3.12": ` + record("bugfix", "2023-02-30", "2028-10") + `}`,
			want: model.ErrInvalidDate,
		},
		{
			name: "identifier is not a version",
			raw:  `{"main": ` + record("feature", "2023-10-02", "2028-10") + `}`,
			want: model.ErrInvalidIdentifier,
		},
		{
			name: "identifiers naming the same version",
			raw: `{"3.10": ` + record("bugfix", "2021-10-04", "2026-10") +
				`, "v3.10": ` + record("bugfix", "2021-10-04", "2026-10") + `}`,
			want: model.ErrDuplicateIdentifier,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := dataset.NewDocument(dataset.SourceFromFS("case.json"), []byte(tc.raw))
			if err != nil {
				t.Fatalf("new document: %v", err)
			}
			_, err = model.NewBuilder().Build(doc, testsupport.Date(t, "2026-10-17"))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestBuilder_RequiresToday(t *testing.T) {
	doc := testsupport.LoadDocument(t, testsupport.FixtureMinimal)
	if _, err := model.NewBuilder().Build(doc, time.Time{}); err == nil {
		t.Fatalf("expected error for zero today")
	}
}

func TestBuilder_TodayIgnoresClock(t *testing.T) {
	doc := testsupport.LoadDocument(t, testsupport.FixtureMinimal)
	today := time.Date(2029, time.October, 1, 23, 59, 0, 0, time.FixedZone("X", 3600))

	ds, err := model.NewBuilder().Build(doc, today)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	rec, _ := ds.Record("3.13")
	if rec.EndOfLifeFuture {
		t.Fatalf("end of life on today's date must not be future")
	}
}
