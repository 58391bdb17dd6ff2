package csv_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-releasecycle/pkg/model"
	"github.com/goliatone/go-releasecycle/pkg/render"
	"github.com/goliatone/go-releasecycle/pkg/renderers/csv"
	"github.com/goliatone/go-releasecycle/pkg/testsupport"
)

func renderTables(t *testing.T, r *csv.Renderer, ds model.Dataset) (string, string) {
	t.Helper()

	artifacts, err := r.Render(context.Background(), render.Request{Dataset: ds})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(artifacts) != 2 {
		t.Fatalf("expected two artifacts, got %d", len(artifacts))
	}
	return string(artifacts[0].Data), string(artifacts[1].Data)
}

func TestRenderer_MinimalDataset(t *testing.T) {
	ds := testsupport.BuildDataset(t, testsupport.FixtureMinimal, testsupport.Date(t, "2026-10-17"))
	branches, endOfLife := renderTables(t, csv.New(), ds)

	wantBranches := "Branch,Schedule,Status,First release,End of life,Release manager\n" +
		"3.13,:pep:`719`,bugfix,2024-10-07,*2029-10*,Thomas Wouters\n"
	wantEndOfLife := "Branch,Schedule,Status,First release,End of life,Release manager\n" +
		"3.7,:pep:`537`,end-of-life,2018-06-27,2023-06-27,Ned Deily\n"

	if diff := testsupport.CompareGolden(wantBranches, branches); diff != "" {
		t.Fatalf("branches mismatch (-want +got):\n%s", diff)
	}
	if diff := testsupport.CompareGolden(wantEndOfLife, endOfLife); diff != "" {
		t.Fatalf("end-of-life mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_FullDataset(t *testing.T) {
	ds := testsupport.BuildDataset(t, testsupport.FixtureReleaseCycle, testsupport.Date(t, "2026-10-17"))
	branches, endOfLife := renderTables(t, csv.New(), ds)

	branchLines := strings.Split(strings.TrimSuffix(branches, "\n"), "\n")
	if len(branchLines) != 7 {
		t.Fatalf("expected header + 6 supported branches, got %d lines", len(branchLines))
	}
	if !strings.HasPrefix(branchLines[1], "main,:pep:`745`,feature,2025-10-01,*2030-10*,") {
		t.Fatalf("newest branch should come first: %s", branchLines[1])
	}
	if !strings.HasPrefix(branchLines[6], "3.9,") {
		t.Fatalf("oldest supported branch should come last: %s", branchLines[6])
	}

	eolLines := strings.Split(strings.TrimSuffix(endOfLife, "\n"), "\n")
	if len(eolLines) != 12 {
		t.Fatalf("expected header + 11 end-of-life branches, got %d lines", len(eolLines))
	}
	if !strings.Contains(endOfLife, "3.3,:pep:`398`,end-of-life,2012-09-29,2017-09-29,\"Georg Brandl, Ned Deily (3.3.7+)\"\n") {
		t.Fatalf("fields containing commas must be quoted:\n%s", endOfLife)
	}
	if strings.Contains(branches+endOfLife, "\r") {
		t.Fatalf("expected \\n line endings only")
	}
}

func TestRenderer_Filenames(t *testing.T) {
	ds := testsupport.BuildDataset(t, testsupport.FixtureMinimal, testsupport.Date(t, "2026-10-17"))

	artifacts, err := csv.New().Render(context.Background(), render.Request{Dataset: ds})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if artifacts[0].Name != csv.DefaultBranchesFilename || artifacts[1].Name != csv.DefaultEndOfLifeFilename {
		t.Fatalf("unexpected default names: %s, %s", artifacts[0].Name, artifacts[1].Name)
	}

	artifacts, err = csv.New(csv.WithFilenames("active.csv", "")).Render(context.Background(), render.Request{Dataset: ds})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if artifacts[0].Name != "active.csv" || artifacts[1].Name != csv.DefaultEndOfLifeFilename {
		t.Fatalf("unexpected overridden names: %s, %s", artifacts[0].Name, artifacts[1].Name)
	}
}

func TestRenderer_UnknownStatusIsFatal(t *testing.T) {
	ds := testsupport.BuildDataset(t, testsupport.FixtureMinimal, testsupport.Date(t, "2026-10-17"))
	ds.Records[0].Status = model.Status("prerelease")

	_, err := csv.New().Render(context.Background(), render.Request{Dataset: ds})
	if !errors.Is(err, model.ErrUnknownStatus) || !errors.Is(err, render.ErrRender) {
		t.Fatalf("expected ErrUnknownStatus wrapped in ErrRender, got %v", err)
	}
}

func TestRenderer_EmptyDatasetWritesHeaders(t *testing.T) {
	branches, endOfLife := renderTables(t, csv.New(), model.Dataset{})
	header := strings.Join(csv.Header, ",") + "\n"
	if branches != header || endOfLife != header {
		t.Fatalf("expected header-only tables, got %q and %q", branches, endOfLife)
	}
}
