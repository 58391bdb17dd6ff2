package loader_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-releasecycle/internal/dataset/loader"
	"github.com/goliatone/go-releasecycle/pkg/dataset"
	"github.com/goliatone/go-releasecycle/pkg/testsupport"
)

func TestLoader_LoadFile(t *testing.T) {
	path := testsupport.WriteFixture(t, t.TempDir(), testsupport.FixtureMinimal)

	l := loader.New(dataset.NewLoaderOptions())
	doc, err := l.Load(context.Background(), dataset.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", doc.Len())
	}
	if doc.Source().Kind() != dataset.SourceKindFile {
		t.Fatalf("unexpected source kind %q", doc.Source().Kind())
	}
}

func TestLoader_LoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"data/release-cycle.json": {Data: testsupport.MustReadFixture(t, testsupport.FixtureReleaseCycle)},
	}

	l := loader.New(dataset.NewLoaderOptions(dataset.WithFileSystem(fsys)))
	doc, err := l.Load(context.Background(), dataset.SourceFromFS("data/release-cycle.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Len() != 17 {
		t.Fatalf("expected 17 records, got %d", doc.Len())
	}
}

func TestLoader_Errors(t *testing.T) {
	l := loader.New(dataset.NewLoaderOptions())

	if _, err := l.Load(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := l.Load(context.Background(), dataset.SourceFromFS("missing.json")); err == nil {
		t.Fatalf("expected error when fs is not configured")
	}

	missing := filepath.Join(t.TempDir(), "missing.json")
	if _, err := l.Load(context.Background(), dataset.SourceFromFile(missing)); err == nil {
		t.Fatalf("expected error for missing file")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := testsupport.WriteFixture(t, t.TempDir(), testsupport.FixtureMinimal)
	if _, err := l.Load(ctx, dataset.SourceFromFile(path)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoader_MalformedDocument(t *testing.T) {
	fsys := fstest.MapFS{"bad.json": {Data: []byte(`{"3.12": {"branch": "3.12"}}`)}}

	l := loader.New(dataset.NewLoaderOptions(dataset.WithFileSystem(fsys)))
	_, err := l.Load(context.Background(), dataset.SourceFromFS("bad.json"))
	if !errors.Is(err, dataset.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}
