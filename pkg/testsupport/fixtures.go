package testsupport

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-releasecycle/pkg/dataset"
	"github.com/goliatone/go-releasecycle/pkg/model"
)

// Fixture names shipped with the package.
const (
	FixtureReleaseCycle = "release-cycle.json"
	FixtureMinimal      = "minimal.json"
)

//go:embed testdata/*.json
var fixtures embed.FS

// FixtureFS exposes the embedded JSON fixtures rooted at their file names.
func FixtureFS() fs.FS {
	sub, err := fs.Sub(fixtures, "testdata")
	if err != nil {
		return fixtures
	}
	return sub
}

// MustReadFixture returns the raw bytes of an embedded fixture.
func MustReadFixture(t testing.TB, name string) []byte {
	t.Helper()

	data, err := fs.ReadFile(FixtureFS(), name)
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return data
}

// WriteFixture copies an embedded fixture into dir and returns the new path.
// CLI and orchestrator tests use it to exercise the on-disk loader.
func WriteFixture(t testing.TB, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, MustReadFixture(t, name), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// LoadDocument parses an embedded fixture into a dataset.Document.
func LoadDocument(t testing.TB, name string) dataset.Document {
	t.Helper()

	doc, err := dataset.NewDocument(dataset.SourceFromFS(name), MustReadFixture(t, name))
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadDocumentFromPath(path string) (dataset.Document, error) {
	if path == "" {
		return dataset.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return dataset.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := dataset.NewDocument(dataset.SourceFromFile(path), data)
	if err != nil {
		return dataset.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// BuildDataset loads a fixture and runs the default builder against it.
func BuildDataset(t testing.TB, name string, today time.Time) model.Dataset {
	t.Helper()

	ds, err := model.NewBuilder().Build(LoadDocument(t, name), today)
	if err != nil {
		t.Fatalf("build dataset: %v", err)
	}
	return ds
}

// Date parses a yyyy-mm-dd string or fails the test.
func Date(t testing.TB, value string) time.Time {
	t.Helper()

	d, err := model.ParseDate(value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return d
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t testing.TB, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t testing.TB, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t testing.TB, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
