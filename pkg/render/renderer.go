package render

import (
	"context"
	"time"

	"github.com/goliatone/go-releasecycle/pkg/model"
)

// Renderer converts a built dataset (and, for diagrams, its timeline) into one
// or more in-memory artifacts. Renderers never touch the filesystem.
type Renderer interface {
	Name() string
	Render(ctx context.Context, req Request) ([]Artifact, error)
}

// Request is the input of a single Render call.
type Request struct {
	Dataset  model.Dataset
	Timeline model.Timeline
	Options  RenderOptions
}

// Artifact is one rendered output file held in memory until the write phase.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// TodayOrDefault returns the explicit today, or the dataset's when unset.
func (r Request) TodayOrDefault() time.Time {
	if !r.Options.Today.IsZero() {
		return model.DateOnly(r.Options.Today)
	}
	return r.Dataset.Today
}
