// Package releasecycle generates Python-style release cycle artifacts: branch
// and end-of-life CSV tables, SVG timelines and Mermaid Gantt charts, from a
// JSON table of version lifecycles.
package releasecycle

import (
	"context"

	"github.com/goliatone/go-releasecycle/pkg/config"
	"github.com/goliatone/go-releasecycle/pkg/dataset"
	"github.com/goliatone/go-releasecycle/pkg/model"
	"github.com/goliatone/go-releasecycle/pkg/orchestrator"
)

// Config aliases config.Config for callers that only import the root package.
type Config = config.Config

// Result aliases orchestrator.Result.
type Result = orchestrator.Result

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return config.Default()
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate renders and writes every artifact cfg describes.
func Generate(ctx context.Context, cfg Config, options ...orchestrator.Option) (Result, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{Config: cfg})
}

// ValidateFile loads and builds the document at path without writing output.
func ValidateFile(ctx context.Context, path string, options ...orchestrator.Option) (model.Dataset, error) {
	return orchestrator.New(options...).Validate(ctx, dataset.SourceFromFile(path))
}
