// Package csv renders the branch tables consumed by the documentation site:
// one file for supported branches and one for end-of-life branches.
package csv

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-releasecycle/pkg/model"
	"github.com/goliatone/go-releasecycle/pkg/render"
)

const (
	// Name identifies the renderer inside the registry.
	Name = "csv"
	// ContentType of both artifacts.
	ContentType = "text/csv; charset=utf-8"

	DefaultBranchesFilename  = "branches.csv"
	DefaultEndOfLifeFilename = "end-of-life.csv"
)

// Header is the fixed column order of both tables.
var Header = []string{"Branch", "Schedule", "Status", "First release", "End of life", "Release manager"}

// Option customises the renderer configuration.
type Option func(*Renderer)

// WithFilenames overrides the artifact names. Empty values keep the default.
func WithFilenames(branches, endOfLife string) Option {
	return func(r *Renderer) {
		if branches = strings.TrimSpace(branches); branches != "" {
			r.branchesName = branches
		}
		if endOfLife = strings.TrimSpace(endOfLife); endOfLife != "" {
			r.endOfLifeName = endOfLife
		}
	}
}

// WithLogger routes debug output to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer partitions a dataset by status into two CSV tables.
type Renderer struct {
	branchesName  string
	endOfLifeName string
	logger        *zap.Logger
}

// New constructs a CSV renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{
		branchesName:  DefaultBranchesFilename,
		endOfLifeName: DefaultEndOfLifeFilename,
		logger:        zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name identifies the renderer inside the registry.
func (r *Renderer) Name() string {
	return Name
}

// Render writes every dataset record, newest first, into the branches or the
// end-of-life table. Timeline views do not apply to tables.
func (r *Renderer) Render(ctx context.Context, req render.Request) ([]render.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	branches, err := newTable()
	if err != nil {
		return nil, render.Wrap(Name, err)
	}
	endOfLife, err := newTable()
	if err != nil {
		return nil, render.Wrap(Name, err)
	}

	var supported, ended int
	for _, rec := range req.Dataset.Records {
		if _, err := model.ParseStatus(rec.Status.String()); err != nil {
			return nil, render.Wrap(Name, fmt.Errorf("version %s: %w", rec.Identifier, err))
		}
		target := branches
		if rec.Status.EndOfLife() {
			target = endOfLife
			ended++
		} else {
			supported++
		}
		if err := target.write(Row(rec)); err != nil {
			return nil, render.Wrap(Name, err)
		}
	}

	branchesData, err := branches.bytes()
	if err != nil {
		return nil, render.Wrap(Name, err)
	}
	endOfLifeData, err := endOfLife.bytes()
	if err != nil {
		return nil, render.Wrap(Name, err)
	}

	r.logger.Debug("rendered csv tables",
		zap.Int("branches", supported),
		zap.Int("end_of_life", ended),
	)

	return []render.Artifact{
		{Name: r.branchesName, ContentType: ContentType, Data: branchesData},
		{Name: r.endOfLifeName, ContentType: ContentType, Data: endOfLifeData},
	}, nil
}

// Row formats one record in Header order. Dates after the build day are
// wrapped in asterisks so the documentation renders them in italics.
func Row(rec model.VersionRecord) []string {
	return []string{
		rec.Branch,
		fmt.Sprintf(":pep:`%d`", rec.PEP),
		rec.Status.String(),
		italicIf(rec.FirstRelease, rec.FirstReleaseFuture),
		italicIf(rec.EndOfLife, rec.EndOfLifeFuture),
		rec.ReleaseManager,
	}
}

func italicIf(value string, future bool) string {
	if future {
		return "*" + value + "*"
	}
	return value
}

type table struct {
	buf bytes.Buffer
	w   *csv.Writer
}

func newTable() (*table, error) {
	t := &table{}
	t.w = csv.NewWriter(&t.buf)
	if err := t.write(Header); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *table) write(record []string) error {
	return t.w.Write(record)
}

func (t *table) bytes() ([]byte, error) {
	t.w.Flush()
	if err := t.w.Error(); err != nil {
		return nil, err
	}
	return t.buf.Bytes(), nil
}
