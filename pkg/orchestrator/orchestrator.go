package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	internalLoader "github.com/goliatone/go-releasecycle/internal/dataset/loader"
	"github.com/goliatone/go-releasecycle/internal/output"
	"github.com/goliatone/go-releasecycle/pkg/config"
	"github.com/goliatone/go-releasecycle/pkg/dataset"
	"github.com/goliatone/go-releasecycle/pkg/model"
	"github.com/goliatone/go-releasecycle/pkg/policy"
	"github.com/goliatone/go-releasecycle/pkg/profile"
	"github.com/goliatone/go-releasecycle/pkg/render"
	csvrenderer "github.com/goliatone/go-releasecycle/pkg/renderers/csv"
	"github.com/goliatone/go-releasecycle/pkg/renderers/gantt"
	"github.com/goliatone/go-releasecycle/pkg/renderers/svg"
)

var (
	// ErrTooFewRecords reports a dataset smaller than the configured minimum.
	ErrTooFewRecords = errors.New("orchestrator: too few records")
	// ErrDuplicateOutput reports two artifacts resolving to the same path.
	ErrDuplicateOutput = errors.New("orchestrator: duplicate output path")
)

// Option mutates the orchestrator configuration.
type Option func(*Orchestrator)

// Orchestrator coordinates the loader → builder → views → renderers → writer
// pipeline.
type Orchestrator struct {
	loader    dataset.Loader
	builder   model.Builder
	rules     *policy.Rules
	registry  *render.Registry
	overrides []render.Renderer
	selector  theme.ThemeSelector
	writer    output.Writer
	logger    *zap.Logger
	now       func() time.Time
}

// WithLoader overrides the dataset loader.
func WithLoader(loader dataset.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithBuilder overrides the model builder. When unset a builder is created per
// request from the configured security rules.
func WithBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRules sets the security window table Validate builds with. Plan compiles
// its table from Request.Config instead.
func WithRules(rules *policy.Rules) Option {
	return func(o *Orchestrator) {
		o.rules = rules
	}
}

// WithRegistry supplies the renderer registry. When unset the csv, svg and
// gantt renderers are registered per request from the configuration.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithRenderer replaces the renderer registered under r.Name() in whichever
// registry a request ends up using. Use it to swap in custom templates while
// keeping the other defaults.
func WithRenderer(r render.Renderer) Option {
	return func(o *Orchestrator) {
		if r != nil {
			o.overrides = append(o.overrides, r)
		}
	}
}

// WithSelector supplies the go-theme selector used to resolve render
// profiles.
func WithSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.selector = selector
	}
}

// WithWriter overrides the output writer.
func WithWriter(writer output.Writer) Option {
	return func(o *Orchestrator) {
		o.writer = writer
	}
}

// WithLogger routes pipeline logs to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides the clock used when neither the request nor the
// configuration pins today.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// New constructs an Orchestrator applying the supplied options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(dataset.NewLoaderOptions())
	}
	if o.writer == nil {
		o.writer = output.NewAtomicWriter()
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.now == nil {
		o.now = time.Now
	}
}

// Request describes one generator run.
type Request struct {
	// Config carries inputs, views, diagrams and rules.
	Config config.Config

	// Source overrides Config.Input.
	Source dataset.Source

	// Today overrides Config.Today and the clock.
	Today time.Time
}

// Output is one artifact ready to be written.
type Output struct {
	Path        string
	Renderer    string
	ContentType string
	Data        []byte
}

// Result lists everything a run produced.
type Result struct {
	Dataset model.Dataset
	Outputs []Output
}

// Paths returns the output paths in write order.
func (r Result) Paths() []string {
	out := make([]string, 0, len(r.Outputs))
	for _, o := range r.Outputs {
		out = append(out, o.Path)
	}
	return out
}

// Generate renders every configured artifact and writes them. Nothing is
// written unless every stage before the write succeeds.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	result, err := o.Plan(ctx, req)
	if err != nil {
		return Result{}, err
	}
	if err := o.Write(ctx, result); err != nil {
		return Result{}, err
	}
	return result, nil
}

// Plan runs the pipeline up to, but not including, the write phase.
func (o *Orchestrator) Plan(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	cfg := req.Config
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	today, err := o.today(cfg, req.Today)
	if err != nil {
		return Result{}, err
	}

	src := req.Source
	if src == nil {
		src = dataset.SourceFromFile(cfg.Input)
	}

	builder := o.builder
	if builder == nil {
		rules, err := cfg.Rules()
		if err != nil {
			return Result{}, fmt.Errorf("orchestrator: security rules: %w", err)
		}
		builder = model.NewBuilder(model.WithRules(rules), model.WithLogger(o.logger))
	}

	ds, err := o.build(ctx, src, builder, today)
	if err != nil {
		return Result{}, err
	}
	if cfg.MinRecords > 0 && len(ds.Records) < cfg.MinRecords {
		return Result{}, fmt.Errorf("%w: %d < %d", ErrTooFewRecords, len(ds.Records), cfg.MinRecords)
	}

	registry := o.registry
	if registry == nil {
		registry, err = DefaultRegistry(cfg, o.logger)
		if err != nil {
			return Result{}, err
		}
	}
	for _, r := range o.overrides {
		if err := registry.Replace(r); err != nil {
			return Result{}, fmt.Errorf("orchestrator: %w", err)
		}
	}
	selector := o.selector
	if selector == nil {
		selector, err = profile.NewSelector(profile.WithVariants(profile.DefaultManifest(), cfg.Profiles))
		if err != nil {
			return Result{}, fmt.Errorf("orchestrator: theme selector: %w", err)
		}
	}

	result := Result{Dataset: ds}

	if cfg.CSV.Enabled {
		outputs, err := o.render(ctx, registry, csvrenderer.Name, render.Request{
			Dataset: ds,
			Options: render.RenderOptions{Today: today},
		}, cfg)
		if err != nil {
			return Result{}, err
		}
		result.Outputs = append(result.Outputs, outputs...)
	}

	for _, diagram := range cfg.Diagrams {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		timeline, err := o.timeline(cfg, ds, diagram.View)
		if err != nil {
			return Result{}, err
		}
		prof, err := profile.Load(selector, cfg.Theme, diagram.Profile)
		if err != nil {
			return Result{}, fmt.Errorf("orchestrator: diagram %s: %w", diagram.Path, err)
		}
		outputs, err := o.render(ctx, registry, diagram.Format, render.Request{
			Dataset:  ds,
			Timeline: timeline,
			Options: render.RenderOptions{
				Today:    today,
				Profile:  prof,
				Filename: diagram.Path,
			},
		}, cfg)
		if err != nil {
			return Result{}, err
		}
		result.Outputs = append(result.Outputs, outputs...)
	}

	seen := make(map[string]string, len(result.Outputs))
	for _, out := range result.Outputs {
		if prev, ok := seen[out.Path]; ok {
			return Result{}, fmt.Errorf("%w: %s (%s, %s)", ErrDuplicateOutput, out.Path, prev, out.Renderer)
		}
		seen[out.Path] = out.Renderer
	}

	return result, nil
}

// Write persists the outputs of a planned run in one batch.
func (o *Orchestrator) Write(ctx context.Context, result Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	files := make([]output.File, 0, len(result.Outputs))
	for _, out := range result.Outputs {
		files = append(files, output.File{Path: out.Path, Data: out.Data})
	}
	if err := o.writer.WriteAll(files); err != nil {
		return fmt.Errorf("orchestrator: %w", err)
	}
	for _, out := range result.Outputs {
		o.logger.Info("wrote artifact",
			zap.String("path", out.Path),
			zap.String("renderer", out.Renderer),
			zap.Int("bytes", len(out.Data)),
		)
	}
	return nil
}

// Validate loads and builds a dataset without rendering or writing anything.
func (o *Orchestrator) Validate(ctx context.Context, src dataset.Source) (model.Dataset, error) {
	if ctx == nil {
		return model.Dataset{}, errors.New("orchestrator: context is required")
	}
	if src == nil {
		return model.Dataset{}, errors.New("orchestrator: source is required")
	}
	builder := o.builder
	if builder == nil {
		builder = model.NewBuilder(model.WithRules(o.rules), model.WithLogger(o.logger))
	}
	return o.build(ctx, src, builder, model.DateOnly(o.now().UTC()))
}

func (o *Orchestrator) build(ctx context.Context, src dataset.Source, builder model.Builder, today time.Time) (model.Dataset, error) {
	doc, err := o.loader.Load(ctx, src)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("orchestrator: load dataset: %w", err)
	}
	ds, err := builder.Build(doc, today)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("orchestrator: build dataset %s: %w", src.Location(), err)
	}
	o.logger.Debug("dataset built",
		zap.String("source", src.Location()),
		zap.Int("records", len(ds.Records)),
		zap.String("today", model.FormatDate(today)),
	)
	return ds, nil
}

func (o *Orchestrator) today(cfg config.Config, override time.Time) (time.Time, error) {
	if !override.IsZero() {
		return model.DateOnly(override), nil
	}
	return cfg.TodayDate(o.now)
}

func (o *Orchestrator) timeline(cfg config.Config, ds model.Dataset, name string) (model.Timeline, error) {
	vc, ok := cfg.View(name)
	if !ok {
		return model.Timeline{}, fmt.Errorf("%w: unknown view %q", config.ErrInvalid, name)
	}
	view, err := vc.ModelView(ds)
	if err != nil {
		return model.Timeline{}, fmt.Errorf("orchestrator: %w", err)
	}
	timeline, err := model.ApplyView(ds, view)
	if err != nil {
		return model.Timeline{}, fmt.Errorf("orchestrator: %w", err)
	}
	for _, id := range timeline.MissingPinned {
		o.logger.Warn("pinned branch not in dataset",
			zap.String("view", name),
			zap.String("branch", id),
		)
	}
	return timeline, nil
}

func (o *Orchestrator) render(ctx context.Context, registry *render.Registry, name string, req render.Request, cfg config.Config) ([]Output, error) {
	renderer, err := registry.Get(name)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	artifacts, err := renderer.Render(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render %s: %w", name, err)
	}
	outputs := make([]Output, 0, len(artifacts))
	for _, a := range artifacts {
		outputs = append(outputs, Output{
			Path:        cfg.ResolvePath(a.Name),
			Renderer:    name,
			ContentType: a.ContentType,
			Data:        a.Data,
		})
	}
	return outputs, nil
}

// DefaultRegistry registers the csv, svg and gantt renderers configured from
// cfg.
func DefaultRegistry(cfg config.Config, logger *zap.Logger) (*render.Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := render.NewRegistry()

	if err := registry.Register(csvrenderer.New(
		csvrenderer.WithFilenames(cfg.CSV.Branches, cfg.CSV.EndOfLife),
		csvrenderer.WithLogger(logger),
	)); err != nil {
		return nil, err
	}

	svgRenderer, err := svg.New(
		svg.WithLabelPrefix(cfg.LabelPrefix),
		svg.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: svg renderer: %w", err)
	}
	if err := registry.Register(svgRenderer); err != nil {
		return nil, err
	}

	ganttOptions := []gantt.Option{
		gantt.WithTitle(cfg.Gantt.Title),
		gantt.WithSectionPrefix(cfg.Gantt.SectionPrefix),
		gantt.WithTaskPrefix(cfg.Gantt.TaskPrefix),
		gantt.WithLogger(logger),
	}
	if len(cfg.Gantt.Modifiers) > 0 {
		ganttOptions = append(ganttOptions, gantt.WithModifiers(cfg.GanttModifiers()))
	}
	ganttRenderer, err := gantt.New(ganttOptions...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: gantt renderer: %w", err)
	}
	if err := registry.Register(ganttRenderer); err != nil {
		return nil, err
	}

	return registry, nil
}
