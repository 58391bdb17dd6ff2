package gantt

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-releasecycle/pkg/model"
	"github.com/goliatone/go-releasecycle/pkg/render"
	rendertemplate "github.com/goliatone/go-releasecycle/pkg/render/template"
	gotemplate "github.com/goliatone/go-releasecycle/pkg/render/template/gotemplate"
)

const (
	// Name identifies the renderer inside the registry.
	Name = "gantt"
	// ContentType of the rendered artifact.
	ContentType = "text/vnd.mermaid; charset=utf-8"
	// DefaultFilename is used when the request does not name the artifact.
	DefaultFilename = "release-cycle.mmd"

	templateName = "templates/release_cycle.mmd.tpl"

	defaultTitle         = "Python release cycle"
	defaultSectionPrefix = "Python "
	defaultTaskPrefix    = "python"
)

// Mermaid task tags accepted as status modifiers. Empty means no tag.
var knownTags = map[string]struct{}{
	"":          {},
	"active":    {},
	"done":      {},
	"crit":      {},
	"milestone": {},
}

// DefaultModifiers maps each status to its Mermaid task tag.
func DefaultModifiers() map[model.Status]string {
	return map[model.Status]string{
		model.StatusFeature:   "",
		model.StatusBugfix:    "active",
		model.StatusSecurity:  "done",
		model.StatusEndOfLife: "crit",
	}
}

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	title            string
	sectionPrefix    string
	taskPrefix       string
	modifiers        map[model.Status]string
	logger           *zap.Logger
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTitle sets the diagram title.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if title = strings.TrimSpace(title); title != "" {
			cfg.title = title
		}
	}
}

// WithSectionPrefix sets the text placed before the version in section names.
func WithSectionPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.sectionPrefix = prefix
	}
}

// WithTaskPrefix sets the task id prefix (task ids are prefix + version).
func WithTaskPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.taskPrefix = prefix
	}
}

// WithModifiers replaces the status to tag table. Statuses missing from the
// table fail at render time.
func WithModifiers(modifiers map[model.Status]string) Option {
	return func(cfg *config) {
		if modifiers == nil {
			return
		}
		cfg.modifiers = make(map[model.Status]string, len(modifiers))
		for status, tag := range modifiers {
			cfg.modifiers[status] = strings.TrimSpace(tag)
		}
	}
}

// WithLogger routes debug output to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Renderer writes a Timeline as a Mermaid Gantt chart.
type Renderer struct {
	templates     rendertemplate.TemplateRenderer
	title         string
	sectionPrefix string
	taskPrefix    string
	modifiers     map[model.Status]string
	logger        *zap.Logger
}

// New constructs a Gantt renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:    TemplatesFS(),
		title:         defaultTitle,
		sectionPrefix: defaultSectionPrefix,
		taskPrefix:    defaultTaskPrefix,
		modifiers:     DefaultModifiers(),
		logger:        zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	for _, status := range sortedStatuses(cfg.modifiers) {
		if _, err := model.ParseStatus(string(status)); err != nil {
			return nil, fmt.Errorf("gantt renderer: modifier table: %w", err)
		}
		if _, ok := knownTags[cfg.modifiers[status]]; !ok {
			return nil, fmt.Errorf("gantt renderer: status %q: unknown Mermaid tag %q", status, cfg.modifiers[status])
		}
	}

	templateRenderer := cfg.templateRenderer
	if templateRenderer == nil {
		if _, err := fs.Stat(cfg.templateFS, templateName); err != nil {
			return nil, fmt.Errorf("gantt renderer: template %q not found: %w", templateName, err)
		}
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("gantt renderer: configure template renderer: %w", err)
		}
		templateRenderer = engine
	}

	return &Renderer{
		templates:     templateRenderer,
		title:         cfg.title,
		sectionPrefix: cfg.sectionPrefix,
		taskPrefix:    cfg.taskPrefix,
		modifiers:     cfg.modifiers,
		logger:        cfg.logger,
	}, nil
}

// Name identifies the renderer inside the registry.
func (r *Renderer) Name() string {
	return Name
}

type section struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Modifier string `json:"modifier"`
	Task     string `json:"task"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

// Render emits one section per timeline record, oldest first. Month-only end
// of life dates are written as the first of the month.
func (r *Renderer) Render(ctx context.Context, req render.Request) ([]render.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(req.Timeline.Records) == 0 {
		return nil, render.Wrap(Name, model.ErrEmptyView)
	}

	records := req.Timeline.Ascending()
	sections := make([]section, 0, len(records))
	for _, rec := range records {
		tag, ok := r.modifiers[rec.Status]
		if !ok {
			return nil, render.Wrap(Name, fmt.Errorf("version %s: %w: no modifier for %q", rec.Identifier, model.ErrUnknownStatus, rec.Status))
		}
		if tag != "" {
			tag += ","
		}
		sections = append(sections, section{
			Name:     r.sectionPrefix + rec.Identifier,
			Status:   rec.Status.String(),
			Modifier: tag,
			Task:     r.taskPrefix + rec.Identifier,
			Start:    model.FormatDate(rec.FirstReleaseDate),
			End:      model.FormatDate(rec.EndOfLifeDate),
		})
	}

	rendered, err := r.templates.RenderTemplate(templateName, map[string]any{
		"title":    r.title,
		"sections": sections,
	})
	if err != nil {
		return nil, render.Wrap(Name, err)
	}

	r.logger.Debug("rendered gantt chart",
		zap.String("view", req.Timeline.Name),
		zap.Int("sections", len(sections)),
	)

	return []render.Artifact{{
		Name:        req.Options.FilenameOr(DefaultFilename),
		ContentType: ContentType,
		Data:        []byte(rendered),
	}}, nil
}

func sortedStatuses(in map[model.Status]string) []model.Status {
	out := make([]model.Status, 0, len(in))
	for status := range in {
		out = append(out, status)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
