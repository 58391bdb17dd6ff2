package svg

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-releasecycle/pkg/model"
	"github.com/goliatone/go-releasecycle/pkg/profile"
	"github.com/goliatone/go-releasecycle/pkg/render"
	rendertemplate "github.com/goliatone/go-releasecycle/pkg/render/template"
	gotemplate "github.com/goliatone/go-releasecycle/pkg/render/template/gotemplate"
)

const (
	// Name identifies the renderer inside the registry.
	Name = "svg"
	// ContentType of the rendered artifact.
	ContentType = "image/svg+xml"

	templateName       = "templates/release_cycle.svg.tpl"
	defaultLabelPrefix = "Python "
)

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	labelPrefix      string
	logger           *zap.Logger
}

// WithTemplatesFS supplies an alternate template bundle. It must contain
// templates/release_cycle.svg.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
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

// WithLabelPrefix sets the text drawn before each version in the legend.
func WithLabelPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.labelPrefix = prefix
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

// Renderer draws a Timeline as an SVG chart.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	labelPrefix string
	logger      *zap.Logger
}

// New constructs an SVG renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		labelPrefix: defaultLabelPrefix,
		logger:      zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	templateRenderer := cfg.templateRenderer
	if templateRenderer == nil {
		if _, err := fs.Stat(cfg.templateFS, templateName); err != nil {
			return nil, fmt.Errorf("svg renderer: template %q not found: %w", templateName, err)
		}
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("svg renderer: configure template renderer: %w", err)
		}
		templateRenderer = engine
	}

	return &Renderer{
		templates:   templateRenderer,
		labelPrefix: cfg.labelPrefix,
		logger:      cfg.logger,
	}, nil
}

// Name identifies the renderer inside the registry.
func (r *Renderer) Name() string {
	return Name
}

// Render produces one SVG artifact for req.Timeline.
func (r *Renderer) Render(ctx context.Context, req render.Request) ([]render.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(req.Timeline.Records) == 0 {
		return nil, render.Wrap(Name, model.ErrEmptyView)
	}

	p := req.Options.Profile
	if p.IsZero() {
		p = profile.Default()
	}
	layout, err := NewLayout(p, req.Timeline.FirstDate, req.Timeline.LastDate)
	if err != nil {
		return nil, render.Wrap(Name, err)
	}

	doc := r.buildDocument(layout, p, req.Timeline, req.TodayOrDefault())
	rendered, err := r.templates.RenderTemplate(templateName, doc)
	if err != nil {
		return nil, render.Wrap(Name, err)
	}

	r.logger.Debug("rendered svg timeline",
		zap.String("view", req.Timeline.Name),
		zap.Int("records", len(req.Timeline.Records)),
		zap.String("profile", p.Theme+"/"+p.Variant),
	)

	return []render.Artifact{{
		Name:        req.Options.FilenameOr("release-cycle-" + req.Timeline.Name + ".svg"),
		ContentType: ContentType,
		Data:        []byte(normalizeNewlines(rendered)),
	}}, nil
}

type document struct {
	ID         string          `json:"id"`
	Width      string          `json:"width"`
	Height     string          `json:"height"`
	FontSize   string          `json:"font_size"`
	FontFamily string          `json:"font_family"`
	LegendX    string          `json:"legend_x"`
	PlotStart  string          `json:"plot_start"`
	PlotEnd    string          `json:"plot_end"`
	GridBottom string          `json:"grid_bottom"`
	Colors     []profile.Token `json:"colors"`
	Rows       []row           `json:"rows"`
	Years      []year          `json:"years"`
	Today      *marker         `json:"today,omitempty"`
}

type row struct {
	Identifier string `json:"identifier"`
	Label      string `json:"label"`
	Status     string `json:"status"`
	Title      string `json:"title"`
	Shade      bool   `json:"shade"`
	ShadeY     string `json:"shade_y"`
	ShadeH     string `json:"shade_h"`
	TextY      string `json:"text_y"`
	Bars       []bar  `json:"bars"`
}

type bar struct {
	Class  string `json:"class"`
	X      string `json:"x"`
	Y      string `json:"y"`
	Width  string `json:"width"`
	Height string `json:"height"`
	Radius string `json:"radius"`
}

type year struct {
	Year      int    `json:"year"`
	LineX     string `json:"line_x"`
	ShowLine  bool   `json:"show_line"`
	LabelX    string `json:"label_x"`
	LabelY    string `json:"label_y"`
	ShowLabel bool   `json:"show_label"`
}

type marker struct {
	X    string `json:"x"`
	Date string `json:"date"`
}

func (r *Renderer) buildDocument(layout Layout, p profile.Profile, tl model.Timeline, today time.Time) document {
	lineHeight := layout.LineHeight()
	maxRow := tl.MaxRow()
	plotStart, plotEnd := layout.PlotStart(), layout.PlotEnd()

	doc := document{
		ID:         "release-cycle-" + tl.Name,
		Width:      num(layout.Width()),
		Height:     num(layout.Height(maxRow)),
		FontSize:   num(p.Scale),
		FontFamily: p.FontFamily,
		LegendX:    num(0.5 * p.Scale),
		PlotStart:  num(plotStart),
		PlotEnd:    num(plotEnd),
		GridBottom: num((float64(maxRow) + 0.5) * lineHeight),
		Colors:     p.ColorTokens(),
	}

	for i, rec := range tl.Ascending() {
		center := layout.RowCenter(rec.Row)
		doc.Rows = append(doc.Rows, row{
			Identifier: rec.Identifier,
			Label:      r.labelPrefix + rec.Identifier,
			Status:     rec.Status.String(),
			Title: fmt.Sprintf("%s%s: %s, %s to %s, %s",
				r.labelPrefix, rec.Identifier, rec.Status, rec.FirstRelease, rec.EndOfLife, rec.ReleaseManager),
			Shade:  i%2 == 0,
			ShadeY: num(center - lineHeight/2),
			ShadeH: num(lineHeight),
			TextY:  num(center + 0.35*p.Scale),
			Bars:   bars(layout, rec.VersionRecord, center, p.Scale),
		})
	}

	labelY := num(float64(maxRow+1)*lineHeight + 0.35*p.Scale)
	for _, y := range layout.Years() {
		lineX := layout.YearX(y)
		labelX := (lineX + layout.YearX(y+1)) / 2
		doc.Years = append(doc.Years, year{
			Year:      y,
			LineX:     num(lineX),
			ShowLine:  lineX >= plotStart && lineX <= plotEnd,
			LabelX:    num(labelX),
			LabelY:    labelY,
			ShowLabel: labelX >= plotStart && labelX <= plotEnd,
		})
	}

	if !today.IsZero() && layout.Contains(today) {
		doc.Today = &marker{X: num(layout.X(today)), Date: model.FormatDate(today)}
	}
	return doc
}

// bars splits a record into coloured segments. Supported branches get a
// feature or bugfix segment up to the security start and a security segment
// up to end of life; end-of-life branches are drawn as one segment. Segments
// are clamped to the visible range and dropped when empty.
func bars(layout Layout, rec model.VersionRecord, center, scale float64) []bar {
	height := scale
	top := num(center - height/2)
	radius := num(0.25 * scale)

	var out []bar
	add := func(class model.Status, from, to time.Time) {
		x1 := layout.X(layout.Clamp(from))
		x2 := layout.X(layout.Clamp(to))
		if x2 <= x1 {
			return
		}
		out = append(out, bar{
			Class:  class.String(),
			X:      num(x1),
			Y:      top,
			Width:  num(x2 - x1),
			Height: num(height),
			Radius: radius,
		})
	}

	if rec.Status.EndOfLife() {
		add(model.StatusEndOfLife, rec.FirstReleaseDate, rec.EndOfLifeDate)
		return out
	}

	securityStart := rec.SecurityStartDate
	if securityStart.After(rec.EndOfLifeDate) {
		securityStart = rec.EndOfLifeDate
	}
	first := model.StatusBugfix
	if rec.Status == model.StatusFeature {
		first = model.StatusFeature
	}
	add(first, rec.FirstReleaseDate, securityStart)
	add(model.StatusSecurity, securityStart, rec.EndOfLifeDate)
	return out
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
