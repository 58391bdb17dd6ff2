package template_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-releasecycle/pkg/render/template/gotemplate"
	"github.com/goliatone/go-releasecycle/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-global.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-filter.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_YearLabelFilter(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("years", map[string]any{"years": []int{2009, 2010, 2024}})
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "years.golden"))
	if result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_RenderStringEscapes(t *testing.T) {
	engine := newEngine(t)
	data := map[string]any{"manager": "Ned Deily <ned@example.org>"}

	escaped, err := engine.RenderString("<text>{{ manager }}</text>", data)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if escaped != "<text>Ned Deily &lt;ned@example.org&gt;</text>" {
		t.Fatalf("expected escaped output, got %q", escaped)
	}

	raw, err := engine.RenderString("{% autoescape off %}{{ manager }}{% endautoescape %}", data)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if raw != "Ned Deily <ned@example.org>" {
		t.Fatalf("expected raw output, got %q", raw)
	}
}

func TestGoTemplateEngine_StructData(t *testing.T) {
	engine := newEngine(t)

	type version struct {
		Identifier string `json:"identifier"`
		Row        int    `json:"row"`
	}
	result, err := engine.RenderString("{{ identifier }}@{{ row|integer }}", version{Identifier: "3.13", Row: 4})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "3.13@4" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestNew_RequiresTemplates(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without a template fs")
	}
}

func TestNew_WithGlobalData(t *testing.T) {
	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := gotemplate.New(
		gotemplate.WithFS(templatesFS),
		gotemplate.WithGlobalData(map[string]any{"settings": map[string]string{"env": "prod"}}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, err := engine.Render("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=prod" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_RejectsNonObjectData(t *testing.T) {
	engine := newEngine(t)

	if _, err := engine.RenderString("{{ x }}", []string{"a"}); err == nil {
		t.Fatalf("expected error for list data")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
