package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-releasecycle/pkg/render"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string { return s.name }

func (s stubRenderer) Render(context.Context, render.Request) ([]render.Artifact, error) {
	return []render.Artifact{{Name: s.name + ".txt", ContentType: "text/plain", Data: []byte(s.name)}}, nil
}

func TestRegistry_RegisterAndList(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "svg"})
	registry.MustRegister(stubRenderer{name: "csv"})

	if err := registry.Register(stubRenderer{name: "svg"}); !errors.Is(err, render.ErrDuplicateRenderer) {
		t.Fatalf("expected ErrDuplicateRenderer, got %v", err)
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer to fail")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected empty name to fail")
	}

	got := registry.List()
	if len(got) != 2 || got[0] != "csv" || got[1] != "svg" {
		t.Fatalf("unexpected list: %v", got)
	}
	if !registry.Has("csv") || registry.Has("gantt") {
		t.Fatalf("Has reported wrong membership")
	}
	if _, err := registry.Get("gantt"); !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
}

type namedRenderer struct {
	stubRenderer
	tag string
}

func TestRegistry_Replace(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "svg"})

	if err := registry.Replace(namedRenderer{stubRenderer: stubRenderer{name: "svg"}, tag: "custom"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, err := registry.Get("svg")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if r, ok := got.(namedRenderer); !ok || r.tag != "custom" {
		t.Fatalf("expected the replacement renderer, got %#v", got)
	}
	if err := registry.Replace(nil); err == nil {
		t.Fatalf("expected nil renderer to fail")
	}
}

func TestWrap(t *testing.T) {
	if render.Wrap("svg", nil) != nil {
		t.Fatalf("nil error should stay nil")
	}

	cause := errors.New("boom")
	err := render.Wrap("svg", cause)
	if !errors.Is(err, render.ErrRender) || !errors.Is(err, cause) {
		t.Fatalf("wrapped error lost its chain: %v", err)
	}
}

func TestRenderOptions_FilenameOr(t *testing.T) {
	if got := (render.RenderOptions{}).FilenameOr("release-cycle.svg"); got != "release-cycle.svg" {
		t.Fatalf("fallback not used: %s", got)
	}
	if got := (render.RenderOptions{Filename: "x.svg"}).FilenameOr("release-cycle.svg"); got != "x.svg" {
		t.Fatalf("override not used: %s", got)
	}
}
