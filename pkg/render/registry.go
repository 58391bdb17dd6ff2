package render

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrUnknownRenderer reports a lookup for a format nobody registered.
	ErrUnknownRenderer = errors.New("render: unknown renderer")
	// ErrDuplicateRenderer reports a second Register under the same name.
	ErrDuplicateRenderer = errors.New("render: renderer already registered")
)

// Registry maps diagram formats ("csv", "svg", "gantt") to renderers. The
// orchestrator resolves every configured diagram through it.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register adds renderer under its Name(). A taken name is an error; use
// Replace to swap a renderer out.
func (r *Registry) Register(renderer Renderer) error {
	name, err := rendererName(renderer)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateRenderer, name)
	}
	r.renderers[name] = renderer
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Replace registers renderer, overriding any renderer of the same name.
func (r *Registry) Replace(renderer Renderer) error {
	name, err := rendererName(renderer)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[name] = renderer
	return nil
}

// Get retrieves the renderer for a format.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, name)
	}
	return renderer, nil
}

// List returns the registered formats in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a format has a renderer.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[name]
	return ok
}

func rendererName(renderer Renderer) (string, error) {
	if renderer == nil {
		return "", errors.New("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return "", errors.New("render: renderer name is required")
	}
	return name, nil
}
