package profile

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

var (
	// ErrUnknownTheme reports a selection naming an unregistered manifest.
	ErrUnknownTheme = errors.New("profile: unknown theme")
	// ErrUnknownVariant reports a selection naming a variant the manifest lacks.
	ErrUnknownVariant = errors.New("profile: unknown variant")
)

type manifestRegistry interface {
	Register(*theme.Manifest) error
}

// Selector resolves theme/variant pairs against registered manifests. It
// satisfies theme.ThemeSelector so callers can swap in any go-theme selector.
type Selector struct {
	mu             sync.RWMutex
	registry       manifestRegistry
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector registers manifests with a go-theme registry and returns a
// selector over them. With no manifests the DefaultManifest is used.
func NewSelector(manifests ...*theme.Manifest) (*Selector, error) {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{DefaultManifest()}
	}

	s := &Selector{
		registry:       theme.NewRegistry(),
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   manifests[0].Name,
		defaultVariant: DefaultVariant,
	}
	for _, manifest := range manifests {
		if err := s.Register(manifest); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register adds a manifest. Names must be unique.
func (s *Selector) Register(manifest *theme.Manifest) error {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return errors.New("profile: manifest name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.manifests[manifest.Name]; exists {
		return fmt.Errorf("profile: theme %q already registered", manifest.Name)
	}
	if err := s.registry.Register(manifest); err != nil {
		return fmt.Errorf("profile: register %q: %w", manifest.Name, err)
	}
	s.manifests[manifest.Name] = manifest
	return nil
}

// Select returns the manifest and variant for name/variant. Empty values fall
// back to the selector defaults.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	variant = strings.TrimSpace(variant)
	if variant == "" {
		variant = s.defaultVariant
	}

	s.mu.RLock()
	manifest, ok := s.manifests[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	if _, ok := manifest.Variants[variant]; !ok {
		return nil, fmt.Errorf("%w: %q in theme %q", ErrUnknownVariant, variant, name)
	}

	return &theme.Selection{
		Theme:    name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

// Variants lists the variant names of the named theme in sorted order.
func (s *Selector) Variants(name string) []string {
	if name == "" {
		name = s.defaultTheme
	}
	s.mu.RLock()
	manifest, ok := s.manifests[name]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	return sortedKeys(manifest.Variants)
}
