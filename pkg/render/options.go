package render

import (
	"time"

	"github.com/goliatone/go-releasecycle/pkg/profile"
)

// RenderOptions carries per-call settings shared by every renderer.
type RenderOptions struct {
	// Today positions the "today" marker. Zero falls back to Dataset.Today.
	Today time.Time
	// Profile supplies layout constants and colours for diagram renderers.
	Profile profile.Profile
	// Filename overrides the artifact name for single-artifact renderers.
	Filename string
}

// FilenameOr returns the configured file name or fallback.
func (o RenderOptions) FilenameOr(fallback string) string {
	if o.Filename != "" {
		return o.Filename
	}
	return fallback
}
