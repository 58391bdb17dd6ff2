package releasecycle

import (
	"io/fs"

	"github.com/goliatone/go-releasecycle/pkg/renderers/gantt"
	"github.com/goliatone/go-releasecycle/pkg/renderers/svg"
)

// EmbeddedSVGTemplates exposes the built-in SVG timeline template so callers can
// copy or extend it and pass it back through svg.WithTemplatesFS.
func EmbeddedSVGTemplates() fs.FS {
	return svg.TemplatesFS()
}

// EmbeddedGanttTemplates exposes the built-in Mermaid template.
func EmbeddedGanttTemplates() fs.FS {
	return gantt.TemplatesFS()
}
