package gantt

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded Mermaid template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
