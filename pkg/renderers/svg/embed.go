package svg

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded SVG template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
