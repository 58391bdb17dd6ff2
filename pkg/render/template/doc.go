// Package template defines the renderer-agnostic template interface consumed by
// the SVG and Gantt renderers. Concrete engines live in subpackages.
package template
