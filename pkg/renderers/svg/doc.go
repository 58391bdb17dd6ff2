// Package svg renders release-cycle timelines as standalone SVG charts. Layout
// math lives in Layout; the embedded pongo2 template only places pre-computed
// coordinates, with output escaping enabled.
package svg
