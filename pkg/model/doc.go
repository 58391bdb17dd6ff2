// Package model defines the enriched release-cycle records consumed by
// renderers. The builder resides in internal/model but returns the types
// re-exported here. Timeline views (view.go) select and position records for
// the diagram renderers: a keep predicate, pinned identifiers drawn after a
// one-row gap, and an optional start-date override.
package model
