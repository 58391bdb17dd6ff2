// Package dataset exposes the public contracts for reading the release-cycle
// JSON table: sources, the loader interface, and the validated Document
// wrapper. The loader implementation lives under internal/dataset so callers
// only depend on these types.
package dataset
