// Package orchestrator wires the loader → builder → views → renderers → writer
// pipeline behind a single entry point. Every artifact is rendered in memory
// before the first byte reaches disk.
package orchestrator
