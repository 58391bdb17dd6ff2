// Package gantt renders release-cycle timelines as Mermaid Gantt text, one
// section per version from oldest to newest.
package gantt
