// Package profile resolves diagram layout and colour settings from go-theme
// manifests. A profile is a theme variant whose tokens have been merged over the
// base manifest and parsed into typed values.
package profile
