// Package prompt asks the interactive questions of a generator run: the build
// day, which diagram formats to emit and whether existing files may be
// replaced. Prompts go through a Driver so flows can be scripted in tests.
package prompt
