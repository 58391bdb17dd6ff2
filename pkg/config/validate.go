package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-releasecycle/pkg/model"
)

// ErrInvalid marks configuration validation failures.
var ErrInvalid = errors.New("config: invalid")

// Validate reports every problem found, joined into one error.
func (c Config) Validate() error {
	var problems []error
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
	}

	if strings.TrimSpace(c.Input) == "" {
		add("input is required")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		add("output_dir is required")
	}
	if c.MinRecords < 0 {
		add("min_records must not be negative")
	}
	if c.Today != "" {
		if _, err := parseToday(c.Today); err != nil {
			add("today: %v", err)
		}
	}
	if c.CSV.Enabled && (c.CSV.Branches == "" || c.CSV.EndOfLife == "") {
		add("csv file names are required when csv is enabled")
	}

	views := make(map[string]bool, len(c.Views))
	for i, v := range c.Views {
		if v.Name == "" {
			add("views[%d]: name is required", i)
			continue
		}
		if views[v.Name] {
			add("views[%d]: duplicate name %q", i, v.Name)
		}
		views[v.Name] = true
		if v.Filter != FilterAll && v.Filter != FilterActive {
			add("view %q: unknown filter %q", v.Name, v.Filter)
		}
		if v.Cutoff != "" {
			if _, err := model.ParseDate(v.Cutoff); err != nil {
				add("view %q: cutoff: %v", v.Name, err)
			}
		}
	}

	paths := make(map[string]bool, len(c.Diagrams)+2)
	if c.CSV.Enabled {
		paths[c.ResolvePath(c.CSV.Branches)] = true
		paths[c.ResolvePath(c.CSV.EndOfLife)] = true
	}
	for i, d := range c.Diagrams {
		if d.Format != FormatSVG && d.Format != FormatGantt {
			add("diagrams[%d]: unknown format %q", i, d.Format)
		}
		if !views[d.View] {
			add("diagrams[%d]: unknown view %q", i, d.View)
		}
		if d.Path == "" {
			add("diagrams[%d]: path is required", i)
			continue
		}
		resolved := c.ResolvePath(d.Path)
		if paths[resolved] {
			add("diagrams[%d]: path %q is written twice", i, d.Path)
		}
		paths[resolved] = true
	}

	if _, err := c.Rules(); err != nil {
		add("security_rules: %v", err)
	}
	for status := range c.Gantt.Modifiers {
		if _, err := model.ParseStatus(status); err != nil {
			add("gantt.modifiers: %v", err)
		}
	}

	return errors.Join(problems...)
}
