package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-releasecycle/pkg/model"
	"github.com/goliatone/go-releasecycle/pkg/policy"
)

// Rules compiles the security window table.
func (c Config) Rules() (*policy.Rules, error) {
	rules := make([]policy.Rule, 0, len(c.Security.Rules))
	for _, r := range c.Security.Rules {
		rules = append(rules, policy.Rule{Constraint: r.Constraint, Years: r.Years})
	}
	return policy.NewRules(c.Security.DefaultYears, rules...)
}

// TodayDate returns the configured today, or now when unset.
func (c Config) TodayDate(now func() time.Time) (time.Time, error) {
	if c.Today == "" {
		if now == nil {
			now = time.Now
		}
		return model.DateOnly(now().UTC()), nil
	}
	d, err := parseToday(c.Today)
	if err != nil {
		return time.Time{}, fmt.Errorf("config: today: %w", err)
	}
	return d, nil
}

// parseToday accepts only yyyy-mm-dd.
func parseToday(raw string) (time.Time, error) {
	d, err := time.Parse(model.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", model.ErrInvalidDate, raw)
	}
	return d, nil
}

// ModelView turns a view configuration into a model.View over ds.
func (v ViewConfig) ModelView(ds model.Dataset) (model.View, error) {
	var cutoff *time.Time
	if v.Cutoff != "" {
		d, err := model.ParseDate(v.Cutoff)
		if err != nil {
			return model.View{}, fmt.Errorf("view %s: cutoff: %w", v.Name, err)
		}
		cutoff = &d
	}

	switch v.Filter {
	case FilterActive:
		return model.NewActiveView(v.Name, ds, v.Pinned, cutoff)
	case FilterAll, "":
		view := model.NewView(v.Name)
		view.Pinned = append([]string(nil), v.Pinned...)
		view.Start = cutoff
		return view, nil
	default:
		return model.View{}, fmt.Errorf("%w: view %s: unknown filter %q", ErrInvalid, v.Name, v.Filter)
	}
}

// GanttModifiers returns the modifier table keyed by status.
func (c Config) GanttModifiers() map[model.Status]string {
	out := make(map[model.Status]string, len(c.Gantt.Modifiers))
	for status, tag := range c.Gantt.Modifiers {
		out[model.Status(status)] = tag
	}
	return out
}
