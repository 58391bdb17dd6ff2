// Package policy holds the security-maintenance window rules: how long after
// its first release a branch moves from bugfix to security-only support.
package policy

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// DaysPerYear is the year length used to turn a window in years into days.
const DaysPerYear = 365

// Rule maps a version constraint (Masterminds/semver syntax, e.g. ">= 3.13")
// to a security window measured in years after first release.
type Rule struct {
	Constraint string
	Years      float64

	constraint *semver.Constraints
}

// Rules is an ordered rule table. The first matching rule wins; versions no
// rule matches fall back to DefaultYears.
type Rules struct {
	rules        []Rule
	defaultYears float64
}

// NewRules compiles the constraints of every rule.
func NewRules(defaultYears float64, rules ...Rule) (*Rules, error) {
	if defaultYears <= 0 {
		return nil, fmt.Errorf("policy: default window must be positive, got %v", defaultYears)
	}

	compiled := make([]Rule, 0, len(rules))
	for i, rule := range rules {
		expr := strings.TrimSpace(rule.Constraint)
		if expr == "" {
			return nil, fmt.Errorf("policy: rule %d has an empty constraint", i)
		}
		if rule.Years <= 0 {
			return nil, fmt.Errorf("policy: rule %q must have a positive window", expr)
		}
		c, err := semver.NewConstraint(expr)
		if err != nil {
			return nil, fmt.Errorf("policy: rule %q: %w", expr, err)
		}
		compiled = append(compiled, Rule{Constraint: expr, Years: rule.Years, constraint: c})
	}

	return &Rules{rules: compiled, defaultYears: defaultYears}, nil
}

// DefaultRules returns the current policy: branches from 3.13 on get two
// years of bugfix releases, older branches got eighteen months.
func DefaultRules() *Rules {
	rules, err := NewRules(1.5, Rule{Constraint: ">= 3.13", Years: 2})
	if err != nil {
		panic(err)
	}
	return rules
}

// Years returns the window in years for the version identifier.
func (r *Rules) Years(identifier string) (float64, error) {
	if r == nil {
		return 0, errors.New("policy: rules are nil")
	}
	v, err := semver.NewVersion(strings.TrimSpace(identifier))
	if err != nil {
		return 0, fmt.Errorf("policy: version %q: %w", identifier, err)
	}
	for _, rule := range r.rules {
		if rule.constraint.Check(v) {
			return rule.Years, nil
		}
	}
	return r.defaultYears, nil
}

// Window returns the security window in whole days. Fractional days are
// truncated.
func (r *Rules) Window(identifier string) (int, error) {
	years, err := r.Years(identifier)
	if err != nil {
		return 0, err
	}
	return int(math.Floor(years * DaysPerYear)), nil
}

// SecurityStart returns the date security-only maintenance begins.
func (r *Rules) SecurityStart(identifier string, firstRelease time.Time) (time.Time, error) {
	days, err := r.Window(identifier)
	if err != nil {
		return time.Time{}, err
	}
	return firstRelease.AddDate(0, 0, days), nil
}

// List returns a copy of the configured rules in evaluation order.
func (r *Rules) List() []Rule {
	if r == nil {
		return nil
	}
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}
