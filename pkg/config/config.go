// Package config loads generator settings from YAML, .env files and
// RELEASE_CYCLE_* environment variables. Defaults reproduce the stock outputs:
// two CSV tables plus the full and active SVG timelines under include/.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Diagram formats understood by the generator.
const (
	FormatSVG   = "svg"
	FormatGantt = "gantt"
)

// View filters.
const (
	FilterAll    = "all"
	FilterActive = "active"
)

// Config is the full generator configuration.
type Config struct {
	Input       string                       `yaml:"input"`
	OutputDir   string                       `yaml:"output_dir"`
	Today       string                       `yaml:"today"`
	MinRecords  int                          `yaml:"min_records"`
	Theme       string                       `yaml:"theme"`
	LabelPrefix string                       `yaml:"label_prefix"`
	CSV         CSVConfig                    `yaml:"csv"`
	Diagrams    []DiagramConfig              `yaml:"diagrams"`
	Views       []ViewConfig                 `yaml:"views"`
	Security    SecurityConfig               `yaml:"security_rules"`
	Gantt       GanttConfig                  `yaml:"gantt"`
	Profiles    map[string]map[string]string `yaml:"profiles"`
}

// CSVConfig controls the branch tables.
type CSVConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Branches  string `yaml:"branches"`
	EndOfLife string `yaml:"end_of_life"`
}

// DiagramConfig describes one diagram file.
type DiagramConfig struct {
	Format  string `yaml:"format"`
	View    string `yaml:"view"`
	Profile string `yaml:"profile"`
	Path    string `yaml:"path"`
}

// ViewConfig describes which records a diagram draws.
type ViewConfig struct {
	Name   string   `yaml:"name"`
	Filter string   `yaml:"filter"`
	Pinned []string `yaml:"pinned"`
	Cutoff string   `yaml:"cutoff"`
}

// SecurityConfig is the security window rule table.
type SecurityConfig struct {
	DefaultYears float64      `yaml:"default_years"`
	Rules        []RuleConfig `yaml:"rules"`
}

// RuleConfig maps a version constraint to a window in years.
type RuleConfig struct {
	Constraint string  `yaml:"constraint"`
	Years      float64 `yaml:"years"`
}

// GanttConfig customises Mermaid output.
type GanttConfig struct {
	Title         string            `yaml:"title"`
	SectionPrefix string            `yaml:"section_prefix"`
	TaskPrefix    string            `yaml:"task_prefix"`
	Modifiers     map[string]string `yaml:"modifiers"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Input:       filepath.Join("include", "release-cycle.json"),
		OutputDir:   "include",
		Theme:       "release-cycle",
		LabelPrefix: "Python ",
		CSV: CSVConfig{
			Enabled:   true,
			Branches:  "branches.csv",
			EndOfLife: "end-of-life.csv",
		},
		Diagrams: []DiagramConfig{
			{Format: FormatSVG, View: "all", Profile: "web", Path: "release-cycle-all.svg"},
			{Format: FormatSVG, View: "active", Profile: "web", Path: "release-cycle.svg"},
		},
		Views: []ViewConfig{
			{Name: "all", Filter: FilterAll},
			{Name: "active", Filter: FilterActive, Pinned: []string{"2.7"}, Cutoff: "2019-08-01"},
		},
		Security: SecurityConfig{
			DefaultYears: 1.5,
			Rules:        []RuleConfig{{Constraint: ">= 3.13", Years: 2}},
		},
		Gantt: GanttConfig{
			Title:         "Python release cycle",
			SectionPrefix: "Python ",
			TaskPrefix:    "python",
			Modifiers: map[string]string{
				"feature":     "",
				"bugfix":      "active",
				"security":    "done",
				"end-of-life": "crit",
			},
		},
	}
}

// DefaultDiagram returns the stock diagram entry for format.
func DefaultDiagram(format string) (DiagramConfig, bool) {
	switch format {
	case FormatSVG:
		return DiagramConfig{Format: FormatSVG, View: "active", Profile: "web", Path: "release-cycle.svg"}, true
	case FormatGantt:
		return DiagramConfig{Format: FormatGantt, View: "all", Path: "release-cycle.mmd"}, true
	default:
		return DiagramConfig{}, false
	}
}

// Load reads a YAML file over Default. An empty path returns Default.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := Decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Decode merges YAML data into cfg. Lists replace the existing value; maps are
// merged key by key.
func Decode(data []byte, cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil target")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ResolvePath joins relative output names onto OutputDir.
func (c Config) ResolvePath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.OutputDir, name)
}

// View returns the view with the given name.
func (c Config) View(name string) (ViewConfig, bool) {
	for _, v := range c.Views {
		if v.Name == name {
			return v, true
		}
	}
	return ViewConfig{}, false
}

// Formats lists the distinct diagram formats in configuration order.
func (c Config) Formats() []string {
	seen := make(map[string]bool, len(c.Diagrams))
	var out []string
	for _, d := range c.Diagrams {
		if !seen[d.Format] {
			seen[d.Format] = true
			out = append(out, d.Format)
		}
	}
	return out
}

// KeepFormats drops diagrams whose format is not listed.
func (c *Config) KeepFormats(formats []string) {
	keep := make(map[string]bool, len(formats))
	for _, f := range formats {
		keep[f] = true
	}
	filtered := c.Diagrams[:0:0]
	for _, d := range c.Diagrams {
		if keep[d.Format] {
			filtered = append(filtered, d)
		}
	}
	c.Diagrams = filtered
}
