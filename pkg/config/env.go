package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv.
const (
	EnvInput      = "RELEASE_CYCLE_INPUT"
	EnvOutputDir  = "RELEASE_CYCLE_OUTPUT_DIR"
	EnvToday      = "RELEASE_CYCLE_TODAY"
	EnvMinRecords = "RELEASE_CYCLE_MIN_RECORDS"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadDotEnv loads .env style files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overrides settings from RELEASE_CYCLE_* variables. A nil lookup
// uses os.LookupEnv.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvInput); ok && strings.TrimSpace(v) != "" {
		c.Input = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvOutputDir); ok && strings.TrimSpace(v) != "" {
		c.OutputDir = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvToday); ok && strings.TrimSpace(v) != "" {
		c.Today = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvMinRecords); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", EnvMinRecords, v, err)
		}
		c.MinRecords = n
	}
	return nil
}
