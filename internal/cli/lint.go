package cli

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/goliatone/go-releasecycle/pkg/config"
	"github.com/goliatone/go-releasecycle/pkg/dataset"
	"github.com/goliatone/go-releasecycle/pkg/orchestrator"
)

// Lint loads and builds every path without writing output, using the security
// rules from the YAML file at configPath (defaults when empty). It reports one
// line per file and returns the process exit code.
func Lint(ctx context.Context, configPath string, paths []string, stdout, stderr io.Writer, logger *zap.Logger) int {
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	rules, err := cfg.Rules()
	if err != nil {
		fmt.Fprintf(stderr, "config: security rules: %v\n", err)
		return 1
	}
	gen := orchestrator.New(orchestrator.WithLogger(logger), orchestrator.WithRules(rules))

	failed := 0
	for _, path := range paths {
		ds, err := gen.Validate(ctx, dataset.SourceFromFile(path))
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(stdout, "%s: ok (%d branches)\n", path, len(ds.Records))
	}
	if failed > 0 {
		return 1
	}
	return 0
}
