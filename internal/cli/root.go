// Package cli implements the release-cycle command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-releasecycle/pkg/config"
	"github.com/goliatone/go-releasecycle/pkg/model"
	"github.com/goliatone/go-releasecycle/pkg/orchestrator"
	"github.com/goliatone/go-releasecycle/pkg/prompt"
)

// Deps carries the process boundaries so the command can run in tests.
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Lookup config.LookupFunc
	Driver prompt.Driver
	Now    func() time.Time
	// Logger overrides the logger built from --verbose.
	Logger *zap.Logger
}

type options struct {
	configPath  string
	envFile     string
	input       string
	outputDir   string
	today       string
	formats     []string
	verbose     bool
	interactive bool
}

// NewRootCommand returns the release-cycle command.
func NewRootCommand(deps Deps) *cobra.Command {
	deps = deps.withDefaults()
	var opts options

	cmd := &cobra.Command{
		Use:   "release-cycle",
		Short: "Generate release cycle tables and diagrams",
		Long: "Reads a JSON table of branch lifecycles and writes the branch and\n" +
			"end-of-life CSV tables plus SVG timelines or Mermaid Gantt charts.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, deps, opts)
		},
	}
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading RELEASE_CYCLE_* variables")
	flags.StringVar(&opts.input, "input", "", "release cycle JSON document")
	flags.StringVar(&opts.outputDir, "output-dir", "", "directory receiving the generated files")
	flags.StringVar(&opts.today, "today", "", "build date as YYYY-MM-DD (default: current UTC date)")
	flags.StringSliceVar(&opts.formats, "format", nil, "diagram formats to emit (svg, gantt)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for the build date, formats and overwrites")

	return cmd
}

// Execute runs the command with args and returns the process exit code.
func Execute(ctx context.Context, args []string, deps Deps) int {
	deps = deps.withDefaults()
	cmd := NewRootCommand(deps)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "release-cycle: %v\n", err)
		return 1
	}
	return 0
}

func (d Deps) withDefaults() Deps {
	if d.Stdout == nil {
		d.Stdout = os.Stdout
	}
	if d.Stderr == nil {
		d.Stderr = os.Stderr
	}
	if d.Lookup == nil {
		d.Lookup = os.LookupEnv
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

func run(cmd *cobra.Command, deps Deps, opts options) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := deps.Logger
	if logger == nil {
		built, err := NewLogger(opts.verbose)
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		logger = built
		defer func() { _ = logger.Sync() }()
	}

	cfg, err := loadConfig(cmd, deps, opts)
	if err != nil {
		return err
	}

	var session *prompt.Session
	if opts.interactive {
		session = prompt.NewSession(deps.Driver)
		if err := askSettings(ctx, session, &cfg, deps.Now); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	gen := orchestrator.New(
		orchestrator.WithLogger(logger),
		orchestrator.WithClock(deps.Now),
	)
	result, err := gen.Plan(ctx, orchestrator.Request{Config: cfg})
	if err != nil {
		return err
	}

	if session != nil {
		ok, err := session.ConfirmOverwrite(ctx, existingFiles(result.Paths()))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(deps.Stdout, "nothing written")
			return nil
		}
	}

	if err := gen.Write(ctx, result); err != nil {
		return err
	}
	for _, path := range result.Paths() {
		fmt.Fprintf(deps.Stdout, "wrote %s\n", path)
	}
	return nil
}

// loadConfig layers defaults, the YAML file, the environment and flags.
func loadConfig(cmd *cobra.Command, deps Deps, opts options) (config.Config, error) {
	if opts.envFile != "" {
		if err := config.LoadDotEnv(opts.envFile); err != nil {
			return config.Config{}, err
		}
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.ApplyEnv(deps.Lookup); err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = opts.input
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = opts.outputDir
	}
	if flags.Changed("today") {
		cfg.Today = opts.today
	}
	if flags.Changed("format") {
		formats := normaliseFormats(opts.formats)
		for _, f := range formats {
			if _, ok := config.DefaultDiagram(f); !ok {
				return config.Config{}, fmt.Errorf("%w: unknown format %q", config.ErrInvalid, f)
			}
			ensureDiagram(&cfg, f)
		}
		cfg.KeepFormats(formats)
	}
	return cfg, nil
}

func askSettings(ctx context.Context, session *prompt.Session, cfg *config.Config, now func() time.Time) error {
	def, err := cfg.TodayDate(now)
	if err != nil {
		return err
	}
	today, err := session.AskToday(ctx, def)
	if err != nil {
		return err
	}
	cfg.Today = model.FormatDate(today)

	formats, err := session.AskFormats(ctx, []string{config.FormatSVG, config.FormatGantt}, cfg.Formats())
	if err != nil {
		return err
	}
	for _, f := range formats {
		ensureDiagram(cfg, f)
	}
	cfg.KeepFormats(formats)
	return nil
}

// ensureDiagram adds the stock diagram for format when none is configured.
func ensureDiagram(cfg *config.Config, format string) {
	for _, d := range cfg.Diagrams {
		if d.Format == format {
			return
		}
	}
	if d, ok := config.DefaultDiagram(format); ok {
		cfg.Diagrams = append(cfg.Diagrams, d)
	}
}

func normaliseFormats(in []string) []string {
	out := make([]string, 0, len(in))
	for _, f := range in {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func existingFiles(paths []string) []string {
	var out []string
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			out = append(out, path)
		} else if !errors.Is(err, os.ErrNotExist) {
			out = append(out, path)
		}
	}
	return out
}
