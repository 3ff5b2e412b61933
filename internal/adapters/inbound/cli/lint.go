package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abdidvp/wflint/internal/adapters/outbound/config"
	"github.com/abdidvp/wflint/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/wflint/internal/adapters/outbound/parser"
	"github.com/abdidvp/wflint/internal/adapters/outbound/report"
	"github.com/abdidvp/wflint/internal/adapters/outbound/scanner"
	"github.com/abdidvp/wflint/internal/adapters/outbound/schema"
	"github.com/abdidvp/wflint/internal/adapters/outbound/tui"
	"github.com/abdidvp/wflint/internal/application"
	"github.com/abdidvp/wflint/internal/domain"
	"github.com/abdidvp/wflint/internal/logging"
)

// envLogLevel overrides the configured log level.
const envLogLevel = "WFLINT_LOG_LEVEL"

type lintOptions struct {
	dir         string
	skipPrefix  string
	schema      string
	metaSchemas []string
	jobs        int
	output      string
	jsonOutput  bool
	verbose     bool
	logLevel    string
	logFormat   string
}

func (o *lintOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.dir, "dir", "", "Workflow directory (default: .github/workflows at the repository root)")
	f.StringVar(&o.skipPrefix, "skip-prefix", "", "Skip files whose name starts with this prefix (default \"_\")")
	f.StringVar(&o.schema, "schema", "", "Validate against this JSON Schema file instead of the embedded one")
	f.StringArrayVar(&o.metaSchemas, "meta-schema", nil, "Register an extra schema document before compiling (repeatable)")
	f.IntVarP(&o.jobs, "jobs", "j", 0, "Files validated in parallel (0 = one per CPU, default from config: 1)")
	f.StringVarP(&o.output, "output", "o", "", "Output format: auto, actions, console, json")
	f.BoolVar(&o.jsonOutput, "json", false, "Shorthand for --output json")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	f.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.StringVar(&o.logFormat, "log-format", "", "Log format: console, json")
}

// overrides turns the flags that were set into a config overlay. Paths are
// made absolute against the working directory.
func (o *lintOptions) overrides(cmd *cobra.Command) (domain.Config, error) {
	var cfg domain.Config
	var err error

	if o.dir != "" {
		if cfg.WorkflowDir, err = filepath.Abs(o.dir); err != nil {
			return cfg, fmt.Errorf("resolving --dir: %w", err)
		}
	}
	if o.schema != "" {
		if cfg.Schema, err = filepath.Abs(o.schema); err != nil {
			return cfg, fmt.Errorf("resolving --schema: %w", err)
		}
	}
	for _, m := range o.metaSchemas {
		abs, err := filepath.Abs(m)
		if err != nil {
			return cfg, fmt.Errorf("resolving --meta-schema: %w", err)
		}
		cfg.MetaSchemas = append(cfg.MetaSchemas, abs)
	}

	cfg.SkipPrefix = o.skipPrefix
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = o.jobs
		if o.jobs == 0 {
			// Merge ignores zero values; -1 is mapped back below.
			cfg.Jobs = -1
		}
	}
	cfg.Output = domain.OutputMode(o.output)
	if o.jsonOutput {
		cfg.Output = domain.OutputJSON
	}

	cfg.LogLevel = os.Getenv(envLogLevel)
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.verbose {
		cfg.LogLevel = "debug"
	}
	cfg.LogFormat = o.logFormat
	return cfg, nil
}

// jsonReport is the body written by --output json.
type jsonReport struct {
	Passed bool           `json:"passed"`
	Files  domain.Outcome `json:"files"`
	Error  string         `json:"error,omitempty"`
}

func runLint(cmd *cobra.Command, opts *lintOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	root := repoRoot(cwd)

	overlay, err := opts.overrides(cmd)
	if err != nil {
		return err
	}
	cfg, cfgErr := loadConfig(root, overlay)
	if cfgErr != nil {
		// The sink and logger still need settings; the flags and environment
		// decide them alone.
		cfg = domain.DefaultConfig().Merge(overlay)
		if !slices.Contains(domain.ValidOutputModes, cfg.Output) {
			cfg.Output = domain.OutputAuto
		}
	}

	log := logging.WithComponent(
		logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, cmd.ErrOrStderr()),
		"cli",
	)

	dir := displayPath(cwd, resolve(root, cfg.WorkflowDir))
	log.Debug().Str("root", root).Str("dir", dir).Msg("resolved workflow directory")

	out := cmd.OutOrStdout()
	mode := report.Resolve(cfg.Output, os.Getenv)
	sink := newSink(mode, out)

	outcome, runErr := application.Run(sink, log, func() (domain.Outcome, error) {
		if cfgErr != nil {
			return nil, cfgErr
		}
		svc, err := newLintService(cfg, log)
		if err != nil {
			return nil, err
		}
		return svc.ValidateDir(dir)
	})

	if mode == domain.OutputJSON {
		if err := writeJSON(out, outcome, runErr); err != nil {
			return err
		}
	}
	return runErr
}

// loadConfig reads .wflint.yaml under root, applies the flag overlay and
// validates the result.
func loadConfig(root string, overlay domain.Config) (domain.Config, error) {
	cfg, err := config.New().Load(root)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	cfg = cfg.Merge(overlay)
	if cfg.Jobs < 0 {
		cfg.Jobs = 0
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

// newLintService compiles the configured schema once and wires the pipeline.
func newLintService(cfg domain.Config, log zerolog.Logger) (*application.LintService, error) {
	src, err := schema.LoadSource(cfg.Schema, cfg.MetaSchemas)
	if err != nil {
		return nil, err
	}
	v, err := schema.Compile(src, logging.WithComponent(log, "schema"))
	if err != nil {
		return nil, err
	}
	return application.NewLintService(
		scanner.New(cfg.SkipPrefix),
		parser.New(),
		v,
		cfg.Jobs,
		logging.WithComponent(log, "lint"),
	), nil
}

func newSink(mode domain.OutputMode, w io.Writer) domain.ReportSink {
	switch mode {
	case domain.OutputActions:
		return report.NewActionsSink(w)
	case domain.OutputJSON:
		return report.NewRecorder()
	default:
		return tui.NewConsoleSink(w)
	}
}

func writeJSON(w io.Writer, outcome domain.Outcome, runErr error) error {
	body := jsonReport{Passed: runErr == nil, Files: outcome}
	if body.Files == nil {
		body.Files = domain.Outcome{}
	}
	if runErr != nil && outcome == nil {
		body.Error = runErr.Error()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(body)
}

// repoRoot returns the enclosing git worktree root, or path itself when it
// is not inside a repository.
func repoRoot(path string) string {
	root, err := gitinfo.New().Root(path)
	if err != nil {
		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			return path
		}
		return abs
	}
	return root
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// displayPath shortens abs relative to the working directory so report
// lines and annotations carry repository-relative paths.
func displayPath(cwd, abs string) string {
	rel, err := filepath.Rel(cwd, abs)
	if err != nil {
		return abs
	}
	return rel
}
