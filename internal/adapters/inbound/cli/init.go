package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdidvp/wflint/internal/adapters/outbound/config"
	"github.com/abdidvp/wflint/internal/domain"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .wflint.yaml configuration file",
		Long:  "Create a .wflint.yaml with the default settings at the repository root (or the given path).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			} else {
				path = repoRoot(path)
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)
			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			if err := os.WriteFile(dest, []byte(generateConfig(domain.DefaultConfig())), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", dest)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config file")

	return cmd
}

func generateConfig(cfg domain.Config) string {
	return fmt.Sprintf(`# wflint configuration
# Directory holding workflow files, relative to the repository root.
workflow_dir: %s

# Files starting with this prefix are shared fragments, not workflows.
skip_prefix: %q

# Replace the embedded GitHub workflow schema.
# schema: schemas/github-workflow.json

# Extra schema documents registered before the schema is compiled.
# meta_schemas:
#   - schemas/json-schema-draft-06.json

# Files validated in parallel (0 = one per CPU).
jobs: %d

# auto, actions, console or json. auto uses workflow commands on GitHub Actions.
output: %s

log_level: %s
log_format: %s
`, cfg.WorkflowDir, cfg.SkipPrefix, cfg.Jobs, cfg.Output, cfg.LogLevel, cfg.LogFormat)
}
