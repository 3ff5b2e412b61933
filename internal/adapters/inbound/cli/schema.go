package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdidvp/wflint/internal/adapters/outbound/config"
	"github.com/abdidvp/wflint/internal/adapters/outbound/schema"
)

func newSchemaCmd() *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the schema workflows are validated against",
		Long:  "Print the effective JSON Schema: --schema, then the schema configured in .wflint.yaml, then the embedded GitHub workflow schema.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("resolving working directory: %w", err)
			}
			cfg, err := config.New().Load(repoRoot(cwd))
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			path := cfg.Schema
			if schemaPath != "" {
				if path, err = filepath.Abs(schemaPath); err != nil {
					return fmt.Errorf("resolving --schema: %w", err)
				}
			}

			src, err := schema.LoadSource(path, nil)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(src.Data)
			return err
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "Schema file to print instead of the configured one")

	return cmd
}
