package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abdidvp/wflint/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	opts := &lintOptions{}

	cmd := &cobra.Command{
		Use:   "wflint",
		Short: "Validate GitHub Actions workflow files",
		Long: "wflint checks every workflow file in a directory against the workflow JSON Schema " +
			"and reports each invalid file with all of its errors. It exits non-zero when any file is invalid.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, opts)
		},
	}
	opts.bind(cmd)

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newSchemaCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the CLI. Errors already surfaced through a report sink are
// not printed again.
func Execute() error {
	cmd := newRootCmd()
	err := cmd.Execute()
	if err != nil && !errors.Is(err, domain.ErrWorkflowsInvalid) && !errors.Is(err, domain.ErrUnhandled) {
		fmt.Fprintf(os.Stderr, "wflint: %v\n", err)
	}
	return err
}
