package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foundry-rs/compilers/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Compile the project's contract sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.app.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, d := range report.Diagnostics() {
				fmt.Fprintln(cmd.ErrOrStderr(), formatDiagnostic(d))
			}

			switch report.Outcome {
			case domain.OutcomeClean:
				fmt.Fprintf(out, "nothing to compile, %d files cached\n", len(report.Cached))
			case domain.OutcomeBuilt:
				fmt.Fprintf(out, "compiled %d jobs, %d files cached\n", len(report.Jobs), len(report.Cached))
			case domain.OutcomePartial:
				failed := report.FailedFiles()
				fmt.Fprintf(out, "compiled with errors, %d files failed\n", len(failed))
				for _, f := range failed {
					fmt.Fprintf(out, "  %s\n", f)
				}
				return domain.ErrCompilationFailed
			}
			return nil
		},
	}
}

func formatDiagnostic(d domain.Diagnostic) string {
	if d.File == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.File, d.Message)
}
