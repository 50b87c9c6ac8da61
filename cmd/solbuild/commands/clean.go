package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove compiled artifacts and the build cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Clean(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "removed artifacts and cache")
			return nil
		},
	}
}
