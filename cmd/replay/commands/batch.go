package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/replay/internal/app"
)

func (c *CLI) newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [entries...]",
		Short: "Capture the reference entry, then build and run every entry",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			noRun, _ := cmd.Flags().GetBool("no-run")
			failFast, _ := cmd.Flags().GetBool("fail-fast")

			return c.app.Batch(cmd.Context(), app.BatchOptions{
				Entries:  args,
				NoRun:    noRun,
				FailFast: failFast,
			})
		},
	}

	cmd.Flags().Bool("no-run", false, "Only validate entries with a dep-info build")
	cmd.Flags().Bool("fail-fast", false, "Stop at the first failed entry")

	return cmd
}
