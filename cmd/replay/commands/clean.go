package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/replay/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the scratch executable and stored results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			results, _ := cmd.Flags().GetBool("results")
			scratch, _ := cmd.Flags().GetBool("scratch")

			opts := app.CleanOptions{
				Results: results,
				Scratch: scratch,
			}

			// Default behavior: clean everything
			if !results && !scratch {
				opts.Results = true
				opts.Scratch = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().Bool("results", false, "Remove only the stored entry results")
	cmd.Flags().Bool("scratch", false, "Remove only the scratch executable directory")

	return cmd
}
