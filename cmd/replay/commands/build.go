package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/replay/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <entries...>",
		Short: "Compile entries directly with the compiler driver",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			run, _ := cmd.Flags().GetBool("run")

			return c.app.Build(cmd.Context(), args, app.BuildOptions{Run: run})
		},
	}

	cmd.Flags().BoolP("run", "r", false, "Link each entry and run it after a successful build")

	return cmd
}
