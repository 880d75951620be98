package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newCaptureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capture [entry]",
		Short: "Print the compiler invocation the build tool uses for an entry",
		Long: "Runs a verbose build of the entry (the configured reference by default) " +
			"and prints the last compiler command the build tool announced.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var entry string
			if len(args) == 1 {
				entry = args[0]
			}
			return c.app.Capture(cmd.Context(), entry)
		},
	}
}
