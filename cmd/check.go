package cmd

import (
	"github.com/spf13/cobra"
)

// checkCmd runs every presence check and lists what a real run would do,
// without installing anything.
var checkCmd = &cobra.Command{
	Use:           "check <config.yaml>",
	Short:         "Show which entries are installed without changing anything",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInstall(cmd.Context(), args[0], true)
	},
}
