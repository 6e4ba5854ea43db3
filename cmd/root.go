package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"install-tree/internal/logger"
)

// debug flag indicates whether debug logging should be enabled.
// It can be toggled via the `--debug` command-line flag.
var debug bool

// Flags shared by the root command and `check`.
var (
	osOverride string
	reportPath string
	quiet      bool
	noPause    bool
)

// errRunFailed is returned when the run completed but not every node succeeded.
// The details have already been printed.
var errRunFailed = errors.New("installation completed with errors")

// rootCmd installs everything described for the current platform.
var rootCmd = &cobra.Command{
	Use:   "install-tree <config.yaml>",
	Short: "Install the tools described in a per-platform YAML tree",
	Long: `install-tree reads installation.tree.<os> from the given YAML file and walks it
in document order. Entries with check and command are installed when the check
fails; entries with command and items run the command once per item.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,

	// PersistentPreRun is a hook that runs before any subcommand.
	// Here, we initialize the logger based on the debug flag.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInstall(cmd.Context(), args[0], false)
	},
}

// init sets up CLI flags and adds subcommands to the root command.
func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&osOverride, "os", "", "Platform key to install for (windows, macos, linux); detected when empty")
	rootCmd.PersistentFlags().StringVar(&reportPath, "report", "", "Write a JSON report of the run to this file")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Capture command output and only show it on failure")
	rootCmd.Flags().BoolVar(&noPause, "no-pause", false, "Exit without waiting for Enter at the end of the run")

	rootCmd.AddCommand(checkCmd)
}

// Execute runs the CLI and exits non-zero on any error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errRunFailed) {
			logger.Error("[ERROR] %v\n", err)
		}
		os.Exit(1)
	}
}
