package main

import (
	"install-tree/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// install-tree walks installation.tree.<os> in a YAML document:
//   - entries with `check` and `command` are installed when the check command fails
//   - entries with `command` and `items` run the command once per item
//   - any other mapping is a group and is walked recursively, adding its key to the
//     "A > B > C" label printed next to each status line
//
// Every status line is printed as the walk goes; one failing entry never stops the
// rest. The process exits 1 when the config is missing or malformed, when there is
// no tree for the platform, or when any entry failed.
func main() {
	cmd.Execute()
}
