package logger

import (
	"io"
	"os"

	"github.com/fatih/color" // Import the fatih/color package for colored console output
)

// Define colorized printing functions for different log levels using fatih/color.
// These are package-level variables holding functions that behave like fmt.Printf,
// but with text colored appropriately for the log level.

var (
	infoColor    = color.New(color.FgGreen)
	warnColor    = color.New(color.FgHiMagenta)
	errorColor   = color.New(color.FgRed)
	debugColor   = color.New(color.FgCyan)
	successColor = color.New(color.FgHiGreen)
	failColor    = color.New(color.FgHiRed)
	skipColor    = color.New(color.FgYellow)
)

// out is where every level writes. Tests swap it through SetOutput.
var out io.Writer = os.Stdout

// Info logs informational messages in green color.
var Info = printer(infoColor)

// Warn logs warning messages in bright magenta color.
// Unrecognized config nodes are reported through Warn.
var Warn = printer(warnColor)

// Error logs error messages in red color.
var Error = printer(errorColor)

// Success prints the per-node success marker line (bright green).
var Success = printer(successColor)

// Fail prints the per-node failure marker line (bright red).
var Fail = printer(failColor)

// Skip prints the "already installed" line (yellow).
var Skip = printer(skipColor)

// Debug logs debug messages in cyan color if enabled, otherwise is a no-op.
// This is a function variable that is assigned dynamically during Init based on debug flag.
var Debug = func(format string, a ...any) {}

// Init initializes the logger package, specifically enabling or disabling debug logging.
// When enabled, Debug will print messages in cyan color.
// When disabled, Debug will be a no-op function that silently ignores debug logs.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = printer(debugColor)
	} else {
		Debug = func(format string, a ...any) {}
	}
}

// SetOutput redirects all levels to w and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	prev := out
	out = w
	return prev
}

// Output returns the writer the levels currently print to.
func Output() io.Writer {
	return out
}

func printer(c *color.Color) func(format string, a ...any) {
	return func(format string, a ...any) {
		_, _ = c.Fprintf(out, format, a...)
	}
}
