package installer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"install-tree/internal/logger"
	"install-tree/internal/progress"
)

// Runner executes an install command and reports its status line.
type Runner interface {
	Execute(ctx context.Context, command, description string) Execution
}

// ShellRunner runs commands through a Shell, showing a progress indicator
// while the process is in flight.
type ShellRunner struct {
	Shell     Shell
	Indicator progress.Indicator

	// Stdout and Stderr receive the child's output. When Quiet is set the
	// output is captured instead and only shown on failure.
	Stdout io.Writer
	Stderr io.Writer
	Quiet  bool
}

var _ Runner = (*ShellRunner)(nil)

// Execute runs command to completion and prints a success or failure marker
// keyed by description. It never returns an error of its own; launch
// failures are reported through Execution.Err.
func (r *ShellRunner) Execute(ctx context.Context, command, description string) Execution {
	logger.Debug("[DEBUG] Running command via %s: %s\n", r.Shell, command)

	cmd := r.Shell.Command(ctx, command)
	var captured bytes.Buffer
	if r.Quiet {
		cmd.Stdout = &captured
		cmd.Stderr = &captured
	} else {
		cmd.Stdout = orDefault(r.Stdout, os.Stdout)
		cmd.Stderr = orDefault(r.Stderr, os.Stderr)
	}

	ind := r.Indicator
	if ind == nil {
		ind = progress.Nop{}
	}

	start := time.Now()
	var err error
	progress.Run(ind, description, func() {
		err = cmd.Run()
	})
	res := Execution{ExitCode: exitCode(err), Duration: time.Since(start)}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		res.Err = err
	}

	if res.OK() {
		logger.Success("✔ %s - Success\n", description)
		return res
	}

	logger.Fail("✗ %s - Failed\n", description)
	if res.Err != nil {
		logger.Error("[ERROR] Could not run %q: %v\n", command, res.Err)
	} else {
		logger.Debug("[DEBUG] %q exited with status %d\n", command, res.ExitCode)
	}
	if r.Quiet && captured.Len() > 0 {
		logger.Error("%s\n", bytes.TrimRight(captured.Bytes(), "\n"))
	}
	return res
}

// exitCode extracts the process exit status from a Run error. Errors that
// never produced a process map to -1.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code != 0 {
			return code
		}
	}
	return -1
}

func orDefault(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}
