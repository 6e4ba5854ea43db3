package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/mattn/go-isatty"

	"install-tree/internal/installer"
	"install-tree/internal/logger"
	"install-tree/internal/progress"
	"install-tree/internal/report"
)

// runInstall wires the orchestrator to the real shell and terminal, runs
// it, writes the optional report and waits for the final keypress.
func runInstall(ctx context.Context, configPath string, dryRun bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	shell := installer.ShellFor(runtime.GOOS, os.Getenv)
	orch := &installer.Orchestrator{
		ConfigPath: configPath,
		OS:         osOverride,
		Engine: &installer.Engine{
			Checker: &installer.ShellChecker{Shell: shell},
			Runner: &installer.ShellRunner{
				Shell:     shell,
				Indicator: progress.ForWriter(os.Stdout),
				Quiet:     quiet,
			},
			DryRun: dryRun,
		},
	}

	started := time.Now()
	res, err := orch.Run(ctx)

	if reportPath != "" {
		if rerr := report.Save(reportPath, report.New(configPath, dryRun, started, res, err)); rerr != nil {
			logger.Error("[ERROR] %v\n", rerr)
		}
	}
	if err != nil {
		return err
	}

	if dryRun {
		summarizeCheck(res)
	} else {
		installer.Summarize(res)
		pause()
	}

	if !res.Success {
		return errRunFailed
	}
	return nil
}

func summarizeCheck(res installer.Result) {
	counts := res.Counts()
	logger.Info("\n%d installed, %d to install, %d item commands, %d ignored\n",
		counts[installer.StatusSkipped],
		counts[installer.StatusWouldInstall],
		counts[installer.StatusWouldExecute],
		counts[installer.StatusIgnored])
}

// pause blocks until Enter is pressed, when a person is at the terminal.
func pause() {
	if noPause || !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return
	}
	fmt.Print("\nPress Enter to exit...")
	_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
}
