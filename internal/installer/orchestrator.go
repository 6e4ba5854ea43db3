package installer

import (
	"context"
	"fmt"

	"install-tree/internal/config"
	"install-tree/internal/logger"
	"install-tree/internal/platform"
	"install-tree/internal/tree"
)

// Orchestrator loads a config document, selects the subtree for the host
// platform and walks it with an Engine.
type Orchestrator struct {
	ConfigPath string

	// OS forces a platform key instead of detecting the host.
	OS string

	Engine *Engine

	// Detect resolves the host platform key. Defaults to platform.Detect.
	Detect func() (string, error)
}

// Run performs one installation pass.
//
// Configuration problems (missing or malformed file, unsupported platform,
// no subtree for the platform) are returned as errors before any check or
// install command runs. Otherwise the returned Result carries every
// outcome, and Result.Success is false if any of them failed or ctx was
// cancelled part-way.
func (o *Orchestrator) Run(ctx context.Context) (Result, error) {
	doc, err := config.Load(o.ConfigPath)
	if err != nil {
		return Result{}, err
	}
	logger.Debug("[DEBUG] Loaded %s, platforms: %v\n", o.ConfigPath, doc.Platforms())

	osKey, err := o.platform()
	if err != nil {
		return Result{}, err
	}
	result := Result{OS: osKey}

	logger.Info("Starting installation for %s...\n\n", platform.Title(osKey))

	subtree, err := doc.Subtree(osKey)
	if err != nil {
		return result, err
	}
	root, err := tree.Parse(subtree)
	if err != nil {
		return result, fmt.Errorf("%w: %s: %v", config.ErrConfigParse, o.ConfigPath, err)
	}

	stats := tree.Count(root)
	logger.Debug("[DEBUG] %s tree: %d leaves, %d parameterized (%d items), %d groups, %d unrecognized\n",
		osKey, stats.Leaves, stats.Parameterized, stats.Items, stats.Groups, stats.Unrecognized)

	result.Outcomes = o.Engine.Traverse(ctx, root, nil)
	result.Success = succeeded(result.Outcomes)
	if err := ctx.Err(); err != nil {
		result.Success = false
		return result, fmt.Errorf("installation interrupted: %w", err)
	}
	return result, nil
}

func (o *Orchestrator) platform() (string, error) {
	if o.OS != "" {
		return platform.Validate(o.OS)
	}
	detect := o.Detect
	if detect == nil {
		detect = platform.Detect
	}
	return detect()
}

// Summarize prints the closing line for a run.
func Summarize(r Result) {
	counts := r.Counts()
	logger.Debug("[DEBUG] Outcomes: %v\n", counts)

	if r.Success {
		logger.Success("\nInstallation completed successfully!\n")
		return
	}
	if n := counts[StatusFailed]; n > 0 {
		logger.Fail("\nInstallation completed with errors (%d failed):\n", n)
		for _, f := range r.Failures() {
			logger.Fail("  ✗ %s\n", describe(f))
		}
		return
	}
	logger.Fail("\nInstallation completed with errors.\n")
}

func describe(o Outcome) string {
	if o.Kind == KindItem {
		return o.Label + " for " + o.Item
	}
	return o.Label
}
