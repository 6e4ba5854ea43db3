package installer

import (
	"context"
	"time"

	"install-tree/internal/logger"
	"install-tree/internal/tree"
)

// Engine walks a classified config tree and dispatches each installable
// node to the Checker and Runner. The walk is sequential and follows
// document order.
type Engine struct {
	Checker Checker
	Runner  Runner

	// DryRun runs presence checks but never executes install or item commands.
	DryRun bool
}

// Traverse walks n with path as the label prefix and returns one outcome per
// leaf, item and ignored node visited. Per-node failures are recorded, never
// returned, so one failing component does not stop the rest of the tree.
// If ctx is cancelled the walk stops before the next node.
func (e *Engine) Traverse(ctx context.Context, n tree.Node, path []string) []Outcome {
	var outcomes []Outcome
	e.walk(ctx, n, path, &outcomes)
	return outcomes
}

func (e *Engine) walk(ctx context.Context, n tree.Node, path []string, acc *[]Outcome) {
	if ctx.Err() != nil {
		return
	}

	switch v := n.(type) {
	case tree.Leaf:
		*acc = append(*acc, e.leaf(ctx, v, path))

	case tree.Parameterized:
		for _, item := range v.Items {
			if ctx.Err() != nil {
				return
			}
			*acc = append(*acc, e.item(ctx, v, item, path))
		}

	case tree.Group:
		for _, entry := range v.Entries {
			e.walk(ctx, entry.Node, tree.Extend(path, entry.Key), acc)
		}

	case tree.Sequence:
		for _, el := range v.Elements {
			e.walk(ctx, el, path, acc)
		}

	case tree.Unrecognized:
		o := newOutcome(path, KindUnrecognized)
		o.Status = StatusIgnored
		o.Error = v.Reason
		logger.Warn("[WARN] Ignoring %s: %s (line %d)\n", o.Label, v.Reason, v.Line)
		*acc = append(*acc, o)
	}
}

func (e *Engine) leaf(ctx context.Context, l tree.Leaf, path []string) Outcome {
	o := newOutcome(path, KindLeaf)
	o.Command = l.Command

	if e.Checker.IsInstalled(ctx, l.Check) {
		logger.Skip("⏩ Skipping %s (Already Installed)\n", o.Label)
		o.Status = StatusSkipped
		return o
	}

	if e.DryRun {
		logger.Info("• Would install %s: %s\n", o.Label, l.Command)
		o.Status = StatusWouldInstall
		return o
	}

	res := e.Runner.Execute(ctx, l.Command, "Installing "+o.Label)
	return settle(o, res, StatusInstalled)
}

func (e *Engine) item(ctx context.Context, p tree.Parameterized, item string, path []string) Outcome {
	o := newOutcome(path, KindItem)
	o.Item = item
	o.Command = p.Expand(item)

	if e.DryRun {
		logger.Info("• Would execute %s for %s: %s\n", o.Label, item, o.Command)
		o.Status = StatusWouldExecute
		return o
	}

	res := e.Runner.Execute(ctx, o.Command, "Executing "+o.Label+" for "+item)
	return settle(o, res, StatusExecuted)
}

func settle(o Outcome, res Execution, ok Status) Outcome {
	o.ExitCode = res.ExitCode
	o.Duration = res.Duration.Round(time.Millisecond)
	if res.Err != nil {
		o.Error = res.Err.Error()
	}
	if res.OK() {
		o.Status = ok
	} else {
		o.Status = StatusFailed
	}
	return o
}
