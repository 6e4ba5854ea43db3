package installer

import (
	"time"

	"install-tree/internal/tree"
)

// Status is what happened to one node during a run.
type Status string

const (
	StatusInstalled    Status = "installed"     // install command exited 0
	StatusSkipped      Status = "skipped"       // check command exited 0
	StatusFailed       Status = "failed"        // install or item command did not exit 0
	StatusExecuted     Status = "executed"      // item command exited 0
	StatusIgnored      Status = "ignored"       // unrecognized node
	StatusWouldInstall Status = "would-install" // dry run, leaf not present
	StatusWouldExecute Status = "would-execute" // dry run, item command
)

// Kind identifies the node shape an outcome came from.
type Kind string

const (
	KindLeaf         Kind = "leaf"
	KindItem         Kind = "item"
	KindUnrecognized Kind = "unrecognized"
)

// Outcome records a single leaf, item or ignored node.
type Outcome struct {
	Path     []string      `json:"path"`
	Label    string        `json:"label"`
	Kind     Kind          `json:"kind"`
	Status   Status        `json:"status"`
	Command  string        `json:"command,omitempty"`
	Item     string        `json:"item,omitempty"`
	ExitCode int           `json:"exit_code"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns,omitempty"`
}

// Failed reports whether the outcome counts against the run.
func (o Outcome) Failed() bool {
	return o.Status == StatusFailed
}

// Execution is the result of running one command.
type Execution struct {
	ExitCode int
	Err      error
	Duration time.Duration
}

// OK reports whether the command launched and exited 0.
func (e Execution) OK() bool {
	return e.Err == nil && e.ExitCode == 0
}

// Result is the aggregate of one installation run.
type Result struct {
	OS       string    `json:"os"`
	Outcomes []Outcome `json:"outcomes"`
	Success  bool      `json:"success"`
}

// Failures returns the failed outcomes in traversal order.
func (r Result) Failures() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Failed() {
			out = append(out, o)
		}
	}
	return out
}

// Counts tallies outcomes per status.
func (r Result) Counts() map[Status]int {
	counts := make(map[Status]int)
	for _, o := range r.Outcomes {
		counts[o.Status]++
	}
	return counts
}

// succeeded folds outcomes into the run's success flag.
func succeeded(outcomes []Outcome) bool {
	for _, o := range outcomes {
		if o.Failed() {
			return false
		}
	}
	return true
}

func newOutcome(path []string, kind Kind) Outcome {
	return Outcome{Path: path, Label: labelOf(path), Kind: kind}
}

func labelOf(path []string) string {
	if len(path) == 0 {
		return "<root>"
	}
	return tree.Label(path)
}
