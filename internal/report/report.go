// Package report writes a JSON record of one installation run. The file is
// write-only output for CI logs and audits; nothing reads it back.
package report

import (
	"encoding/json" // For JSON encoding of the report file
	"fmt"
	"os"
	"time"

	"install-tree/internal/installer"
	"install-tree/internal/logger"
)

// Report is the serialised form of a run.
type Report struct {
	Config   string                   `json:"config"`
	OS       string                   `json:"os"`
	DryRun   bool                     `json:"dry_run"`
	Success  bool                     `json:"success"`
	Started  time.Time                `json:"started"`
	Finished time.Time                `json:"finished"`
	Counts   map[installer.Status]int `json:"counts"`
	Outcomes []installer.Outcome      `json:"outcomes"`
	Error    string                   `json:"error,omitempty"`
}

// New builds a Report from a run result and the error Run returned, if any.
func New(configPath string, dryRun bool, started time.Time, res installer.Result, runErr error) Report {
	r := Report{
		Config:   configPath,
		OS:       res.OS,
		DryRun:   dryRun,
		Success:  res.Success && runErr == nil,
		Started:  started.UTC(),
		Finished: time.Now().UTC(),
		Counts:   res.Counts(),
		Outcomes: res.Outcomes,
	}
	if r.Outcomes == nil {
		r.Outcomes = []installer.Outcome{}
	}
	if runErr != nil {
		r.Error = runErr.Error()
	}
	return r
}

// Save writes r to path as indented JSON with mode 0644.
func Save(path string, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	logger.Debug("[DEBUG] Writing report to %s (%d bytes)\n", path, len(data))

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
