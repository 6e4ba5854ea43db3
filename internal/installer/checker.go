package installer

import (
	"bytes"
	"context"

	"install-tree/internal/logger"
)

// Checker decides whether a unit is already present.
type Checker interface {
	IsInstalled(ctx context.Context, check string) bool
}

// ShellChecker runs check commands through a Shell. A check passes only
// when the command exits 0; any failure to launch counts as not installed.
type ShellChecker struct {
	Shell Shell
}

var _ Checker = (*ShellChecker)(nil)

// IsInstalled runs check with its output captured and discarded.
func (c *ShellChecker) IsInstalled(ctx context.Context, check string) bool {
	cmd := c.Shell.Command(ctx, check)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		logger.Debug("[DEBUG] Check %q: %v\n", check, err)
		if out.Len() > 0 {
			logger.Debug("[DEBUG] Check output: %s\n", bytes.TrimSpace(out.Bytes()))
		}
		return false
	}
	logger.Debug("[DEBUG] Check %q passed\n", check)
	return true
}
