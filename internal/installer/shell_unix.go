//go:build !windows

package installer

import (
	"context"
	"os/exec"
)

func shellCommand(ctx context.Context, s Shell, line string) *exec.Cmd {
	return exec.CommandContext(ctx, s.Path, s.Flag, line)
}
