//go:build windows

package installer

import (
	"context"
	"os/exec"
	"syscall"
)

// cmd.exe does its own parsing of the command line, so the default argv
// escaping would mangle embedded quotes. Hand it the raw line instead.
func shellCommand(ctx context.Context, s Shell, line string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, s.Path)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine: s.cmdLine(line),
	}
	return cmd
}
