package installer

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"install-tree/internal/logger"
)

// Shell is the interpreter used for check and install command strings.
type Shell struct {
	Path string // Executable, e.g. /bin/sh or cmd.exe
	Flag string // Flag that introduces the command string, e.g. -c or /c
}

// Command builds an exec.Cmd that runs line through the shell.
// The line is passed verbatim; no quoting is applied.
func (s Shell) Command(ctx context.Context, line string) *exec.Cmd {
	return shellCommand(ctx, s, line)
}

// cmdLine is the raw Windows command line for running line through s. The
// executable is quoted since %ComSpec% may contain spaces.
func (s Shell) cmdLine(line string) string {
	return fmt.Sprintf(`"%s" %s "%s"`, s.Path, s.Flag, line)
}

func (s Shell) String() string {
	return s.Path + " " + s.Flag
}

// ShellFor picks the shell for the given GOOS. On Windows this is %ComSpec%
// (falling back to cmd.exe). Elsewhere it is the user's login shell when that
// is zsh or bash, and /bin/sh otherwise, since config commands are written
// for a POSIX shell.
func ShellFor(goos string, getenv func(string) string) Shell {
	if goos == "windows" {
		comspec := getenv("ComSpec")
		if comspec == "" {
			comspec = "cmd.exe"
		}
		return Shell{Path: comspec, Flag: "/c"}
	}

	shell := getenv("SHELL")
	logger.Debug("[DEBUG] Detected shell environment: %s\n", shell)
	if strings.Contains(shell, "zsh") || strings.Contains(shell, "bash") {
		return Shell{Path: shell, Flag: "-c"}
	}
	return Shell{Path: "/bin/sh", Flag: "-c"}
}
