package installer

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/fatih/color"

	"install-tree/internal/logger"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// captureLog redirects logger output for the duration of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(prev) })
	return &buf
}

type fakeChecker struct {
	installed map[string]bool
	calls     []string
}

func (f *fakeChecker) IsInstalled(_ context.Context, check string) bool {
	f.calls = append(f.calls, check)
	return f.installed[check]
}

type execCall struct {
	Command     string
	Description string
}

type fakeRunner struct {
	results map[string]Execution // keyed by command; missing means success
	calls   []execCall
}

func (f *fakeRunner) Execute(_ context.Context, command, description string) Execution {
	f.calls = append(f.calls, execCall{Command: command, Description: description})
	if res, ok := f.results[command]; ok {
		return res
	}
	return Execution{}
}
