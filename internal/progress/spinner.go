// Package progress draws a rotating glyph next to a message while a command
// runs. It is purely cosmetic: nothing in the installer depends on it other
// than the guarantee that Stop clears the line before returning.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// DefaultInterval is the redraw period.
const DefaultInterval = 100 * time.Millisecond

// DefaultFrames is the glyph cycle.
var DefaultFrames = []string{"|", "/", "-", "\\"}

// Indicator shows activity while a blocking operation is in flight.
type Indicator interface {
	// Start begins drawing message. Calling Start on a running indicator is a no-op.
	Start(message string)
	// Stop halts drawing, waits for the drawing goroutine to exit and clears the line.
	Stop()
}

// Spinner redraws "\r<message> <frame>" on its writer at a fixed interval.
type Spinner struct {
	w        io.Writer
	interval time.Duration
	frames   []string

	mu      sync.Mutex
	running bool
	message string
	stopCh  chan struct{}
	doneCh  chan struct{}
}

var _ Indicator = (*Spinner)(nil)

// Option customises a Spinner.
type Option func(*Spinner)

// WithInterval overrides the redraw period.
func WithInterval(d time.Duration) Option {
	return func(s *Spinner) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithFrames overrides the glyph cycle.
func WithFrames(frames ...string) Option {
	return func(s *Spinner) {
		if len(frames) > 0 {
			s.frames = frames
		}
	}
}

// NewSpinner creates a stopped spinner writing to w.
func NewSpinner(w io.Writer, opts ...Option) *Spinner {
	s := &Spinner{w: w, interval: DefaultInterval, frames: DefaultFrames}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the drawing goroutine.
func (s *Spinner) Start(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.message = message
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	go s.spin(message, s.stopCh, s.doneCh)
}

// Stop signals the drawing goroutine and blocks until it has cleared the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	done := s.doneCh
	s.mu.Unlock()

	<-done
}

// IsRunning reports whether the drawing goroutine is active.
func (s *Spinner) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Spinner) spin(message string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	frame := 0
	for {
		_, _ = fmt.Fprintf(s.w, "\r%s %s", message, s.frames[frame%len(s.frames)])
		frame++
		select {
		case <-stop:
			// Overwrite the spinner line so the next status line starts clean.
			_, _ = fmt.Fprintf(s.w, "\r%*s\r", len(message)+2, "")
			return
		case <-ticker.C:
		}
	}
}

// Nop is an Indicator that draws nothing. It is used when output is not a
// terminal, where carriage-return redraws would only litter logs.
type Nop struct{}

func (Nop) Start(string) {}
func (Nop) Stop()        {}

// ForWriter returns a Spinner when w is a terminal and Nop otherwise.
func ForWriter(w io.Writer) Indicator {
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return NewSpinner(w)
	}
	return Nop{}
}

// Run shows message on ind while fn executes. The indicator is stopped on
// every exit path, including a panic in fn.
func Run(ind Indicator, message string, fn func()) {
	ind.Start(message)
	defer ind.Stop()
	fn()
}
