package cli

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"
)

// spinnerFrames is the braille animation cycle.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerDelay is how long an operation must run before the spinner
// paints at all, so fast operations finish without a flicker.
const spinnerDelay = 150 * time.Millisecond

// Spinner is a single-line terminal progress indicator. It paints on
// stderr so command output on stdout stays clean, and it stops painting
// as soon as its context is cancelled.
type Spinner struct {
	message string
	ctx     context.Context
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// newSpinner creates a spinner without cancellation.
func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner that stops painting when ctx
// is cancelled.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	return &Spinner{
		message: message,
		ctx:     ctx,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start begins the animation in a background goroutine.
func (s *Spinner) Start() {
	go s.run()
}

func (s *Spinner) run() {
	defer close(s.done)

	select {
	case <-s.ctx.Done():
		return
	case <-s.stop:
		return
	case <-time.After(spinnerDelay):
	}

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()
	defer s.clearLine()

	for frame := 0; ; frame++ {
		s.paint(spinnerFrames[frame%len(spinnerFrames)])
		select {
		case <-s.ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
		}
	}
}

func (s *Spinner) paint(frame string) {
	fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
}

func (s *Spinner) clearLine() {
	fmt.Fprint(os.Stderr, "\r\x1b[2K")
}

// Stop halts the animation and clears the line. It is safe to call any
// number of times and from any goroutine.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.stop) })
	<-s.done
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context ended before Stop.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
