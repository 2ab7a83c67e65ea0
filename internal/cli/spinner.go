package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a status line on w until stopped or until its parent
// context ends.
type spinner struct {
	w       io.Writer
	message string

	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	stopOnce sync.Once
	stopped  chan struct{}
	mu       sync.Mutex
	frames   int
}

func newSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &spinner{
		w:       w,
		message: message,
		parent:  ctx,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// start begins the animation in the background.
func (s *spinner) start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				s.mu.Lock()
				frame := spinnerFrames[s.frames%len(spinnerFrames)]
				fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
				s.frames++
				s.mu.Unlock()
			}
		}
	}()
}

// stop ends the animation and waits for the line to be cleared. It is safe
// to call more than once.
func (s *spinner) stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		<-s.stopped
	})
}

// interrupted reports whether the parent context ended, as opposed to the
// caller stopping the spinner.
func (s *spinner) interrupted() bool {
	return s.parent.Err() != nil
}

func (s *spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// withSpinner runs fn while a spinner shows message on w, then reports the
// outcome with done or failed.
func withSpinner(ctx context.Context, w io.Writer, message, done, failed string, fn func(context.Context) error) error {
	s := newSpinner(ctx, w, message)
	s.start()
	err := fn(ctx)
	s.stop()
	if err != nil {
		printError("%s", failed)
		return err
	}
	printSuccess("%s", done)
	return nil
}
