package cli

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"sync"
	"sync/atomic"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/bannerkit/pkg/raster"
)

// fakeEngine hands out fakeSessions and counts them.
type fakeEngine struct {
	css     bool
	openErr error

	opened atomic.Int32

	mu       sync.Mutex
	sessions []*fakeSession
}

func (e *fakeEngine) Name() string       { return "fake" }
func (e *fakeEngine) CSSVariables() bool { return e.css }

func (e *fakeEngine) Open(ctx context.Context) (raster.Session, error) {
	if e.openErr != nil {
		return nil, e.openErr
	}
	e.opened.Add(1)
	s := &fakeSession{}
	e.mu.Lock()
	e.sessions = append(e.sessions, s)
	e.mu.Unlock()
	return s, nil
}

// fakeSession rasterizes to a blank image of the viewport size and fails
// if two calls ever overlap.
type fakeSession struct {
	inFlight atomic.Int32
	overlap  atomic.Bool

	w, h    int
	lastDoc string
	closed  atomic.Int32
}

func (s *fakeSession) enter() func() {
	if s.inFlight.Add(1) > 1 {
		s.overlap.Store(true)
	}
	return func() { s.inFlight.Add(-1) }
}

func (s *fakeSession) Load(ctx context.Context, path string) error {
	defer s.enter()()
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	s.lastDoc = string(data)
	return nil
}

func (s *fakeSession) SetViewport(ctx context.Context, w, h int) error {
	defer s.enter()()
	s.w, s.h = w, h
	return nil
}

func (s *fakeSession) Capture(ctx context.Context, path string) error {
	defer s.enter()()
	return imaging.Save(imaging.New(s.w, s.h, color.NRGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}), path)
}

func (s *fakeSession) Close() error {
	s.closed.Add(1)
	return nil
}
