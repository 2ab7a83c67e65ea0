package pipeline

import (
	"context"
	"image/color"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/bannerkit/pkg/raster"
)

// fakeEngine hands out fakeSessions and remembers them.
type fakeEngine struct {
	css      bool
	openErr  error
	failLoad string // banner path suffix whose Load fails

	mu       sync.Mutex
	sessions []*fakeSession
}

func (e *fakeEngine) Name() string       { return "fake" }
func (e *fakeEngine) CSSVariables() bool { return e.css }

func (e *fakeEngine) Open(ctx context.Context) (raster.Session, error) {
	if e.openErr != nil {
		return nil, e.openErr
	}
	s := &fakeSession{failLoad: e.failLoad}
	e.mu.Lock()
	e.sessions = append(e.sessions, s)
	e.mu.Unlock()
	return s, nil
}

type fakeSession struct {
	failLoad string
	loaded   []string
	w, h     int
	closed   int
}

func (s *fakeSession) Load(ctx context.Context, path string) error {
	if s.failLoad != "" && len(path) >= len(s.failLoad) && path[len(path)-len(s.failLoad):] == s.failLoad {
		return errLoad
	}
	s.loaded = append(s.loaded, path)
	return nil
}

func (s *fakeSession) SetViewport(ctx context.Context, w, h int) error {
	s.w, s.h = w, h
	return nil
}

func (s *fakeSession) Capture(ctx context.Context, path string) error {
	return imaging.Save(imaging.New(s.w, s.h, color.NRGBA{A: 0xff}), path)
}

func (s *fakeSession) Close() error {
	s.closed++
	return nil
}

type loadError struct{}

func (loadError) Error() string { return "navigation failed" }

var errLoad = loadError{}
