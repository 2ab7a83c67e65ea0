package raster

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/matzehuels/bannerkit/pkg/errors"
	bkio "github.com/matzehuels/bannerkit/pkg/io"
)

const rsvgBinary = "rsvg-convert"

// RSVG renders by running rsvg-convert once per capture.
type RSVG struct {
	binary string
}

// RSVGOption configures the rsvg engine.
type RSVGOption func(*RSVG)

// WithRSVGBinary overrides the rsvg-convert executable.
func WithRSVGBinary(path string) RSVGOption {
	return func(r *RSVG) { r.binary = path }
}

// NewRSVG returns an rsvg-convert engine.
func NewRSVG(opts ...RSVGOption) *RSVG {
	r := &RSVG{binary: rsvgBinary}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RSVG) Name() string       { return EngineRSVG }
func (r *RSVG) CSSVariables() bool { return false }

// Open checks that the binary is installed. rsvg-convert has no long-lived
// process, so the session only tracks the loaded document and viewport.
func (r *RSVG) Open(ctx context.Context) (Session, error) {
	bin, err := exec.LookPath(r.binary)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEngineUnavailable, err,
			"rsvg engine requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin")
	}
	return &rsvgSession{binary: bin}, nil
}

type rsvgSession struct {
	binary        string
	document      string
	width, height int
}

func (s *rsvgSession) Load(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	s.document = path
	return nil
}

func (s *rsvgSession) SetViewport(ctx context.Context, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid viewport %dx%d", width, height)
	}
	s.width, s.height = width, height
	return nil
}

func (s *rsvgSession) Capture(ctx context.Context, path string) error {
	if s.document == "" {
		return fmt.Errorf("no document loaded")
	}
	if s.width == 0 || s.height == 0 {
		return fmt.Errorf("viewport not set")
	}

	cmd := exec.CommandContext(ctx, s.binary,
		"-f", "png",
		"--width", strconv.Itoa(s.width),
		"--height", strconv.Itoa(s.height),
		s.document,
	)
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return bkio.WriteFile(path, out.Bytes(), bkio.DefaultPerm)
}

func (s *rsvgSession) Close() error { return nil }
