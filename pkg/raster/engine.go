package raster

import (
	"context"
	"sort"

	"github.com/matzehuels/bannerkit/pkg/errors"
)

// Engine names accepted by [Lookup].
const (
	EngineChrome = "chrome"
	EngineRSVG   = "rsvg"
)

// DefaultEngine is used when no engine is configured.
const DefaultEngine = EngineChrome

// Engine starts renderer sessions.
type Engine interface {
	// Name identifies the engine in logs and configuration.
	Name() string
	// CSSVariables reports whether documents may use var(--…) references.
	CSSVariables() bool
	// Open starts a session. Callers must Close it.
	Open(ctx context.Context) (Session, error)
}

// Session is a live renderer. Calls must not overlap.
type Session interface {
	// Load opens the document stored at path.
	Load(ctx context.Context, path string) error
	// SetViewport sizes the visible area in CSS pixels at scale 1.
	SetViewport(ctx context.Context, width, height int) error
	// Capture writes the visible area as a PNG image to path.
	Capture(ctx context.Context, path string) error
	// Close releases the renderer. It is safe to call more than once.
	Close() error
}

var engines = map[string]func() Engine{
	EngineChrome: func() Engine { return NewChrome() },
	EngineRSVG:   func() Engine { return NewRSVG() },
}

// Lookup returns the engine registered under name with default settings.
// An empty name selects [DefaultEngine].
func Lookup(name string) (Engine, error) {
	if name == "" {
		name = DefaultEngine
	}
	newEngine, ok := engines[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidEngine, "unknown engine %q (available: %v)", name, Engines())
	}
	return newEngine(), nil
}

// Engines returns the registered engine names, sorted.
func Engines() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
