package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bannerkit/pkg/errors"
	"github.com/matzehuels/bannerkit/pkg/manifest"
	"github.com/matzehuels/bannerkit/pkg/variant"
)

func quietLogger() *log.Logger {
	l := log.New(os.Stderr)
	l.SetLevel(log.FatalLevel)
	return l
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.OutDir != DefaultOutDir {
		t.Errorf("OutDir = %q, want %q", opts.OutDir, DefaultOutDir)
	}
	if opts.Generator != DefaultGenerator {
		t.Errorf("Generator = %q, want %q", opts.Generator, DefaultGenerator)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call error = %v", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", Options{}, false},
		{"good glob", Options{Only: []string{"chrome-*"}}, false},
		{"bad glob", Options{Only: []string{"chrome-["}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAndSetDefaults() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPlanAll(t *testing.T) {
	planned, err := PlanAll(variant.Default(), manifest.Default())
	if err != nil {
		t.Fatalf("PlanAll() error = %v", err)
	}

	want := map[string]string{
		"github-social-preview": variant.NameHorizontal,
		"chrome-small-promo":    variant.NameHorizontal,
		"chrome-large-promo":    variant.NameVertical,
		"chrome-marquee-promo":  variant.NameHorizontal,
	}
	if len(planned) != len(want) {
		t.Fatalf("PlanAll() returned %d plans, want %d", len(planned), len(want))
	}
	for _, p := range planned {
		if got := p.Plan.Variant.Name; got != want[p.Canvas.Name] {
			t.Errorf("%s: variant = %s, want %s", p.Canvas.Name, got, want[p.Canvas.Name])
		}
		if len(p.Candidates) != 2 {
			t.Errorf("%s: %d candidates, want 2", p.Canvas.Name, len(p.Candidates))
		}
		if p.Document.Width != p.Canvas.Width || p.Document.Height != p.Canvas.Height {
			t.Errorf("%s: document size %dx%d", p.Canvas.Name, p.Document.Width, p.Document.Height)
		}
	}
}

func TestPlanAllRejectsBadManifest(t *testing.T) {
	_, err := PlanAll(variant.Default(), []manifest.Canvas{{Name: "x", Width: 0, Height: 10}})
	if !errors.IsConfiguration(err) {
		t.Errorf("PlanAll() error = %v, want configuration error", err)
	}
}

func TestComposeOptions(t *testing.T) {
	c := manifest.Canvas{Name: "x", Width: 400, Height: 200}

	styled, err := PlanOne(context.Background(), variant.Default(), c, ComposeOptions(&fakeEngine{css: true}, "")...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(styled.Document.String(), "var(--background-color)") {
		t.Error("CSS-capable engine should get palette bindings")
	}

	inline, err := PlanOne(context.Background(), variant.Default(), c, ComposeOptions(&fakeEngine{css: false}, "test")...)
	if err != nil {
		t.Fatal(err)
	}
	s := inline.Document.String()
	if strings.Contains(s, "var(") {
		t.Error("engine without CSS variables should get an inline palette")
	}
	if !strings.Contains(s, "Generated by test,") {
		t.Error("generator label should be applied")
	}
}

func TestRunnerRun(t *testing.T) {
	dir := t.TempDir()
	engine := &fakeEngine{css: true}
	runner := NewRunner(engine, variant.Default(), quietLogger())

	res, err := runner.Run(context.Background(), manifest.Default(), Options{OutDir: dir})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if res.RunID == "" {
		t.Error("RunID should be set")
	}
	if res.Stats.Banners != 4 || res.Stats.Rendered != 4 || len(res.Artifacts) != 4 {
		t.Errorf("stats = %+v, artifacts = %d", res.Stats, len(res.Artifacts))
	}
	if len(engine.sessions) != 1 {
		t.Fatalf("opened %d sessions, want exactly 1", len(engine.sessions))
	}
	if engine.sessions[0].closed != 1 {
		t.Errorf("session closed %d times, want 1", engine.sessions[0].closed)
	}

	for i, c := range manifest.Default() {
		e := res.Artifacts[i]
		if e.Artifact.Name != c.Name {
			t.Errorf("artifact %d = %s, want %s (manifest order)", i, e.Artifact.Name, c.Name)
		}
		for _, p := range []string{e.Artifact.SVGPath, e.Artifact.PNGPath} {
			if _, err := os.Stat(p); err != nil {
				t.Errorf("missing output %s: %v", p, err)
			}
		}
		if e.Artifact.SVGPath != filepath.Join(dir, c.Name+".svg") {
			t.Errorf("SVGPath = %s", e.Artifact.SVGPath)
		}
	}
}

func TestRunnerRunIdempotent(t *testing.T) {
	dir := t.TempDir()
	runner := NewRunner(&fakeEngine{css: true}, nil, quietLogger())
	canvases := manifest.Default()[:1]

	if _, err := runner.Run(context.Background(), canvases, Options{OutDir: dir}); err != nil {
		t.Fatal(err)
	}
	first, _ := os.ReadFile(filepath.Join(dir, canvases[0].Name+".svg"))
	if _, err := runner.Run(context.Background(), canvases, Options{OutDir: dir}); err != nil {
		t.Fatal(err)
	}
	second, _ := os.ReadFile(filepath.Join(dir, canvases[0].Name+".svg"))

	if string(first) != string(second) {
		t.Error("re-running should produce byte-identical documents")
	}
}

func TestRunnerRunOnly(t *testing.T) {
	dir := t.TempDir()
	engine := &fakeEngine{css: true}
	res, err := NewRunner(engine, nil, quietLogger()).Run(context.Background(), manifest.Default(),
		Options{OutDir: dir, Only: []string{"chrome-*-promo"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Artifacts) != 3 {
		t.Fatalf("rendered %d banners, want 3", len(res.Artifacts))
	}
	if _, err := os.Stat(filepath.Join(dir, "github-social-preview.png")); !os.IsNotExist(err) {
		t.Error("filtered-out banner should not be rendered")
	}

	_, err = NewRunner(engine, nil, quietLogger()).Run(context.Background(), manifest.Default(),
		Options{OutDir: dir, Only: []string{"twitter-*"}})
	if !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("Run() with no matches = %v, want %s", err, errors.ErrCodeInvalidManifest)
	}
}

func TestRunnerRunAbortsOnFailure(t *testing.T) {
	dir := t.TempDir()
	engine := &fakeEngine{css: true, failLoad: "chrome-large-promo.svg"}

	res, err := NewRunner(engine, nil, quietLogger()).Run(context.Background(), manifest.Default(), Options{OutDir: dir})
	if !errors.Is(err, errors.ErrCodeRender) {
		t.Fatalf("Run() error = %v, want %s", err, errors.ErrCodeRender)
	}
	if !strings.Contains(err.Error(), "chrome-large-promo") {
		t.Errorf("error should name the failing banner: %v", err)
	}
	if res == nil || len(res.Artifacts) != 2 {
		t.Fatalf("want 2 completed artifacts before the failure, got %+v", res)
	}
	if engine.sessions[0].closed != 1 {
		t.Error("session must be released when the batch fails")
	}

	// Earlier outputs stay, later ones are never attempted.
	if _, err := os.Stat(filepath.Join(dir, "chrome-small-promo.png")); err != nil {
		t.Errorf("earlier artifact should stay on disk: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "chrome-marquee-promo.svg")); !os.IsNotExist(err) {
		t.Error("banners after the failure should not be attempted")
	}
}

func TestRunnerRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := &fakeEngine{css: true}
	_, err := NewRunner(engine, nil, quietLogger()).Run(ctx, manifest.Default(), Options{OutDir: t.TempDir()})
	if err != context.Canceled {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if len(engine.sessions) == 1 && engine.sessions[0].closed != 1 {
		t.Error("session must be released on cancellation")
	}
}

func TestRunnerRunEngineUnavailable(t *testing.T) {
	engine := &fakeEngine{openErr: loadError{}}
	_, err := NewRunner(engine, nil, quietLogger()).Run(context.Background(), manifest.Default(), Options{OutDir: t.TempDir()})
	if !errors.Is(err, errors.ErrCodeEngineUnavailable) {
		t.Errorf("Run() error = %v, want %s", err, errors.ErrCodeEngineUnavailable)
	}
}

func TestRunnerRunInvalidManifest(t *testing.T) {
	engine := &fakeEngine{css: true}
	canvases := []manifest.Canvas{{Name: "ok", Width: 10, Height: 10}, {Name: "bad", Width: -1, Height: 10}}

	_, err := NewRunner(engine, nil, quietLogger()).Run(context.Background(), canvases, Options{OutDir: t.TempDir()})
	if !errors.IsConfiguration(err) {
		t.Fatalf("Run() error = %v, want configuration error", err)
	}
	if len(engine.sessions) != 0 {
		t.Error("manifest is validated before any session is opened")
	}
}
