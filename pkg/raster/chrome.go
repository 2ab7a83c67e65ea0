package raster

import (
	"context"
	"net/url"
	"path/filepath"
	"sync"

	"github.com/chromedp/chromedp"

	"github.com/matzehuels/bannerkit/pkg/errors"
	bkio "github.com/matzehuels/bannerkit/pkg/io"
)

// ChromeOption configures the chrome engine.
type ChromeOption func(*Chrome)

// WithExecPath selects the Chrome binary instead of searching PATH.
func WithExecPath(path string) ChromeOption {
	return func(c *Chrome) {
		c.allocOpts = append(c.allocOpts, chromedp.ExecPath(path))
	}
}

// WithAllocatorOptions appends raw chromedp allocator options.
func WithAllocatorOptions(opts ...chromedp.ExecAllocatorOption) ChromeOption {
	return func(c *Chrome) {
		c.allocOpts = append(c.allocOpts, opts...)
	}
}

// Chrome renders through a headless Chrome instance.
type Chrome struct {
	allocOpts []chromedp.ExecAllocatorOption
}

// NewChrome returns a headless Chrome engine.
func NewChrome(opts ...ChromeOption) *Chrome {
	c := &Chrome{
		allocOpts: append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...),
	}
	c.allocOpts = append(c.allocOpts, chromedp.Flag("hide-scrollbars", true))
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Chrome) Name() string       { return EngineChrome }
func (c *Chrome) CSSVariables() bool { return true }

// Open launches the browser and a single tab. The browser lives until Close
// or until ctx is cancelled.
func (c *Chrome) Open(ctx context.Context) (Session, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, c.allocOpts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	// An empty Run starts the browser.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, errors.Wrap(errors.ErrCodeEngineUnavailable, err, "start chrome")
	}
	return &chromeSession{ctx: tabCtx, cancelTab: cancelTab, cancelAlloc: cancelAlloc}, nil
}

type chromeSession struct {
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	closeOnce   sync.Once
}

// run executes actions in the tab, aborting when either the tab or the
// caller's ctx is done.
func (s *chromeSession) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

func (s *chromeSession) Load(ctx context.Context, path string) error {
	u, err := fileURL(path)
	if err != nil {
		return err
	}
	return s.run(ctx, chromedp.Navigate(u))
}

func (s *chromeSession) SetViewport(ctx context.Context, width, height int) error {
	return s.run(ctx, chromedp.EmulateViewport(int64(width), int64(height), chromedp.EmulateScale(1)))
}

func (s *chromeSession) Capture(ctx context.Context, path string) error {
	var buf []byte
	if err := s.run(ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return err
	}
	return bkio.WriteFile(path, buf, bkio.DefaultPerm)
}

func (s *chromeSession) Close() error {
	s.closeOnce.Do(func() {
		s.cancelTab()
		s.cancelAlloc()
	})
	return nil
}

func fileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}
