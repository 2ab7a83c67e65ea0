package raster

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/bannerkit/pkg/compose"
	"github.com/matzehuels/bannerkit/pkg/errors"
	bkio "github.com/matzehuels/bannerkit/pkg/io"
	"github.com/matzehuels/bannerkit/pkg/observability"
)

// Artifact describes the files produced for one banner.
type Artifact struct {
	Name    string `json:"name"`
	Variant string `json:"variant"`
	SVGPath string `json:"svg"`
	PNGPath string `json:"png"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// Driver renders documents through one session.
type Driver struct {
	session Session
	logger  *log.Logger
}

// NewDriver wraps an open session. A nil logger uses log.Default().
func NewDriver(s Session, logger *log.Logger) *Driver {
	if logger == nil {
		logger = log.Default()
	}
	return &Driver{session: s, logger: logger}
}

// Render writes doc to svgPath, rasterizes it to pngPath at the document's
// size, and verifies the captured dimensions.
func (d *Driver) Render(ctx context.Context, doc compose.Document, svgPath, pngPath string) (art Artifact, err error) {
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, doc.Name, doc.Width, doc.Height)
	defer func() {
		observability.Pipeline().OnRenderComplete(ctx, doc.Name, time.Since(start), err)
	}()

	if err := bkio.WriteFile(svgPath, doc.Bytes(), bkio.DefaultPerm); err != nil {
		return Artifact{}, errors.Wrap(errors.ErrCodeIO, err, "write %s", svgPath)
	}
	d.logger.Debug("wrote document", "banner", doc.Name, "path", svgPath, "bytes", len(doc.Content))

	if err := d.session.Load(ctx, svgPath); err != nil {
		return Artifact{}, errors.Wrap(errors.ErrCodeRender, err, "load %s", svgPath)
	}
	if err := d.session.SetViewport(ctx, doc.Width, doc.Height); err != nil {
		return Artifact{}, errors.Wrap(errors.ErrCodeRender, err, "set viewport %dx%d", doc.Width, doc.Height)
	}
	if err := d.session.Capture(ctx, pngPath); err != nil {
		return Artifact{}, errors.Wrap(errors.ErrCodeRender, err, "capture %s", pngPath)
	}

	if err := VerifySize(pngPath, doc.Width, doc.Height); err != nil {
		return Artifact{}, err
	}
	d.logger.Debug("captured image", "banner", doc.Name, "path", pngPath, "duration", time.Since(start))

	return Artifact{
		Name:    doc.Name,
		Variant: doc.Variant,
		SVGPath: svgPath,
		PNGPath: pngPath,
		Width:   doc.Width,
		Height:  doc.Height,
	}, nil
}

// VerifySize decodes the image at path and checks its pixel dimensions.
func VerifySize(path string, width, height int) error {
	img, err := imaging.Open(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "decode %s", path)
	}
	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		return errors.New(errors.ErrCodeRender,
			"%s is %dx%d, want %dx%d", path, b.Dx(), b.Dy(), width, height)
	}
	return nil
}
