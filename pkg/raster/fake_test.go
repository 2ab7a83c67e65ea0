package raster

import (
	"context"
	"image/color"

	"github.com/disintegration/imaging"
)

// fakeSession records calls and writes a solid image at the viewport size
// (or at a forced size) on capture.
type fakeSession struct {
	calls      []string
	loaded     string
	loadedData []byte
	w, h       int
	forceW     int
	forceH     int
	failOn     string
	closed     int
	readFile   func(string) ([]byte, error)
}

func (f *fakeSession) fail(step string) error {
	if f.failOn == step {
		return errFake
	}
	return nil
}

func (f *fakeSession) Load(ctx context.Context, path string) error {
	f.calls = append(f.calls, "load")
	if err := f.fail("load"); err != nil {
		return err
	}
	f.loaded = path
	if f.readFile != nil {
		data, err := f.readFile(path)
		if err != nil {
			return err
		}
		f.loadedData = data
	}
	return nil
}

func (f *fakeSession) SetViewport(ctx context.Context, w, h int) error {
	f.calls = append(f.calls, "viewport")
	if err := f.fail("viewport"); err != nil {
		return err
	}
	f.w, f.h = w, h
	return nil
}

func (f *fakeSession) Capture(ctx context.Context, path string) error {
	f.calls = append(f.calls, "capture")
	if err := f.fail("capture"); err != nil {
		return err
	}
	w, h := f.w, f.h
	if f.forceW > 0 {
		w, h = f.forceW, f.forceH
	}
	img := imaging.New(w, h, color.NRGBA{0x30, 0x30, 0x30, 0xff})
	return imaging.Save(img, path)
}

func (f *fakeSession) Close() error {
	f.closed++
	return nil
}

type fakeError string

func (e fakeError) Error() string { return string(e) }

const errFake = fakeError("renderer failed")
