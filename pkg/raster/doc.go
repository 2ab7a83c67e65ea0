// Package raster turns composed SVG documents into PNG images of an exact
// pixel size.
//
// The renderer is a black box behind two narrow interfaces. An [Engine] opens
// a [Session]; a session loads a document from disk, sets the viewport, and
// captures the viewport to an image file. Two engines ship:
//
//   - chrome: headless Chrome driven through the DevTools protocol
//     (chromedp). Supports CSS custom properties and is the default.
//   - rsvg: the rsvg-convert binary from librsvg. It does not resolve CSS
//     custom properties, so documents for it are composed with an inline
//     palette.
//
// [Driver.Render] performs one banner: it writes the document atomically,
// loads it, sizes the viewport, captures the image, and verifies that the
// captured image has exactly the requested dimensions. Every step completes
// before the next starts and nothing is retried.
//
// Install the external renderers with:
//
//	macOS:  brew install librsvg         (rsvg)
//	Linux:  apt install librsvg2-bin     (rsvg)
//	        any Chrome or Chromium build (chrome)
package raster
