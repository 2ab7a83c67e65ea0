// Package pkg provides the core libraries for bannerkit.
//
// # Overview
//
// Bannerkit produces a project's promotional banners from a small set of
// vector layout templates. For every target canvas it picks the template that
// fills the canvas best, composes a standalone vector document around it, and
// rasterizes that document to a PNG of exactly the canvas size.
//
// # Architecture
//
// The data flow for one banner:
//
//	manifest.Canvas (name, width, height)
//	         ↓
//	    [fit] package (place every variant, keep the smallest margin)
//	         ↓
//	    [compose] package (header, root element, palette, background, art)
//	         ↓
//	    [raster] package (write .svg, load, size viewport, capture .png)
//
// [pipeline] runs that flow over the whole manifest through one renderer
// session.
//
// # Quick Start
//
//	planned, _ := pipeline.PlanOne(ctx, variant.Default(), manifest.Canvas{
//	    Name: "og-image", Width: 1200, Height: 630,
//	})
//	fmt.Println(planned.Plan.Variant.Name, planned.Plan.TotalMargin)
//
//	runner := pipeline.NewRunner(raster.NewChrome(), variant.Default(), logger)
//	result, err := runner.Run(ctx, manifest.Default(), pipeline.Options{OutDir: "media/banners"})
//
// # Main Packages
//
// [variant] - Layout variants (horizontal, vertical) with their intrinsic
// sizes and embedded art, and the ordered registry they are selected from.
//
// [fit] - Best-fit placement: minimum margin, uniform scale, centering, and
// selection by smallest total margin. Pure functions.
//
// [compose] - Builds the vector document for a canvas and a plan. The palette
// is emitted as CSS variables, or inlined for renderers without CSS support.
//
// [raster] - Renderer engines (headless Chrome, rsvg-convert) behind the
// Engine and Session interfaces, and the Driver that writes, loads, sizes,
// captures, and verifies one banner.
//
// [pipeline] - Batch orchestration: manifest filtering, one session per run,
// abort on first failure.
//
// [manifest] - Target canvases, validation, and glob filtering.
//
// [cache] - Preview artifact cache (null, file, Redis) used by the preview
// server.
//
// [errors] - Coded errors for configuration, I/O, and rendering failures.
//
// [io] - Atomic file writes and artifact paths.
//
// [observability] - Hook interfaces for pipeline, cache, and server events.
//
// [variant]: https://pkg.go.dev/github.com/matzehuels/bannerkit/pkg/variant
// [fit]: https://pkg.go.dev/github.com/matzehuels/bannerkit/pkg/fit
// [compose]: https://pkg.go.dev/github.com/matzehuels/bannerkit/pkg/compose
// [raster]: https://pkg.go.dev/github.com/matzehuels/bannerkit/pkg/raster
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/bannerkit/pkg/pipeline
// [manifest]: https://pkg.go.dev/github.com/matzehuels/bannerkit/pkg/manifest
// [cache]: https://pkg.go.dev/github.com/matzehuels/bannerkit/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/bannerkit/pkg/errors
// [io]: https://pkg.go.dev/github.com/matzehuels/bannerkit/pkg/io
// [observability]: https://pkg.go.dev/github.com/matzehuels/bannerkit/pkg/observability
package pkg
