package io

import "path/filepath"

// File extensions of generated artifacts.
const (
	ExtSVG = ".svg"
	ExtPNG = ".png"
)

// Paths holds the output locations for one banner.
type Paths struct {
	SVG string
	PNG string
}

// ArtifactPaths returns where the banner called name is written under dir.
// The name must already be validated as a safe basename.
func ArtifactPaths(dir, name string) Paths {
	base := filepath.Join(dir, name)
	return Paths{SVG: base + ExtSVG, PNG: base + ExtPNG}
}
