package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxNameLength bounds artifact names; they become file basenames.
const maxNameLength = 128

// MaxCanvasSide is the largest banner width or height accepted, in pixels.
// Chrome refuses to capture screenshots beyond this edge length.
const MaxCanvasSide = 16384

// ValidateArtifactName validates a banner name for use as an output basename.
// Names are joined onto the output directory, so anything that could escape it
// is rejected:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - No hidden files (leading dot)
//   - Maximum length of 128 characters
func ValidateArtifactName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "banner name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "banner name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "banner name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, `/\`) {
		return New(ErrCodeInvalidName, "banner name %q cannot contain path separators", name)
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidName, "banner name %q cannot contain path traversal sequences (..)", name)
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidName, "banner name %q cannot be a hidden file", name)
	}

	return nil
}

// ValidateCanvasSize checks that a target size is strictly positive, finite,
// and no side exceeds MaxCanvasSide.
func ValidateCanvasSize(width, height float64) error {
	if err := validateSide("width", width); err != nil {
		return err
	}
	return validateSide("height", height)
}

func validateSide(side string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidCanvas, "canvas %s must be positive, got %v", side, v)
	}
	if v > MaxCanvasSide {
		return New(ErrCodeInvalidCanvas, "canvas %s %v exceeds the maximum of %d", side, v, MaxCanvasSide)
	}
	return nil
}
