// Package io handles the files a generation run produces.
//
// # Paths
//
// Every banner maps to two files in the output directory, named after the
// banner:
//
//	<out>/<name>.svg   composed vector document
//	<out>/<name>.png   rasterized image
//
// [ArtifactPaths] derives both deterministically, so re-running a manifest
// overwrites the same files.
//
// # Atomic writes
//
// [WriteFile] writes through a temporary file in the target directory, syncs
// it to disk, and renames it into place. A renderer that opens the path after
// WriteFile returns always sees the complete document, never a partial one.
//
// # JSON reports
//
// [WriteJSON] and [ExportJSON] encode plan reports and run summaries as
// indented JSON for tooling.
package io
