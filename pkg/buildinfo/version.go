// Package buildinfo reports the version bannerkit was built from.
//
// Release builds set the variables via ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/bannerkit/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/bannerkit/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/bannerkit/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Builds without ldflags (go install, go run) fall back to the module version
// and VCS stamp embedded by the toolchain.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Placeholder values used when nothing better is known.
const (
	devVersion     = "dev"
	unknownCommit  = "none"
	unknownDate    = "unknown"
	shortCommitLen = 12
)

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = devVersion

	// Commit is the git commit SHA.
	Commit = unknownCommit

	// Date is the build timestamp.
	Date = unknownDate
)

func init() {
	fill(debug.ReadBuildInfo)
}

// fill replaces placeholder values with what the toolchain embedded.
// Values set via ldflags win.
func fill(read func() (*debug.BuildInfo, bool)) {
	info, ok := read()
	if !ok || info == nil {
		return
	}
	if Version == devVersion && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == unknownCommit && s.Value != "" {
				Commit = s.Value
			}
		case "vcs.time":
			if Date == unknownDate && s.Value != "" {
				Date = s.Value
			}
		}
	}
}

// Scope identifies this build in cache keys. Development builds include the
// commit so artifacts rendered from older art are not served after a change.
func Scope() string {
	if Version == devVersion && Commit != unknownCommit {
		c := Commit
		if len(c) > shortCommitLen {
			c = c[:shortCommitLen]
		}
		return Version + "-" + c
	}
	return Version
}

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
