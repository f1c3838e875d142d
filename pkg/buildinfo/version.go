// Package buildinfo exposes the version stamped into the binary.
//
// Release builds set the variables through ldflags:
//
//	go build -ldflags "-X github.com/Naivedya-sahu/lamp-v2/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/Naivedya-sahu/lamp-v2/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/Naivedya-sahu/lamp-v2/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Unstamped builds fall back to the VCS metadata the Go toolchain
// records, so a plain `go install` binary still reports a revision.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the semantic version, "dev" when unstamped.
	Version = "dev"

	// Commit is the git revision the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

func init() {
	if Commit != "none" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			Commit = s.Value
		case "vcs.time":
			Date = s.Value
		}
	}
}

// String returns the build information as a multi-line block.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
