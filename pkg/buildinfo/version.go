// Package buildinfo reports which heatcal build is running.
//
// Release builds stamp the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/heatcal/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/heatcal/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)"
//
// Unstamped builds (go install, go run) fall back to the module version and
// VCS settings the Go toolchain embeds.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var readBuildInfo = debug.ReadBuildInfo

// Resolved returns version, commit and date, filling unstamped values from
// the embedded build information.
func Resolved() (version, commit, date string) {
	version, commit, date = Version, Commit, Date
	bi, ok := readBuildInfo()
	if !ok {
		return
	}
	if version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && commit == "none":
			commit = s.Value
			if len(commit) > 12 {
				commit = commit[:12]
			}
		case s.Key == "vcs.time" && date == "unknown":
			date = s.Value
		}
	}
	return
}

// String is the one-line form served by /healthz.
func String() string {
	v, c, _ := Resolved()
	return fmt.Sprintf("heatcal %s (%s)", v, c)
}

// Template is the cobra version template.
func Template() string {
	v, c, d := Resolved()
	return fmt.Sprintf("{{.Name}} %s\ncommit %s, built %s\n", v, c, d)
}
