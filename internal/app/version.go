package app

import "runtime/debug"

// Stamped by the release build:
//
//	go build -ldflags "-X github.com/leadflow/leadflow-backend/internal/app.Version=v1.4.0 \
//	  -X github.com/leadflow/leadflow-backend/internal/app.Commit=$(git rev-parse --short HEAD)"
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// Build returns the stamped build metadata. When the commit was not set
// via ldflags it falls back to the VCS revision recorded by the toolchain.
func Build() BuildInfo {
	b := BuildInfo{Version: Version, Commit: Commit, BuildTime: BuildTime}
	if b.Commit != "" {
		return b
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if len(s.Value) > 7 {
					s.Value = s.Value[:7]
				}
				b.Commit = s.Value
			case "vcs.time":
				if b.BuildTime == "" {
					b.BuildTime = s.Value
				}
			}
		}
	}
	return b
}

// String renders the version in semver build-metadata form, e.g. "v1.4.0+3f2a9c1".
func (b BuildInfo) String() string {
	if b.Commit == "" {
		return b.Version
	}
	return b.Version + "+" + b.Commit
}
