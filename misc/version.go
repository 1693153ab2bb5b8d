// Package misc keeps program identity. Values are set at build time with
// -ldflags "-X tflow/misc.version=... -X tflow/misc.gitHash=...".
package misc

import (
	"runtime/debug"
)

const appName = "tflow"

var (
	version = "dev"
	gitHash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns commit program was built from, falling back to VCS
// information embedded by go build.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
