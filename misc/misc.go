// Package misc keeps build time information.
package misc

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

// Set by linker during build.
var (
	version = "dev"
	githash = "unknown"
	appname = "bsc"
)

// GetAppName returns program name, normally as specified during build.
func GetAppName() string {
	if len(appname) > 0 {
		return appname
	}
	return strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))
}

// GetVersion returns program version.
func GetVersion() string {
	if version == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok && len(bi.Main.Version) > 0 && bi.Main.Version != "(devel)" {
			return bi.Main.Version
		}
	}
	return version
}

// GetGitHash returns git hash of the source program was built from.
func GetGitHash() string {
	if githash == "unknown" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" {
					return s.Value
				}
			}
		}
	}
	return githash
}
