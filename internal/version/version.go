// Package version exposes build metadata for the verity binary.
package version

import (
	"fmt"
	"runtime"
)

// Populated via -ldflags at release build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Short returns the bare semantic version.
func Short() string {
	return version
}

// Long returns the version with commit, build date, toolchain and platform.
func Long() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s %s/%s)",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
