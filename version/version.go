// Package version exposes build metadata for the logex module.
package version

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// Version is the release version, overridable via ldflags.
var Version = "0.1.3"

// Revision reports the VCS revision embedded in the binary, suffixed with
// -dirty when the working tree was modified. Binaries built outside a
// checkout report "unknown".
func Revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	revision, dirty := "unknown", ""
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			if setting.Value == "true" {
				dirty = "-dirty"
			}
		}
	}

	return revision + dirty
}

// Print writes the version banner to w.
func Print(w io.Writer) {
	fmt.Fprintf(w, "logex %s\n", Version)
	fmt.Fprintf(w, "  revision: %s\n", Revision())
	fmt.Fprintf(w, "  go:       %s\n", runtime.Version())
	fmt.Fprintf(w, "  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}
