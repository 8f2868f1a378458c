package version

import (
	"runtime/debug"
)

// Version is the full version of the core, in MAJOR.MINOR.PATCH form.
const Version = "0.0.1"

// Revision is the VCS revision the binary was built from, or "unknown" if
// the build carries no VCS information.
var Revision = "unknown"

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	for _, kv := range info.Settings {
		if kv.Key == "vcs.revision" {
			Revision = kv.Value
		}
	}
}

// FullVersion returns the full version string. The returned value is
// identical for every call within one process.
func FullVersion() string {
	return Version
}
