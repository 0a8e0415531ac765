package resource

import "runtime/debug"

// fallbackVersion is reported when the binary carries no module build
// info (e.g. plain "go run" from a working tree).
const fallbackVersion = "0.1.0"

// sdkVersion resolves the version reported in telemetry.sdk.version
// from the module build info.
func sdkVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return fallbackVersion
}
