// Package detectors provides the detector variants the resourced
// service can be configured with.
package detectors

import (
	"fmt"

	"github.com/fidde/otel_resource_detector/pkg/resource"
)

// Attribute keys populated by the built-in detector variants, from the
// OpenTelemetry semantic conventions.
const (
	HostName = "host.name"
	HostArch = "host.arch"
	OSType   = "os.type"

	ProcessPID            = "process.pid"
	ProcessExecutableName = "process.executable.name"
	ProcessExecutablePath = "process.executable.path"
	ProcessCommandArgs    = "process.command_args"
	ProcessOwner          = "process.owner"
)

// New builds a detector from its configuration name. Supported names
// are "host" and "process"; static attributes are handled by
// NewStatic. A required detector aborts aggregation on failure instead
// of being skipped.
func New(name string, required bool) (resource.Detector, error) {
	switch name {
	case "host":
		return &Host{required: required}, nil
	case "process":
		return &Process{required: required}, nil
	default:
		return nil, fmt.Errorf("unknown detector %q", name)
	}
}
