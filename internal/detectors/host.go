package detectors

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/fidde/otel_resource_detector/pkg/resource"
)

// Host discovers host.name, host.arch and os.type from the local
// machine.
type Host struct {
	required bool
}

// RaiseOnError implements resource.Detector.
func (d *Host) RaiseOnError() bool { return d.required }

// Detect implements resource.Detector.
func (d *Host) Detect(_ context.Context) (*resource.Resource, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("resolving hostname: %w", err)
	}
	return resource.New(resource.Attributes{
		HostName: resource.StringValue(hostname),
		HostArch: resource.StringValue(runtime.GOARCH),
		OSType:   resource.StringValue(runtime.GOOS),
	}), nil
}
