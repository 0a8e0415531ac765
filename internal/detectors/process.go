package detectors

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/fidde/otel_resource_detector/pkg/resource"
)

// Process discovers pid, executable and owner attributes of the
// current process.
type Process struct {
	required bool
}

// RaiseOnError implements resource.Detector.
func (d *Process) RaiseOnError() bool { return d.required }

// Detect implements resource.Detector.
func (d *Process) Detect(_ context.Context) (*resource.Resource, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolving executable path: %w", err)
	}

	attrs := resource.Attributes{
		ProcessPID:            resource.IntValue(int64(os.Getpid())),
		ProcessExecutableName: resource.StringValue(filepath.Base(exe)),
		ProcessExecutablePath: resource.StringValue(exe),
		ProcessCommandArgs:    resource.StringValue(strings.Join(os.Args, " ")),
	}
	// Owner lookup can fail in minimal containers; the rest of the
	// attributes are still worth reporting.
	if u, err := user.Current(); err == nil {
		attrs[ProcessOwner] = resource.StringValue(u.Username)
	}
	return resource.New(attrs), nil
}
