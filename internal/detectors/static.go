package detectors

import (
	"context"

	"github.com/fidde/otel_resource_detector/pkg/resource"
)

// Static reports a fixed attribute set taken from configuration.
type Static struct {
	res      *resource.Resource
	required bool
}

// NewStatic creates a detector that always reports attrs.
func NewStatic(attrs resource.Attributes, required bool) *Static {
	return &Static{res: resource.New(attrs), required: required}
}

// RaiseOnError implements resource.Detector.
func (d *Static) RaiseOnError() bool { return d.required }

// Detect implements resource.Detector.
func (d *Static) Detect(_ context.Context) (*resource.Resource, error) {
	return d.res, nil
}
