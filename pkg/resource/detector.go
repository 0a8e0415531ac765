package resource

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// EnvVar is the environment variable the built-in detector reads:
// a comma-separated list of key=value pairs.
const EnvVar = "OTEL_RESOURCE_ATTRIBUTES"

// Detector discovers resource attributes from some runtime source.
type Detector interface {
	// Detect returns the discovered attributes. Implementations may
	// read external state (environment, filesystem, network) and
	// should honor ctx for lookups that can block.
	Detect(ctx context.Context) (*Resource, error)

	// RaiseOnError reports whether a detection failure aborts
	// aggregation instead of being logged and skipped.
	RaiseOnError() bool
}

// EnvDetector reads resource attributes from OTEL_RESOURCE_ATTRIBUTES.
// It is always prepended to the detector list by
// GetAggregatedResources.
type EnvDetector struct {
	raiseOnError bool
}

// NewEnvDetector creates the environment variable detector.
func NewEnvDetector(raiseOnError bool) *EnvDetector {
	return &EnvDetector{raiseOnError: raiseOnError}
}

// RaiseOnError implements Detector.
func (d *EnvDetector) RaiseOnError() bool { return d.raiseOnError }

// Detect parses OTEL_RESOURCE_ATTRIBUTES. Each entry is split on the
// first "=" with whitespace trimmed from key and value. An unset or
// empty variable yields the empty resource. An entry without "=" fails
// the whole call, so a mistyped variable is reported rather than
// partially applied.
func (d *EnvDetector) Detect(_ context.Context) (*Resource, error) {
	raw := os.Getenv(EnvVar)
	if raw == "" {
		return Empty(), nil
	}

	attrs := make(Attributes)
	for _, item := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("malformed %s entry %q: missing '='", EnvVar, item)
		}
		attrs[strings.TrimSpace(key)] = StringValue(strings.TrimSpace(value))
	}
	return New(attrs), nil
}
