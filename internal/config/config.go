// Package config loads the resourced service configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/fidde/otel_resource_detector/pkg/resource"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "5s" or "250ms".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// DetectorConfig selects one detector variant and its failure mode.
type DetectorConfig struct {
	Name string `yaml:"name"`

	// Required marks the detector raise-on-error: a failure aborts
	// startup instead of being logged and skipped.
	Required bool `yaml:"required"`
}

// AnnounceConfig configures the optional OTLP announcement of the
// detected resource.
type AnnounceConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Endpoint string   `yaml:"endpoint"`
	Timeout  Duration `yaml:"timeout"`
}

// Config is the resourced service configuration.
type Config struct {
	APIAddr          string           `yaml:"api_addr"`
	DetectTimeout    Duration         `yaml:"detect_timeout"`
	Detectors        []DetectorConfig `yaml:"detectors"`
	StaticAttributes map[string]any   `yaml:"static_attributes"`
	Announce         AnnounceConfig   `yaml:"announce"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		APIAddr:       "0.0.0.0:8080",
		DetectTimeout: Duration(resource.DefaultDetectTimeout),
		Detectors: []DetectorConfig{
			{Name: "host"},
			{Name: "process"},
		},
		Announce: AnnounceConfig{
			Endpoint: "localhost:4317",
			Timeout:  Duration(10 * time.Second),
		},
	}
}

// Load reads the YAML configuration at path. A missing file yields the
// defaults; a malformed file is an error. File values are layered over
// the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIAddr == "" {
		return fmt.Errorf("api_addr must not be empty")
	}
	if c.Announce.Enabled && c.Announce.Endpoint == "" {
		return fmt.Errorf("announce.endpoint required when announce is enabled")
	}
	return nil
}

// StaticAttrs converts static_attributes into resource attributes,
// rejecting values outside the label-value domain.
func (c *Config) StaticAttrs() (resource.Attributes, error) {
	attrs := make(resource.Attributes, len(c.StaticAttributes))
	for k, raw := range c.StaticAttributes {
		v, err := resource.FromRaw(raw)
		if err != nil {
			return nil, fmt.Errorf("static attribute %q: %w", k, err)
		}
		attrs[k] = v
	}
	return attrs, nil
}
