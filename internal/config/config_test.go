package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fidde/otel_resource_detector/pkg/resource"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resourced.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIAddr != "0.0.0.0:8080" {
		t.Errorf("APIAddr = %q, want 0.0.0.0:8080", cfg.APIAddr)
	}
	if time.Duration(cfg.DetectTimeout) != resource.DefaultDetectTimeout {
		t.Errorf("DetectTimeout = %v, want %v", time.Duration(cfg.DetectTimeout), resource.DefaultDetectTimeout)
	}
	if len(cfg.Detectors) != 2 {
		t.Errorf("default detector count = %d, want 2", len(cfg.Detectors))
	}
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
api_addr: "127.0.0.1:9999"
detect_timeout: 2s
detectors:
  - name: host
    required: true
  - name: process
static_attributes:
  deployment.environment: prod
  replicas: 3
  canary: false
  weight: 0.25
announce:
  enabled: true
  endpoint: "collector:4317"
  timeout: 500ms
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.APIAddr != "127.0.0.1:9999" {
		t.Errorf("APIAddr = %q", cfg.APIAddr)
	}
	if time.Duration(cfg.DetectTimeout) != 2*time.Second {
		t.Errorf("DetectTimeout = %v, want 2s", time.Duration(cfg.DetectTimeout))
	}
	if len(cfg.Detectors) != 2 || !cfg.Detectors[0].Required || cfg.Detectors[1].Required {
		t.Errorf("detectors = %+v", cfg.Detectors)
	}
	if !cfg.Announce.Enabled || cfg.Announce.Endpoint != "collector:4317" {
		t.Errorf("announce = %+v", cfg.Announce)
	}
	if time.Duration(cfg.Announce.Timeout) != 500*time.Millisecond {
		t.Errorf("announce timeout = %v", time.Duration(cfg.Announce.Timeout))
	}

	attrs, err := cfg.StaticAttrs()
	if err != nil {
		t.Fatalf("StaticAttrs() error: %v", err)
	}
	want := resource.Attributes{
		"deployment.environment": resource.StringValue("prod"),
		"replicas":               resource.IntValue(3),
		"canary":                 resource.BoolValue(false),
		"weight":                 resource.FloatValue(0.25),
	}
	if !resource.New(attrs).Equal(resource.New(want)) {
		t.Fatalf("StaticAttrs() = %v, want %v", attrs, want)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	path := writeConfig(t, "detect_timeout: soon\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected error for invalid duration")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "detectors: [\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected error for malformed YAML")
	}
}

func TestAnnounceRequiresEndpoint(t *testing.T) {
	path := writeConfig(t, `
announce:
  enabled: true
  endpoint: ""
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected error for enabled announce without endpoint")
	}
}

func TestStaticAttrsRejectsNonScalar(t *testing.T) {
	path := writeConfig(t, `
static_attributes:
  tags:
    - a
    - b
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if _, err := cfg.StaticAttrs(); !errors.Is(err, resource.ErrInvalidValue) {
		t.Fatalf("StaticAttrs() error = %v, want ErrInvalidValue", err)
	}
}
