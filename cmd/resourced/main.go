// Package main is the entry point for the resourced service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fidde/otel_resource_detector/internal/announce"
	"github.com/fidde/otel_resource_detector/internal/api"
	"github.com/fidde/otel_resource_detector/internal/config"
	"github.com/fidde/otel_resource_detector/internal/detectors"
	"github.com/fidde/otel_resource_detector/pkg/resource"
)

func main() {
	log.Println("Starting resourced...")

	cfgPath := getEnv("CONFIG_PATH", "resourced.yaml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Loading config: %v", err)
	}

	list, err := buildDetectors(cfg)
	if err != nil {
		log.Fatalf("Building detectors: %v", err)
	}

	start := time.Now()
	res, err := resource.GetAggregatedResources(context.Background(), list, nil, time.Duration(cfg.DetectTimeout))
	if err != nil {
		log.Fatalf("Resource detection failed: %v", err)
	}
	detectDur := time.Since(start)
	log.Printf("Detected resource: %d attributes, fingerprint %s (%s)",
		res.Len(), res.Fingerprint()[:12], detectDur.Round(time.Millisecond))

	apiAddr := getEnv("API_ADDR", cfg.APIAddr)
	server := api.NewServer(apiAddr, res, start, detectDur)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting API server on %s", apiAddr)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	if cfg.Announce.Enabled {
		announceResource(cfg, res)
	}

	log.Printf("API endpoints:")
	log.Printf("  - Resource: http://%s/api/v1/resource", apiAddr)
	log.Printf("  - OTLP form: http://%s/api/v1/resource/proto", apiAddr)
	log.Printf("  - Health: http://%s/health", apiAddr)

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	case sig := <-sigChan:
		log.Printf("Received signal: %v, shutting down...", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down API server: %v", err)
	}
	log.Println("Shutdown complete")
}

// buildDetectors assembles the detector list from configuration:
// static attributes first, then the configured variants in order.
func buildDetectors(cfg *config.Config) ([]resource.Detector, error) {
	var list []resource.Detector

	static, err := cfg.StaticAttrs()
	if err != nil {
		return nil, err
	}
	if len(static) > 0 {
		list = append(list, detectors.NewStatic(static, false))
	}

	for _, dc := range cfg.Detectors {
		d, err := detectors.New(dc.Name, dc.Required)
		if err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, nil
}

// announceResource pushes the detected resource to the configured OTLP
// endpoint. Failures are logged, not fatal: the collector may simply
// not be up yet.
func announceResource(cfg *config.Config, res *resource.Resource) {
	announcer, err := announce.New(cfg.Announce.Endpoint, time.Duration(cfg.Announce.Timeout))
	if err != nil {
		log.Printf("Announce setup failed: %v", err)
		return
	}
	defer announcer.Close()

	if err := announcer.Announce(context.Background(), res); err != nil {
		log.Printf("Announce failed: %v", err)
		return
	}
	log.Printf("Announced resource to %s", cfg.Announce.Endpoint)
}

// getEnv gets an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
