// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"eventpipe/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Geocoding.APIKey = "test"
	cfg.Classifier.APIKey = "test"
	cfg.Scraper.TargetURLs = []string{"https://example.test/events"}

	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithTargetURLs overrides the scrape targets on the test config.
func WithTargetURLs(urls ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Scraper.TargetURLs = urls
	}
}

// WithDateOrder overrides the ambiguous-date preference on the test config.
func WithDateOrder(order string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Pipeline.DateOrder = order
	}
}
