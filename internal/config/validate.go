package config

import (
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePipeline(); err != nil {
		return err
	}
	if err := c.validateGeocoding(); err != nil {
		return err
	}
	if err := c.validateClassifier(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePipeline() error {
	switch c.Pipeline.DateOrder {
	case "dmy", "mdy":
	default:
		return fmt.Errorf("pipeline.date_order: must be \"dmy\" or \"mdy\", got %q", c.Pipeline.DateOrder)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Pipeline.DedupPrecision < 1 || c.Pipeline.DedupPrecision > 8 {
		return fmt.Errorf("pipeline.dedup_precision: must be between 1 and 8, got %d", c.Pipeline.DedupPrecision)
	}
	return nil
}

func (c *Config) validateGeocoding() error {
	if c.Geocoding.MinLat >= c.Geocoding.MaxLat {
		return fmt.Errorf("geocoding: min_lat %v must be below max_lat %v", c.Geocoding.MinLat, c.Geocoding.MaxLat)
	}
	if c.Geocoding.MinLng >= c.Geocoding.MaxLng {
		return fmt.Errorf("geocoding: min_lng %v must be below max_lng %v", c.Geocoding.MinLng, c.Geocoding.MaxLng)
	}
	return nil
}

func (c *Config) validateClassifier() error {
	if c.Classifier.ConfidenceThreshold <= 0 || c.Classifier.ConfidenceThreshold > 1 {
		return fmt.Errorf("classifier.confidence_threshold: must be in (0, 1], got %v", c.Classifier.ConfidenceThreshold)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	return nil
}
