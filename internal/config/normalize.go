package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePipeline()
	c.normalizeGeocoding()
	c.normalizeClassifier()
	c.normalizeScraper()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizePipeline() {
	c.Pipeline.Timezone = strings.TrimSpace(c.Pipeline.Timezone)
	if c.Pipeline.Timezone == "" {
		c.Pipeline.Timezone = defaultTimezone
	}
	c.Pipeline.DateOrder = strings.ToLower(strings.TrimSpace(c.Pipeline.DateOrder))
	if c.Pipeline.DateOrder == "" {
		c.Pipeline.DateOrder = defaultDateOrder
	}
	if c.Pipeline.DedupPrecision <= 0 {
		c.Pipeline.DedupPrecision = defaultDedupPrecision
	}
}

func (c *Config) normalizeGeocoding() {
	c.Geocoding.APIKey = strings.TrimSpace(c.Geocoding.APIKey)
	if c.Geocoding.APIKey == "" {
		c.Geocoding.APIKey = strings.TrimSpace(os.Getenv("GEOCODING_API_KEY"))
	}
	c.Geocoding.BaseURL = strings.TrimSpace(c.Geocoding.BaseURL)
	if c.Geocoding.BaseURL == "" {
		c.Geocoding.BaseURL = defaultGeocodingBaseURL
	}
	c.Geocoding.RegionHint = strings.TrimSpace(c.Geocoding.RegionHint)
	if c.Geocoding.TimeoutSeconds <= 0 {
		c.Geocoding.TimeoutSeconds = defaultGeocodingTimeout
	}
}

func (c *Config) normalizeClassifier() {
	c.Classifier.APIKey = strings.TrimSpace(c.Classifier.APIKey)
	if c.Classifier.APIKey == "" {
		c.Classifier.APIKey = strings.TrimSpace(os.Getenv("LLM_API_KEY"))
	}
	c.Classifier.BaseURL = strings.TrimSpace(c.Classifier.BaseURL)
	if c.Classifier.BaseURL == "" {
		c.Classifier.BaseURL = defaultClassifierBaseURL
	}
	c.Classifier.Model = strings.TrimSpace(c.Classifier.Model)
	if c.Classifier.Model == "" {
		c.Classifier.Model = defaultClassifierModel
	}
	if c.Classifier.ConfidenceThreshold <= 0 {
		c.Classifier.ConfidenceThreshold = defaultClassifierThreshold
	}
	if c.Classifier.TimeoutSeconds <= 0 {
		c.Classifier.TimeoutSeconds = defaultClassifierTimeout
	}
}

func (c *Config) normalizeScraper() {
	c.Scraper.BaseURL = strings.TrimSpace(c.Scraper.BaseURL)
	if c.Scraper.BaseURL == "" {
		c.Scraper.BaseURL = defaultScraperBaseURL
	}
	c.Scraper.APIKey = strings.TrimSpace(c.Scraper.APIKey)
	if c.Scraper.APIKey == "" {
		c.Scraper.APIKey = strings.TrimSpace(os.Getenv("FIRECRAWL_API_KEY"))
	}
	if c.Scraper.TimeoutSeconds <= 0 {
		c.Scraper.TimeoutSeconds = defaultScraperTimeout
	}
	urls := make([]string, 0, len(c.Scraper.TargetURLs))
	for _, target := range c.Scraper.TargetURLs {
		if trimmed := strings.TrimSpace(target); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	c.Scraper.TargetURLs = urls
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
