package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Pipeline contains normalization policy settings.
type Pipeline struct {
	// Timezone applies to every parsed timestamp; the domain has exactly one.
	Timezone string `toml:"timezone"`
	// DateOrder resolves ambiguous numeric dates: "dmy" or "mdy".
	DateOrder string `toml:"date_order"`
	// DedupPrecision is the number of coordinate decimals used in the
	// deduplication identity key.
	DedupPrecision int `toml:"dedup_precision"`
}

// Geocoding contains configuration for the geocoding provider and its cache.
type Geocoding struct {
	APIKey         string  `toml:"api_key"`
	BaseURL        string  `toml:"base_url"`
	RegionHint     string  `toml:"region_hint"`
	MinLat         float64 `toml:"min_lat"`
	MaxLat         float64 `toml:"max_lat"`
	MinLng         float64 `toml:"min_lng"`
	MaxLng         float64 `toml:"max_lng"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

// Classifier contains configuration for the cultural-appropriateness model.
type Classifier struct {
	APIKey              string  `toml:"api_key"`
	BaseURL             string  `toml:"base_url"`
	Model               string  `toml:"model"`
	ConfidenceThreshold float64 `toml:"confidence_threshold"`
	TimeoutSeconds      int     `toml:"timeout_seconds"`
}

// Scraper contains configuration for the scrape and extraction collaborators.
type Scraper struct {
	BaseURL        string   `toml:"base_url"`
	APIKey         string   `toml:"api_key"`
	TargetURLs     []string `toml:"target_urls"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config is the root configuration shared across all commands.
type Config struct {
	Paths      Paths      `toml:"paths"`
	Pipeline   Pipeline   `toml:"pipeline"`
	Geocoding  Geocoding  `toml:"geocoding"`
	Classifier Classifier `toml:"classifier"`
	Scraper    Scraper    `toml:"scraper"`
	Logging    Logging    `toml:"logging"`
}

// SampleConfig returns the embedded sample configuration file contents.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the sample configuration to the given path.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/eventpipe/config.toml")
}

// ExpandPath resolves ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("eventpipe.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// Stage artifact and support file locations, all inside the data directory.

func (c *Config) RawArtifactPath() string {
	return filepath.Join(c.Paths.DataDir, "events_01_raw.json")
}

func (c *Config) TimestampedArtifactPath() string {
	return filepath.Join(c.Paths.DataDir, "events_02_timestamped.json")
}

func (c *Config) CuratedArtifactPath() string {
	return filepath.Join(c.Paths.DataDir, "events_03_curated.json")
}

func (c *Config) FinalArtifactPath() string {
	return filepath.Join(c.Paths.DataDir, "events_04_final.json")
}

func (c *Config) GeocodeCachePath() string {
	return filepath.Join(c.Paths.DataDir, "geocode_cache.json")
}

func (c *Config) RunLogPath() string {
	return filepath.Join(c.Paths.DataDir, "runlog.db")
}

func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "run.lock")
}

var utcOffsetPattern = regexp.MustCompile(`^UTC([+-])(\d{1,2})(?::(\d{2}))?$`)

// Location resolves the pipeline timezone into a *time.Location. Fixed
// offsets are written as "UTC+3" or "UTC-4:30"; anything else is treated as
// an IANA zone name.
func (c *Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Pipeline.Timezone)
	if name == "" {
		name = defaultTimezone
	}

	if m := utcOffsetPattern.FindStringSubmatch(name); m != nil {
		hours, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("pipeline.timezone: parse offset %q: %w", name, err)
		}
		minutes := 0
		if m[3] != "" {
			if minutes, err = strconv.Atoi(m[3]); err != nil {
				return nil, fmt.Errorf("pipeline.timezone: parse offset %q: %w", name, err)
			}
		}
		offset := hours*3600 + minutes*60
		if m[1] == "-" {
			offset = -offset
		}
		return time.FixedZone(name, offset), nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("pipeline.timezone: %w", err)
	}
	return loc, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
