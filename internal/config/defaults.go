package config

const (
	defaultDataDir        = "~/.local/share/eventpipe/data"
	defaultLogDir         = "~/.local/share/eventpipe/logs"
	defaultTimezone       = "UTC+3" // Arabia Standard Time
	defaultDateOrder      = "dmy"
	defaultDedupPrecision = 3

	defaultGeocodingBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"
	defaultRegionHint       = "Qatar"
	defaultGeocodingTimeout = 15

	// Bounding box used to reject geocoder results outside the domain.
	defaultMinLat = 24.5
	defaultMaxLat = 26.5
	defaultMinLng = 50.5
	defaultMaxLng = 52.5

	defaultClassifierBaseURL   = "https://openrouter.ai/api/v1/chat/completions"
	defaultClassifierModel     = "google/gemini-2.5-flash-lite"
	defaultClassifierThreshold = 0.6
	defaultClassifierTimeout   = 60

	defaultScraperBaseURL = "http://localhost:3002"
	defaultScraperTimeout = 120

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Pipeline: Pipeline{
			Timezone:       defaultTimezone,
			DateOrder:      defaultDateOrder,
			DedupPrecision: defaultDedupPrecision,
		},
		Geocoding: Geocoding{
			BaseURL:        defaultGeocodingBaseURL,
			RegionHint:     defaultRegionHint,
			MinLat:         defaultMinLat,
			MaxLat:         defaultMaxLat,
			MinLng:         defaultMinLng,
			MaxLng:         defaultMaxLng,
			TimeoutSeconds: defaultGeocodingTimeout,
		},
		Classifier: Classifier{
			BaseURL:             defaultClassifierBaseURL,
			Model:               defaultClassifierModel,
			ConfidenceThreshold: defaultClassifierThreshold,
			TimeoutSeconds:      defaultClassifierTimeout,
		},
		Scraper: Scraper{
			BaseURL:        defaultScraperBaseURL,
			TimeoutSeconds: defaultScraperTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
