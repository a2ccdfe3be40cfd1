package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"eventpipe/internal/services"
)

const defaultHTTPTimeout = 15 * time.Second

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Provider resolves a location name to coordinates. The boolean reports
// whether the provider recognized the name at all; an error means the lookup
// itself could not be completed and may succeed later.
type Provider interface {
	Geocode(ctx context.Context, location string) (Coordinates, bool, error)
}

// GoogleConfig captures the settings for the Google Geocoding API client.
type GoogleConfig struct {
	APIKey         string
	BaseURL        string
	RegionHint     string
	TimeoutSeconds int
}

// GoogleClient queries the Google Geocoding API.
type GoogleClient struct {
	cfg        GoogleConfig
	httpClient *http.Client
}

// NewGoogleClient builds a client from cfg. A RegionHint, when set, is
// appended to queries that do not already mention it so bare venue names
// resolve inside the right country.
func NewGoogleClient(cfg GoogleConfig, httpClient *http.Client) *GoogleClient {
	if httpClient == nil {
		timeout := defaultHTTPTimeout
		if cfg.TimeoutSeconds > 0 {
			timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &GoogleClient{cfg: cfg, httpClient: httpClient}
}

type googleResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode looks up a location name. A ZERO_RESULTS response is reported as
// not found; every other non-OK status is an error.
func (g *GoogleClient) Geocode(ctx context.Context, location string) (Coordinates, bool, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return Coordinates{}, false, errors.New("geocode: location required")
	}
	if g.cfg.APIKey == "" {
		return Coordinates{}, false, services.Wrap(services.ErrConfiguration, "geocode", "lookup", "api key required", nil)
	}

	query := location
	if hint := strings.TrimSpace(g.cfg.RegionHint); hint != "" &&
		!strings.Contains(strings.ToLower(location), strings.ToLower(hint)) {
		query = location + ", " + hint
	}

	params := url.Values{}
	params.Set("address", query)
	params.Set("key", g.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Coordinates{}, false, fmt.Errorf("geocode: new request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return Coordinates{}, false, fmt.Errorf("geocode: http error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Coordinates{}, false, fmt.Errorf("geocode: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, false, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	var parsed googleResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Coordinates{}, false, fmt.Errorf("geocode: decode response: %w", err)
	}

	switch parsed.Status {
	case "OK":
		if len(parsed.Results) == 0 {
			return Coordinates{}, false, nil
		}
		loc := parsed.Results[0].Geometry.Location
		return Coordinates{Lat: loc.Lat, Lng: loc.Lng}, true, nil
	case "ZERO_RESULTS":
		return Coordinates{}, false, nil
	default:
		if parsed.ErrorMessage != "" {
			return Coordinates{}, false, fmt.Errorf("geocode: api status %s: %s", parsed.Status, parsed.ErrorMessage)
		}
		return Coordinates{}, false, fmt.Errorf("geocode: api status %s", parsed.Status)
	}
}
