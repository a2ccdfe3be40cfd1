package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultHTTPTimeout = 60 * time.Second

// Config captures the runtime settings required to talk to the scrape API.
type Config struct {
	BaseURL        string
	APIKey         string
	TimeoutSeconds int
}

// Client wraps the Firecrawl scrape endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a scrape client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			BaseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			APIKey:         strings.TrimSpace(cfg.APIKey),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = "http://localhost:3002"
	}
	return client
}

type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
}

type scrapeResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Markdown string `json:"markdown"`
	} `json:"data"`
	Error string `json:"error"`
}

// Scrape fetches the page at target and returns its markdown rendering.
func (c *Client) Scrape(ctx context.Context, target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", errors.New("scrape: url required")
	}
	if _, err := url.ParseRequestURI(target); err != nil {
		return "", fmt.Errorf("scrape: invalid url %q: %w", target, err)
	}

	encoded, err := json.Marshal(scrapeRequest{URL: target, Formats: []string{"markdown"}})
	if err != nil {
		return "", fmt.Errorf("scrape: encode body: %w", err)
	}

	endpoint := c.cfg.BaseURL + "/v1/scrape"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("scrape: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("scrape %s: http error: %w", target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("scrape %s: read body: %w", target, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("scrape %s: http %d: %s", target, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed scrapeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("scrape %s: decode response: %w", target, err)
	}
	if !parsed.Success {
		msg := strings.TrimSpace(parsed.Error)
		if msg == "" {
			msg = "unspecified failure"
		}
		return "", fmt.Errorf("scrape %s: api error: %s", target, msg)
	}
	if strings.TrimSpace(parsed.Data.Markdown) == "" {
		return "", fmt.Errorf("scrape %s: empty markdown", target)
	}
	return parsed.Data.Markdown, nil
}
