package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"eventpipe/internal/events"
	"eventpipe/internal/logging"
	"eventpipe/internal/services"
	"eventpipe/internal/services/llm"
)

// Page content beyond this is truncated before extraction; listing pages
// repeat navigation and footer text well before this limit.
const maxPageContent = 60_000

const extractionSystemPrompt = `You extract event listings from web page text. The user message contains the page's markdown.

Find every distinct event announced on the page and respond with a JSON object of the form {"events": [{"name": "...", "date": "...", "time": "...", "location": "...", "description": "...", "category": "...", "website": "..."}]}.

Rules:
- name is required; skip entries without a clear event name.
- date and time are copied verbatim from the page, including ranges and phrases like "TBA". Leave them empty when the page gives none.
- location is the venue name as written. description is a short summary in your own words. category is one lowercase word such as "culture", "sports", "food", "family". website is the event's own URL when the page links one.
- Do not invent events or details that are not on the page. An empty page yields {"events": []}.`

// Scraper fetches a page as markdown.
type Scraper interface {
	Scrape(ctx context.Context, target string) (string, error)
}

// Extractor turns a prompt pair into model output. Satisfied by llm.Client.
type Extractor interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type extractedEvent struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Website     string `json:"website"`
}

type extractionResponse struct {
	Events []extractedEvent `json:"events"`
}

// Collector walks the configured target URLs and produces raw event records.
type Collector struct {
	scraper   Scraper
	extractor Extractor
	targets   []string
	logger    *slog.Logger
}

// NewCollector wires a scraper and extractor over the target URL list.
func NewCollector(scraper Scraper, extractor Extractor, targets []string, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Collector{
		scraper:   scraper,
		extractor: extractor,
		targets:   targets,
		logger:    logging.NewComponentLogger(logger, "ingest"),
	}
}

// Collect scrapes every target and extracts its events. Per-target failures
// are logged and skipped; Collect fails outright only when no targets are
// configured or the context is cancelled.
func (c *Collector) Collect(ctx context.Context) ([]events.Event, error) {
	if len(c.targets) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "ingest", "collect", "no target urls configured", nil)
	}

	var collected []events.Event
	for _, target := range c.targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records, err := c.collectOne(ctx, target)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			c.logger.Warn("skipping source",
				logging.String(logging.FieldSource, target),
				logging.Error(err))
			continue
		}
		c.logger.Info("collected events from source",
			logging.String(logging.FieldSource, target),
			logging.Int("event_count", len(records)))
		collected = append(collected, records...)
	}
	return collected, nil
}

func (c *Collector) collectOne(ctx context.Context, target string) ([]events.Event, error) {
	markdown, err := c.scraper.Scrape(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("scrape: %w", err)
	}
	if len(markdown) > maxPageContent {
		markdown = markdown[:maxPageContent]
	}
	if strings.TrimSpace(markdown) == "" {
		return nil, nil
	}

	content, err := c.extractor.CompleteJSON(ctx, extractionSystemPrompt, markdown)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	var parsed extractionResponse
	if err := llm.DecodeJSON(content, &parsed); err != nil {
		return nil, fmt.Errorf("decode extraction: %w", err)
	}

	records := make([]events.Event, 0, len(parsed.Events))
	for _, raw := range parsed.Events {
		if strings.TrimSpace(raw.Name) == "" {
			c.logger.Warn("dropping extracted record without a name",
				logging.String(logging.FieldSource, target))
			continue
		}
		records = append(records, events.Event{
			Name:         strings.TrimSpace(raw.Name),
			Date:         strings.TrimSpace(raw.Date),
			Time:         strings.TrimSpace(raw.Time),
			LocationName: strings.TrimSpace(raw.Location),
			Description:  strings.TrimSpace(raw.Description),
			Category:     strings.TrimSpace(raw.Category),
			Website:      strings.TrimSpace(raw.Website),
			Source:       target,
		})
	}
	return records, nil
}
