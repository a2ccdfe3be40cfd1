package workflow

import (
	"log/slog"

	"eventpipe/internal/config"
	"eventpipe/internal/cultural"
	"eventpipe/internal/dedup"
	"eventpipe/internal/geocode"
	"eventpipe/internal/ingest"
	"eventpipe/internal/runlog"
	"eventpipe/internal/services"
	"eventpipe/internal/services/firecrawl"
	"eventpipe/internal/services/llm"
	"eventpipe/internal/stage"
	"eventpipe/internal/timestamp"
)

// NewPipeline builds a fully wired manager from configuration. The ledger is
// passed in rather than opened here so the CLI can share one handle between
// the run and its summary queries.
func NewPipeline(cfg *config.Config, ledger *runlog.Store, logger *slog.Logger) (*Manager, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "workflow", "build", "resolve timezone", err)
	}
	normalizer := timestamp.NewNormalizer(loc, cfg.Pipeline.DateOrder)

	cache := geocode.NewCache(cfg.GeocodeCachePath(), logger)
	provider := geocode.NewGoogleClient(geocode.GoogleConfig{
		APIKey:         cfg.Geocoding.APIKey,
		BaseURL:        cfg.Geocoding.BaseURL,
		RegionHint:     cfg.Geocoding.RegionHint,
		TimeoutSeconds: cfg.Geocoding.TimeoutSeconds,
	}, nil)
	resolver := geocode.NewResolver(cache, provider, geocode.Bounds{
		MinLat: cfg.Geocoding.MinLat,
		MaxLat: cfg.Geocoding.MaxLat,
		MinLng: cfg.Geocoding.MinLng,
		MaxLng: cfg.Geocoding.MaxLng,
	}, logger)

	model := llm.NewClient(llm.Config{
		APIKey:         cfg.Classifier.APIKey,
		BaseURL:        cfg.Classifier.BaseURL,
		Model:          cfg.Classifier.Model,
		TimeoutSeconds: cfg.Classifier.TimeoutSeconds,
	})
	filter := cultural.NewFilter(cultural.NewLLMClassifier(model), cfg.Classifier.ConfidenceThreshold, 0, logger)

	scraper := firecrawl.NewClient(firecrawl.Config{
		BaseURL:        cfg.Scraper.BaseURL,
		APIKey:         cfg.Scraper.APIKey,
		TimeoutSeconds: cfg.Scraper.TimeoutSeconds,
	})
	collector := ingest.NewCollector(scraper, model, cfg.Scraper.TargetURLs, logger)

	steps := []Step{
		{Handler: stage.NewTimestamped(normalizer, resolver, logger), Artifact: cfg.TimestampedArtifactPath()},
		{Handler: stage.NewCurated(filter, logger), Artifact: cfg.CuratedArtifactPath()},
		{Handler: stage.NewFinal(dedup.New(cfg.Pipeline.DedupPrecision, logger), logger), Artifact: cfg.FinalArtifactPath()},
	}
	return NewManager(collector, steps, cfg.RawArtifactPath(), cfg.LockPath(), ledger, logger), nil
}
