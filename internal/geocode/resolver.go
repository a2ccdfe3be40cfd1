package geocode

import (
	"context"
	"log/slog"

	"eventpipe/internal/logging"
	"eventpipe/internal/services"
)

// Location names that describe no single place. They resolve to nothing and
// never reach the provider or the cache.
var placeholderNames = map[string]struct{}{
	"various locations":  {},
	"multiple locations": {},
	"multiple venues":    {},
	"various venues":     {},
	"various":            {},
	"online":             {},
	"virtual":            {},
	"tba":                {},
	"tbd":                {},
	"to be announced":    {},
	"to be determined":   {},
}

// Bounds is the lat/lng box a plausible result must fall inside. A zero
// value disables the check.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

func (b Bounds) enabled() bool {
	return b != Bounds{}
}

func (b Bounds) contains(c Coordinates) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat && c.Lng >= b.MinLng && c.Lng <= b.MaxLng
}

// Resolver answers coordinate lookups cache-first, consulting the provider
// only for names never seen before.
type Resolver struct {
	cache    *Cache
	provider Provider
	bounds   Bounds
	logger   *slog.Logger
}

// NewResolver wires a cache and provider together. bounds, when non-zero,
// rejects provider results outside the configured region; a rejection is
// cached as not found.
func NewResolver(cache *Cache, provider Provider, bounds Bounds, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{
		cache:    cache,
		provider: provider,
		bounds:   bounds,
		logger:   logging.NewComponentLogger(logger, "geocode"),
	}
}

// Resolve returns coordinates for a location name, or nil when the name is
// empty, a placeholder, or unknown to the provider. A non-nil error means
// the provider call failed; nothing is cached in that case so the name is
// retried on the next run.
func (r *Resolver) Resolve(ctx context.Context, name string) (*Coordinates, error) {
	key := NormalizeKey(name)
	if key == "" {
		return nil, nil
	}
	if _, ok := placeholderNames[key]; ok {
		r.logger.Debug("skipping placeholder location", logging.String(logging.FieldLocation, name))
		return nil, nil
	}

	if entry, ok := r.cache.Lookup(name); ok {
		if !entry.Found {
			return nil, nil
		}
		return &Coordinates{Lat: entry.Lat, Lng: entry.Lng}, nil
	}

	coords, found, err := r.provider.Geocode(ctx, name)
	if err != nil {
		if services.IsFatal(err) {
			return nil, err
		}
		return nil, services.Wrap(services.ErrExternalTool, "geocode", "resolve", name, err)
	}
	if found && r.bounds.enabled() && !r.bounds.contains(coords) {
		r.logger.Warn("geocode result outside configured region",
			logging.String(logging.FieldLocation, name),
			logging.Float64("lat", coords.Lat),
			logging.Float64("lng", coords.Lng))
		found = false
	}
	if !found {
		if cacheErr := r.cache.StoreNotFound(name); cacheErr != nil {
			return nil, cacheErr
		}
		r.logger.Info("location not found", logging.String(logging.FieldLocation, name))
		return nil, nil
	}
	if cacheErr := r.cache.Store(name, coords.Lat, coords.Lng); cacheErr != nil {
		return nil, cacheErr
	}
	return &coords, nil
}
