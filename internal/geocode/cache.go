package geocode

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"eventpipe/internal/logging"
)

// Entry records the outcome of one geocoding lookup. Found distinguishes a
// venue the provider located from one it could not; both outcomes are kept
// so failed names are never retried. ResolvedAt is epoch seconds.
type Entry struct {
	Lat        float64 `json:"lat,omitempty"`
	Lng        float64 `json:"lng,omitempty"`
	ResolvedAt int64   `json:"resolvedAt"`
	Found      bool    `json:"found"`
}

// diskEntry tolerates both the current schema and the legacy bare lat/lng
// form, where presence in the file implied a successful lookup.
type diskEntry struct {
	Lat        *float64 `json:"lat"`
	Lng        *float64 `json:"lng"`
	ResolvedAt *int64   `json:"resolvedAt"`
	Found      *bool    `json:"found"`
}

// Cache provides thread-safe access to the geocode cache file. Keys are
// normalized location names.
type Cache struct {
	path    string
	logger  *slog.Logger
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewCache loads the cache at path, upgrading legacy entries in place. An
// unreadable or corrupt file starts the cache empty rather than failing the
// run. If path is empty all operations are no-ops.
func NewCache(path string, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "geocode-cache")

	c := &Cache{
		path:    path,
		logger:  logger,
		now:     time.Now,
		entries: make(map[string]Entry),
	}
	if path == "" {
		return c
	}

	migrated, err := c.load()
	if err != nil {
		logger.Warn("failed to load geocode cache, starting empty",
			logging.String("path", path),
			logging.Error(err))
		c.entries = make(map[string]Entry)
		return c
	}
	if migrated > 0 {
		if err := c.save(); err != nil {
			logger.Warn("failed to persist migrated geocode cache",
				logging.String("path", path),
				logging.Error(err))
		} else {
			logger.Info("migrated legacy geocode cache entries",
				logging.Int("entry_count", migrated),
				logging.String("path", path))
		}
	}
	return c
}

// Lookup returns the entry for a location name if one has been recorded.
func (c *Cache) Lookup(name string) (Entry, bool) {
	key := NormalizeKey(name)
	if key == "" || c.path == "" {
		return Entry{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	return entry, ok
}

// Store records a successful lookup and persists to disk.
func (c *Cache) Store(name string, lat, lng float64) error {
	return c.put(name, Entry{Lat: lat, Lng: lng, Found: true, ResolvedAt: c.now().Unix()})
}

// StoreNotFound records that the provider could not locate a name, so the
// lookup is never repeated.
func (c *Cache) StoreNotFound(name string) error {
	return c.put(name, Entry{Found: false, ResolvedAt: c.now().Unix()})
}

func (c *Cache) put(name string, entry Entry) error {
	key := NormalizeKey(name)
	if key == "" {
		return errors.New("location name cannot be empty")
	}
	if c.path == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry
	if err := c.save(); err != nil {
		return fmt.Errorf("persist geocode cache: %w", err)
	}

	c.logger.Debug("cached geocode result",
		logging.String(logging.FieldLocation, key),
		logging.Bool("found", entry.Found))
	return nil
}

// NamedEntry pairs a cache key with its entry for listing.
type NamedEntry struct {
	Name string
	Entry
}

// List returns all entries sorted by name.
func (c *Cache) List() []NamedEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := make([]NamedEntry, 0, len(c.entries))
	for name, entry := range c.entries {
		entries = append(entries, NamedEntry{Name: name, Entry: entry})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// Count returns the number of cached lookups, split by outcome.
func (c *Cache) Count() (found, notFound int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, entry := range c.entries {
		if entry.Found {
			found++
		} else {
			notFound++
		}
	}
	return found, notFound
}

// Clear removes all entries and persists the empty cache.
func (c *Cache) Clear() error {
	if c.path == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]Entry)
	if err := c.save(); err != nil {
		return fmt.Errorf("persist geocode cache: %w", err)
	}
	c.logger.Debug("cleared geocode cache")
	return nil
}

// load reads the cache file and upgrades legacy entries, returning how many
// required migration.
func (c *Cache) load() (int, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read cache file: %w", err)
	}
	if len(data) == 0 {
		return 0, nil
	}

	var raw map[string]*diskEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("parse cache file: %w", err)
	}

	now := c.now().Unix()
	migrated := 0
	c.entries = make(map[string]Entry, len(raw))
	for name, de := range raw {
		key := NormalizeKey(name)
		if key == "" {
			continue
		}
		if key != name {
			migrated++
		}
		entry, upgraded := upgradeEntry(de, now)
		if upgraded {
			migrated++
		}
		c.entries[key] = entry
	}

	c.logger.Debug("loaded geocode cache",
		logging.Int("entry_count", len(c.entries)),
		logging.String("path", c.path))
	return migrated, nil
}

// upgradeEntry fills in the fields the legacy schema lacked: a null value
// meant a failed lookup, a bare lat/lng pair a successful one, and neither
// carried a resolution time.
func upgradeEntry(de *diskEntry, now int64) (Entry, bool) {
	if de == nil {
		return Entry{Found: false, ResolvedAt: now}, true
	}
	entry := Entry{}
	if de.Lat != nil {
		entry.Lat = *de.Lat
	}
	if de.Lng != nil {
		entry.Lng = *de.Lng
	}
	upgraded := false
	if de.Found != nil {
		entry.Found = *de.Found
	} else {
		entry.Found = de.Lat != nil && de.Lng != nil
		upgraded = true
	}
	if de.ResolvedAt != nil {
		entry.ResolvedAt = *de.ResolvedAt
	} else {
		entry.ResolvedAt = now
		upgraded = true
	}
	return entry, upgraded
}

// save writes the cache atomically via a temp file.
func (c *Cache) save() error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
