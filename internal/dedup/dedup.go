// Package dedup collapses event records that describe the same occurrence.
//
// Two events are duplicates when they start at the same instant in the same
// place, with coordinates compared at a configurable decimal precision so
// that venues geocoded from slightly different address strings still match.
// When coordinates are absent the normalized location name stands in for
// them. Events missing a start time, or missing both coordinates and a
// location name, carry too little identity to merge safely and always pass
// through unchanged.
package dedup

import (
	"log/slog"
	"math"
	"sort"

	"eventpipe/internal/events"
	"eventpipe/internal/geocode"
	"eventpipe/internal/logging"
)

// DefaultPrecision compares coordinates to three decimal places, roughly a
// city block.
const DefaultPrecision = 3

// identity keys a duplicate group. Either lat/lng or name is populated,
// never both, so coordinate groups and name groups cannot collide.
type identity struct {
	start int64
	lat   int64
	lng   int64
	name  string
}

// Deduper merges duplicate events and orders the result chronologically.
type Deduper struct {
	scale  float64
	logger *slog.Logger
}

// New returns a deduper comparing coordinates at precision decimal places.
func New(precision int, logger *slog.Logger) *Deduper {
	if precision <= 0 {
		precision = DefaultPrecision
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Deduper{
		scale:  math.Pow(10, float64(precision)),
		logger: logging.NewComponentLogger(logger, "dedup"),
	}
}

// Apply merges duplicates in list and returns the survivors sorted by start
// time ascending, with events lacking a start time at the end in their
// original order. Within a duplicate group the event with the longest
// description survives, falling back to the one carrying a website, then to
// the first seen; fields the survivor lacks are filled from the others, and
// the longest location name across the group always wins.
func (d *Deduper) Apply(list []events.Event) []events.Event {
	groups := make(map[identity]int)
	result := make([]events.Event, 0, len(list))
	merged := 0

	for _, event := range list {
		id, ok := d.identify(event)
		if !ok {
			result = append(result, event)
			continue
		}
		idx, seen := groups[id]
		if !seen {
			groups[id] = len(result)
			result = append(result, event)
			continue
		}
		merged++
		d.logger.Debug("merging duplicate event",
			logging.String(logging.FieldEvent, event.Name),
			logging.String(logging.FieldSource, event.Source))
		result[idx] = merge(result[idx], event)
	}

	if merged > 0 {
		d.logger.Info("merged duplicate events",
			logging.Int("merged_count", merged),
			logging.Int("event_count", len(result)))
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i].StartTimestamp, result[j].StartTimestamp
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
	return result
}

func (d *Deduper) identify(event events.Event) (identity, bool) {
	if !event.HasStart() {
		return identity{}, false
	}
	if event.HasCoordinates() {
		return identity{
			start: *event.StartTimestamp,
			lat:   int64(math.Round(*event.LocationLat * d.scale)),
			lng:   int64(math.Round(*event.LocationLng * d.scale)),
		}, true
	}
	name := geocode.NormalizeKey(event.LocationName)
	if name == "" {
		return identity{}, false
	}
	return identity{start: *event.StartTimestamp, name: name}, true
}

// merge folds other into the current survivor, possibly replacing it.
func merge(current, other events.Event) events.Event {
	survivor, donor := current, other
	if prefer(other, current) {
		survivor, donor = other, current
	}
	if survivor.Description == "" {
		survivor.Description = donor.Description
	}
	if survivor.Website == "" {
		survivor.Website = donor.Website
	}
	if len(donor.LocationName) > len(survivor.LocationName) {
		survivor.LocationName = donor.LocationName
	}
	if survivor.Category == "" {
		survivor.Category = donor.Category
	}
	if survivor.EndTimestamp == nil {
		survivor.EndTimestamp = donor.EndTimestamp
	}
	return survivor
}

// prefer reports whether candidate should survive over incumbent.
func prefer(candidate, incumbent events.Event) bool {
	if len(candidate.Description) != len(incumbent.Description) {
		return len(candidate.Description) > len(incumbent.Description)
	}
	if (candidate.Website != "") != (incumbent.Website != "") {
		return candidate.Website != ""
	}
	return false
}
