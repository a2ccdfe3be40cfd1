package events

import (
	"errors"
	"fmt"
	"strings"
)

// Event is the single record type flowing through the pipeline. Stage
// semantics are carried by which optional fields are populated: raw records
// have free text only, timestamped records add epoch seconds and coordinates,
// final records are deduplicated. Field order here is the marshal order of
// every persisted artifact.
type Event struct {
	Name           string   `json:"name"`
	Date           string   `json:"date,omitempty"`
	Time           string   `json:"time,omitempty"`
	StartTimestamp *int64   `json:"startTimestamp,omitempty"`
	EndTimestamp   *int64   `json:"endTimestamp,omitempty"`
	LocationName   string   `json:"locationName,omitempty"`
	LocationLat    *float64 `json:"locationLat,omitempty"`
	LocationLng    *float64 `json:"locationLng,omitempty"`
	Description    string   `json:"description,omitempty"`
	Category       string   `json:"category,omitempty"`
	Website        string   `json:"website,omitempty"`
	Source         string   `json:"source"`
}

// HasStart reports whether the event carries a start timestamp.
func (e Event) HasStart() bool {
	return e.StartTimestamp != nil
}

// HasCoordinates reports whether the event carries resolved coordinates.
func (e Event) HasCoordinates() bool {
	return e.LocationLat != nil && e.LocationLng != nil
}

// Validate checks the structural invariants every persisted record must hold.
func (e Event) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("event name required")
	}
	if strings.TrimSpace(e.Source) == "" {
		return fmt.Errorf("event %q: source required", e.Name)
	}
	if e.EndTimestamp != nil {
		if e.StartTimestamp == nil {
			return fmt.Errorf("event %q: end timestamp without start", e.Name)
		}
		if *e.EndTimestamp < *e.StartTimestamp {
			return fmt.Errorf("event %q: end timestamp %d before start %d", e.Name, *e.EndTimestamp, *e.StartTimestamp)
		}
	}
	if (e.LocationLat == nil) != (e.LocationLng == nil) {
		return fmt.Errorf("event %q: latitude and longitude must be set together", e.Name)
	}
	return nil
}

// Int64Ptr returns a pointer to v. Convenient for the optional timestamp fields.
func Int64Ptr(v int64) *int64 { return &v }

// Float64Ptr returns a pointer to v. Convenient for the optional coordinate fields.
func Float64Ptr(v float64) *float64 { return &v }
