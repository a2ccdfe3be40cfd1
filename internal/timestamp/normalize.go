package timestamp

import (
	"strings"
	"time"
)

// Kind classifies a normalization outcome.
type Kind int

const (
	// Unparseable means no usable date could be recovered from the input.
	Unparseable Kind = iota
	// StartOnly means a start instant was recovered but no end.
	StartOnly
	// Range means both a start and an end instant were recovered.
	Range
)

// Result is the outcome of normalizing one event's date and time text.
// Start and End are only meaningful for the kinds that define them.
type Result struct {
	Kind  Kind
	Start time.Time
	End   time.Time
}

// Unix returns the result as optional epoch seconds, suitable for direct
// assignment to an event's timestamp fields.
func (r Result) Unix() (start, end *int64) {
	switch r.Kind {
	case StartOnly:
		s := r.Start.Unix()
		return &s, nil
	case Range:
		s := r.Start.Unix()
		e := r.End.Unix()
		return &s, &e
	default:
		return nil, nil
	}
}

// Normalizer parses event date and time text against a fixed timezone.
// All produced instants carry the configured location.
type Normalizer struct {
	loc      *time.Location
	dayFirst bool
}

// NewNormalizer returns a normalizer anchored to loc. dateOrder selects how
// ambiguous numeric dates are read: "dmy" prefers day-first, "mdy" prefers
// month-first.
func NewNormalizer(loc *time.Location, dateOrder string) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{loc: loc, dayFirst: dateOrder != "mdy"}
}

// Location returns the timezone all results are expressed in.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Normalize resolves dateText and timeText into concrete instants.
//
// A missing or unrecognized date makes the whole result Unparseable. A
// missing time anchors a single day at local midnight; across a multi-day
// range it spans midnight of the first day to 23:59 of the last. An explicit
// unknown-time sentinel (TBA, TBD and friends) on a single day is
// Unparseable, since the listing has promised a specific time that is not
// yet known; on a multi-day range the days themselves are still the useful
// signal, so the range falls back to day boundaries.
func (n *Normalizer) Normalize(dateText, timeText string) Result {
	dateText = strings.TrimSpace(dateText)
	timeText = strings.TrimSpace(timeText)

	if dateText == "" || isUnknownSentinel(dateText) {
		return Result{Kind: Unparseable}
	}
	startDay, endDay, ok := n.parseDateRange(dateText)
	if !ok {
		return Result{Kind: Unparseable}
	}
	multiDay := !startDay.Equal(endDay)

	if isUnknownSentinel(timeText) {
		if !multiDay {
			return Result{Kind: Unparseable}
		}
		return Result{Kind: Range, Start: startDay, End: endOfDay(endDay)}
	}

	span, ok := resolveTimeOfDay(timeText)
	if !ok {
		if multiDay {
			return Result{Kind: Range, Start: startDay, End: endOfDay(endDay)}
		}
		return Result{Kind: StartOnly, Start: startDay}
	}

	start := startDay.Add(time.Duration(span.start) * time.Minute)
	if span.end < 0 {
		if multiDay {
			return Result{Kind: Range, Start: start, End: endOfDay(endDay)}
		}
		return Result{Kind: StartOnly, Start: start}
	}
	end := endDay.Add(time.Duration(span.end) * time.Minute)
	if !end.After(start) {
		// An inverted same-day range means the end text was wrong or wrapped
		// past midnight ambiguously; keep the trustworthy half.
		return Result{Kind: StartOnly, Start: start}
	}
	return Result{Kind: Range, Start: start, End: end}
}

func endOfDay(day time.Time) time.Time {
	return day.Add(23*time.Hour + 59*time.Minute)
}

var unknownSentinels = map[string]struct{}{
	"TBA":              {},
	"TBD":              {},
	"TO BE ANNOUNCED":  {},
	"TO BE DETERMINED": {},
	"N/A":              {},
}

func isUnknownSentinel(s string) bool {
	_, ok := unknownSentinels[strings.ToUpper(strings.TrimSpace(s))]
	return ok
}
