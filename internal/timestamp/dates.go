package timestamp

import (
	"strings"
	"time"
)

// Separators that join the two halves of a multi-day range, tried in order.
// The spaced hyphen forms come last so they never split an ISO date.
var dateRangeSeparators = []string{" to ", " until ", " through ", " - ", " – "}

func dateLayouts(dayFirst bool) []string {
	if dayFirst {
		return []string{"2006-01-02", "02/01/2006", "01/02/2006", "02-01-2006", "01-02-2006"}
	}
	return []string{"2006-01-02", "01/02/2006", "02/01/2006", "01-02-2006", "02-01-2006"}
}

// parseDate resolves a single calendar date to local midnight.
func (n *Normalizer) parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts(n.dayFirst) {
		if t, err := time.ParseInLocation(layout, s, n.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseDateRange resolves date text into first and last day at local
// midnight. A single date yields the same day for both.
func (n *Normalizer) parseDateRange(s string) (start, end time.Time, ok bool) {
	s = strings.TrimSpace(s)
	for _, sep := range dateRangeSeparators {
		idx := strings.Index(s, sep)
		if idx < 0 {
			continue
		}
		first, okFirst := n.parseDate(s[:idx])
		last, okLast := n.parseDate(s[idx+len(sep):])
		if !okFirst || !okLast || last.Before(first) {
			continue
		}
		return first, last, true
	}
	if d, okDate := n.parseDate(s); okDate {
		return d, d, true
	}
	return time.Time{}, time.Time{}, false
}
