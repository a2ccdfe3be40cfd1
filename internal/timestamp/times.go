package timestamp

import (
	"regexp"
	"strings"
	"time"
)

// timeSpan is a time-of-day window in minutes since midnight. end is -1 when
// only a start was recovered.
type timeSpan struct {
	start int
	end   int
}

var (
	meridiemRangePattern = regexp.MustCompile(`(?i)(\d{1,2}(?::\d{2})?\s*(?:am|pm))\s*(?:-|–|to)\s*(\d{1,2}(?::\d{2})?\s*(?:am|pm))`)
	clockRangePattern    = regexp.MustCompile(`(\d{1,2}:\d{2})\s*(?:-|–|to)\s*(\d{1,2}:\d{2})`)
	singleTimePattern    = regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*(?:am|pm)|\d{1,2}\s*(?:am|pm)|\d{1,2}:\d{2}`)
)

var meridiemLayouts = []string{"3:04 PM", "3:04PM", "3 PM", "3PM"}
var clockLayouts = []string{"15:04:05", "15:04", "15"}

// parseClock resolves a single clock expression to minutes since midnight.
func parseClock(s string) (int, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	layouts := clockLayouts
	if strings.Contains(s, "AM") || strings.Contains(s, "PM") {
		layouts = meridiemLayouts
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour()*60 + t.Minute(), true
		}
	}
	return 0, false
}

// resolveTimeOfDay recovers a single usable window from arbitrary time text.
// Exact single times and simple "start - end" pairs are handled directly;
// anything longer (recurring schedules, "from 6 pm onwards", slash-separated
// session lists) goes through regex extraction, where the earliest start and
// the latest end win.
func resolveTimeOfDay(text string) (timeSpan, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return timeSpan{}, false
	}
	if m, ok := parseClock(text); ok {
		return timeSpan{start: m, end: -1}, true
	}
	if span, ok := splitSimpleRange(text); ok {
		return span, true
	}
	return extractSpan(text)
}

func splitSimpleRange(text string) (timeSpan, bool) {
	for _, sep := range []string{" - ", "-", " – ", "–", " to "} {
		parts := strings.SplitN(text, sep, 2)
		if len(parts) != 2 {
			continue
		}
		start, okStart := parseClock(parts[0])
		end, okEnd := parseClock(parts[1])
		if okStart && okEnd {
			return timeSpan{start: start, end: end}, true
		}
	}
	return timeSpan{}, false
}

// extractSpan scans free text for every recognizable window or lone time and
// folds them into one covering span.
func extractSpan(text string) (timeSpan, bool) {
	var spans []timeSpan
	for _, m := range meridiemRangePattern.FindAllStringSubmatch(text, -1) {
		start, okStart := parseClock(m[1])
		end, okEnd := parseClock(m[2])
		if okStart && okEnd {
			spans = append(spans, timeSpan{start: start, end: end})
		}
	}
	if len(spans) == 0 {
		for _, m := range clockRangePattern.FindAllStringSubmatch(text, -1) {
			start, okStart := parseClock(m[1])
			end, okEnd := parseClock(m[2])
			if okStart && okEnd {
				spans = append(spans, timeSpan{start: start, end: end})
			}
		}
	}
	if len(spans) > 0 {
		combined := spans[0]
		for _, s := range spans[1:] {
			if s.start < combined.start {
				combined.start = s.start
			}
			if s.end > combined.end {
				combined.end = s.end
			}
		}
		return combined, true
	}

	var starts []int
	for _, m := range singleTimePattern.FindAllString(text, -1) {
		if v, ok := parseClock(m); ok {
			starts = append(starts, v)
		}
	}
	if len(starts) == 0 {
		return timeSpan{}, false
	}
	earliest := starts[0]
	for _, v := range starts[1:] {
		if v < earliest {
			earliest = v
		}
	}
	return timeSpan{start: earliest, end: -1}, true
}
