package timestamp

import (
	"testing"
	"time"
)

var doha = time.FixedZone("UTC+3", 3*60*60)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	return NewNormalizer(doha, "dmy")
}

func local(t *testing.T, year int, month time.Month, day, hour, minute int) time.Time {
	t.Helper()
	return time.Date(year, month, day, hour, minute, 0, 0, doha)
}

func TestNormalizeSingleDayWithRange(t *testing.T) {
	n := newTestNormalizer(t)
	got := n.Normalize("2024-12-18", "4:00 PM - 10:00 PM")
	if got.Kind != Range {
		t.Fatalf("kind = %d, want Range", got.Kind)
	}
	if want := local(t, 2024, time.December, 18, 16, 0); !got.Start.Equal(want) {
		t.Errorf("start = %v, want %v", got.Start, want)
	}
	if want := local(t, 2024, time.December, 18, 22, 0); !got.End.Equal(want) {
		t.Errorf("end = %v, want %v", got.End, want)
	}
}

func TestNormalizeMultiDayUnknownTime(t *testing.T) {
	n := newTestNormalizer(t)
	got := n.Normalize("2024-12-25 to 2024-12-31", "TBA")
	if got.Kind != Range {
		t.Fatalf("kind = %d, want Range", got.Kind)
	}
	if want := local(t, 2024, time.December, 25, 0, 0); !got.Start.Equal(want) {
		t.Errorf("start = %v, want %v", got.Start, want)
	}
	if want := local(t, 2024, time.December, 31, 23, 59); !got.End.Equal(want) {
		t.Errorf("end = %v, want %v", got.End, want)
	}
}

func TestNormalizeSingleDayUnknownTime(t *testing.T) {
	n := newTestNormalizer(t)
	for _, sentinel := range []string{"TBA", "tbd", "To Be Announced", "to be determined", "N/A"} {
		if got := n.Normalize("2024-12-18", sentinel); got.Kind != Unparseable {
			t.Errorf("Normalize(%q) kind = %d, want Unparseable", sentinel, got.Kind)
		}
	}
}

func TestNormalizeUnknownDate(t *testing.T) {
	n := newTestNormalizer(t)
	for _, date := range []string{"", "TBA", "TBD", "next Friday", "the 18th of December", "2024/12/18"} {
		if got := n.Normalize(date, "8 pm"); got.Kind != Unparseable {
			t.Errorf("Normalize(%q) kind = %d, want Unparseable", date, got.Kind)
		}
	}
}

func TestNormalizeMissingTimeDefaultsToMidnight(t *testing.T) {
	n := newTestNormalizer(t)
	got := n.Normalize("18/12/2024", "")
	if got.Kind != StartOnly {
		t.Fatalf("kind = %d, want StartOnly", got.Kind)
	}
	if want := local(t, 2024, time.December, 18, 0, 0); !got.Start.Equal(want) {
		t.Errorf("start = %v, want %v", got.Start, want)
	}
}

func TestNormalizeDayFirstPreference(t *testing.T) {
	dmy := NewNormalizer(doha, "dmy")
	got := dmy.Normalize("05/03/2025", "")
	if want := local(t, 2025, time.March, 5, 0, 0); !got.Start.Equal(want) {
		t.Errorf("dmy start = %v, want %v", got.Start, want)
	}

	mdy := NewNormalizer(doha, "mdy")
	got = mdy.Normalize("05/03/2025", "")
	if want := local(t, 2025, time.May, 3, 0, 0); !got.Start.Equal(want) {
		t.Errorf("mdy start = %v, want %v", got.Start, want)
	}
}

func TestNormalizeUnambiguousMonthOverridesPreference(t *testing.T) {
	n := newTestNormalizer(t)
	// 25 cannot be a month, so the month-first layout is the only fit.
	got := n.Normalize("12/25/2024", "")
	if want := local(t, 2024, time.December, 25, 0, 0); !got.Start.Equal(want) {
		t.Errorf("start = %v, want %v", got.Start, want)
	}
}

func TestNormalizeRangeSeparators(t *testing.T) {
	n := newTestNormalizer(t)
	wantStart := local(t, 2025, time.January, 10, 0, 0)
	wantEnd := local(t, 2025, time.January, 12, 23, 59)
	for _, text := range []string{
		"2025-01-10 to 2025-01-12",
		"2025-01-10 - 2025-01-12",
		"2025-01-10 until 2025-01-12",
		"2025-01-10 through 2025-01-12",
	} {
		got := n.Normalize(text, "")
		if got.Kind != Range {
			t.Errorf("Normalize(%q) kind = %d, want Range", text, got.Kind)
			continue
		}
		if !got.Start.Equal(wantStart) || !got.End.Equal(wantEnd) {
			t.Errorf("Normalize(%q) = %v..%v, want %v..%v", text, got.Start, got.End, wantStart, wantEnd)
		}
	}
}

func TestNormalizeStartTimeAcrossMultiDayRange(t *testing.T) {
	n := newTestNormalizer(t)
	got := n.Normalize("2025-02-01 to 2025-02-03", "7:30 PM")
	if got.Kind != Range {
		t.Fatalf("kind = %d, want Range", got.Kind)
	}
	if want := local(t, 2025, time.February, 1, 19, 30); !got.Start.Equal(want) {
		t.Errorf("start = %v, want %v", got.Start, want)
	}
	if want := local(t, 2025, time.February, 3, 23, 59); !got.End.Equal(want) {
		t.Errorf("end = %v, want %v", got.End, want)
	}
}

func TestNormalizeInvertedRangeKeepsStart(t *testing.T) {
	n := newTestNormalizer(t)
	got := n.Normalize("2024-12-18", "10:00 PM - 4:00 PM")
	if got.Kind != StartOnly {
		t.Fatalf("kind = %d, want StartOnly", got.Kind)
	}
	if want := local(t, 2024, time.December, 18, 22, 0); !got.Start.Equal(want) {
		t.Errorf("start = %v, want %v", got.Start, want)
	}
}

func TestNormalizeTwentyFourHourClock(t *testing.T) {
	n := newTestNormalizer(t)
	got := n.Normalize("2025-06-01", "19:00 - 22:30")
	if got.Kind != Range {
		t.Fatalf("kind = %d, want Range", got.Kind)
	}
	if want := local(t, 2025, time.June, 1, 19, 0); !got.Start.Equal(want) {
		t.Errorf("start = %v, want %v", got.Start, want)
	}
	if want := local(t, 2025, time.June, 1, 22, 30); !got.End.Equal(want) {
		t.Errorf("end = %v, want %v", got.End, want)
	}
}

func TestNormalizeBareHourClock(t *testing.T) {
	n := newTestNormalizer(t)
	got := n.Normalize("2025-06-01", "19")
	if got.Kind != StartOnly {
		t.Fatalf("kind = %d, want StartOnly", got.Kind)
	}
	if want := local(t, 2025, time.June, 1, 19, 0); !got.Start.Equal(want) {
		t.Errorf("start = %v, want %v", got.Start, want)
	}
}

func TestNormalizeRecurringScheduleCovers(t *testing.T) {
	n := newTestNormalizer(t)
	got := n.Normalize("2025-03-01 to 2025-03-05", "Weekdays 4 PM - 9 PM, Weekends 10 AM - 11 PM")
	if got.Kind != Range {
		t.Fatalf("kind = %d, want Range", got.Kind)
	}
	if want := local(t, 2025, time.March, 1, 10, 0); !got.Start.Equal(want) {
		t.Errorf("start = %v, want %v", got.Start, want)
	}
	if want := local(t, 2025, time.March, 5, 23, 0); !got.End.Equal(want) {
		t.Errorf("end = %v, want %v", got.End, want)
	}
}

func TestNormalizeOnwardsStart(t *testing.T) {
	n := newTestNormalizer(t)
	got := n.Normalize("2025-04-10", "From 6 pm onwards")
	if got.Kind != StartOnly {
		t.Fatalf("kind = %d, want StartOnly", got.Kind)
	}
	if want := local(t, 2025, time.April, 10, 18, 0); !got.Start.Equal(want) {
		t.Errorf("start = %v, want %v", got.Start, want)
	}
}

func TestNormalizeMultipleShowtimesKeepsEarliest(t *testing.T) {
	n := newTestNormalizer(t)
	got := n.Normalize("2025-04-10", "3:00 PM & 8:00 PM")
	if got.Kind != StartOnly {
		t.Fatalf("kind = %d, want StartOnly", got.Kind)
	}
	if want := local(t, 2025, time.April, 10, 15, 0); !got.Start.Equal(want) {
		t.Errorf("start = %v, want %v", got.Start, want)
	}
}

func TestNormalizeUnrecognizedTimeFallsBackToDay(t *testing.T) {
	n := newTestNormalizer(t)
	got := n.Normalize("2024-12-18", "late evening")
	if got.Kind != StartOnly {
		t.Fatalf("kind = %d, want StartOnly", got.Kind)
	}
	if want := local(t, 2024, time.December, 18, 0, 0); !got.Start.Equal(want) {
		t.Errorf("start = %v, want %v", got.Start, want)
	}
}

func TestNormalizeMidnightIsRealTime(t *testing.T) {
	n := newTestNormalizer(t)
	got := n.Normalize("2024-12-18", "12:00 AM")
	if got.Kind != StartOnly {
		t.Fatalf("kind = %d, want StartOnly", got.Kind)
	}
	if want := local(t, 2024, time.December, 18, 0, 0); !got.Start.Equal(want) {
		t.Errorf("start = %v, want %v", got.Start, want)
	}
}

func TestResultUnix(t *testing.T) {
	start := local(t, 2024, time.December, 18, 16, 0)
	end := local(t, 2024, time.December, 18, 22, 0)

	s, e := (Result{Kind: Range, Start: start, End: end}).Unix()
	if s == nil || *s != start.Unix() {
		t.Errorf("range start = %v, want %d", s, start.Unix())
	}
	if e == nil || *e != end.Unix() {
		t.Errorf("range end = %v, want %d", e, end.Unix())
	}

	s, e = (Result{Kind: StartOnly, Start: start}).Unix()
	if s == nil || *s != start.Unix() {
		t.Errorf("start-only start = %v, want %d", s, start.Unix())
	}
	if e != nil {
		t.Errorf("start-only end = %d, want nil", *e)
	}

	s, e = (Result{Kind: Unparseable}).Unix()
	if s != nil || e != nil {
		t.Error("unparseable result should produce no timestamps")
	}
}
