// Package timestamp converts free-text event date and time strings into epoch
// timestamps in the domain's fixed timezone.
//
// The parse outcome is an explicit tri-state (Unparseable, StartOnly, Range)
// rather than sentinel zero values, so "unknown" can never be mistaken for
// the epoch. Listings publish dates in several numeric conventions and times
// in everything from "8 pm" to multi-day recurring schedules; the normalizer
// recognizes the grammars the long tail actually uses and reports everything
// else as Unparseable, which downstream stages treat as a normal outcome.
package timestamp
