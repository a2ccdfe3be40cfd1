package geocode

import (
	"strings"

	"golang.org/x/text/cases"
)

var keyFolder = cases.Fold()

// NormalizeKey canonicalizes a location name for cache lookup: surrounding
// and repeated whitespace collapses and the result is case-folded, so
// "Katara  Cultural Village" and "katara cultural village" share one entry.
func NormalizeKey(name string) string {
	return keyFolder.String(strings.Join(strings.Fields(name), " "))
}
