// Package geocode resolves event location names to coordinates through a
// persistent cache backed by an external geocoding provider.
//
// The cache lives in a single JSON file keyed by normalized location name and
// records failed lookups as well as successful ones, so a venue that does not
// exist is asked about exactly once. Files written by earlier releases carried
// bare lat/lng pairs; those are upgraded in place on first load.
package geocode
