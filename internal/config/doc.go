// Package config loads, normalizes, and validates the eventpipe TOML
// configuration. Loading follows a fixed sequence: defaults, optional TOML
// file, environment overrides for secret material, path expansion, then
// validation. Consumers receive a fully resolved Config; no other package
// reads configuration files or environment variables directly.
package config
