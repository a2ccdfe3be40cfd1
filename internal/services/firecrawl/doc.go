// Package firecrawl provides a minimal client for a Firecrawl-compatible
// scrape API. The service may be self-hosted, in which case no API key is
// required.
package firecrawl
