// Package ingest gathers raw event records from configured listing pages.
//
// Each target URL is scraped to markdown and handed to a language model that
// extracts structured event records from the page text. Sources fail
// independently: a page that cannot be scraped or parsed is logged and
// skipped, and the remaining targets still contribute.
package ingest
