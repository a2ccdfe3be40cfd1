// Package stage defines the pipeline's stage contract and the three
// transitions that carry events from raw capture to the published artifact:
// timestamp and location resolution, cultural curation, and deduplication.
package stage
