// Package workflow orchestrates the event pipeline.
//
// A run moves an event list through the staged artifacts raw, timestamped,
// curated, and final, committing each artifact atomically and recording every
// stage in the run ledger. Two entry modes exist: a full run collects raw
// events from the configured sources first, while a filter-only run resumes
// from an existing timestamped artifact, which keeps re-curation cheap when
// only the classifier's judgment has changed. A file lock on the data
// directory serializes runs.
package workflow
