// Package services defines shared utilities consumed by the pipeline stage
// handlers and external integrations.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that keep failure context
//     (stage, operation, detail) uniform across the pipeline.
//   - Thin clients for the external collaborators the core consumes: the
//     scrape API and the chat-completion API used for extraction and
//     classification.
//
// Use these helpers when wiring new stage logic so operational behaviour
// (error handling, observability, retries) stays uniform across the pipeline.
package services
