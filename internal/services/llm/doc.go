// Package llm wraps the JSON-only chat-completion API used for content
// extraction and cultural classification. The client retries transient
// failures with capped exponential backoff and tolerates the formatting
// quirks (code fences, prose around payloads) that models produce.
package llm
