// Package cultural decides which events are appropriate to publish for the
// target audience.
//
// Classification runs through a language model in batches; each event comes
// back with an admissibility verdict, a confidence score, and a short
// reason. The filter is deliberately conservative: events the classifier
// cannot score, whether from a failed batch or a verdict below the
// confidence threshold, are excluded rather than passed through.
package cultural
