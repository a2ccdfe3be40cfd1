// Package events defines the event record that flows through every pipeline
// stage and the persisted JSON stage artifacts. A stage artifact is only ever
// written whole: the writer marshals the complete slice and commits it with a
// temp-file rename so a crashed run never leaves a half-written artifact.
package events
