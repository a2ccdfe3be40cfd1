package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for pipeline run identifiers.
	FieldRunID = "run_id"
	// FieldStage is the standardized structured logging key for pipeline stage names.
	FieldStage = "stage"
	// FieldEvent is the standardized structured logging key for event names.
	FieldEvent = "event"
	// FieldSource is the standardized structured logging key for the listing source an event came from.
	FieldSource = "source"
	// FieldField names the free-text field a record-level failure applies to.
	FieldField = "field"
	// FieldLocation is the standardized structured logging key for location text.
	FieldLocation = "location"
	// FieldArtifact is the standardized structured logging key for stage artifact paths.
	FieldArtifact = "artifact"
)
