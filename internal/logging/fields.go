package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for per-run correlation identifiers.
	FieldRunID = "run_id"
	// FieldEntryID is the standardized structured logging key for bibliography entry identifiers.
	FieldEntryID = "entry_id"
	// FieldService is the standardized structured logging key for lookup service names.
	FieldService = "service"
	// FieldFile is the standardized structured logging key for file paths.
	FieldFile = "file"
	// FieldCount is the standardized structured logging key for item counts.
	FieldCount = "count"
	// FieldStatusCode is the standardized structured logging key for HTTP status codes.
	FieldStatusCode = "status_code"
	// FieldURL is the standardized structured logging key for request URLs.
	FieldURL = "url"
	// FieldAttempt is the standardized structured logging key for 1-based retry attempts.
	FieldAttempt = "attempt"
	// FieldEventType classifies warnings and errors for downstream filtering.
	FieldEventType = "event_type"
	// FieldElapsed is the standardized structured logging key for operation durations.
	FieldElapsed = "elapsed"
)
