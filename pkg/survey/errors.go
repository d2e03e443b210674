package survey

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrCatalog means the base catalog or its schema could not be used.
	// Callers fall back to the bundled default catalog.
	ErrCatalog = goerr.New("catalog materialization failed")

	// ErrNoAnswers means an assessment resolved to zero answers
	ErrNoAnswers = goerr.New("no resolvable answers")
)

// Context keys for error values
const (
	AssessmentIDKey = "assessment_id"
	ApplicationKey  = "application"
	SchemaErrorsKey = "schema_errors"
	SourceKey       = "source"
)
