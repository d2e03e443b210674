package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case layer
var (
	// ErrInvalidInput is returned when a request fails domain validation
	ErrInvalidInput = goerr.New("invalid input")

	// ErrAssessmentMismatch is returned when an assessment does not belong to the requested application
	ErrAssessmentMismatch = goerr.New("assessment does not belong to application")
)

// Context keys for error values
const (
	CustomerIDKey    = "customer_id"
	ApplicationIDKey = "application_id"
	AssessmentIDKey  = "assessment_id"
	FieldKey         = "field"
)
