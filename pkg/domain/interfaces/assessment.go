package interfaces

import (
	"context"

	"github.com/secmon-lab/pathfinder/pkg/domain/model"
)

// AssessmentRepository defines the interface for Assessment data persistence.
// Assessments are append-only.
type AssessmentRepository interface {
	// Create stores a new assessment, generating an ID when empty
	Create(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error)

	// Get retrieves an assessment by ID
	Get(ctx context.Context, id model.AssessmentID) (*model.Assessment, error)

	// ListByApplication retrieves assessments of an application, oldest first
	ListByApplication(ctx context.Context, applicationID model.ApplicationID) ([]*model.Assessment, error)

	// ListByCustomer retrieves assessments of all applications of a customer, oldest first
	ListByCustomer(ctx context.Context, customerID model.CustomerID) ([]*model.Assessment, error)
}
