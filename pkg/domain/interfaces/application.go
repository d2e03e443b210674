package interfaces

import (
	"context"

	"github.com/secmon-lab/pathfinder/pkg/domain/model"
)

// ApplicationRepository defines the interface for Application data
// persistence. Returned applications never carry assessments; callers join
// them from AssessmentRepository.
type ApplicationRepository interface {
	// Create creates a new application under application.CustomerID
	Create(ctx context.Context, application *model.Application) (*model.Application, error)

	// Get retrieves an application of a customer by ID
	Get(ctx context.Context, customerID model.CustomerID, id model.ApplicationID) (*model.Application, error)

	// List retrieves all applications of a customer ordered by creation time
	List(ctx context.Context, customerID model.CustomerID) ([]*model.Application, error)

	// SetReview replaces the review of an application
	SetReview(ctx context.Context, customerID model.CustomerID, id model.ApplicationID, review *model.Review) (*model.Application, error)
}
