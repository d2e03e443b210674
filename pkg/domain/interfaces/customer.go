package interfaces

import (
	"context"

	"github.com/secmon-lab/pathfinder/pkg/domain/model"
)

// CustomerRepository defines the interface for Customer data persistence
type CustomerRepository interface {
	// Create creates a new customer, generating an ID when empty
	Create(ctx context.Context, customer *model.Customer) (*model.Customer, error)

	// Get retrieves a customer by ID
	Get(ctx context.Context, id model.CustomerID) (*model.Customer, error)

	// List retrieves all customers ordered by creation time
	List(ctx context.Context) ([]*model.Customer, error)
}
