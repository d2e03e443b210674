package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/domain/interfaces"
	"github.com/secmon-lab/pathfinder/pkg/domain/model"
)

// CustomerUseCase handles customer-related business logic
type CustomerUseCase struct {
	repo interfaces.Repository
}

// NewCustomerUseCase creates a new CustomerUseCase instance
func NewCustomerUseCase(repo interfaces.Repository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// CreateCustomerInput represents input for creating a customer
type CreateCustomerInput struct {
	Name              string
	Description       string
	Vertical          string
	Size              string
	RulesOfEngagement string
}

// CreateCustomer creates a new customer
func (uc *CustomerUseCase) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*model.Customer, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "customer name is required")
	}

	created, err := uc.repo.Customer().Create(ctx, &model.Customer{
		Name:              input.Name,
		Description:       input.Description,
		Vertical:          input.Vertical,
		Size:              input.Size,
		RulesOfEngagement: input.RulesOfEngagement,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create customer")
	}
	return created, nil
}

// GetCustomer retrieves a customer by ID
func (uc *CustomerUseCase) GetCustomer(ctx context.Context, id model.CustomerID) (*model.Customer, error) {
	customer, err := uc.repo.Customer().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get customer", goerr.V(CustomerIDKey, id))
	}
	return customer, nil
}

// ListCustomers retrieves all customers
func (uc *CustomerUseCase) ListCustomers(ctx context.Context) ([]*model.Customer, error) {
	customers, err := uc.repo.Customer().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list customers")
	}
	return customers, nil
}
