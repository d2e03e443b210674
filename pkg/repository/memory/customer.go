package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/domain/model"
)

type customerRepository struct {
	mu        sync.RWMutex
	customers map[model.CustomerID]*model.Customer
}

func newCustomerRepository() *customerRepository {
	return &customerRepository{
		customers: make(map[model.CustomerID]*model.Customer),
	}
}

func copyCustomer(c *model.Customer) *model.Customer {
	copied := *c
	return &copied
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyCustomer(customer)
	if created.ID == "" {
		created.ID = model.NewCustomerID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.customers[created.ID] = created
	return copyCustomer(created), nil
}

func (r *customerRepository) Get(ctx context.Context, id model.CustomerID) (*model.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, exists := r.customers[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "customer not found", goerr.V("id", id))
	}

	return copyCustomer(customer), nil
}

func (r *customerRepository) List(ctx context.Context) ([]*model.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := make([]*model.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		customers = append(customers, copyCustomer(c))
	}
	sort.Slice(customers, func(i, j int) bool {
		if customers[i].CreatedAt.Equal(customers[j].CreatedAt) {
			return customers[i].ID < customers[j].ID
		}
		return customers[i].CreatedAt.Before(customers[j].CreatedAt)
	})

	return customers, nil
}
