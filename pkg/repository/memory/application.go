package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/domain/model"
)

type applicationRepository struct {
	mu   sync.RWMutex
	apps map[model.ApplicationID]*model.Application
	// order keeps insertion order per customer
	order map[model.CustomerID][]model.ApplicationID
}

func newApplicationRepository() *applicationRepository {
	return &applicationRepository{
		apps:  make(map[model.ApplicationID]*model.Application),
		order: make(map[model.CustomerID][]model.ApplicationID),
	}
}

// copyApplication copies an application without its assessments
func copyApplication(app *model.Application) *model.Application {
	copied := *app
	copied.Assessments = nil
	if app.Review != nil {
		review := *app.Review
		copied.Review = &review
	}
	return &copied
}

func (r *applicationRepository) Create(ctx context.Context, app *model.Application) (*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyApplication(app)
	if created.ID == "" {
		created.ID = model.NewApplicationID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, exists := r.apps[created.ID]; !exists {
		r.order[created.CustomerID] = append(r.order[created.CustomerID], created.ID)
	}
	r.apps[created.ID] = created
	return copyApplication(created), nil
}

func (r *applicationRepository) get(customerID model.CustomerID, id model.ApplicationID) (*model.Application, error) {
	app, exists := r.apps[id]
	if !exists || app.CustomerID != customerID {
		return nil, goerr.Wrap(ErrNotFound, "application not found",
			goerr.V("customer_id", customerID), goerr.V("id", id))
	}
	return app, nil
}

func (r *applicationRepository) Get(ctx context.Context, customerID model.CustomerID, id model.ApplicationID) (*model.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	app, err := r.get(customerID, id)
	if err != nil {
		return nil, err
	}
	return copyApplication(app), nil
}

func (r *applicationRepository) List(ctx context.Context, customerID model.CustomerID) ([]*model.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.order[customerID]
	apps := make([]*model.Application, 0, len(ids))
	for _, id := range ids {
		apps = append(apps, copyApplication(r.apps[id]))
	}
	return apps, nil
}

func (r *applicationRepository) SetReview(ctx context.Context, customerID model.CustomerID, id model.ApplicationID, review *model.Review) (*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, err := r.get(customerID, id)
	if err != nil {
		return nil, err
	}

	updated := copyApplication(app)
	if review != nil {
		copied := *review
		if copied.ID == "" {
			copied.ID = model.NewReviewID()
		}
		updated.Review = &copied
	} else {
		updated.Review = nil
	}
	updated.UpdatedAt = time.Now().UTC()

	r.apps[id] = updated
	return copyApplication(updated), nil
}
