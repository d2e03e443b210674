package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/domain/interfaces"
	"github.com/secmon-lab/pathfinder/pkg/domain/model"
	"golang.org/x/sync/errgroup"
)

// loadPortfolio returns the customer's applications in creation order with
// their assessments joined, oldest assessment first. It fails with
// ErrNotFound when the customer does not exist.
func loadPortfolio(ctx context.Context, repo interfaces.Repository, customerID model.CustomerID) ([]*model.Application, error) {
	var (
		apps        []*model.Application
		assessments []*model.Assessment
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if _, err := repo.Customer().Get(egCtx, customerID); err != nil {
			return goerr.Wrap(err, "failed to get customer", goerr.V(CustomerIDKey, customerID))
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		apps, err = repo.Application().List(egCtx, customerID)
		if err != nil {
			return goerr.Wrap(err, "failed to list applications", goerr.V(CustomerIDKey, customerID))
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		assessments, err = repo.Assessment().ListByCustomer(egCtx, customerID)
		if err != nil {
			return goerr.Wrap(err, "failed to list assessments", goerr.V(CustomerIDKey, customerID))
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	byApp := make(map[model.ApplicationID][]*model.Assessment)
	for _, a := range assessments {
		byApp[a.ApplicationID] = append(byApp[a.ApplicationID], a)
	}
	for _, app := range apps {
		app.Assessments = byApp[app.ID]
	}
	return apps, nil
}

// loadApplication returns one application with its assessments joined
func loadApplication(ctx context.Context, repo interfaces.Repository, customerID model.CustomerID, id model.ApplicationID) (*model.Application, error) {
	app, err := repo.Application().Get(ctx, customerID, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get application",
			goerr.V(CustomerIDKey, customerID), goerr.V(ApplicationIDKey, id))
	}

	assessments, err := repo.Assessment().ListByApplication(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assessments", goerr.V(ApplicationIDKey, id))
	}
	app.Assessments = assessments
	return app, nil
}
