package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/domain/interfaces"
	"github.com/secmon-lab/pathfinder/pkg/domain/model"
	"github.com/secmon-lab/pathfinder/pkg/domain/types"
)

// ApplicationUseCase handles application-related business logic
type ApplicationUseCase struct {
	repo interfaces.Repository
}

// NewApplicationUseCase creates a new ApplicationUseCase instance
func NewApplicationUseCase(repo interfaces.Repository) *ApplicationUseCase {
	return &ApplicationUseCase{repo: repo}
}

// CreateApplicationInput represents input for creating an application
type CreateApplicationInput struct {
	Name        string
	Description string
	Owner       string
	Stereotype  string
}

// CreateApplication creates a new application for an existing customer
func (uc *ApplicationUseCase) CreateApplication(ctx context.Context, customerID model.CustomerID, input CreateApplicationInput) (*model.Application, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "application name is required")
	}
	stereotype, err := types.ParseStereotype(input.Stereotype)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid stereotype", goerr.V("stereotype", input.Stereotype))
	}

	if _, err := uc.repo.Customer().Get(ctx, customerID); err != nil {
		return nil, goerr.Wrap(err, "failed to get customer", goerr.V(CustomerIDKey, customerID))
	}

	created, err := uc.repo.Application().Create(ctx, &model.Application{
		CustomerID:  customerID,
		Name:        input.Name,
		Description: input.Description,
		Owner:       input.Owner,
		Stereotype:  stereotype,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create application", goerr.V(CustomerIDKey, customerID))
	}
	return created, nil
}

// ApplicationView is an application with the requested custom fields resolved
type ApplicationView struct {
	Application  *model.Application
	CustomFields map[string]string
}

// GetApplication retrieves an application. customFields lists
// "<entity>.<field>" names to resolve, see ResolveCustomFields.
func (uc *ApplicationUseCase) GetApplication(ctx context.Context, customerID model.CustomerID, id model.ApplicationID, customFields []string) (*ApplicationView, error) {
	customer, err := uc.repo.Customer().Get(ctx, customerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get customer", goerr.V(CustomerIDKey, customerID))
	}

	app, err := loadApplication(ctx, uc.repo, customerID, id)
	if err != nil {
		return nil, err
	}

	view := &ApplicationView{Application: app}
	if customFields != nil {
		view.CustomFields = ResolveCustomFields(ctx, customer, app, customFields)
	}
	return view, nil
}

// ListApplications lists a customer's applications matching filter, leaving
// out exclude when set
func (uc *ApplicationUseCase) ListApplications(ctx context.Context, customerID model.CustomerID, filter types.AppTypeFilter, exclude model.ApplicationID) ([]*model.Application, error) {
	apps, err := loadPortfolio(ctx, uc.repo, customerID)
	if err != nil {
		return nil, err
	}

	result := make([]*model.Application, 0, len(apps))
	for _, app := range apps {
		if exclude != "" && app.ID == exclude {
			continue
		}
		if !filter.Match(app.Stereotype) {
			continue
		}
		result = append(result, app)
	}
	return result, nil
}

// ReviewInput represents input for reviewing an application
type ReviewInput struct {
	ReviewDate       time.Time
	Decision         string
	EstimatedEffort  string
	BusinessPriority int
	WorkPriority     int
	Notes            string
}

// SetReview records the review of an assessed application
func (uc *ApplicationUseCase) SetReview(ctx context.Context, customerID model.CustomerID, id model.ApplicationID, input ReviewInput) (*model.Application, error) {
	reviewDate := input.ReviewDate
	if reviewDate.IsZero() {
		reviewDate = time.Now().UTC()
	}

	updated, err := uc.repo.Application().SetReview(ctx, customerID, id, &model.Review{
		ID:               model.NewReviewID(),
		ReviewDate:       reviewDate,
		Decision:         input.Decision,
		EstimatedEffort:  input.EstimatedEffort,
		BusinessPriority: input.BusinessPriority,
		WorkPriority:     input.WorkPriority,
		Notes:            input.Notes,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to set review",
			goerr.V(CustomerIDKey, customerID), goerr.V(ApplicationIDKey, id))
	}
	return updated, nil
}
