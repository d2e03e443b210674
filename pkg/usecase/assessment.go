package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/domain/interfaces"
	"github.com/secmon-lab/pathfinder/pkg/domain/model"
	"github.com/secmon-lab/pathfinder/pkg/survey"
)

// AssessmentUseCase handles assessment-related business logic
type AssessmentUseCase struct {
	repo    interfaces.Repository
	catalog CatalogProvider
}

// NewAssessmentUseCase creates a new AssessmentUseCase instance
func NewAssessmentUseCase(repo interfaces.Repository, catalog CatalogProvider) *AssessmentUseCase {
	return &AssessmentUseCase{repo: repo, catalog: catalog}
}

// CreateAssessmentInput represents input for recording an assessment
type CreateAssessmentInput struct {
	Answers map[string]string
	DepsIN  []model.ApplicationID
	DepsOUT []model.ApplicationID
}

// CreateAssessment appends a new assessment to an application. It becomes
// the application's current assessment.
func (uc *AssessmentUseCase) CreateAssessment(ctx context.Context, customerID model.CustomerID, applicationID model.ApplicationID, input CreateAssessmentInput) (*model.Assessment, error) {
	if len(input.Answers) == 0 {
		return nil, goerr.Wrap(ErrInvalidInput, "assessment has no answers")
	}

	if _, err := uc.repo.Application().Get(ctx, customerID, applicationID); err != nil {
		return nil, goerr.Wrap(err, "failed to get application",
			goerr.V(CustomerIDKey, customerID), goerr.V(ApplicationIDKey, applicationID))
	}

	created, err := uc.repo.Assessment().Create(ctx, &model.Assessment{
		CustomerID:    customerID,
		ApplicationID: applicationID,
		CreatedAt:     time.Now().UTC(),
		Answers:       input.Answers,
		DepsIN:        input.DepsIN,
		DepsOUT:       input.DepsOUT,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create assessment", goerr.V(ApplicationIDKey, applicationID))
	}
	return created, nil
}

// GetAssessment retrieves an assessment by ID
func (uc *AssessmentUseCase) GetAssessment(ctx context.Context, id model.AssessmentID) (*model.Assessment, error) {
	assessment, err := uc.repo.Assessment().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V(AssessmentIDKey, id))
	}
	return assessment, nil
}

func (uc *AssessmentUseCase) getOwned(ctx context.Context, customerID model.CustomerID, applicationID model.ApplicationID, id model.AssessmentID) (*model.Assessment, error) {
	assessment, err := uc.GetAssessment(ctx, id)
	if err != nil {
		return nil, err
	}
	if assessment.CustomerID != customerID || assessment.ApplicationID != applicationID {
		return nil, goerr.Wrap(ErrAssessmentMismatch, "assessment not found for application",
			goerr.V(CustomerIDKey, customerID),
			goerr.V(ApplicationIDKey, applicationID),
			goerr.V(AssessmentIDKey, id))
	}
	return assessment, nil
}

// Summary returns the answers of an assessment resolved against the
// current catalog, in catalog order
func (uc *AssessmentUseCase) Summary(ctx context.Context, customerID model.CustomerID, applicationID model.ApplicationID, id model.AssessmentID) ([]survey.ResolvedAnswer, error) {
	assessment, err := uc.getOwned(ctx, customerID, applicationID, id)
	if err != nil {
		return nil, err
	}
	return survey.ResolveAssessment(uc.catalog.Get(), assessment).Ordered(), nil
}

// DependencyRef names an application referenced as a dependency
type DependencyRef struct {
	ID   model.ApplicationID
	Name string
}

// ProcessView is the free text and dependency part of an assessment
type ProcessView struct {
	Notes            string
	BusinessPriority string
	DependenciesIN   []DependencyRef
	DependenciesOUT  []DependencyRef
}

// Process returns the notes, business priority and dependencies of an assessment
func (uc *AssessmentUseCase) Process(ctx context.Context, customerID model.CustomerID, applicationID model.ApplicationID, id model.AssessmentID) (*ProcessView, error) {
	assessment, err := uc.getOwned(ctx, customerID, applicationID, id)
	if err != nil {
		return nil, err
	}

	apps, err := uc.repo.Application().List(ctx, customerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list applications", goerr.V(CustomerIDKey, customerID))
	}
	names := make(map[model.ApplicationID]string, len(apps))
	for _, app := range apps {
		names[app.ID] = app.Name
	}

	notes, _ := assessment.Answer(model.AnswerKeyNotes)
	priority, _ := assessment.Answer(model.AnswerKeyBusinessPriority)
	return &ProcessView{
		Notes:            notes,
		BusinessPriority: priority,
		DependenciesIN:   dependencyRefs(assessment.DepsIN, names),
		DependenciesOUT:  dependencyRefs(assessment.DepsOUT, names),
	}, nil
}

func dependencyRefs(ids []model.ApplicationID, names map[model.ApplicationID]string) []DependencyRef {
	refs := make([]DependencyRef, len(ids))
	for i, id := range ids {
		refs[i] = DependencyRef{ID: id, Name: names[id]}
	}
	return refs
}
