package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/domain/interfaces"
	"github.com/secmon-lab/pathfinder/pkg/domain/model"
	"github.com/secmon-lab/pathfinder/pkg/domain/types"
	"github.com/secmon-lab/pathfinder/pkg/survey"
)

// ReportUseCase computes customer level rollups over current assessments
type ReportUseCase struct {
	repo    interfaces.Repository
	catalog CatalogProvider
}

// NewReportUseCase creates a new ReportUseCase instance
func NewReportUseCase(repo interfaces.Repository, catalog CatalogProvider) *ReportUseCase {
	return &ReportUseCase{repo: repo, catalog: catalog}
}

func observe(report string, start time.Time) {
	reportDuration.WithLabelValues(report).Observe(time.Since(start).Seconds())
}

// CustomerReport classifies every application's current assessment and
// gathers shared RED answers as risks
func (uc *ReportUseCase) CustomerReport(ctx context.Context, customerID model.CustomerID) (*survey.Report, error) {
	defer observe("customer", time.Now())

	apps, err := loadPortfolio(ctx, uc.repo, customerID)
	if err != nil {
		return nil, err
	}
	return survey.BuildCustomerReport(uc.catalog.Get(), apps), nil
}

// ApplicationSummary is the assessment and review state of one target application
type ApplicationSummary struct {
	ID                     model.ApplicationID
	Name                   string
	Assessed               bool
	LatestAssessmentID     model.AssessmentID
	IncompleteAnswersCount int
	CompleteAnswersCount   int
	OutboundDeps           []model.ApplicationID
	ReviewDate             *time.Time
	Decision               string
	WorkEffort             string
	BusinessPriority       int
	WorkPriority           int
	// Confidence is set only for assessed and reviewed applications
	Confidence *int
}

// ApplicationAssessmentSummary summarizes every target application of a customer
func (uc *ReportUseCase) ApplicationAssessmentSummary(ctx context.Context, customerID model.CustomerID) ([]*ApplicationSummary, error) {
	defer observe("summary", time.Now())

	apps, err := loadPortfolio(ctx, uc.repo, customerID)
	if err != nil {
		return nil, err
	}

	catalog := uc.catalog.Get()
	summaries := make([]*ApplicationSummary, 0, len(apps))
	for _, app := range apps {
		if !app.IsTarget() {
			continue
		}

		item := &ApplicationSummary{
			ID:       app.ID,
			Name:     app.Name,
			Assessed: app.IsAssessed(),
		}

		current := app.CurrentAssessment()
		if current != nil {
			item.LatestAssessmentID = current.ID
			item.IncompleteAnswersCount = current.IncompleteAnswersCount()
			item.CompleteAnswersCount = len(current.Answers) - item.IncompleteAnswersCount
			item.OutboundDeps = current.DepsOUT
		}

		if review := app.Review; review != nil {
			reviewDate := review.ReviewDate
			item.ReviewDate = &reviewDate
			item.Decision = review.Decision
			item.WorkEffort = review.EstimatedEffort
			item.BusinessPriority = review.BusinessPriority
			item.WorkPriority = review.WorkPriority
		}

		if current != nil && app.IsReviewed() {
			score, err := survey.ScoreAssessment(catalog, current)
			switch {
			case err == nil:
				item.Confidence = &score
			case errors.Is(err, survey.ErrNoAnswers):
				// confidence stays unset
			default:
				return nil, goerr.Wrap(err, "failed to score assessment", goerr.V(ApplicationIDKey, app.ID))
			}
		}

		summaries = append(summaries, item)
	}
	return summaries, nil
}

// Progress reports assessment and review completion of target applications
func (uc *ReportUseCase) Progress(ctx context.Context, customerID model.CustomerID) (survey.Progress, error) {
	defer observe("progress", time.Now())

	apps, err := loadPortfolio(ctx, uc.repo, customerID)
	if err != nil {
		return survey.Progress{}, err
	}
	return survey.ComputeProgress(apps), nil
}

// DependencyEdge is a directed dependency between two applications
type DependencyEdge struct {
	From model.ApplicationID
	To   model.ApplicationID
}

// DependencyTree lists dependency edges from each application's current
// assessment. NORTHBOUND uses inbound dependencies, SOUTHBOUND outbound ones.
func (uc *ReportUseCase) DependencyTree(ctx context.Context, customerID model.CustomerID, direction types.Direction) ([]DependencyEdge, error) {
	defer observe("dependency_tree", time.Now())

	if !direction.IsValid() {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid dependency direction", goerr.V("direction", direction))
	}

	apps, err := loadPortfolio(ctx, uc.repo, customerID)
	if err != nil {
		return nil, err
	}

	edges := []DependencyEdge{}
	for _, app := range apps {
		current := app.CurrentAssessment()
		if current == nil {
			continue
		}
		switch direction {
		case types.DirectionNorthbound:
			for _, dep := range current.DepsIN {
				edges = append(edges, DependencyEdge{From: dep, To: app.ID})
			}
		case types.DirectionSouthbound:
			for _, dep := range current.DepsOUT {
				edges = append(edges, DependencyEdge{From: app.ID, To: dep})
			}
		}
	}
	return edges, nil
}
