package model

import (
	"time"

	"github.com/secmon-lab/pathfinder/pkg/domain/types"
)

// Application is an assessed unit of a customer portfolio. Assessments are
// append-only; the last one is the current assessment.
type Application struct {
	ID          ApplicationID
	CustomerID  CustomerID
	Name        string
	Description string
	Owner       string
	Stereotype  types.Stereotype
	Assessments []*Assessment
	Review      *Review
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CurrentAssessment returns the most recent assessment, or nil
func (a *Application) CurrentAssessment() *Assessment {
	if a == nil || len(a.Assessments) == 0 {
		return nil
	}
	return a.Assessments[len(a.Assessments)-1]
}

// IsAssessed reports whether the application has at least one assessment
func (a *Application) IsAssessed() bool {
	return a != nil && len(a.Assessments) > 0
}

// IsReviewed reports whether the application has a review
func (a *Application) IsReviewed() bool {
	return a != nil && a.Review != nil
}

// IsTarget reports whether the application counts toward assessment rollups
func (a *Application) IsTarget() bool {
	return a != nil && a.Stereotype == types.StereotypeTargetApp
}

// Copy returns a deep copy of the application including its assessments
func (a *Application) Copy() *Application {
	if a == nil {
		return nil
	}
	copied := *a
	copied.Assessments = make([]*Assessment, len(a.Assessments))
	for i, as := range a.Assessments {
		copied.Assessments[i] = as.Copy()
	}
	if a.Review != nil {
		review := *a.Review
		copied.Review = &review
	}
	return &copied
}
