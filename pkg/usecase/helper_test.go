package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/pathfinder/pkg/domain/model"
	"github.com/secmon-lab/pathfinder/pkg/domain/types"
	"github.com/secmon-lab/pathfinder/pkg/repository/memory"
	"github.com/secmon-lab/pathfinder/pkg/service/catalog"
	"github.com/secmon-lab/pathfinder/pkg/usecase"
)

// testCatalog has questions Q1..Q3 answerable as 1-RED, 2-AMBER, 3-GREEN
func testCatalog(t *testing.T) *model.Catalog {
	t.Helper()
	options := []model.AnswerOption{
		{Ordinal: 0, Text: "Unknown", Rating: types.RatingUnknown},
		{Ordinal: 1, Text: "Bad", Rating: types.RatingRed},
		{Ordinal: 2, Text: "Fair", Rating: types.RatingAmber},
		{Ordinal: 3, Text: "Good", Rating: types.RatingGreen},
	}
	c, err := model.NewCatalog([]model.Page{{Name: "p1", Questions: []model.Question{
		{Key: "Q1", Text: "Question 1", Options: options},
		{Key: "Q2", Text: "Question 2", Options: options},
		{Key: "Q3", Text: "Question 3", Options: options},
	}}})
	gt.NoError(t, err).Required()
	return c
}

type fixture struct {
	uc       *usecase.UseCases
	repo     *memory.Memory
	customer *model.Customer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := memory.New()
	uc := usecase.New(repo, usecase.WithCatalog(catalog.NewStaticHolder(testCatalog(t))))

	customer, err := uc.Customer.CreateCustomer(context.Background(), usecase.CreateCustomerInput{
		Name:              "Acme",
		Vertical:          "Retail",
		RulesOfEngagement: "Weekdays only",
	})
	gt.NoError(t, err).Required()

	return &fixture{uc: uc, repo: repo, customer: customer}
}

func (f *fixture) app(t *testing.T, name string, stereotype types.Stereotype) *model.Application {
	t.Helper()
	app, err := f.uc.Application.CreateApplication(context.Background(), f.customer.ID, usecase.CreateApplicationInput{
		Name:       name,
		Stereotype: string(stereotype),
	})
	gt.NoError(t, err).Required()
	return app
}

func (f *fixture) assess(t *testing.T, app *model.Application, answers map[string]string, depsIN, depsOUT []model.ApplicationID) *model.Assessment {
	t.Helper()
	a, err := f.uc.Assessment.CreateAssessment(context.Background(), f.customer.ID, app.ID, usecase.CreateAssessmentInput{
		Answers: answers,
		DepsIN:  depsIN,
		DepsOUT: depsOUT,
	})
	gt.NoError(t, err).Required()
	// keep CreatedAt strictly increasing
	time.Sleep(time.Millisecond)
	return a
}

func (f *fixture) review(t *testing.T, app *model.Application) {
	t.Helper()
	_, err := f.uc.Application.SetReview(context.Background(), f.customer.ID, app.ID, usecase.ReviewInput{
		Decision:         "REHOST",
		EstimatedEffort:  "SMALL",
		BusinessPriority: 2,
		WorkPriority:     4,
	})
	gt.NoError(t, err).Required()
}
