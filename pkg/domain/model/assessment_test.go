package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/pathfinder/pkg/domain/model"
	"github.com/secmon-lab/pathfinder/pkg/domain/types"
)

func TestAssessment_IncompleteAnswersCount(t *testing.T) {
	a := &model.Assessment{Answers: map[string]string{
		"Q1": "0-UNKNOWN",
		"Q2": "1-RED",
		"Q3": "0-UNKNOWN",
	}}
	gt.Number(t, a.IncompleteAnswersCount()).Equal(2)

	var empty *model.Assessment
	gt.Number(t, empty.IncompleteAnswersCount()).Equal(0)
}

func TestAssessment_PageNotes(t *testing.T) {
	a := &model.Assessment{Answers: map[string]string{
		"NOTESONPAGE2": "second",
		"NOTESONPAGE1": "first",
		"Q1":           "1-RED",
	}}
	gt.Value(t, a.PageNotes()).Equal("first.<br>second.<br>")

	gt.Value(t, (&model.Assessment{}).PageNotes()).Equal("")
}

func TestAssessment_Copy(t *testing.T) {
	a := &model.Assessment{
		ID:      "a1",
		Answers: map[string]string{"Q1": "1-RED"},
		DepsIN:  []model.ApplicationID{"app2"},
	}
	c := a.Copy()
	c.Answers["Q1"] = "3-GREEN"
	c.DepsIN[0] = "app3"

	gt.Value(t, a.Answers["Q1"]).Equal("1-RED")
	gt.Value(t, a.DepsIN[0]).Equal(model.ApplicationID("app2"))
}

func TestApplication_CurrentAssessment(t *testing.T) {
	app := &model.Application{Stereotype: types.StereotypeTargetApp}
	gt.Value(t, app.CurrentAssessment()).Nil()
	gt.Bool(t, app.IsAssessed()).False()
	gt.Bool(t, app.IsReviewed()).False()
	gt.Bool(t, app.IsTarget()).True()

	app.Assessments = []*model.Assessment{{ID: "old"}, {ID: "new"}}
	app.Review = &model.Review{ID: "r1"}
	gt.Value(t, app.CurrentAssessment().ID).Equal(model.AssessmentID("new"))
	gt.Bool(t, app.IsAssessed()).True()
	gt.Bool(t, app.IsReviewed()).True()
}

func TestApplication_Copy(t *testing.T) {
	app := &model.Application{
		ID:          "app1",
		Assessments: []*model.Assessment{{ID: "a1", Answers: map[string]string{"Q1": "1-RED"}}},
		Review:      &model.Review{ID: "r1", Decision: "REHOST"},
	}
	c := app.Copy()
	c.Assessments[0].Answers["Q1"] = "3-GREEN"
	c.Review.Decision = "RETIRE"

	gt.Value(t, app.Assessments[0].Answers["Q1"]).Equal("1-RED")
	gt.Value(t, app.Review.Decision).Equal("REHOST")
}
