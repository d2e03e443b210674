package survey_test

import (
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/pathfinder/pkg/domain/model"
	"github.com/secmon-lab/pathfinder/pkg/domain/types"
)

// newCatalog builds a catalog with n questions Q1..Qn, each answerable as
// 1-RED, 2-AMBER, 3-GREEN or 0-UNKNOWN
func newCatalog(t *testing.T, n int) *model.Catalog {
	t.Helper()
	questions := make([]model.Question, n)
	for i := range questions {
		questions[i] = model.Question{
			Key:  fmt.Sprintf("Q%d", i+1),
			Text: fmt.Sprintf("Question %d", i+1),
			Options: []model.AnswerOption{
				{Ordinal: 0, Text: "Unknown", Rating: types.RatingUnknown},
				{Ordinal: 1, Text: "Bad", Rating: types.RatingRed},
				{Ordinal: 2, Text: "Fair", Rating: types.RatingAmber},
				{Ordinal: 3, Text: "Good", Rating: types.RatingGreen},
			},
		}
	}
	c, err := model.NewCatalog([]model.Page{{Name: "page1", Questions: questions}})
	gt.NoError(t, err).Required()
	return c
}

func assessmentOf(answers ...string) *model.Assessment {
	a := &model.Assessment{ID: "assess1", Answers: map[string]string{}}
	for i, code := range answers {
		a.Answers[fmt.Sprintf("Q%d", i+1)] = code
	}
	return a
}

func codes(rating string, n int) []string {
	out := make([]string, n)
	for i := range out {
		switch rating {
		case "RED":
			out[i] = "1-RED"
		case "AMBER":
			out[i] = "2-AMBER"
		case "GREEN":
			out[i] = "3-GREEN"
		default:
			out[i] = "0-UNKNOWN"
		}
	}
	return out
}
