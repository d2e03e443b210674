package survey

import (
	"github.com/secmon-lab/pathfinder/pkg/domain/model"
	"github.com/secmon-lab/pathfinder/pkg/domain/types"
)

// Risk is a RED answer shared by one or more applications
type Risk struct {
	QuestionText string
	AnswerText   string
	Applications []string
}

// StatusCounts holds the number of assessments per status
type StatusCounts map[types.Status]int

// Report is the per customer rollup of current assessments
type Report struct {
	StatusCounts StatusCounts
	Total        int
	Risks        []Risk
}

type riskKey struct {
	questionKey string
	code        string
}

// BuildCustomerReport classifies the current assessment of each application
// and gathers RED answers as risks. Applications are visited in list order and
// their answers in catalog order, so the output is deterministic. Applications
// without an assessment are skipped.
func BuildCustomerReport(catalog *model.Catalog, applications []*model.Application) *Report {
	report := &Report{StatusCounts: make(StatusCounts)}
	for _, s := range types.AllStatuses() {
		report.StatusCounts[s] = 0
	}

	riskIndex := make(map[riskKey]int)
	for _, app := range applications {
		assessment := app.CurrentAssessment()
		if assessment == nil {
			continue
		}

		resolution := ResolveAssessment(catalog, assessment)
		report.StatusCounts[Classify(resolution)]++
		report.Total++

		for _, answer := range resolution.Ordered() {
			if answer.Rating != types.RatingRed {
				continue
			}
			key := riskKey{questionKey: answer.QuestionKey, code: answer.Code}
			idx, ok := riskIndex[key]
			if !ok {
				idx = len(report.Risks)
				riskIndex[key] = idx
				report.Risks = append(report.Risks, Risk{
					QuestionText: answer.QuestionText,
					AnswerText:   answer.AnswerText,
				})
			}
			report.Risks[idx].Applications = append(report.Risks[idx].Applications, app.Name)
		}
	}

	return report
}

// Difficulty returns the status counts keyed by migration difficulty label
// (Easy, Medium, Hard)
func (c StatusCounts) Difficulty() map[string]int {
	out := make(map[string]int, len(c))
	for _, s := range types.AllStatuses() {
		out[s.Difficulty()] = c[s]
	}
	return out
}
