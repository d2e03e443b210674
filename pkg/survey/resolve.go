package survey

import (
	"sort"

	"github.com/secmon-lab/pathfinder/pkg/domain/model"
	"github.com/secmon-lab/pathfinder/pkg/domain/types"
)

// ResolvedAnswer is one assessment answer joined with its catalog question
type ResolvedAnswer struct {
	QuestionKey  string
	QuestionText string
	AnswerText   string
	Rating       types.Rating
	// Code is the raw answer code as stored in the assessment
	Code string
	// Position is the question's index in catalog order
	Position int
}

// Resolution maps question key to the resolved answer. It only holds keys
// that were both answered and known to the catalog.
type Resolution map[string]ResolvedAnswer

// ResolveAssessment joins the assessment's answers with catalog questions.
// Answers for keys the catalog does not define are skipped; they belong to
// retired questions or free text fields such as NOTES.
func ResolveAssessment(catalog *model.Catalog, assessment *model.Assessment) Resolution {
	resolved := make(Resolution)
	if assessment == nil {
		return resolved
	}

	for key, code := range assessment.Answers {
		question, position, ok := catalog.Lookup(key)
		if !ok {
			continue
		}

		answer := ResolvedAnswer{
			QuestionKey:  key,
			QuestionText: question.Text,
			Rating:       types.RatingOfAnswerCode(code),
			Code:         code,
			Position:     position,
		}
		if ordinal, ok := types.OrdinalOfAnswerCode(code); ok {
			if opt, ok := catalog.Option(key, ordinal); ok {
				answer.AnswerText = opt.Text
			}
		}

		resolved[key] = answer
	}

	return resolved
}

// Ordered returns the resolved answers in catalog order
func (r Resolution) Ordered() []ResolvedAnswer {
	answers := make([]ResolvedAnswer, 0, len(r))
	for _, a := range r {
		answers = append(answers, a)
	}
	sort.Slice(answers, func(i, j int) bool {
		return answers[i].Position < answers[j].Position
	})
	return answers
}

// Ratings returns the ratings of the resolved answers in catalog order
func (r Resolution) Ratings() []types.Rating {
	ordered := r.Ordered()
	ratings := make([]types.Rating, len(ordered))
	for i, a := range ordered {
		ratings[i] = a.Rating
	}
	return ratings
}

// Count returns how many answers carry the given rating
func (r Resolution) Count(rating types.Rating) int {
	n := 0
	for _, a := range r {
		if a.Rating == rating {
			n++
		}
	}
	return n
}
