package survey

import (
	"math"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/domain/model"
	"github.com/secmon-lab/pathfinder/pkg/domain/types"
	"github.com/secmon-lab/pathfinder/pkg/utils/logging"
)

const (
	maxWeight = 1000.0

	redDecay   = 0.6
	amberDecay = 0.95

	redAdjust   = 0.5
	amberAdjust = 0.98
)

var ratingWeights = map[types.Rating]float64{
	types.RatingRed:     1,
	types.RatingUnknown: 700,
	types.RatingAmber:   800,
	types.RatingGreen:   maxWeight,
}

// ScoreAssessment computes the 0-100 confidence score of an assessment.
// It returns ErrNoAnswers when no answer resolves against the catalog.
func ScoreAssessment(catalog *model.Catalog, assessment *model.Assessment) (int, error) {
	resolution := ResolveAssessment(catalog, assessment)
	if len(resolution) == 0 {
		var id model.AssessmentID
		if assessment != nil {
			id = assessment.ID
		}
		return 0, goerr.Wrap(ErrNoAnswers, "cannot score assessment",
			goerr.V(AssessmentIDKey, id))
	}

	return scoreRatings(resolution.Ratings()), nil
}

// scoreRatings expects ratings in catalog order and at least one entry
func scoreRatings(ratings []types.Rating) int {
	sorted := append([]types.Rating(nil), ratings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i] == types.RatingRed && sorted[j] != types.RatingRed
	})

	var red, amber int
	for _, r := range sorted {
		switch r {
		case types.RatingRed:
			red++
		case types.RatingAmber:
			amber++
		}
	}
	adjuster := math.Pow(redAdjust, float64(red)) * math.Pow(amberAdjust, float64(amber))

	confidence := 0.0
	for _, r := range sorted {
		switch r {
		case types.RatingRed:
			confidence *= redDecay
		case types.RatingAmber:
			confidence *= amberDecay
		}
		confidence += ratingWeights[r] * adjuster
	}

	maxConfidence := maxWeight * float64(len(sorted))
	score := int(confidence / maxConfidence * 100)
	if score < 0 || score > 100 {
		logging.Default().Warn("confidence out of range, clamping",
			"score", score, "answers", len(sorted))
		score = max(0, min(100, score))
	}
	return score
}
