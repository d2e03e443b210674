package survey

import "github.com/secmon-lab/pathfinder/pkg/domain/types"

// amberThreshold is the share of AMBER answers above which an assessment
// without RED answers is classified AMBER, expressed as numerator/denominator
// so the comparison stays exact.
const (
	amberThresholdNum = 3
	amberThresholdDen = 10
)

// Classify derives the overall status of a resolved assessment. Any RED
// answer makes it RED; otherwise it is AMBER when strictly more than 30% of
// the resolved answers are AMBER, and GREEN otherwise.
func Classify(resolution Resolution) types.Status {
	total := len(resolution)
	if total == 0 {
		return types.StatusGreen
	}

	if resolution.Count(types.RatingRed) > 0 {
		return types.StatusRed
	}

	amber := resolution.Count(types.RatingAmber)
	if amber*amberThresholdDen > total*amberThresholdNum {
		return types.StatusAmber
	}
	return types.StatusGreen
}
