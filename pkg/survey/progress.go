package survey

import "github.com/secmon-lab/pathfinder/pkg/domain/model"

// Progress tracks assessment and review completion over target applications
type Progress struct {
	AppCount        int
	AssessedCount   int
	ReviewedCount   int
	PercentComplete int
}

// ComputeProgress counts target applications that have been assessed and
// reviewed. Non-target applications are ignored.
func ComputeProgress(applications []*model.Application) Progress {
	var p Progress
	for _, app := range applications {
		if app == nil || !app.IsTarget() {
			continue
		}
		p.AppCount++
		if app.IsAssessed() {
			p.AssessedCount++
		}
		if app.IsReviewed() {
			p.ReviewedCount++
		}
	}

	if p.AppCount > 0 {
		p.PercentComplete = 100 * (p.AssessedCount + p.ReviewedCount) / (2 * p.AppCount)
	}
	return p
}
