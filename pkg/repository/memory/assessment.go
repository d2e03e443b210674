package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/domain/model"
)

type assessmentRepository struct {
	mu          sync.RWMutex
	assessments map[model.AssessmentID]*model.Assessment
	// order is insertion order, the tie breaker for equal CreatedAt
	order []model.AssessmentID
}

func newAssessmentRepository() *assessmentRepository {
	return &assessmentRepository{
		assessments: make(map[model.AssessmentID]*model.Assessment),
	}
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := assessment.Copy()
	if created.ID == "" {
		created.ID = model.NewAssessmentID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	if _, exists := r.assessments[created.ID]; !exists {
		r.order = append(r.order, created.ID)
	}
	r.assessments[created.ID] = created
	return created.Copy(), nil
}

func (r *assessmentRepository) Get(ctx context.Context, id model.AssessmentID) (*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assessment, exists := r.assessments[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
	}
	return assessment.Copy(), nil
}

func (r *assessmentRepository) ListByApplication(ctx context.Context, applicationID model.ApplicationID) ([]*model.Assessment, error) {
	return r.filter(func(a *model.Assessment) bool {
		return a.ApplicationID == applicationID
	}), nil
}

func (r *assessmentRepository) ListByCustomer(ctx context.Context, customerID model.CustomerID) ([]*model.Assessment, error) {
	return r.filter(func(a *model.Assessment) bool {
		return a.CustomerID == customerID
	}), nil
}

func (r *assessmentRepository) filter(match func(*model.Assessment) bool) []*model.Assessment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Assessment
	for _, id := range r.order {
		if a := r.assessments[id]; match(a) {
			result = append(result, a.Copy())
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}
