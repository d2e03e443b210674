package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/pathfinder/pkg/domain/interfaces"
	"github.com/secmon-lab/pathfinder/pkg/domain/model"
	"github.com/secmon-lab/pathfinder/pkg/domain/types"
)

func runApplicationRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and Get round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		custID := model.NewCustomerID()

		created, err := repo.Application().Create(ctx, &model.Application{
			CustomerID:  custID,
			Name:        "billing",
			Description: "Billing engine",
			Owner:       "finance",
			Stereotype:  types.StereotypeTargetApp,
			Assessments: []*model.Assessment{{ID: "ignored"}},
		})
		gt.NoError(t, err).Required()
		gt.String(t, string(created.ID)).NotEqual("")
		gt.Array(t, created.Assessments).Length(0)

		got, err := repo.Application().Get(ctx, custID, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Name).Equal("billing")
		gt.Value(t, got.Owner).Equal("finance")
		gt.Value(t, got.Stereotype).Equal(types.StereotypeTargetApp)
		gt.Value(t, got.Review).Nil()
	})

	t.Run("Get of another customer's application is not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Application().Create(ctx, &model.Application{
			CustomerID: model.NewCustomerID(),
			Name:       "crm",
		})
		gt.NoError(t, err).Required()

		_, err = repo.Application().Get(ctx, model.NewCustomerID(), created.ID)
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})

	t.Run("List returns customer applications in creation order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		custID := model.NewCustomerID()

		var ids []model.ApplicationID
		for _, name := range []string{"a", "b", "c"} {
			created, err := repo.Application().Create(ctx, &model.Application{CustomerID: custID, Name: name})
			gt.NoError(t, err).Required()
			ids = append(ids, created.ID)
			time.Sleep(2 * time.Millisecond)
		}
		_, err := repo.Application().Create(ctx, &model.Application{CustomerID: model.NewCustomerID(), Name: "other"})
		gt.NoError(t, err).Required()

		list, err := repo.Application().List(ctx, custID)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(3).Required()
		for i, app := range list {
			gt.Value(t, app.ID).Equal(ids[i])
		}
	})

	t.Run("SetReview stores the review", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		custID := model.NewCustomerID()

		created, err := repo.Application().Create(ctx, &model.Application{CustomerID: custID, Name: "ledger"})
		gt.NoError(t, err).Required()

		reviewDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		updated, err := repo.Application().SetReview(ctx, custID, created.ID, &model.Review{
			ReviewDate:       reviewDate,
			Decision:         "REHOST",
			EstimatedEffort:  "SMALL",
			BusinessPriority: 3,
			WorkPriority:     5,
			Notes:            "move first",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Review).NotNil()
		gt.String(t, string(updated.Review.ID)).NotEqual("")

		got, err := repo.Application().Get(ctx, custID, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Review).NotNil()
		gt.Value(t, got.Review.Decision).Equal("REHOST")
		gt.Number(t, got.Review.WorkPriority).Equal(5)
		gt.Bool(t, got.Review.ReviewDate.Equal(reviewDate)).True()
	})

	t.Run("SetReview on missing application is not found", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Application().SetReview(context.Background(), model.NewCustomerID(), model.NewApplicationID(), &model.Review{})
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})
}

func TestMemoryApplicationRepository(t *testing.T) {
	runApplicationRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreApplicationRepository(t *testing.T) {
	runApplicationRepositoryTest(t, newFirestoreRepository)
}
