package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/pathfinder/pkg/domain/interfaces"
	"github.com/secmon-lab/pathfinder/pkg/repository/firestore"
	"github.com/secmon-lab/pathfinder/pkg/repository/memory"
)

func newMemoryRepository(t *testing.T) interfaces.Repository {
	return memory.New()
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	// Use standard collection names (no prefix) to utilize existing Firestore indexes
	// Test data isolation is achieved through random IDs in test data
	repo, err := firestore.New(ctx, projectID, databaseID)
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}
