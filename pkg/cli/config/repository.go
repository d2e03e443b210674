package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/domain/interfaces"
	"github.com/secmon-lab/pathfinder/pkg/repository/firestore"
	"github.com/secmon-lab/pathfinder/pkg/repository/memory"
	"github.com/secmon-lab/pathfinder/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const (
	backendFirestore = "firestore"
	backendMemory    = "memory"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend          string
	projectID        string
	databaseID       string
	collectionPrefix string
	seedPath         string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (firestore or memory)",
			Category:    "Repository",
			Value:       backendFirestore,
			Sources:     cli.EnvVars("PATHFINDER_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Category:    "Repository",
			Sources:     cli.EnvVars("PATHFINDER_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Category:    "Repository",
			Value:       "(default)",
			Sources:     cli.EnvVars("PATHFINDER_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
		&cli.StringFlag{
			Name:        "firestore-collection-prefix",
			Usage:       "Prefix prepended to Firestore collection names",
			Category:    "Repository",
			Sources:     cli.EnvVars("PATHFINDER_FIRESTORE_COLLECTION_PREFIX"),
			Destination: &r.collectionPrefix,
		},
		&cli.StringFlag{
			Name:        "seed",
			Usage:       "TOML seed file loaded into the memory backend on start",
			Category:    "Repository",
			Sources:     cli.EnvVars("PATHFINDER_SEED"),
			Destination: &r.seedPath,
		},
	}
}

// LogValue implements slog.LogValuer
func (r Repository) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", r.backend),
		slog.String("project_id", r.projectID),
		slog.String("database_id", r.databaseID),
		slog.String("collection_prefix", r.collectionPrefix),
		slog.String("seed", r.seedPath),
	)
}

// SeedPath returns the seed file path, empty when none is configured
func (r *Repository) SeedPath() string {
	return r.seedPath
}

// Configure initializes and returns a repository based on the configured backend.
// The caller is responsible for calling Close() on the returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case backendFirestore:
		if r.projectID == "" {
			return nil, goerr.Wrap(ErrInvalidConfig, "firestore-project-id is required when using firestore backend")
		}
		if r.seedPath != "" {
			return nil, goerr.Wrap(ErrInvalidConfig, "seed is only supported by the memory backend")
		}
		repo, err := firestore.New(ctx, r.projectID, r.databaseID,
			firestore.WithCollectionPrefix(r.collectionPrefix))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logging.Default().Info("Using Firestore repository",
			"project_id", r.projectID,
			"database_id", r.databaseID,
			"collection_prefix", r.collectionPrefix,
		)
		return repo, nil

	case backendMemory:
		logging.Default().Info("Using in-memory repository (development mode)")
		return memory.New(), nil

	default:
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid repository backend", goerr.V(BackendKey, r.backend))
	}
}
