package cli

import (
	"context"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/repository/firestore"
	"github.com/secmon-lab/pathfinder/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdMigrate() *cli.Command {
	var projectID string
	var databaseID string
	var collectionPrefix string
	var dryRun bool

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Migrate Firestore indexes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "firestore-project-id",
				Usage:       "Firestore Project ID (required)",
				Required:    true,
				Sources:     cli.EnvVars("PATHFINDER_FIRESTORE_PROJECT_ID"),
				Destination: &projectID,
			},
			&cli.StringFlag{
				Name:        "firestore-database-id",
				Usage:       "Firestore Database ID",
				Value:       "(default)",
				Sources:     cli.EnvVars("PATHFINDER_FIRESTORE_DATABASE_ID"),
				Destination: &databaseID,
			},
			&cli.StringFlag{
				Name:        "firestore-collection-prefix",
				Usage:       "Prefix prepended to Firestore collection names",
				Sources:     cli.EnvVars("PATHFINDER_FIRESTORE_COLLECTION_PREFIX"),
				Destination: &collectionPrefix,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "Preview changes without applying",
				Destination: &dryRun,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			logger.Info("Migrate configuration",
				"projectID", projectID,
				"databaseID", databaseID,
				"collectionPrefix", collectionPrefix,
				"dryRun", dryRun)

			client, err := fireconf.New(ctx, projectID, databaseID, getIndexConfig(collectionPrefix),
				fireconf.WithLogger(logger),
				fireconf.WithDryRun(dryRun),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create fireconf client",
					goerr.V("project_id", projectID),
					goerr.V("database_id", databaseID))
			}
			defer func() {
				if err := client.Close(); err != nil {
					logger.Error("failed to close fireconf client", "error", err.Error())
				}
			}()

			if dryRun {
				logger.Info("Dry run mode - previewing changes")
			} else {
				logger.Info("Applying migrations")
			}
			if err := client.Migrate(ctx); err != nil {
				return goerr.Wrap(err, "failed to apply migrations")
			}
			if !dryRun {
				logger.Info("Migrations applied successfully")
			}

			return nil
		},
	}
}

// getIndexConfig returns the composite indexes used by the list queries of
// the Firestore repository
func getIndexConfig(prefix string) *fireconf.Config {
	return &fireconf.Config{
		Collections: []fireconf.Collection{
			{
				Name: firestore.CollectionName(prefix, firestore.ApplicationsCollection),
				Indexes: []fireconf.Index{
					// List: customer_id ASC, created_at ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "customer_id", Order: fireconf.OrderAscending},
							{Path: "created_at", Order: fireconf.OrderAscending},
						},
					},
				},
			},
			{
				Name: firestore.CollectionName(prefix, firestore.AssessmentsCollection),
				Indexes: []fireconf.Index{
					// ListByApplication: application_id ASC, created_at ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "application_id", Order: fireconf.OrderAscending},
							{Path: "created_at", Order: fireconf.OrderAscending},
						},
					},
					// ListByCustomer: customer_id ASC, created_at ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "customer_id", Order: fireconf.OrderAscending},
							{Path: "created_at", Order: fireconf.OrderAscending},
						},
					},
				},
			},
		},
	}
}
