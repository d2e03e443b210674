package config

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/service/catalog"
	"github.com/secmon-lab/pathfinder/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Catalog holds CLI flags for the survey question catalog
type Catalog struct {
	basePath       string
	schemaPath     string
	customLocation string
	reloadInterval time.Duration
}

// Flags returns CLI flags for catalog configuration
func (x *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "custom-questions",
			Usage:       "Custom questions JSON, a local path or gs://bucket/object",
			Category:    "Catalog",
			Sources:     cli.EnvVars("PATHFINDER_CUSTOM_QUESTIONS"),
			Destination: &x.customLocation,
		},
		&cli.StringFlag{
			Name:        "base-questions",
			Usage:       "Base questions JSON replacing the bundled ones",
			Category:    "Catalog",
			Sources:     cli.EnvVars("PATHFINDER_BASE_QUESTIONS"),
			Destination: &x.basePath,
		},
		&cli.StringFlag{
			Name:        "question-schema",
			Usage:       "JSON schema for question documents replacing the bundled one",
			Category:    "Catalog",
			Sources:     cli.EnvVars("PATHFINDER_QUESTION_SCHEMA"),
			Destination: &x.schemaPath,
		},
		&cli.DurationFlag{
			Name:        "catalog-reload-interval",
			Usage:       "Reload interval for gs:// custom questions, 0 disables periodic reload",
			Category:    "Catalog",
			Value:       5 * time.Minute,
			Sources:     cli.EnvVars("PATHFINDER_CATALOG_RELOAD_INTERVAL"),
			Destination: &x.reloadInterval,
		},
	}
}

// LogValue implements slog.LogValuer
func (x Catalog) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("base", x.basePath),
		slog.String("schema", x.schemaPath),
		slog.String("custom", x.customLocation),
		slog.Duration("reload_interval", x.reloadInterval),
	)
}

// CustomLocation returns the configured custom questions location
func (x *Catalog) CustomLocation() string {
	return x.customLocation
}

// IsRemote reports whether custom questions are read from Cloud Storage
func (x *Catalog) IsRemote() bool {
	return catalog.IsGCS(x.customLocation)
}

// ReloadInterval returns the periodic reload interval for remote custom questions
func (x *Catalog) ReloadInterval() time.Duration {
	return x.reloadInterval
}

// Configure builds the catalog loader. The returned function releases the
// Cloud Storage client when one was created.
func (x *Catalog) Configure(ctx context.Context) (*catalog.Loader, func(), error) {
	var opts []catalog.LoaderOption
	if x.basePath != "" {
		opts = append(opts, catalog.WithBase(catalog.File(x.basePath)))
	}
	if x.schemaPath != "" {
		opts = append(opts, catalog.WithSchema(catalog.File(x.schemaPath)))
	}

	closer := func() {}
	switch {
	case x.customLocation == "":
	case x.IsRemote():
		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to create storage client")
		}
		src, err := catalog.NewGCSObject(client, x.customLocation)
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		opts = append(opts, catalog.WithCustom(src))
		closer = func() {
			if err := client.Close(); err != nil {
				logging.Default().Error("failed to close storage client", "error", err.Error())
			}
		}
	default:
		opts = append(opts, catalog.WithCustom(catalog.File(x.customLocation)))
	}

	return catalog.NewLoader(opts...), closer, nil
}
