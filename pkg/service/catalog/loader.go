package catalog

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/domain/model"
	"github.com/secmon-lab/pathfinder/pkg/survey"
	"github.com/secmon-lab/pathfinder/pkg/utils/errutil"
	"github.com/secmon-lab/pathfinder/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// Loader reads catalog documents from their sources and materializes them
type Loader struct {
	base   Source
	schema Source
	custom Source
}

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithBase replaces the bundled base questions
func WithBase(src Source) LoaderOption {
	return func(l *Loader) { l.base = src }
}

// WithSchema replaces the bundled question schema
func WithSchema(src Source) LoaderOption {
	return func(l *Loader) { l.schema = src }
}

// WithCustom adds a custom questions source
func WithCustom(src Source) LoaderOption {
	return func(l *Loader) { l.custom = src }
}

// NewLoader creates a loader over the bundled base questions and schema
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		base:   Bytes{Name: "bundled:base-questions.json", Data: BaseQuestions()},
		schema: Bytes{Name: "bundled:question-schema.json", Data: Schema()},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Custom returns the custom questions source, nil when none is configured
func (l *Loader) Custom() Source {
	return l.custom
}

// Load reads all sources concurrently and materializes the catalog. It
// always returns a catalog: when the base questions or schema cannot be used
// the bundled default catalog is returned instead.
func (l *Loader) Load(ctx context.Context) *model.Catalog {
	var base, schema, custom []byte

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		data, err := l.base.Read(egCtx)
		if err != nil {
			return goerr.Wrap(survey.ErrCatalog, "failed to read base questions",
				goerr.V(survey.SourceKey, l.base.String()), goerr.V("cause", err.Error()))
		}
		base = data
		return nil
	})
	eg.Go(func() error {
		data, err := l.schema.Read(egCtx)
		if err != nil {
			return goerr.Wrap(survey.ErrCatalog, "failed to read question schema",
				goerr.V(survey.SourceKey, l.schema.String()), goerr.V("cause", err.Error()))
		}
		schema = data
		return nil
	})
	if l.custom != nil {
		eg.Go(func() error {
			data, err := l.custom.Read(egCtx)
			if err != nil {
				// custom questions are optional
				logging.From(ctx).Warn("failed to read custom questions, ignoring them",
					"source", l.custom.String(), "error", err.Error())
				customDropped.Inc()
				return nil
			}
			custom = data
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return l.fallback(ctx, err)
	}

	catalog, warnings, err := survey.MaterializeWithWarnings(base, custom, schema)
	if err != nil {
		return l.fallback(ctx, err)
	}

	for _, w := range warnings {
		logging.From(ctx).Warn("dropped custom catalog content",
			"page", w.Page,
			"question_key", w.QuestionKey,
			"reason", w.Reason)
	}
	customDropped.Add(float64(len(warnings)))
	reloads.WithLabelValues("ok").Inc()

	logging.From(ctx).Info("Catalog materialized",
		"questions", catalog.Len(),
		"pages", len(catalog.Pages),
		"dropped", len(warnings))
	return catalog
}

func (l *Loader) fallback(ctx context.Context, err error) *model.Catalog {
	if !errors.Is(err, survey.ErrCatalog) {
		err = goerr.Wrap(survey.ErrCatalog, "failed to load catalog", goerr.V("cause", err.Error()))
	}
	errutil.Handle(ctx, err, "serving bundled default catalog")
	fallbacks.Inc()
	reloads.WithLabelValues("fallback").Inc()
	return Default()
}
