package survey

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/domain/model"
	"github.com/secmon-lab/pathfinder/pkg/utils/logging"
	"github.com/xeipuuv/gojsonschema"
)

// CustomCatalogWarning describes custom catalog content that was dropped
// during materialization
type CustomCatalogWarning struct {
	Page        string
	QuestionKey string
	Reason      string
}

// document is the on-disk layout of base and custom question files
type document struct {
	Pages []model.Page `json:"pages"`
}

// Materialize builds the survey catalog from the base questions, optional
// custom questions and the JSON schema both must satisfy. Problems with the
// base questions or the schema fail with ErrCatalog. Problems with custom
// content are logged and the offending content dropped.
func Materialize(base, custom, schema []byte) (*model.Catalog, error) {
	catalog, warnings, err := MaterializeWithWarnings(base, custom, schema)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		logging.Default().Warn("dropped custom catalog content",
			"page", w.Page,
			"question_key", w.QuestionKey,
			"reason", w.Reason)
	}
	return catalog, nil
}

// MaterializeWithWarnings is Materialize returning the custom content
// warnings instead of logging them
func MaterializeWithWarnings(base, custom, schema []byte) (*model.Catalog, []CustomCatalogWarning, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schema))
	if err != nil {
		return nil, nil, goerr.Wrap(ErrCatalog, "failed to compile question schema",
			goerr.V("cause", err.Error()))
	}

	if errs, err := validateDocument(compiled, base); err != nil {
		return nil, nil, goerr.Wrap(ErrCatalog, "failed to read base questions",
			goerr.V("cause", err.Error()))
	} else if len(errs) > 0 {
		return nil, nil, goerr.Wrap(ErrCatalog, "base questions do not satisfy schema",
			goerr.V(SchemaErrorsKey, errs))
	}

	var baseDoc document
	if err := json.Unmarshal(base, &baseDoc); err != nil {
		return nil, nil, goerr.Wrap(ErrCatalog, "failed to decode base questions",
			goerr.V("cause", err.Error()))
	}
	if _, err := model.NewCatalog(baseDoc.Pages); err != nil {
		return nil, nil, goerr.Wrap(ErrCatalog, "invalid base questions",
			goerr.V("cause", err.Error()))
	}

	pages := append([]model.Page(nil), baseDoc.Pages...)
	customPages, warnings := customPages(compiled, custom, baseDoc.Pages)
	pages = append(pages, customPages...)

	catalog, err := model.NewCatalog(pages)
	if err != nil {
		// customPages filters everything NewCatalog rejects
		return nil, nil, goerr.Wrap(ErrCatalog, "failed to index catalog",
			goerr.V("cause", err.Error()))
	}
	return catalog, warnings, nil
}

func validateDocument(schema *gojsonschema.Schema, data []byte) ([]string, error) {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, err
	}
	if result.Valid() {
		return nil, nil
	}
	errs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		errs = append(errs, e.String())
	}
	return errs, nil
}

func customPages(schema *gojsonschema.Schema, custom []byte, base []model.Page) ([]model.Page, []CustomCatalogWarning) {
	if len(strings.TrimSpace(string(custom))) == 0 {
		return nil, nil
	}

	errs, err := validateDocument(schema, custom)
	if err != nil {
		return nil, []CustomCatalogWarning{{Reason: "unparseable custom questions: " + err.Error()}}
	}
	if len(errs) > 0 {
		return nil, []CustomCatalogWarning{{Reason: "custom questions do not satisfy schema: " + strings.Join(errs, "; ")}}
	}

	var doc document
	if err := json.Unmarshal(custom, &doc); err != nil {
		return nil, []CustomCatalogWarning{{Reason: "failed to decode custom questions: " + err.Error()}}
	}

	seen := make(map[string]struct{})
	for _, page := range base {
		for _, q := range page.Questions {
			seen[q.Key] = struct{}{}
		}
	}

	var (
		pages    []model.Page
		warnings []CustomCatalogWarning
	)
	for _, page := range doc.Pages {
		kept := model.Page{Name: page.Name, Title: page.Title}
		for _, q := range page.Questions {
			if reason := checkCustomQuestion(q, seen); reason != "" {
				warnings = append(warnings, CustomCatalogWarning{
					Page:        page.Name,
					QuestionKey: q.Key,
					Reason:      reason,
				})
				continue
			}
			seen[q.Key] = struct{}{}
			kept.Questions = append(kept.Questions, q)
		}
		if len(kept.Questions) > 0 {
			pages = append(pages, kept)
		}
	}

	return pages, warnings
}

func checkCustomQuestion(q model.Question, seen map[string]struct{}) string {
	if strings.TrimSpace(q.Key) == "" {
		return "question key is empty"
	}
	if _, ok := seen[q.Key]; ok {
		return "question key collides with an existing question"
	}

	ordinals := make(map[int]struct{}, len(q.Options))
	for _, opt := range q.Options {
		if !opt.Rating.IsValid() {
			return "unknown rating " + strconv.Quote(opt.Rating.String())
		}
		if _, ok := ordinals[opt.Ordinal]; ok {
			return "duplicate ordinal " + strconv.Itoa(opt.Ordinal)
		}
		ordinals[opt.Ordinal] = struct{}{}
	}
	return ""
}
