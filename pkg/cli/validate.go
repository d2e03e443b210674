package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/service/catalog"
	"github.com/secmon-lab/pathfinder/pkg/survey"
	"github.com/secmon-lab/pathfinder/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var basePath string
	var schemaPath string
	var customPath string
	var strict bool

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate question catalog files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "custom-questions",
				Usage:       "Custom questions JSON file",
				Sources:     cli.EnvVars("PATHFINDER_CUSTOM_QUESTIONS"),
				Destination: &customPath,
			},
			&cli.StringFlag{
				Name:        "base-questions",
				Usage:       "Base questions JSON file, the bundled ones when omitted",
				Sources:     cli.EnvVars("PATHFINDER_BASE_QUESTIONS"),
				Destination: &basePath,
			},
			&cli.StringFlag{
				Name:        "question-schema",
				Usage:       "Question JSON schema file, the bundled one when omitted",
				Sources:     cli.EnvVars("PATHFINDER_QUESTION_SCHEMA"),
				Destination: &schemaPath,
			},
			&cli.BoolFlag{
				Name:        "strict",
				Usage:       "Fail when any custom content would be dropped",
				Destination: &strict,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			base, err := readOr(ctx, basePath, catalog.BaseQuestions())
			if err != nil {
				return err
			}
			schema, err := readOr(ctx, schemaPath, catalog.Schema())
			if err != nil {
				return err
			}
			custom, err := readOr(ctx, customPath, nil)
			if err != nil {
				return err
			}

			result, warnings, err := survey.MaterializeWithWarnings(base, custom, schema)
			if err != nil {
				return goerr.Wrap(err, "catalog validation failed")
			}

			for _, w := range warnings {
				logger.Warn("Custom content dropped",
					"page", w.Page,
					"question_key", w.QuestionKey,
					"reason", w.Reason)
			}

			logger.Info("Catalog validation passed",
				"pages", len(result.Pages),
				"questions", result.Len(),
				"dropped", len(warnings))

			if strict && len(warnings) > 0 {
				return goerr.New("custom content dropped in strict mode", goerr.V("dropped", len(warnings)))
			}
			return nil
		},
	}
}

// readOr reads the file at path, or returns fallback when path is empty
func readOr(ctx context.Context, path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	return catalog.File(path).Read(ctx)
}
