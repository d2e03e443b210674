package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/cli/config"
	"github.com/secmon-lab/pathfinder/pkg/domain/model"
	"github.com/secmon-lab/pathfinder/pkg/survey"
	"github.com/secmon-lab/pathfinder/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

type scoreAnswer struct {
	Key      string `json:"key"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Rating   string `json:"rating"`
}

type scoreResult struct {
	Confidence *int          `json:"confidence,omitempty"`
	Status     string        `json:"status"`
	Answers    []scoreAnswer `json:"answers"`
}

func cmdScore() *cli.Command {
	var assessmentPath string
	var outputPath string
	var catalogCfg config.Catalog

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "assessment",
			Aliases:     []string{"a"},
			Usage:       "JSON file with an object of question key to answer code",
			Required:    true,
			Destination: &assessmentPath,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output file, stdout when omitted",
			Value:       "-",
			Destination: &outputPath,
		},
	}
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:  "score",
		Usage: "Score an assessment file against the question catalog",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			data, err := os.ReadFile(assessmentPath)
			if err != nil {
				return goerr.Wrap(err, "failed to read assessment", goerr.V("path", assessmentPath))
			}
			var answers map[string]string
			if err := json.Unmarshal(data, &answers); err != nil {
				return goerr.Wrap(err, "failed to decode assessment", goerr.V("path", assessmentPath))
			}

			loader, closeCatalog, err := catalogCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure catalog")
			}
			defer closeCatalog()

			result, err := scoreAnswers(loader.Load(ctx), answers)
			if err != nil {
				return err
			}

			var w io.Writer = os.Stdout
			if outputPath != "-" {
				f, err := os.Create(outputPath)
				if err != nil {
					return goerr.Wrap(err, "failed to create output file", goerr.V("path", outputPath))
				}
				defer safe.Close(ctx, f)
				w = f
			}

			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return goerr.Wrap(err, "failed to write result")
			}
			return nil
		},
	}
}

func scoreAnswers(catalog *model.Catalog, answers map[string]string) (*scoreResult, error) {
	assessment := &model.Assessment{Answers: answers}
	resolution := survey.ResolveAssessment(catalog, assessment)

	result := &scoreResult{
		Status:  survey.Classify(resolution).String(),
		Answers: []scoreAnswer{},
	}
	for _, a := range resolution.Ordered() {
		result.Answers = append(result.Answers, scoreAnswer{
			Key:      a.QuestionKey,
			Question: a.QuestionText,
			Answer:   a.AnswerText,
			Rating:   a.Rating.String(),
		})
	}

	score, err := survey.ScoreAssessment(catalog, assessment)
	switch {
	case err == nil:
		result.Confidence = &score
	case errors.Is(err, survey.ErrNoAnswers):
	default:
		return nil, goerr.Wrap(err, "failed to score assessment")
	}
	return result, nil
}
