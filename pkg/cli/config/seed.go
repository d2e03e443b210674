package config

import (
	"context"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/pathfinder/pkg/domain/model"
	"github.com/secmon-lab/pathfinder/pkg/domain/types"
	"github.com/secmon-lab/pathfinder/pkg/usecase"
)

// Seed is a portfolio fixture for the memory backend
type Seed struct {
	Customers []SeedCustomer `toml:"customer"`
}

// SeedCustomer is a customer with its applications
type SeedCustomer struct {
	Name              string            `toml:"name"`
	Description       string            `toml:"description"`
	Vertical          string            `toml:"vertical"`
	Size              string            `toml:"size"`
	RulesOfEngagement string            `toml:"rules_of_engagement"`
	Applications      []SeedApplication `toml:"application"`
}

// SeedApplication is an application with optional assessments and review.
// Dependencies refer to other applications of the same customer by name.
type SeedApplication struct {
	Name        string           `toml:"name"`
	Description string           `toml:"description"`
	Owner       string           `toml:"owner"`
	Stereotype  string           `toml:"stereotype"`
	Assessments []SeedAssessment `toml:"assessment"`
	Review      *SeedReview      `toml:"review"`
}

// SeedAssessment is one recorded assessment, oldest first
type SeedAssessment struct {
	Answers map[string]string `toml:"answers"`
	DepsIN  []string          `toml:"deps_in"`
	DepsOUT []string          `toml:"deps_out"`
}

// SeedReview is the review of an application
type SeedReview struct {
	Decision         string `toml:"decision"`
	EstimatedEffort  string `toml:"estimated_effort"`
	BusinessPriority int    `toml:"business_priority"`
	WorkPriority     int    `toml:"work_priority"`
	Notes            string `toml:"notes"`
}

// LoadSeed reads and validates a TOML seed file
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read seed file", goerr.V(ConfigPathKey, path))
	}

	var seed Seed
	if err := toml.Unmarshal(data, &seed); err != nil {
		return nil, goerr.Wrap(ErrInvalidSeed, "failed to parse seed file",
			goerr.V(ConfigPathKey, path), goerr.V("cause", err.Error()))
	}
	if err := seed.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid seed file", goerr.V(ConfigPathKey, path))
	}
	return &seed, nil
}

// Validate checks names, stereotypes and dependency references
func (s *Seed) Validate() error {
	for _, c := range s.Customers {
		if strings.TrimSpace(c.Name) == "" {
			return goerr.Wrap(ErrInvalidSeed, "customer name is required")
		}

		names := make(map[string]bool, len(c.Applications))
		for _, app := range c.Applications {
			if strings.TrimSpace(app.Name) == "" {
				return goerr.Wrap(ErrInvalidSeed, "application name is required", goerr.V(CustomerKey, c.Name))
			}
			if names[app.Name] {
				return goerr.Wrap(ErrInvalidSeed, "duplicate application name",
					goerr.V(CustomerKey, c.Name), goerr.V(ApplicationKey, app.Name))
			}
			names[app.Name] = true

			if _, err := types.ParseStereotype(app.Stereotype); err != nil {
				return goerr.Wrap(ErrInvalidSeed, "invalid stereotype",
					goerr.V(CustomerKey, c.Name), goerr.V(ApplicationKey, app.Name), goerr.V("stereotype", app.Stereotype))
			}
		}

		for _, app := range c.Applications {
			for _, a := range app.Assessments {
				for _, dep := range append(append([]string{}, a.DepsIN...), a.DepsOUT...) {
					if !names[dep] {
						return goerr.Wrap(ErrUnknownDependency, "unknown dependency",
							goerr.V(CustomerKey, c.Name), goerr.V(ApplicationKey, app.Name), goerr.V(DependencyKey, dep))
					}
				}
			}
		}
	}
	return nil
}

// Apply records the seed through the use cases. Applications are created
// before assessments so that dependencies resolve to their IDs.
func (s *Seed) Apply(ctx context.Context, uc *usecase.UseCases) error {
	for _, c := range s.Customers {
		customer, err := uc.Customer.CreateCustomer(ctx, usecase.CreateCustomerInput{
			Name:              c.Name,
			Description:       c.Description,
			Vertical:          c.Vertical,
			Size:              c.Size,
			RulesOfEngagement: c.RulesOfEngagement,
		})
		if err != nil {
			return goerr.Wrap(err, "failed to seed customer", goerr.V(CustomerKey, c.Name))
		}

		ids := make(map[string]model.ApplicationID, len(c.Applications))
		for _, a := range c.Applications {
			app, err := uc.Application.CreateApplication(ctx, customer.ID, usecase.CreateApplicationInput{
				Name:        a.Name,
				Description: a.Description,
				Owner:       a.Owner,
				Stereotype:  a.Stereotype,
			})
			if err != nil {
				return goerr.Wrap(err, "failed to seed application",
					goerr.V(CustomerKey, c.Name), goerr.V(ApplicationKey, a.Name))
			}
			ids[a.Name] = app.ID
		}

		resolve := func(names []string) []model.ApplicationID {
			out := make([]model.ApplicationID, len(names))
			for i, name := range names {
				out[i] = ids[name]
			}
			return out
		}

		for _, a := range c.Applications {
			for _, assessment := range a.Assessments {
				if _, err := uc.Assessment.CreateAssessment(ctx, customer.ID, ids[a.Name], usecase.CreateAssessmentInput{
					Answers: assessment.Answers,
					DepsIN:  resolve(assessment.DepsIN),
					DepsOUT: resolve(assessment.DepsOUT),
				}); err != nil {
					return goerr.Wrap(err, "failed to seed assessment",
						goerr.V(CustomerKey, c.Name), goerr.V(ApplicationKey, a.Name))
				}
			}

			if a.Review == nil {
				continue
			}
			if _, err := uc.Application.SetReview(ctx, customer.ID, ids[a.Name], usecase.ReviewInput{
				Decision:         a.Review.Decision,
				EstimatedEffort:  a.Review.EstimatedEffort,
				BusinessPriority: a.Review.BusinessPriority,
				WorkPriority:     a.Review.WorkPriority,
				Notes:            a.Review.Notes,
			}); err != nil {
				return goerr.Wrap(err, "failed to seed review",
					goerr.V(CustomerKey, c.Name), goerr.V(ApplicationKey, a.Name))
			}
		}
	}
	return nil
}
