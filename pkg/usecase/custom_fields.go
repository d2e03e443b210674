package usecase

import (
	"context"
	"strings"

	"github.com/secmon-lab/pathfinder/pkg/domain/model"
	"github.com/secmon-lab/pathfinder/pkg/utils/logging"
)

// customFieldEntity is the part of a custom field name before the first '.'
type customFieldEntity string

const (
	entityCustomer   customFieldEntity = "customer"
	entityAssessment customFieldEntity = "assessment"
)

var customerFields = map[string]func(*model.Customer) string{
	"id":                func(c *model.Customer) string { return string(c.ID) },
	"name":              func(c *model.Customer) string { return c.Name },
	"description":       func(c *model.Customer) string { return c.Description },
	"vertical":          func(c *model.Customer) string { return c.Vertical },
	"size":              func(c *model.Customer) string { return c.Size },
	"rulesOfEngagement": func(c *model.Customer) string { return c.RulesOfEngagement },
}

// ResolveCustomFields resolves "<entity>.<field>" names for an application.
// customer.<field> reads a customer attribute. Any assessment.<field>
// yields the page notes of the current assessment. Unknown names are
// skipped.
func ResolveCustomFields(ctx context.Context, customer *model.Customer, app *model.Application, names []string) map[string]string {
	fields := make(map[string]string)
	for _, name := range names {
		name = strings.TrimSpace(name)
		entity, field, ok := strings.Cut(name, ".")
		if !ok || entity == "" || field == "" {
			continue
		}

		switch customFieldEntity(entity) {
		case entityCustomer:
			read, ok := customerFields[field]
			if !ok || customer == nil {
				logging.From(ctx).Warn("skipping unknown custom field", "field", name)
				continue
			}
			fields[name] = read(customer)

		case entityAssessment:
			if current := app.CurrentAssessment(); current != nil {
				fields[name] = current.PageNotes()
			}

		default:
			logging.From(ctx).Warn("skipping unknown custom field entity", "field", name)
		}
	}
	return fields
}
