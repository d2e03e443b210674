package catalog

import (
	"embed"
	"encoding/json"
	"sync"

	"github.com/secmon-lab/pathfinder/pkg/domain/model"
)

//go:embed assets/*.json
var assets embed.FS

func mustAsset(name string) []byte {
	data, err := assets.ReadFile("assets/" + name)
	if err != nil {
		panic("missing bundled catalog asset: " + name)
	}
	return data
}

// BaseQuestions returns the bundled base question document
func BaseQuestions() []byte { return mustAsset("base-questions.json") }

// Schema returns the bundled JSON schema for question documents
func Schema() []byte { return mustAsset("question-schema.json") }

var defaultCatalog = sync.OnceValue(func() *model.Catalog {
	var doc struct {
		Pages []model.Page `json:"pages"`
	}
	if err := json.Unmarshal(mustAsset("default-survey.json"), &doc); err != nil {
		panic("bundled default survey is not valid JSON: " + err.Error())
	}
	c, err := model.NewCatalog(doc.Pages)
	if err != nil {
		panic("bundled default survey is not a valid catalog: " + err.Error())
	}
	return c
})

// Default returns the precomputed catalog served when materialization fails
func Default() *model.Catalog {
	return defaultCatalog()
}
