package usecase

import (
	"github.com/secmon-lab/pathfinder/pkg/domain/interfaces"
	"github.com/secmon-lab/pathfinder/pkg/domain/model"
	"github.com/secmon-lab/pathfinder/pkg/service/catalog"
)

// CatalogProvider returns the currently published survey catalog
type CatalogProvider interface {
	Get() *model.Catalog
}

type UseCases struct {
	repo        interfaces.Repository
	catalog     CatalogProvider
	Customer    *CustomerUseCase
	Application *ApplicationUseCase
	Assessment  *AssessmentUseCase
	Report      *ReportUseCase
}

type Option func(*UseCases)

// WithCatalog sets the catalog provider. The bundled default catalog is used otherwise.
func WithCatalog(provider CatalogProvider) Option {
	return func(uc *UseCases) {
		uc.catalog = provider
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}
	if uc.catalog == nil {
		uc.catalog = catalog.NewStaticHolder(catalog.Default())
	}

	uc.Customer = NewCustomerUseCase(repo)
	uc.Application = NewApplicationUseCase(repo)
	uc.Assessment = NewAssessmentUseCase(repo, uc.catalog)
	uc.Report = NewReportUseCase(repo, uc.catalog)

	return uc
}

// Catalog returns the survey catalog served to assessors
func (uc *UseCases) Catalog() *model.Catalog {
	return uc.catalog.Get()
}
