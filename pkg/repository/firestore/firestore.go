package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/domain/interfaces"
)

type Firestore struct {
	client      *firestore.Client
	customer    *customerRepository
	application *applicationRepository
	assessment  *assessmentRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.customer.collectionPrefix = prefix
		f.application.collectionPrefix = prefix
		f.assessment.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:      client,
		customer:    newCustomerRepository(client),
		application: newApplicationRepository(client),
		assessment:  newAssessmentRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Customer() interfaces.CustomerRepository {
	return f.customer
}

func (f *Firestore) Application() interfaces.ApplicationRepository {
	return f.application
}

func (f *Firestore) Assessment() interfaces.AssessmentRepository {
	return f.assessment
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// CollectionName returns name with the optional prefix applied
func CollectionName(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}

// Collection names, exported for index migration
const (
	CustomersCollection    = "customers"
	ApplicationsCollection = "applications"
	AssessmentsCollection  = "assessments"
)
