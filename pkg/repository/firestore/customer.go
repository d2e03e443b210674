package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type customerDocument struct {
	ID                string    `firestore:"id"`
	Name              string    `firestore:"name"`
	Description       string    `firestore:"description"`
	Vertical          string    `firestore:"vertical"`
	Size              string    `firestore:"size"`
	RulesOfEngagement string    `firestore:"rules_of_engagement"`
	CreatedAt         time.Time `firestore:"created_at"`
	UpdatedAt         time.Time `firestore:"updated_at"`
}

type customerRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCustomerRepository(client *firestore.Client) *customerRepository {
	return &customerRepository{client: client}
}

func (r *customerRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, CustomersCollection))
}

func customerToDocument(c *model.Customer) *customerDocument {
	return &customerDocument{
		ID:                string(c.ID),
		Name:              c.Name,
		Description:       c.Description,
		Vertical:          c.Vertical,
		Size:              c.Size,
		RulesOfEngagement: c.RulesOfEngagement,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func customerToModel(doc *customerDocument) *model.Customer {
	return &model.Customer{
		ID:                model.CustomerID(doc.ID),
		Name:              doc.Name,
		Description:       doc.Description,
		Vertical:          doc.Vertical,
		Size:              doc.Size,
		RulesOfEngagement: doc.RulesOfEngagement,
		CreatedAt:         doc.CreatedAt,
		UpdatedAt:         doc.UpdatedAt,
	}
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	now := time.Now().UTC()
	doc := customerToDocument(customer)
	if doc.ID == "" {
		doc.ID = string(model.NewCustomerID())
	}
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.collection().Doc(doc.ID).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create customer", goerr.V("id", doc.ID))
	}

	return customerToModel(doc), nil
}

func (r *customerRepository) Get(ctx context.Context, id model.CustomerID) (*model.Customer, error) {
	snap, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "customer not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get customer", goerr.V("id", id))
	}

	var doc customerDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal customer", goerr.V("id", id))
	}

	return customerToModel(&doc), nil
}

func (r *customerRepository) List(ctx context.Context) ([]*model.Customer, error) {
	iter := r.collection().OrderBy("created_at", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var customers []*model.Customer
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate customers")
		}

		var doc customerDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal customer")
		}
		customers = append(customers, customerToModel(&doc))
	}

	return customers, nil
}
