package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/domain/model"
	"github.com/secmon-lab/pathfinder/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type applicationDocument struct {
	ID          string          `firestore:"id"`
	CustomerID  string          `firestore:"customer_id"`
	Name        string          `firestore:"name"`
	Description string          `firestore:"description"`
	Owner       string          `firestore:"owner"`
	Stereotype  string          `firestore:"stereotype"`
	Review      *reviewDocument `firestore:"review,omitempty"`
	CreatedAt   time.Time       `firestore:"created_at"`
	UpdatedAt   time.Time       `firestore:"updated_at"`
}

type reviewDocument struct {
	ID               string    `firestore:"id"`
	ReviewDate       time.Time `firestore:"review_date"`
	Decision         string    `firestore:"decision"`
	EstimatedEffort  string    `firestore:"estimated_effort"`
	BusinessPriority int       `firestore:"business_priority"`
	WorkPriority     int       `firestore:"work_priority"`
	Notes            string    `firestore:"notes"`
}

type applicationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newApplicationRepository(client *firestore.Client) *applicationRepository {
	return &applicationRepository{client: client}
}

func (r *applicationRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, ApplicationsCollection))
}

func applicationToDocument(app *model.Application) *applicationDocument {
	doc := &applicationDocument{
		ID:          string(app.ID),
		CustomerID:  string(app.CustomerID),
		Name:        app.Name,
		Description: app.Description,
		Owner:       app.Owner,
		Stereotype:  string(app.Stereotype),
		CreatedAt:   app.CreatedAt,
		UpdatedAt:   app.UpdatedAt,
	}
	if app.Review != nil {
		doc.Review = reviewToDocument(app.Review)
	}
	return doc
}

func reviewToDocument(review *model.Review) *reviewDocument {
	return &reviewDocument{
		ID:               string(review.ID),
		ReviewDate:       review.ReviewDate,
		Decision:         review.Decision,
		EstimatedEffort:  review.EstimatedEffort,
		BusinessPriority: review.BusinessPriority,
		WorkPriority:     review.WorkPriority,
		Notes:            review.Notes,
	}
}

func applicationToModel(doc *applicationDocument) *model.Application {
	app := &model.Application{
		ID:          model.ApplicationID(doc.ID),
		CustomerID:  model.CustomerID(doc.CustomerID),
		Name:        doc.Name,
		Description: doc.Description,
		Owner:       doc.Owner,
		Stereotype:  types.Stereotype(doc.Stereotype),
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
	if doc.Review != nil {
		app.Review = &model.Review{
			ID:               model.ReviewID(doc.Review.ID),
			ReviewDate:       doc.Review.ReviewDate,
			Decision:         doc.Review.Decision,
			EstimatedEffort:  doc.Review.EstimatedEffort,
			BusinessPriority: doc.Review.BusinessPriority,
			WorkPriority:     doc.Review.WorkPriority,
			Notes:            doc.Review.Notes,
		}
	}
	return app
}

func (r *applicationRepository) Create(ctx context.Context, app *model.Application) (*model.Application, error) {
	now := time.Now().UTC()
	doc := applicationToDocument(app)
	if doc.ID == "" {
		doc.ID = string(model.NewApplicationID())
	}
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.collection().Doc(doc.ID).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create application",
			goerr.V("customer_id", doc.CustomerID), goerr.V("id", doc.ID))
	}

	return applicationToModel(doc), nil
}

func (r *applicationRepository) get(ctx context.Context, customerID model.CustomerID, id model.ApplicationID) (*applicationDocument, error) {
	snap, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "application not found",
				goerr.V("customer_id", customerID), goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get application", goerr.V("id", id))
	}

	var doc applicationDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal application", goerr.V("id", id))
	}
	if doc.CustomerID != string(customerID) {
		return nil, goerr.Wrap(ErrNotFound, "application not found",
			goerr.V("customer_id", customerID), goerr.V("id", id))
	}
	return &doc, nil
}

func (r *applicationRepository) Get(ctx context.Context, customerID model.CustomerID, id model.ApplicationID) (*model.Application, error) {
	doc, err := r.get(ctx, customerID, id)
	if err != nil {
		return nil, err
	}
	return applicationToModel(doc), nil
}

// List requires the (customer_id, created_at) composite index
func (r *applicationRepository) List(ctx context.Context, customerID model.CustomerID) ([]*model.Application, error) {
	iter := r.collection().
		Where("customer_id", "==", string(customerID)).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var apps []*model.Application
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate applications", goerr.V("customer_id", customerID))
		}

		var doc applicationDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal application")
		}
		apps = append(apps, applicationToModel(&doc))
	}

	return apps, nil
}

func (r *applicationRepository) SetReview(ctx context.Context, customerID model.CustomerID, id model.ApplicationID, review *model.Review) (*model.Application, error) {
	doc, err := r.get(ctx, customerID, id)
	if err != nil {
		return nil, err
	}

	if review != nil {
		doc.Review = reviewToDocument(review)
		if doc.Review.ID == "" {
			doc.Review.ID = string(model.NewReviewID())
		}
	} else {
		doc.Review = nil
	}
	doc.UpdatedAt = time.Now().UTC()

	if _, err := r.collection().Doc(doc.ID).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to update application review", goerr.V("id", id))
	}

	return applicationToModel(doc), nil
}
