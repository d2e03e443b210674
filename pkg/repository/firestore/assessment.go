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

type assessmentDocument struct {
	ID            string            `firestore:"id"`
	CustomerID    string            `firestore:"customer_id"`
	ApplicationID string            `firestore:"application_id"`
	Answers       map[string]string `firestore:"answers"`
	DepsIN        []string          `firestore:"deps_in"`
	DepsOUT       []string          `firestore:"deps_out"`
	CreatedAt     time.Time         `firestore:"created_at"`
}

type assessmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAssessmentRepository(client *firestore.Client) *assessmentRepository {
	return &assessmentRepository{client: client}
}

func (r *assessmentRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, AssessmentsCollection))
}

func toStrings(ids []model.ApplicationID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func toApplicationIDs(ids []string) []model.ApplicationID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]model.ApplicationID, len(ids))
	for i, id := range ids {
		out[i] = model.ApplicationID(id)
	}
	return out
}

func assessmentToDocument(a *model.Assessment) *assessmentDocument {
	return &assessmentDocument{
		ID:            string(a.ID),
		CustomerID:    string(a.CustomerID),
		ApplicationID: string(a.ApplicationID),
		Answers:       a.Answers,
		DepsIN:        toStrings(a.DepsIN),
		DepsOUT:       toStrings(a.DepsOUT),
		CreatedAt:     a.CreatedAt,
	}
}

func assessmentToModel(doc *assessmentDocument) *model.Assessment {
	return &model.Assessment{
		ID:            model.AssessmentID(doc.ID),
		CustomerID:    model.CustomerID(doc.CustomerID),
		ApplicationID: model.ApplicationID(doc.ApplicationID),
		Answers:       doc.Answers,
		DepsIN:        toApplicationIDs(doc.DepsIN),
		DepsOUT:       toApplicationIDs(doc.DepsOUT),
		CreatedAt:     doc.CreatedAt,
	}
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	doc := assessmentToDocument(assessment.Copy())
	if doc.ID == "" {
		doc.ID = string(model.NewAssessmentID())
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection().Doc(doc.ID).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create assessment",
			goerr.V("application_id", doc.ApplicationID), goerr.V("id", doc.ID))
	}

	return assessmentToModel(doc), nil
}

func (r *assessmentRepository) Get(ctx context.Context, id model.AssessmentID) (*model.Assessment, error) {
	snap, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V("id", id))
	}

	var doc assessmentDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal assessment", goerr.V("id", id))
	}
	return assessmentToModel(&doc), nil
}

// ListByApplication requires the (application_id, created_at) composite index
func (r *assessmentRepository) ListByApplication(ctx context.Context, applicationID model.ApplicationID) ([]*model.Assessment, error) {
	return r.list(ctx, r.collection().
		Where("application_id", "==", string(applicationID)).
		OrderBy("created_at", firestore.Asc))
}

// ListByCustomer requires the (customer_id, created_at) composite index
func (r *assessmentRepository) ListByCustomer(ctx context.Context, customerID model.CustomerID) ([]*model.Assessment, error) {
	return r.list(ctx, r.collection().
		Where("customer_id", "==", string(customerID)).
		OrderBy("created_at", firestore.Asc))
}

func (r *assessmentRepository) list(ctx context.Context, q firestore.Query) ([]*model.Assessment, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var assessments []*model.Assessment
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assessments")
		}

		var doc assessmentDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal assessment")
		}
		assessments = append(assessments, assessmentToModel(&doc))
	}
	return assessments, nil
}
