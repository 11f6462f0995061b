package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/govpulse/govpulse/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// Collection names
	workflowsCollection = "workflows"
)

// Firestore reads workflows from a Firestore collection. Each document holds
// service_name, department, sla_days and steps (or step_count) fields.
type Firestore struct {
	client *firestore.Client
}

// NewFirestore creates a Firestore catalog provider
func NewFirestore(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	logger := ctxlog.From(ctx)

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	// Fail fast on invalid project or missing permissions
	_, err = client.Collection(workflowsCollection).Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		if status.Code(err) == codes.PermissionDenied || status.Code(err) == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("firestore error code", status.Code(err).String()),
			)
		}
		logger.Debug("Firestore connection test returned error (may be empty collection)",
			"error", err,
			"errorCode", status.Code(err).String(),
		)
	}

	logger.Info("Firestore catalog provider initialized",
		"projectID", projectID,
		"databaseID", databaseID,
	)

	return &Firestore{
		client: client,
	}, nil
}

// Name returns the provider name
func (f *Firestore) Name() string {
	return "firestore"
}

// Load reads every workflow document
func (f *Firestore) Load(ctx context.Context) ([]*model.ServiceRecord, error) {
	iter := f.client.Collection(workflowsCollection).Documents(ctx)
	defer iter.Stop()

	var records []*model.ServiceRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate workflows")
		}

		var rec model.ServiceRecord
		if err := doc.DataTo(&rec); err != nil {
			return nil, goerr.Wrap(err, "failed to decode workflow",
				goerr.V("document", doc.Ref.ID))
		}
		if rec.Name == "" {
			rec.Name = doc.Ref.ID
		}

		records = append(records, &rec)
	}

	return records, nil
}

// Put stores a workflow document keyed by its normalized service name
func (f *Firestore) Put(ctx context.Context, rec *model.ServiceRecord) error {
	if rec == nil {
		return goerr.New("workflow is nil")
	}
	rec.Normalize()
	if err := rec.Validate(); err != nil {
		return goerr.Wrap(err, "invalid workflow")
	}

	_, err := f.client.Collection(workflowsCollection).Doc(rec.Key.String()).Set(ctx, rec)
	if err != nil {
		return goerr.Wrap(err, "failed to save workflow to firestore",
			goerr.V("service", rec.Name))
	}
	return nil
}

// Close closes the Firestore client
func (f *Firestore) Close() error {
	return f.client.Close()
}
