package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/locaflow/locaflow/internal/model"
	"github.com/locaflow/locaflow/internal/odm"
)

// DocumentRepo persists compliance document metadata.
type DocumentRepo struct{ Documents *odm.Model[model.Document] }

func NewDocumentRepo(docs *odm.Model[model.Document]) *DocumentRepo {
	return &DocumentRepo{Documents: docs}
}

// Create records an uploaded document's metadata.
func (r *DocumentRepo) Create(ctx context.Context, d *model.Document) error {
	d.UploadedAt = time.Now().UTC()
	return r.Documents.Create(ctx, d)
}

// ListByOwner returns the owner's uploaded documents.
func (r *DocumentRepo) ListByOwner(ctx context.Context, ownerID string) ([]*model.Document, error) {
	return r.Documents.Find(ctx, bson.M{"ownerId": ownerID})
}
