package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/locaflow/locaflow/internal/model"
	"github.com/locaflow/locaflow/internal/odm"
	"github.com/locaflow/locaflow/internal/queue"
)

// AuditRepo persists audit log entries written by the queue consumer.
type AuditRepo struct{ Logs *odm.Model[model.AuditLog] }

func NewAuditRepo(logs *odm.Model[model.AuditLog]) *AuditRepo { return &AuditRepo{Logs: logs} }

// Append inserts an audit entry.
func (r *AuditRepo) Append(ctx context.Context, entry *model.AuditLog) error {
	return r.Logs.Create(ctx, entry)
}

// Record persists a consumed queue event as an audit entry. Satisfies
// queue.AuditSink.
func (r *AuditRepo) Record(ctx context.Context, ev queue.AuditEvent) error {
	return r.Append(ctx, &model.AuditLog{
		Action:   ev.Action,
		ActorID:  ev.ActorID,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Details:  ev.Details,
		At:       ev.At,
	})
}

// ListRecent returns the most recent entries, newest first, optionally
// filtered by action.
func (r *AuditRepo) ListRecent(ctx context.Context, action string, limit int64) ([]*model.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	filter := bson.M{}
	if action != "" {
		filter["action"] = action
	}
	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}}).SetLimit(limit)
	return r.Logs.Find(ctx, filter, opts)
}
