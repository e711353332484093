package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/locaflow/locaflow/internal/model"
	"github.com/locaflow/locaflow/internal/odm"
)

// DraftRepo persists per-user onboarding drafts. Exactly one draft exists
// per user (unique index on userId); saves are overwrite-semantics upserts
// with no merge and no version check, so concurrent tabs are last-writer-wins.
type DraftRepo struct{ Drafts *odm.Model[model.OnboardingDraft] }

func NewDraftRepo(drafts *odm.Model[model.OnboardingDraft]) *DraftRepo {
	return &DraftRepo{Drafts: drafts}
}

// Upsert overwrites the user's draft data wholesale and returns the stored
// document.
func (r *DraftRepo) Upsert(ctx context.Context, userID, role string, data map[string]any) (*model.OnboardingDraft, error) {
	if data == nil {
		data = map[string]any{}
	}
	now := time.Now().UTC()
	return r.Drafts.FindOneAndUpdate(ctx,
		bson.M{"userId": userID},
		bson.M{
			"$set":         bson.M{"role": role, "data": data, "updatedAt": now},
			"$setOnInsert": bson.M{"createdAt": now},
		}, true)
}

// SetStatus updates the draft's lifecycle status (e.g. "ready" when a tenant
// finalizes).
func (r *DraftRepo) SetStatus(ctx context.Context, userID, status string) (*model.OnboardingDraft, error) {
	d, err := r.Drafts.FindOneAndUpdate(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}, false)
	if errors.Is(err, odm.ErrNotFound) {
		return nil, ErrNotFound
	}
	return d, err
}

// Get returns the user's draft, or nil when none exists. Absence is not an
// error.
func (r *DraftRepo) Get(ctx context.Context, userID string) (*model.OnboardingDraft, error) {
	d, err := r.Drafts.FindOne(ctx, bson.M{"userId": userID})
	if errors.Is(err, odm.ErrNotFound) {
		return nil, nil
	}
	return d, err
}

// Delete removes the user's draft. Missing drafts are ignored so completion
// can always purge.
func (r *DraftRepo) Delete(ctx context.Context, userID string) error {
	return r.Drafts.DeleteOne(ctx, bson.M{"userId": userID})
}
