package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/locaflow/locaflow/internal/model"
	"github.com/locaflow/locaflow/internal/odm"
)

// ProfileRepo persists user profiles, one document per user.
type ProfileRepo struct{ Profiles *odm.Model[model.Profile] }

func NewProfileRepo(profiles *odm.Model[model.Profile]) *ProfileRepo {
	return &ProfileRepo{Profiles: profiles}
}

// Upsert overwrites the user's profile and returns the stored document.
func (r *ProfileRepo) Upsert(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	set := bson.M{
		"role":        p.Role,
		"displayName": p.DisplayName,
		"phone":       p.Phone,
		"company":     p.Company,
		"updatedAt":   time.Now().UTC(),
	}
	if p.Locale != "" {
		set["locale"] = p.Locale
	}
	return r.Profiles.FindOneAndUpdate(ctx,
		bson.M{"userId": p.UserID}, bson.M{"$set": set}, true)
}

// Get returns the user's profile, or nil when none exists.
func (r *ProfileRepo) Get(ctx context.Context, userID string) (*model.Profile, error) {
	p, err := r.Profiles.FindOne(ctx, bson.M{"userId": userID})
	if errors.Is(err, odm.ErrNotFound) {
		return nil, nil
	}
	return p, err
}
