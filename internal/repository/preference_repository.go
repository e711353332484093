package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/locaflow/locaflow/internal/model"
	"github.com/locaflow/locaflow/internal/odm"
)

// PreferenceRepo persists tenant search preferences, one document per
// tenant.
type PreferenceRepo struct{ Preferences *odm.Model[model.TenantPreference] }

func NewPreferenceRepo(prefs *odm.Model[model.TenantPreference]) *PreferenceRepo {
	return &PreferenceRepo{Preferences: prefs}
}

// Upsert overwrites the tenant's preferences and returns the stored
// document.
func (r *PreferenceRepo) Upsert(ctx context.Context, p *model.TenantPreference) (*model.TenantPreference, error) {
	set := bson.M{
		"cities":     p.Cities,
		"maxRent":    p.MaxRent,
		"minSurface": p.MinSurface,
		"bedrooms":   p.Bedrooms,
		"furnished":  p.Furnished,
		"updatedAt":  time.Now().UTC(),
	}
	if p.MoveInFrom != nil {
		set["moveInFrom"] = p.MoveInFrom
	}
	return r.Preferences.FindOneAndUpdate(ctx,
		bson.M{"tenantId": p.TenantID}, bson.M{"$set": set}, true)
}

// Get returns the tenant's preferences, or nil when none are saved yet.
func (r *PreferenceRepo) Get(ctx context.Context, tenantID string) (*model.TenantPreference, error) {
	p, err := r.Preferences.FindOne(ctx, bson.M{"tenantId": tenantID})
	if errors.Is(err, odm.ErrNotFound) {
		return nil, nil
	}
	return p, err
}
