package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/locaflow/locaflow/internal/model"
	"github.com/locaflow/locaflow/internal/odm"
)

// SeasonalRepo persists browsable seasonal listings derived from published
// properties.
type SeasonalRepo struct{ Listings *odm.Model[model.SeasonalListing] }

func NewSeasonalRepo(listings *odm.Model[model.SeasonalListing]) *SeasonalRepo {
	return &SeasonalRepo{Listings: listings}
}

// UpsertForProperty overwrites the property's seasonal listing, keyed by
// property id.
func (r *SeasonalRepo) UpsertForProperty(ctx context.Context, l *model.SeasonalListing) (*model.SeasonalListing, error) {
	return r.Listings.FindOneAndUpdate(ctx,
		bson.M{"propertyId": l.PropertyID},
		bson.M{"$set": bson.M{
			"ownerId":     l.OwnerID,
			"slug":        l.Slug,
			"title":       l.Title,
			"city":        l.City,
			"from":        l.From,
			"to":          l.To,
			"nightlyRate": l.NightlyRate,
			"updatedAt":   time.Now().UTC(),
		}}, true)
}

// DeleteForProperty removes the property's seasonal listing, used when a
// publish drops the seasonal period.
func (r *SeasonalRepo) DeleteForProperty(ctx context.Context, propertyID string) error {
	return r.Listings.DeleteOne(ctx, bson.M{"propertyId": propertyID})
}

// ListActive returns seasonal listings whose period covers the given moment.
func (r *SeasonalRepo) ListActive(ctx context.Context, at time.Time) ([]*model.SeasonalListing, error) {
	return r.Listings.Find(ctx, bson.M{
		"from": bson.M{"$lte": at},
		"to":   bson.M{"$gte": at},
	})
}
