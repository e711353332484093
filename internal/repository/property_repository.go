package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/locaflow/locaflow/internal/model"
	"github.com/locaflow/locaflow/internal/odm"
)

// PropertyRepo persists rental listings.
type PropertyRepo struct{ Properties *odm.Model[model.Property] }

func NewPropertyRepo(properties *odm.Model[model.Property]) *PropertyRepo {
	return &PropertyRepo{Properties: properties}
}

// GetByOwner returns the owner's property, or nil when none exists yet. The
// data model assumes at most one property per owner.
func (r *PropertyRepo) GetByOwner(ctx context.Context, ownerID string) (*model.Property, error) {
	p, err := r.Properties.FindOne(ctx, bson.M{"ownerId": ownerID})
	if errors.Is(err, odm.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

// GetByID fetches a property by id.
func (r *PropertyRepo) GetByID(ctx context.Context, id string) (*model.Property, error) {
	p, err := r.Properties.FindByID(ctx, id)
	if errors.Is(err, odm.ErrNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

// publicSlugFilter matches a published property by its current slug or any
// slug it held before a retitle. Draft and archived properties never match.
func publicSlugFilter(slug string) bson.M {
	return bson.M{
		"status": model.PropertyPublished,
		"$or":    []bson.M{{"slug": slug}, {"previousSlugs": slug}},
	}
}

// publicListFilter matches published listings, optionally constrained by
// city and maximum monthly rent.
func publicListFilter(city string, maxRent float64) bson.M {
	filter := bson.M{"status": model.PropertyPublished}
	if city != "" {
		filter["city"] = city
	}
	if maxRent > 0 {
		filter["pricing.monthlyRent"] = bson.M{"$lte": maxRent}
	}
	return filter
}

// GetBySlug resolves a slug to a published property, following the
// previousSlugs history so old links keep working after a retitle.
func (r *PropertyRepo) GetBySlug(ctx context.Context, slug string) (*model.Property, error) {
	p, err := r.Properties.FindOne(ctx, publicSlugFilter(slug))
	if errors.Is(err, odm.ErrNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

// SlugExists reports whether any other property already holds the slug.
func (r *PropertyRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	filter := bson.M{"slug": slug}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	n, err := r.Properties.CountDocuments(ctx, filter)
	return n > 0, err
}

// Upsert writes the property keyed by owner, returning the stored document.
// Field values are replaced wholesale; createdAt is only set on insert.
func (r *PropertyRepo) Upsert(ctx context.Context, p *model.Property) (*model.Property, error) {
	now := time.Now().UTC()
	set := bson.M{
		"title":       p.Title,
		"description": p.Description,
		"city":        p.City,
		"address":     p.Address,
		"kind":        p.Kind,
		"surface":     p.Surface,
		"bedrooms":    p.Bedrooms,
		"slug":        p.Slug,
		"status":      p.Status,
		"images":      p.Images,
		"heroImage":   p.HeroImage,
		"pricing":     p.Pricing,
		"compliance":  p.Compliance,
		"updatedAt":   now,
	}
	if len(p.PreviousSlugs) > 0 {
		set["previousSlugs"] = p.PreviousSlugs
	}
	if p.Seasonal != nil {
		set["seasonal"] = p.Seasonal
	}
	if p.PublishedAt != nil {
		set["publishedAt"] = p.PublishedAt
	}
	return r.Properties.FindOneAndUpdate(ctx,
		bson.M{"ownerId": p.OwnerID},
		bson.M{"$set": set, "$setOnInsert": bson.M{"createdAt": now}}, true)
}

// UpdateByOwner applies a partial update to the owner's property.
func (r *PropertyRepo) UpdateByOwner(ctx context.Context, ownerID string, set bson.M) (*model.Property, error) {
	set["updatedAt"] = time.Now().UTC()
	p, err := r.Properties.FindOneAndUpdate(ctx,
		bson.M{"ownerId": ownerID}, bson.M{"$set": set}, false)
	if errors.Is(err, odm.ErrNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

// ListPublished returns published listings with optional city and maximum
// rent filters for the public browse endpoint.
func (r *PropertyRepo) ListPublished(ctx context.Context, city string, maxRent float64) ([]*model.Property, error) {
	return r.Properties.Find(ctx, publicListFilter(city, maxRent))
}

// List returns all properties for the superadmin dashboard, optionally
// filtered by status.
func (r *PropertyRepo) List(ctx context.Context, status string) ([]*model.Property, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.Properties.Find(ctx, filter)
}
