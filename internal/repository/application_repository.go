package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/locaflow/locaflow/internal/model"
	"github.com/locaflow/locaflow/internal/odm"
)

// ApplicationRepo persists rental applications.
type ApplicationRepo struct{ Applications *odm.Model[model.Application] }

func NewApplicationRepo(apps *odm.Model[model.Application]) *ApplicationRepo {
	return &ApplicationRepo{Applications: apps}
}

// Create inserts a pending application for the tenant.
func (r *ApplicationRepo) Create(ctx context.Context, tenantID, propertyID, message string) (*model.Application, error) {
	now := time.Now().UTC()
	a := model.Application{
		PropertyID: propertyID,
		TenantID:   tenantID,
		Status:     model.ApplicationPending,
		Message:    message,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := r.Applications.Create(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByTenant returns the tenant's applications.
func (r *ApplicationRepo) ListByTenant(ctx context.Context, tenantID string) ([]*model.Application, error) {
	return r.Applications.Find(ctx, bson.M{"tenantId": tenantID})
}

// ListByProperty returns all applications for a property, for the owning
// landlord's dashboard.
func (r *ApplicationRepo) ListByProperty(ctx context.Context, propertyID string) ([]*model.Application, error) {
	return r.Applications.Find(ctx, bson.M{"propertyId": propertyID})
}

// HasPending reports whether the tenant already has a pending application
// for the property.
func (r *ApplicationRepo) HasPending(ctx context.Context, tenantID, propertyID string) (bool, error) {
	n, err := r.Applications.CountDocuments(ctx, bson.M{
		"tenantId":   tenantID,
		"propertyId": propertyID,
		"status":     model.ApplicationPending,
	})
	return n > 0, err
}

// SetStatus moves an application to a new status, checking that it belongs
// to the given property so owners cannot touch other landlords' applications.
func (r *ApplicationRepo) SetStatus(ctx context.Context, id, propertyID, status string) (*model.Application, error) {
	a, err := r.Applications.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "propertyId": propertyID},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}, false)
	if errors.Is(err, odm.ErrNotFound) {
		return nil, ErrNotFound
	}
	return a, err
}
