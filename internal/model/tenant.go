package model

import (
	"time"

	"github.com/locaflow/locaflow/internal/odm"
)

// Application statuses.
const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
	ApplicationWithdrawn = "withdrawn"
)

// Application is a tenant's rental application for a property. References
// are plain ids; the document store enforces no referential integrity.
type Application struct {
	ID         string    `bson:"_id" json:"id"`
	PropertyID string    `bson:"propertyId" json:"propertyId"`
	TenantID   string    `bson:"tenantId" json:"tenantId"`
	Status     string    `bson:"status" json:"status"`
	Message    string    `bson:"message,omitempty" json:"message,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ApplicationSchema declares the applications collection.
var ApplicationSchema = odm.Schema{
	"propertyId": {Kind: odm.String, Required: true},
	"tenantId":   {Kind: odm.String, Required: true},
	"status": {Kind: odm.String, Required: true, Default: ApplicationPending,
		Enum: []string{ApplicationPending, ApplicationAccepted, ApplicationRejected, ApplicationWithdrawn}},
	"message":   {Kind: odm.String},
	"createdAt": {Kind: odm.Date},
	"updatedAt": {Kind: odm.Date},
}

// TenantPreference records a tenant's search criteria, one document per
// tenant.
type TenantPreference struct {
	ID         string    `bson:"_id" json:"id"`
	TenantID   string    `bson:"tenantId" json:"tenantId"`
	Cities     []string  `bson:"cities,omitempty" json:"cities,omitempty"`
	MaxRent    float64   `bson:"maxRent,omitempty" json:"maxRent,omitempty"`
	MinSurface float64   `bson:"minSurface,omitempty" json:"minSurface,omitempty"`
	Bedrooms   int       `bson:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	Furnished  bool      `bson:"furnished" json:"furnished"`
	MoveInFrom *time.Time `bson:"moveInFrom,omitempty" json:"moveInFrom,omitempty"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TenantPreferenceSchema declares the tenant_preferences collection.
var TenantPreferenceSchema = odm.Schema{
	"tenantId":   {Kind: odm.String, Required: true, Unique: true},
	"cities":     {Kind: odm.Array, Elem: &odm.Field{Kind: odm.String}},
	"maxRent":    {Kind: odm.Number},
	"minSurface": {Kind: odm.Number},
	"bedrooms":   {Kind: odm.Number},
	"furnished":  {Kind: odm.Bool, Default: false},
	"moveInFrom": {Kind: odm.Date},
	"updatedAt":  {Kind: odm.Date},
}
