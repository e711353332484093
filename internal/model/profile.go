package model

import (
	"time"

	"github.com/locaflow/locaflow/internal/odm"
)

// Profile is the public-facing identity attached to a user, upserted from
// the profile step of the onboarding draft at publish/finalize.
type Profile struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"userId" json:"userId"`
	Role        string    `bson:"role" json:"role"`
	DisplayName string    `bson:"displayName" json:"displayName"`
	Phone       string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Company     string    `bson:"company,omitempty" json:"company,omitempty"`
	Locale      string    `bson:"locale,omitempty" json:"locale,omitempty"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProfileSchema declares the profiles collection.
var ProfileSchema = odm.Schema{
	"userId":      {Kind: odm.String, Required: true, Unique: true},
	"role":        {Kind: odm.String, Required: true, Enum: []string{RoleOwner, RoleTenant, RoleSuperadmin}},
	"displayName": {Kind: odm.String, Required: true},
	"phone":       {Kind: odm.String},
	"company":     {Kind: odm.String},
	"locale":      {Kind: odm.String, Default: "fr-FR"},
	"updatedAt":   {Kind: odm.Date},
}

// SeasonalListing is a browsable seasonal offer derived from a published
// property's seasonal period.
type SeasonalListing struct {
	ID         string    `bson:"_id" json:"id"`
	PropertyID string    `bson:"propertyId" json:"propertyId"`
	OwnerID    string    `bson:"ownerId" json:"ownerId"`
	Slug       string    `bson:"slug" json:"slug"`
	Title      string    `bson:"title" json:"title"`
	City       string    `bson:"city" json:"city"`
	From       time.Time `bson:"from" json:"from"`
	To         time.Time `bson:"to" json:"to"`
	NightlyRate float64  `bson:"nightlyRate,omitempty" json:"nightlyRate,omitempty"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SeasonalListingSchema declares the seasonal_listings collection.
var SeasonalListingSchema = odm.Schema{
	"propertyId":  {Kind: odm.String, Required: true, Unique: true},
	"ownerId":     {Kind: odm.String, Required: true},
	"slug":        {Kind: odm.String, Required: true},
	"title":       {Kind: odm.String, Required: true},
	"city":        {Kind: odm.String, Required: true},
	"from":        {Kind: odm.Date, Required: true},
	"to":          {Kind: odm.Date, Required: true},
	"nightlyRate": {Kind: odm.Number},
	"updatedAt":   {Kind: odm.Date},
}
