package model

import (
	"time"

	"github.com/locaflow/locaflow/internal/odm"
)

// Property lifecycle states.
const (
	PropertyDraft     = "draft"
	PropertyPublished = "published"
	PropertyArchived  = "archived"
)

// PropertyImage is one photo of a listing. At most one image per property is
// the hero; the publish transition normalizes the flags.
type PropertyImage struct {
	URL    string `bson:"url" json:"url"`
	Alt    string `bson:"alt,omitempty" json:"alt,omitempty"`
	IsHero bool   `bson:"isHero" json:"isHero"`
}

// PropertyPricing holds the rental pricing block of a listing.
type PropertyPricing struct {
	MonthlyRent float64 `bson:"monthlyRent" json:"monthlyRent"`
	Deposit     float64 `bson:"deposit,omitempty" json:"deposit,omitempty"`
	Charges     float64 `bson:"charges,omitempty" json:"charges,omitempty"`
	Currency    string  `bson:"currency,omitempty" json:"currency,omitempty"`
}

// PropertyCompliance records the regulatory attestations for a listing.
type PropertyCompliance struct {
	EnergyClass     string `bson:"energyClass,omitempty" json:"energyClass,omitempty"`
	GasCertificate  bool   `bson:"gasCertificate" json:"gasCertificate"`
	SmokeDetectors  bool   `bson:"smokeDetectors" json:"smokeDetectors"`
	InsuranceNumber string `bson:"insuranceNumber,omitempty" json:"insuranceNumber,omitempty"`
}

// SeasonalPeriod bounds the part of the year a property is offered.
type SeasonalPeriod struct {
	From time.Time `bson:"from" json:"from"`
	To   time.Time `bson:"to" json:"to"`
}

// Property is a rental listing owned by one owner user. Slug is globally
// unique; previous slugs are preserved so old links keep resolving.
type Property struct {
	ID            string              `bson:"_id" json:"id"`
	OwnerID       string              `bson:"ownerId" json:"ownerId"`
	Title         string              `bson:"title" json:"title"`
	Description   string              `bson:"description,omitempty" json:"description,omitempty"`
	City          string              `bson:"city" json:"city"`
	Address       string              `bson:"address,omitempty" json:"address,omitempty"`
	Kind          string              `bson:"kind,omitempty" json:"kind,omitempty"`
	Surface       float64             `bson:"surface,omitempty" json:"surface,omitempty"`
	Bedrooms      int                 `bson:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	Slug          string              `bson:"slug" json:"slug"`
	PreviousSlugs []string            `bson:"previousSlugs,omitempty" json:"previousSlugs,omitempty"`
	Status        string              `bson:"status" json:"status"`
	Images        []PropertyImage     `bson:"images,omitempty" json:"images,omitempty"`
	HeroImage     string              `bson:"heroImage,omitempty" json:"heroImage,omitempty"`
	Pricing       PropertyPricing     `bson:"pricing" json:"pricing"`
	Compliance    PropertyCompliance  `bson:"compliance" json:"compliance"`
	Seasonal      *SeasonalPeriod     `bson:"seasonal,omitempty" json:"seasonal,omitempty"`
	PublishedAt   *time.Time          `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// Hero returns the image flagged as hero, falling back to the first image.
func (p *Property) Hero() *PropertyImage {
	for i := range p.Images {
		if p.Images[i].IsHero {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}

// PropertySchema declares the properties collection.
var PropertySchema = odm.Schema{
	"ownerId":     {Kind: odm.String, Required: true},
	"title":       {Kind: odm.String, Required: true},
	"description": {Kind: odm.String},
	"city":        {Kind: odm.String, Required: true},
	"address":     {Kind: odm.String},
	"kind":        {Kind: odm.String},
	"surface":     {Kind: odm.Number},
	"bedrooms":    {Kind: odm.Number},
	"slug":        {Kind: odm.String, Required: true, Unique: true},
	"previousSlugs": {Kind: odm.Array, Elem: &odm.Field{Kind: odm.String}},
	"status": {Kind: odm.String, Required: true, Default: PropertyDraft,
		Enum: []string{PropertyDraft, PropertyPublished, PropertyArchived}},
	"images": {Kind: odm.Array, Elem: &odm.Field{Kind: odm.Object, Fields: odm.Schema{
		"url":    {Kind: odm.String, Required: true},
		"alt":    {Kind: odm.String},
		"isHero": {Kind: odm.Bool},
	}}},
	"heroImage": {Kind: odm.String},
	"pricing": {Kind: odm.Object, Fields: odm.Schema{
		"monthlyRent": {Kind: odm.Number, Required: true},
		"deposit":     {Kind: odm.Number},
		"charges":     {Kind: odm.Number},
		"currency":    {Kind: odm.String},
	}},
	"compliance": {Kind: odm.Object, Fields: odm.Schema{
		"energyClass":     {Kind: odm.String},
		"gasCertificate":  {Kind: odm.Bool},
		"smokeDetectors":  {Kind: odm.Bool},
		"insuranceNumber": {Kind: odm.String},
	}},
	"seasonal": {Kind: odm.Object, Fields: odm.Schema{
		"from": {Kind: odm.Date, Required: true},
		"to":   {Kind: odm.Date, Required: true},
	}},
	"publishedAt": {Kind: odm.Date},
	"createdAt":   {Kind: odm.Date},
	"updatedAt":   {Kind: odm.Date},
}
