package onboarding

import (
	"encoding/json"
	"fmt"

	"github.com/locaflow/locaflow/internal/model"
	"github.com/locaflow/locaflow/internal/odm"
)

// The draft payload is a bag keyed by step id. Each role has one schema used
// in two tiers: deep-partial for auto-saved drafts (any subset of fields is
// accepted) and strict for publish/finalize (required fields enforced).

// OwnerDraftSchema describes a complete owner onboarding form.
var OwnerDraftSchema = odm.Schema{
	"profile": {Kind: odm.Object, Required: true, Fields: odm.Schema{
		"displayName": {Kind: odm.String, Required: true},
		"phone":       {Kind: odm.String},
		"company":     {Kind: odm.String},
	}},
	"property": {Kind: odm.Object, Required: true, Fields: odm.Schema{
		"title":       {Kind: odm.String, Required: true},
		"description": {Kind: odm.String},
		"city":        {Kind: odm.String, Required: true},
		"address":     {Kind: odm.String},
		"kind":        {Kind: odm.String, Enum: []string{"apartment", "house", "studio", "chalet", "room"}},
		"surface":     {Kind: odm.Number},
		"bedrooms":    {Kind: odm.Number},
	}},
	"photos": {Kind: odm.Object, Required: true, Fields: odm.Schema{
		"images": {Kind: odm.Array, Required: true, Elem: &odm.Field{Kind: odm.Object, Fields: odm.Schema{
			"url":    {Kind: odm.String, Required: true},
			"alt":    {Kind: odm.String},
			"isHero": {Kind: odm.Bool},
		}}},
	}},
	"season": {Kind: odm.Object, Fields: odm.Schema{
		"enabled":     {Kind: odm.Bool},
		"from":        {Kind: odm.Date},
		"to":          {Kind: odm.Date},
		"nightlyRate": {Kind: odm.Number},
	}},
	"pricing": {Kind: odm.Object, Required: true, Fields: odm.Schema{
		"monthlyRent": {Kind: odm.Number, Required: true},
		"deposit":     {Kind: odm.Number},
		"charges":     {Kind: odm.Number},
		"currency":    {Kind: odm.String},
	}},
	"compliance": {Kind: odm.Object, Required: true, Fields: odm.Schema{
		"energyClass":     {Kind: odm.String, Enum: []string{"A", "B", "C", "D", "E", "F", "G"}},
		"gasCertificate":  {Kind: odm.Bool},
		"smokeDetectors":  {Kind: odm.Bool, Required: true},
		"insuranceNumber": {Kind: odm.String},
	}},
}

// TenantDraftSchema describes a complete tenant onboarding form.
var TenantDraftSchema = odm.Schema{
	"profile": {Kind: odm.Object, Required: true, Fields: odm.Schema{
		"displayName": {Kind: odm.String, Required: true},
		"phone":       {Kind: odm.String},
	}},
	"preferences": {Kind: odm.Object, Required: true, Fields: odm.Schema{
		"cities":     {Kind: odm.Array, Required: true, Elem: &odm.Field{Kind: odm.String}},
		"maxRent":    {Kind: odm.Number, Required: true},
		"minSurface": {Kind: odm.Number},
		"bedrooms":   {Kind: odm.Number},
		"furnished":  {Kind: odm.Bool},
		"moveInFrom": {Kind: odm.Date},
	}},
}

// SchemaForRole returns the draft schema for a role, or an error for roles
// that have no onboarding flow.
func SchemaForRole(role string) (odm.Schema, error) {
	switch role {
	case model.RoleOwner:
		return OwnerDraftSchema, nil
	case model.RoleTenant:
		return TenantDraftSchema, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRole, role)
	}
}

// ValidateDraft checks a partial draft against the role's deep-partial
// schema.
func ValidateDraft(role string, data map[string]any) ([]odm.Issue, error) {
	s, err := SchemaForRole(role)
	if err != nil {
		return nil, err
	}
	return s.Validate(data, true), nil
}

// ValidateComplete checks a draft against the role's strict schema, as
// required before publish/finalize.
func ValidateComplete(role string, data map[string]any) ([]odm.Issue, error) {
	s, err := SchemaForRole(role)
	if err != nil {
		return nil, err
	}
	return s.Validate(data, false), nil
}

// Typed views of the two draft shapes, decoded from the step bag once it has
// passed strict validation.

type OwnerDraft struct {
	Profile struct {
		DisplayName string `json:"displayName"`
		Phone       string `json:"phone"`
		Company     string `json:"company"`
	} `json:"profile"`
	Property struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		City        string  `json:"city"`
		Address     string  `json:"address"`
		Kind        string  `json:"kind"`
		Surface     float64 `json:"surface"`
		Bedrooms    int     `json:"bedrooms"`
	} `json:"property"`
	Photos struct {
		Images []model.PropertyImage `json:"images"`
	} `json:"photos"`
	Season struct {
		Enabled     bool    `json:"enabled"`
		From        string  `json:"from"`
		To          string  `json:"to"`
		NightlyRate float64 `json:"nightlyRate"`
	} `json:"season"`
	Pricing struct {
		MonthlyRent float64 `json:"monthlyRent"`
		Deposit     float64 `json:"deposit"`
		Charges     float64 `json:"charges"`
		Currency    string  `json:"currency"`
	} `json:"pricing"`
	Compliance struct {
		EnergyClass     string `json:"energyClass"`
		GasCertificate  bool   `json:"gasCertificate"`
		SmokeDetectors  bool   `json:"smokeDetectors"`
		InsuranceNumber string `json:"insuranceNumber"`
	} `json:"compliance"`
}

type TenantDraft struct {
	Profile struct {
		DisplayName string `json:"displayName"`
		Phone       string `json:"phone"`
	} `json:"profile"`
	Preferences struct {
		Cities     []string `json:"cities"`
		MaxRent    float64  `json:"maxRent"`
		MinSurface float64  `json:"minSurface"`
		Bedrooms   int      `json:"bedrooms"`
		Furnished  bool     `json:"furnished"`
		MoveInFrom string   `json:"moveInFrom"`
	} `json:"preferences"`
}

// decodeInto converts the step bag into a typed draft view via a JSON
// round-trip.
func decodeInto(data map[string]any, dst any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
