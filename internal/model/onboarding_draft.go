package model

import (
	"time"

	"github.com/locaflow/locaflow/internal/odm"
)

// Draft lifecycle states. A draft stays "draft" while the wizard auto-saves
// and becomes "ready" when a tenant finalizes; owner drafts are removed at
// publish.
const (
	DraftOpen  = "draft"
	DraftReady = "ready"
)

// OnboardingDraft holds a user's partially validated onboarding form state,
// keyed 1:1 by user id. Data is a free-form step-id to step-payload bag
// validated only at the boundary; every auto-save overwrites it wholesale
// (last-writer-wins, no version vector).
type OnboardingDraft struct {
	ID        string         `bson:"_id" json:"id"`
	UserID    string         `bson:"userId" json:"userId"`
	Role      string         `bson:"role" json:"role"`
	Status    string         `bson:"status" json:"status"`
	Data      map[string]any `bson:"data" json:"data"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// OnboardingDraftSchema declares the onboarding_drafts collection.
var OnboardingDraftSchema = odm.Schema{
	"userId":    {Kind: odm.String, Required: true, Unique: true},
	"role":      {Kind: odm.String, Required: true, Enum: []string{RoleOwner, RoleTenant}},
	"status":    {Kind: odm.String, Default: DraftOpen, Enum: []string{DraftOpen, DraftReady}},
	"data":      {Kind: odm.Object},
	"createdAt": {Kind: odm.Date},
	"updatedAt": {Kind: odm.Date},
}
