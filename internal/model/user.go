package model

import (
	"time"

	"github.com/locaflow/locaflow/internal/odm"
)

// Roles a user account can hold. Role is fixed at signup; there is no
// role-change path.
const (
	RoleOwner      = "OWNER"
	RoleTenant     = "TENANT"
	RoleSuperadmin = "SUPERADMIN"
)

// User is an application account. OnboardingCompleted flips to true exactly
// once, at successful publish/finalize of the onboarding draft.
type User struct {
	ID                  string    `bson:"_id" json:"id"`
	Email               string    `bson:"email" json:"email"`
	PasswordHash        string    `bson:"passwordHash" json:"-"`
	Role                string    `bson:"role" json:"role"`
	OnboardingCompleted bool      `bson:"onboardingCompleted" json:"onboardingCompleted"`
	IsActive            bool      `bson:"isActive" json:"isActive"`
	CreatedAt           time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time `bson:"updatedAt" json:"updatedAt"`
}

// UserSchema declares the users collection.
var UserSchema = odm.Schema{
	"email":               {Kind: odm.String, Required: true, Unique: true},
	"passwordHash":        {Kind: odm.String, Required: true},
	"role":                {Kind: odm.String, Required: true, Enum: []string{RoleOwner, RoleTenant, RoleSuperadmin}},
	"onboardingCompleted": {Kind: odm.Bool, Default: false},
	"isActive":            {Kind: odm.Bool, Default: true},
	"createdAt":           {Kind: odm.Date},
	"updatedAt":           {Kind: odm.Date},
}

// RefreshToken stores the SHA-256 hash of an issued refresh token. The plain
// token value never touches the database.
type RefreshToken struct {
	ID        string     `bson:"_id" json:"id"`
	UserID    string     `bson:"userId" json:"userId"`
	TokenHash string     `bson:"tokenHash" json:"-"`
	ExpiresAt time.Time  `bson:"expiresAt" json:"expiresAt"`
	RevokedAt *time.Time `bson:"revokedAt,omitempty" json:"revokedAt,omitempty"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
}

// RefreshTokenSchema declares the refresh_tokens collection.
var RefreshTokenSchema = odm.Schema{
	"userId":    {Kind: odm.String, Required: true},
	"tokenHash": {Kind: odm.String, Required: true, Unique: true},
	"expiresAt": {Kind: odm.Date, Required: true},
	"revokedAt": {Kind: odm.Date},
	"createdAt": {Kind: odm.Date},
}
