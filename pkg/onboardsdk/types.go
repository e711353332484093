package onboardsdk

import "time"

// Roles understood by the onboarding API.
const (
	RoleOwner  = "OWNER"
	RoleTenant = "TENANT"
)

// Step ids for the owner flow, in wizard order.
const (
	StepProfile    = "profile"
	StepProperty   = "property"
	StepPhotos     = "photos"
	StepSeason     = "season"
	StepPricing    = "pricing"
	StepCompliance = "compliance"
	StepReview     = "review"
)

// Step ids for the tenant flow.
const (
	StepPreferences = "preferences"
)

// Issue is one field-level validation problem reported by the server or by
// the wizard's own step checks.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Draft mirrors the server's stored draft document.
type Draft struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Role      string         `json:"role"`
	Status    string         `json:"status"`
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type draftEnvelope struct {
	Draft *Draft `json:"draft"`
}

// CompleteResult is the server's response to a successful publish or
// finalize, including where the client should navigate next. The
// OnboardingCompleted flag lets the client flip its UI state without a
// follow-up profile fetch.
type CompleteResult struct {
	Draft               *Draft         `json:"draft"`
	Property            map[string]any `json:"property,omitempty"`
	RedirectTo          string         `json:"redirectTo"`
	OnboardingCompleted bool           `json:"onboardingCompleted"`
}
