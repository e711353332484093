package onboarding

import (
	"errors"

	"github.com/locaflow/locaflow/internal/odm"
)

// ErrNoPhotos rejects an owner publish without at least one uploaded photo.
// The rule is also enforced client-side by the wizard SDK.
var ErrNoPhotos = errors.New("at least one photo is required to publish")

// ErrUnsupportedRole rejects onboarding operations for roles that have no
// onboarding flow (superadmins).
var ErrUnsupportedRole = errors.New("role has no onboarding flow")

// ValidationError carries the structured field issues from a schema
// rejection; handlers surface them as a 400 body.
type ValidationError struct {
	Issues []odm.Issue
}

func (e *ValidationError) Error() string { return "draft validation failed" }

// AsValidation extracts a ValidationError from an error chain.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
