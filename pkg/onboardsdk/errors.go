package onboardsdk

import (
	"errors"
	"fmt"
)

// APIError is a non-2xx response from the onboarding API. When the server
// rejected the payload on validation, Issues carries the field problems.
type APIError struct {
	StatusCode int     `json:"-"`
	Message    string  `json:"error"`
	Issues     []Issue `json:"issues,omitempty"`
}

func (e *APIError) Error() string {
	if len(e.Issues) > 0 {
		return fmt.Sprintf("%s (%d issues)", e.Message, len(e.Issues))
	}
	return e.Message
}

// AsAPIError extracts an APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// ValidationIssues returns the field issues when the error is a 400-level
// validation rejection, nil otherwise.
func ValidationIssues(err error) []Issue {
	if ae, ok := AsAPIError(err); ok {
		return ae.Issues
	}
	return nil
}
