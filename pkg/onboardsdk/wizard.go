package onboardsdk

import (
	"context"
	"fmt"
	"strings"
)

// Step is one screen of the wizard. Required lists dot paths into the draft
// data that must be filled before Next() leaves the step; the same fields
// are enforced server-side at completion, so passing a step is a preview,
// not a promise.
type Step struct {
	ID       string
	Title    string
	Required []string
}

// OwnerSteps is the owner flow in order. The review step has no fields of
// its own; it exists so the client renders a summary before publishing.
var OwnerSteps = []Step{
	{ID: StepProfile, Title: "Your details", Required: []string{"profile.displayName", "profile.phone"}},
	{ID: StepProperty, Title: "The property", Required: []string{"property.title", "property.city"}},
	{ID: StepPhotos, Title: "Photos", Required: []string{"photos.images"}},
	{ID: StepSeason, Title: "Seasonal availability"},
	{ID: StepPricing, Title: "Pricing", Required: []string{"pricing.monthlyRent"}},
	{ID: StepCompliance, Title: "Compliance"},
	{ID: StepReview, Title: "Review & publish"},
}

// TenantSteps is the tenant flow in order.
var TenantSteps = []Step{
	{ID: StepProfile, Title: "Your details", Required: []string{"profile.displayName"}},
	{ID: StepPreferences, Title: "What you're looking for", Required: []string{"preferences.cities"}},
	{ID: StepReview, Title: "Review & finish"},
}

// StepsForRole returns the wizard flow for a role.
func StepsForRole(role string) ([]Step, error) {
	switch role {
	case RoleOwner:
		return OwnerSteps, nil
	case RoleTenant:
		return TenantSteps, nil
	default:
		return nil, fmt.Errorf("no onboarding flow for role %q", role)
	}
}

// Wizard drives a user through their onboarding flow. It holds the draft
// data locally, auto-saves edits through the client, and gates forward
// navigation on the current step's required fields. Backward navigation is
// never blocked.
type Wizard struct {
	client *Client
	steps  []Step
	idx    int
	data   map[string]any
	saver  *autosaver
}

// NewWizard builds a wizard for the role. Call Load to pull any previously
// saved draft before rendering the first step.
func NewWizard(client *Client, role string) (*Wizard, error) {
	steps, err := StepsForRole(role)
	if err != nil {
		return nil, err
	}
	return &Wizard{
		client: client,
		steps:  steps,
		data:   map[string]any{},
		saver:  newAutosaver(client, defaultAutosaveDelay),
	}, nil
}

// Load pulls the stored draft so a returning user resumes where they left
// off.
func (w *Wizard) Load(ctx context.Context) error {
	d, err := w.client.GetDraft(ctx)
	if err != nil {
		return err
	}
	if d != nil && d.Data != nil {
		w.data = d.Data
	}
	return nil
}

// Current returns the step the wizard is on.
func (w *Wizard) Current() Step { return w.steps[w.idx] }

// Data returns the wizard's working draft data.
func (w *Wizard) Data() map[string]any { return w.data }

// SetStep replaces one step's payload and schedules an auto-save. Invalid
// intermediate states are fine; the save is permissive.
func (w *Wizard) SetStep(stepID string, payload map[string]any) {
	w.data[stepID] = payload
	w.saver.Schedule(w.data)
}

// Next validates only the current step's required fields and advances when
// they are all filled. Later steps are not checked; the user fills them in
// turn.
func (w *Wizard) Next() []Issue {
	issues := w.checkStep(w.Current())
	if len(issues) > 0 {
		return issues
	}
	if w.idx < len(w.steps)-1 {
		w.idx++
	}
	return nil
}

// Previous steps back. It always succeeds; revisiting an earlier step never
// requires the later ones to be valid.
func (w *Wizard) Previous() {
	if w.idx > 0 {
		w.idx--
	}
}

// Complete flushes any pending auto-save and runs the terminal transition.
// For owners the photo rule is pre-checked locally so the common mistake
// fails before the network call; the server enforces it regardless.
func (w *Wizard) Complete(ctx context.Context) (*CompleteResult, error) {
	if hasStep(w.steps, StepPhotos) && countImages(w.data) == 0 {
		return nil, &APIError{
			StatusCode: 400,
			Message:    "at least one photo is required to publish",
			Issues:     []Issue{{Path: "photos.images", Message: "at least one photo is required"}},
		}
	}
	if err := w.saver.Flush(ctx); err != nil {
		return nil, err
	}
	return w.client.Complete(ctx, w.data)
}

// Close stops the pending auto-save timer, if any.
func (w *Wizard) Close() { w.saver.Stop() }

func (w *Wizard) checkStep(s Step) []Issue {
	var issues []Issue
	for _, path := range s.Required {
		if isEmpty(lookup(w.data, path)) {
			issues = append(issues, Issue{Path: path, Message: "required"})
		}
	}
	return issues
}

func hasStep(steps []Step, id string) bool {
	for _, s := range steps {
		if s.ID == id {
			return true
		}
	}
	return false
}

func countImages(data map[string]any) int {
	v := lookup(data, "photos.images")
	if arr, ok := v.([]any); ok {
		return len(arr)
	}
	return 0
}

// lookup walks a dot path through nested maps, returning nil when any hop
// is missing.
func lookup(data map[string]any, path string) any {
	parts := strings.Split(path, ".")
	var cur any = data
	for _, p := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[p]
	}
	return cur
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}
