package onboardsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, saves *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/onboarding/draft", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(draftEnvelope{Draft: &Draft{Status: "draft", Data: map[string]any{}}})
	})
	mux.HandleFunc("PUT /api/onboarding/draft", func(w http.ResponseWriter, r *http.Request) {
		saves.Add(1)
		var body struct {
			Data map[string]any `json:"data"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(draftEnvelope{Draft: &Draft{Status: "draft", Data: body.Data}})
	})
	mux.HandleFunc("POST /api/onboarding/complete", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(CompleteResult{
			RedirectTo:          "/dashboard/owner",
			OnboardingCompleted: true,
		})
	})
	return httptest.NewServer(mux)
}

func TestWizardStepGating(t *testing.T) {
	var saves atomic.Int32
	srv := newTestServer(t, &saves)
	defer srv.Close()

	w, err := NewWizard(NewClient(srv.URL, "token"), RoleOwner)
	require.NoError(t, err)
	defer w.Close()

	require.Equal(t, StepProfile, w.Current().ID)
	w.SetStep(StepProfile, map[string]any{"displayName": "Marc", "phone": "+33600000000"})
	require.Nil(t, w.Next())
	require.Equal(t, StepProperty, w.Current().ID)

	// Missing city blocks forward navigation; the wizard stays put.
	w.SetStep(StepProperty, map[string]any{"title": "Chalet Alpin", "city": ""})
	issues := w.Next()
	require.Len(t, issues, 1)
	require.Equal(t, "property.city", issues[0].Path)
	require.Equal(t, StepProperty, w.Current().ID)

	w.SetStep(StepProperty, map[string]any{"title": "Chalet Alpin", "city": "Megève"})
	require.Nil(t, w.Next())
	require.Equal(t, StepPhotos, w.Current().ID)
}

func TestWizardPreviousNeverBlocks(t *testing.T) {
	var saves atomic.Int32
	srv := newTestServer(t, &saves)
	defer srv.Close()

	w, err := NewWizard(NewClient(srv.URL, "token"), RoleOwner)
	require.NoError(t, err)
	defer w.Close()

	w.SetStep(StepProfile, map[string]any{"displayName": "Marc", "phone": "+33600000000"})
	require.Nil(t, w.Next())

	// Blank out the step we just left, then go back: allowed.
	w.SetStep(StepProfile, map[string]any{})
	w.Previous()
	require.Equal(t, StepProfile, w.Current().ID)
}

func TestWizardOnlyValidatesCurrentStep(t *testing.T) {
	var saves atomic.Int32
	srv := newTestServer(t, &saves)
	defer srv.Close()

	w, err := NewWizard(NewClient(srv.URL, "token"), RoleTenant)
	require.NoError(t, err)
	defer w.Close()

	// The preferences step is untouched and invalid, but leaving the profile
	// step only checks the profile fields.
	w.SetStep(StepProfile, map[string]any{"displayName": "Léa"})
	require.Nil(t, w.Next())
	require.Equal(t, StepPreferences, w.Current().ID)
}

func TestWizardCompleteRequiresPhoto(t *testing.T) {
	var saves atomic.Int32
	srv := newTestServer(t, &saves)
	defer srv.Close()

	w, err := NewWizard(NewClient(srv.URL, "token"), RoleOwner)
	require.NoError(t, err)
	defer w.Close()

	w.SetStep(StepProperty, map[string]any{"title": "Chalet", "city": "Megève"})

	_, err = w.Complete(context.Background())
	require.Error(t, err)
	issues := ValidationIssues(err)
	require.Len(t, issues, 1)
	require.Equal(t, "photos.images", issues[0].Path)
	require.Zero(t, saves.Load(), "rejected publish must not hit the network")
}

func TestWizardCompleteFlushesAndPublishes(t *testing.T) {
	var saves atomic.Int32
	srv := newTestServer(t, &saves)
	defer srv.Close()

	w, err := NewWizard(NewClient(srv.URL, "token"), RoleOwner)
	require.NoError(t, err)
	defer w.Close()

	w.SetStep(StepPhotos, map[string]any{"images": []any{
		map[string]any{"url": "https://cdn.example/1.jpg"},
	}})

	res, err := w.Complete(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/dashboard/owner", res.RedirectTo)
	require.True(t, res.OnboardingCompleted)
	require.Equal(t, int32(1), saves.Load(), "pending auto-save flushed before publish")
}

func TestStepsForUnknownRole(t *testing.T) {
	_, err := StepsForRole("SUPERADMIN")
	require.Error(t, err)
}
