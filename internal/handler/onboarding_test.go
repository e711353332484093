package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/locaflow/locaflow/internal/model"
	"github.com/locaflow/locaflow/internal/onboarding"
	"github.com/locaflow/locaflow/internal/repository"
)

// Without the JWT middleware having set user_id, the draft endpoints must
// refuse before touching any repository (the handler below has none wired).
func TestDraftEndpointsRequireAuth(t *testing.T) {
	h := &OnboardingHandler{}
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/onboarding/draft", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.GetDraft(e.NewContext(req, rec)))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPut, "/api/onboarding/draft",
		strings.NewReader(`{"data":{}}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	require.NoError(t, h.SaveDraft(e.NewContext(req, rec)))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// In-memory stores behind the onboarding service, enough for the tenant
// finalize path and the owner photo rule.

type stubUsers struct {
	user      *model.User
	completed map[string]bool
}

func (s *stubUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubUsers) CompleteOnboarding(_ context.Context, id string) error {
	s.completed[id] = true
	return nil
}

type stubDrafts struct {
	byUser map[string]*model.OnboardingDraft
}

func (s *stubDrafts) Upsert(_ context.Context, userID, role string, data map[string]any) (*model.OnboardingDraft, error) {
	d := &model.OnboardingDraft{UserID: userID, Role: role, Status: model.DraftOpen, Data: data}
	s.byUser[userID] = d
	return d, nil
}

func (s *stubDrafts) SetStatus(_ context.Context, userID, status string) (*model.OnboardingDraft, error) {
	d := s.byUser[userID]
	d.Status = status
	return d, nil
}

func (s *stubDrafts) Get(_ context.Context, userID string) (*model.OnboardingDraft, error) {
	return s.byUser[userID], nil
}

func (s *stubDrafts) Delete(_ context.Context, userID string) error {
	delete(s.byUser, userID)
	return nil
}

type stubProfiles struct{}

func (stubProfiles) Upsert(_ context.Context, p *model.Profile) (*model.Profile, error) {
	return p, nil
}

type stubPreferences struct{}

func (stubPreferences) Upsert(_ context.Context, p *model.TenantPreference) (*model.TenantPreference, error) {
	return p, nil
}

func completeRequest(e *echo.Echo, body string, uid string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/onboarding/complete", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uid)
	return c, rec
}

// A successful finalize must tell the client outright that onboarding is
// done; the flag in the body saves a follow-up profile fetch.
func TestCompleteResponseCarriesOnboardingFlag(t *testing.T) {
	users := &stubUsers{
		user:      &model.User{ID: "t1", Role: model.RoleTenant},
		completed: map[string]bool{},
	}
	drafts := &stubDrafts{byUser: map[string]*model.OnboardingDraft{}}
	svc := onboarding.NewService(users, nil, drafts, stubProfiles{}, stubPreferences{}, nil, nil, nil)
	h := &OnboardingHandler{Users: users, Service: svc}
	e := echo.New()

	c, rec := completeRequest(e, `{"data":{
		"profile": {"displayName": "Léa Martin"},
		"preferences": {"cities": ["Lyon"], "maxRent": 900}
	}}`, "t1")
	require.NoError(t, h.Complete(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, true, body["onboardingCompleted"])
	require.Equal(t, "/dashboard/tenant", body["redirectTo"])
	require.True(t, users.completed["t1"])
}

// An owner completing with an empty photo list gets the dedicated photo
// message, even though sanitization strips the empty step from the payload
// before validation.
func TestCompleteZeroPhotosMessage(t *testing.T) {
	users := &stubUsers{
		user:      &model.User{ID: "o1", Role: model.RoleOwner},
		completed: map[string]bool{},
	}
	svc := onboarding.NewService(users, nil, nil, nil, nil, nil, nil, nil)
	h := &OnboardingHandler{Users: users, Service: svc}
	e := echo.New()

	c, rec := completeRequest(e, `{"data":{
		"profile": {"displayName": "Marc Aubry"},
		"property": {"title": "Chalet Alpin", "city": "Megève"},
		"photos": {"images": []},
		"pricing": {"monthlyRent": 2400},
		"compliance": {"smokeDetectors": true}
	}}`, "o1")
	require.NoError(t, h.Complete(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "at least one photo is required to publish", body["error"])
	require.False(t, users.completed["o1"], "onboarding flag untouched on rejection")
}

func TestLoginLimiter(t *testing.T) {
	l := &loginLimiter{attempts: map[string]*loginAttempt{}, maxFailures: 3, cooldown: time.Minute}

	require.False(t, l.Blocked("a@example.com"))
	l.Fail("a@example.com")
	l.Fail("a@example.com")
	require.False(t, l.Blocked("a@example.com"))
	l.Fail("a@example.com")
	require.True(t, l.Blocked("a@example.com"))

	l.Clear("a@example.com")
	require.False(t, l.Blocked("a@example.com"))
}
