package onboarding

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/locaflow/locaflow/internal/model"
	"github.com/locaflow/locaflow/internal/queue"
)

// In-memory stores standing in for the repositories.

type fakeUsers struct {
	completed map[string]bool
}

func (f *fakeUsers) CompleteOnboarding(_ context.Context, id string) error {
	if f.completed == nil {
		f.completed = map[string]bool{}
	}
	f.completed[id] = true
	return nil
}

type fakeProperties struct {
	byOwner map[string]*model.Property
	taken   map[string]bool // slugs held by other properties
	nextID  int
}

func (f *fakeProperties) GetByOwner(_ context.Context, ownerID string) (*model.Property, error) {
	return f.byOwner[ownerID], nil
}

func (f *fakeProperties) SlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	if f.taken[slug] {
		return true, nil
	}
	for _, p := range f.byOwner {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProperties) Upsert(_ context.Context, p *model.Property) (*model.Property, error) {
	if f.byOwner == nil {
		f.byOwner = map[string]*model.Property{}
	}
	stored := *p
	if existing, ok := f.byOwner[p.OwnerID]; ok {
		stored.ID = existing.ID
	} else {
		f.nextID++
		stored.ID = "prop-" + string(rune('0'+f.nextID))
	}
	f.byOwner[p.OwnerID] = &stored
	return &stored, nil
}

type fakeDrafts struct {
	byUser map[string]*model.OnboardingDraft
}

func (f *fakeDrafts) Upsert(_ context.Context, userID, role string, data map[string]any) (*model.OnboardingDraft, error) {
	if f.byUser == nil {
		f.byUser = map[string]*model.OnboardingDraft{}
	}
	d := &model.OnboardingDraft{UserID: userID, Role: role, Status: model.DraftOpen, Data: data}
	f.byUser[userID] = d
	return d, nil
}

func (f *fakeDrafts) SetStatus(_ context.Context, userID, status string) (*model.OnboardingDraft, error) {
	d := f.byUser[userID]
	d.Status = status
	return d, nil
}

func (f *fakeDrafts) Get(_ context.Context, userID string) (*model.OnboardingDraft, error) {
	return f.byUser[userID], nil
}

func (f *fakeDrafts) Delete(_ context.Context, userID string) error {
	delete(f.byUser, userID)
	return nil
}

type fakeProfiles struct{ saved []*model.Profile }

func (f *fakeProfiles) Upsert(_ context.Context, p *model.Profile) (*model.Profile, error) {
	f.saved = append(f.saved, p)
	return p, nil
}

type fakePreferences struct{ saved *model.TenantPreference }

func (f *fakePreferences) Upsert(_ context.Context, p *model.TenantPreference) (*model.TenantPreference, error) {
	f.saved = p
	return p, nil
}

type fakeSeasonal struct {
	byProperty map[string]*model.SeasonalListing
}

func (f *fakeSeasonal) UpsertForProperty(_ context.Context, l *model.SeasonalListing) (*model.SeasonalListing, error) {
	if f.byProperty == nil {
		f.byProperty = map[string]*model.SeasonalListing{}
	}
	f.byProperty[l.PropertyID] = l
	return l, nil
}

func (f *fakeSeasonal) DeleteForProperty(_ context.Context, propertyID string) error {
	delete(f.byProperty, propertyID)
	return nil
}

type fakeEvents struct{ published []queue.AuditEvent }

func (f *fakeEvents) Publish(_ context.Context, ev queue.AuditEvent) error {
	f.published = append(f.published, ev)
	return nil
}

type world struct {
	users  *fakeUsers
	props  *fakeProperties
	drafts *fakeDrafts
	prof   *fakeProfiles
	prefs  *fakePreferences
	season *fakeSeasonal
	events *fakeEvents
	svc    *Service
}

func newWorld(t *testing.T) *world {
	t.Helper()
	w := &world{
		users:  &fakeUsers{},
		props:  &fakeProperties{},
		drafts: &fakeDrafts{},
		prof:   &fakeProfiles{},
		prefs:  &fakePreferences{},
		season: &fakeSeasonal{},
		events: &fakeEvents{},
	}
	w.svc = NewService(w.users, w.props, w.drafts, w.prof, w.prefs, w.season, w.events, nil)
	w.svc.now = func() time.Time { return time.UnixMilli(1700000000000).UTC() }
	return w
}

func ownerDraftData() map[string]any {
	return map[string]any{
		"profile": map[string]any{"displayName": "Marc Dubois", "phone": "+33 6 12 34 56 78"},
		"property": map[string]any{
			"title":    "Chalet Alpin à Megève",
			"city":     "Megève",
			"kind":     "chalet",
			"surface":  120.0,
			"bedrooms": 4.0,
		},
		"photos": map[string]any{"images": []any{
			map[string]any{"url": "https://cdn.example/1.jpg"},
			map[string]any{"url": "https://cdn.example/2.jpg"},
		}},
		"pricing":    map[string]any{"monthlyRent": 2400.0, "currency": "EUR"},
		"compliance": map[string]any{"smokeDetectors": true, "energyClass": "C"},
	}
}

func owner() *model.User {
	return &model.User{ID: "u1", Email: "marc@example.com", Role: model.RoleOwner}
}

func TestPublishOwnerHappyPath(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	res, err := w.svc.Complete(ctx, owner(), ownerDraftData())
	require.NoError(t, err)
	require.Equal(t, "/dashboard/owner", res.RedirectTo)

	p := res.Property
	require.NotNil(t, p)
	require.Equal(t, "chalet-alpin-a-megeve", p.Slug)
	require.Equal(t, model.PropertyPublished, p.Status)
	require.NotNil(t, p.PublishedAt)

	// No image was flagged as hero, so the first photo becomes it.
	require.Equal(t, "https://cdn.example/1.jpg", p.HeroImage)
	require.True(t, p.Images[0].IsHero)
	require.False(t, p.Images[1].IsHero)

	require.True(t, w.users.completed["u1"])
	require.NotContains(t, w.drafts.byUser, "u1", "draft purged after publish")

	actions := []string{w.events.published[0].Action, w.events.published[1].Action}
	require.ElementsMatch(t, actions, []string{queue.ActionPropertyPublished, queue.ActionOnboardingCompleted})
}

func TestPublishOwnerRespectsHeroFlag(t *testing.T) {
	w := newWorld(t)
	data := ownerDraftData()
	data["photos"] = map[string]any{"images": []any{
		map[string]any{"url": "https://cdn.example/1.jpg"},
		map[string]any{"url": "https://cdn.example/2.jpg", "isHero": true},
	}}

	res, err := w.svc.Complete(context.Background(), owner(), data)
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example/2.jpg", res.Property.HeroImage)
	require.False(t, res.Property.Images[0].IsHero)
	require.True(t, res.Property.Images[1].IsHero)
}

func TestPublishOwnerIsIdempotent(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	first, err := w.svc.Complete(ctx, owner(), ownerDraftData())
	require.NoError(t, err)
	second, err := w.svc.Complete(ctx, owner(), ownerDraftData())
	require.NoError(t, err)

	require.Equal(t, first.Property.ID, second.Property.ID, "same owner keeps the same property")
	require.Equal(t, first.Property.Slug, second.Property.Slug, "unchanged title keeps the slug")
	require.Equal(t, first.Property.PublishedAt, second.Property.PublishedAt, "publishedAt survives a republish")
	require.Len(t, w.props.byOwner, 1)
}

func TestPublishOwnerSlugCollision(t *testing.T) {
	w := newWorld(t)
	w.props.taken = map[string]bool{"chalet-alpin-a-megeve": true}

	res, err := w.svc.Complete(context.Background(), owner(), ownerDraftData())
	require.NoError(t, err)
	require.NotEqual(t, "chalet-alpin-a-megeve", res.Property.Slug)
	require.Contains(t, res.Property.Slug, "chalet-alpin-a-megeve-")
}

func TestPublishOwnerRetitleKeepsOldSlug(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	_, err := w.svc.Complete(ctx, owner(), ownerDraftData())
	require.NoError(t, err)

	data := ownerDraftData()
	data["property"].(map[string]any)["title"] = "Grand Chalet Savoyard"
	res, err := w.svc.Complete(ctx, owner(), data)
	require.NoError(t, err)

	require.Equal(t, "grand-chalet-savoyard", res.Property.Slug)
	require.Contains(t, res.Property.PreviousSlugs, "chalet-alpin-a-megeve")
}

func TestPublishOwnerRequiresPhotos(t *testing.T) {
	w := newWorld(t)
	data := ownerDraftData()
	data["photos"] = map[string]any{"images": []any{}}

	_, err := w.svc.Complete(context.Background(), owner(), data)
	require.ErrorIs(t, err, ErrNoPhotos)
	require.False(t, w.users.completed["u1"], "onboarding flag untouched on rejection")
	require.Empty(t, w.events.published)
}

// Sanitization strips an empty photos step from the payload entirely; the
// owner must still get the photo rule back, not a generic required issue.
func TestPublishOwnerRequiresPhotosWhenStepPruned(t *testing.T) {
	w := newWorld(t)
	data := Sanitize(ownerDraftData())
	delete(data, "photos")

	_, err := w.svc.Complete(context.Background(), owner(), data)
	require.ErrorIs(t, err, ErrNoPhotos)
	require.False(t, w.users.completed["u1"])
}

func TestPublishOwnerRejectsIncompleteDraft(t *testing.T) {
	w := newWorld(t)
	data := ownerDraftData()
	delete(data, "pricing")

	_, err := w.svc.Complete(context.Background(), owner(), data)
	ve, ok := AsValidation(err)
	require.True(t, ok)
	require.NotEmpty(t, ve.Issues)
	require.False(t, w.users.completed["u1"])
}

func TestPublishOwnerSeasonalListing(t *testing.T) {
	w := newWorld(t)
	data := ownerDraftData()
	data["season"] = map[string]any{
		"enabled":     true,
		"from":        "2026-12-01",
		"to":          "2027-03-31",
		"nightlyRate": 310.0,
	}

	res, err := w.svc.Complete(context.Background(), owner(), data)
	require.NoError(t, err)
	require.NotNil(t, res.Property.Seasonal)

	l := w.season.byProperty[res.Property.ID]
	require.NotNil(t, l)
	require.Equal(t, res.Property.Slug, l.Slug)
	require.Equal(t, 310.0, l.NightlyRate)

	// Republish with the season switched off removes the surface.
	_, err = w.svc.Complete(context.Background(), owner(), ownerDraftData())
	require.NoError(t, err)
	require.NotContains(t, w.season.byProperty, res.Property.ID)
}

func TestFinalizeTenant(t *testing.T) {
	w := newWorld(t)
	user := &model.User{ID: "t1", Email: "lea@example.com", Role: model.RoleTenant}
	data := map[string]any{
		"profile": map[string]any{"displayName": "Léa Martin"},
		"preferences": map[string]any{
			"cities":     []any{"Lyon", "Villeurbanne"},
			"maxRent":    850.0,
			"moveInFrom": "2026-10-01",
		},
	}

	res, err := w.svc.Complete(context.Background(), user, data)
	require.NoError(t, err)
	require.Equal(t, "/dashboard/tenant", res.RedirectTo)
	require.Nil(t, res.Property)
	require.Equal(t, model.DraftReady, res.Draft.Status)

	require.True(t, w.users.completed["t1"])
	require.NotNil(t, w.prefs.saved)
	require.Equal(t, []string{"Lyon", "Villeurbanne"}, w.prefs.saved.Cities)
	require.NotNil(t, w.prefs.saved.MoveInFrom)

	require.Len(t, w.events.published, 1)
	require.Equal(t, queue.ActionOnboardingCompleted, w.events.published[0].Action)
}

func TestCompleteRejectsSuperadmin(t *testing.T) {
	w := newWorld(t)
	user := &model.User{ID: "a1", Role: model.RoleSuperadmin}
	_, err := w.svc.Complete(context.Background(), user, map[string]any{})
	require.ErrorIs(t, err, ErrUnsupportedRole)
}

func TestSaveDraftPermissive(t *testing.T) {
	w := newWorld(t)
	d, err := w.svc.SaveDraft(context.Background(), "u1", model.RoleOwner,
		map[string]any{"property": map[string]any{"city": "Annecy"}})
	require.NoError(t, err)
	require.Equal(t, model.DraftOpen, d.Status)

	_, err = w.svc.SaveDraft(context.Background(), "u1", model.RoleOwner,
		map[string]any{"pricing": map[string]any{"monthlyRent": "lots"}})
	_, ok := AsValidation(err)
	require.True(t, ok)
}
