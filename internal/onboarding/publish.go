package onboarding

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/locaflow/locaflow/internal/model"
	"github.com/locaflow/locaflow/internal/queue"
)

// Store interfaces consumed by the publish transition. The repositories
// satisfy them; tests substitute in-memory fakes.

type UserStore interface {
	CompleteOnboarding(ctx context.Context, id string) error
}

type PropertyStore interface {
	GetByOwner(ctx context.Context, ownerID string) (*model.Property, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Upsert(ctx context.Context, p *model.Property) (*model.Property, error)
}

type DraftStore interface {
	Upsert(ctx context.Context, userID, role string, data map[string]any) (*model.OnboardingDraft, error)
	SetStatus(ctx context.Context, userID, status string) (*model.OnboardingDraft, error)
	Get(ctx context.Context, userID string) (*model.OnboardingDraft, error)
	Delete(ctx context.Context, userID string) error
}

type ProfileStore interface {
	Upsert(ctx context.Context, p *model.Profile) (*model.Profile, error)
}

type PreferenceStore interface {
	Upsert(ctx context.Context, p *model.TenantPreference) (*model.TenantPreference, error)
}

type SeasonalStore interface {
	UpsertForProperty(ctx context.Context, l *model.SeasonalListing) (*model.SeasonalListing, error)
	DeleteForProperty(ctx context.Context, propertyID string) error
}

// EventPublisher fans domain events out to the audit queue. Publish failures
// must never fail the main request flow.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.AuditEvent) error
}

// Service coordinates draft saves and the publish/finalize transition.
type Service struct {
	Users       UserStore
	Properties  PropertyStore
	Drafts      DraftStore
	Profiles    ProfileStore
	Preferences PreferenceStore
	Seasonal    SeasonalStore
	Events      EventPublisher
	Log         *zap.Logger

	// now is swappable in tests to pin slug suffixes.
	now func() time.Time
}

// NewService wires the publish transition over its stores. Events may be
// nil when no broker is configured; audit fanout is then skipped.
func NewService(users UserStore, properties PropertyStore, drafts DraftStore,
	profiles ProfileStore, preferences PreferenceStore, seasonal SeasonalStore,
	events EventPublisher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		Users:       users,
		Properties:  properties,
		Drafts:      drafts,
		Profiles:    profiles,
		Preferences: preferences,
		Seasonal:    seasonal,
		Events:      events,
		Log:         log,
		now:         time.Now,
	}
}

// SaveDraft validates a partial draft against the role's permissive schema
// and upserts it wholesale. Validation failures return a ValidationError.
func (s *Service) SaveDraft(ctx context.Context, userID, role string, data map[string]any) (*model.OnboardingDraft, error) {
	issues, err := ValidateDraft(role, data)
	if err != nil {
		return nil, err
	}
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return s.Drafts.Upsert(ctx, userID, role, data)
}

// Result is the outcome of a successful publish/finalize.
type Result struct {
	Draft      *model.OnboardingDraft
	Property   *model.Property
	RedirectTo string
}

// Complete runs the terminal onboarding transition for the user. The draft
// payload must satisfy the strict schema. For owners a Property document is
// upserted (idempotent, keyed by owner) before the user's onboarding flag is
// set; a persistence failure leaves the flag untouched so the client can
// retry. For tenants the draft is marked ready and preferences are stored.
func (s *Service) Complete(ctx context.Context, user *model.User, data map[string]any) (*Result, error) {
	// The photo rule is checked before schema validation: sanitization prunes
	// an empty photos step from the payload entirely, and the caller should
	// see the zero-photo rejection, not a generic required-field issue.
	if user.Role == model.RoleOwner && !hasPhotos(data) {
		return nil, ErrNoPhotos
	}
	issues, err := ValidateComplete(user.Role, data)
	if err != nil {
		return nil, err
	}
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	switch user.Role {
	case model.RoleOwner:
		return s.publishOwner(ctx, user, data)
	case model.RoleTenant:
		return s.finalizeTenant(ctx, user, data)
	default:
		return nil, ErrUnsupportedRole
	}
}

func (s *Service) publishOwner(ctx context.Context, user *model.User, data map[string]any) (*Result, error) {
	var draft OwnerDraft
	if err := decodeInto(data, &draft); err != nil {
		return nil, &ValidationError{Issues: nil}
	}

	existing, err := s.Properties.GetByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load property: %w", err)
	}

	slug, previous, err := s.resolveSlug(ctx, existing, draft.Property.Title)
	if err != nil {
		return nil, fmt.Errorf("resolve slug: %w", err)
	}

	images, hero := normalizeHero(draft.Photos.Images)

	prop := &model.Property{
		OwnerID:       user.ID,
		Title:         draft.Property.Title,
		Description:   draft.Property.Description,
		City:          draft.Property.City,
		Address:       draft.Property.Address,
		Kind:          draft.Property.Kind,
		Surface:       draft.Property.Surface,
		Bedrooms:      draft.Property.Bedrooms,
		Slug:          slug,
		PreviousSlugs: previous,
		Status:        model.PropertyPublished,
		Images:        images,
		HeroImage:     hero,
		Pricing: model.PropertyPricing{
			MonthlyRent: draft.Pricing.MonthlyRent,
			Deposit:     draft.Pricing.Deposit,
			Charges:     draft.Pricing.Charges,
			Currency:    draft.Pricing.Currency,
		},
		Compliance: model.PropertyCompliance{
			EnergyClass:     draft.Compliance.EnergyClass,
			GasCertificate:  draft.Compliance.GasCertificate,
			SmokeDetectors:  draft.Compliance.SmokeDetectors,
			InsuranceNumber: draft.Compliance.InsuranceNumber,
		},
	}
	if existing != nil && existing.PublishedAt != nil {
		prop.PublishedAt = existing.PublishedAt
	} else {
		now := s.now().UTC()
		prop.PublishedAt = &now
	}
	if period, ok := seasonalPeriod(draft); ok {
		prop.Seasonal = period
	}

	saved, err := s.Properties.Upsert(ctx, prop)
	if err != nil {
		return nil, fmt.Errorf("persist property: %w", err)
	}

	if _, err := s.Profiles.Upsert(ctx, &model.Profile{
		UserID:      user.ID,
		Role:        model.RoleOwner,
		DisplayName: draft.Profile.DisplayName,
		Phone:       draft.Profile.Phone,
		Company:     draft.Profile.Company,
	}); err != nil {
		return nil, fmt.Errorf("persist profile: %w", err)
	}

	if err := s.syncSeasonal(ctx, saved, draft); err != nil {
		return nil, fmt.Errorf("persist seasonal listing: %w", err)
	}

	if err := s.Users.CompleteOnboarding(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("complete onboarding: %w", err)
	}

	// The draft has served its purpose; purge it so a later visit to the
	// wizard cannot read stale data. Failure here is logged, not fatal.
	snapshot := &model.OnboardingDraft{UserID: user.ID, Role: user.Role, Status: model.DraftReady, Data: data}
	if err := s.Drafts.Delete(ctx, user.ID); err != nil {
		s.Log.Warn("purge draft after publish", zap.String("user_id", user.ID), zap.Error(err))
	}

	s.emit(ctx, queue.AuditEvent{
		Action:   queue.ActionPropertyPublished,
		ActorID:  user.ID,
		Entity:   "property",
		EntityID: saved.ID,
		Details:  map[string]any{"slug": saved.Slug},
		At:       s.now().UTC(),
	})
	s.emit(ctx, queue.AuditEvent{
		Action:  queue.ActionOnboardingCompleted,
		ActorID: user.ID,
		Details: map[string]any{"role": user.Role},
		At:      s.now().UTC(),
	})

	return &Result{Draft: snapshot, Property: saved, RedirectTo: "/dashboard/owner"}, nil
}

func (s *Service) finalizeTenant(ctx context.Context, user *model.User, data map[string]any) (*Result, error) {
	var draft TenantDraft
	if err := decodeInto(data, &draft); err != nil {
		return nil, &ValidationError{Issues: nil}
	}

	if _, err := s.Drafts.Upsert(ctx, user.ID, user.Role, data); err != nil {
		return nil, fmt.Errorf("persist draft: %w", err)
	}
	stored, err := s.Drafts.SetStatus(ctx, user.ID, model.DraftReady)
	if err != nil {
		return nil, fmt.Errorf("persist draft: %w", err)
	}

	if _, err := s.Profiles.Upsert(ctx, &model.Profile{
		UserID:      user.ID,
		Role:        model.RoleTenant,
		DisplayName: draft.Profile.DisplayName,
		Phone:       draft.Profile.Phone,
	}); err != nil {
		return nil, fmt.Errorf("persist profile: %w", err)
	}

	pref := &model.TenantPreference{
		TenantID:   user.ID,
		Cities:     draft.Preferences.Cities,
		MaxRent:    draft.Preferences.MaxRent,
		MinSurface: draft.Preferences.MinSurface,
		Bedrooms:   draft.Preferences.Bedrooms,
		Furnished:  draft.Preferences.Furnished,
	}
	if draft.Preferences.MoveInFrom != "" {
		if t, err := parseDate(draft.Preferences.MoveInFrom); err == nil {
			pref.MoveInFrom = &t
		}
	}
	if _, err := s.Preferences.Upsert(ctx, pref); err != nil {
		return nil, fmt.Errorf("persist preferences: %w", err)
	}

	if err := s.Users.CompleteOnboarding(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("complete onboarding: %w", err)
	}

	s.emit(ctx, queue.AuditEvent{
		Action:  queue.ActionOnboardingCompleted,
		ActorID: user.ID,
		Details: map[string]any{"role": user.Role},
		At:      s.now().UTC(),
	})

	return &Result{Draft: stored, RedirectTo: "/dashboard/tenant"}, nil
}

// resolveSlug keeps the existing slug when the title is unchanged. Otherwise
// a new slug is derived, suffixed when another property already holds it,
// and the old slug is preserved in the history.
func (s *Service) resolveSlug(ctx context.Context, existing *model.Property, title string) (string, []string, error) {
	if existing != nil && existing.Title == title {
		return existing.Slug, existing.PreviousSlugs, nil
	}
	base := Slugify(title)
	slug := base
	excludeID := ""
	if existing != nil {
		excludeID = existing.ID
	}
	taken, err := s.Properties.SlugExists(ctx, slug, excludeID)
	if err != nil {
		return "", nil, err
	}
	if taken {
		slug = base + "-" + SlugSuffix(s.now())
	}
	var previous []string
	if existing != nil && existing.Slug != "" && existing.Slug != slug {
		previous = append(append(previous, existing.PreviousSlugs...), existing.Slug)
	}
	return slug, previous, nil
}

// hasPhotos reports whether the step bag carries at least one photo. It works
// on the raw bag so a missing step and an explicitly empty image list are
// treated the same.
func hasPhotos(data map[string]any) bool {
	step, _ := data["photos"].(map[string]any)
	images, _ := step["images"].([]any)
	return len(images) > 0
}

// normalizeHero picks the hero image (first flagged, else the first photo)
// and rewrites the flags so exactly one image is the hero.
func normalizeHero(images []model.PropertyImage) ([]model.PropertyImage, string) {
	if len(images) == 0 {
		return nil, ""
	}
	heroIdx := 0
	for i := range images {
		if images[i].IsHero {
			heroIdx = i
			break
		}
	}
	out := make([]model.PropertyImage, len(images))
	copy(out, images)
	for i := range out {
		out[i].IsHero = i == heroIdx
	}
	return out, out[heroIdx].URL
}

func seasonalPeriod(draft OwnerDraft) (*model.SeasonalPeriod, bool) {
	if !draft.Season.Enabled {
		return nil, false
	}
	from, err := parseDate(draft.Season.From)
	if err != nil {
		return nil, false
	}
	to, err := parseDate(draft.Season.To)
	if err != nil {
		return nil, false
	}
	return &model.SeasonalPeriod{From: from, To: to}, true
}

func (s *Service) syncSeasonal(ctx context.Context, prop *model.Property, draft OwnerDraft) error {
	if prop.Seasonal == nil {
		return s.Seasonal.DeleteForProperty(ctx, prop.ID)
	}
	_, err := s.Seasonal.UpsertForProperty(ctx, &model.SeasonalListing{
		PropertyID:  prop.ID,
		OwnerID:     prop.OwnerID,
		Slug:        prop.Slug,
		Title:       prop.Title,
		City:        prop.City,
		From:        prop.Seasonal.From,
		To:          prop.Seasonal.To,
		NightlyRate: draft.Season.NightlyRate,
	})
	return err
}

func (s *Service) emit(ctx context.Context, ev queue.AuditEvent) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, ev); err != nil {
		s.Log.Warn("publish audit event", zap.String("action", ev.Action), zap.Error(err))
	}
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
