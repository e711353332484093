package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/locaflow/locaflow/internal/model"
	"github.com/locaflow/locaflow/internal/odm"
)

// Store bundles every repository over one database handle. Constructing it
// validates all schema declarations, so a bad field kind fails at startup.
type Store struct {
	Users        *UserRepo
	Tokens       *TokenRepo
	Drafts       *DraftRepo
	Properties   *PropertyRepo
	Applications *ApplicationRepo
	Preferences  *PreferenceRepo
	Documents    *DocumentRepo
	Profiles     *ProfileRepo
	Seasonal     *SeasonalRepo
	Audit        *AuditRepo

	models []interface {
		EnsureCollection(context.Context) error
	}
}

// NewStore wires all models and repositories.
func NewStore(db *mongo.Database) (*Store, error) {
	users, err := odm.NewModel[model.User](db, "users", model.UserSchema)
	if err != nil {
		return nil, err
	}
	tokens, err := odm.NewModel[model.RefreshToken](db, "refresh_tokens", model.RefreshTokenSchema)
	if err != nil {
		return nil, err
	}
	drafts, err := odm.NewModel[model.OnboardingDraft](db, "onboarding_drafts", model.OnboardingDraftSchema)
	if err != nil {
		return nil, err
	}
	properties, err := odm.NewModel[model.Property](db, "properties", model.PropertySchema)
	if err != nil {
		return nil, err
	}
	applications, err := odm.NewModel[model.Application](db, "applications", model.ApplicationSchema)
	if err != nil {
		return nil, err
	}
	preferences, err := odm.NewModel[model.TenantPreference](db, "tenant_preferences", model.TenantPreferenceSchema)
	if err != nil {
		return nil, err
	}
	documents, err := odm.NewModel[model.Document](db, "documents", model.DocumentSchema)
	if err != nil {
		return nil, err
	}
	profiles, err := odm.NewModel[model.Profile](db, "profiles", model.ProfileSchema)
	if err != nil {
		return nil, err
	}
	seasonal, err := odm.NewModel[model.SeasonalListing](db, "seasonal_listings", model.SeasonalListingSchema)
	if err != nil {
		return nil, err
	}
	audit, err := odm.NewModel[model.AuditLog](db, "audit_logs", model.AuditLogSchema)
	if err != nil {
		return nil, err
	}

	s := &Store{
		Users:        NewUserRepo(users),
		Tokens:       NewTokenRepo(tokens),
		Drafts:       NewDraftRepo(drafts),
		Properties:   NewPropertyRepo(properties),
		Applications: NewApplicationRepo(applications),
		Preferences:  NewPreferenceRepo(preferences),
		Documents:    NewDocumentRepo(documents),
		Profiles:     NewProfileRepo(profiles),
		Seasonal:     NewSeasonalRepo(seasonal),
		Audit:        NewAuditRepo(audit),
	}
	s.models = []interface {
		EnsureCollection(context.Context) error
	}{users, tokens, drafts, properties, applications, preferences, documents, profiles, seasonal, audit}
	return s, nil
}

// EnsureCollections installs validators and indexes for every collection.
func (s *Store) EnsureCollections(ctx context.Context) error {
	for _, m := range s.models {
		if err := m.EnsureCollection(ctx); err != nil {
			return err
		}
	}
	return nil
}
