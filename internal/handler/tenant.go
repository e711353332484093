package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	mw "github.com/locaflow/locaflow/internal/middleware"
	"github.com/locaflow/locaflow/internal/model"
	"github.com/locaflow/locaflow/internal/onboarding"
	"github.com/locaflow/locaflow/internal/queue"
	"github.com/locaflow/locaflow/internal/repository"
)

// TenantHandler bundles repositories for tenant dashboard endpoints.
type TenantHandler struct {
	Preferences  *repository.PreferenceRepo
	Applications *repository.ApplicationRepo
	Properties   *repository.PropertyRepo
	Events       onboarding.EventPublisher
}

func NewTenantHandler(prefs *repository.PreferenceRepo, apps *repository.ApplicationRepo,
	props *repository.PropertyRepo, events onboarding.EventPublisher) *TenantHandler {
	return &TenantHandler{Preferences: prefs, Applications: apps, Properties: props, Events: events}
}

// GetPreferences returns the tenant's stored search criteria, empty when
// onboarding never wrote any.
func (h *TenantHandler) GetPreferences(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	p, err := h.Preferences.Get(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load preferences failed"})
	}
	if p == nil {
		p = &model.TenantPreference{TenantID: uid}
	}
	return c.JSON(http.StatusOK, p)
}

type preferencesReq struct {
	Cities     []string `json:"cities"`
	MaxRent    float64  `json:"maxRent"`
	MinSurface float64  `json:"minSurface"`
	Bedrooms   int      `json:"bedrooms"`
	Furnished  bool     `json:"furnished"`
	MoveInFrom string   `json:"moveInFrom"` // RFC 3339 or YYYY-MM-DD
}

// UpdatePreferences overwrites the tenant's search criteria.
func (h *TenantHandler) UpdatePreferences(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req preferencesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	pref := &model.TenantPreference{
		TenantID:   uid,
		Cities:     req.Cities,
		MaxRent:    req.MaxRent,
		MinSurface: req.MinSurface,
		Bedrooms:   req.Bedrooms,
		Furnished:  req.Furnished,
	}
	if s := strings.TrimSpace(req.MoveInFrom); s != "" {
		t, err := parseFlexibleDate(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid moveInFrom date"})
		}
		pref.MoveInFrom = &t
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	stored, err := h.Preferences.Upsert(ctx, pref)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save preferences failed"})
	}
	return c.JSON(http.StatusOK, stored)
}

type applicationReq struct {
	PropertyID string `json:"propertyId"`
	Message    string `json:"message"`
}

// CreateApplication files a rental application for a published property. A
// tenant can hold at most one pending application per property.
func (h *TenantHandler) CreateApplication(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req applicationReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.PropertyID) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "propertyId required"})
	}
	propID := strings.TrimSpace(req.PropertyID)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	prop, err := h.Properties.GetByID(ctx, propID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load property failed"})
	}
	if prop.Status != model.PropertyPublished {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	}

	pending, err := h.Applications.HasPending(ctx, uid, propID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "check applications failed"})
	}
	if pending {
		return c.JSON(http.StatusConflict, echo.Map{"error": "application already pending"})
	}

	a, err := h.Applications.Create(ctx, uid, propID, strings.TrimSpace(req.Message))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save application failed"})
	}

	if h.Events != nil {
		ev := queue.AuditEvent{
			Action:   queue.ActionApplicationSubmitted,
			ActorID:  uid,
			Entity:   "application",
			EntityID: a.ID,
			Details:  map[string]any{"propertyId": propID},
			At:       time.Now().UTC(),
		}
		if err := h.Events.Publish(ctx, ev); err != nil {
			mw.Logger(c).Warn("publish audit event", zap.String("action", ev.Action), zap.Error(err))
		}
	}
	return c.JSON(http.StatusCreated, a)
}

// ListApplications returns the tenant's own applications.
func (h *TenantHandler) ListApplications(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	apps, err := h.Applications.ListByTenant(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load applications failed"})
	}
	if apps == nil {
		apps = []*model.Application{}
	}
	return c.JSON(http.StatusOK, echo.Map{"applications": apps})
}

func parseFlexibleDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
