package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/locaflow/locaflow/internal/metrics"
	mw "github.com/locaflow/locaflow/internal/middleware"
	"github.com/locaflow/locaflow/internal/model"
	"github.com/locaflow/locaflow/internal/onboarding"
	"github.com/locaflow/locaflow/internal/repository"
)

// OnboardingHandler serves the wizard's draft endpoints and the terminal
// complete transition.
type OnboardingHandler struct {
	Users   UserGetter
	Drafts  *repository.DraftRepo
	Service *onboarding.Service
	Metrics *metrics.HTTP
}

func NewOnboardingHandler(users UserGetter, drafts *repository.DraftRepo,
	svc *onboarding.Service, m *metrics.HTTP) *OnboardingHandler {
	return &OnboardingHandler{Users: users, Drafts: drafts, Service: svc, Metrics: m}
}

type draftReq struct {
	Data map[string]any `json:"data"`
}

type draftResp struct {
	Draft *model.OnboardingDraft `json:"draft"`
}

// GetDraft returns the caller's current draft, or an empty one when the
// wizard has never saved.
func (h *OnboardingHandler) GetDraft(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	d, err := h.Drafts.Get(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load draft failed"})
	}
	if d == nil {
		d = &model.OnboardingDraft{
			UserID: uid,
			Role:   getRole(c),
			Status: model.DraftOpen,
			Data:   map[string]any{},
		}
	}
	return c.JSON(http.StatusOK, draftResp{Draft: d})
}

// SaveDraft sanitizes and validates the posted step data permissively, then
// overwrites the stored draft. Unknown or half-filled steps are fine; only
// values of the wrong shape are rejected.
func (h *OnboardingHandler) SaveDraft(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req draftReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	data := onboarding.Sanitize(req.Data)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	d, err := h.Service.SaveDraft(ctx, uid, getRole(c), data)
	if err != nil {
		if ve, ok := onboarding.AsValidation(err); ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "issues": ve.Issues})
		}
		if errors.Is(err, onboarding.ErrUnsupportedRole) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "role has no onboarding flow"})
		}
		mw.Logger(c).Error("save draft", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save draft failed"})
	}
	return c.JSON(http.StatusOK, draftResp{Draft: d})
}

type completeResp struct {
	Draft               *model.OnboardingDraft `json:"draft"`
	Property            *model.Property        `json:"property,omitempty"`
	RedirectTo          string                 `json:"redirectTo"`
	OnboardingCompleted bool                   `json:"onboardingCompleted"`
}

// Complete runs the publish (owner) or finalize (tenant) transition over
// the posted payload. Validation and business-rule rejections are 400s with
// the onboarding flag untouched; persistence failures are 500s and the
// client may retry.
func (h *OnboardingHandler) Complete(c echo.Context) error {
	user, err := currentUser(c, h.Users)
	if user == nil {
		return err
	}
	var req draftReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	data := onboarding.Sanitize(req.Data)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	res, err := h.Service.Complete(ctx, user, data)
	if err != nil {
		switch {
		case errors.Is(err, onboarding.ErrNoPhotos):
			h.observe(user.Role, "rejected")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": onboarding.ErrNoPhotos.Error()})
		case errors.Is(err, onboarding.ErrUnsupportedRole):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "role has no onboarding flow"})
		default:
			if ve, ok := onboarding.AsValidation(err); ok {
				h.observe(user.Role, "rejected")
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "issues": ve.Issues})
			}
			h.observe(user.Role, "error")
			mw.Logger(c).Error("complete onboarding", zap.String("user_id", user.ID), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "complete onboarding failed"})
		}
	}
	h.observe(user.Role, "ok")

	return c.JSON(http.StatusOK, completeResp{
		Draft:               res.Draft,
		Property:            res.Property,
		RedirectTo:          res.RedirectTo,
		OnboardingCompleted: true,
	})
}

func (h *OnboardingHandler) observe(role, outcome string) {
	if h.Metrics != nil {
		h.Metrics.ObservePublish(role, outcome)
	}
}
