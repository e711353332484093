package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	mw "github.com/locaflow/locaflow/internal/middleware"
	"github.com/locaflow/locaflow/internal/model"
	"github.com/locaflow/locaflow/internal/repository"
)

// OwnerHandler bundles repositories for owner dashboard endpoints.
type OwnerHandler struct {
	Properties   *repository.PropertyRepo
	Applications *repository.ApplicationRepo
	Documents    *repository.DocumentRepo
	Seasonal     *repository.SeasonalRepo
}

func NewOwnerHandler(p *repository.PropertyRepo, a *repository.ApplicationRepo,
	d *repository.DocumentRepo, s *repository.SeasonalRepo) *OwnerHandler {
	return &OwnerHandler{Properties: p, Applications: a, Documents: d, Seasonal: s}
}

// GetProperty returns the owner's listing, 404 when none has been published
// yet.
func (h *OwnerHandler) GetProperty(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	p, err := h.Properties.GetByOwner(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load property failed"})
	}
	if p == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no property yet"})
	}
	return c.JSON(http.StatusOK, p)
}

type propertyUpdateReq struct {
	Description *string  `json:"description"`
	Address     *string  `json:"address"`
	Surface     *float64 `json:"surface"`
	Bedrooms    *int     `json:"bedrooms"`
	MonthlyRent *float64 `json:"monthlyRent"`
	Deposit     *float64 `json:"deposit"`
	Charges     *float64 `json:"charges"`
}

// UpdateProperty applies a partial update to the owner's listing. Title and
// slug are deliberately not editable here; retitling goes through the
// publish flow so the slug history stays consistent.
func (h *OwnerHandler) UpdateProperty(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req propertyUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	set := bson.M{}
	if req.Description != nil {
		set["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Address != nil {
		set["address"] = strings.TrimSpace(*req.Address)
	}
	if req.Surface != nil {
		set["surface"] = *req.Surface
	}
	if req.Bedrooms != nil {
		set["bedrooms"] = *req.Bedrooms
	}
	if req.MonthlyRent != nil {
		set["pricing.monthlyRent"] = *req.MonthlyRent
	}
	if req.Deposit != nil {
		set["pricing.deposit"] = *req.Deposit
	}
	if req.Charges != nil {
		set["pricing.charges"] = *req.Charges
	}
	if len(set) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nothing to update"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	p, err := h.Properties.UpdateByOwner(ctx, uid, set)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no property yet"})
		}
		mw.Logger(c).Error("update property", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update property failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// ArchiveProperty takes the listing off the public site. The seasonal
// surface, if any, is removed with it.
func (h *OwnerHandler) ArchiveProperty(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	p, err := h.Properties.UpdateByOwner(ctx, uid, bson.M{"status": model.PropertyArchived})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no property yet"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "archive failed"})
	}
	if err := h.Seasonal.DeleteForProperty(ctx, p.ID); err != nil {
		mw.Logger(c).Warn("remove seasonal listing", zap.String("property_id", p.ID), zap.Error(err))
	}
	return c.JSON(http.StatusOK, p)
}
