package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/locaflow/locaflow/internal/model"
	"github.com/locaflow/locaflow/internal/repository"
)

// ListApplications returns every application filed against the owner's
// property.
func (h *OwnerHandler) ListApplications(c echo.Context) error {
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
		return c.JSON(http.StatusOK, echo.Map{"applications": []*model.Application{}})
	}
	apps, err := h.Applications.ListByProperty(ctx, p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load applications failed"})
	}
	if apps == nil {
		apps = []*model.Application{}
	}
	return c.JSON(http.StatusOK, echo.Map{"applications": apps})
}

type applicationStatusReq struct {
	Status string `json:"status"` // accepted | rejected
}

// SetApplicationStatus accepts or rejects an application. The update is
// scoped to the caller's own property so one landlord cannot touch
// another's applications.
func (h *OwnerHandler) SetApplicationStatus(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	appID := c.Param("id")
	if appID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "application id required"})
	}
	var req applicationStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status != model.ApplicationAccepted && status != model.ApplicationRejected {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be accepted or rejected"})
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

	a, err := h.Applications.SetStatus(ctx, appID, p.ID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "application not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update application failed"})
	}
	return c.JSON(http.StatusOK, a)
}
