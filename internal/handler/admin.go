package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/locaflow/locaflow/internal/model"
	"github.com/locaflow/locaflow/internal/repository"
)

// AdminHandler serves the superadmin dashboard endpoints.
type AdminHandler struct {
	Users      *repository.UserRepo
	Properties *repository.PropertyRepo
	Audit      *repository.AuditRepo
}

func NewAdminHandler(u *repository.UserRepo, p *repository.PropertyRepo, a *repository.AuditRepo) *AdminHandler {
	return &AdminHandler{Users: u, Properties: p, Audit: a}
}

// adminUser strips the credential fields from the stored user.
type adminUser struct {
	ID                  string `json:"id"`
	Email               string `json:"email"`
	Role                string `json:"role"`
	IsActive            bool   `json:"isActive"`
	OnboardingCompleted bool   `json:"onboardingCompleted"`
}

// ListUsers returns all accounts, optionally filtered by ?role=.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	role := strings.ToUpper(strings.TrimSpace(c.QueryParam("role")))

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	users, err := h.Users.List(ctx, role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load users failed"})
	}
	out := make([]adminUser, 0, len(users))
	for _, u := range users {
		out = append(out, adminUser{
			ID:                  u.ID,
			Email:               u.Email,
			Role:                u.Role,
			IsActive:            u.IsActive,
			OnboardingCompleted: u.OnboardingCompleted,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}

// ListProperties returns every property, optionally filtered by ?status=.
func (h *AdminHandler) ListProperties(c echo.Context) error {
	status := strings.ToLower(strings.TrimSpace(c.QueryParam("status")))

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	props, err := h.Properties.List(ctx, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load properties failed"})
	}
	if props == nil {
		props = []*model.Property{}
	}
	return c.JSON(http.StatusOK, echo.Map{"properties": props})
}

// ListAuditLog returns recent audit entries, newest first, with optional
// ?action= and ?limit= filters.
func (h *AdminHandler) ListAuditLog(c echo.Context) error {
	action := strings.TrimSpace(c.QueryParam("action"))
	var limit int64
	if s := c.QueryParam("limit"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = v
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	entries, err := h.Audit.ListRecent(ctx, action, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load audit log failed"})
	}
	if entries == nil {
		entries = []*model.AuditLog{}
	}
	return c.JSON(http.StatusOK, echo.Map{"audit": entries})
}
