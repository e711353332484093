package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/locaflow/locaflow/internal/model"
	"github.com/locaflow/locaflow/internal/repository"
)

// dbTimeout bounds every database call made from a handler.
const dbTimeout = 5 * time.Second

// getUserID extracts the authenticated user's id from the echo context, as
// stored there by the JWT middleware.
func getUserID(c echo.Context) (string, error) {
	if s, ok := c.Get("user_id").(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("invalid user_id in context")
}

// getRole extracts the authenticated user's role from the echo context.
func getRole(c echo.Context) string {
	s, _ := c.Get("role").(string)
	return s
}

// UserGetter is the slice of the user repository needed to resolve the
// authenticated caller.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// currentUser loads the authenticated user record. A missing context id or
// a user that no longer exists both yield a 401 response, already written.
func currentUser(c echo.Context, users UserGetter) (*model.User, error) {
	uid, err := getUserID(c)
	if err != nil {
		return nil, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	u, err := users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return u, nil
}
