package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/locaflow/locaflow/internal/logger"
)

// RequestID attaches a unique request id to each request and stores a
// request-scoped logger in the context under "logger".
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()
				c.Request().Header.Set("X-Request-ID", requestID)
			}
			c.Response().Header().Set("X-Request-ID", requestID)

			ctxLogger := logger.Get().With(zap.String("request_id", requestID))
			c.Set("logger", ctxLogger)
			return next(c)
		}
	}
}

// Logger returns the request-scoped logger stored by RequestID, falling
// back to the global logger.
func Logger(c echo.Context) *zap.Logger {
	if l, ok := c.Get("logger").(*zap.Logger); ok {
		return l
	}
	return logger.Get()
}
