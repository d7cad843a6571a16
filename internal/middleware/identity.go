package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	UserIDHeader   = "X-User-Id"
	UserRoleHeader = "X-User-Role"
)

// Identity copies the caller identity headers into the echo context.
//
// The values are trusted as sent. They only label logs and traces and
// never gate access to an endpoint.
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID := strings.TrimSpace(c.Request().Header.Get(UserIDHeader)); userID != "" {
				c.Set(UserIDKey, userID)
			}
			if role := strings.TrimSpace(c.Request().Header.Get(UserRoleHeader)); role != "" {
				c.Set(UserRoleKey, role)
			}
			return next(c)
		}
	}
}
