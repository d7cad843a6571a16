package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORS response headers. The storefront admin and the public site are
// served from other origins, so every origin is allowed.
var corsHeaders = map[string]string{
	echo.HeaderAccessControlAllowOrigin:  "*",
	echo.HeaderAccessControlAllowMethods: strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}, ", "),
	echo.HeaderAccessControlAllowHeaders: strings.Join([]string{echo.HeaderContentType, UserIDHeader, UserRoleHeader, RequestIDHeader}, ", "),
	echo.HeaderAccessControlMaxAge:       "86400",
}

// CORSEnvelope stamps the CORS header set on every response and answers
// preflight requests itself.
//
// It must be registered with e.Pre so it runs before routing: an OPTIONS
// request to any path gets 200 with an empty body and never reaches a
// handler or the database. echo's own CORS middleware answers preflights
// with 204.
func CORSEnvelope() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Response().Header()
			for name, value := range corsHeaders {
				header.Set(name, value)
			}

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusOK)
			}

			return next(c)
		}
	}
}
