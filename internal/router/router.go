// Package router builds the echo instance: the middleware chain, the
// global error handler and the route table.
package router

import (
	"github.com/deppfellow/storefront/internal/handler"
	"github.com/deppfellow/storefront/internal/middleware"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// NewRouter wires middleware and routes around h.
//
// The CORS envelope runs before routing so preflights to any path are
// answered without touching a handler. The remaining chain runs in
// order: request id, identity, tracing, request logger, then the
// protective middleware closest to the handler.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Pre(
		middleware.CORSEnvelope(),
		echoMiddleware.RemoveTrailingSlash(),
	)

	router.Use(
		middleware.RequestID(),
		middleware.Identity(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Secure(),
		middlewares.Global.BodyLimit(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerStorefrontRoutes(router, h)

	return router
}
