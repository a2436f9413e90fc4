// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and maps paths to their
// corresponding handlers
package router

import (
	"github.com/deppfellow/filesubmit/internal/handler"
	"github.com/deppfellow/filesubmit/internal/middleware"
	"github.com/deppfellow/filesubmit/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with the global middleware chain,
// the error handler, the page renderer and every route.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.Renderer = s.Renderer
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the request id feeds tracing and the context logger,
	// and the request logger needs the context logger.
	router.Use(
		middlewares.Global.Recover(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Secure(),
	)

	if middlewares.Global.CORSEnabled() {
		router.Use(middlewares.Global.CORS())
	}

	if middlewares.RateLimit.Enabled() {
		router.Use(middlewares.RateLimit.Limit())
	}

	registerSystemRoutes(router, h)
	registerFormRoutes(router, h)

	return router
}
