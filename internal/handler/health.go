package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/filesubmit/internal/lib/page"
	"github.com/deppfellow/filesubmit/internal/middleware"
	"github.com/deppfellow/filesubmit/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler exposes /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth reports service status and dependency checks.
//
// It returns 200 when every check passes and 503 otherwise. The only
// dependency is the set of parsed page templates.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"uptime":      time.Since(h.server.StartedAt).Round(time.Second).String(),
		"checks":      checks,
	}

	isHealthy := true

	var missing []string
	for _, name := range page.Templates {
		if h.server.Renderer == nil || !h.server.Renderer.Has(name) {
			missing = append(missing, string(name))
		}
	}

	if len(missing) > 0 {
		isHealthy = false
		checks["templates"] = map[string]interface{}{
			"status":  "unhealthy",
			"missing": missing,
		}

		logger.Error().
			Strs("missing", missing).
			Msg("templates health check failed")

		h.server.LoggerService.RecordCustomEvent("HealthCheckError", map[string]interface{}{
			"check_type": "templates",
			"operation":  "health_check",
			"error_type": "templates_missing",
		})
	} else {
		checks["templates"] = map[string]interface{}{
			"status": "healthy",
			"count":  len(page.Templates),
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}
