package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/storefront/internal/lib/monitor"
	"github.com/deppfellow/storefront/internal/middleware"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

const healthCheckTimeout = 5 * time.Second

// HealthHandler serves GET /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
	checks []monitor.Check
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		checks:  monitor.ServerChecks(s, []string{monitor.CheckDatabase, monitor.CheckRedis}),
	}
}

// CheckHealth reports every dependency with its response time. It answers
// 503 when a critical dependency (the database) is down; an unreachable
// Redis is reported but keeps the service healthy.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	report := monitor.Run(c.Request().Context(), healthCheckTimeout, h.checks)

	nrApp := h.nrApp()
	for name, result := range report.Results {
		if result.Err != nil {
			logger.Error().
				Err(result.Err).
				Str("check", name).
				Dur("response_time", result.Duration).
				Msg("health check failed")
			monitor.RecordFailure(nrApp, name, "health_check", result)
			continue
		}

		logger.Debug().
			Str("check", name).
			Dur("response_time", result.Duration).
			Msg("health check passed")
	}

	response := map[string]interface{}{
		"status":      monitor.StatusHealthy,
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      report.Results,
	}

	if !report.Healthy {
		response["status"] = monitor.StatusUnhealthy

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) nrApp() *newrelic.Application {
	if h.server.LoggerService == nil {
		return nil
	}
	return h.server.LoggerService.GetApplication()
}

