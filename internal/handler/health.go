package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/kringe-music/internal/middleware"
	"github.com/deppfellow/kringe-music/internal/server"
)

// HealthHandler reports whether the service and its stores are reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type probe struct {
	name string
	// required probes turn the whole status unhealthy when they fail
	required bool
	ping     func(ctx context.Context) error
}

func (h *HealthHandler) probes() []probe {
	var probes []probe

	if h.server.DB != nil {
		probes = append(probes, probe{name: "database", required: true, ping: h.server.DB.Ping})
	}
	if h.server.Mongo != nil {
		probes = append(probes, probe{name: "mongo", required: true, ping: h.server.Mongo.Ping})
	}
	// sessions fall back to memory without Redis, so it never fails the check
	if h.server.Redis != nil {
		probes = append(probes, probe{name: "redis", ping: func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		}})
	}

	return probes
}

// CheckHealth answers 200 when every required store responds and 503
// otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	obs := h.server.Config.Observability
	checks := make(map[string]interface{})
	isHealthy := true

	for _, p := range h.probes() {
		if !obs.HealthCheckEnabled(p.name) {
			continue
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), obs.HealthChecks.Timeout)
		probeStart := time.Now()
		err := p.ping(ctx)
		cancel()

		if err != nil {
			checks[p.name] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": time.Since(probeStart).String(),
				"error":         err.Error(),
			}
			if p.required {
				isHealthy = false
			}

			logger.Error().
				Err(err).
				Str("check", p.name).
				Dur("response_time", time.Since(probeStart)).
				Msg("health check failed")

			h.server.LoggerService.RecordCustomEvent("HealthCheckError", map[string]interface{}{
				"check_type":       p.name,
				"operation":        "health_check",
				"error_type":       p.name + "_unhealthy",
				"response_time_ms": time.Since(probeStart).Milliseconds(),
				"error_message":    err.Error(),
			})
			continue
		}

		checks[p.name] = map[string]interface{}{
			"status":        "healthy",
			"response_time": time.Since(probeStart).String(),
		}
	}

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	if !isHealthy {
		response["status"] = "unhealthy"
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}
