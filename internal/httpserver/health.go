package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHTTP reports liveness and per-dependency readiness.
type HealthHTTP struct {
	DB Pinger
	// Optional dependencies: a failure degrades but does not fail readiness.
	Optional map[string]Pinger
}

type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

func (h *HealthHTTP) Live(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func (h *HealthHTTP) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	health := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  map[string]string{},
	}

	code := http.StatusOK
	if err := h.DB.Ping(ctx); err != nil {
		health.Services["database"] = "unhealthy"
		health.Status = "unhealthy"
		code = http.StatusServiceUnavailable
	} else {
		health.Services["database"] = "healthy"
	}

	for name, p := range h.Optional {
		if err := p.Ping(ctx); err != nil {
			health.Services[name] = "unhealthy"
			if health.Status == "healthy" {
				health.Status = "degraded"
			}
			continue
		}
		health.Services[name] = "healthy"
	}

	return c.JSON(code, health)
}
