package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/heartlink/gateway/internal/core/domain"
	"github.com/heartlink/gateway/internal/core/ports"
)

// HealthHandler handles GET /health, the liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "api_gateway",
	})
}

// HealthDependenciesHandler handles GET /health/ready, the readiness probe.
// Checks that each backend answers its own health endpoint before declaring
// the gateway ready.
type HealthDependenciesHandler struct {
	client ports.BackendClient
}

func NewHealthDependenciesHandler(client ports.BackendClient) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{client: client}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	backends := []domain.Backend{
		domain.BackendAuth,
		domain.BackendUser,
		domain.BackendMatching,
		domain.BackendChat,
	}

	deps := make(map[string]dependencyStatus, len(backends))
	healthy := true

	for _, backend := range backends {
		res, err := h.client.Do(ctx, backend, http.MethodGet, "/health", nil, nil)
		switch {
		case err != nil:
			deps[string(backend)] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
		case !res.OK():
			deps[string(backend)] = dependencyStatus{Status: "unhealthy", Error: http.StatusText(res.Status)}
			healthy = false
		default:
			deps[string(backend)] = dependencyStatus{Status: "ok"}
		}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
