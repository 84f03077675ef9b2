package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/heartlink/gateway/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error any `json:"error"`
}

// deletionFailureResponse carries the per-backend outcome map when the
// account-deletion fan-out could not remove the auth record.
type deletionFailureResponse struct {
	Error   string                `json:"error"`
	Results domain.DeletionReport `json:"results"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Propagates a backend's own status and body for abort-on-failure steps.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var statusErr *domain.BackendStatusError
		if errors.As(err, &statusErr) {
			_ = c.JSON(statusErr.Status, errorResponse{Error: statusErr.Detail()})
			return
		}

		var deletionErr *domain.AccountDeletionError
		if errors.As(err, &deletionErr) {
			_ = c.JSON(http.StatusInternalServerError, deletionFailureResponse{
				Error:   deletionErr.Error(),
				Results: deletionErr.Report,
			})
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "Token expired"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid token"
	case errors.Is(err, domain.ErrProfileIncomplete):
		return http.StatusForbidden, "Profile not completed. Please complete your profile first."
	case errors.Is(err, domain.ErrProfileComplete):
		return http.StatusForbidden, "Profile already completed. Access denied."
	case errors.Is(err, domain.ErrBackendUnavailable):
		return http.StatusServiceUnavailable, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
