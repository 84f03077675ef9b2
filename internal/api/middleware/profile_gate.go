package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireCompleteProfile passes only callers whose claims mark the profile
// as completed. Must be layered after Auth.
func RequireCompleteProfile() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if !claims.CompleteProfile {
				return echo.NewHTTPError(http.StatusForbidden, "Profile not completed. Please complete your profile first.")
			}
			return next(c)
		}
	}
}

// RequireIncompleteProfile is the complement gate for onboarding endpoints
// that are only meaningful before the profile is completed.
func RequireIncompleteProfile() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if claims.CompleteProfile {
				return echo.NewHTTPError(http.StatusForbidden, "Profile already completed. Access denied.")
			}
			return next(c)
		}
	}
}
