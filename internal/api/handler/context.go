package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/heartlink/gateway/internal/api/middleware"
	"github.com/heartlink/gateway/internal/core/domain"
)

// ctxClaims extracts the claims injected by the Auth middleware. Claims must
// be present and carry a usable user identifier.
func ctxClaims(c echo.Context) (*domain.Claims, error) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if claims.Identity() == 0 {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
	}
	return claims, nil
}
