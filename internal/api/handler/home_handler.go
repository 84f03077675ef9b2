package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HomeHandler serves the landing payload for onboarded users. It is the one
// endpoint answered entirely from verified claims, with no backend call.
type HomeHandler struct{}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

func (h *HomeHandler) Home(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":          "Welcome to home!",
		"user_id":          claims.Identity(),
		"complete_profile": claims.CompleteProfile,
	})
}
