package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/heartlink/gateway/internal/core/domain"
	"github.com/heartlink/gateway/internal/core/ports"
)

// AuthHandler forwards registration and login to the auth backend. These
// are unauthenticated single-call pass-throughs; credential verification of
// the issued tokens happens on every subsequent request.
type AuthHandler struct {
	client ports.BackendClient
}

func NewAuthHandler(client ports.BackendClient) *AuthHandler {
	return &AuthHandler{client: client}
}

// Register creates a new account on the auth backend.
func (h *AuthHandler) Register(c echo.Context) error {
	body, err := requestBody(c)
	if err != nil {
		return err
	}
	return forward(c, h.client, domain.BackendAuth, http.MethodPost, "/auth/register", nil, body)
}

// Login authenticates against the auth backend and relays the issued token.
func (h *AuthHandler) Login(c echo.Context) error {
	body, err := requestBody(c)
	if err != nil {
		return err
	}
	return forward(c, h.client, domain.BackendAuth, http.MethodPost, "/auth/login", nil, body)
}
