package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/heartlink/gateway/internal/core/domain"
	"github.com/heartlink/gateway/internal/core/ports"
)

// MatchingHandler covers the matching endpoints: the orchestrated discovery,
// connections, and dismatch routines plus thin forwards to the matching
// backend.
type MatchingHandler struct {
	client  ports.BackendClient
	matches ports.MatchService
}

func NewMatchingHandler(client ports.BackendClient, matches ports.MatchService) *MatchingHandler {
	return &MatchingHandler{client: client, matches: matches}
}

type dismatchRequest struct {
	RelationshipID int64 `json:"relationship_id" validate:"required"`
}

// Potential returns one recommended profile for the caller along with the
// total number of compatible candidates.
func (h *MatchingHandler) Potential(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	result, err := h.matches.Potential(c.Request().Context(), claims)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Swipe records a like/dislike on the matching backend.
func (h *MatchingHandler) Swipe(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	body, err := requestBody(c)
	if err != nil {
		return err
	}
	query := url.Values{"current_user_id": {strconv.FormatInt(claims.Identity(), 10)}}
	return forward(c, h.client, domain.BackendMatching, http.MethodPost, "/matching/swipe", query, body)
}

// Connections lists the caller's active matches as minimal summaries.
func (h *MatchingHandler) Connections(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	summaries, err := h.matches.Connections(c.Request().Context(), claims)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"connections": summaries})
}

// Dismatch dissolves a relationship and best-effort deactivates its chat.
func (h *MatchingHandler) Dismatch(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req dismatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result, err := h.matches.Dismatch(c.Request().Context(), claims, req.RelationshipID)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, result)
}

// CheckRelationship reports whether a match exists between two users.
func (h *MatchingHandler) CheckRelationship(c echo.Context) error {
	query := url.Values{}
	query.Set("user1_id", c.QueryParam("user1_id"))
	query.Set("user2_id", c.QueryParam("user2_id"))
	return forward(c, h.client, domain.BackendMatching, http.MethodGet, "/matching/relationships/check", query, nil)
}

// ActiveRelationship returns a user's active match.
func (h *MatchingHandler) ActiveRelationship(c echo.Context) error {
	return forward(c, h.client, domain.BackendMatching, http.MethodGet, "/matching/relationships/user/"+c.Param("user_id")+"/active", nil, nil)
}
