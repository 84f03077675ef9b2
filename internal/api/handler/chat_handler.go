package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/heartlink/gateway/internal/core/domain"
	"github.com/heartlink/gateway/internal/core/ports"
)

// ChatHandler forwards chat listing and read-marking to the chat backend,
// always scoped by the caller's verified identity. The live message stream
// is handled separately by the relay.
type ChatHandler struct {
	client ports.BackendClient
}

func NewChatHandler(client ports.BackendClient) *ChatHandler {
	return &ChatHandler{client: client}
}

// Chats lists the caller's chats with pagination passed through.
func (h *ChatHandler) Chats(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	query := userQuery(claims)
	if skip := c.QueryParam("skip"); skip != "" {
		query.Set("skip", skip)
	}
	if limit := c.QueryParam("limit"); limit != "" {
		query.Set("limit", limit)
	}
	return forward(c, h.client, domain.BackendChat, http.MethodGet, "/chats", query, nil)
}

// Messages returns the message history of one chat.
func (h *ChatHandler) Messages(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	query := userQuery(claims)
	if page := c.QueryParam("page"); page != "" {
		query.Set("page", page)
	}
	if size := c.QueryParam("page_size"); size != "" {
		query.Set("page_size", size)
	}
	return forward(c, h.client, domain.BackendChat, http.MethodGet, "/chats/"+c.Param("chat_id")+"/messages", query, nil)
}

// MarkRead marks all messages of one chat as read.
func (h *ChatHandler) MarkRead(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return forward(c, h.client, domain.BackendChat, http.MethodPost, "/chats/"+c.Param("chat_id")+"/read", userQuery(claims), nil)
}

// ByRelationship returns the chat belonging to one relationship.
func (h *ChatHandler) ByRelationship(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return forward(c, h.client, domain.BackendChat, http.MethodGet, "/chats/by-relationship/"+c.Param("relationship_id"), userQuery(claims), nil)
}
