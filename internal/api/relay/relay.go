// Package relay bridges one authenticated client WebSocket to the chat
// backend's stream endpoint. The backend-side address is always derived
// from the server-verified identity, never from client input, so a client
// cannot reach another user's stream by tampering with the path.
package relay

import (
	"context"
	"errors"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/heartlink/gateway/internal/api/metrics"
	"github.com/heartlink/gateway/internal/core/domain"
	"github.com/heartlink/gateway/internal/core/ports"
)

// Close codes sent to the client. Authentication failures and backend
// rejections use one code, runtime failures another, so clients can
// distinguish "get a new token" from "try again later".
const (
	StatusAuthFailure   websocket.StatusCode = 4001
	StatusRelayInternal websocket.StatusCode = websocket.StatusInternalError
)

// writeTimeout bounds the best-effort error frame sent before a close.
const writeTimeout = 5 * time.Second

// StreamDialer opens the backend-side stream connection for a verified user.
type StreamDialer interface {
	WebSocketURL(backend domain.Backend, userID int64) string
}

// errorFrame is the one structured message sent to the client before an
// abnormal close.
type errorFrame struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// Relay accepts client stream connections, authenticates them, and pumps
// messages between client and chat backend until either side closes.
type Relay struct {
	verifier ports.TokenVerifier
	dialer   StreamDialer
	origins  []string
	logger   zerolog.Logger
}

func New(verifier ports.TokenVerifier, dialer StreamDialer, allowedOrigin string, logger zerolog.Logger) *Relay {
	var origins []string
	if allowedOrigin != "" {
		origins = []string{allowedOrigin}
	}
	return &Relay{verifier: verifier, dialer: dialer, origins: origins, logger: logger}
}

// Handle runs one relay session: accept, authenticate, bridge, close.
// The handshake is accepted before authentication so an error frame can be
// delivered over the socket; the token travels as a path segment because
// browsers cannot set headers on WebSocket connections.
func (r *Relay) Handle(c echo.Context) error {
	conn, err := websocket.Accept(c.Response().Writer, c.Request(), &websocket.AcceptOptions{
		OriginPatterns: r.origins,
	})
	if err != nil {
		return nil // Accept already wrote the handshake failure
	}
	defer conn.CloseNow()

	ctx := c.Request().Context()
	sessionID := uuid.New().String()
	log := r.logger.With().Str("session_id", sessionID).Logger()

	claims, err := r.verifier.Verify(c.Param("token"))
	if err != nil {
		r.reject(ctx, conn, StatusAuthFailure, authFailureMessage(err))
		return nil
	}
	userID := claims.Identity()
	if userID == 0 {
		r.reject(ctx, conn, StatusAuthFailure, "Invalid token")
		return nil
	}
	log = log.With().Int64("user_id", userID).Logger()

	backendConn, _, err := websocket.Dial(ctx, r.dialer.WebSocketURL(domain.BackendChat, userID), nil)
	if err != nil {
		log.Warn().Err(err).Msg("chat backend rejected stream connection")
		r.reject(ctx, conn, StatusAuthFailure, "Connection rejected: "+err.Error())
		return nil
	}
	defer backendConn.CloseNow()

	metrics.RelaySessionsActive.Inc()
	defer metrics.RelaySessionsActive.Dec()
	log.Info().Msg("relay session bridged")

	r.bridge(ctx, conn, backendConn, log)
	return nil
}

// bridge runs the two forwarding loops until the first one observes its
// peer closing or erroring, then tears down both sides. The shared cancel
// is the close signal: the surviving loop's blocked Read returns once the
// context is cancelled, so each connection is closed exactly once.
func (r *Relay) bridge(parent context.Context, client, backend *websocket.Conn, log zerolog.Logger) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	done := make(chan error, 2)
	go func() { done <- pump(ctx, client, backend, "client_to_backend") }()
	go func() { done <- pump(ctx, backend, client, "backend_to_client") }()

	err := <-done
	cancel()
	<-done

	switch {
	case err == nil || websocket.CloseStatus(err) != -1 || errors.Is(err, context.Canceled):
		log.Info().Msg("relay session closed")
		client.Close(websocket.StatusNormalClosure, "")
		backend.Close(websocket.StatusNormalClosure, "")
	default:
		log.Warn().Err(err).Msg("relay session failed")
		// Best effort: the client side may already be gone.
		writeCtx, cancelWrite := context.WithTimeout(parent, writeTimeout)
		_ = wsjson.Write(writeCtx, client, errorFrame{Type: "error", Error: "Connection error"})
		cancelWrite()
		client.Close(StatusRelayInternal, "relay failure")
		backend.Close(StatusRelayInternal, "relay failure")
	}
}

// pump forwards messages from src to dst, preserving type and order, until
// either side closes or errors. Panics are contained and reported as
// connection termination, never allowed to crash the process.
func pump(ctx context.Context, src, dst *websocket.Conn, direction string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.New("relay panic in " + direction)
		}
	}()
	for {
		typ, data, err := src.Read(ctx)
		if err != nil {
			return err
		}
		if err := dst.Write(ctx, typ, data); err != nil {
			return err
		}
		metrics.RelayMessagesTotal.WithLabelValues(direction).Inc()
	}
}

// reject sends one structured error frame and closes with the given code.
// A failed frame delivery must not prevent the close.
func (r *Relay) reject(ctx context.Context, conn *websocket.Conn, code websocket.StatusCode, msg string) {
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	_ = wsjson.Write(writeCtx, conn, errorFrame{Type: "error", Error: msg})
	_ = conn.Close(code, "rejected")
}

func authFailureMessage(err error) string {
	if errors.Is(err, domain.ErrTokenExpired) {
		return "Token expired"
	}
	return "Invalid token"
}
