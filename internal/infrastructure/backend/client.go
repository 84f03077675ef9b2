package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/heartlink/gateway/internal/api/metrics"
	"github.com/heartlink/gateway/internal/core/domain"
	"github.com/heartlink/gateway/internal/core/ports"
	"github.com/heartlink/gateway/internal/infrastructure/config"
)

// Client is the single outbound transport to the backends. One http.Client
// with a bounded timeout is shared by all requests; its connection pool is
// safe for concurrent use, and each request owns its connection for the
// request's lifetime.
type Client struct {
	http  *http.Client
	bases map[domain.Backend]string
	log   zerolog.Logger
}

// New builds a Client from the configured backend base addresses.
func New(cfg *config.Config, log zerolog.Logger) *Client {
	timeout := cfg.BackendTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
		bases: map[domain.Backend]string{
			domain.BackendAuth:     strings.TrimRight(cfg.Backends.AuthURL, "/"),
			domain.BackendUser:     strings.TrimRight(cfg.Backends.UserURL, "/"),
			domain.BackendMatching: strings.TrimRight(cfg.Backends.MatchingURL, "/"),
			domain.BackendChat:     strings.TrimRight(cfg.Backends.ChatURL, "/"),
		},
		log: log,
	}
}

// Do issues one HTTP call to the named backend and returns the completed
// response regardless of status; classifying non-success statuses is the
// caller's decision. Transport failures and timeouts come back as
// *domain.BackendDownError.
func (c *Client) Do(ctx context.Context, backend domain.Backend, method, path string, query url.Values, body any) (*ports.Response, error) {
	base, ok := c.bases[backend]
	if !ok {
		return nil, fmt.Errorf("unknown backend %q", backend)
	}

	target := base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	case json.RawMessage:
		reader = bytes.NewReader(b)
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(string(backend)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(string(backend), "unreachable").Inc()
		c.log.Warn().Err(err).Str("backend", string(backend)).Str("url", target).Msg("backend unreachable")
		return nil, &domain.BackendDownError{Backend: backend, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(string(backend), "unreachable").Inc()
		return nil, &domain.BackendDownError{Backend: backend, Err: err}
	}

	metrics.BackendRequestsTotal.WithLabelValues(string(backend), fmt.Sprintf("%d", resp.StatusCode)).Inc()
	return &ports.Response{Status: resp.StatusCode, Body: data}, nil
}

// WebSocketURL derives the stream address of a backend from its HTTP base
// by substituting the scheme (http→ws, https→wss) and appending the
// identity path segment. The identifier must come from verified claims so
// a client can never choose which backend identity it reaches.
func (c *Client) WebSocketURL(backend domain.Backend, userID int64) string {
	base := c.bases[backend]
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return fmt.Sprintf("%s/ws/%d", base, userID)
}
