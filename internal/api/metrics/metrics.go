// Package metrics defines and registers all custom Prometheus metrics for
// the gateway. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry
// at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gateway"

// ── Backend call metrics ─────────────────────────────────────────────────────

// BackendRequestsTotal counts completed outbound calls per backend.
// Labels:
//   - backend: auth, user, matching, chat
//   - status: numeric HTTP status, or "unreachable" for transport failures
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of outbound backend calls, by backend and status.",
	},
	[]string{"backend", "status"},
)

// BackendRequestDuration measures the wall time of one outbound backend call.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of outbound backend calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"backend"},
)

// ── Auth metrics ─────────────────────────────────────────────────────────────

// AuthFailuresTotal counts rejected credentials.
// Label:
//   - reason: "invalid_token", "token_expired", "missing_header"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected authentication attempts, by reason.",
	},
	[]string{"reason"},
)

// ── Stream relay metrics ─────────────────────────────────────────────────────

// RelaySessionsActive tracks the number of live client/backend stream pairs.
var RelaySessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "relay_sessions_active",
		Help:      "Number of currently bridged WebSocket relay sessions.",
	},
)

// RelayMessagesTotal counts messages pumped through the relay.
// Label:
//   - direction: "client_to_backend" or "backend_to_client"
var RelayMessagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "relay_messages_total",
		Help:      "Total number of relayed WebSocket messages, by direction.",
	},
	[]string{"direction"},
)
