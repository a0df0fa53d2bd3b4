// Package metrics defines the custom Prometheus metrics for the bookstore
// account service. It is the single source of truth for metric names, labels,
// and help strings.
//
// All metrics register with the default Prometheus registry on import; HTTP
// request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookstore"

// LoginAttemptsTotal counts login attempts.
// Label:
//   - outcome: "success", "invalid_credentials", "deactivated", "invalid_input", or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// PasswordChangesTotal counts password change requests.
// Label:
//   - outcome: "success", "invalid_credentials", "invalid_input", or "error"
var PasswordChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_changes_total",
		Help:      "Total number of password change requests, by outcome.",
	},
	[]string{"outcome"},
)

// AuthorizationDecisionsTotal counts authorization gate decisions.
// Label:
//   - decision: "allow", "unauthenticated", or "forbidden"
var AuthorizationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_decisions_total",
		Help:      "Total number of authorization decisions, by result.",
	},
	[]string{"decision"},
)

// SessionsIssuedTotal counts session tokens minted.
// Label:
//   - reason: "login" or "renewal"
var SessionsIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of session tokens issued, by reason.",
	},
	[]string{"reason"},
)

// AdminMutationsTotal counts administrative account and role changes.
// Labels:
//   - entity: "account" or "role"
//   - operation: "create", "update", "deactivate", or "delete"
var AdminMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_mutations_total",
		Help:      "Total number of successful administrative mutations.",
	},
	[]string{"entity", "operation"},
)
