// Package metrics defines and registers all custom Prometheus metrics for the
// storefront API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at package
// init via promauto; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// RequestOutcomesTotal counts terminal responses by their side-channel
// classification. The reserved value "unclassified" marks responses that
// reached the reporter without an attached outcome.
var RequestOutcomesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_outcomes_total",
		Help:      "Total number of terminal responses, labelled by outcome classification.",
	},
	[]string{"classification"},
)

// AuthRejectionsTotal counts requests rejected by the access gate.
// Label:
//   - reason: "missing_header", "bad_scheme", "token_invalid", "token_expired",
//     "role_mismatch", "store_error"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the access gate, by reason.",
	},
	[]string{"reason"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "throttled", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// MutationsTotal counts transactional mutations by resource and result.
// Labels:
//   - resource: "user", "category", "product", "cart", "image"
//   - result: "committed", "rolled_back"
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of transactional mutations, by resource and result.",
	},
	[]string{"resource", "result"},
)
