package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(checkoutSessionsTotal) }

var checkoutSessionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "checkout_sessions_total",
		Help: "Hosted checkout sessions by outcome (created/failed).",
	},
	[]string{"outcome"},
)

func IncCheckoutSession(outcome string) {
	checkoutSessionsTotal.WithLabelValues(norm(outcome)).Inc()
}
