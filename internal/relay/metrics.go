package relay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_requests_total",
		Help: "Relay HTTP responses by status code.",
	}, []string{"status"})

	sendsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_sends_total",
		Help: "Upstream Telegram send attempts by kind and outcome.",
	}, []string{"kind", "outcome"})
)
