package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "admin_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	AdminActionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_actions_total",
		Help: "Administrative actions by audit tag and outcome.",
	}, []string{"action", "outcome"})

	AdminActionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "admin_action_duration_seconds",
		Help:    "End-to-end administrative action latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"action"})

	AuditWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "admin_audit_write_failures_total",
		Help: "Audit entries that could not be persisted after a successful action.",
	})

	PeerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_peer_requests_total",
		Help: "Outbound calls to peer services by peer, operation and result.",
	}, []string{"peer", "operation", "result"})
)
