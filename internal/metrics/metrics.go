// Package metrics exposes Prometheus collectors for the HTTP API and the
// authentication flows.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by route and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "identity",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "route", "status"})

	// RequestDuration observes HTTP request latency by route.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "identity",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// LoginsTotal counts login attempts by method and result.
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "identity",
		Name:      "logins_total",
		Help:      "Login attempts by method and result.",
	}, []string{"method", "result"})

	// SignupsTotal counts completed signups by method.
	SignupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "identity",
		Name:      "signups_total",
		Help:      "Completed signups by method.",
	}, []string{"method"})

	// TwoFactorChallengesTotal counts second-factor verifications by result.
	TwoFactorChallengesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "identity",
		Name:      "two_factor_challenges_total",
		Help:      "Second-factor verifications by result.",
	}, []string{"result"})
)
