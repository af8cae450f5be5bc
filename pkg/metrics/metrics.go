// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payportal_http_requests_total",
		Help: "Total HTTP requests processed, labeled by status code",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "payportal_http_request_duration_seconds",
		Help:    "Latency distribution of HTTP requests",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "route"})

	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payportal_login_attempts_total",
		Help: "Login attempts, labeled by role and outcome",
	}, []string{"role", "outcome"})

	AuditWriteFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payportal_audit_write_failures_total",
		Help: "Login audit records that could not be persisted",
	})

	TransactionsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payportal_transactions_created_total",
		Help: "Transfer requests accepted, labeled by source currency",
	}, []string{"currency"})

	TransactionTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payportal_transaction_transitions_total",
		Help: "Status transitions attempted by staff, labeled by target status and result",
	}, []string{"to", "result"})

	ExchangeRateLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payportal_exchange_rate_lookups_total",
		Help: "Exchange rate lookups, labeled by where the rate came from",
	}, []string{"source"})

	LockoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payportal_login_lockouts_total",
		Help: "Login requests rejected by the brute-force guard",
	})
)
