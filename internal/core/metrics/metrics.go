package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics are labeled by the chi route pattern, not the raw path,
// to keep cardinality bounded.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Count of HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

var (
	InwardRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_inward_recorded_total",
		Help: "Count of inward entries appended to the ledger.",
	})

	IssueRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_issue_recorded_total",
		Help: "Count of issue entries appended to the ledger.",
	})

	IssueRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_issue_rejected_total",
		Help: "Count of issue attempts rejected for insufficient stock.",
	})

	EntriesDeletedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_entries_deleted_total",
		Help: "Count of ledger entries deleted, by ledger side.",
	}, []string{"ledger"})

	CascadedIssueDeletesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_cascaded_issue_deletes_total",
		Help: "Count of issue entries removed by inward-delete cascades.",
	})
)
