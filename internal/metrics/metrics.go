// Package metrics holds the process-wide Prometheus collectors. Collectors
// are registered on the default registry at init via promauto.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SettlementRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mess_settlement_runs_total",
		Help: "Settlement runs by outcome (committed, skipped, failed).",
	}, []string{"outcome"})

	SettledMembers = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mess_settled_members_total",
		Help: "Members whose deposits were deducted by settlement runs.",
	})

	IntegrityIssues = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mess_integrity_issues_total",
		Help: "Integrity issues detected by verification passes, by type.",
	}, []string{"type"})

	IntegrityFixes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mess_integrity_fixes_total",
		Help: "Corrections applied by integrity fix passes.",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mess_http_requests_total",
		Help: "HTTP requests by method, route pattern and status class.",
	}, []string{"method", "route", "status"})
)

// Handler serves the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
