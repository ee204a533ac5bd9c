package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Cash ledger metrics
	MovementsRecorded *prometheus.CounterVec
	MovementAmount    *prometheus.HistogramVec
	ClosesCreated     prometheus.Counter
	CloseConflicts    prometheus.Counter

	// Scheduling metrics
	ServicesCreated *prometheus.CounterVec
	ExportsServed   prometheus.Counter

	// Reconciliation metrics
	ReconcileRuns      prometheus.Counter
	MovementsRetagged  prometheus.Counter
	ClosesBackfilled   prometheus.Counter
	ReconcileFailures  prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		MovementsRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fletes_movements_recorded_total",
				Help: "Total cash movements recorded by type and method",
			},
			[]string{"type", "method"},
		),
		MovementAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fletes_movement_amount",
				Help:    "Cash movement amounts",
				Buckets: []float64{1000, 5000, 10000, 50000, 100000, 500000, 1000000},
			},
			[]string{"type"},
		),
		ClosesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fletes_closes_created_total",
			Help: "Total daily closes created",
		}),
		CloseConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fletes_close_conflicts_total",
			Help: "Total close attempts rejected for an already-closed day",
		}),

		ServicesCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fletes_services_created_total",
				Help: "Total services scheduled by type",
			},
			[]string{"type"},
		),
		ExportsServed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fletes_exports_served_total",
			Help: "Total monthly CSV exports served",
		}),

		ReconcileRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fletes_reconcile_runs_total",
			Help: "Total reconciliation runs",
		}),
		MovementsRetagged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fletes_reconcile_movements_retagged_total",
			Help: "Total legacy movements retagged to transfer accounts",
		}),
		ClosesBackfilled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fletes_reconcile_closes_backfilled_total",
			Help: "Total daily closes backfilled with per-account totals",
		}),
		ReconcileFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fletes_reconcile_failures_total",
			Help: "Total organizations skipped by a reconciliation run",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fletes_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fletes_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fletes_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),
	}
}
