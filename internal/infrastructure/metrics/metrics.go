package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsRecorded *prometheus.CounterVec
	TransactionAmount    *prometheus.HistogramVec
	TransfersRecorded    prometheus.Counter

	// Ledger metrics
	LedgerSyncs         *prometheus.CounterVec
	LedgerSyncDuration  prometheus.Histogram
	SnapshotsCreated    prometheus.Counter
	MonthsRecomputed    prometheus.Counter
	CascadeLength       prometheus.Histogram
	CascadeLimitReached prometheus.Counter
	LockWaitDuration    prometheus.Histogram

	// Due metrics
	DuesCreated prometheus.Counter
	DuesSettled prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Cache metrics
	CacheLookups *prometheus.CounterVec

	// Event metrics
	EventsPublished *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates all Prometheus metrics and registers them with reg.
// A nil reg registers with the default registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Metrics{
		// Transaction metrics
		TransactionsRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spendwise_transactions_recorded_total",
				Help: "Total number of transactions recorded by kind",
			},
			[]string{"kind"},
		),
		TransactionAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "spendwise_transaction_amount",
				Help:    "Recorded transaction amounts",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"kind"},
		),
		TransfersRecorded: factory.NewCounter(prometheus.CounterOpts{
			Name: "spendwise_transfers_recorded_total",
			Help: "Total number of transfers between wallets",
		}),

		// Ledger metrics
		LedgerSyncs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spendwise_ledger_syncs_total",
				Help: "Total ledger syncs by outcome",
			},
			[]string{"result"},
		),
		LedgerSyncDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "spendwise_ledger_sync_duration_seconds",
			Help:    "Duration of ledger syncs including lock wait",
			Buckets: prometheus.DefBuckets,
		}),
		SnapshotsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "spendwise_monthly_snapshots_created_total",
			Help: "Total number of monthly balance snapshots materialized",
		}),
		MonthsRecomputed: factory.NewCounter(prometheus.CounterOpts{
			Name: "spendwise_months_recomputed_total",
			Help: "Total number of monthly balance recomputations",
		}),
		CascadeLength: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "spendwise_cascade_months",
			Help:    "Number of months recomputed per cascade",
			Buckets: []float64{1, 2, 3, 6, 12, 24, 48},
		}),
		CascadeLimitReached: factory.NewCounter(prometheus.CounterOpts{
			Name: "spendwise_cascade_limit_reached_total",
			Help: "Total number of cascades stopped by the iteration bound",
		}),
		LockWaitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "spendwise_wallet_lock_wait_seconds",
			Help:    "Time spent waiting for per-wallet locks",
			Buckets: prometheus.DefBuckets,
		}),

		// Due metrics
		DuesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "spendwise_dues_created_total",
			Help: "Total number of dues created",
		}),
		DuesSettled: factory.NewCounter(prometheus.CounterOpts{
			Name: "spendwise_dues_settled_total",
			Help: "Total number of dues settled",
		}),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spendwise_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "spendwise_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "spendwise_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),

		// Cache metrics
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spendwise_balance_cache_lookups_total",
				Help: "Balance cache lookups by result",
			},
			[]string{"result"},
		),

		// Event metrics
		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spendwise_events_published_total",
				Help: "Published events by type and status",
			},
			[]string{"event_type", "status"},
		),

		// Rate limiting metrics
		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "spendwise_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),
	}
}
