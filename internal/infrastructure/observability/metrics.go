package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all application metrics
type Metrics struct {
	// Transfer metrics
	TransfersTotal   *prometheus.CounterVec
	TransferAmount   *prometheus.HistogramVec
	PendingTransfers prometheus.Gauge

	// Settlement metrics
	SettlementTicks        *prometheus.CounterVec
	SettlementTickDuration prometheus.Histogram
	TransfersSettled       *prometheus.CounterVec

	// Account metrics
	AccountsTotal  *prometheus.CounterVec
	DepositsTotal  prometheus.Counter
	AccountsClosed prometheus.Counter

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all metrics against the given registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := prometheus.WrapRegistererWith(nil, reg)

	m := &Metrics{
		TransfersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transfers_total",
				Help:      "Total number of transfers by outcome",
			},
			[]string{"status"},
		),
		TransferAmount: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "transfer_amount_cents",
				Help:      "Transfer amounts in cents",
				Buckets:   prometheus.ExponentialBuckets(100, 10, 7),
			},
			[]string{"status"},
		),
		PendingTransfers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "pending_transfers",
				Help:      "Number of transfers currently awaiting settlement",
			},
		),
		SettlementTicks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "settlement_ticks_total",
				Help:      "Total number of settlement ticks by result",
			},
			[]string{"result"},
		),
		SettlementTickDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "settlement_tick_duration_seconds",
				Help:      "Settlement tick duration in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
		),
		TransfersSettled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transfers_settled_total",
				Help:      "Total number of transfers settled by terminal state",
			},
			[]string{"status"},
		),
		AccountsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "accounts_created_total",
				Help:      "Total number of accounts created",
			},
			[]string{"kind"},
		),
		DepositsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "deposits_total",
				Help:      "Total number of deposits",
			},
		),
		AccountsClosed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "accounts_closed_total",
				Help:      "Total number of accounts closed",
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	// Register all collectors
	factory.MustRegister(
		m.TransfersTotal,
		m.TransferAmount,
		m.PendingTransfers,
		m.SettlementTicks,
		m.SettlementTickDuration,
		m.TransfersSettled,
		m.AccountsTotal,
		m.DepositsTotal,
		m.AccountsClosed,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)

	return m
}
