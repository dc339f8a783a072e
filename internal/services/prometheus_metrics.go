package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	analyticsRequests   *prometheus.CounterVec
	analyticsDuration   *prometheus.HistogramVec
	anomaliesDetected   prometheus.Histogram
	anomaliesDismissed  prometheus.Counter
	expensesCreated     *prometheus.CounterVec
	expensesDeleted     prometheus.Counter
	ledgerMonths        prometheus.Gauge
	authenticationTotal *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		analyticsRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analytics_requests_total",
				Help: "Total number of analytics operations served",
			},
			[]string{"operation", "status"},
		),
		analyticsDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "analytics_duration_milliseconds",
				Help:    "Analytics operation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"operation"},
		),
		anomaliesDetected: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "anomalies_detected_per_scan",
				Help:    "Number of anomalies flagged per detection scan",
				Buckets: prometheus.ExponentialBuckets(1, 2, 8),
			},
		),
		anomaliesDismissed: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "anomalies_dismissed_total",
				Help: "Total number of anomalies dismissed",
			},
		),
		expensesCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "expenses_created_total",
				Help: "Total number of expenses recorded by category",
			},
			[]string{"category"},
		),
		expensesDeleted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "expenses_deleted_total",
				Help: "Total number of expenses deleted",
			},
		),
		ledgerMonths: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledger_months_of_data",
				Help: "Distinct calendar months present in the expense ledger",
			},
		),
		authenticationTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event", "status"},
		),
	}
}

func (m *PrometheusMetrics) RecordAnalyticsRequest(operation, status string) {
	m.analyticsRequests.WithLabelValues(operation, status).Inc()
}

func (m *PrometheusMetrics) RecordAnalyticsDuration(operation string, duration time.Duration) {
	m.analyticsDuration.WithLabelValues(operation).Observe(float64(duration.Milliseconds()))
}

func (m *PrometheusMetrics) RecordAnomaliesDetected(count int) {
	m.anomaliesDetected.Observe(float64(count))
}

func (m *PrometheusMetrics) RecordAnomalyDismissed() {
	m.anomaliesDismissed.Inc()
}

func (m *PrometheusMetrics) RecordExpenseCreated(category string) {
	m.expensesCreated.WithLabelValues(category).Inc()
}

func (m *PrometheusMetrics) RecordExpenseDeleted() {
	m.expensesDeleted.Inc()
}

func (m *PrometheusMetrics) SetLedgerMonths(months int) {
	m.ledgerMonths.Set(float64(months))
}

func (m *PrometheusMetrics) RecordAuthenticationEvent(event, status string) {
	m.authenticationTotal.WithLabelValues(event, status).Inc()
}
