package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Calculation metrics
	CalculationsTotal    *prometheus.CounterVec
	CalculationDuration  *prometheus.HistogramVec
	CalculationsRejected *prometheus.CounterVec
	NonConvergentResults *prometheus.CounterVec

	// Alert metrics
	AlertsEmitted  *prometheus.CounterVec
	AlertsDeduped  prometheus.Counter
	AlertsResolved prometheus.Counter

	// Dashboard metrics
	DashboardsBuilt   prometheus.Counter
	AggregationsTotal *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		CalculationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roi_calculations_total",
				Help: "Total number of ROI calculations",
			},
			[]string{"status"},
		),

		CalculationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "roi_calculation_duration_seconds",
				Help:    "ROI calculation duration in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"stage"},
		),

		CalculationsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roi_calculations_rejected_total",
				Help: "Total number of calculations rejected by validation",
			},
			[]string{"field"},
		),

		NonConvergentResults: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roi_non_convergent_results_total",
				Help: "Total number of results reported as non-convergent",
			},
			[]string{"metric"},
		),

		AlertsEmitted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "business_alerts_emitted_total",
				Help: "Total number of business alerts emitted",
			},
			[]string{"metric", "severity"},
		),

		AlertsDeduped: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "business_alerts_deduped_total",
				Help: "Total number of alert evaluations folded into an existing unresolved alert",
			},
		),

		AlertsResolved: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "business_alerts_resolved_total",
				Help: "Total number of alerts resolved by operators",
			},
		),

		DashboardsBuilt: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "business_dashboards_built_total",
				Help: "Total number of dashboards generated",
			},
		),

		AggregationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "metric_aggregations_total",
				Help: "Total number of metric aggregations computed",
			},
			[]string{"metric_type"},
		),
	}
}

// HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// Calculation metrics
func (m *Metrics) RecordCalculation(status string, stage string, duration time.Duration) {
	m.CalculationsTotal.WithLabelValues(status).Inc()
	m.CalculationDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// Validation rejection metrics
func (m *Metrics) RecordRejection(field string) {
	m.CalculationsRejected.WithLabelValues(field).Inc()
}

// Non-convergent result metrics
func (m *Metrics) RecordNonConvergent(metric string) {
	m.NonConvergentResults.WithLabelValues(metric).Inc()
}

// Alert metrics
func (m *Metrics) RecordAlert(metric, severity string) {
	m.AlertsEmitted.WithLabelValues(metric, severity).Inc()
}

// Aggregation metrics
func (m *Metrics) RecordAggregation(metricType string) {
	m.AggregationsTotal.WithLabelValues(metricType).Inc()
}

// HTTP requests in flight counter
func (m *Metrics) IncHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// HTTP requests in flight counter
func (m *Metrics) DecHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}
