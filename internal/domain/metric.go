package domain

import (
	"time"

	"github.com/google/uuid"
)

// BusinessMetricType classifies a recorded measurement. Closed set; the
// evaluator and aggregator switch over it exhaustively.
type BusinessMetricType string

const (
	MetricTimeSaved           BusinessMetricType = "time_saved"
	MetricCostSavings         BusinessMetricType = "cost_savings"
	MetricErrorReduction      BusinessMetricType = "error_reduction"
	MetricThroughput          BusinessMetricType = "throughput"
	MetricSuccessRate         BusinessMetricType = "success_rate"
	MetricResourceUtilization BusinessMetricType = "resource_utilization"
)

func (t BusinessMetricType) IsValid() bool {
	switch t {
	case MetricTimeSaved, MetricCostSavings, MetricErrorReduction,
		MetricThroughput, MetricSuccessRate, MetricResourceUtilization:
		return true
	default:
		return false
	}
}

// TrendDirection classifies the movement of a metric over time.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// BusinessMetric is one timestamped sample of a typed measurement for a
// workflow. Immutable once recorded; superseded, not edited, by later
// samples.
type BusinessMetric struct {
	ID             uuid.UUID          `json:"id"`
	WorkflowID     string             `json:"workflow_id"`
	OrganizationID string             `json:"organization_id"`
	Type           BusinessMetricType `json:"type"`
	Value          float64            `json:"value"`
	Unit           string             `json:"unit"`
	Trend          TrendDirection     `json:"trend"`
	Confidence     float64            `json:"confidence"` // 0-100
	RecordedAt     time.Time          `json:"recorded_at"`
}

// TimeSeriesData is one point of a metric time series.
type TimeSeriesData struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// MetricAggregation is the statistical summary of a numeric series. Pure
// value object, always re-derivable from the underlying samples. When Count
// is zero every other field is zero and must not be read as meaningful.
type MetricAggregation struct {
	Sum     float64 `json:"sum"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	StdDev  float64 `json:"std_dev"`
	P25     float64 `json:"p25"`
	P50     float64 `json:"p50"`
	P75     float64 `json:"p75"`
	P90     float64 `json:"p90"`
	P95     float64 `json:"p95"`
}

// BusinessTrend is the classified movement of one metric type for a
// workflow, with the underlying points.
type BusinessTrend struct {
	WorkflowID    string             `json:"workflow_id"`
	MetricType    BusinessMetricType `json:"metric_type"`
	Direction     TrendDirection     `json:"direction"`
	ChangePercent float64            `json:"change_percent"`
	Points        []TimeSeriesData   `json:"points"`
}
