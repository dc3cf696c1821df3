package domain

import (
	"context"
	"time"
)

// interface for calculation storage
type CalculationRepository interface {
	Store(ctx context.Context, calc *ROICalculation) error
	GetByID(ctx context.Context, id string) (*ROICalculation, error)
	GetByWorkflow(ctx context.Context, workflowID string) ([]*ROICalculation, error)
	GetByOrganization(ctx context.Context, organizationID string) ([]*ROICalculation, error)
	Update(ctx context.Context, calc *ROICalculation) error
}

// interface for metric sample storage
type MetricRepository interface {
	Store(ctx context.Context, metric BusinessMetric) error
	GetByWorkflow(ctx context.Context, workflowID string, metricType BusinessMetricType, from, to time.Time) ([]BusinessMetric, error)
	GetByOrganization(ctx context.Context, organizationID string, from, to time.Time) ([]BusinessMetric, error)
}

// interface for alert storage and dedup lookup
type AlertRepository interface {
	Store(ctx context.Context, alert *BusinessAlert) error
	GetByID(ctx context.Context, id string) (*BusinessAlert, error)
	FindUnresolved(ctx context.Context, metric BusinessMetricType, workflowID string) (*BusinessAlert, error)
	GetUnresolvedByOrganization(ctx context.Context, organizationID string) ([]BusinessAlert, error)
	Update(ctx context.Context, alert *BusinessAlert) error
}

// interface for the read-only industry benchmark reference table
type BenchmarkSource interface {
	Get(metric BenchmarkMetric) (BenchmarkEntry, error)
	All() ([]BenchmarkEntry, error)
}
