package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"roiengine/internal/domain"
	"roiengine/pkg/logger"
	"roiengine/pkg/metrics"

	"github.com/google/uuid"
)

// MetricService records business metric samples and turns them into
// aggregations, trends and dashboards.
type MetricService struct {
	metricRepo domain.MetricRepository
	alertRepo  domain.AlertRepository
	aggregator *Aggregator
	builder    *DashboardBuilder
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

func NewMetricService(
	metricRepo domain.MetricRepository,
	alertRepo domain.AlertRepository,
	aggregator *Aggregator,
	builder *DashboardBuilder,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *MetricService {
	return &MetricService{
		metricRepo: metricRepo,
		alertRepo:  alertRepo,
		aggregator: aggregator,
		builder:    builder,
		logger:     logger,
		metrics:    metrics,
	}
}

// RecordMetric stores one sample. Samples are immutable; later samples
// supersede, never edit, earlier ones.
func (s *MetricService) RecordMetric(ctx context.Context, metric domain.BusinessMetric) (*domain.BusinessMetric, error) {
	if !metric.Type.IsValid() {
		return nil, &domain.ValidationError{Field: "type", Reason: fmt.Sprintf("unknown metric type %q", metric.Type)}
	}
	if metric.Confidence < 0 || metric.Confidence > 100 {
		return nil, &domain.ValidationError{Field: "confidence", Value: metric.Confidence, Reason: "must be between 0 and 100"}
	}

	if metric.ID == uuid.Nil {
		metric.ID = uuid.New()
	}
	if metric.RecordedAt.IsZero() {
		metric.RecordedAt = time.Now().UTC()
	}
	if metric.Trend == "" {
		metric.Trend = domain.TrendStable
	}

	if err := s.metricRepo.Store(ctx, metric); err != nil {
		return nil, fmt.Errorf("failed to store metric: %w", err)
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"metric_id":   metric.ID,
		"workflow_id": metric.WorkflowID,
		"type":        metric.Type,
		"value":       metric.Value,
	}).Debug("Recorded business metric")

	return &metric, nil
}

// AggregateWorkflowMetrics summarizes one workflow's samples of one type
// inside the window.
func (s *MetricService) AggregateWorkflowMetrics(ctx context.Context, workflowID string, metricType domain.BusinessMetricType, from, to time.Time) (domain.MetricAggregation, error) {
	if !metricType.IsValid() {
		return domain.MetricAggregation{}, &domain.ValidationError{Field: "type", Reason: fmt.Sprintf("unknown metric type %q", metricType)}
	}

	samples, err := s.metricRepo.GetByWorkflow(ctx, workflowID, metricType, from, to)
	if err != nil {
		return domain.MetricAggregation{}, fmt.Errorf("failed to load metrics: %w", err)
	}

	values := make([]float64, len(samples))
	for i, sample := range samples {
		values[i] = sample.Value
	}

	s.metrics.RecordAggregation(string(metricType))
	return s.aggregator.Aggregate(values), nil
}

// BuildDashboard folds an organization's samples inside the window into the
// dashboard snapshot, including per-workflow rollups, classified trends and
// the organization's unresolved alerts.
func (s *MetricService) BuildDashboard(ctx context.Context, organizationID string, from, to time.Time) (domain.BusinessDashboard, error) {
	log := s.logger.WithContext(ctx)

	samples, err := s.metricRepo.GetByOrganization(ctx, organizationID, from, to)
	if err != nil {
		return domain.BusinessDashboard{}, fmt.Errorf("failed to load metrics: %w", err)
	}

	workflows := rollupWorkflows(samples)
	trends := s.classifyTrends(samples)

	alerts, err := s.alertRepo.GetUnresolvedByOrganization(ctx, organizationID)
	if err != nil {
		return domain.BusinessDashboard{}, fmt.Errorf("failed to load alerts: %w", err)
	}

	dashboard := s.builder.Build(organizationID, workflows, trends, alerts)
	s.metrics.DashboardsBuilt.Inc()

	log.WithFields(map[string]any{
		"organization_id": organizationID,
		"workflows":       len(workflows),
		"trends":          len(trends),
		"alerts":          len(alerts),
	}).Info("Dashboard generated")

	return dashboard, nil
}

// rollupWorkflows folds raw samples into per-workflow rollups: sums for
// time/cost/error metrics, the mean for success rate, throughput counted as
// executions.
func rollupWorkflows(samples []domain.BusinessMetric) []domain.WorkflowMetric {
	type accumulator struct {
		metric       domain.WorkflowMetric
		successSum   float64
		successCount int
	}

	byWorkflow := make(map[string]*accumulator)
	for _, sample := range samples {
		acc, ok := byWorkflow[sample.WorkflowID]
		if !ok {
			acc = &accumulator{metric: domain.WorkflowMetric{
				WorkflowID:   sample.WorkflowID,
				WorkflowName: sample.WorkflowID,
			}}
			byWorkflow[sample.WorkflowID] = acc
		}

		switch sample.Type {
		case domain.MetricTimeSaved:
			acc.metric.HoursSaved += sample.Value
		case domain.MetricCostSavings:
			acc.metric.CostSavings += sample.Value
		case domain.MetricErrorReduction:
			acc.metric.ErrorsAvoided += int(sample.Value)
		case domain.MetricThroughput:
			acc.metric.Executions += int(sample.Value)
		case domain.MetricSuccessRate:
			acc.successSum += sample.Value
			acc.successCount++
		}
	}

	workflows := make([]domain.WorkflowMetric, 0, len(byWorkflow))
	for _, acc := range byWorkflow {
		if acc.successCount > 0 {
			acc.metric.SuccessRate = acc.successSum / float64(acc.successCount)
		}
		workflows = append(workflows, acc.metric)
	}
	sort.Slice(workflows, func(i, j int) bool { return workflows[i].WorkflowID < workflows[j].WorkflowID })
	return workflows
}

// classifyTrends groups samples per (workflow, type), orders them by time and
// classifies the direction of each series.
func (s *MetricService) classifyTrends(samples []domain.BusinessMetric) []domain.BusinessTrend {
	type seriesKey struct {
		workflowID string
		metricType domain.BusinessMetricType
	}

	bySeries := make(map[seriesKey][]domain.TimeSeriesData)
	for _, sample := range samples {
		key := seriesKey{sample.WorkflowID, sample.Type}
		bySeries[key] = append(bySeries[key], domain.TimeSeriesData{
			Timestamp: sample.RecordedAt,
			Value:     sample.Value,
		})
	}

	keys := make([]seriesKey, 0, len(bySeries))
	for key := range bySeries {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].workflowID != keys[j].workflowID {
			return keys[i].workflowID < keys[j].workflowID
		}
		return keys[i].metricType < keys[j].metricType
	})

	trends := make([]domain.BusinessTrend, 0, len(keys))
	for _, key := range keys {
		points := bySeries[key]
		sort.Slice(points, func(i, j int) bool { return points[i].Timestamp.Before(points[j].Timestamp) })

		direction, change := s.builder.ClassifyTrend(points)
		trends = append(trends, domain.BusinessTrend{
			WorkflowID:    key.workflowID,
			MetricType:    key.metricType,
			Direction:     direction,
			ChangePercent: change,
			Points:        points,
		})
	}
	return trends
}
