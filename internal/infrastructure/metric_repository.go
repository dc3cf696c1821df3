package infrastructure

import (
	"context"
	"sort"
	"sync"
	"time"

	"roiengine/internal/domain"
	"roiengine/pkg/logger"
)

// implements domain.MetricRepository
type MetricRepository struct {
	data   []domain.BusinessMetric
	mutex  sync.RWMutex
	logger *logger.Logger
}

// creates a new metric repository
func NewMetricRepository(logger *logger.Logger) *MetricRepository {
	return &MetricRepository{logger: logger}
}

func (r *MetricRepository) Store(ctx context.Context, metric domain.BusinessMetric) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.data = append(r.data, metric)

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"metric_id":   metric.ID,
		"workflow_id": metric.WorkflowID,
		"type":        metric.Type,
	}).Debug("Stored business metric in memory")
	return nil
}

func (r *MetricRepository) GetByWorkflow(ctx context.Context, workflowID string, metricType domain.BusinessMetricType, from, to time.Time) ([]domain.BusinessMetric, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []domain.BusinessMetric
	for _, metric := range r.data {
		if metric.WorkflowID != workflowID || metric.Type != metricType {
			continue
		}
		if inWindow(metric.RecordedAt, from, to) {
			result = append(result, metric)
		}
	}
	sortByTime(result)
	return result, nil
}

func (r *MetricRepository) GetByOrganization(ctx context.Context, organizationID string, from, to time.Time) ([]domain.BusinessMetric, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []domain.BusinessMetric
	for _, metric := range r.data {
		if metric.OrganizationID != organizationID {
			continue
		}
		if inWindow(metric.RecordedAt, from, to) {
			result = append(result, metric)
		}
	}
	sortByTime(result)
	return result, nil
}

func inWindow(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && t.After(to) {
		return false
	}
	return true
}

func sortByTime(metrics []domain.BusinessMetric) {
	sort.Slice(metrics, func(i, j int) bool {
		return metrics[i].RecordedAt.Before(metrics[j].RecordedAt)
	})
}
