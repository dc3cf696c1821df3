package infrastructure

import (
	"context"
	"sync"

	"roiengine/internal/domain"
	"roiengine/pkg/logger"
)

// implements domain.AlertRepository
type AlertRepository struct {
	data   map[string]*domain.BusinessAlert
	mutex  sync.RWMutex
	logger *logger.Logger
}

// creates a new alert repository
func NewAlertRepository(logger *logger.Logger) *AlertRepository {
	return &AlertRepository{
		data:   make(map[string]*domain.BusinessAlert),
		logger: logger,
	}
}

func (r *AlertRepository) Store(ctx context.Context, alert *domain.BusinessAlert) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	stored := *alert
	r.data[alert.ID.String()] = &stored

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"alert_id":    alert.ID,
		"workflow_id": alert.WorkflowID,
		"metric":      alert.Metric,
	}).Debug("Stored alert in memory")
	return nil
}

func (r *AlertRepository) GetByID(ctx context.Context, id string) (*domain.BusinessAlert, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	alert, ok := r.data[id]
	if !ok {
		return nil, domain.ErrAlertNotFound
	}
	copied := *alert
	return &copied, nil
}

// FindUnresolved returns the single unresolved alert for the
// (metric, workflow) tag combination, or nil when none exists.
func (r *AlertRepository) FindUnresolved(ctx context.Context, metric domain.BusinessMetricType, workflowID string) (*domain.BusinessAlert, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, alert := range r.data {
		if alert.Metric == metric && alert.WorkflowID == workflowID && !alert.Resolved() {
			copied := *alert
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *AlertRepository) GetUnresolvedByOrganization(ctx context.Context, organizationID string) ([]domain.BusinessAlert, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []domain.BusinessAlert
	for _, alert := range r.data {
		if alert.OrganizationID == organizationID && !alert.Resolved() {
			result = append(result, *alert)
		}
	}
	return result, nil
}

func (r *AlertRepository) Update(ctx context.Context, alert *domain.BusinessAlert) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.data[alert.ID.String()]; !ok {
		return domain.ErrAlertNotFound
	}
	stored := *alert
	r.data[alert.ID.String()] = &stored
	return nil
}
