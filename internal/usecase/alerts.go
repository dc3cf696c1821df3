package usecase

import (
	"context"
	"fmt"
	"time"

	"roiengine/internal/domain"
	"roiengine/pkg/logger"
	"roiengine/pkg/metrics"

	"github.com/google/uuid"
)

// AlertEvaluator evaluates threshold rules against current metric values and
// emits alerts, keeping at most one unresolved alert per (metric, workflow).
type AlertEvaluator struct {
	alertRepo domain.AlertRepository
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

func NewAlertEvaluator(alertRepo domain.AlertRepository, logger *logger.Logger, metrics *metrics.Metrics) *AlertEvaluator {
	return &AlertEvaluator{
		alertRepo: alertRepo,
		logger:    logger,
		metrics:   metrics,
	}
}

// Evaluate applies the threshold to the current value. It returns nil when
// the condition does not hold. When an unresolved alert for the same
// (metric, workflow) already exists, its current value is refreshed in place
// instead of creating a duplicate.
func (e *AlertEvaluator) Evaluate(ctx context.Context, organizationID, workflowID string, currentValue float64, threshold domain.MetricThreshold) (*domain.BusinessAlert, error) {
	if !threshold.Metric.IsValid() {
		return nil, &domain.ConfigurationError{Key: "threshold.metric", Reason: fmt.Sprintf("unknown metric type %q", threshold.Metric)}
	}
	if !threshold.Operator.IsValid() {
		return nil, &domain.ConfigurationError{Key: "threshold.operator", Reason: fmt.Sprintf("unknown operator %q", threshold.Operator)}
	}

	if !conditionHolds(threshold.Operator, currentValue, threshold.Value) {
		return nil, nil
	}

	log := e.logger.WithContext(ctx)

	existing, err := e.alertRepo.FindUnresolved(ctx, threshold.Metric, workflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up unresolved alert: %w", err)
	}
	if existing != nil {
		existing.CurrentValue = currentValue
		existing.Message = alertMessage(threshold, currentValue)
		existing.UpdatedAt = time.Now().UTC()
		if err := e.alertRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to refresh alert: %w", err)
		}
		e.metrics.AlertsDeduped.Inc()
		log.WithFields(map[string]any{
			"alert_id":      existing.ID,
			"metric":        threshold.Metric,
			"workflow_id":   workflowID,
			"current_value": currentValue,
		}).Debug("Refreshed unresolved alert")
		return existing, nil
	}

	now := time.Now().UTC()
	alert := &domain.BusinessAlert{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		WorkflowID:     workflowID,
		Metric:         threshold.Metric,
		Operator:       threshold.Operator,
		Threshold:      threshold.Value,
		CurrentValue:   currentValue,
		Severity:       threshold.Severity,
		Message:        alertMessage(threshold, currentValue),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := e.alertRepo.Store(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to store alert: %w", err)
	}

	e.metrics.RecordAlert(string(threshold.Metric), string(threshold.Severity))
	log.WithFields(map[string]any{
		"alert_id":      alert.ID,
		"metric":        threshold.Metric,
		"workflow_id":   workflowID,
		"severity":      threshold.Severity,
		"current_value": currentValue,
	}).Info("Business alert emitted")

	return alert, nil
}

// Acknowledge marks the alert as seen by an operator.
func (e *AlertEvaluator) Acknowledge(ctx context.Context, id string) (*domain.BusinessAlert, error) {
	alert, err := e.alertRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	alert.Acknowledged = true
	alert.UpdatedAt = time.Now().UTC()
	if err := e.alertRepo.Update(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to acknowledge alert: %w", err)
	}
	return alert, nil
}

// Resolve closes the alert. A resolved alert cannot be resolved again.
func (e *AlertEvaluator) Resolve(ctx context.Context, id string) (*domain.BusinessAlert, error) {
	alert, err := e.alertRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert.Resolved() {
		return nil, domain.ErrAlertResolved
	}
	now := time.Now().UTC()
	alert.ResolvedAt = &now
	alert.UpdatedAt = now
	if err := e.alertRepo.Update(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to resolve alert: %w", err)
	}
	e.metrics.AlertsResolved.Inc()
	return alert, nil
}

// conditionHolds applies the operator literally; eq is exact numeric
// equality, callers needing tolerance pre-round.
func conditionHolds(op domain.ThresholdOperator, current, threshold float64) bool {
	switch op {
	case domain.OpGreaterThan:
		return current > threshold
	case domain.OpLessThan:
		return current < threshold
	case domain.OpEqual:
		return current == threshold
	case domain.OpGreaterThanOrEqual:
		return current >= threshold
	case domain.OpLessThanOrEqual:
		return current <= threshold
	default:
		return false
	}
}

func alertMessage(threshold domain.MetricThreshold, currentValue float64) string {
	return fmt.Sprintf("%s is %g (%s %g)", threshold.Metric, currentValue, threshold.Operator, threshold.Value)
}
