package infrastructure

import (
	"context"
	"sync"

	"roiengine/internal/domain"
	"roiengine/pkg/logger"
)

// implements domain.CalculationRepository
type CalculationRepository struct {
	data   map[string]*domain.ROICalculation
	mutex  sync.RWMutex
	logger *logger.Logger
}

// creates a new calculation repository
func NewCalculationRepository(logger *logger.Logger) *CalculationRepository {
	return &CalculationRepository{
		data:   make(map[string]*domain.ROICalculation),
		logger: logger,
	}
}

func (r *CalculationRepository) Store(ctx context.Context, calc *domain.ROICalculation) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	stored := *calc
	r.data[calc.ID.String()] = &stored

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"calculation_id": calc.ID,
		"workflow_id":    calc.WorkflowID,
	}).Debug("Stored calculation in memory")
	return nil
}

func (r *CalculationRepository) GetByID(ctx context.Context, id string) (*domain.ROICalculation, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	calc, ok := r.data[id]
	if !ok {
		return nil, domain.ErrCalculationNotFound
	}
	copied := *calc
	return &copied, nil
}

func (r *CalculationRepository) GetByWorkflow(ctx context.Context, workflowID string) ([]*domain.ROICalculation, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*domain.ROICalculation
	for _, calc := range r.data {
		if calc.WorkflowID == workflowID {
			copied := *calc
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *CalculationRepository) GetByOrganization(ctx context.Context, organizationID string) ([]*domain.ROICalculation, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*domain.ROICalculation
	for _, calc := range r.data {
		if calc.OrganizationID == organizationID {
			copied := *calc
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *CalculationRepository) Update(ctx context.Context, calc *domain.ROICalculation) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.data[calc.ID.String()]; !ok {
		return domain.ErrCalculationNotFound
	}
	stored := *calc
	r.data[calc.ID.String()] = &stored
	return nil
}
