package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"roiengine/internal/domain"
	"roiengine/pkg/logger"
	"roiengine/pkg/metrics"

	"github.com/google/uuid"
)

// ComputeRequest carries everything needed to produce one ROICalculation.
type ComputeRequest struct {
	WorkflowID     string
	OrganizationID string
	UserID         string
	Inputs         domain.ROIInputs
	Assumptions    domain.ROIAssumptions
	Variables      []domain.SensitivityVariable
	RiskScores     *domain.RiskCategoryScores
	RiskFactors    []domain.RiskFactor
}

// ROIService orchestrates the calculation pipeline: validate, compute,
// sensitivity, risk, benchmark, persist. The engine itself stays pure; only
// this service touches repositories.
type ROIService struct {
	calcRepo    domain.CalculationRepository
	calculator  *Calculator
	sensitivity *SensitivityAnalyzer
	risk        *RiskAssessor
	benchmarks  *BenchmarkComparator
	logger      *logger.Logger
	metrics     *metrics.Metrics
}

func NewROIService(
	calcRepo domain.CalculationRepository,
	calculator *Calculator,
	sensitivity *SensitivityAnalyzer,
	risk *RiskAssessor,
	benchmarks *BenchmarkComparator,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *ROIService {
	return &ROIService{
		calcRepo:    calcRepo,
		calculator:  calculator,
		sensitivity: sensitivity,
		risk:        risk,
		benchmarks:  benchmarks,
		logger:      logger,
		metrics:     metrics,
	}
}

// ComputeROI runs the full pipeline and persists a new draft calculation. A
// re-calculation always produces a new record; numeric fields of stored
// records are never touched again.
func (s *ROIService) ComputeROI(ctx context.Context, req ComputeRequest) (*domain.ROICalculation, error) {
	start := time.Now()
	log := s.logger.WithContext(ctx)
	log.WithFields(map[string]any{
		"workflow_id":     req.WorkflowID,
		"organization_id": req.OrganizationID,
		"variables":       len(req.Variables),
	}).Info("Starting ROI calculation")

	results, err := s.calculator.Compute(req.Inputs, req.Assumptions)
	if err != nil {
		s.recordFailure(err)
		s.metrics.RecordCalculation("rejected", "compute", time.Since(start))
		return nil, err
	}
	results.CalculatedAt = time.Now().UTC()
	s.recordSentinels(results)

	calc := &domain.ROICalculation{
		ID:             uuid.New(),
		WorkflowID:     req.WorkflowID,
		OrganizationID: req.OrganizationID,
		UserID:         req.UserID,
		Inputs:         req.Inputs,
		Assumptions:    req.Assumptions,
		Results:        results,
		Status:         domain.StatusDraft,
		CreatedAt:      results.CalculatedAt,
		UpdatedAt:      results.CalculatedAt,
	}

	if len(req.Variables) > 0 {
		analysis, err := s.sensitivity.Analyze(req.Inputs, req.Assumptions, req.Variables)
		if err != nil {
			s.recordFailure(err)
			s.metrics.RecordCalculation("rejected", "sensitivity", time.Since(start))
			return nil, fmt.Errorf("sensitivity analysis failed: %w", err)
		}
		calc.Sensitivity = analysis
	}

	if req.RiskScores != nil {
		assessment, err := s.risk.Assess(*req.RiskScores, req.RiskFactors)
		if err != nil {
			s.recordFailure(err)
			s.metrics.RecordCalculation("rejected", "risk", time.Since(start))
			return nil, fmt.Errorf("risk assessment failed: %w", err)
		}
		calc.Risk = assessment
	}

	benchmark, err := s.benchmarks.Compare(results)
	if err != nil {
		s.metrics.RecordCalculation("failed", "benchmark", time.Since(start))
		return nil, fmt.Errorf("benchmark comparison failed: %w", err)
	}
	calc.Benchmark = benchmark

	if err := s.calcRepo.Store(ctx, calc); err != nil {
		s.metrics.RecordCalculation("failed", "store", time.Since(start))
		return nil, fmt.Errorf("failed to store calculation: %w", err)
	}

	s.metrics.RecordCalculation("success", "complete", time.Since(start))
	log.WithFields(map[string]any{
		"calculation_id":  calc.ID,
		"monthly_savings": results.MonthlySavings,
		"payback_never":   results.PaybackPeriod.Never,
		"duration":        time.Since(start),
	}).Info("ROI calculation completed")

	return calc, nil
}

// GetCalculation retrieves one stored calculation.
func (s *ROIService) GetCalculation(ctx context.Context, id string) (*domain.ROICalculation, error) {
	return s.calcRepo.GetByID(ctx, id)
}

// GetByOrganization lists an organization's calculations.
func (s *ROIService) GetByOrganization(ctx context.Context, organizationID string) ([]*domain.ROICalculation, error) {
	return s.calcRepo.GetByOrganization(ctx, organizationID)
}

// Transition advances the calculation lifecycle. Only forward steps are
// legal: draft -> validated -> published -> archived.
func (s *ROIService) Transition(ctx context.Context, id string, next domain.CalculationStatus) (*domain.ROICalculation, error) {
	calc, err := s.calcRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !calc.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, calc.Status, next)
	}

	calc.Status = next
	calc.UpdatedAt = time.Now().UTC()
	if err := s.calcRepo.Update(ctx, calc); err != nil {
		return nil, fmt.Errorf("failed to update calculation status: %w", err)
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"calculation_id": calc.ID,
		"status":         next,
	}).Info("Calculation status changed")

	return calc, nil
}

// AttachValidation stores measured outcomes against a calculation and
// computes the prediction accuracy. Predicted savings of zero leave the
// accuracy undefined rather than dividing by zero.
func (s *ROIService) AttachValidation(ctx context.Context, id string, data domain.ValidationData) (*domain.ROICalculation, error) {
	calc, err := s.calcRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	predicted := calc.Results.MonthlySavings
	if predicted != 0 {
		accuracy := 100 - math.Abs(data.MeasuredMonthlySavings-predicted)/math.Abs(predicted)*100
		if accuracy < 0 {
			accuracy = 0
		}
		data.AccuracyPercent = domain.DefinedFigure(accuracy)
	} else {
		data.AccuracyPercent = domain.UndefinedFigure()
	}
	data.ValidatedAt = time.Now().UTC()

	calc.Validation = &data
	calc.UpdatedAt = data.ValidatedAt
	if err := s.calcRepo.Update(ctx, calc); err != nil {
		return nil, fmt.Errorf("failed to attach validation data: %w", err)
	}

	return calc, nil
}

func (s *ROIService) recordFailure(err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		s.metrics.RecordRejection(verr.Field)
	}
}

func (s *ROIService) recordSentinels(results domain.ROIResults) {
	if !results.InternalRateOfReturn.Defined {
		s.metrics.RecordNonConvergent("internal_rate_of_return")
	}
	if !results.SimpleROI.Defined {
		s.metrics.RecordNonConvergent("simple_roi")
	}
	if !results.ErrorReduction.Defined {
		s.metrics.RecordNonConvergent("error_reduction")
	}
	if results.PaybackPeriod.Never {
		s.metrics.RecordNonConvergent("payback_period")
	}
}
