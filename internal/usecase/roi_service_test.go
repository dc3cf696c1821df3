package usecase

import (
	"context"
	"testing"

	"roiengine/internal/domain"
	"roiengine/internal/infrastructure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newROIService(t *testing.T) *ROIService {
	t.Helper()

	source, err := infrastructure.NewBenchmarkSource(infrastructure.DefaultBenchmarks())
	require.NoError(t, err)

	cfg := testEngineConfig()
	calculator := NewCalculator(cfg)
	return NewROIService(
		infrastructure.NewCalculationRepository(testLogger),
		calculator,
		NewSensitivityAnalyzer(calculator),
		NewRiskAssessor(cfg.RiskWeights),
		NewBenchmarkComparator(source, cfg.BenchmarkMargin),
		testLogger,
		testMetrics,
	)
}

func baseRequest() ComputeRequest {
	return ComputeRequest{
		WorkflowID:     "wf-1",
		OrganizationID: "org-1",
		UserID:         "user-1",
		Inputs:         baseInputs(),
		Assumptions:    baseAssumptions(),
	}
}

func TestROIService_ComputeROI(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a draft with benchmark attached", func(t *testing.T) {
		service := newROIService(t)

		calc, err := service.ComputeROI(ctx, baseRequest())
		require.NoError(t, err)

		assert.Equal(t, domain.StatusDraft, calc.Status)
		assert.Equal(t, "wf-1", calc.WorkflowID)
		assert.NotNil(t, calc.Benchmark)
		assert.Nil(t, calc.Sensitivity)
		assert.Nil(t, calc.Risk)
		assert.False(t, calc.Results.CalculatedAt.IsZero())

		stored, err := service.GetCalculation(ctx, calc.ID.String())
		require.NoError(t, err)
		assert.Equal(t, calc.ID, stored.ID)
		assert.Equal(t, calc.Results.MonthlySavings, stored.Results.MonthlySavings)
	})

	t.Run("optional sensitivity and risk sections", func(t *testing.T) {
		service := newROIService(t)

		req := baseRequest()
		req.Variables = testVariables()
		req.RiskScores = &domain.RiskCategoryScores{Technical: 30, Financial: 40, Operational: 20, Strategic: 50}

		calc, err := service.ComputeROI(ctx, req)
		require.NoError(t, err)

		require.NotNil(t, calc.Sensitivity)
		assert.Len(t, calc.Sensitivity.Variables, len(req.Variables))
		require.NotNil(t, calc.Risk)
		assert.InDelta(t, 35.0, calc.Risk.OverallRiskScore, 1e-9)
	})

	t.Run("recomputation produces a new record", func(t *testing.T) {
		service := newROIService(t)

		first, err := service.ComputeROI(ctx, baseRequest())
		require.NoError(t, err)
		second, err := service.ComputeROI(ctx, baseRequest())
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, first.Results.MonthlySavings, second.Results.MonthlySavings)

		all, err := service.GetByOrganization(ctx, "org-1")
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("invalid inputs reject the whole request", func(t *testing.T) {
		service := newROIService(t)

		req := baseRequest()
		req.Inputs.EmployeeHourlyRate = 0

		_, err := service.ComputeROI(ctx, req)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "employee_hourly_rate", verr.Field)

		all, err := service.GetByOrganization(ctx, "org-1")
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("invalid risk scores reject the whole request", func(t *testing.T) {
		service := newROIService(t)

		req := baseRequest()
		req.RiskScores = &domain.RiskCategoryScores{Technical: 150}

		_, err := service.ComputeROI(ctx, req)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)

		all, err := service.GetByOrganization(ctx, "org-1")
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestROIService_Transition(t *testing.T) {
	ctx := context.Background()
	service := newROIService(t)

	calc, err := service.ComputeROI(ctx, baseRequest())
	require.NoError(t, err)
	id := calc.ID.String()

	t.Run("forward steps succeed", func(t *testing.T) {
		updated, err := service.Transition(ctx, id, domain.StatusValidated)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusValidated, updated.Status)

		updated, err = service.Transition(ctx, id, domain.StatusPublished)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPublished, updated.Status)
	})

	t.Run("skipping a step fails", func(t *testing.T) {
		other, err := service.ComputeROI(ctx, baseRequest())
		require.NoError(t, err)

		_, err = service.Transition(ctx, other.ID.String(), domain.StatusPublished)
		require.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("archived is terminal", func(t *testing.T) {
		_, err := service.Transition(ctx, id, domain.StatusArchived)
		require.NoError(t, err)

		_, err = service.Transition(ctx, id, domain.StatusDraft)
		require.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("unknown calculation", func(t *testing.T) {
		_, err := service.Transition(ctx, "missing", domain.StatusValidated)
		require.ErrorIs(t, err, domain.ErrCalculationNotFound)
	})
}

func TestROIService_AttachValidation(t *testing.T) {
	ctx := context.Background()
	service := newROIService(t)

	calc, err := service.ComputeROI(ctx, baseRequest())
	require.NoError(t, err)

	t.Run("accuracy against predicted savings", func(t *testing.T) {
		predicted := calc.Results.MonthlySavings
		measured := predicted * 0.9

		updated, err := service.AttachValidation(ctx, calc.ID.String(), domain.ValidationData{
			MeasuredMonthlySavings: measured,
			MeasurementPeriodDays:  90,
		})
		require.NoError(t, err)

		require.NotNil(t, updated.Validation)
		require.True(t, updated.Validation.AccuracyPercent.Defined)
		assert.InDelta(t, 90.0, updated.Validation.AccuracyPercent.Value, 1e-9)
		assert.False(t, updated.Validation.ValidatedAt.IsZero())
	})

	t.Run("wildly off measurement clamps at zero", func(t *testing.T) {
		predicted := calc.Results.MonthlySavings

		updated, err := service.AttachValidation(ctx, calc.ID.String(), domain.ValidationData{
			MeasuredMonthlySavings: predicted * 5,
		})
		require.NoError(t, err)

		require.True(t, updated.Validation.AccuracyPercent.Defined)
		assert.Zero(t, updated.Validation.AccuracyPercent.Value)
	})
}
