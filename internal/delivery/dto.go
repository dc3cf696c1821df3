package delivery

import (
	"roiengine/internal/domain"
	"roiengine/internal/usecase"
)

// Request DTOs. Binding tags reject malformed shapes at the edge; the engine
// re-validates semantics and reports field-level errors of its own.

type roiInputsRequest struct {
	ManualTimePerTask    float64 `json:"manual_time_per_task" binding:"gte=0"`
	AutomatedTimePerTask float64 `json:"automated_time_per_task" binding:"gte=0"`
	TaskFrequency        string  `json:"task_frequency" binding:"required,taskfreq"`
	TasksPerPeriod       float64 `json:"tasks_per_period" binding:"gte=0"`

	EmployeeHourlyRate  float64 `json:"employee_hourly_rate" binding:"gte=0"`
	ImplementationHours float64 `json:"implementation_hours" binding:"gte=0"`
	ImplementationRate  float64 `json:"implementation_rate" binding:"gte=0"`
	MonthlySoftwareCost float64 `json:"monthly_software_cost" binding:"gte=0"`

	InitialTraining   float64 `json:"initial_training" binding:"gte=0"`
	KnowledgeTransfer float64 `json:"knowledge_transfer" binding:"gte=0"`
	OngoingTraining   float64 `json:"ongoing_training" binding:"gte=0"`

	ManualErrorRate    float64 `json:"manual_error_rate" binding:"gte=0,lte=100"`
	AutomatedErrorRate float64 `json:"automated_error_rate" binding:"gte=0,lte=100"`
	ReworkCostPerError float64 `json:"rework_cost_per_error" binding:"gte=0"`

	ScalabilityFactor         float64 `json:"scalability_factor" binding:"gte=0"`
	RevenueImpactScore        float64 `json:"revenue_impact_score" binding:"gte=0,lte=100"`
	CompetitiveAdvantageScore float64 `json:"competitive_advantage_score" binding:"gte=0,lte=100"`
}

func (r roiInputsRequest) toDomain() domain.ROIInputs {
	return domain.ROIInputs{
		ManualTimePerTask:    r.ManualTimePerTask,
		AutomatedTimePerTask: r.AutomatedTimePerTask,
		TaskFrequency:        domain.TaskFrequency(r.TaskFrequency),
		TasksPerPeriod:       r.TasksPerPeriod,
		EmployeeHourlyRate:   r.EmployeeHourlyRate,
		ImplementationHours:  r.ImplementationHours,
		ImplementationRate:   r.ImplementationRate,
		MonthlySoftwareCost:  r.MonthlySoftwareCost,
		Training: domain.TrainingCosts{
			InitialTraining:   r.InitialTraining,
			KnowledgeTransfer: r.KnowledgeTransfer,
			OngoingMonthly:    r.OngoingTraining,
		},
		ManualErrorRate:           r.ManualErrorRate,
		AutomatedErrorRate:        r.AutomatedErrorRate,
		ReworkCostPerError:        r.ReworkCostPerError,
		ScalabilityFactor:         r.ScalabilityFactor,
		RevenueImpactScore:        r.RevenueImpactScore,
		CompetitiveAdvantageScore: r.CompetitiveAdvantageScore,
	}
}

type roiAssumptionsRequest struct {
	InflationRate      float64 `json:"inflation_rate"`
	DiscountRate       float64 `json:"discount_rate" binding:"required,gt=0"`
	GrowthRate         float64 `json:"growth_rate"`
	TechnologyLifespan int     `json:"technology_lifespan" binding:"required,gt=0"`
	TurnoverRate       float64 `json:"turnover_rate" binding:"gte=0"`
}

func (r roiAssumptionsRequest) toDomain() domain.ROIAssumptions {
	return domain.ROIAssumptions{
		InflationRate:      r.InflationRate,
		DiscountRate:       r.DiscountRate,
		GrowthRate:         r.GrowthRate,
		TechnologyLifespan: r.TechnologyLifespan,
		TurnoverRate:       r.TurnoverRate,
	}
}

type sensitivityVariableRequest struct {
	Name      string  `json:"name" binding:"required"`
	BaseValue float64 `json:"base_value"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
}

type riskScoresRequest struct {
	Technical   float64 `json:"technical" binding:"gte=0,lte=100"`
	Financial   float64 `json:"financial" binding:"gte=0,lte=100"`
	Operational float64 `json:"operational" binding:"gte=0,lte=100"`
	Strategic   float64 `json:"strategic" binding:"gte=0,lte=100"`
}

type riskFactorRequest struct {
	Name         string  `json:"name" binding:"required"`
	Category     string  `json:"category"`
	Probability  float64 `json:"probability" binding:"gte=0,lte=1"`
	Impact       float64 `json:"impact" binding:"gte=0"`
	Mitigation   string  `json:"mitigation"`
	ResidualRisk float64 `json:"residual_risk" binding:"gte=0"`
}

type computeROIRequest struct {
	WorkflowID     string                       `json:"workflow_id" binding:"required"`
	OrganizationID string                       `json:"organization_id" binding:"required"`
	UserID         string                       `json:"user_id"`
	Inputs         roiInputsRequest             `json:"inputs" binding:"required"`
	Assumptions    roiAssumptionsRequest        `json:"assumptions" binding:"required"`
	Variables      []sensitivityVariableRequest `json:"sensitivity_variables" binding:"dive"`
	RiskScores     *riskScoresRequest           `json:"risk_scores"`
	RiskFactors    []riskFactorRequest          `json:"risk_factors" binding:"dive"`
}

func (r computeROIRequest) toDomain() usecase.ComputeRequest {
	req := usecase.ComputeRequest{
		WorkflowID:     r.WorkflowID,
		OrganizationID: r.OrganizationID,
		UserID:         r.UserID,
		Inputs:         r.Inputs.toDomain(),
		Assumptions:    r.Assumptions.toDomain(),
	}

	for _, v := range r.Variables {
		req.Variables = append(req.Variables, domain.SensitivityVariable{
			Name:      domain.SensitivityVariableName(v.Name),
			BaseValue: v.BaseValue,
			Range:     domain.VariableRange{Min: v.Min, Max: v.Max},
		})
	}

	if r.RiskScores != nil {
		req.RiskScores = &domain.RiskCategoryScores{
			Technical:   r.RiskScores.Technical,
			Financial:   r.RiskScores.Financial,
			Operational: r.RiskScores.Operational,
			Strategic:   r.RiskScores.Strategic,
		}
	}
	for _, f := range r.RiskFactors {
		req.RiskFactors = append(req.RiskFactors, domain.RiskFactor{
			Name:         f.Name,
			Category:     domain.RiskCategory(f.Category),
			Probability:  f.Probability,
			Impact:       f.Impact,
			Mitigation:   f.Mitigation,
			ResidualRisk: f.ResidualRisk,
		})
	}

	return req
}

type recordMetricRequest struct {
	WorkflowID     string  `json:"workflow_id" binding:"required"`
	OrganizationID string  `json:"organization_id" binding:"required"`
	Type           string  `json:"type" binding:"required,metrictype"`
	Value          float64 `json:"value"`
	Unit           string  `json:"unit"`
	Confidence     float64 `json:"confidence" binding:"gte=0,lte=100"`
}

func (r recordMetricRequest) toDomain() domain.BusinessMetric {
	return domain.BusinessMetric{
		WorkflowID:     r.WorkflowID,
		OrganizationID: r.OrganizationID,
		Type:           domain.BusinessMetricType(r.Type),
		Value:          r.Value,
		Unit:           r.Unit,
		Confidence:     r.Confidence,
	}
}

type evaluateAlertRequest struct {
	OrganizationID string  `json:"organization_id" binding:"required"`
	WorkflowID     string  `json:"workflow_id" binding:"required"`
	CurrentValue   float64 `json:"current_value"`
	Threshold      struct {
		Metric   string  `json:"metric" binding:"required,metrictype"`
		Operator string  `json:"operator" binding:"required,thresholdop"`
		Value    float64 `json:"value"`
		Severity string  `json:"severity" binding:"required"`
	} `json:"threshold" binding:"required"`
}

func (r evaluateAlertRequest) threshold() domain.MetricThreshold {
	return domain.MetricThreshold{
		Metric:   domain.BusinessMetricType(r.Threshold.Metric),
		Operator: domain.ThresholdOperator(r.Threshold.Operator),
		Value:    r.Threshold.Value,
		Severity: domain.AlertSeverity(r.Threshold.Severity),
	}
}

type attachValidationRequest struct {
	MeasuredMonthlySavings float64 `json:"measured_monthly_savings"`
	MeasuredErrorRate      float64 `json:"measured_error_rate" binding:"gte=0,lte=100"`
	MeasurementPeriodDays  int     `json:"measurement_period_days" binding:"gt=0"`
	Notes                  string  `json:"notes"`
}

func (r attachValidationRequest) toDomain() domain.ValidationData {
	return domain.ValidationData{
		MeasuredMonthlySavings: r.MeasuredMonthlySavings,
		MeasuredErrorRate:      r.MeasuredErrorRate,
		MeasurementPeriodDays:  r.MeasurementPeriodDays,
		Notes:                  r.Notes,
	}
}
