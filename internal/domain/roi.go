package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskFrequency is the unit of the tasksPerPeriod input.
type TaskFrequency string

const (
	FrequencyDaily   TaskFrequency = "daily"
	FrequencyWeekly  TaskFrequency = "weekly"
	FrequencyMonthly TaskFrequency = "monthly"
)

func (f TaskFrequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	default:
		return false
	}
}

// MonthlyFactor converts a per-period task count into a monthly count.
func (f TaskFrequency) MonthlyFactor() float64 {
	switch f {
	case FrequencyDaily:
		return 30
	case FrequencyWeekly:
		return 4.33
	default:
		return 1
	}
}

// TrainingCosts are the one-off and recurring training expenses of rolling
// out an automation.
type TrainingCosts struct {
	InitialTraining   float64 `json:"initial_training"`
	KnowledgeTransfer float64 `json:"knowledge_transfer"`
	OngoingMonthly    float64 `json:"ongoing_monthly"`
}

// ROIInputs are the raw operational inputs for one workflow.
type ROIInputs struct {
	// Time
	ManualTimePerTask    float64       `json:"manual_time_per_task"`    // minutes
	AutomatedTimePerTask float64       `json:"automated_time_per_task"` // minutes
	TaskFrequency        TaskFrequency `json:"task_frequency"`
	TasksPerPeriod       float64       `json:"tasks_per_period"`

	// Money
	EmployeeHourlyRate  float64       `json:"employee_hourly_rate"`
	ImplementationHours float64       `json:"implementation_hours"`
	ImplementationRate  float64       `json:"implementation_rate"`
	MonthlySoftwareCost float64       `json:"monthly_software_cost"`
	Training            TrainingCosts `json:"training"`

	// Quality
	ManualErrorRate    float64 `json:"manual_error_rate"`    // percent 0-100
	AutomatedErrorRate float64 `json:"automated_error_rate"` // percent 0-100
	ReworkCostPerError float64 `json:"rework_cost_per_error"`

	// Business context
	ScalabilityFactor         float64 `json:"scalability_factor"`
	RevenueImpactScore        float64 `json:"revenue_impact_score"`        // 0-100
	CompetitiveAdvantageScore float64 `json:"competitive_advantage_score"` // 0-100
}

// ROIAssumptions are the macro parameters used by NPV/IRR and multi-year
// projections.
type ROIAssumptions struct {
	InflationRate      float64 `json:"inflation_rate"`
	DiscountRate       float64 `json:"discount_rate"` // annualized, e.g. 0.08
	GrowthRate         float64 `json:"growth_rate"`
	TechnologyLifespan int     `json:"technology_lifespan"` // years
	TurnoverRate       float64 `json:"turnover_rate"`
}

// Figure is a numeric result that may have no defined value, e.g. a
// non-convergent IRR or a ratio with a zero baseline. Defined=false means the
// value must not be read as a number.
type Figure struct {
	Value   float64 `json:"value"`
	Defined bool    `json:"defined"`
}

func DefinedFigure(v float64) Figure { return Figure{Value: v, Defined: true} }

func UndefinedFigure() Figure { return Figure{} }

// Payback distinguishes "pays back in N months" from "never pays back".
type Payback struct {
	Months float64 `json:"months"`
	Never  bool    `json:"never"`
}

// ROIResults is the full set of derived metrics for one calculation.
// Immutable once computed; a re-calculation produces a new record.
type ROIResults struct {
	// Financial
	MonthlySavings       float64 `json:"monthly_savings"`
	AnnualSavings        float64 `json:"annual_savings"`
	ImplementationCost   float64 `json:"implementation_cost"`
	MonthlyOperatingCost float64 `json:"monthly_operating_cost"`
	PaybackPeriod        Payback `json:"payback_period"`
	NetPresentValue      float64 `json:"net_present_value"`
	InternalRateOfReturn Figure  `json:"internal_rate_of_return"` // annualized
	SimpleROI            Figure  `json:"simple_roi"`              // percent

	// Time
	TimeSavedPerTask   float64 `json:"time_saved_per_task"` // minutes
	MonthlyTasks       float64 `json:"monthly_tasks"`
	HoursSavedPerMonth float64 `json:"hours_saved_per_month"`
	HoursSavedAnnually float64 `json:"hours_saved_annually"`

	// Quality
	ErrorReduction       Figure  `json:"error_reduction"` // percent
	MonthlyReworkSavings float64 `json:"monthly_rework_savings"`
	ProductivityIncrease Figure  `json:"productivity_increase"` // percent

	// Strategic
	StrategicValueScore float64 `json:"strategic_value_score"` // 0-100

	Warnings     []string  `json:"warnings,omitempty"`
	CalculatedAt time.Time `json:"calculated_at"`
}

// CalculationStatus is the lifecycle state of an ROICalculation. Transitions
// only move forward: draft -> validated -> published -> archived.
type CalculationStatus string

const (
	StatusDraft     CalculationStatus = "draft"
	StatusValidated CalculationStatus = "validated"
	StatusPublished CalculationStatus = "published"
	StatusArchived  CalculationStatus = "archived"
)

// CanTransitionTo reports whether moving to next is a legal forward step.
func (s CalculationStatus) CanTransitionTo(next CalculationStatus) bool {
	switch s {
	case StatusDraft:
		return next == StatusValidated
	case StatusValidated:
		return next == StatusPublished
	case StatusPublished:
		return next == StatusArchived
	default:
		return false
	}
}

// ValidationData compares predicted results against measured outcomes after
// a measurement period.
type ValidationData struct {
	MeasuredMonthlySavings float64   `json:"measured_monthly_savings"`
	MeasuredErrorRate      float64   `json:"measured_error_rate"`
	AccuracyPercent        Figure    `json:"accuracy_percent"`
	MeasurementPeriodDays  int       `json:"measurement_period_days"`
	ValidatedAt            time.Time `json:"validated_at"`
	Notes                  string    `json:"notes,omitempty"`
}

// ROICalculation is the aggregate root binding one workflow, organization and
// user to a computed bundle. Numeric fields never change after creation; only
// status transitions and validation data mutate the record.
type ROICalculation struct {
	ID             uuid.UUID            `json:"id"`
	WorkflowID     string               `json:"workflow_id"`
	OrganizationID string               `json:"organization_id"`
	UserID         string               `json:"user_id"`
	Inputs         ROIInputs            `json:"inputs"`
	Assumptions    ROIAssumptions       `json:"assumptions"`
	Results        ROIResults           `json:"results"`
	Sensitivity    *SensitivityAnalysis `json:"sensitivity,omitempty"`
	Risk           *RiskAssessment      `json:"risk,omitempty"`
	Benchmark      *BenchmarkComparison `json:"benchmark,omitempty"`
	Status         CalculationStatus    `json:"status"`
	Validation     *ValidationData      `json:"validation,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}
