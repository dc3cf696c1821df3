package domain

// SensitivityVariableName identifies which input a sensitivity variable
// perturbs. Closed set so the analyzer can switch exhaustively.
type SensitivityVariableName string

const (
	VarManualTimePerTask    SensitivityVariableName = "manual_time_per_task"
	VarAutomatedTimePerTask SensitivityVariableName = "automated_time_per_task"
	VarTasksPerPeriod       SensitivityVariableName = "tasks_per_period"
	VarEmployeeHourlyRate   SensitivityVariableName = "employee_hourly_rate"
	VarImplementationHours  SensitivityVariableName = "implementation_hours"
	VarMonthlySoftwareCost  SensitivityVariableName = "monthly_software_cost"
	VarManualErrorRate      SensitivityVariableName = "manual_error_rate"
)

func (n SensitivityVariableName) IsValid() bool {
	switch n {
	case VarManualTimePerTask, VarAutomatedTimePerTask, VarTasksPerPeriod,
		VarEmployeeHourlyRate, VarImplementationHours, VarMonthlySoftwareCost,
		VarManualErrorRate:
		return true
	default:
		return false
	}
}

// ImpactTier is the qualitative impact classification of a variable.
type ImpactTier string

const (
	ImpactLow    ImpactTier = "low"
	ImpactMedium ImpactTier = "medium"
	ImpactHigh   ImpactTier = "high"
)

// VariableRange bounds the perturbation of one variable.
type VariableRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SensitivityVariable is one input perturbed during sensitivity analysis.
type SensitivityVariable struct {
	Name        SensitivityVariableName `json:"name"`
	BaseValue   float64                 `json:"base_value"`
	Range       VariableRange           `json:"range"`
	Impact      ImpactTier              `json:"impact"`
	ImpactOnROI Figure                  `json:"impact_on_roi"` // ΔROI per unit change
}

// SensitivityAnalysis holds the per-variable impacts plus three full result
// snapshots. Derived, never mutated after creation.
type SensitivityAnalysis struct {
	Variables   []SensitivityVariable `json:"variables"`
	Optimistic  ROIResults            `json:"optimistic"`
	Pessimistic ROIResults            `json:"pessimistic"`
	MostLikely  ROIResults            `json:"most_likely"`
}
