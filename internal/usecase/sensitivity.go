package usecase

import (
	"fmt"
	"math"

	"roiengine/internal/domain"
)

// SensitivityAnalyzer perturbs inputs to produce optimistic, pessimistic and
// most-likely scenarios plus a per-variable ROI impact. Pure; safe for
// concurrent use.
type SensitivityAnalyzer struct {
	calc *Calculator
}

func NewSensitivityAnalyzer(calc *Calculator) *SensitivityAnalyzer {
	return &SensitivityAnalyzer{calc: calc}
}

// Analyze recomputes the results at each variable's bounds holding all other
// inputs fixed, then builds the scenario snapshots by applying every
// variable's most (least) favorable bound simultaneously.
func (a *SensitivityAnalyzer) Analyze(inputs domain.ROIInputs, assumptions domain.ROIAssumptions, variables []domain.SensitivityVariable) (*domain.SensitivityAnalysis, error) {
	base, err := a.calc.Compute(inputs, assumptions)
	if err != nil {
		return nil, err
	}

	analysis := &domain.SensitivityAnalysis{
		Variables:  make([]domain.SensitivityVariable, 0, len(variables)),
		MostLikely: base,
	}

	optimisticInputs := inputs
	pessimisticInputs := inputs

	for _, variable := range variables {
		if !variable.Name.IsValid() {
			return nil, &domain.ValidationError{Field: string(variable.Name), Reason: "unknown sensitivity variable"}
		}
		if variable.Range.Min > variable.Range.Max {
			return nil, &domain.ValidationError{Field: string(variable.Name), Value: variable.Range.Min, Reason: "range min exceeds max"}
		}

		atMin, err := a.calc.Compute(applyVariable(inputs, variable.Name, variable.Range.Min), assumptions)
		if err != nil {
			return nil, fmt.Errorf("perturbing %s to %v: %w", variable.Name, variable.Range.Min, err)
		}
		atMax, err := a.calc.Compute(applyVariable(inputs, variable.Name, variable.Range.Max), assumptions)
		if err != nil {
			return nil, fmt.Errorf("perturbing %s to %v: %w", variable.Name, variable.Range.Max, err)
		}

		variable.ImpactOnROI = roiSlope(atMin.SimpleROI, atMax.SimpleROI, variable.Range)
		variable.Impact = classifyImpact(variable.ImpactOnROI, variable.Range, base.SimpleROI)
		analysis.Variables = append(analysis.Variables, variable)

		// Ties favor the bound that increases SimpleROI, which maxFavors
		// resolves toward max.
		if maxFavors(atMin.SimpleROI, atMax.SimpleROI) {
			optimisticInputs = applyVariable(optimisticInputs, variable.Name, variable.Range.Max)
			pessimisticInputs = applyVariable(pessimisticInputs, variable.Name, variable.Range.Min)
		} else {
			optimisticInputs = applyVariable(optimisticInputs, variable.Name, variable.Range.Min)
			pessimisticInputs = applyVariable(pessimisticInputs, variable.Name, variable.Range.Max)
		}
	}

	optimistic, err := a.calc.Compute(optimisticInputs, assumptions)
	if err != nil {
		return nil, fmt.Errorf("optimistic scenario: %w", err)
	}
	pessimistic, err := a.calc.Compute(pessimisticInputs, assumptions)
	if err != nil {
		return nil, fmt.Errorf("pessimistic scenario: %w", err)
	}

	analysis.Optimistic = optimistic
	analysis.Pessimistic = pessimistic
	return analysis, nil
}

// applyVariable returns a copy of inputs with one named field replaced.
func applyVariable(inputs domain.ROIInputs, name domain.SensitivityVariableName, value float64) domain.ROIInputs {
	switch name {
	case domain.VarManualTimePerTask:
		inputs.ManualTimePerTask = value
	case domain.VarAutomatedTimePerTask:
		inputs.AutomatedTimePerTask = value
	case domain.VarTasksPerPeriod:
		inputs.TasksPerPeriod = value
	case domain.VarEmployeeHourlyRate:
		inputs.EmployeeHourlyRate = value
	case domain.VarImplementationHours:
		inputs.ImplementationHours = value
	case domain.VarMonthlySoftwareCost:
		inputs.MonthlySoftwareCost = value
	case domain.VarManualErrorRate:
		inputs.ManualErrorRate = value
	}
	return inputs
}

// roiSlope is the change in SimpleROI per unit change in the variable.
func roiSlope(atMin, atMax domain.Figure, r domain.VariableRange) domain.Figure {
	if !atMin.Defined || !atMax.Defined || r.Max == r.Min {
		return domain.UndefinedFigure()
	}
	return domain.DefinedFigure((atMax.Value - atMin.Value) / (r.Max - r.Min))
}

// maxFavors reports whether the max bound yields the higher (or equal)
// SimpleROI. An undefined figure loses to a defined one.
func maxFavors(atMin, atMax domain.Figure) bool {
	switch {
	case !atMax.Defined && !atMin.Defined:
		return true
	case !atMax.Defined:
		return false
	case !atMin.Defined:
		return true
	default:
		return atMax.Value >= atMin.Value
	}
}

func classifyImpact(slope domain.Figure, r domain.VariableRange, baseROI domain.Figure) domain.ImpactTier {
	if !slope.Defined || !baseROI.Defined || baseROI.Value == 0 {
		return domain.ImpactLow
	}
	swing := math.Abs(slope.Value*(r.Max-r.Min)) / math.Abs(baseROI.Value) * 100
	switch {
	case swing > 20:
		return domain.ImpactHigh
	case swing > 5:
		return domain.ImpactMedium
	default:
		return domain.ImpactLow
	}
}
