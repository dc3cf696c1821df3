package usecase

import (
	"math"

	"roiengine/internal/domain"
	"roiengine/pkg/config"
)

// Calculator converts a single workflow's operational inputs into financial
// results. It is a pure function of its inputs and the engine configuration;
// safe for concurrent use.
type Calculator struct {
	cfg config.EngineConfig
}

func NewCalculator(cfg config.EngineConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// Compute derives the full ROIResults. It rejects out-of-range inputs with a
// ValidationError before any computation; non-convergent metrics come back as
// undefined figures, never as Inf or NaN.
func (c *Calculator) Compute(inputs domain.ROIInputs, assumptions domain.ROIAssumptions) (domain.ROIResults, error) {
	if err := validateInputs(inputs); err != nil {
		return domain.ROIResults{}, err
	}
	if err := validateAssumptions(assumptions); err != nil {
		return domain.ROIResults{}, err
	}

	var results domain.ROIResults

	monthlyTasks := inputs.TasksPerPeriod * inputs.TaskFrequency.MonthlyFactor()
	timeSaved := inputs.ManualTimePerTask - inputs.AutomatedTimePerTask
	if timeSaved <= 0 {
		// Automation slower than the manual process: still computed, the
		// negative savings flow through every downstream metric.
		results.Warnings = append(results.Warnings, "automated time per task is not lower than manual time; automation saves no time")
	}

	hoursSavedPerMonth := monthlyTasks * timeSaved / 60
	laborSavings := hoursSavedPerMonth * inputs.EmployeeHourlyRate

	reworkSavings := monthlyTasks * (inputs.ManualErrorRate - inputs.AutomatedErrorRate) / 100 * inputs.ReworkCostPerError

	monthlyOperating := inputs.MonthlySoftwareCost + inputs.Training.OngoingMonthly
	monthlySavings := laborSavings + reworkSavings - monthlyOperating

	implementationCost := inputs.ImplementationHours*inputs.ImplementationRate +
		inputs.Training.InitialTraining + inputs.Training.KnowledgeTransfer

	results.MonthlyTasks = monthlyTasks
	results.TimeSavedPerTask = timeSaved
	results.HoursSavedPerMonth = hoursSavedPerMonth
	results.HoursSavedAnnually = hoursSavedPerMonth * 12
	results.MonthlyReworkSavings = reworkSavings
	results.MonthlyOperatingCost = monthlyOperating
	results.MonthlySavings = monthlySavings
	results.AnnualSavings = monthlySavings * 12
	results.ImplementationCost = implementationCost

	if monthlySavings > 0 {
		results.PaybackPeriod = domain.Payback{Months: implementationCost / monthlySavings}
	} else {
		results.PaybackPeriod = domain.Payback{Never: true}
		results.Warnings = append(results.Warnings, "monthly savings are not positive; the investment never pays back")
	}

	months := assumptions.TechnologyLifespan * 12
	results.NetPresentValue = npvAt(assumptions.DiscountRate, monthlySavings, months, implementationCost)
	results.InternalRateOfReturn = c.solveIRR(monthlySavings, months, implementationCost)

	if implementationCost > 0 {
		results.SimpleROI = domain.DefinedFigure(results.AnnualSavings / implementationCost * 100)
	} else {
		results.SimpleROI = domain.UndefinedFigure()
	}

	results.ErrorReduction = baselineDelta(inputs.ManualErrorRate, inputs.AutomatedErrorRate)
	results.ProductivityIncrease = baselineDelta(inputs.ManualTimePerTask, inputs.AutomatedTimePerTask)
	results.StrategicValueScore = strategicScore(inputs)

	return results, nil
}

func validateInputs(inputs domain.ROIInputs) error {
	if !inputs.TaskFrequency.IsValid() {
		return &domain.ValidationError{Field: "task_frequency", Reason: "must be daily, weekly or monthly"}
	}

	nonNegative := []struct {
		field string
		value float64
	}{
		{"manual_time_per_task", inputs.ManualTimePerTask},
		{"automated_time_per_task", inputs.AutomatedTimePerTask},
		{"tasks_per_period", inputs.TasksPerPeriod},
		{"implementation_hours", inputs.ImplementationHours},
		{"implementation_rate", inputs.ImplementationRate},
		{"monthly_software_cost", inputs.MonthlySoftwareCost},
		{"initial_training", inputs.Training.InitialTraining},
		{"knowledge_transfer", inputs.Training.KnowledgeTransfer},
		{"ongoing_training", inputs.Training.OngoingMonthly},
		{"rework_cost_per_error", inputs.ReworkCostPerError},
	}
	for _, check := range nonNegative {
		if check.value < 0 {
			return &domain.ValidationError{Field: check.field, Value: check.value, Reason: "must not be negative"}
		}
	}

	if inputs.TasksPerPeriod == 0 {
		return &domain.ValidationError{Field: "tasks_per_period", Reason: "must be greater than zero"}
	}
	if inputs.EmployeeHourlyRate <= 0 {
		return &domain.ValidationError{Field: "employee_hourly_rate", Value: inputs.EmployeeHourlyRate, Reason: "must be greater than zero"}
	}
	if inputs.ManualErrorRate < 0 || inputs.ManualErrorRate > 100 {
		return &domain.ValidationError{Field: "manual_error_rate", Value: inputs.ManualErrorRate, Reason: "must be a percentage between 0 and 100"}
	}
	if inputs.AutomatedErrorRate < 0 || inputs.AutomatedErrorRate > 100 {
		return &domain.ValidationError{Field: "automated_error_rate", Value: inputs.AutomatedErrorRate, Reason: "must be a percentage between 0 and 100"}
	}
	return nil
}

func validateAssumptions(assumptions domain.ROIAssumptions) error {
	if assumptions.DiscountRate <= 0 {
		return &domain.ValidationError{Field: "discount_rate", Value: assumptions.DiscountRate, Reason: "must be greater than zero"}
	}
	if assumptions.TechnologyLifespan <= 0 {
		return &domain.ValidationError{Field: "technology_lifespan", Value: float64(assumptions.TechnologyLifespan), Reason: "must be at least one year"}
	}
	return nil
}

// npvAt discounts a constant monthly cash flow over the given number of
// months at annualRate/12 and subtracts the upfront cost.
func npvAt(annualRate, monthlyCashFlow float64, months int, upfrontCost float64) float64 {
	monthlyRate := annualRate / 12
	npv := -upfrontCost
	discount := 1.0
	for t := 0; t < months; t++ {
		discount *= 1 + monthlyRate
		npv += monthlyCashFlow / discount
	}
	return npv
}

// solveIRR finds the annualized rate that zeroes NPV by bisection over the
// configured bracket. Without a sign change in the bracket there is no
// well-defined rate and the figure comes back undefined.
func (c *Calculator) solveIRR(monthlyCashFlow float64, months int, upfrontCost float64) domain.Figure {
	low, high := c.cfg.IRRBracketLow, c.cfg.IRRBracketHigh

	fLow := npvAt(low, monthlyCashFlow, months, upfrontCost)
	fHigh := npvAt(high, monthlyCashFlow, months, upfrontCost)
	if fLow*fHigh > 0 {
		return domain.UndefinedFigure()
	}

	for i := 0; i < c.cfg.IRRMaxIterations; i++ {
		mid := (low + high) / 2
		fMid := npvAt(mid, monthlyCashFlow, months, upfrontCost)

		if math.Abs(fMid) < c.cfg.IRRTolerance {
			return domain.DefinedFigure(mid)
		}

		if fLow*fMid < 0 {
			high = mid
		} else {
			low = mid
			fLow = fMid
		}
	}

	// The bracket kept shrinking around a root; the midpoint is the best
	// estimate within the iteration cap.
	return domain.DefinedFigure((low + high) / 2)
}

// baselineDelta computes (baseline - actual) / baseline * 100. A zero
// baseline makes the ratio undefined, never zero.
func baselineDelta(baseline, actual float64) domain.Figure {
	if baseline == 0 {
		return domain.UndefinedFigure()
	}
	return domain.DefinedFigure((baseline - actual) / baseline * 100)
}

func strategicScore(inputs domain.ROIInputs) float64 {
	base := (inputs.RevenueImpactScore + inputs.CompetitiveAdvantageScore) / 2
	scale := inputs.ScalabilityFactor
	if scale <= 0 {
		scale = 1
	}
	score := base * scale
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}
