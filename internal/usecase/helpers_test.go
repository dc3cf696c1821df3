package usecase

import (
	"roiengine/internal/domain"
	"roiengine/pkg/config"
	"roiengine/pkg/logger"
	"roiengine/pkg/metrics"
)

// Shared across the package's tests: the prometheus wrapper registers
// collectors in the default registry and must be created exactly once per
// test binary.
var (
	testMetrics = metrics.New()
	testLogger  = logger.New("error")
)

func testEngineConfig() config.EngineConfig {
	return config.EngineConfig{
		IRRMaxIterations: 100,
		IRRTolerance:     1e-6,
		IRRBracketLow:    -0.99,
		IRRBracketHigh:   10.0,
		BenchmarkMargin:  0.10,
		TrendUpPercent:   2.0,
		TrendDownPercent: -2.0,
		RiskWeights:      config.RiskWeightConfig{Technical: 1, Financial: 1, Operational: 1, Strategic: 1},
	}
}

// Scenario inputs used across tests: a weekly workflow with a strong but not
// extreme payoff so NPV and IRR stay inside the solver bracket.
func baseInputs() domain.ROIInputs {
	return domain.ROIInputs{
		ManualTimePerTask:    60,
		AutomatedTimePerTask: 5,
		TaskFrequency:        domain.FrequencyWeekly,
		TasksPerPeriod:       100,
		EmployeeHourlyRate:   25,
		ImplementationHours:  40,
		ImplementationRate:   100,
	}
}

func baseAssumptions() domain.ROIAssumptions {
	return domain.ROIAssumptions{
		DiscountRate:       0.08,
		TechnologyLifespan: 3,
	}
}
