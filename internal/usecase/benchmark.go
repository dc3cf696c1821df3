package usecase

import (
	"roiengine/internal/domain"
)

// BenchmarkComparator diffs computed results against the configured industry
// reference table. No side effects; fails only on missing or malformed
// benchmark data.
type BenchmarkComparator struct {
	source domain.BenchmarkSource
	margin float64
}

func NewBenchmarkComparator(source domain.BenchmarkSource, margin float64) *BenchmarkComparator {
	return &BenchmarkComparator{source: source, margin: margin}
}

// Compare produces a per-metric diff plus improvement opportunities for
// every metric underperforming its benchmark by more than the margin.
// Metrics carrying a non-convergent sentinel are marked undefined in the diff
// and never judged against the benchmark.
func (c *BenchmarkComparator) Compare(results domain.ROIResults) (*domain.BenchmarkComparison, error) {
	entries, err := c.source.All()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, &domain.ConfigurationError{Key: "benchmarks", Reason: "reference table is empty"}
	}

	comparison := &domain.BenchmarkComparison{}

	for _, entry := range entries {
		if entry.IndustryAverage <= 0 {
			return nil, &domain.ConfigurationError{Key: string(entry.Metric), Reason: "industry average must be positive"}
		}

		actual, defined := resultValue(results, entry.Metric)
		mc := domain.MetricComparison{
			Metric:          entry.Metric,
			IndustryAverage: entry.IndustryAverage,
			TopQuartile:     entry.TopQuartile,
		}
		if !defined {
			mc.Undefined = true
			comparison.Comparisons = append(comparison.Comparisons, mc)
			continue
		}

		mc.ActualValue = actual
		mc.Delta = actual - entry.IndustryAverage
		comparison.Comparisons = append(comparison.Comparisons, mc)

		if opp, ok := underperformance(entry, actual, c.margin); ok {
			comparison.Opportunities = append(comparison.Opportunities, opp)
		}
	}

	return comparison, nil
}

// resultValue extracts the benchmarked metric from the results; the second
// return is false when the computed value has no defined number.
func resultValue(results domain.ROIResults, metric domain.BenchmarkMetric) (float64, bool) {
	switch metric {
	case domain.BenchmarkSimpleROI:
		return results.SimpleROI.Value, results.SimpleROI.Defined
	case domain.BenchmarkPaybackMonths:
		return results.PaybackPeriod.Months, !results.PaybackPeriod.Never
	case domain.BenchmarkErrorReduction:
		return results.ErrorReduction.Value, results.ErrorReduction.Defined
	case domain.BenchmarkHoursSaved:
		return results.HoursSavedPerMonth, true
	default:
		return 0, false
	}
}

func underperformance(entry domain.BenchmarkEntry, actual, margin float64) (domain.ImprovementOpportunity, bool) {
	avg := entry.IndustryAverage
	if entry.HigherIsBetter {
		if actual < avg*(1-margin) {
			return domain.ImprovementOpportunity{
				Metric:           entry.Metric,
				ActualValue:      actual,
				BenchmarkValue:   avg,
				ShortfallPercent: (avg - actual) / avg * 100,
			}, true
		}
		return domain.ImprovementOpportunity{}, false
	}
	if actual > avg*(1+margin) {
		return domain.ImprovementOpportunity{
			Metric:           entry.Metric,
			ActualValue:      actual,
			BenchmarkValue:   avg,
			ShortfallPercent: (actual - avg) / avg * 100,
		}, true
	}
	return domain.ImprovementOpportunity{}, false
}
