package usecase

import (
	"math"
	"sort"

	"roiengine/internal/domain"
)

// Aggregator computes statistical summaries over numeric series. Stateless;
// safe to invoke concurrently over disjoint data.
type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate summarizes the series. An empty series returns all-zero
// aggregates rather than failing; callers must check Count before treating
// Average or the percentiles as meaningful.
func (a *Aggregator) Aggregate(series []float64) domain.MetricAggregation {
	if len(series) == 0 {
		return domain.MetricAggregation{}
	}

	sorted := make([]float64, len(series))
	copy(sorted, series)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	n := len(sorted)
	mean := sum / float64(n)

	var variance float64
	for _, v := range sorted {
		d := v - mean
		variance += d * d
	}
	variance /= float64(n)

	return domain.MetricAggregation{
		Sum:     sum,
		Count:   n,
		Average: mean,
		Min:     sorted[0],
		Max:     sorted[n-1],
		StdDev:  math.Sqrt(variance),
		P25:     percentile(sorted, 25),
		P50:     percentile(sorted, 50),
		P75:     percentile(sorted, 75),
		P90:     percentile(sorted, 90),
		P95:     percentile(sorted, 95),
	}
}

// percentile computes the nearest-rank percentile with linear interpolation
// between adjacent ranks on the ascending-sorted series.
func percentile(sorted []float64, p float64) float64 {
	index := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
