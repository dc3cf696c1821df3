package domain

// BenchmarkMetric names a result metric that has an industry reference value.
type BenchmarkMetric string

const (
	BenchmarkSimpleROI      BenchmarkMetric = "simple_roi"
	BenchmarkPaybackMonths  BenchmarkMetric = "payback_months"
	BenchmarkErrorReduction BenchmarkMetric = "error_reduction"
	BenchmarkHoursSaved     BenchmarkMetric = "hours_saved_per_month"
)

// BenchmarkEntry is one configured industry reference value.
// HigherIsBetter controls the direction of the underperformance check
// (payback is the lower-is-better case).
type BenchmarkEntry struct {
	Metric          BenchmarkMetric `json:"metric"`
	IndustryAverage float64         `json:"industry_average"`
	TopQuartile     float64         `json:"top_quartile"`
	HigherIsBetter  bool            `json:"higher_is_better"`
}

// ImprovementOpportunity flags a result metric underperforming its benchmark
// by more than the configured margin.
type ImprovementOpportunity struct {
	Metric           BenchmarkMetric `json:"metric"`
	ActualValue      float64         `json:"actual_value"`
	BenchmarkValue   float64         `json:"benchmark_value"`
	ShortfallPercent float64         `json:"shortfall_percent"`
}

// MetricComparison is the diff of one result metric against its reference.
// Delta is actual minus industry average; Undefined marks metrics whose
// computed value carried a non-convergent sentinel.
type MetricComparison struct {
	Metric          BenchmarkMetric `json:"metric"`
	ActualValue     float64         `json:"actual_value"`
	IndustryAverage float64         `json:"industry_average"`
	TopQuartile     float64         `json:"top_quartile"`
	Delta           float64         `json:"delta"`
	Undefined       bool            `json:"undefined,omitempty"`
}

// BenchmarkComparison is the full diff of computed results against the
// reference table.
type BenchmarkComparison struct {
	Comparisons   []MetricComparison       `json:"comparisons"`
	Opportunities []ImprovementOpportunity `json:"opportunities"`
}
