package infrastructure

import (
	"sort"

	"roiengine/internal/domain"
)

// implements domain.BenchmarkSource over a fixed reference table loaded at
// startup. Read-only after construction, so lookups need no locking.
type BenchmarkSource struct {
	entries map[domain.BenchmarkMetric]domain.BenchmarkEntry
}

// NewBenchmarkSource validates and indexes the reference entries.
func NewBenchmarkSource(entries []domain.BenchmarkEntry) (*BenchmarkSource, error) {
	if len(entries) == 0 {
		return nil, &domain.ConfigurationError{Key: "benchmarks", Reason: "no reference entries configured"}
	}

	indexed := make(map[domain.BenchmarkMetric]domain.BenchmarkEntry, len(entries))
	for _, entry := range entries {
		if entry.Metric == "" {
			return nil, &domain.ConfigurationError{Key: "benchmarks", Reason: "entry with empty metric name"}
		}
		if entry.IndustryAverage <= 0 {
			return nil, &domain.ConfigurationError{Key: string(entry.Metric), Reason: "industry average must be positive"}
		}
		if _, exists := indexed[entry.Metric]; exists {
			return nil, &domain.ConfigurationError{Key: string(entry.Metric), Reason: "duplicate benchmark entry"}
		}
		indexed[entry.Metric] = entry
	}

	return &BenchmarkSource{entries: indexed}, nil
}

// DefaultBenchmarks is the built-in industry reference table used when no
// external configuration is supplied.
func DefaultBenchmarks() []domain.BenchmarkEntry {
	return []domain.BenchmarkEntry{
		{Metric: domain.BenchmarkSimpleROI, IndustryAverage: 150, TopQuartile: 300, HigherIsBetter: true},
		{Metric: domain.BenchmarkPaybackMonths, IndustryAverage: 14, TopQuartile: 6, HigherIsBetter: false},
		{Metric: domain.BenchmarkErrorReduction, IndustryAverage: 60, TopQuartile: 85, HigherIsBetter: true},
		{Metric: domain.BenchmarkHoursSaved, IndustryAverage: 40, TopQuartile: 120, HigherIsBetter: true},
	}
}

func (s *BenchmarkSource) Get(metric domain.BenchmarkMetric) (domain.BenchmarkEntry, error) {
	entry, ok := s.entries[metric]
	if !ok {
		return domain.BenchmarkEntry{}, &domain.ConfigurationError{Key: string(metric), Reason: "no benchmark configured"}
	}
	return entry, nil
}

func (s *BenchmarkSource) All() ([]domain.BenchmarkEntry, error) {
	result := make([]domain.BenchmarkEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		result = append(result, entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Metric < result[j].Metric })
	return result, nil
}
