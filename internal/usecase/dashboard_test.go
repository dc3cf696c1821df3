package usecase

import (
	"testing"
	"time"

	"roiengine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seriesOf(values ...float64) []domain.TimeSeriesData {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]domain.TimeSeriesData, len(values))
	for i, v := range values {
		points[i] = domain.TimeSeriesData{Timestamp: start.AddDate(0, 0, i), Value: v}
	}
	return points
}

func TestDashboardBuilder_Build(t *testing.T) {
	builder := NewDashboardBuilder(testEngineConfig())

	workflows := []domain.WorkflowMetric{
		{WorkflowID: "wf-1", WorkflowName: "Invoice intake", Executions: 100, SuccessRate: 95, HoursSaved: 40, CostSavings: 1000, ErrorsAvoided: 12},
		{WorkflowID: "wf-2", WorkflowName: "Report export", Executions: 300, SuccessRate: 85, HoursSaved: 10, CostSavings: 250, ErrorsAvoided: 3},
	}

	dashboard := builder.Build("org-1", workflows, nil, nil)

	assert.Equal(t, "org-1", dashboard.OrganizationID)
	assert.Equal(t, 2, dashboard.Summary.TotalWorkflows)
	assert.Equal(t, 400, dashboard.Summary.TotalExecutions)
	assert.InDelta(t, 50.0, dashboard.Summary.TotalHoursSaved, 1e-9)
	assert.InDelta(t, 1250.0, dashboard.Summary.TotalCostSavings, 1e-9)
	assert.Equal(t, 15, dashboard.Summary.TotalErrorsAvoided)
	// (95*100 + 85*300) / 400 = 87.5, weighted by executions
	assert.InDelta(t, 87.5, dashboard.Summary.AverageSuccessRate, 1e-9)
	assert.False(t, dashboard.GeneratedAt.IsZero())
}

func TestDashboardBuilder_BuildEmpty(t *testing.T) {
	builder := NewDashboardBuilder(testEngineConfig())

	dashboard := builder.Build("org-1", nil, nil, nil)

	assert.Equal(t, 0, dashboard.Summary.TotalWorkflows)
	assert.Zero(t, dashboard.Summary.AverageSuccessRate)
	assert.Empty(t, dashboard.Insights)
	assert.Empty(t, dashboard.Recommendations)
}

func TestDashboardBuilder_ClassifyTrend(t *testing.T) {
	builder := NewDashboardBuilder(testEngineConfig())

	t.Run("upward", func(t *testing.T) {
		direction, change := builder.ClassifyTrend(seriesOf(100, 110))
		assert.Equal(t, domain.TrendUp, direction)
		assert.InDelta(t, 10.0, change, 1e-9)
	})

	t.Run("downward", func(t *testing.T) {
		direction, change := builder.ClassifyTrend(seriesOf(100, 90))
		assert.Equal(t, domain.TrendDown, direction)
		assert.InDelta(t, -10.0, change, 1e-9)
	})

	t.Run("within thresholds is stable", func(t *testing.T) {
		direction, change := builder.ClassifyTrend(seriesOf(100, 101))
		assert.Equal(t, domain.TrendStable, direction)
		assert.InDelta(t, 1.0, change, 1e-9)
	})

	t.Run("only the last two points matter", func(t *testing.T) {
		direction, _ := builder.ClassifyTrend(seriesOf(500, 100, 110))
		assert.Equal(t, domain.TrendUp, direction)
	})

	t.Run("fewer than two points", func(t *testing.T) {
		direction, change := builder.ClassifyTrend(seriesOf(42))
		assert.Equal(t, domain.TrendStable, direction)
		assert.Zero(t, change)
	})

	t.Run("zero previous value", func(t *testing.T) {
		direction, change := builder.ClassifyTrend(seriesOf(0, 5))
		assert.Equal(t, domain.TrendUp, direction)
		assert.InDelta(t, 100.0, change, 1e-9)
	})
}

func TestDashboardBuilder_Insights(t *testing.T) {
	builder := NewDashboardBuilder(testEngineConfig())

	workflows := []domain.WorkflowMetric{
		{WorkflowID: "wf-1", WorkflowName: "Invoice intake", Executions: 10, SuccessRate: 99, CostSavings: 1000},
		{WorkflowID: "wf-2", WorkflowName: "Report export", Executions: 10, SuccessRate: 99, CostSavings: 4000},
	}
	trends := []domain.BusinessTrend{
		{WorkflowID: "wf-1", MetricType: domain.MetricTimeSaved, Direction: domain.TrendDown, ChangePercent: -12},
	}

	dashboard := builder.Build("org-1", workflows, trends, nil)

	require.Len(t, dashboard.Insights, 2)
	assert.Equal(t, "Top saver", dashboard.Insights[0].Title)
	assert.Equal(t, "wf-2", dashboard.Insights[0].WorkflowID)
	assert.Equal(t, "Declining metric", dashboard.Insights[1].Title)
	assert.Equal(t, domain.MetricTimeSaved, dashboard.Insights[1].MetricType)
}

func TestDashboardBuilder_Recommendations(t *testing.T) {
	builder := NewDashboardBuilder(testEngineConfig())

	workflows := []domain.WorkflowMetric{
		{WorkflowID: "wf-1", WorkflowName: "Invoice intake", Executions: 50, SuccessRate: 72},
		{WorkflowID: "wf-2", WorkflowName: "Report export", Executions: 50, SuccessRate: 99},
	}
	trends := []domain.BusinessTrend{
		{WorkflowID: "wf-2", MetricType: domain.MetricCostSavings, Direction: domain.TrendDown, ChangePercent: -8},
		{WorkflowID: "wf-2", MetricType: domain.MetricThroughput, Direction: domain.TrendDown, ChangePercent: -8},
	}

	dashboard := builder.Build("org-1", workflows, trends, nil)

	require.Len(t, dashboard.Recommendations, 2)
	assert.Equal(t, "high", dashboard.Recommendations[0].Priority)
	assert.Equal(t, "wf-1", dashboard.Recommendations[0].WorkflowID)
	assert.Equal(t, "medium", dashboard.Recommendations[1].Priority)
	assert.Equal(t, "wf-2", dashboard.Recommendations[1].WorkflowID)
}
