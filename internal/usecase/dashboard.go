package usecase

import (
	"fmt"
	"sort"
	"time"

	"roiengine/internal/domain"
	"roiengine/pkg/config"
)

// DashboardBuilder composes per-workflow results and aggregated trends into
// an organization-level snapshot. Pure fold over already-computed inputs; it
// performs no I/O.
type DashboardBuilder struct {
	cfg config.EngineConfig
}

func NewDashboardBuilder(cfg config.EngineConfig) *DashboardBuilder {
	return &DashboardBuilder{cfg: cfg}
}

// Build assembles the dashboard. Summary fields are straight sums across
// workflows; the success rate is weighted by executions.
func (b *DashboardBuilder) Build(organizationID string, workflows []domain.WorkflowMetric, trends []domain.BusinessTrend, alerts []domain.BusinessAlert) domain.BusinessDashboard {
	summary := domain.BusinessSummary{TotalWorkflows: len(workflows)}

	var weightedSuccess float64
	for _, wf := range workflows {
		summary.TotalExecutions += wf.Executions
		summary.TotalHoursSaved += wf.HoursSaved
		summary.TotalCostSavings += wf.CostSavings
		summary.TotalErrorsAvoided += wf.ErrorsAvoided
		weightedSuccess += wf.SuccessRate * float64(wf.Executions)
	}
	if summary.TotalExecutions > 0 {
		summary.AverageSuccessRate = weightedSuccess / float64(summary.TotalExecutions)
	}

	return domain.BusinessDashboard{
		OrganizationID:  organizationID,
		Summary:         summary,
		Workflows:       workflows,
		Trends:          trends,
		Insights:        b.insights(workflows, trends),
		Recommendations: b.recommendations(workflows, trends),
		Alerts:          alerts,
		GeneratedAt:     time.Now().UTC(),
	}
}

// ClassifyTrend compares the most recent two points' percentage change
// against the configured thresholds.
func (b *DashboardBuilder) ClassifyTrend(points []domain.TimeSeriesData) (domain.TrendDirection, float64) {
	if len(points) < 2 {
		return domain.TrendStable, 0
	}

	prev := points[len(points)-2].Value
	last := points[len(points)-1].Value

	var change float64
	switch {
	case prev != 0:
		change = (last - prev) / prev * 100
	case last > 0:
		change = 100
	case last < 0:
		change = -100
	}

	switch {
	case change > b.cfg.TrendUpPercent:
		return domain.TrendUp, change
	case change < b.cfg.TrendDownPercent:
		return domain.TrendDown, change
	default:
		return domain.TrendStable, change
	}
}

func (b *DashboardBuilder) insights(workflows []domain.WorkflowMetric, trends []domain.BusinessTrend) []domain.BusinessInsight {
	var insights []domain.BusinessInsight

	if top, ok := topSaver(workflows); ok && top.CostSavings > 0 {
		insights = append(insights, domain.BusinessInsight{
			Title:      "Top saver",
			Detail:     fmt.Sprintf("%s delivers the largest cost savings ($%.2f)", top.WorkflowName, top.CostSavings),
			MetricType: domain.MetricCostSavings,
			WorkflowID: top.WorkflowID,
		})
	}

	for _, trend := range trends {
		if trend.Direction == domain.TrendDown {
			insights = append(insights, domain.BusinessInsight{
				Title:      "Declining metric",
				Detail:     fmt.Sprintf("%s is down %.1f%% over the last two samples", trend.MetricType, -trend.ChangePercent),
				MetricType: trend.MetricType,
				WorkflowID: trend.WorkflowID,
			})
		}
	}

	return insights
}

func (b *DashboardBuilder) recommendations(workflows []domain.WorkflowMetric, trends []domain.BusinessTrend) []domain.BusinessRecommendation {
	var recs []domain.BusinessRecommendation

	for _, wf := range workflows {
		if wf.Executions > 0 && wf.SuccessRate < 90 {
			recs = append(recs, domain.BusinessRecommendation{
				Title:      "Investigate failures",
				Detail:     fmt.Sprintf("%s succeeds only %.1f%% of the time", wf.WorkflowName, wf.SuccessRate),
				WorkflowID: wf.WorkflowID,
				Priority:   "high",
			})
		}
	}

	for _, trend := range trends {
		if trend.Direction == domain.TrendDown && trend.MetricType == domain.MetricCostSavings {
			recs = append(recs, domain.BusinessRecommendation{
				Title:      "Review savings decline",
				Detail:     fmt.Sprintf("cost savings declining on workflow %s", trend.WorkflowID),
				WorkflowID: trend.WorkflowID,
				Priority:   "medium",
			})
		}
	}

	return recs
}

func topSaver(workflows []domain.WorkflowMetric) (domain.WorkflowMetric, bool) {
	if len(workflows) == 0 {
		return domain.WorkflowMetric{}, false
	}
	sorted := make([]domain.WorkflowMetric, len(workflows))
	copy(sorted, workflows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CostSavings > sorted[j].CostSavings })
	return sorted[0], true
}
