package domain

import (
	"time"

	"github.com/google/uuid"
)

// WorkflowMetric is the per-workflow rollup fed into the dashboard builder.
type WorkflowMetric struct {
	WorkflowID    string  `json:"workflow_id"`
	WorkflowName  string  `json:"workflow_name"`
	Executions    int     `json:"executions"`
	SuccessRate   float64 `json:"success_rate"` // percent 0-100
	HoursSaved    float64 `json:"hours_saved"`
	CostSavings   float64 `json:"cost_savings"`
	ErrorsAvoided int     `json:"errors_avoided"`
}

// BusinessSummary is the organization-level rollup: straight sums and
// execution-weighted averages across workflows.
type BusinessSummary struct {
	TotalWorkflows     int     `json:"total_workflows"`
	TotalExecutions    int     `json:"total_executions"`
	TotalHoursSaved    float64 `json:"total_hours_saved"`
	TotalCostSavings   float64 `json:"total_cost_savings"`
	TotalErrorsAvoided int     `json:"total_errors_avoided"`
	AverageSuccessRate float64 `json:"average_success_rate"` // weighted by executions
}

// BusinessInsight is a derived observation surfaced on the dashboard.
type BusinessInsight struct {
	Title      string             `json:"title"`
	Detail     string             `json:"detail"`
	MetricType BusinessMetricType `json:"metric_type"`
	WorkflowID string             `json:"workflow_id,omitempty"`
}

// BusinessRecommendation is a suggested follow-up action.
type BusinessRecommendation struct {
	Title      string `json:"title"`
	Detail     string `json:"detail"`
	WorkflowID string `json:"workflow_id,omitempty"`
	Priority   string `json:"priority"`
}

// BusinessDashboard is a generated, disposable snapshot for one organization
// at one point in time. GeneratedAt is its only identity.
type BusinessDashboard struct {
	OrganizationID  string                   `json:"organization_id"`
	Summary         BusinessSummary          `json:"summary"`
	Workflows       []WorkflowMetric         `json:"workflows"`
	Trends          []BusinessTrend          `json:"trends"`
	Insights        []BusinessInsight        `json:"insights"`
	Recommendations []BusinessRecommendation `json:"recommendations"`
	Alerts          []BusinessAlert          `json:"alerts"`
	GeneratedAt     time.Time                `json:"generated_at"`
}

// ThresholdOperator is the comparison applied by the alert evaluator.
// eq is exact numeric equality; callers needing tolerance pre-round.
type ThresholdOperator string

const (
	OpGreaterThan        ThresholdOperator = "gt"
	OpLessThan           ThresholdOperator = "lt"
	OpEqual              ThresholdOperator = "eq"
	OpGreaterThanOrEqual ThresholdOperator = "gte"
	OpLessThanOrEqual    ThresholdOperator = "lte"
)

func (o ThresholdOperator) IsValid() bool {
	switch o {
	case OpGreaterThan, OpLessThan, OpEqual, OpGreaterThanOrEqual, OpLessThanOrEqual:
		return true
	default:
		return false
	}
}

// AlertSeverity is caller-supplied on the threshold, never derived.
type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// MetricThreshold is one configured alert rule.
type MetricThreshold struct {
	Metric   BusinessMetricType `json:"metric"`
	Operator ThresholdOperator  `json:"operator"`
	Value    float64            `json:"value"`
	Severity AlertSeverity      `json:"severity"`
}

// BusinessAlert is created when a threshold condition holds. Append-only
// except for the acknowledged flag, ResolvedAt and the CurrentValue refresh
// applied while it stays unresolved.
type BusinessAlert struct {
	ID             uuid.UUID          `json:"id"`
	OrganizationID string             `json:"organization_id"`
	WorkflowID     string             `json:"workflow_id"`
	Metric         BusinessMetricType `json:"metric"`
	Operator       ThresholdOperator  `json:"operator"`
	Threshold      float64            `json:"threshold"`
	CurrentValue   float64            `json:"current_value"`
	Severity       AlertSeverity      `json:"severity"`
	Message        string             `json:"message"`
	Acknowledged   bool               `json:"acknowledged"`
	ResolvedAt     *time.Time         `json:"resolved_at,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// Resolved reports whether the alert has been closed by an operator.
func (a *BusinessAlert) Resolved() bool { return a.ResolvedAt != nil }
