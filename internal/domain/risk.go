package domain

// RiskCategory names one of the four assessed risk dimensions.
type RiskCategory string

const (
	RiskTechnical   RiskCategory = "technical"
	RiskFinancial   RiskCategory = "financial"
	RiskOperational RiskCategory = "operational"
	RiskStrategic   RiskCategory = "strategic"
)

// RiskCategoryScores are the per-category scores, each 0-100.
type RiskCategoryScores struct {
	Technical   float64 `json:"technical"`
	Financial   float64 `json:"financial"`
	Operational float64 `json:"operational"`
	Strategic   float64 `json:"strategic"`
}

// RiskFactor is a discrete, probability-weighted source of risk.
// ResidualRisk is the impact remaining after mitigation and must not exceed
// the unmitigated impact.
type RiskFactor struct {
	Name         string       `json:"name"`
	Category     RiskCategory `json:"category"`
	Probability  float64      `json:"probability"` // 0-1
	Impact       float64      `json:"impact"`      // financial impact
	Mitigation   string       `json:"mitigation,omitempty"`
	ResidualRisk float64      `json:"residual_risk"`
}

// RiskAssessment combines category scores and discrete factors into one
// overall score 0-100.
type RiskAssessment struct {
	Scores           RiskCategoryScores `json:"scores"`
	Factors          []RiskFactor       `json:"factors"`
	OverallRiskScore float64            `json:"overall_risk_score"`
}
