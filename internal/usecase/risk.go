package usecase

import (
	"roiengine/internal/domain"
	"roiengine/pkg/config"
)

// RiskAssessor combines categorical risk scores and discrete risk factors
// into an overall 0-100 score.
type RiskAssessor struct {
	weights config.RiskWeightConfig
}

func NewRiskAssessor(weights config.RiskWeightConfig) *RiskAssessor {
	return &RiskAssessor{weights: weights}
}

// Assess computes the weighted mean of the category scores, adjusted upward
// by the normalized probability-weighted factor load and capped at 100.
func (r *RiskAssessor) Assess(scores domain.RiskCategoryScores, factors []domain.RiskFactor) (*domain.RiskAssessment, error) {
	if err := validateScores(scores); err != nil {
		return nil, err
	}
	for _, factor := range factors {
		if factor.Probability < 0 || factor.Probability > 1 {
			return nil, &domain.ValidationError{Field: factor.Name + ".probability", Value: factor.Probability, Reason: "must be between 0 and 1"}
		}
		if factor.Impact < 0 {
			return nil, &domain.ValidationError{Field: factor.Name + ".impact", Value: factor.Impact, Reason: "must not be negative"}
		}
		if factor.ResidualRisk > factor.Impact {
			return nil, &domain.ValidationError{Field: factor.Name + ".residual_risk", Value: factor.ResidualRisk, Reason: "must not exceed the unmitigated impact"}
		}
	}

	base := r.weightedMean(scores)

	// Expected loss as a fraction of the total possible impact, scaled to
	// the 0-100 score range. No factors means no adjustment.
	var weighted, total float64
	for _, factor := range factors {
		weighted += factor.Probability * factor.Impact
		total += factor.Impact
	}
	var load float64
	if total > 0 {
		load = weighted / total * 100
	}

	overall := base + load
	if overall > 100 {
		overall = 100
	}

	return &domain.RiskAssessment{
		Scores:           scores,
		Factors:          factors,
		OverallRiskScore: overall,
	}, nil
}

func (r *RiskAssessor) weightedMean(scores domain.RiskCategoryScores) float64 {
	wt, wf, wo, ws := r.weights.Technical, r.weights.Financial, r.weights.Operational, r.weights.Strategic
	total := wt + wf + wo + ws
	if total <= 0 {
		wt, wf, wo, ws = 1, 1, 1, 1
		total = 4
	}
	return (scores.Technical*wt + scores.Financial*wf + scores.Operational*wo + scores.Strategic*ws) / total
}

func validateScores(scores domain.RiskCategoryScores) error {
	checks := []struct {
		field string
		value float64
	}{
		{"technical", scores.Technical},
		{"financial", scores.Financial},
		{"operational", scores.Operational},
		{"strategic", scores.Strategic},
	}
	for _, check := range checks {
		if check.value < 0 || check.value > 100 {
			return &domain.ValidationError{Field: check.field, Value: check.value, Reason: "must be between 0 and 100"}
		}
	}
	return nil
}
