package usecase

import (
	"testing"

	"roiengine/internal/domain"
	"roiengine/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskAssessor_Assess(t *testing.T) {
	assessor := NewRiskAssessor(testEngineConfig().RiskWeights)

	scores := domain.RiskCategoryScores{Technical: 40, Financial: 20, Operational: 60, Strategic: 40}

	t.Run("equal weights without factors", func(t *testing.T) {
		assessment, err := assessor.Assess(scores, nil)
		require.NoError(t, err)
		assert.InDelta(t, 40.0, assessment.OverallRiskScore, 1e-9)
	})

	t.Run("factor load raises the score", func(t *testing.T) {
		factors := []domain.RiskFactor{
			{Name: "vendor lock-in", Probability: 0.5, Impact: 1000, ResidualRisk: 400},
			{Name: "api deprecation", Probability: 0.1, Impact: 1000, ResidualRisk: 100},
		}

		assessment, err := assessor.Assess(scores, factors)
		require.NoError(t, err)

		// Expected loss is 600 of a possible 2000: +30 on top of the mean.
		assert.InDelta(t, 70.0, assessment.OverallRiskScore, 1e-9)
	})

	t.Run("capped at 100", func(t *testing.T) {
		high := domain.RiskCategoryScores{Technical: 90, Financial: 90, Operational: 90, Strategic: 90}
		factors := []domain.RiskFactor{
			{Name: "certain loss", Probability: 1, Impact: 5000, ResidualRisk: 5000},
		}

		assessment, err := assessor.Assess(high, factors)
		require.NoError(t, err)
		assert.InDelta(t, 100.0, assessment.OverallRiskScore, 1e-9)
	})

	t.Run("custom weights", func(t *testing.T) {
		weighted := NewRiskAssessor(config.RiskWeightConfig{Technical: 3, Financial: 1, Operational: 0, Strategic: 0})
		assessment, err := weighted.Assess(scores, nil)
		require.NoError(t, err)
		assert.InDelta(t, 35.0, assessment.OverallRiskScore, 1e-9)
	})
}

func TestRiskAssessor_Assess_Rejections(t *testing.T) {
	assessor := NewRiskAssessor(testEngineConfig().RiskWeights)
	scores := domain.RiskCategoryScores{Technical: 50, Financial: 50, Operational: 50, Strategic: 50}

	t.Run("residual exceeding impact", func(t *testing.T) {
		_, err := assessor.Assess(scores, []domain.RiskFactor{
			{Name: "bad factor", Probability: 0.5, Impact: 100, ResidualRisk: 150},
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Field, "residual_risk")
	})

	t.Run("probability out of range", func(t *testing.T) {
		_, err := assessor.Assess(scores, []domain.RiskFactor{
			{Name: "bad factor", Probability: 1.5, Impact: 100},
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("category score out of range", func(t *testing.T) {
		bad := scores
		bad.Financial = 120
		_, err := assessor.Assess(bad, nil)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "financial", verr.Field)
	})
}
