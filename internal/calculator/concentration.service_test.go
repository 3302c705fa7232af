package calculator

import (
	"fmt"
	"testing"

	"rminsights/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func holding(name, class string, value int64) domain.Holding {
	return domain.Holding{
		SecurityName: name,
		AssetClass:   class,
		MarketValue:  decimal.NewFromInt(value),
	}
}

func Test_AssessRisk(t *testing.T) {
	t.Run("zero holdings returns explicit error", func(t *testing.T) {
		_, err := AssessRisk("C-1001", nil)
		require.ErrorIs(t, err, ErrNoHoldings)
	})

	t.Run("three equal holdings in one class", func(t *testing.T) {
		holdings := []domain.Holding{
			holding("Fund A", domain.AssetClassEquity, 100),
			holding("Fund B", domain.AssetClassEquity, 100),
			holding("Fund C", domain.AssetClassEquity, 100),
		}

		out, err := AssessRisk("C-1001", holdings)
		require.NoError(t, err)

		require.InDelta(t, 100.0, out.Concentration.Top10Concentration, 0.0001)
		require.InDelta(t, 100.0, out.Concentration.MaxAssetClassConcentration, 0.0001)
		require.InDelta(t, 33.33, out.Concentration.MaxSingleHolding, 0.01)

		// diversification: 100 - 30 (top10 > 80) - 25 (class > 80) = 45
		require.Equal(t, 45, out.Scores.DiversificationScore)
		// risk: 40 (top10 > 80) + 30 (single > 20) + 20 (class > 80) = 90
		require.Equal(t, 90, out.Scores.ConcentrationRiskScore)
	})

	t.Run("volatility scales with concentration", func(t *testing.T) {
		holdings := []domain.Holding{
			holding("Single Stock", domain.AssetClassEquity, 1000),
		}

		out, err := AssessRisk("C-1001", holdings)
		require.NoError(t, err)

		// all equity: 100*0.15 = 15, concentration risk 90 > 70 -> x1.2
		require.InDelta(t, 18.0, out.Scores.VolatilityEstimate, 0.0001)
		require.Contains(t, out.Mitigations, "HIGH PRIORITY: Reduce concentration in top holdings")
		require.Contains(t, out.Mitigations, "Reduce position in Single Stock (currently 100.0%)")
		require.Contains(t, out.Mitigations, "Diversify away from Equity (currently 100.0%)")
		require.Contains(t, out.Mitigations, "Consider adding more holdings for better diversification")
	})

	t.Run("well diversified book scores high", func(t *testing.T) {
		classes := []string{
			domain.AssetClassEquity,
			domain.AssetClassFixedIncome,
			domain.AssetClassMoneyMarket,
			domain.AssetClassAlternatives,
		}
		holdings := []domain.Holding{}
		for i := 0; i < 24; i++ {
			holdings = append(holdings, holding(fmt.Sprintf("Position %d", i), classes[i%len(classes)], 100))
		}

		out, err := AssessRisk("C-1001", holdings)
		require.NoError(t, err)

		// top10 = 10/24 ≈ 41.7 -> -10 and +15; class max 25 -> no penalty;
		// 24 holdings -> +5 bonus
		require.Equal(t, 95, out.Scores.DiversificationScore)
		require.Equal(t, 15, out.Scores.ConcentrationRiskScore)
		require.Empty(t, out.Mitigations)
		require.Len(t, out.Concentration.TopHoldings, 5)
	})

	t.Run("scores clamp to bounds", func(t *testing.T) {
		holdings := []domain.Holding{
			holding("Dominant", domain.AssetClassEquity, 10_000),
			holding("Rest", domain.AssetClassEquity, 100),
		}

		out, err := AssessRisk("C-1001", holdings)
		require.NoError(t, err)

		require.GreaterOrEqual(t, out.Scores.DiversificationScore, 0)
		require.LessOrEqual(t, out.Scores.ConcentrationRiskScore, 100)
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		holdings := []domain.Holding{
			holding("Fund A", domain.AssetClassEquity, 600),
			holding("Bond B", domain.AssetClassFixedIncome, 400),
		}
		first, err := AssessRisk("C-1001", holdings)
		require.NoError(t, err)
		second, err := AssessRisk("C-1001", holdings)
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(first, second))
	})
}
