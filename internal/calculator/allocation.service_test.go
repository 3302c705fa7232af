package calculator

import (
	"testing"

	"rminsights/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_TargetAllocationFor(t *testing.T) {
	t.Run("fallback table by risk tier", func(t *testing.T) {
		out, external := TargetAllocationFor("R3", 45, nil)

		require.False(t, external)
		require.Equal(
			t,
			"",
			cmp.Diff(
				domain.TargetAllocation{
					domain.AssetClassEquity:       40,
					domain.AssetClassFixedIncome:  40,
					domain.AssetClassMoneyMarket:  15,
					domain.AssetClassAlternatives: 5,
				},
				out,
			),
		)
	})

	t.Run("unknown risk code falls back to R3", func(t *testing.T) {
		out, _ := TargetAllocationFor("R9", 45, nil)
		require.Equal(t, 40.0, out[domain.AssetClassEquity])
	})

	t.Run("age over 60 shifts equity into fixed income", func(t *testing.T) {
		out, _ := TargetAllocationFor("R5", 70, nil)

		require.Equal(t, 70.0, out[domain.AssetClassEquity])
		require.Equal(t, 20.0, out[domain.AssetClassFixedIncome])
	})

	t.Run("equity reduction caps at 20 points with floor of 20", func(t *testing.T) {
		out, _ := TargetAllocationFor("R1", 95, nil)

		// R1 equity 20 is already at the floor.
		require.Equal(t, 20.0, out[domain.AssetClassEquity])
		require.Equal(t, 80.0, out[domain.AssetClassFixedIncome])
	})

	t.Run("young client shifts fixed income into equity", func(t *testing.T) {
		out, _ := TargetAllocationFor("R3", 26, nil)

		require.Equal(t, 42.0, out[domain.AssetClassEquity])
		require.Equal(t, 38.0, out[domain.AssetClassFixedIncome])
	})

	t.Run("unknown age skips adjustment", func(t *testing.T) {
		out, _ := TargetAllocationFor("R3", 0, nil)
		require.Equal(t, 40.0, out[domain.AssetClassEquity])
	})

	t.Run("external target used as-is without age adjustment", func(t *testing.T) {
		external := domain.TargetAllocation{
			domain.AssetClassEquity:      55,
			domain.AssetClassFixedIncome: 45,
		}
		out, isExternal := TargetAllocationFor("R3", 70, external)

		require.True(t, isExternal)
		require.Equal(t, 55.0, out[domain.AssetClassEquity])
	})

	t.Run("external target normalized when off 100", func(t *testing.T) {
		external := domain.TargetAllocation{
			domain.AssetClassEquity:      60,
			domain.AssetClassFixedIncome: 60,
		}
		out, _ := TargetAllocationFor("R3", 45, external)

		require.InDelta(t, 50.0, out[domain.AssetClassEquity], 0.0001)
		require.InDelta(t, 50.0, out[domain.AssetClassFixedIncome], 0.0001)
	})
}

func Test_BuildRebalancePlan(t *testing.T) {
	snapshot := func() domain.AllocationSnapshot {
		return domain.AllocationSnapshot{
			domain.AssetClassEquity:       decimal.NewFromInt(70),
			domain.AssetClassFixedIncome:  decimal.NewFromInt(20),
			domain.AssetClassMoneyMarket:  decimal.NewFromInt(5),
			domain.AssetClassAlternatives: decimal.NewFromInt(5),
		}
	}
	target := domain.TargetAllocation{
		domain.AssetClassEquity:       40,
		domain.AssetClassFixedIncome:  40,
		domain.AssetClassMoneyMarket:  15,
		domain.AssetClassAlternatives: 5,
	}

	t.Run("overweight equity sells with high priority", func(t *testing.T) {
		plan := BuildRebalancePlan("C-1001", snapshot(), target, "R3", 45, false)

		require.Equal(t, 100.0, plan.TotalAUMAED)
		require.Len(t, plan.Recommendations, 3)

		first := plan.Recommendations[0]
		require.Equal(t, domain.AssetClassEquity, first.AssetClass)
		require.Equal(t, domain.ActionSell, first.Action)
		require.Equal(t, domain.PriorityHigh, first.Priority)
		require.InDelta(t, 30.0, first.Deviation, 0.0001)
		require.InDelta(t, 30.0, first.AmountAED, 0.0001)

		second := plan.Recommendations[1]
		require.Equal(t, domain.AssetClassFixedIncome, second.AssetClass)
		require.Equal(t, domain.ActionBuy, second.Action)
		require.Equal(t, domain.PriorityHigh, second.Priority)
	})

	t.Run("deviation within five points emits nothing", func(t *testing.T) {
		balanced := domain.AllocationSnapshot{
			domain.AssetClassEquity:       decimal.NewFromInt(42),
			domain.AssetClassFixedIncome:  decimal.NewFromInt(38),
			domain.AssetClassMoneyMarket:  decimal.NewFromInt(15),
			domain.AssetClassAlternatives: decimal.NewFromInt(5),
		}
		plan := BuildRebalancePlan("C-1001", balanced, target, "R3", 45, false)

		require.Empty(t, plan.Recommendations)
		require.InDelta(t, 2.0, plan.AllocationDeviations[domain.AssetClassEquity].Deviation, 0.0001)
	})

	t.Run("between five and ten points is medium priority", func(t *testing.T) {
		drifted := domain.AllocationSnapshot{
			domain.AssetClassEquity:       decimal.NewFromInt(48),
			domain.AssetClassFixedIncome:  decimal.NewFromInt(32),
			domain.AssetClassMoneyMarket:  decimal.NewFromInt(15),
			domain.AssetClassAlternatives: decimal.NewFromInt(5),
		}
		plan := BuildRebalancePlan("C-1001", drifted, target, "R3", 45, false)

		require.Len(t, plan.Recommendations, 2)
		for _, action := range plan.Recommendations {
			require.Equal(t, domain.PriorityMedium, action.Priority)
		}
	})

	t.Run("empty portfolio reports underweights with zero amounts", func(t *testing.T) {
		plan := BuildRebalancePlan("C-1001", domain.AllocationSnapshot{}, target, "R3", 45, false)

		require.Zero(t, plan.TotalAUMAED)
		require.Equal(t, -40.0, plan.AllocationDeviations[domain.AssetClassEquity].Deviation)
		require.NotEmpty(t, plan.Recommendations)
		for _, action := range plan.Recommendations {
			require.Equal(t, domain.ActionBuy, action.Action)
			require.Zero(t, action.AmountAED)
		}
	})
}
