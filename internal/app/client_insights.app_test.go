package app

import (
	"context"
	"errors"
	"testing"

	"rminsights/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClientRepository struct {
	profile *domain.ClientProfile
	ids     []string
}

func (f fakeClientRepository) GetProfile(_ context.Context, clientID string) (*domain.ClientProfile, error) {
	if f.profile == nil {
		return nil, nil
	}
	p := *f.profile
	p.ClientID = clientID
	return &p, nil
}

func (f fakeClientRepository) ListClientIDs(_ context.Context) ([]string, error) {
	return f.ids, nil
}

type fakeHoldingsRepository struct {
	holdings []domain.Holding
}

func (f fakeHoldingsRepository) List(_ context.Context, _ string) ([]domain.Holding, error) {
	return f.holdings, nil
}

type fakeCasaRepository struct {
	series domain.BalanceSeries
}

func (f fakeCasaRepository) MonthlyBalances(_ context.Context, _ string, _ int) (domain.BalanceSeries, error) {
	return f.series, nil
}

type fakeTargetAllocationRepository struct {
	target domain.TargetAllocation
}

func (f fakeTargetAllocationRepository) TargetFor(_ context.Context, _ domain.RiskCode) (domain.TargetAllocation, error) {
	return f.target, nil
}

type fakeProductCatalog struct {
	products []domain.LoanProduct
}

func (f fakeProductCatalog) Load() []domain.LoanProduct {
	return f.products
}

type fakeNarrativeRepository struct {
	narrative string
	err       error
	calls     int
}

func (f *fakeNarrativeRepository) GenerateNarrative(_ context.Context, _ string, _ string) (string, error) {
	f.calls++
	return f.narrative, f.err
}

func newTestHandler() ClientInsightsHandler {
	return ClientInsightsHandler{
		ClientRepository: fakeClientRepository{
			profile: &domain.ClientProfile{
				Income:       decimal.NewFromInt(500_000),
				RiskAppetite: "R3",
				Segment:      domain.SegmentAffluent,
				Age:          42,
			},
		},
		HoldingsRepository: fakeHoldingsRepository{
			holdings: []domain.Holding{
				{SecurityName: "Global Equity Fund", AssetClass: domain.AssetClassEquity, MarketValue: decimal.NewFromInt(700_000)},
				{SecurityName: "Sukuk Fund", AssetClass: domain.AssetClassFixedIncome, MarketValue: decimal.NewFromInt(300_000)},
			},
		},
		CasaRepository: fakeCasaRepository{
			series: domain.BalanceSeries{
				{Year: 2025, Month: 12, Balance: decimal.NewFromInt(120_000)},
				{Year: 2025, Month: 11, Balance: decimal.NewFromInt(100_000)},
				{Year: 2025, Month: 10, Balance: decimal.NewFromInt(100_000)},
			},
		},
		TargetAllocationRepository: fakeTargetAllocationRepository{},
		ProductCatalog: fakeProductCatalog{
			products: []domain.LoanProduct{
				{
					ProductID:     "PL-01",
					TargetSegment: "affluent",
					MinAmount:     decimal.NewFromInt(50_000),
					MaxAmount:     decimal.NewFromInt(300_000),
					RiskLevel:     3,
					IsActive:      true,
				},
			},
		},
		Log: zap.NewNop().Sugar(),
	}
}

func Test_GetInsights(t *testing.T) {
	ctx := context.Background()

	t.Run("assembles all sections", func(t *testing.T) {
		h := newTestHandler()

		out, err := h.GetInsights(ctx, "C-1001", false)
		require.NoError(t, err)

		require.Equal(t, "C-1001", out.ClientID)
		require.NotNil(t, out.LoanEligibility)
		require.Len(t, out.LoanEligibility.EligibleProducts, 1)
		require.Equal(t, 100, out.LoanEligibility.EligibleProducts[0].EligibilityScore)
		require.Equal(t, 1_000_000.0, out.LoanEligibility.ClientProfile.AUM)

		require.NotNil(t, out.DepositTrend)
		require.Equal(t, domain.TrendIncreasingSignificantly, out.DepositTrend.Trend)

		require.NotNil(t, out.Rebalancing)
		require.Equal(t, 1_000_000.0, out.Rebalancing.TotalAUMAED)
		// 70% equity vs R3 target 40% -> HIGH sell first
		require.Equal(t, domain.AssetClassEquity, out.Rebalancing.Recommendations[0].AssetClass)
		require.Equal(t, domain.ActionSell, out.Rebalancing.Recommendations[0].Action)

		require.NotNil(t, out.PortfolioRisk)
		require.Empty(t, out.PortfolioRiskGap)
		require.Empty(t, out.Narrative)
	})

	t.Run("unknown client", func(t *testing.T) {
		h := newTestHandler()
		h.ClientRepository = fakeClientRepository{}

		_, err := h.GetInsights(ctx, "C-404", false)
		require.ErrorIs(t, err, ErrClientNotFound)
	})

	t.Run("no holdings reported as gap not failure", func(t *testing.T) {
		h := newTestHandler()
		h.HoldingsRepository = fakeHoldingsRepository{}

		out, err := h.GetInsights(ctx, "C-1001", false)
		require.NoError(t, err)
		require.Nil(t, out.PortfolioRisk)
		require.NotEmpty(t, out.PortfolioRiskGap)
	})

	t.Run("narrative attached when requested", func(t *testing.T) {
		h := newTestHandler()
		narrative := &fakeNarrativeRepository{narrative: "Focus on rebalancing equity."}
		h.NarrativeRepository = narrative

		out, err := h.GetInsights(ctx, "C-1001", true)
		require.NoError(t, err)
		require.Equal(t, "Focus on rebalancing equity.", out.Narrative)
		require.Equal(t, 1, narrative.calls)
	})

	t.Run("narrative failure degrades silently", func(t *testing.T) {
		h := newTestHandler()
		h.NarrativeRepository = &fakeNarrativeRepository{err: errors.New("rate limited")}

		out, err := h.GetInsights(ctx, "C-1001", true)
		require.NoError(t, err)
		require.Empty(t, out.Narrative)
	})
}

func Test_RebalancePlan(t *testing.T) {
	ctx := context.Background()

	t.Run("external target skips age adjustment", func(t *testing.T) {
		h := newTestHandler()
		profile := *h.ClientRepository.(fakeClientRepository).profile
		profile.Age = 70
		h.ClientRepository = fakeClientRepository{profile: &profile}
		h.TargetAllocationRepository = fakeTargetAllocationRepository{
			target: domain.TargetAllocation{
				domain.AssetClassEquity:      60,
				domain.AssetClassFixedIncome: 40,
			},
		}

		plan, err := h.RebalancePlan(ctx, "C-1001")
		require.NoError(t, err)
		require.True(t, plan.TargetSourcedExternally)
		require.Equal(t, 60.0, plan.TargetAllocation[domain.AssetClassEquity])
	})

	t.Run("unknown age defaults to 45", func(t *testing.T) {
		h := newTestHandler()
		profile := *h.ClientRepository.(fakeClientRepository).profile
		profile.Age = 0
		h.ClientRepository = fakeClientRepository{profile: &profile}

		plan, err := h.RebalancePlan(ctx, "C-1001")
		require.NoError(t, err)
		require.Equal(t, 45, plan.ClientAge)
		require.False(t, plan.TargetSourcedExternally)
		require.Equal(t, 40.0, plan.TargetAllocation[domain.AssetClassEquity])
	})
}

func Test_LoanEligibility_SegmentInference(t *testing.T) {
	h := newTestHandler()
	profile := *h.ClientRepository.(fakeClientRepository).profile
	profile.Segment = ""
	profile.Tier = "Elite Plus"
	h.ClientRepository = fakeClientRepository{profile: &profile}

	// AUM 1M with an elite tier infers affluent (not over the 1M strict
	// threshold for high_net_worth).
	report, err := h.LoanEligibility(context.Background(), "C-1001")
	require.NoError(t, err)
	require.Equal(t, "affluent", report.ClientProfile.Segment)
}
