package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rminsights/internal/calculator"
	"rminsights/internal/domain"
	"rminsights/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrClientNotFound is returned when no profile row exists for a client id.
var ErrClientNotFound = errors.New("client not found")

// The age-unknown default feeds the fallback allocation's age adjustment.
// 45 sits in the no-adjustment band so unknown ages skew nothing.
const defaultClientAge = 45

// ClientInsightsHandler wires the data fetchers to the deterministic
// calculators and assembles the JSON contracts consumed downstream. The
// calculators receive plain values only; connections stay in the
// repositories.
type ClientInsightsHandler struct {
	ClientRepository           repository.ClientRepository
	HoldingsRepository         repository.HoldingsRepository
	CasaRepository             repository.CasaRepository
	TargetAllocationRepository repository.TargetAllocationRepository
	ProductCatalog             repository.ProductCatalogRepository
	NarrativeRepository        repository.NarrativeRepository // nil disables narratives
	Log                        *zap.SugaredLogger
}

// DepositTrendPayload is the CASA trend contract: the classified trend plus
// the history it was computed from.
type DepositTrendPayload struct {
	ClientID string `json:"client_id"`
	domain.TrendReport
	HistoricalData domain.BalanceSeries `json:"historical_data"`
}

// ClientInsights is the combined per-client payload injected into the
// downstream prompt-assembly layer.
type ClientInsights struct {
	RunID            uuid.UUID                 `json:"run_id"`
	ClientID         string                    `json:"client_id"`
	GeneratedAt      time.Time                 `json:"generated_at"`
	LoanEligibility  *domain.EligibilityReport `json:"loan_eligibility"`
	DepositTrend     *DepositTrendPayload      `json:"deposit_trend_analysis"`
	Rebalancing      *domain.RebalancePlan     `json:"rebalancing"`
	PortfolioRisk    *domain.RiskReport        `json:"portfolio_risk,omitempty"`
	PortfolioRiskGap string                    `json:"portfolio_risk_gap,omitempty"`
	Narrative        string                    `json:"narrative,omitempty"`
}

// loadProfile fetches the profile and holdings, fills AUM from holdings,
// and infers the segment when the source row carried none.
func (h ClientInsightsHandler) loadProfile(ctx context.Context, clientID string) (*domain.ClientProfile, []domain.Holding, error) {
	profile, err := h.ClientRepository.GetProfile(ctx, clientID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load profile for %s: %w", clientID, err)
	}
	if profile == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrClientNotFound, clientID)
	}

	holdings, err := h.HoldingsRepository.List(ctx, clientID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load holdings for %s: %w", clientID, err)
	}

	profile.AUM = domain.ByAssetClass(holdings).TotalAUM()
	if profile.Segment == "" {
		profile.Segment = domain.InferSegment(profile.Tier, profile.AUM)
	}

	return profile, holdings, nil
}

func (h ClientInsightsHandler) LoanEligibility(ctx context.Context, clientID string) (*domain.EligibilityReport, error) {
	profile, _, err := h.loadProfile(ctx, clientID)
	if err != nil {
		return nil, err
	}

	report := calculator.ScoreLoanProducts(*profile, h.ProductCatalog.Load())
	return &report, nil
}

func (h ClientInsightsHandler) CasaTrend(ctx context.Context, clientID string) (*DepositTrendPayload, error) {
	series, err := h.CasaRepository.MonthlyBalances(ctx, clientID, 7)
	if err != nil {
		return nil, fmt.Errorf("failed to load balances for %s: %w", clientID, err)
	}

	return &DepositTrendPayload{
		ClientID:       clientID,
		TrendReport:    calculator.ClassifyTrend(series),
		HistoricalData: series,
	}, nil
}

func (h ClientInsightsHandler) RebalancePlan(ctx context.Context, clientID string) (*domain.RebalancePlan, error) {
	profile, holdings, err := h.loadProfile(ctx, clientID)
	if err != nil {
		return nil, err
	}

	external, err := h.TargetAllocationRepository.TargetFor(ctx, profile.RiskAppetite)
	if err != nil {
		return nil, fmt.Errorf("failed to load target allocation for %s: %w", clientID, err)
	}

	age := profile.Age
	if age == 0 {
		age = defaultClientAge
	}

	target, fromExternal := calculator.TargetAllocationFor(profile.RiskAppetite, age, external)
	plan := calculator.BuildRebalancePlan(
		clientID,
		domain.ByAssetClass(holdings),
		target,
		profile.RiskAppetite,
		age,
		fromExternal,
	)
	return &plan, nil
}

func (h ClientInsightsHandler) PortfolioRisk(ctx context.Context, clientID string) (*domain.RiskReport, error) {
	holdings, err := h.HoldingsRepository.List(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings for %s: %w", clientID, err)
	}

	report, err := calculator.AssessRisk(clientID, holdings)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// GetInsights runs all four calculators for one client and assembles the
// combined payload. A missing risk section (no holdings) is reported as a
// gap, not a failure; a narrative failure degrades to no narrative.
func (h ClientInsightsHandler) GetInsights(ctx context.Context, clientID string, withNarrative bool) (*ClientInsights, error) {
	profile, holdings, err := h.loadProfile(ctx, clientID)
	if err != nil {
		return nil, err
	}

	eligibility := calculator.ScoreLoanProducts(*profile, h.ProductCatalog.Load())

	series, err := h.CasaRepository.MonthlyBalances(ctx, clientID, 7)
	if err != nil {
		return nil, fmt.Errorf("failed to load balances for %s: %w", clientID, err)
	}
	trend := &DepositTrendPayload{
		ClientID:       clientID,
		TrendReport:    calculator.ClassifyTrend(series),
		HistoricalData: series,
	}

	external, err := h.TargetAllocationRepository.TargetFor(ctx, profile.RiskAppetite)
	if err != nil {
		return nil, fmt.Errorf("failed to load target allocation for %s: %w", clientID, err)
	}
	age := profile.Age
	if age == 0 {
		age = defaultClientAge
	}
	target, fromExternal := calculator.TargetAllocationFor(profile.RiskAppetite, age, external)
	plan := calculator.BuildRebalancePlan(clientID, domain.ByAssetClass(holdings), target, profile.RiskAppetite, age, fromExternal)

	insights := &ClientInsights{
		RunID:           uuid.New(),
		ClientID:        clientID,
		GeneratedAt:     time.Now().UTC(),
		LoanEligibility: &eligibility,
		DepositTrend:    trend,
		Rebalancing:     &plan,
	}

	risk, err := calculator.AssessRisk(clientID, holdings)
	if err != nil {
		insights.PortfolioRiskGap = err.Error()
	} else {
		insights.PortfolioRisk = &risk
	}

	if withNarrative && h.NarrativeRepository != nil {
		narrative, err := h.generateNarrative(ctx, insights)
		if err != nil {
			h.Log.Warnw("narrative generation failed", "clientID", clientID, "error", err)
		} else {
			insights.Narrative = narrative
		}
	}

	return insights, nil
}

func (h ClientInsightsHandler) generateNarrative(ctx context.Context, insights *ClientInsights) (string, error) {
	payload, err := json.Marshal(insights)
	if err != nil {
		return "", fmt.Errorf("failed to serialize insights: %w", err)
	}
	return h.NarrativeRepository.GenerateNarrative(ctx, "relationship_manager", string(payload))
}
