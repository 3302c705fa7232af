package calculator

import (
	"errors"
	"fmt"
	"sort"

	"rminsights/internal/domain"

	"github.com/shopspring/decimal"
)

// ErrNoHoldings signals that no risk assessment can be computed. The caller
// decides how to surface the gap; no scores are fabricated.
var ErrNoHoldings = errors.New("no holdings found")

// AssessRisk quantifies concentration risk and diversification quality for
// a set of holdings. Both scores are clamped to [0, 100]: diversification
// starts at 100 and is penalized for concentration, concentration risk
// starts at 0 and accumulates it.
func AssessRisk(clientID string, holdings []domain.Holding) (domain.RiskReport, error) {
	if len(holdings) == 0 {
		return domain.RiskReport{ClientID: clientID}, ErrNoHoldings
	}

	totalAUM := decimal.Zero
	for _, h := range holdings {
		totalAUM = totalAUM.Add(h.MarketValue)
	}
	totalAUMf := totalAUM.InexactFloat64()

	// Per-holding share of AUM, largest first.
	shares := make([]domain.TopHolding, 0, len(holdings))
	for _, h := range holdings {
		name := h.SecurityName
		if name == "" {
			name = "Unknown"
		}
		pct := 0.0
		if totalAUM.GreaterThan(decimal.Zero) {
			pct = h.MarketValue.Div(totalAUM).InexactFloat64() * 100
		}
		shares = append(shares, domain.TopHolding{SecurityName: name, Percentage: pct})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Percentage > shares[j].Percentage
	})

	top10 := 0.0
	for i, s := range shares {
		if i >= 10 {
			break
		}
		top10 += s.Percentage
	}
	maxSingle := shares[0].Percentage

	byClass := domain.ByAssetClass(holdings)
	classPcts := byClass.Percentages()
	maxClassPct := 0.0
	dominantClass := ""
	for class, pct := range classPcts {
		if pct > maxClassPct {
			maxClassPct = pct
			dominantClass = class
		}
	}

	diversification := 100
	switch {
	case top10 > 80:
		diversification -= 30
	case top10 > 60:
		diversification -= 20
	case top10 > 40:
		diversification -= 10
	}
	switch {
	case maxClassPct > 80:
		diversification -= 25
	case maxClassPct > 60:
		diversification -= 15
	case maxClassPct > 40:
		diversification -= 5
	}
	if len(holdings) >= 20 {
		diversification += 5
	} else if len(holdings) >= 10 {
		diversification += 2
	}
	diversification = clamp(diversification, 0, 100)

	risk := 0
	switch {
	case top10 > 80:
		risk += 40
	case top10 > 60:
		risk += 25
	case top10 > 40:
		risk += 15
	}
	switch {
	case maxSingle > 20:
		risk += 30
	case maxSingle > 10:
		risk += 20
	case maxSingle > 5:
		risk += 10
	}
	switch {
	case maxClassPct > 80:
		risk += 20
	case maxClassPct > 60:
		risk += 15
	case maxClassPct > 40:
		risk += 10
	}
	risk = clamp(risk, 0, 100)

	equityPct := classPcts[domain.AssetClassEquity]
	fixedIncomePct := classPcts[domain.AssetClassFixedIncome]
	volatility := equityPct*0.15 + fixedIncomePct*0.05 + (100-equityPct-fixedIncomePct)*0.08
	if risk > 70 {
		volatility *= 1.2
	} else if risk > 50 {
		volatility *= 1.1
	}

	mitigations := []string{}
	if risk > 70 {
		mitigations = append(mitigations, "HIGH PRIORITY: Reduce concentration in top holdings")
	}
	if maxSingle > 10 {
		mitigations = append(mitigations, fmt.Sprintf("Reduce position in %s (currently %.1f%%)", shares[0].SecurityName, maxSingle))
	}
	if maxClassPct > 60 {
		mitigations = append(mitigations, fmt.Sprintf("Diversify away from %s (currently %.1f%%)", dominantClass, maxClassPct))
	}
	if len(holdings) < 10 {
		mitigations = append(mitigations, "Consider adding more holdings for better diversification")
	}

	topHoldings := shares
	if len(topHoldings) > 5 {
		topHoldings = topHoldings[:5]
	}

	return domain.RiskReport{
		ClientID:      clientID,
		TotalAUMAED:   totalAUMf,
		TotalHoldings: len(holdings),
		Concentration: domain.ConcentrationMetrics{
			Top10Concentration:         top10,
			MaxSingleHolding:           maxSingle,
			MaxAssetClassConcentration: maxClassPct,
			TopHoldings:                topHoldings,
		},
		Scores: domain.RiskScores{
			ConcentrationRiskScore: risk,
			DiversificationScore:   diversification,
			VolatilityEstimate:     volatility,
		},
		Mitigations: mitigations,
	}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
