package domain

import "github.com/shopspring/decimal"

// Holding is one security position in a client portfolio.
type Holding struct {
	SecurityName string          `json:"security_name"`
	AssetClass   string          `json:"asset_class"`
	MarketValue  decimal.Decimal `json:"market_value"`
}

// ByAssetClass aggregates holdings into an allocation snapshot. Holdings
// with no asset class fall into "Unknown".
func ByAssetClass(holdings []Holding) AllocationSnapshot {
	snapshot := AllocationSnapshot{}
	for _, h := range holdings {
		class := h.AssetClass
		if class == "" {
			class = "Unknown"
		}
		snapshot[class] = snapshot[class].Add(h.MarketValue)
	}
	return snapshot
}

// TopHolding is one of the largest positions, expressed as a share of AUM.
type TopHolding struct {
	SecurityName string  `json:"security_name"`
	Percentage   float64 `json:"percentage"`
}

type ConcentrationMetrics struct {
	Top10Concentration         float64      `json:"top_10_concentration"`
	MaxSingleHolding           float64      `json:"max_single_holding"`
	MaxAssetClassConcentration float64      `json:"max_asset_class_concentration"`
	TopHoldings                []TopHolding `json:"top_holdings"`
}

type RiskScores struct {
	ConcentrationRiskScore int     `json:"concentration_risk_score"`
	DiversificationScore   int     `json:"diversification_score"`
	VolatilityEstimate     float64 `json:"volatility_estimate"`
}

// RiskReport quantifies concentration risk and diversification quality for
// one client's holdings.
type RiskReport struct {
	ClientID      string               `json:"client_id"`
	TotalAUMAED   float64              `json:"total_aum_aed"`
	TotalHoldings int                  `json:"total_holdings"`
	Concentration ConcentrationMetrics `json:"concentration_metrics"`
	Scores        RiskScores           `json:"risk_scores"`
	Mitigations   []string             `json:"risk_mitigation_recommendations"`
}

// BenchmarkQuote is a market-context quote for a benchmark index or ETF.
type BenchmarkQuote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_percent"`
}
