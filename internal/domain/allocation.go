package domain

import "github.com/shopspring/decimal"

// Asset class display names used across allocation targets and holdings.
const (
	AssetClassEquity       = "Equity"
	AssetClassFixedIncome  = "Fixed Income"
	AssetClassMoneyMarket  = "Money Market"
	AssetClassAlternatives = "Alternatives"
)

// AllocationSnapshot maps asset class to current market value.
type AllocationSnapshot map[string]decimal.Decimal

func (a AllocationSnapshot) TotalAUM() decimal.Decimal {
	total := decimal.Zero
	for _, v := range a {
		total = total.Add(v)
	}
	return total
}

// Percentages converts the snapshot to percentages of total AUM. A zero
// total yields all-zero percentages.
func (a AllocationSnapshot) Percentages() map[string]float64 {
	total := a.TotalAUM()
	pct := map[string]float64{}
	for class, v := range a {
		if total.GreaterThan(decimal.Zero) {
			pct[class] = v.Div(total).InexactFloat64() * 100
		} else {
			pct[class] = 0
		}
	}
	return pct
}

// TargetAllocation maps asset class to target percentage. Percentages sum
// to 100 once normalized.
type TargetAllocation map[string]float64

type AllocationDeviation struct {
	Current      float64 `json:"current"`
	Target       float64 `json:"target"`
	Deviation    float64 `json:"deviation"`
	DeviationAbs float64 `json:"deviation_abs"`
}

type RebalancePriority string

const (
	PriorityHigh   RebalancePriority = "HIGH"
	PriorityMedium RebalancePriority = "MEDIUM"
)

type RebalanceActionType string

const (
	ActionBuy  RebalanceActionType = "BUY"
	ActionSell RebalanceActionType = "SELL"
)

// RebalanceAction is a single recommended trade direction for an asset
// class whose allocation drifted more than 5 points from target.
type RebalanceAction struct {
	AssetClass        string              `json:"asset_class"`
	Action            RebalanceActionType `json:"action"`
	CurrentAllocation float64             `json:"current_allocation"`
	TargetAllocation  float64             `json:"target_allocation"`
	Deviation         float64             `json:"deviation"`
	AmountAED         float64             `json:"amount_aed"`
	Priority          RebalancePriority   `json:"priority"`
}

// RebalancePlan is the full allocation-deviation payload for one client.
// Recommendations are ordered HIGH priority first, then by absolute
// deviation descending.
type RebalancePlan struct {
	ClientID                string                         `json:"client_id"`
	TotalAUMAED             float64                        `json:"total_aum_aed"`
	CurrentAllocation       map[string]float64             `json:"current_allocation"`
	CurrentAllocationPcts   map[string]float64             `json:"current_allocation_percentages"`
	TargetAllocation        TargetAllocation               `json:"target_allocation"`
	AllocationDeviations    map[string]AllocationDeviation `json:"allocation_deviations"`
	Recommendations         []RebalanceAction              `json:"rebalancing_recommendations"`
	RiskProfile             string                         `json:"risk_profile"`
	ClientAge               int                            `json:"client_age"`
	TargetSourcedExternally bool                           `json:"target_sourced_externally"`
}
