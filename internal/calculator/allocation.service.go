package calculator

import (
	"math"
	"sort"

	"rminsights/internal/domain"

	"github.com/shopspring/decimal"
)

// baseAllocations is the internal strategic asset allocation fallback,
// keyed by risk tier. Each row sums to 100.
var baseAllocations = map[domain.RiskCode]domain.TargetAllocation{
	"R1": {domain.AssetClassEquity: 20, domain.AssetClassFixedIncome: 60, domain.AssetClassMoneyMarket: 15, domain.AssetClassAlternatives: 5},
	"R2": {domain.AssetClassEquity: 30, domain.AssetClassFixedIncome: 50, domain.AssetClassMoneyMarket: 15, domain.AssetClassAlternatives: 5},
	"R3": {domain.AssetClassEquity: 40, domain.AssetClassFixedIncome: 40, domain.AssetClassMoneyMarket: 15, domain.AssetClassAlternatives: 5},
	"R4": {domain.AssetClassEquity: 60, domain.AssetClassFixedIncome: 25, domain.AssetClassMoneyMarket: 10, domain.AssetClassAlternatives: 5},
	"R5": {domain.AssetClassEquity: 80, domain.AssetClassFixedIncome: 10, domain.AssetClassMoneyMarket: 5, domain.AssetClassAlternatives: 5},
}

const (
	deviationThreshold    = 5.0
	highPriorityThreshold = 10.0
)

// TargetAllocationFor resolves the target allocation for a client. An
// externally sourced target (house SAA) is used as-is, normalized to 100 if
// rounding drifted it. Only the internal fallback table is age-adjusted:
// clients over 60 shift equity into fixed income (1pt/year over 60, max 20,
// equity floor 20), clients under 30 shift fixed income into equity
// (0.5pt/year under 30, max 10, equity ceiling 90, fixed income floor 10).
func TargetAllocationFor(risk domain.RiskCode, age int, external domain.TargetAllocation) (domain.TargetAllocation, bool) {
	if len(external) > 0 {
		return normalize(external), true
	}

	base, ok := baseAllocations[risk]
	if !ok {
		base = baseAllocations[domain.DefaultRiskCode]
	}
	allocation := domain.TargetAllocation{}
	for class, pct := range base {
		allocation[class] = pct
	}

	if age >= 60 {
		reduction := math.Min(float64(age-60), 20)
		allocation[domain.AssetClassEquity] = math.Max(allocation[domain.AssetClassEquity]-reduction, 20)
		allocation[domain.AssetClassFixedIncome] += reduction
	} else if age > 0 && age <= 30 {
		increase := math.Min(float64(30-age)*0.5, 10)
		allocation[domain.AssetClassEquity] = math.Min(allocation[domain.AssetClassEquity]+increase, 90)
		allocation[domain.AssetClassFixedIncome] = math.Max(allocation[domain.AssetClassFixedIncome]-increase, 10)
	}

	return allocation, false
}

func normalize(allocation domain.TargetAllocation) domain.TargetAllocation {
	total := 0.0
	for _, pct := range allocation {
		total += pct
	}
	if total == 0 || math.Abs(total-100) <= 0.5 {
		return allocation
	}
	normalized := domain.TargetAllocation{}
	for class, pct := range allocation {
		normalized[class] = pct / total * 100
	}
	return normalized
}

// BuildRebalancePlan compares current and target allocations and emits a
// trade direction for every asset class off target by more than 5
// percentage points. Overweights SELL, underweights BUY; drift beyond 10
// points is HIGH priority. Actions are ordered HIGH first, then by
// absolute deviation descending.
func BuildRebalancePlan(
	clientID string,
	current domain.AllocationSnapshot,
	target domain.TargetAllocation,
	riskProfile domain.RiskCode,
	age int,
	targetExternal bool,
) domain.RebalancePlan {
	totalAUM := current.TotalAUM()
	currentPcts := current.Percentages()

	classes := map[string]struct{}{}
	for class := range currentPcts {
		classes[class] = struct{}{}
	}
	for class := range target {
		classes[class] = struct{}{}
	}

	deviations := map[string]domain.AllocationDeviation{}
	actions := []domain.RebalanceAction{}

	for class := range classes {
		currentPct := currentPcts[class]
		targetPct := target[class]
		deviation := currentPct - targetPct
		deviations[class] = domain.AllocationDeviation{
			Current:      currentPct,
			Target:       targetPct,
			Deviation:    deviation,
			DeviationAbs: math.Abs(deviation),
		}

		if math.Abs(deviation) <= deviationThreshold {
			continue
		}

		action := domain.ActionBuy
		if deviation > 0 {
			action = domain.ActionSell
		}
		priority := domain.PriorityMedium
		if math.Abs(deviation) > highPriorityThreshold {
			priority = domain.PriorityHigh
		}
		amount := totalAUM.Mul(decimal.NewFromFloat(math.Abs(deviation) / 100))

		actions = append(actions, domain.RebalanceAction{
			AssetClass:        class,
			Action:            action,
			CurrentAllocation: currentPct,
			TargetAllocation:  targetPct,
			Deviation:         deviation,
			AmountAED:         amount.InexactFloat64(),
			Priority:          priority,
		})
	}

	sort.SliceStable(actions, func(i, j int) bool {
		if actions[i].Priority != actions[j].Priority {
			return actions[i].Priority == domain.PriorityHigh
		}
		return math.Abs(actions[i].Deviation) > math.Abs(actions[j].Deviation)
	})

	currentValues := map[string]float64{}
	for class, v := range current {
		currentValues[class] = v.InexactFloat64()
	}

	return domain.RebalancePlan{
		ClientID:                clientID,
		TotalAUMAED:             totalAUM.InexactFloat64(),
		CurrentAllocation:       currentValues,
		CurrentAllocationPcts:   currentPcts,
		TargetAllocation:        target,
		AllocationDeviations:    deviations,
		Recommendations:         actions,
		RiskProfile:             string(riskProfile),
		ClientAge:               age,
		TargetSourcedExternally: targetExternal,
	}
}
