package calculator

import (
	"fmt"
	"sort"

	"rminsights/internal/domain"

	"github.com/shopspring/decimal"
)

// Sub-score weights. Segment fit dominates, then income capacity, risk
// alignment, collateral. A product is eligible at 60/100.
const (
	segmentPoints        = 40
	incomeFullPoints     = 30
	incomePartialPoints  = 20
	riskExactPoints      = 20
	riskNearPoints       = 15
	riskAcceptablePoints = 10
	collateralPoints     = 10
	eligibilityThreshold = 60
	defaultProductRisk   = 3
)

// ScoreLoanProducts classifies every active catalog product as eligible or
// ineligible for the given client and ranks each list by score descending.
// Pure: no I/O, no shared state. An empty catalog yields empty lists.
func ScoreLoanProducts(profile domain.ClientProfile, products []domain.LoanProduct) domain.EligibilityReport {
	capacity := profile.LendingCapacity()
	clientRisk := profile.RiskAppetite.Score()

	eligible := []domain.ScoredProduct{}
	ineligible := []domain.ScoredProduct{}

	for _, product := range products {
		if !product.IsActive {
			continue
		}

		scored := scoreProduct(profile, product, capacity, clientRisk)
		if scored.EligibilityScore >= eligibilityThreshold {
			eligible = append(eligible, scored)
		} else {
			ineligible = append(ineligible, scored)
		}
	}

	sortByScore(eligible)
	sortByScore(ineligible)

	return domain.EligibilityReport{
		ClientID: profile.ClientID,
		ClientProfile: domain.ProfileSummary{
			IncomeAED:                profile.Income.InexactFloat64(),
			Age:                      profile.Age,
			RiskAppetite:             string(profile.RiskAppetite),
			Segment:                  string(profile.Segment),
			AUM:                      profile.AUM.InexactFloat64(),
			EstimatedLendingCapacity: capacity.InexactFloat64(),
		},
		EligibleProducts:   eligible,
		IneligibleProducts: ineligible,
		Summary: domain.EligibilitySummary{
			TotalProducts:   len(eligible) + len(ineligible),
			EligibleCount:   len(eligible),
			IneligibleCount: len(ineligible),
		},
	}
}

func scoreProduct(profile domain.ClientProfile, product domain.LoanProduct, capacity decimal.Decimal, clientRisk int) domain.ScoredProduct {
	score := 0
	reasons := []string{}
	rejections := []string{}

	// 1. Segment matching
	productSegment := domain.ParseSegment(product.TargetSegment)
	if profile.Segment.Rank() >= productSegment.Rank() {
		score += segmentPoints
		reasons = append(reasons, fmt.Sprintf("Client segment (%s) matches product target (%s)", profile.Segment, productSegment))
	} else {
		rejections = append(rejections, fmt.Sprintf("Client segment (%s) below product target (%s)", profile.Segment, productSegment))
	}

	// 2. Income capacity against the product amount range
	if capacity.GreaterThanOrEqual(product.MinAmount) {
		if capacity.GreaterThanOrEqual(product.MaxAmount) {
			score += incomeFullPoints
			reasons = append(reasons, fmt.Sprintf("Income capacity (AED %s) exceeds product range", capacity.Round(0)))
		} else {
			score += incomePartialPoints
			reasons = append(reasons, fmt.Sprintf("Income capacity (AED %s) supports min amount", capacity.Round(0)))
		}
	} else {
		rejections = append(rejections, fmt.Sprintf("Estimated capacity (AED %s) below min amount (AED %s)", capacity.Round(0), product.MinAmount.Round(0)))
	}

	// 3. Risk alignment
	productRisk := product.RiskLevel
	if productRisk < 1 || productRisk > 5 {
		productRisk = defaultProductRisk
	}
	riskDiff := clientRisk - productRisk
	if riskDiff < 0 {
		riskDiff = -riskDiff
	}
	switch riskDiff {
	case 0:
		score += riskExactPoints
		reasons = append(reasons, fmt.Sprintf("Perfect risk match (Client %s / Product risk %d)", profile.RiskAppetite, productRisk))
	case 1:
		score += riskNearPoints
		reasons = append(reasons, fmt.Sprintf("Good risk alignment (Client %s / Product risk %d)", profile.RiskAppetite, productRisk))
	case 2:
		score += riskAcceptablePoints
		reasons = append(reasons, fmt.Sprintf("Acceptable risk alignment (Client %s / Product risk %d)", profile.RiskAppetite, productRisk))
	default:
		rejections = append(rejections, fmt.Sprintf("Risk mismatch (Client %s / Product risk %d)", profile.RiskAppetite, productRisk))
	}

	// 4. Collateral check
	if product.CollateralRequired {
		if profile.AUM.GreaterThan(decimal.Zero) {
			score += collateralPoints
			reasons = append(reasons, fmt.Sprintf("Client has assets (AED %s) for collateral", profile.AUM.Round(0)))
		} else {
			rejections = append(rejections, "No assets available for required collateral")
		}
	} else {
		score += collateralPoints
		reasons = append(reasons, "No collateral required")
	}

	return domain.ScoredProduct{
		LoanProduct:            product,
		EligibilityScore:       score,
		EligibilityPercentage:  float64(score),
		EligibilityReasons:     reasons,
		IneligibilityReasons:   rejections,
		RecommendedAmountRange: recommendedRange(product, capacity),
	}
}

func recommendedRange(product domain.LoanProduct, capacity decimal.Decimal) domain.AmountRange {
	min := decimal.Max(product.MinAmount, capacity.Mul(decimal.NewFromFloat(0.1)))
	max := decimal.Min(product.MaxAmount, capacity)
	suggested := decimal.Min(product.MaxAmount, capacity.Mul(decimal.NewFromFloat(0.5)))
	return domain.AmountRange{
		Min:       min.InexactFloat64(),
		Max:       max.InexactFloat64(),
		Suggested: suggested.InexactFloat64(),
	}
}

func sortByScore(products []domain.ScoredProduct) {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].EligibilityScore > products[j].EligibilityScore
	})
}
