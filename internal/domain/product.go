package domain

import "github.com/shopspring/decimal"

// LoanProduct is one row of the credit product catalog. The catalog is loaded
// once per scoring call and immutable during scoring. Field tags cover both
// the CSV catalog export and the serialized API payload.
type LoanProduct struct {
	ProductID          string          `csv:"product_id" json:"product_id"`
	ProductName        string          `csv:"product_name" json:"product_name"`
	Category           string          `csv:"category" json:"category"`
	TargetSegment      string          `csv:"target_segment" json:"target_segment"`
	MinAmount          decimal.Decimal `csv:"min_amount" json:"min_amount"`
	MaxAmount          decimal.Decimal `csv:"max_amount" json:"max_amount"`
	InterestRate       float64         `csv:"interest_rate" json:"interest_rate"`
	RiskLevel          int             `csv:"risk_level" json:"risk_level"`
	CollateralRequired bool            `csv:"collateral_required" json:"collateral_required"`
	IsActive           bool            `csv:"is_active" json:"is_active"`
}

// AmountRange is the recommended lending range for a scored product.
type AmountRange struct {
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Suggested float64 `json:"suggested"`
}

// ScoredProduct is a catalog product augmented with its eligibility
// assessment for one client. Created fresh per (client, product) pair.
type ScoredProduct struct {
	LoanProduct
	EligibilityScore       int         `json:"eligibility_score"`
	EligibilityPercentage  float64     `json:"eligibility_percentage"`
	EligibilityReasons     []string    `json:"eligibility_reasons"`
	IneligibilityReasons   []string    `json:"ineligibility_reasons"`
	RecommendedAmountRange AmountRange `json:"recommended_amount_range"`
}

// ProfileSummary is the client context echoed back in scoring payloads.
type ProfileSummary struct {
	IncomeAED                float64 `json:"income_aed"`
	Age                      int     `json:"age"`
	RiskAppetite             string  `json:"risk_appetite"`
	Segment                  string  `json:"segment"`
	AUM                      float64 `json:"aum"`
	EstimatedLendingCapacity float64 `json:"estimated_lending_capacity"`
}

type EligibilitySummary struct {
	TotalProducts   int `json:"total_products"`
	EligibleCount   int `json:"eligible_count"`
	IneligibleCount int `json:"ineligible_count"`
}

// EligibilityReport is the full loan-eligibility payload for one client.
// Both product lists are sorted by eligibility score, highest first.
type EligibilityReport struct {
	ClientID           string             `json:"client_id"`
	ClientProfile      ProfileSummary     `json:"client_profile"`
	EligibleProducts   []ScoredProduct    `json:"eligible_products"`
	IneligibleProducts []ScoredProduct    `json:"ineligible_products"`
	Summary            EligibilitySummary `json:"summary"`
}
