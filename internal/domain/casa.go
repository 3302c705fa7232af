package domain

import "github.com/shopspring/decimal"

// MonthlyBalance is one month's closing CASA balance.
type MonthlyBalance struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Balance decimal.Decimal `json:"balance"`
}

// BalanceSeries is an ordered CASA balance history: index 0 is the current
// month, followed by up to 6 trailing months, newest first.
type BalanceSeries []MonthlyBalance

type TrendBucket string

const (
	TrendIncreasingSignificantly TrendBucket = "increasing_significantly"
	TrendIncreasing              TrendBucket = "increasing"
	TrendStable                  TrendBucket = "stable"
	TrendDecreasing              TrendBucket = "decreasing"
	TrendDecreasingSignificantly TrendBucket = "decreasing_significantly"
)

// FocusFlag tells the RM which product family to lead with.
type FocusFlag string

const (
	FocusInvestmentProducts FocusFlag = "investment_products"
	FocusLoanProducts       FocusFlag = "loan_products"
	FocusMaintain           FocusFlag = "maintain"
)

// TrendReport classifies a client's liquidity trend: current month against
// the trailing six-month average.
type TrendReport struct {
	CurrentMonthDeposit float64     `json:"current_month_deposit"`
	SixMonthAverage     float64     `json:"six_month_average"`
	Trend               TrendBucket `json:"trend"`
	TrendPercentage     float64     `json:"trend_percentage"`
	RecommendationFlag  FocusFlag   `json:"recommendation_flag"`
	RMRecommendation    string      `json:"rm_recommendation"`
}
