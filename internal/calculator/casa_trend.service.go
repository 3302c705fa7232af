package calculator

import (
	"fmt"

	"rminsights/internal/domain"

	"github.com/montanaflynn/stats"
)

// ClassifyTrend compares the current month's CASA balance against the
// trailing six-month average and buckets the move. Fewer than 2 history
// points means no extrapolation: the trend is reported stable with a zero
// percentage. A zero average likewise yields a zero percentage.
func ClassifyTrend(series domain.BalanceSeries) domain.TrendReport {
	report := domain.TrendReport{
		Trend:              domain.TrendStable,
		RecommendationFlag: domain.FocusMaintain,
	}

	if len(series) == 0 {
		return report
	}

	current := series[0].Balance.InexactFloat64()
	report.CurrentMonthDeposit = current

	if len(series) < 2 {
		return report
	}

	trailing := series[1:]
	if len(trailing) > 6 {
		trailing = trailing[:6]
	}
	balances := make([]float64, 0, len(trailing))
	for _, m := range trailing {
		balances = append(balances, m.Balance.InexactFloat64())
	}

	avg, err := stats.Mean(balances)
	if err != nil {
		return report
	}
	report.SixMonthAverage = avg

	if avg <= 0 {
		return report
	}

	pct := (current - avg) / avg * 100
	report.TrendPercentage = round2(pct)

	switch {
	case pct > 15:
		report.Trend = domain.TrendIncreasingSignificantly
		report.RecommendationFlag = domain.FocusInvestmentProducts
		report.RMRecommendation = fmt.Sprintf(
			"Client's CASA balance has increased by %.1f%% (from AED %.2f to AED %.2f). This indicates accumulated liquidity. RECOMMEND: Investment products (funds, bonds, structured deposits) to optimize returns on idle cash.",
			pct, avg, current)
	case pct > 5:
		report.Trend = domain.TrendIncreasing
		report.RecommendationFlag = domain.FocusInvestmentProducts
		report.RMRecommendation = fmt.Sprintf(
			"Client's CASA balance has increased by %.1f%% (from AED %.2f to AED %.2f). RECOMMEND: Discuss investment opportunities to enhance portfolio returns.",
			pct, avg, current)
	case pct < -15:
		report.Trend = domain.TrendDecreasingSignificantly
		report.RecommendationFlag = domain.FocusLoanProducts
		report.RMRecommendation = fmt.Sprintf(
			"Client's CASA balance has decreased by %.1f%% (from AED %.2f to AED %.2f). This may indicate liquidity needs or major expenditure. RECOMMEND: Discuss loan products (personal loan, credit line, overdraft facility) to maintain financial flexibility.",
			-pct, avg, current)
	case pct < -5:
		report.Trend = domain.TrendDecreasing
		report.RecommendationFlag = domain.FocusLoanProducts
		report.RMRecommendation = fmt.Sprintf(
			"Client's CASA balance has decreased by %.1f%% (from AED %.2f to AED %.2f). RECOMMEND: Proactively offer credit facilities to support cash flow needs.",
			-pct, avg, current)
	default:
		report.RMRecommendation = fmt.Sprintf(
			"Client's CASA balance is stable (within ±5%% range). Current: AED %.2f, 6-month avg: AED %.2f. RECOMMEND: Maintain current banking relationship and review portfolio allocation.",
			current, avg)
	}

	return report
}

func round2(f float64) float64 {
	if f < 0 {
		return float64(int64(f*100-0.5)) / 100
	}
	return float64(int64(f*100+0.5)) / 100
}
