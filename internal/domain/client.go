package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Segment is a client banking segment tier. Tiers are ordinal: a client in a
// higher tier qualifies for products targeted at any lower tier.
type Segment string

const (
	SegmentMassMarket        Segment = "mass_market"
	SegmentAffluent          Segment = "affluent"
	SegmentHighNetWorth      Segment = "high_net_worth"
	SegmentUltraHighNetWorth Segment = "ultra_high_net_worth"
)

var segmentRank = map[Segment]int{
	SegmentMassMarket:        1,
	SegmentAffluent:          2,
	SegmentHighNetWorth:      3,
	SegmentUltraHighNetWorth: 4,
}

// ParseSegment normalizes a raw segment string, falling back to mass_market
// for anything unrecognized.
func ParseSegment(raw string) Segment {
	s := Segment(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := segmentRank[s]; ok {
		return s
	}
	return SegmentMassMarket
}

func (s Segment) Rank() int {
	if r, ok := segmentRank[s]; ok {
		return r
	}
	return segmentRank[SegmentMassMarket]
}

// InferSegment derives a segment from a client tier label and AUM when the
// source row carries no explicit segment. Elite/premium tiers are bucketed by
// AUM; everything else is mass market.
func InferSegment(tier string, aum decimal.Decimal) Segment {
	t := strings.ToLower(tier)
	if strings.Contains(t, "elite") || strings.Contains(t, "premium") {
		switch {
		case aum.GreaterThan(decimal.NewFromInt(5_000_000)):
			return SegmentUltraHighNetWorth
		case aum.GreaterThan(decimal.NewFromInt(1_000_000)):
			return SegmentHighNetWorth
		default:
			return SegmentAffluent
		}
	}
	return SegmentMassMarket
}

// RiskCode is an ordinal client risk-tolerance classification (R1=conservative,
// R5=aggressive). R6 appears in some environments and clamps to the top tier.
type RiskCode string

const DefaultRiskCode RiskCode = "R3"

var riskScores = map[RiskCode]int{
	"R1": 1,
	"R2": 2,
	"R3": 3,
	"R4": 4,
	"R5": 5,
	"R6": 5,
}

// ParseRiskCode normalizes a raw risk appetite code, defaulting to R3.
func ParseRiskCode(raw string) RiskCode {
	r := RiskCode(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := riskScores[r]; ok {
		return r
	}
	return DefaultRiskCode
}

// Score maps the code to its numeric risk level (1-5).
func (r RiskCode) Score() int {
	if s, ok := riskScores[r]; ok {
		return s
	}
	return riskScores[DefaultRiskCode]
}

// ClientProfile is a read-only snapshot of a client, normalized at the data
// boundary. Income is annual. Segment is empty when the source row carried
// no explicit segment; it is then inferred from Tier and AUM once holdings
// are loaded.
type ClientProfile struct {
	ClientID     string
	Income       decimal.Decimal
	RiskAppetite RiskCode
	Segment      Segment
	Tier         string
	Age          int
	TenureYears  float64
	AUM          decimal.Decimal
}

// LendingCapacity is a conservative lending-capacity estimate: 5x annual
// income, or 30% of AUM when no income is on record.
func (c ClientProfile) LendingCapacity() decimal.Decimal {
	if c.Income.GreaterThan(decimal.Zero) {
		return c.Income.Mul(decimal.NewFromInt(5))
	}
	return c.AUM.Mul(decimal.NewFromFloat(0.3))
}
