package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"rminsights/internal/domain"
)

// categoryNames maps source allocation categories to display asset classes.
var categoryNames = map[string]string{
	"equity":             domain.AssetClassEquity,
	"fixed_income":       domain.AssetClassFixedIncome,
	"cash_money_markets": domain.AssetClassMoneyMarket,
	"alternatives":       domain.AssetClassAlternatives,
}

type TargetAllocationRepository interface {
	// TargetFor returns the latest house strategic asset allocation for a
	// risk profile. An empty map means no external target is available and
	// the caller should fall back to the internal table.
	TargetFor(ctx context.Context, riskProfile domain.RiskCode) (domain.TargetAllocation, error)
}

type targetAllocationRepositoryHandler struct {
	Db         *sql.DB
	RiskTable  TableMap
	AllocTable TableMap
}

func NewTargetAllocationRepository(db *sql.DB, schema SchemaMap) TargetAllocationRepository {
	return targetAllocationRepositoryHandler{
		Db:         db,
		RiskTable:  schema.Table(coreSchema, riskLevelTable),
		AllocTable: schema.Table(coreSchema, assetAllocTable),
	}
}

func (h targetAllocationRepositoryHandler) TargetFor(ctx context.Context, riskProfile domain.RiskCode) (domain.TargetAllocation, error) {
	segment, err := h.segmentFor(ctx, riskProfile)
	if err != nil {
		return nil, err
	}
	if segment == "" {
		return domain.TargetAllocation{}, nil
	}

	segmentCol, segOK := h.AllocTable.Column("segment_name")
	categoryCol, catOK := h.AllocTable.Column("category")
	saaCol, saaOK := h.AllocTable.Column("saa")
	dateCol, dateOK := h.AllocTable.Column("report_date")
	if !h.AllocTable.Exists || !segOK || !catOK || !saaOK {
		return domain.TargetAllocation{}, nil
	}

	dateFilter := ""
	if dateOK {
		dateFilter = fmt.Sprintf(
			"AND %s = (SELECT MAX(%s) FROM %s WHERE %s = $1)",
			dateCol, dateCol, h.AllocTable.Qualified(), segmentCol,
		)
	}
	query := fmt.Sprintf(`
		SELECT %s, CAST(%s AS NUMERIC)
		FROM %s
		WHERE %s = $1 %s`,
		categoryCol, saaCol,
		h.AllocTable.Qualified(),
		segmentCol, dateFilter,
	)

	rows, err := h.Db.QueryContext(ctx, query, segment)
	if err != nil {
		return nil, fmt.Errorf("failed to get target allocation: %w", err)
	}
	defer rows.Close()

	allocation := domain.TargetAllocation{}
	for rows.Next() {
		var (
			category sql.NullString
			saa      sql.NullFloat64
		)
		if err := rows.Scan(&category, &saa); err != nil {
			return nil, err
		}
		raw := strings.ToLower(strings.TrimSpace(category.String))
		name, ok := categoryNames[raw]
		if !ok {
			name = strings.Title(strings.ReplaceAll(raw, "_", " "))
		}
		allocation[name] = saa.Float64
	}
	return allocation, rows.Err()
}

func (h targetAllocationRepositoryHandler) segmentFor(ctx context.Context, riskProfile domain.RiskCode) (string, error) {
	nameCol, nameOK := h.RiskTable.Column("name")
	segmentCol, segOK := h.RiskTable.Column("segment")
	if !h.RiskTable.Exists || !nameOK || !segOK {
		return "", nil
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 LIMIT 1",
		segmentCol, h.RiskTable.Qualified(), nameCol,
	)

	var segment sql.NullString
	err := h.Db.QueryRowContext(ctx, query, string(riskProfile)).Scan(&segment)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to map risk profile to segment: %w", err)
	}
	return segment.String, nil
}
