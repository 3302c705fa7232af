package repository

import (
	"context"
	"database/sql"
	"fmt"

	"rminsights/internal/domain"

	"github.com/shopspring/decimal"
)

type HoldingsRepository interface {
	// List returns the client's holdings, largest market value first. A
	// missing source table yields an empty slice, not an error.
	List(ctx context.Context, clientID string) ([]domain.Holding, error)
}

type holdingsRepositoryHandler struct {
	Db    *sql.DB
	Table TableMap
}

func NewHoldingsRepository(db *sql.DB, schema SchemaMap) HoldingsRepository {
	return holdingsRepositoryHandler{
		Db:    db,
		Table: schema.Table(coreSchema, investmentTable),
	}
}

func (h holdingsRepositoryHandler) List(ctx context.Context, clientID string) ([]domain.Holding, error) {
	idCol, idOK := h.Table.Column("client_id")
	valueCol, valueOK := h.Table.Column("market_value")
	if !h.Table.Exists || !idOK || !valueOK {
		return []domain.Holding{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, COALESCE(CAST(%s AS NUMERIC), 0)
		FROM %s
		WHERE %s = $1
		ORDER BY CAST(%s AS NUMERIC) DESC NULLS LAST`,
		h.Table.SelectExpr("security_name"),
		h.Table.SelectExpr("asset_class"),
		valueCol,
		h.Table.Qualified(),
		idCol,
		valueCol,
	)

	rows, err := h.Db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	defer rows.Close()

	holdings := []domain.Holding{}
	for rows.Next() {
		var (
			name  sql.NullString
			class sql.NullString
			value float64
		)
		if err := rows.Scan(&name, &class, &value); err != nil {
			return nil, err
		}
		holdings = append(holdings, domain.Holding{
			SecurityName: name.String,
			AssetClass:   class.String,
			MarketValue:  decimal.NewFromFloat(value),
		})
	}
	return holdings, rows.Err()
}
