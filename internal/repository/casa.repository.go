package repository

import (
	"context"
	"database/sql"
	"fmt"

	"rminsights/internal/domain"

	"github.com/shopspring/decimal"
)

type CasaRepository interface {
	// MonthlyBalances returns up to limit months of combined
	// current+savings closing balances, newest first. Missing table or
	// columns yield an empty series.
	MonthlyBalances(ctx context.Context, clientID string, limit int) (domain.BalanceSeries, error)
}

type casaRepositoryHandler struct {
	Db    *sql.DB
	Table TableMap
}

func NewCasaRepository(db *sql.DB, schema SchemaMap) CasaRepository {
	return casaRepositoryHandler{
		Db:    db,
		Table: schema.Table(coreSchema, monthlyBalanceTable),
	}
}

func (h casaRepositoryHandler) MonthlyBalances(ctx context.Context, clientID string, limit int) (domain.BalanceSeries, error) {
	idCol, idOK := h.Table.Column("client_id")
	yearCol, yearOK := h.Table.Column("year")
	monthCol, monthOK := h.Table.Column("month")
	if !h.Table.Exists || !idOK || !yearOK || !monthOK {
		return domain.BalanceSeries{}, nil
	}

	balanceExpr := "0"
	if currentCol, ok := h.Table.Column("current_balance"); ok {
		balanceExpr = fmt.Sprintf("COALESCE(CAST(%s AS NUMERIC), 0)", currentCol)
	}
	if savingCol, ok := h.Table.Column("saving_balance"); ok {
		balanceExpr = fmt.Sprintf("%s + COALESCE(CAST(%s AS NUMERIC), 0)", balanceExpr, savingCol)
	}
	if balanceExpr == "0" {
		return domain.BalanceSeries{}, nil
	}

	query := fmt.Sprintf(`
		SELECT CAST(%s AS INTEGER), CAST(%s AS INTEGER), %s
		FROM %s
		WHERE %s = $1
		ORDER BY CAST(%s AS INTEGER) DESC, CAST(%s AS INTEGER) DESC
		LIMIT $2`,
		yearCol, monthCol, balanceExpr,
		h.Table.Qualified(),
		idCol,
		yearCol, monthCol,
	)

	rows, err := h.Db.QueryContext(ctx, query, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly balances: %w", err)
	}
	defer rows.Close()

	series := domain.BalanceSeries{}
	for rows.Next() {
		var (
			year    int
			month   int
			balance float64
		)
		if err := rows.Scan(&year, &month, &balance); err != nil {
			return nil, err
		}
		series = append(series, domain.MonthlyBalance{
			Year:    year,
			Month:   month,
			Balance: decimal.NewFromFloat(balance),
		})
	}
	return series, rows.Err()
}
