package repository

import (
	"context"
	"database/sql"
	"fmt"

	"rminsights/internal/domain"

	"github.com/shopspring/decimal"
)

type ClientRepository interface {
	// GetProfile returns nil (no error) when the client does not exist.
	GetProfile(ctx context.Context, clientID string) (*domain.ClientProfile, error)
	ListClientIDs(ctx context.Context) ([]string, error)
}

type clientRepositoryHandler struct {
	Db    *sql.DB
	Table TableMap
}

func NewClientRepository(db *sql.DB, schema SchemaMap) ClientRepository {
	return clientRepositoryHandler{
		Db:    db,
		Table: schema.Table(coreSchema, clientContextTable),
	}
}

func (h clientRepositoryHandler) GetProfile(ctx context.Context, clientID string) (*domain.ClientProfile, error) {
	idCol, ok := h.Table.Column("client_id")
	if !h.Table.Exists || !ok {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE LOWER(%s) = LOWER($1)
		LIMIT 1`,
		h.Table.SelectExpr("income"),
		h.Table.SelectExpr("risk_appetite"),
		h.Table.SelectExpr("segment"),
		h.Table.SelectExpr("tier"),
		h.Table.SelectExpr("age"),
		h.Table.SelectExpr("tenure"),
		h.Table.Qualified(),
		idCol,
	)

	var (
		income       sql.NullFloat64
		riskAppetite sql.NullString
		segment      sql.NullString
		tier         sql.NullString
		age          sql.NullFloat64
		tenure       sql.NullFloat64
	)
	err := h.Db.QueryRowContext(ctx, query, clientID).
		Scan(&income, &riskAppetite, &segment, &tier, &age, &tenure)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client profile: %w", err)
	}

	profile := &domain.ClientProfile{
		ClientID:     clientID,
		RiskAppetite: domain.ParseRiskCode(riskAppetite.String),
		Tier:         tier.String,
		Age:          int(age.Float64),
		TenureYears:  tenure.Float64,
	}
	// Source income is monthly; the core works with annual figures.
	if income.Valid {
		profile.Income = decimal.NewFromFloat(income.Float64).Mul(decimal.NewFromInt(12))
	}
	// An empty Segment defers to AUM-based inference once holdings load.
	if segment.Valid && segment.String != "" {
		profile.Segment = domain.ParseSegment(segment.String)
	}

	return profile, nil
}

func (h clientRepositoryHandler) ListClientIDs(ctx context.Context) ([]string, error) {
	idCol, ok := h.Table.Column("client_id")
	if !h.Table.Exists || !ok {
		return []string{}, nil
	}

	query := fmt.Sprintf("SELECT DISTINCT %s FROM %s ORDER BY %s", idCol, h.Table.Qualified(), idCol)
	rows, err := h.Db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list client ids: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id sql.NullString
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		if id.String != "" {
			ids = append(ids, id.String)
		}
	}
	return ids, rows.Err()
}
