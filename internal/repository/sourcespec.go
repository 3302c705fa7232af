package repository

// Canonical source tables and their candidate column names. Candidates are
// ordered by preference; environments that renamed a column resolve to the
// later entries.

const (
	coreSchema = "core"

	clientContextTable  = "client_context"
	investmentTable     = "client_investment"
	monthlyBalanceTable = "client_prod_balance_monthly"
	riskLevelTable      = "risk_level_definition"
	assetAllocTable     = "asset_allocation"
)

func DefaultTableSpecs() []TableSpec {
	return []TableSpec{
		{
			Schema: coreSchema,
			Table:  clientContextTable,
			Columns: []ColumnSpec{
				{Canonical: "client_id", Candidates: []string{"client_id", "customer_number", "customer_id"}},
				{Canonical: "income", Candidates: []string{"income", "monthly_income"}},
				{Canonical: "risk_appetite", Candidates: []string{"risk_appetite", "risk_profile"}},
				{Canonical: "segment", Candidates: []string{"customer_profile_banking_segment", "banking_segment", "segment"}},
				{Canonical: "tier", Candidates: []string{"customer_profile_subsegment", "client_tier", "tier"}},
				{Canonical: "age", Candidates: []string{"age"}},
				{Canonical: "tenure", Candidates: []string{"tenure", "tenure_years"}},
			},
		},
		{
			Schema: coreSchema,
			Table:  investmentTable,
			Columns: []ColumnSpec{
				{Canonical: "client_id", Candidates: []string{"client_id", "customer_number"}},
				{Canonical: "security_name", Candidates: []string{"security_name", "instrument_name"}},
				{Canonical: "asset_class", Candidates: []string{"asset_class", "asset_category"}},
				{Canonical: "market_value", Candidates: []string{"market_value_aed", "market_value"}},
			},
		},
		{
			Schema: coreSchema,
			Table:  monthlyBalanceTable,
			Columns: []ColumnSpec{
				{Canonical: "client_id", Candidates: []string{"client_id", "customer_number"}},
				{Canonical: "year", Candidates: []string{"year_cal", "year"}},
				{Canonical: "month", Candidates: []string{"month_cal", "month"}},
				{Canonical: "current_balance", Candidates: []string{"closing_current_account_bal", "current_account_balance"}},
				{Canonical: "saving_balance", Candidates: []string{"closing_saving_account_bal", "saving_account_balance"}},
			},
		},
		{
			Schema: coreSchema,
			Table:  riskLevelTable,
			Columns: []ColumnSpec{
				{Canonical: "name", Candidates: []string{"name", "risk_name"}},
				{Canonical: "segment", Candidates: []string{"segment", "segment_name"}},
			},
		},
		{
			Schema: coreSchema,
			Table:  assetAllocTable,
			Columns: []ColumnSpec{
				{Canonical: "segment_name", Candidates: []string{"segment_name", "segment"}},
				{Canonical: "category", Candidates: []string{"category", "asset_category"}},
				{Canonical: "saa", Candidates: []string{"saa", "target_pct"}},
				{Canonical: "report_date", Candidates: []string{"report_date", "as_of_date"}},
			},
		},
	}
}
