package repository

import (
	"database/sql"
	"fmt"
	"strings"
)

// The source database schema varies across environments: tables may be
// absent and columns renamed. Each fetcher declares its canonical fields
// with candidate source-column names; the resolver probes
// information_schema once at startup and hands out a resolved SchemaMap.
// Nothing probes inside the hot calculation path.

type ColumnSpec struct {
	Canonical  string
	Candidates []string
}

type TableSpec struct {
	Schema  string
	Table   string
	Columns []ColumnSpec
}

// TableMap is the resolved mapping for one table. Columns maps canonical
// field name to the actual column name; unresolved fields are absent.
type TableMap struct {
	Schema  string
	Table   string
	Exists  bool
	Columns map[string]string
}

// Column returns the resolved source column for a canonical field.
func (m TableMap) Column(canonical string) (string, bool) {
	col, ok := m.Columns[canonical]
	return col, ok
}

// SelectExpr returns a SQL select expression for a canonical field: the
// resolved column aliased to the canonical name, or NULL when the source
// has no matching column. Identifiers come from information_schema, never
// from request input.
func (m TableMap) SelectExpr(canonical string) string {
	if col, ok := m.Columns[canonical]; ok {
		return fmt.Sprintf("%s AS %s", col, canonical)
	}
	return fmt.Sprintf("NULL AS %s", canonical)
}

// Qualified returns the schema-qualified table name.
func (m TableMap) Qualified() string {
	return m.Schema + "." + m.Table
}

// SchemaMap holds every resolved table, keyed by "schema.table".
type SchemaMap map[string]TableMap

func (s SchemaMap) Table(schema, table string) TableMap {
	if m, ok := s[schema+"."+table]; ok {
		return m
	}
	return TableMap{Schema: schema, Table: table, Columns: map[string]string{}}
}

type SchemaRepository interface {
	Resolve(specs []TableSpec) (SchemaMap, error)
}

type schemaRepositoryHandler struct {
	Db *sql.DB
}

func NewSchemaRepository(db *sql.DB) SchemaRepository {
	return schemaRepositoryHandler{Db: db}
}

func (h schemaRepositoryHandler) Resolve(specs []TableSpec) (SchemaMap, error) {
	out := SchemaMap{}
	for _, spec := range specs {
		available, err := h.columns(spec.Schema, spec.Table)
		if err != nil {
			return nil, fmt.Errorf("failed to probe %s.%s: %w", spec.Schema, spec.Table, err)
		}
		out[spec.Schema+"."+spec.Table] = TableMap{
			Schema:  spec.Schema,
			Table:   spec.Table,
			Exists:  len(available) > 0,
			Columns: resolveColumns(available, spec.Columns),
		}
	}
	return out, nil
}

func (h schemaRepositoryHandler) columns(schema, table string) ([]string, error) {
	rows, err := h.Db.Query(`
		SELECT column_name FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position`,
		schema, table,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}

// resolveColumns picks, for each canonical field, the first candidate
// present in the table.
func resolveColumns(available []string, specs []ColumnSpec) map[string]string {
	present := map[string]bool{}
	for _, col := range available {
		present[strings.ToLower(col)] = true
	}

	resolved := map[string]string{}
	for _, spec := range specs {
		for _, candidate := range spec.Candidates {
			if present[strings.ToLower(candidate)] {
				resolved[spec.Canonical] = candidate
				break
			}
		}
	}
	return resolved
}
