package introspect

import (
	"context"
	"fmt"
	"strings"

	"github.com/ridoystarlord/ddlgen/database"
	"github.com/ridoystarlord/ddlgen/schema"
)

type ExistingTable struct {
	TableName string
	Columns   []string
}

// MissingColumns lists the declared columns of one table absent from the database
type MissingColumns struct {
	TableName string
	Columns   []string
}

// Report compares a declared schema with what a database holds
type Report struct {
	MissingTables  []string
	MissingColumns []MissingColumns
}

func (r *Report) OK() bool {
	return len(r.MissingTables) == 0 && len(r.MissingColumns) == 0
}

// IntrospectDatabase reads the tables and their columns from the
// database. dbSchema selects the namespace for postgres and mysql and is
// ignored for sqlite.
func IntrospectDatabase(ctx context.Context, conn database.Conn, dbSchema string) ([]ExistingTable, error) {
	names, err := ListTables(ctx, conn, dbSchema)
	if err != nil {
		return nil, err
	}

	var tables []ExistingTable
	for _, name := range names {
		columns, err := ListColumns(ctx, conn, dbSchema, name)
		if err != nil {
			return nil, fmt.Errorf("getting columns for table %s: %w", name, err)
		}
		tables = append(tables, ExistingTable{TableName: name, Columns: columns})
	}
	return tables, nil
}

func ListTables(ctx context.Context, conn database.Conn, dbSchema string) ([]string, error) {
	var (
		names []string
		err   error
	)
	switch conn.Driver() {
	case database.Postgres:
		names, err = conn.QueryStrings(ctx, `
	SELECT table_name
	FROM information_schema.tables
	WHERE table_schema = $1 AND table_type = 'BASE TABLE'
	ORDER BY table_name;
	`, orDefault(dbSchema, "public"))
	case database.MySQL:
		names, err = conn.QueryStrings(ctx, `
	SELECT table_name
	FROM information_schema.tables
	WHERE table_schema = COALESCE(NULLIF(?, ''), DATABASE()) AND table_type = 'BASE TABLE'
	ORDER BY table_name;
	`, dbSchema)
	case database.SQLite:
		names, err = conn.QueryStrings(ctx, `
	SELECT name
	FROM sqlite_master
	WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
	ORDER BY name;
	`)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", conn.Driver())
	}
	if err != nil {
		return nil, fmt.Errorf("querying tables: %w", err)
	}
	return names, nil
}

func ListColumns(ctx context.Context, conn database.Conn, dbSchema, table string) ([]string, error) {
	switch conn.Driver() {
	case database.Postgres:
		return conn.QueryStrings(ctx, `
	SELECT column_name
	FROM information_schema.columns
	WHERE table_schema = $1 AND table_name = $2
	ORDER BY ordinal_position;
	`, orDefault(dbSchema, "public"), table)
	case database.MySQL:
		return conn.QueryStrings(ctx, `
	SELECT column_name
	FROM information_schema.columns
	WHERE table_schema = COALESCE(NULLIF(?, ''), DATABASE()) AND table_name = ?
	ORDER BY ordinal_position;
	`, dbSchema, table)
	case database.SQLite:
		return conn.QueryStrings(ctx, `SELECT name FROM pragma_table_info(?) ORDER BY cid;`, table)
	}
	return nil, fmt.Errorf("unsupported driver: %s", conn.Driver())
}

// Verify checks that every table and column of s exists in the database.
// Unquoted identifiers are folded by some databases, so names compare
// case-insensitively.
func Verify(ctx context.Context, conn database.Conn, s *schema.Schema, dbSchema string) (*Report, error) {
	existing, err := IntrospectDatabase(ctx, conn, dbSchema)
	if err != nil {
		return nil, err
	}
	return Compare(s, existing), nil
}

func Compare(s *schema.Schema, existing []ExistingTable) *Report {
	byName := make(map[string]ExistingTable, len(existing))
	for _, t := range existing {
		byName[strings.ToLower(t.TableName)] = t
	}

	report := &Report{}
	for _, table := range s.Tables {
		found, ok := byName[strings.ToLower(table.Name)]
		if !ok {
			report.MissingTables = append(report.MissingTables, table.Name)
			continue
		}
		have := make(map[string]bool, len(found.Columns))
		for _, c := range found.Columns {
			have[strings.ToLower(c)] = true
		}
		var missing []string
		for _, c := range table.Columns {
			if !have[strings.ToLower(c.Name)] {
				missing = append(missing, c.Name)
			}
		}
		if len(missing) > 0 {
			report.MissingColumns = append(report.MissingColumns, MissingColumns{TableName: table.Name, Columns: missing})
		}
	}
	return report
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
