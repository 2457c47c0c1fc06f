package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ridoystarlord/ddlgen/config"
	"github.com/ridoystarlord/ddlgen/schema"
)

// RenderOptions adds file-level settings to the statement Options
type RenderOptions struct {
	Options
	// Truncate prepends TRUNCATE and DROP statements
	Truncate bool
	LineEnd  config.LineEnd
}

// Render assembles the DDL text of a schema: the optional TRUNCATE/DROP
// block, then every CREATE TABLE block, then the foreign key, unique key
// and index statements of each table.
//
// When relations are cyclic the text is still complete and
// ErrCyclicRelations is returned alongside it.
func Render(s *schema.Schema, opts RenderOptions) (string, error) {
	eol := string(opts.LineEnd)
	if eol == "" {
		eol = string(config.Platform())
	}

	var (
		destructive strings.Builder
		tables      strings.Builder
		keys        strings.Builder
		orderErr    error
	)

	if opts.Truncate {
		var order []string
		order, orderErr = DestructiveOrder(s.Tables)
		for _, stmt := range TruncateStatements(order, opts.Options) {
			destructive.WriteString(stmt + eol)
		}
		destructive.WriteString(eol)
		for _, stmt := range DropStatements(order, opts.Options) {
			destructive.WriteString(stmt + eol)
		}
		destructive.WriteString(eol)
	}

	for _, t := range s.Tables {
		tables.WriteString(strings.Join(CreateTable(t, opts.Options), eol) + eol)

		for _, block := range [][]string{
			ForeignKeys(t, opts.Options),
			UniqueKeys(t, opts.Options),
			Indexes(t, opts.Options),
		} {
			keys.WriteString(eol + strings.Join(block, eol) + eol)
		}
	}

	return destructive.String() + tables.String() + keys.String(), orderErr
}

// OutputFileName returns base + "-" + version + ".sql", leaving out the
// version part when the schema has none.
func OutputFileName(base, version string) string {
	if strings.TrimSpace(base) == "" {
		base = config.DefaultFileName
	}
	if version != "" {
		base += "-" + version
	}
	return base + ".sql"
}

// WriteDDLFile writes content into dir/name, creating dir when needed
func WriteDDLFile(dir, name, content string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	filename := filepath.Join(dir, name)
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing ddl file: %w", err)
	}
	return filename, nil
}
