package generator

import (
	"strings"

	"github.com/ridoystarlord/ddlgen/schema"
)

// Options controls how statements are rendered
type Options struct {
	// Schema qualifies table references as "schema.table" when set
	Schema string
	// ExistCheck adds IF NOT EXISTS / IF EXISTS guards
	ExistCheck bool
	// LowerAll lowercases SQL keywords. Identifiers and user text are kept.
	LowerAll bool
}

// keyword renders a fixed SQL fragment in the configured case
func (o Options) keyword(text string) string {
	if o.LowerAll {
		return strings.ToLower(text)
	}
	return text
}

func (o Options) qualify(table string) string {
	if o.Schema == "" {
		return table
	}
	return o.Schema + "." + table
}

// CreateTable renders the CREATE TABLE block of a table, one line per
// element, starting with a "-- name : logical name" comment line.
func CreateTable(t *schema.Table, opts Options) []string {
	var body []string
	for _, c := range t.Columns {
		body = append(body, "  "+columnDefinition(c, opts))
	}
	if len(t.PrimaryKey) > 0 {
		body = append(body, opts.keyword("  PRIMARY KEY (")+strings.Join(t.PrimaryKeyNames(), ", ")+")")
	}
	if t.HasComment() {
		body = append(body, opts.keyword("  COMMENT ")+quote(t.Comment))
	}
	for i := 0; i < len(body)-1; i++ {
		body[i] += ","
	}

	header := "-- " + t.Name
	if t.LogicalName != "" {
		header += " : " + t.LogicalName
	}
	create := "CREATE TABLE "
	if opts.ExistCheck {
		create = "CREATE TABLE IF NOT EXISTS "
	}

	lines := make([]string, 0, len(body)+3)
	lines = append(lines, header, opts.keyword(create)+opts.qualify(t.Name)+"(")
	lines = append(lines, body...)
	return append(lines, ");")
}

// name type [constraints] [DEFAULT value] [COMMENT "logical:comment"]
func columnDefinition(c *schema.Column, opts Options) string {
	def := c.Name
	if c.Type != "" {
		def += " " + c.Type
	}
	if c.Constraints != "" {
		def += " " + c.Constraints
	}
	if c.HasDefault() {
		def += opts.keyword(" DEFAULT ") + c.DefaultValue
	}
	if c.Comment != "" {
		text := c.Comment
		if c.LogicalName != "" {
			text = c.LogicalName + ":" + c.Comment
		}
		def += opts.keyword(" COMMENT ") + quote(text)
	}
	return def
}

// ForeignKeys renders one ALTER TABLE ... FOREIGN KEY statement per relation
func ForeignKeys(t *schema.Table, opts Options) []string {
	var stmts []string
	for _, r := range t.Relations {
		stmts = append(stmts, opts.keyword("ALTER TABLE ")+opts.qualify(t.Name)+
			opts.keyword(" ADD CONSTRAINT ")+r.Name+
			opts.keyword(" FOREIGN KEY(")+strings.Join(r.ColumnNames(), ", ")+
			opts.keyword(") REFERENCES ")+opts.qualify(r.TargetTable)+
			" ("+strings.Join(r.TargetColumnNames(), ", ")+");")
	}
	return stmts
}

// UniqueKeys renders one ALTER TABLE ... UNIQUE statement per unique key
func UniqueKeys(t *schema.Table, opts Options) []string {
	var stmts []string
	for _, k := range t.UniqueKeys {
		stmts = append(stmts, opts.keyword("ALTER TABLE ")+opts.qualify(t.Name)+
			opts.keyword(" ADD CONSTRAINT ")+k.Name+
			opts.keyword(" UNIQUE (")+strings.Join(k.ColumnNames(), ", ")+");")
	}
	return stmts
}

// Indexes renders one CREATE INDEX statement per index key. Only the table
// reference is schema qualified.
func Indexes(t *schema.Table, opts Options) []string {
	var stmts []string
	for _, k := range t.Indexes {
		stmts = append(stmts, opts.keyword("CREATE INDEX ")+k.Name+
			opts.keyword(" ON ")+opts.qualify(t.Name)+
			" ("+strings.Join(k.ColumnNames(), ", ")+");")
	}
	return stmts
}

func quote(text string) string {
	return `"` + text + `"`
}
