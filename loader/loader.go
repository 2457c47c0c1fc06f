package loader

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ridoystarlord/ddlgen/schema"
)

// ErrEmptyDocument is returned when a schema file parses to nothing
var ErrEmptyDocument = errors.New("schema document is empty")

// WarningKind identifies the kind of definition a warning is about
type WarningKind string

const (
	PrimaryKeyWarning WarningKind = "PK"
	UniqueKeyWarning  WarningKind = "UK"
	IndexWarning      WarningKind = "IDX"
	ForeignKeyWarning WarningKind = "FK"
)

// Warning is a non-fatal problem found while loading. The definition it
// names was left out of the schema; everything else was loaded.
type Warning struct {
	Kind    WarningKind
	Table   string
	Key     string
	Message string
}

func (w Warning) String() string {
	if w.Key != "" {
		return fmt.Sprintf("%s [%s.%s]: %s", w.Kind, w.Table, w.Key, w.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", w.Kind, w.Table, w.Message)
}

// pendingForeignKey is a foreign key recorded while tables are still
// being declared; it is resolved once every table exists.
type pendingForeignKey struct {
	name          string
	owner         *schema.Table
	columns       []string
	target        string
	targetColumns []string
}

type schemaLoader struct {
	domains  map[string]string
	pending  []pendingForeignKey
	warnings []Warning
}

// LoadFile reads and loads a schema file
func LoadFile(filename string) (*schema.Schema, []Warning, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("reading schema file: %w", err)
	}
	root, err := Parse(data)
	if err != nil {
		return nil, nil, err
	}
	if root.IsEmpty() {
		return nil, nil, ErrEmptyDocument
	}
	s, warnings := Load(root)
	return s, warnings, nil
}

// Load builds a Schema from a parsed document. Structural problems never
// abort the load; they are reported as warnings and the offending key,
// relation or primary key is left out.
func Load(root Node) (*schema.Schema, []Warning) {
	l := &schemaLoader{domains: map[string]string{}}
	return l.load(root), l.warnings
}

func (l *schemaLoader) load(root Node) *schema.Schema {
	version, _ := stringField(root, "version")
	s := schema.NewSchema(version)

	for _, e := range mapping(root, "domains") {
		if e.Value.Kind == Scalar {
			l.domains[e.Key] = e.Value.Value
		}
	}

	commonColumns := l.columns(mapping(root, "commonColumns"))

	for _, e := range mapping(root, "tables") {
		s.Put(l.table(e.Key, e.Value))
	}

	for _, t := range s.Tables {
		for _, c := range commonColumns {
			copied := *c
			t.AddColumns(&copied)
		}
	}

	for _, fk := range l.pending {
		l.resolveForeignKey(s, fk)
	}

	return s
}

func (l *schemaLoader) table(name string, def Node) *schema.Table {
	if def.Kind != Mapping {
		return schema.NewTable(name, "")
	}

	comment, _ := stringField(def, "info")
	t := schema.NewTable(name, comment)
	if logicalName, ok := stringField(def, "logicalName"); ok {
		t.WithLogicalName(logicalName)
	}
	t.AddColumns(l.columns(mapping(def, "columns"))...)

	if v, ok := def.Get("pk"); ok {
		if pk, ok := names(v); ok && !t.AddPrimaryKey(pk...) {
			l.warn(PrimaryKeyWarning, name, "", "columns not found %s", list(pk))
		}
	}

	for _, e := range mapping(def, "fk") {
		l.recordForeignKey(t, e.Key, e.Value)
	}

	for _, e := range mapping(def, "uq") {
		columns, ok := names(e.Value)
		if !ok {
			continue
		}
		if !t.AddUniqueKey(e.Key, columns...) {
			l.warn(UniqueKeyWarning, name, e.Key, "columns not found %s", list(columns))
		}
	}

	for _, e := range mapping(def, "idx") {
		columns, ok := names(e.Value)
		if !ok {
			continue
		}
		if !t.AddIndex(e.Key, columns...) {
			l.warn(IndexWarning, name, e.Key, "columns not found %s", list(columns))
		}
	}

	return t
}

// recordForeignKey stores {relate: cols, to: {table: cols}} for later.
// Descriptors missing either side are ignored.
func (l *schemaLoader) recordForeignKey(owner *schema.Table, keyName string, def Node) {
	if def.Kind != Mapping {
		return
	}
	relate, ok := def.Get("relate")
	if !ok {
		return
	}
	columns, ok := names(relate)
	if !ok {
		return
	}
	to, ok := def.Get("to")
	if !ok || to.Kind != Mapping || len(to.Entries) == 0 {
		return
	}
	target := to.Entries[0]
	targetColumns, ok := names(target.Value)
	if !ok {
		return
	}
	l.pending = append(l.pending, pendingForeignKey{
		name:          keyName,
		owner:         owner,
		columns:       columns,
		target:        target.Key,
		targetColumns: targetColumns,
	})
}

func (l *schemaLoader) resolveForeignKey(s *schema.Schema, fk pendingForeignKey) {
	// the owner was replaced by a later definition with the same name
	if current, ok := s.Table(fk.owner.Name); !ok || current != fk.owner {
		return
	}
	target, ok := s.Table(fk.target)
	if !ok {
		l.warn(ForeignKeyWarning, fk.owner.Name, fk.name, "target table not found: %s", fk.target)
		return
	}
	if !fk.owner.AddForeignKey(fk.name, fk.columns, target, fk.targetColumns) {
		l.warn(ForeignKeyWarning, fk.owner.Name, fk.name,
			"relation columns not found, owner %s target %s", list(fk.columns), list(fk.targetColumns))
	}
}

func (l *schemaLoader) columns(entries []Entry) []*schema.Column {
	var columns []*schema.Column
	for _, e := range entries {
		if e.Value.Kind != Mapping {
			continue
		}
		def := e.Value
		c := schema.NewColumn(e.Key, "")
		if t, ok := stringField(def, "type"); ok {
			c.Type = l.resolveType(t)
		}
		if v, ok := stringField(def, "logicalName"); ok {
			c.WithLogicalName(v)
		}
		if v, ok := stringField(def, "info"); ok {
			c.WithComment(v)
		}
		// free-form constraint text is only taken from string values
		if v, ok := def.Get("options"); ok && v.Kind == Scalar && v.Str {
			c.WithConstraints(v.Value)
		}
		if v, ok := stringField(def, "defaultValue"); ok {
			c.WithDefault(v)
		}
		columns = append(columns, c)
	}
	return columns
}

func (l *schemaLoader) resolveType(t string) string {
	if resolved, ok := l.domains[t]; ok {
		return resolved
	}
	return t
}

func (l *schemaLoader) warn(kind WarningKind, table, key, format string, args ...interface{}) {
	l.warnings = append(l.warnings, Warning{
		Kind:    kind,
		Table:   table,
		Key:     key,
		Message: fmt.Sprintf(format, args...),
	})
}

func list(names []string) string {
	return "[" + strings.Join(names, " | ") + "]"
}
