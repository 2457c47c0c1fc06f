package schema

import "strings"

// Table is a named, ordered collection of columns with its keys.
// Every key and relation only ever references columns the table owns.
type Table struct {
	Name        string
	Comment     string
	LogicalName string

	Columns    []*Column
	PrimaryKey []*Column
	Relations  []*Relation
	UniqueKeys []*Key
	Indexes    []*Key
}

// NewTable creates an empty table
func NewTable(name, comment string) *Table {
	return &Table{
		Name:    name,
		Comment: comment,
	}
}

// WithLogicalName sets the logical (display) name
func (t *Table) WithLogicalName(name string) *Table {
	t.LogicalName = name
	return t
}

// HasComment reports whether the table carries a non-blank comment
func (t *Table) HasComment() bool {
	return strings.TrimSpace(t.Comment) != ""
}

// AddColumns appends columns in the given order
func (t *Table) AddColumns(columns ...*Column) {
	t.Columns = append(t.Columns, columns...)
}

// Column looks up a column by name
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// ColumnNames returns the column names in declaration order
func (t *Table) ColumnNames() []string {
	return columnNames(t.Columns)
}

// PrimaryKeyNames returns the primary key column names in key order
func (t *Table) PrimaryKeyNames() []string {
	return columnNames(t.PrimaryKey)
}

// AddPrimaryKey sets the primary key. It returns false and leaves the
// table untouched if any column is missing.
func (t *Table) AddPrimaryKey(names ...string) bool {
	columns, ok := t.resolve(names)
	if !ok {
		return false
	}
	t.PrimaryKey = columns
	return true
}

// AddUniqueKey adds a unique key. It returns false and adds nothing if
// any column is missing.
func (t *Table) AddUniqueKey(name string, names ...string) bool {
	columns, ok := t.resolve(names)
	if !ok {
		return false
	}
	t.UniqueKeys = append(t.UniqueKeys, &Key{Name: name, Columns: columns})
	return true
}

// AddIndex adds an index key. It returns false and adds nothing if any
// column is missing.
func (t *Table) AddIndex(name string, names ...string) bool {
	columns, ok := t.resolve(names)
	if !ok {
		return false
	}
	t.Indexes = append(t.Indexes, &Key{Name: name, Columns: columns})
	return true
}

// AddForeignKey attaches a relation from this table's columns to the
// target table's columns. Both sides must resolve completely, otherwise
// nothing is attached.
func (t *Table) AddForeignKey(name string, names []string, target *Table, targetNames []string) bool {
	if target == nil {
		return false
	}
	columns, ok := t.resolve(names)
	if !ok {
		return false
	}
	targetColumns, ok := target.resolve(targetNames)
	if !ok {
		return false
	}
	t.Relations = append(t.Relations, &Relation{
		Name:          name,
		Table:         t.Name,
		Columns:       columns,
		TargetTable:   target.Name,
		TargetColumns: targetColumns,
	})
	return true
}

// HasRelations reports whether the table owns at least one foreign key
func (t *Table) HasRelations() bool {
	return len(t.Relations) > 0
}

// RelationTables returns the distinct target table names in relation order
func (t *Table) RelationTables() []string {
	seen := map[string]bool{}
	var names []string
	for _, r := range t.Relations {
		if seen[r.TargetTable] {
			continue
		}
		seen[r.TargetTable] = true
		names = append(names, r.TargetTable)
	}
	return names
}

// resolve collects the named columns into a fresh slice. A name given
// twice fails the lookup like an unknown one. The result is only usable
// when ok is true.
func (t *Table) resolve(names []string) ([]*Column, bool) {
	columns := make([]*Column, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		c, found := t.Column(name)
		if !found || seen[name] {
			continue
		}
		seen[name] = true
		columns = append(columns, c)
	}
	return columns, len(columns) == len(names)
}
