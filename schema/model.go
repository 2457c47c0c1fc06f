package schema

// Column is a single table field. Type holds the resolved type, or the
// literal string when no domain alias matched.
type Column struct {
	Name         string
	Type         string
	LogicalName  string
	Comment      string
	Constraints  string
	DefaultValue string

	hasDefault bool
}

// NewColumn creates a column with the given physical name and type
func NewColumn(name, columnType string) *Column {
	return &Column{
		Name: name,
		Type: columnType,
	}
}

// WithLogicalName sets the logical (display) name
func (c *Column) WithLogicalName(name string) *Column {
	c.LogicalName = name
	return c
}

// WithComment sets the column comment
func (c *Column) WithComment(comment string) *Column {
	c.Comment = comment
	return c
}

// WithConstraints sets free-form constraint text such as "NOT NULL"
func (c *Column) WithConstraints(constraints string) *Column {
	c.Constraints = constraints
	return c
}

// WithDefault sets the default value. An empty string is a valid default.
func (c *Column) WithDefault(value string) *Column {
	c.DefaultValue = value
	c.hasDefault = true
	return c
}

// HasDefault reports whether a default value was set
func (c *Column) HasDefault() bool {
	return c.hasDefault
}

// Key is a named, ordered set of columns used for unique keys and indexes.
// The columns are shared with the owning table.
type Key struct {
	Name    string
	Columns []*Column
}

// ColumnNames returns the key column names in key order
func (k *Key) ColumnNames() []string {
	return columnNames(k.Columns)
}

// Relation is a foreign key from owner columns to target table columns
type Relation struct {
	Name          string
	Table         string
	Columns       []*Column
	TargetTable   string
	TargetColumns []*Column
}

// ColumnNames returns the owner column names
func (r *Relation) ColumnNames() []string {
	return columnNames(r.Columns)
}

// TargetColumnNames returns the referenced column names
func (r *Relation) TargetColumnNames() []string {
	return columnNames(r.TargetColumns)
}

// Schema is an ordered collection of uniquely named tables
type Schema struct {
	Version string
	Tables  []*Table

	index map[string]int
}

// NewSchema creates an empty schema
func NewSchema(version string) *Schema {
	return &Schema{
		Version: version,
		index:   map[string]int{},
	}
}

// Put adds a table. A table with the same name replaces the existing one
// in place, so declaration order is kept from the first occurrence.
func (s *Schema) Put(t *Table) {
	if s.index == nil {
		s.index = map[string]int{}
	}
	if i, ok := s.index[t.Name]; ok {
		s.Tables[i] = t
		return
	}
	s.index[t.Name] = len(s.Tables)
	s.Tables = append(s.Tables, t)
}

// Table looks up a table by name
func (s *Schema) Table(name string) (*Table, bool) {
	if s.index == nil {
		for _, t := range s.Tables {
			if t.Name == name {
				return t, true
			}
		}
		return nil, false
	}
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.Tables[i], true
}

// TableNames returns table names in declaration order
func (s *Schema) TableNames() []string {
	names := make([]string, 0, len(s.Tables))
	for _, t := range s.Tables {
		names = append(names, t.Name)
	}
	return names
}

func columnNames(columns []*Column) []string {
	names := make([]string, 0, len(columns))
	for _, c := range columns {
		names = append(names, c.Name)
	}
	return names
}
