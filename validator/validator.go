package validator

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/ddlgen/loader"
	"github.com/ridoystarlord/ddlgen/schema"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Type     string `json:"type"`
	Table    string `json:"table,omitempty"`
	Column   string `json:"column,omitempty"`
	Index    string `json:"index,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "error", "warning", "info"
}

// ValidationResult contains all validation results
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
	Info     []ValidationError `json:"info"`
}

const maxIdentifierLength = 63

var reservedKeywords = []string{"user", "order", "group", "table", "index", "view", "schema", "select", "from", "where"}

func newResult() *ValidationResult {
	return &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
		Info:     []ValidationError{},
	}
}

func (r *ValidationResult) addError(e ValidationError) {
	e.Severity = "error"
	r.Errors = append(r.Errors, e)
}

func (r *ValidationResult) addWarning(e ValidationError) {
	e.Severity = "warning"
	r.Warnings = append(r.Warnings, e)
}

func (r *ValidationResult) addInfo(e ValidationError) {
	e.Severity = "info"
	r.Info = append(r.Info, e)
}

// ValidateSchema lints a loaded schema. Keys the loader rejected are
// reported as warnings since the generated DDL silently omits them.
func ValidateSchema(s *schema.Schema, loadWarnings []loader.Warning) *ValidationResult {
	result := newResult()

	for _, w := range loadWarnings {
		result.addWarning(ValidationError{
			Type:    "unresolved_" + strings.ToLower(string(w.Kind)),
			Table:   w.Table,
			Index:   w.Key,
			Message: w.Message,
		})
	}

	if len(s.Tables) == 0 {
		result.addWarning(ValidationError{
			Type:    "no_tables",
			Message: "Schema declares no tables, the generated file will be empty",
		})
	}

	for _, table := range s.Tables {
		validateTable(table, result)
	}
	validateConstraintNames(s, result)

	result.Valid = len(result.Errors) == 0
	return result
}

func validateTable(table *schema.Table, result *ValidationResult) {
	if err := validateIdentifier("table", table.Name); err != nil {
		result.addError(ValidationError{Type: "table_name", Table: table.Name, Message: err.Error()})
	}
	if isReserved(table.Name) {
		result.addWarning(ValidationError{
			Type:    "reserved_keyword",
			Table:   table.Name,
			Message: fmt.Sprintf("table name '%s' is a reserved keyword and is emitted unquoted", table.Name),
		})
	}

	validateColumns(table, result)

	if len(table.PrimaryKey) == 0 {
		result.addWarning(ValidationError{
			Type:    "no_primary_key",
			Table:   table.Name,
			Message: fmt.Sprintf("Table '%s' has no primary key defined", table.Name),
		})
	}
	if table.HasRelations() {
		result.addInfo(ValidationError{
			Type:    "relations",
			Table:   table.Name,
			Message: fmt.Sprintf("Table '%s' references %s", table.Name, strings.Join(table.RelationTables(), ", ")),
		})
	}
}

func validateColumns(table *schema.Table, result *ValidationResult) {
	if len(table.Columns) == 0 {
		result.addError(ValidationError{
			Type:    "no_columns",
			Table:   table.Name,
			Message: fmt.Sprintf("Table '%s' must have at least one column", table.Name),
		})
		return
	}

	seen := make(map[string]bool)
	for _, column := range table.Columns {
		if seen[column.Name] {
			result.addError(ValidationError{
				Type:    "duplicate_column",
				Table:   table.Name,
				Column:  column.Name,
				Message: fmt.Sprintf("Duplicate column name '%s' in table '%s'", column.Name, table.Name),
			})
			continue
		}
		seen[column.Name] = true

		if err := validateIdentifier("column", column.Name); err != nil {
			result.addError(ValidationError{Type: "column_name", Table: table.Name, Column: column.Name, Message: err.Error()})
		}
		if strings.TrimSpace(column.Type) == "" {
			result.addWarning(ValidationError{
				Type:    "data_type",
				Table:   table.Name,
				Column:  column.Name,
				Message: fmt.Sprintf("Column '%s' has no type", column.Name),
			})
		}
		if column.HasDefault() {
			if err := validateDefaultValue(column.Type, column.DefaultValue); err != nil {
				result.addWarning(ValidationError{Type: "default_value", Table: table.Name, Column: column.Name, Message: err.Error()})
			}
		}
	}
}

// validateConstraintNames reports key names used more than once. Most
// databases scope constraint and index names to the schema, not the table.
func validateConstraintNames(s *schema.Schema, result *ValidationResult) {
	owners := make(map[string]string)
	check := func(table, name string) {
		if err := validateIdentifier("constraint", name); err != nil {
			result.addError(ValidationError{Type: "constraint_name", Table: table, Index: name, Message: err.Error()})
		}
		if first, ok := owners[name]; ok {
			result.addError(ValidationError{
				Type:    "duplicate_constraint",
				Table:   table,
				Index:   name,
				Message: fmt.Sprintf("Constraint name '%s' is already used in table '%s'", name, first),
			})
			return
		}
		owners[name] = table
	}

	for _, table := range s.Tables {
		for _, r := range table.Relations {
			check(table.Name, r.Name)
		}
		for _, k := range table.UniqueKeys {
			check(table.Name, k.Name)
		}
		for _, k := range table.Indexes {
			check(table.Name, k.Name)
		}
	}
}

func validateIdentifier(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s name cannot be empty", kind)
	}
	if len(name) > maxIdentifierLength {
		return fmt.Errorf("%s name '%s' is too long (max %d characters)", kind, name, maxIdentifierLength)
	}
	for _, char := range name {
		if !((char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '_') {
			return fmt.Errorf("%s name '%s' contains invalid character '%c'", kind, name, char)
		}
	}
	return nil
}

func isReserved(name string) bool {
	for _, keyword := range reservedKeywords {
		if strings.ToLower(name) == keyword {
			return true
		}
	}
	return false
}

// validateDefaultValue is a basic check of a default against its type
func validateDefaultValue(dataType, defaultValue string) error {
	dataType = strings.ToLower(dataType)
	value := strings.TrimSpace(defaultValue)
	if value == "" || strings.EqualFold(value, "null") {
		return nil
	}

	switch {
	case strings.Contains(dataType, "int") || strings.Contains(dataType, "serial"):
		if !strings.Contains(value, "(") && !strings.Contains(value, "'") && strings.Contains(value, ".") {
			return fmt.Errorf("integer type cannot have decimal default value '%s'", defaultValue)
		}
	case strings.Contains(dataType, "char") || dataType == "text":
		if !strings.Contains(value, "(") && !strings.HasPrefix(value, "'") && !strings.HasPrefix(value, "\"") {
			return fmt.Errorf("string type should have quoted default value '%s'", defaultValue)
		}
	case dataType == "boolean" || dataType == "bool":
		switch strings.ToLower(value) {
		case "true", "false", "0", "1":
		default:
			return fmt.Errorf("boolean type should have true/false default value, got '%s'", defaultValue)
		}
	}
	return nil
}
