package docs

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/ddlgen/schema"
)

// Format names a supported diagram syntax
type Format string

const (
	Mermaid  Format = "mermaid"
	PlantUML Format = "plantuml"
	Graphviz Format = "graphviz"
)

// DefaultOutput is the file written when no output path is given
func (f Format) DefaultOutput() string {
	switch f {
	case PlantUML:
		return "erd.puml"
	case Graphviz:
		return "erd.dot"
	}
	return "erd.md"
}

// Generate renders s as an entity relationship diagram
func Generate(s *schema.Schema, format Format) (string, error) {
	switch format {
	case Mermaid:
		return MermaidContent(s), nil
	case PlantUML:
		return PlantUMLContent(s), nil
	case Graphviz:
		return GraphvizContent(s), nil
	}
	return "", fmt.Errorf("unsupported format: %s (use mermaid, plantuml or graphviz)", format)
}

func MermaidContent(s *schema.Schema) string {
	var content strings.Builder

	content.WriteString("# Database Schema ERD\n\n")
	content.WriteString("```mermaid\nerDiagram\n")

	for _, table := range s.Tables {
		content.WriteString(fmt.Sprintf("    %s {\n", table.Name))
		for _, col := range table.Columns {
			line := fmt.Sprintf("        %s %s", mermaidType(col.Type), col.Name)
			if markers := columnMarkers(table, col); len(markers) > 0 {
				line += " " + strings.Join(markers, ", ")
			}
			if label := columnLabel(col); label != "" {
				line += fmt.Sprintf(" \"%s\"", strings.ReplaceAll(label, "\"", "'"))
			}
			content.WriteString(line + "\n")
		}
		content.WriteString("    }\n")
	}

	for _, table := range s.Tables {
		for _, r := range table.Relations {
			content.WriteString(fmt.Sprintf("    %s ||--o{ %s : %s\n", r.TargetTable, r.Table, r.Name))
		}
	}

	content.WriteString("```\n")
	return content.String()
}

func PlantUMLContent(s *schema.Schema) string {
	var content strings.Builder

	content.WriteString("@startuml\n")
	content.WriteString("!theme plain\n")
	content.WriteString("skinparam linetype ortho\n\n")

	for _, table := range s.Tables {
		header := fmt.Sprintf("entity \"%s\"", table.Name)
		if table.LogicalName != "" {
			header = fmt.Sprintf("entity \"%s\" as %s", table.LogicalName, table.Name)
		}
		content.WriteString(header + " {\n")
		for _, col := range table.Columns {
			line := fmt.Sprintf("  %s : %s", col.Name, displayType(col.Type))
			for _, m := range columnMarkers(table, col) {
				line += " <<" + m + ">>"
			}
			if col.HasDefault() {
				line += fmt.Sprintf(" <<DEFAULT: %s>>", col.DefaultValue)
			}
			content.WriteString(line + "\n")
		}
		content.WriteString("}\n\n")
	}

	for _, table := range s.Tables {
		for _, r := range table.Relations {
			content.WriteString(fmt.Sprintf("\"%s\" ||--o{ \"%s\" : \"%s\"\n", r.TargetTable, r.Table, r.Name))
		}
	}

	content.WriteString("@enduml\n")
	return content.String()
}

func GraphvizContent(s *schema.Schema) string {
	var content strings.Builder

	content.WriteString("digraph ERD {\n")
	content.WriteString("  rankdir=LR;\n")
	content.WriteString("  node [shape=record];\n\n")

	for _, table := range s.Tables {
		content.WriteString(fmt.Sprintf("  %s [label=\"%s|", table.Name, table.Name))

		var columns []string
		for _, col := range table.Columns {
			line := fmt.Sprintf("%s: %s", col.Name, displayType(col.Type))
			for _, m := range columnMarkers(table, col) {
				line += " (" + m + ")"
			}
			columns = append(columns, escapeRecord(line))
		}

		content.WriteString(strings.Join(columns, "\\l"))
		content.WriteString("\"];\n")
	}

	for _, table := range s.Tables {
		for _, r := range table.Relations {
			content.WriteString(fmt.Sprintf("  %s -> %s [label=\"%s\"];\n", r.TargetTable, r.Table, r.Name))
		}
	}

	content.WriteString("}\n")
	return content.String()
}

// columnMarkers lists PK, FK and UK for the keys col takes part in
func columnMarkers(table *schema.Table, col *schema.Column) []string {
	var markers []string
	if containsColumn(table.PrimaryKey, col) {
		markers = append(markers, "PK")
	}
	for _, r := range table.Relations {
		if containsColumn(r.Columns, col) {
			markers = append(markers, "FK")
			break
		}
	}
	for _, k := range table.UniqueKeys {
		if containsColumn(k.Columns, col) {
			markers = append(markers, "UK")
			break
		}
	}
	return markers
}

func containsColumn(columns []*schema.Column, col *schema.Column) bool {
	for _, c := range columns {
		if c == col {
			return true
		}
	}
	return false
}

func columnLabel(col *schema.Column) string {
	switch {
	case col.LogicalName != "" && col.Comment != "":
		return col.LogicalName + ": " + col.Comment
	case col.LogicalName != "":
		return col.LogicalName
	}
	return col.Comment
}

func displayType(t string) string {
	if strings.TrimSpace(t) == "" {
		return "?"
	}
	return strings.ToUpper(t)
}

// mermaidType drops the size suffix; mermaid types are single words
func mermaidType(t string) string {
	t = strings.TrimSpace(t)
	if i := strings.Index(t, "("); i >= 0 {
		t = t[:i]
	}
	t = strings.ReplaceAll(strings.TrimSpace(t), " ", "_")
	if t == "" {
		return "unknown"
	}
	return t
}

func escapeRecord(s string) string {
	r := strings.NewReplacer("|", "\\|", "{", "\\{", "}", "\\}", "<", "\\<", ">", "\\>", "\"", "\\\"")
	return r.Replace(s)
}
