package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/ridoystarlord/ddlgen/loader"
	"github.com/ridoystarlord/ddlgen/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a YAML schema",
	Long: `Validate your YAML schema file before generating DDL.

This command checks:
- Table, column and key naming (identifier rules, reserved keywords)
- Keys and relations that could not be resolved
- Tables without columns or primary key
- Duplicate columns, often introduced through commonColumns
- Constraint names reused across tables

Examples:
  ddlgen validate                       # Validate schema.yaml
  ddlgen validate -f custom.yaml        # Validate custom schema file
  ddlgen validate --format json         # Output validation results as JSON
`,
	Run: func(cmd *cobra.Command, args []string) {
		valid, err := validateSchema(os.Stdout)
		if err != nil {
			fmt.Printf("❌ Schema validation failed: %v\n", err)
			os.Exit(1)
		}
		if !valid {
			os.Exit(1)
		}
	},
}

var (
	validateSchemaFile string
	validateFormat     string
)

func init() {
	validateCmd.Flags().StringVarP(&validateSchemaFile, "file", "f", "schema.yaml", "Schema file to validate")
	validateCmd.Flags().StringVar(&validateFormat, "format", "text", "Output format (text, json)")
}

func validateSchema(w io.Writer) (bool, error) {
	s, warnings, err := loader.LoadFile(validateSchemaFile)
	if err != nil {
		return false, fmt.Errorf("failed to load schema: %w", err)
	}

	result := validator.ValidateSchema(s, warnings)

	switch validateFormat {
	case "json":
		return result.Valid, outputJSON(w, result)
	case "text":
		return result.Valid, outputText(w, result)
	}
	return false, fmt.Errorf("unsupported format: %s", validateFormat)
}

func outputJSON(w io.Writer, result *validator.ValidationResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputText(w io.Writer, result *validator.ValidationResult) error {
	if result.Valid {
		color.New(color.FgGreen).Fprintln(w, "✅ Schema validation passed!")
	} else {
		color.New(color.FgRed).Fprintln(w, "❌ Schema validation failed!")
	}

	printSection(w, "🔴 Errors", result.Errors)
	printSection(w, "🟡 Warnings", result.Warnings)
	printSection(w, "🔵 Info", result.Info)

	fmt.Fprintf(w, "\n📊 Summary:\n")
	fmt.Fprintf(w, "  • Errors: %d\n", len(result.Errors))
	fmt.Fprintf(w, "  • Warnings: %d\n", len(result.Warnings))
	fmt.Fprintf(w, "  • Info: %d\n", len(result.Info))

	if result.Valid {
		fmt.Fprintf(w, "\n🎉 Your schema is valid and ready for DDL generation!\n")
	} else {
		fmt.Fprintf(w, "\n💡 Fix the errors above before generating DDL.\n")
	}
	return nil
}

func printSection(w io.Writer, title string, items []validator.ValidationError) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s (%d):\n", title, len(items))
	for i, item := range items {
		fmt.Fprintf(w, "  %d. ", i+1)
		if item.Table != "" {
			fmt.Fprintf(w, "[%s]", item.Table)
		}
		if item.Column != "" {
			fmt.Fprintf(w, ".%s", item.Column)
		}
		if item.Index != "" {
			fmt.Fprintf(w, " (key: %s)", item.Index)
		}
		fmt.Fprintf(w, ": %s\n", item.Message)
	}
}
