package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ddlgen",
	Short: "Compile YAML schema definitions into SQL DDL scripts",
	Long: `ddlgen turns a YAML description of tables, keys and relations into
CREATE TABLE, ALTER TABLE and CREATE INDEX statements.

Examples:

  ddlgen init
  ddlgen generate
  ddlgen generate -f schema.yaml -o build/ddl --truncate
  ddlgen apply build/ddl/ddl-1.sql --driver postgres
`,
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}

// Register subcommands
func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(initCmd)
}
