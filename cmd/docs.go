package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/ddlgen/docs"
	"github.com/ridoystarlord/ddlgen/loader"
)

var (
	docsFormat string
	docsOutput string
	docsFile   string
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Generate ERD diagrams from schema",
	Long: `Generate an entity relationship diagram from your schema.yaml.

Supported formats:
  - mermaid: Mermaid ERD diagram (markdown)
  - plantuml: PlantUML ERD diagram
  - graphviz: Graphviz DOT format

Use --output - to print the diagram instead of writing a file.

Examples:
  ddlgen docs --format plantuml --output erd.puml
  ddlgen docs --format mermaid --output erd.md
  ddlgen docs -f custom.yaml --format graphviz --output -
`,
	Run: func(cmd *cobra.Command, args []string) {
		s, _, err := loader.LoadFile(docsFile)
		if err != nil {
			fmt.Printf("❌ Error loading schema: %v\n", err)
			os.Exit(1)
		}

		if len(s.Tables) == 0 {
			fmt.Println("❌ No tables found in schema")
			os.Exit(1)
		}

		format := docs.Format(docsFormat)
		content, err := docs.Generate(s, format)
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}

		if docsOutput == "-" {
			fmt.Print(content)
			return
		}

		output := docsOutput
		if output == "" {
			output = format.DefaultOutput()
		}
		if err := os.WriteFile(output, []byte(content), 0644); err != nil {
			fmt.Printf("❌ Error writing %s file: %v\n", format, err)
			os.Exit(1)
		}

		fmt.Printf("✅ %s ERD saved to: %s\n", format, output)
	},
}

func init() {
	docsCmd.Flags().StringVarP(&docsFile, "file", "f", "schema.yaml", "Schema file")
	docsCmd.Flags().StringVar(&docsFormat, "format", string(docs.Mermaid), "Diagram format (mermaid, plantuml, graphviz)")
	docsCmd.Flags().StringVarP(&docsOutput, "output", "o", "", "Output file (default depends on format)")
}
