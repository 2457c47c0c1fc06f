package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/ridoystarlord/ddlgen/config"
	"github.com/ridoystarlord/ddlgen/generator"
	"github.com/spf13/cobra"
)

var (
	configFile     string
	schemaFile     string
	outDir         string
	fileName       string
	dbSchema       string
	lineEnding     string
	existCheck     bool
	truncate       bool
	lowerAll       bool
	dryRunGenerate bool
)

func init() {
	generateCmd.Flags().StringVarP(&configFile, "config", "c", config.DefaultFile, "Config file listing the DDL definitions")
	generateCmd.Flags().StringVarP(&schemaFile, "file", "f", "", "Schema YAML file (compile a single definition, ignoring the config file)")
	generateCmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory for the single definition")
	generateCmd.Flags().StringVar(&fileName, "file-name", config.DefaultFileName, "Base name of the generated file")
	generateCmd.Flags().StringVar(&dbSchema, "schema", "", "Schema prefix for table names")
	generateCmd.Flags().StringVar(&lineEnding, "line-ending", "platform", "Line ending (platform, windows, linux, mac)")
	generateCmd.Flags().BoolVar(&existCheck, "exist-check", false, "Add IF NOT EXISTS / IF EXISTS")
	generateCmd.Flags().BoolVar(&truncate, "truncate", false, "Prepend TRUNCATE and DROP statements")
	generateCmd.Flags().BoolVar(&lowerAll, "lower-all", false, "Lowercase SQL keywords")
	generateCmd.Flags().BoolVar(&dryRunGenerate, "dry-run", false, "Print the SQL instead of writing files")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate DDL files from schema definitions",
	Long: `Generate one SQL file per definition listed in ddlgen.yaml.

With -f a single schema file is compiled from flags instead.

Examples:
  ddlgen generate                          # every definition in ddlgen.yaml
  ddlgen generate -c other.yaml            # another config file
  ddlgen generate -f schema.yaml -o out    # single definition
  ddlgen generate -f schema.yaml --dry-run # preview without writing
`,
	Run: func(cmd *cobra.Command, args []string) {
		defs, eol, err := generateDefinitions()
		if err != nil {
			fmt.Println("❌ Loading configuration:", err)
			os.Exit(1)
		}

		written, err := runGenerate(defs, eol, dryRunGenerate)
		if err != nil {
			fmt.Println("❌ Writing DDL file:", err)
			os.Exit(1)
		}
		if !dryRunGenerate {
			fmt.Printf("✅ %d of %d DDL file(s) generated.\n", written, len(defs))
		}
	},
}

// generateDefinitions resolves the definitions from flags or the config file
func generateDefinitions() ([]config.Definition, config.LineEnd, error) {
	if schemaFile != "" {
		out := outDir
		if out == "" && dryRunGenerate {
			out = "."
		}
		def := config.Definition{
			Yaml:       schemaFile,
			OutDir:     out,
			FileName:   fileName,
			Schema:     dbSchema,
			ExistCheck: existCheck,
			Truncate:   truncate,
			LowerAll:   lowerAll,
		}
		return []config.Definition{def}, config.ParseLineEnd(lineEnding), nil
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, "", err
	}
	return cfg.Definitions, cfg.LineEnd(), nil
}

// runGenerate compiles every definition. Skipped definitions are reported
// and do not stop the others; a write failure aborts.
func runGenerate(defs []config.Definition, eol config.LineEnd, dryRun bool) (int, error) {
	if len(defs) == 0 {
		color.Yellow("⚠️  No DDL definitions found.")
		return 0, nil
	}

	written := 0
	for i, def := range defs {
		var (
			res *generator.Result
			err error
		)
		if dryRun {
			res, err = generator.Build(def, eol)
		} else {
			res, err = generator.Generate(def, eol)
		}

		if generator.IsSkip(err) {
			color.Yellow("⚠️  Skipping definition %d: %v", i+1, err)
			continue
		}
		if res != nil {
			reportWarnings(res)
		}
		if err != nil {
			return written, err
		}

		if dryRun {
			fmt.Printf("\n================ DRY RUN: %s ================\n", res.FileName)
			fmt.Print(res.Content)
			fmt.Println("\n(Dry run only. No files were written.)")
			continue
		}
		written++
		fmt.Println("✅ DDL generated:", res.Path)
	}
	return written, nil
}

func reportWarnings(res *generator.Result) {
	for _, w := range res.Warnings {
		color.Yellow("⚠️  %s", w)
	}
	if res.Cyclic {
		color.Yellow("⚠️  Relations form a cycle; TRUNCATE/DROP order may violate foreign keys.")
	}
}
