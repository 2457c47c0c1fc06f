package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/ridoystarlord/ddlgen/database"
	"github.com/ridoystarlord/ddlgen/introspect"
	"github.com/ridoystarlord/ddlgen/loader"
	"github.com/ridoystarlord/ddlgen/utils"
	"github.com/spf13/cobra"
)

var (
	applyDriver     string
	applyDSN        string
	applySchemaFile string
	applyDBSchema   string
)

func init() {
	applyCmd.Flags().StringVar(&applyDriver, "driver", string(database.Postgres), "Database driver (postgres, mysql, sqlite)")
	applyCmd.Flags().StringVar(&applyDSN, "dsn", "", "Connection string (defaults to DATABASE_URL)")
	applyCmd.Flags().StringVarP(&applySchemaFile, "file", "f", "", "Schema YAML file to verify the database against after applying")
	applyCmd.Flags().StringVar(&applyDBSchema, "db-schema", "", "Database schema to inspect when verifying (postgres: public, mysql: current database)")
}

var applyCmd = &cobra.Command{
	Use:   "apply <file.sql>",
	Short: "Execute a generated DDL file against a database",
	Long: `Execute the statements of a generated DDL file in order.

The connection string comes from --dsn or DATABASE_URL (environment or .env).
With -f the database is checked afterwards for every table and column the
schema declares.

Examples:
  ddlgen apply build/ddl/ddl-1.sql
  ddlgen apply ddl.sql --driver mysql --dsn "user:pass@tcp(localhost:3306)/app"
  ddlgen apply ddl.sql --driver sqlite --dsn app.db -f schema.yaml
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runApply(context.Background(), args[0]); err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
	},
}

func runApply(ctx context.Context, sqlFile string) error {
	driver, err := database.ParseDriver(applyDriver)
	if err != nil {
		return err
	}

	script, err := os.ReadFile(sqlFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", sqlFile, err)
	}

	dsn := applyDSN
	if dsn == "" {
		utils.LoadEnv()
		if dsn, err = utils.GetDatabaseURL(); err != nil {
			return err
		}
	}

	conn, err := database.Open(ctx, driver, dsn)
	if err != nil {
		return err
	}
	defer conn.Close()

	n, err := database.Apply(ctx, conn, string(script))
	if err != nil {
		return fmt.Errorf("applied %d statement(s) before failure: %w", n, err)
	}
	fmt.Printf("✅ Applied %d statement(s) from %s\n", n, sqlFile)

	if applySchemaFile == "" {
		return nil
	}
	return verifyApplied(ctx, conn)
}

func verifyApplied(ctx context.Context, conn database.Conn) error {
	s, _, err := loader.LoadFile(applySchemaFile)
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	report, err := introspect.Verify(ctx, conn, s, applyDBSchema)
	if err != nil {
		return fmt.Errorf("introspecting database: %w", err)
	}
	if report.OK() {
		color.Green("✅ All %d table(s) from %s exist in the database.", len(s.Tables), applySchemaFile)
		return nil
	}

	for _, t := range report.MissingTables {
		color.Red("  • missing table %s", t)
	}
	for _, m := range report.MissingColumns {
		for _, c := range m.Columns {
			color.Red("  • missing column %s.%s", m.TableName, c)
		}
	}
	return fmt.Errorf("database does not match %s", applySchemaFile)
}
