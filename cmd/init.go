package cmd

import (
	"fmt"
	"os"

	"github.com/ridoystarlord/ddlgen/config"
	"github.com/spf13/cobra"
)

const sampleConfig = `# ddlgen configuration
# lineEnding: platform | windows | linux | mac
lineEnding: linux

ddl:
  - yaml: schema.yaml
    outDir: build/ddl
    fileName: ddl
    # schema: app          # qualifies every table name as app.<table>
    existCheck: true
    truncate: false
    lowerAll: false
`

const sampleSchema = `# Schema definition; the version becomes part of the output file name
version: 1

# Type aliases usable as column types
domains:
  id_type: bigint
  name_type: varchar(100)

# Columns appended to every table
commonColumns:
  created_at:
    type: timestamp
    logicalName: Created
    options: NOT NULL
    defaultValue: CURRENT_TIMESTAMP

tables:
  users:
    logicalName: Users
    info: registered users
    pk: id
    columns:
      id:
        type: id_type
        options: NOT NULL
      email:
        type: varchar(255)
        logicalName: Email
        info: login address
        options: NOT NULL
      name:
        type: name_type
    uq:
      uq_users_email: email

  posts:
    logicalName: Posts
    pk: id
    columns:
      id:
        type: id_type
        options: NOT NULL
      user_id:
        type: id_type
        options: NOT NULL
      title:
        type: varchar(200)
      status:
        type: varchar(20)
        defaultValue: "'draft'"
    fk:
      fk_posts_user:
        relate: user_id
        to:
          users: id
    idx:
      idx_posts_user_status: [user_id, status]
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new ddlgen project",
	Long: `Create a sample ddlgen.yaml and schema.yaml in the current directory.

Existing files are left untouched.

Examples:
  ddlgen init
  ddlgen init && ddlgen generate`,
	Run: func(cmd *cobra.Command, args []string) {
		created := 0
		for _, f := range []struct{ name, content string }{
			{config.DefaultFile, sampleConfig},
			{"schema.yaml", sampleSchema},
		} {
			ok, err := writeSample(f.name, f.content)
			if err != nil {
				fmt.Printf("❌ Error creating %s: %v\n", f.name, err)
				os.Exit(1)
			}
			if ok {
				created++
			}
		}
		if created == 0 {
			return
		}
		fmt.Println("📝 Edit schema.yaml to define your tables")
		fmt.Println("🚀 Run 'ddlgen generate' to create the DDL file")
	},
}

// writeSample writes name unless it already exists
func writeSample(name, content string) (bool, error) {
	if _, err := os.Stat(name); err == nil {
		fmt.Printf("❌ %s already exists!\n", name)
		return false, nil
	}
	if err := os.WriteFile(name, []byte(content), 0644); err != nil {
		return false, err
	}
	fmt.Printf("✅ Created %s example file.\n", name)
	return true, nil
}
