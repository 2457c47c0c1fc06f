package generator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ridoystarlord/ddlgen/config"
)

const shopSchema = `
version: 2
domains:
  id_type: bigint
commonColumns:
  created_at:
    type: timestamp
    options: NOT NULL
tables:
  orders:
    logicalName: Orders
    pk: id
    columns:
      id: {type: id_type}
      user_id: {type: id_type}
      email: {type: text}
    fk:
      fk_user:
        relate: user_id
        to: {users: id}
    uq:
      uq_email: missing_col
      uq_user: user_id
  users:
    pk: id
    columns:
      id: {type: id_type}
`

func writeSchema(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "schema.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	def := config.Definition{
		Yaml:       writeSchema(t, dir, shopSchema),
		OutDir:     filepath.Join(dir, "out"),
		Truncate:   true,
		ExistCheck: true,
	}

	res, err := Generate(def, config.Linux)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if want := filepath.Join(dir, "out", "ddl-2.sql"); res.Path != want {
		t.Errorf("Path = %q, want %q", res.Path, want)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Key != "uq_email" {
		t.Errorf("Warnings = %v, want one for uq_email", res.Warnings)
	}

	data, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if content != res.Content {
		t.Error("written file differs from rendered content")
	}

	for _, want := range []string{
		"TRUNCATE TABLE IF EXISTS users;\nTRUNCATE TABLE IF EXISTS orders;\n",
		"DROP TABLE IF EXISTS users;\nDROP TABLE IF EXISTS orders;\n",
		"-- orders : Orders\nCREATE TABLE IF NOT EXISTS orders(\n  id bigint,\n",
		"  created_at timestamp NOT NULL,\n  PRIMARY KEY (id)\n);",
		"ALTER TABLE orders ADD CONSTRAINT fk_user FOREIGN KEY(user_id) REFERENCES users (id);",
		"ALTER TABLE orders ADD CONSTRAINT uq_user UNIQUE (user_id);",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("output missing %q:\n%s", want, content)
		}
	}
	if strings.Contains(content, "uq_email") {
		t.Error("rejected unique key should not be rendered")
	}
	if strings.Index(content, "DROP TABLE") > strings.Index(content, "CREATE TABLE") {
		t.Error("destructive block must precede CREATE TABLE blocks")
	}
}

func TestGenerateFileName(t *testing.T) {
	dir := t.TempDir()
	def := config.Definition{
		Yaml:     writeSchema(t, dir, "tables:\n  a:\n    columns: {id: {type: int}}\n"),
		OutDir:   dir,
		FileName: "schema",
	}
	res, err := Generate(def, config.Linux)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if filepath.Base(res.Path) != "schema.sql" {
		t.Errorf("file name = %q, want schema.sql", filepath.Base(res.Path))
	}
}

func TestGenerateSkips(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}
	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("tables: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		def  config.Definition
		want error
	}{
		{name: "no input", def: config.Definition{OutDir: dir}, want: ErrDefinitionIncomplete},
		{name: "no output", def: config.Definition{Yaml: empty}, want: ErrDefinitionIncomplete},
		{name: "missing input", def: config.Definition{Yaml: filepath.Join(dir, "nope.yaml"), OutDir: dir}, want: ErrSchemaNotFound},
		{name: "empty input", def: config.Definition{Yaml: empty, OutDir: dir}, want: ErrEmptySchema},
		{name: "unparsable input", def: config.Definition{Yaml: broken, OutDir: dir}, want: ErrInvalidSchema},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Generate(tt.def, config.Linux)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if !IsSkip(err) {
				t.Errorf("IsSkip(%v) = false", err)
			}
			if res != nil {
				t.Errorf("skipped definition should not produce a result")
			}
		})
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".sql") {
			t.Errorf("unexpected output file %s", e.Name())
		}
	}
}

func TestGenerateWriteFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	def := config.Definition{
		Yaml:   writeSchema(t, dir, shopSchema),
		OutDir: filepath.Join(blocker, "out"),
	}

	_, err := Generate(def, config.Linux)
	if err == nil {
		t.Fatal("expected a write error")
	}
	if IsSkip(err) {
		t.Errorf("write failure must not be a skip: %v", err)
	}
}

func TestBuildDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	def := config.Definition{Yaml: writeSchema(t, dir, shopSchema), OutDir: out}

	res, err := Build(def, config.Linux)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if res.Path != "" || res.FileName != "ddl-2.sql" {
		t.Errorf("Build result = %q / %q", res.Path, res.FileName)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("Build should not create the output directory")
	}
}
