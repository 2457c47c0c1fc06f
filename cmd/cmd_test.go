package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ridoystarlord/ddlgen/config"
	"github.com/ridoystarlord/ddlgen/loader"
	"github.com/ridoystarlord/ddlgen/validator"
)

func TestSampleSchemaLoads(t *testing.T) {
	root, err := loader.Parse([]byte(sampleSchema))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	s, warnings := loader.Load(root)
	if len(warnings) != 0 {
		t.Errorf("sample schema produced warnings: %v", warnings)
	}
	if got := s.TableNames(); len(got) != 2 || got[0] != "users" || got[1] != "posts" {
		t.Errorf("tables = %v", got)
	}

	result := validator.ValidateSchema(s, warnings)
	if !result.Valid || len(result.Warnings) != 0 {
		t.Errorf("sample schema should validate cleanly: %+v", result)
	}
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	initCmd.Run(initCmd, nil)

	cfg, err := config.Load(filepath.Join(dir, config.DefaultFile))
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if len(cfg.Definitions) != 1 || cfg.Definitions[0].Yaml != "schema.yaml" {
		t.Errorf("definitions = %+v", cfg.Definitions)
	}

	// a second run keeps the edited file
	if err := os.WriteFile("schema.yaml", []byte("tables: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	initCmd.Run(initCmd, nil)
	data, _ := os.ReadFile("schema.yaml")
	if string(data) != "tables: {}\n" {
		t.Error("init overwrote an existing schema.yaml")
	}
}

func TestRunGenerate(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.yaml")
	if err := os.WriteFile(schemaPath, []byte(sampleSchema), 0644); err != nil {
		t.Fatal(err)
	}

	defs := []config.Definition{
		{Yaml: schemaPath, OutDir: filepath.Join(dir, "out"), ExistCheck: true},
		{Yaml: filepath.Join(dir, "missing.yaml"), OutDir: filepath.Join(dir, "out")},
		{Yaml: schemaPath},
	}

	written, err := runGenerate(defs, config.Linux, false)
	if err != nil {
		t.Fatalf("runGenerate() error = %v", err)
	}
	if written != 1 {
		t.Errorf("written = %d, want 1", written)
	}

	data, err := os.ReadFile(filepath.Join(dir, "out", "ddl-1.sql"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"CREATE TABLE IF NOT EXISTS users(",
		"ALTER TABLE posts ADD CONSTRAINT fk_posts_user FOREIGN KEY(user_id) REFERENCES users (id);",
		"CREATE INDEX idx_posts_user_status ON posts (user_id, status);",
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("generated file missing %q", want)
		}
	}
}

func TestRunGenerateDryRun(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.yaml")
	if err := os.WriteFile(schemaPath, []byte(sampleSchema), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")

	written, err := runGenerate([]config.Definition{{Yaml: schemaPath, OutDir: out}}, config.Linux, true)
	if err != nil || written != 0 {
		t.Fatalf("runGenerate() = %d, %v", written, err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("dry run should not create the output directory")
	}
}

func TestRunGenerateWriteFailure(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.yaml")
	if err := os.WriteFile(schemaPath, []byte(sampleSchema), 0644); err != nil {
		t.Fatal(err)
	}
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := runGenerate([]config.Definition{{Yaml: schemaPath, OutDir: filepath.Join(blocker, "out")}}, config.Linux, false); err == nil {
		t.Error("expected a write error")
	}
}

func TestValidateSchemaOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	content := "tables:\n  logs:\n    columns:\n      line: {type: text}\n    uq:\n      uq_x: nope\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	validateSchemaFile = path
	t.Cleanup(func() { validateSchemaFile, validateFormat = "schema.yaml", "text" })

	validateFormat = "json"
	var buf bytes.Buffer
	valid, err := validateSchema(&buf)
	if err != nil {
		t.Fatalf("validateSchema() error = %v", err)
	}
	if !valid {
		t.Error("warnings alone should not invalidate the schema")
	}
	var result validator.ValidationResult
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("invalid json output: %v", err)
	}
	if len(result.Warnings) != 2 {
		t.Errorf("warnings = %+v, want unresolved key and missing primary key", result.Warnings)
	}

	validateFormat = "text"
	buf.Reset()
	if _, err := validateSchema(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "(key: uq_x)") {
		t.Errorf("text output missing key reference:\n%s", buf.String())
	}

	validateFormat = "xml"
	if _, err := validateSchema(&buf); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}
