package generator

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/ridoystarlord/ddlgen/config"
	"github.com/ridoystarlord/ddlgen/loader"
	"github.com/ridoystarlord/ddlgen/schema"
)

// Reasons a definition is skipped. None of them stop other definitions.
var (
	ErrDefinitionIncomplete = errors.New("definition needs both yaml and outDir")
	ErrSchemaNotFound       = errors.New("schema file not found")
	ErrEmptySchema          = errors.New("schema file content is empty")
	ErrInvalidSchema        = errors.New("schema file could not be parsed")
)

// IsSkip reports whether err only means the definition was skipped
func IsSkip(err error) bool {
	return errors.Is(err, ErrDefinitionIncomplete) ||
		errors.Is(err, ErrSchemaNotFound) ||
		errors.Is(err, ErrEmptySchema) ||
		errors.Is(err, ErrInvalidSchema)
}

// Result is the outcome of compiling one definition
type Result struct {
	Schema   *schema.Schema
	Content  string
	FileName string
	// Path is empty until the file has been written
	Path     string
	Warnings []loader.Warning
	// Cyclic is set when relations form a cycle; the destructive block
	// then has no safe order.
	Cyclic bool
}

// Build loads and renders a definition without writing anything
func Build(def config.Definition, eol config.LineEnd) (*Result, error) {
	if !def.Complete() {
		return nil, ErrDefinitionIncomplete
	}

	s, warnings, err := loader.LoadFile(def.Yaml)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, def.Yaml)
	case errors.Is(err, loader.ErrEmptyDocument):
		return nil, fmt.Errorf("%w: %s", ErrEmptySchema, def.Yaml)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	content, err := Render(s, RenderOptions{
		Options: Options{
			Schema:     def.Schema,
			ExistCheck: def.ExistCheck,
			LowerAll:   def.LowerAll,
		},
		Truncate: def.Truncate,
		LineEnd:  eol,
	})

	return &Result{
		Schema:   s,
		Content:  content,
		FileName: OutputFileName(def.BaseName(), s.Version),
		Warnings: warnings,
		Cyclic:   errors.Is(err, ErrCyclicRelations),
	}, nil
}

// Generate builds a definition and writes its DDL file. Skips are
// reported through IsSkip; any other error is a failed write.
func Generate(def config.Definition, eol config.LineEnd) (*Result, error) {
	res, err := Build(def, eol)
	if err != nil {
		return nil, err
	}

	path, err := WriteDDLFile(def.OutDir, res.FileName, res.Content)
	if err != nil {
		return res, err
	}
	res.Path = path
	return res, nil
}
