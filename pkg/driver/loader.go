package driver

import (
	"fmt"
	"io"
	"os"

	"mython/interpreter-go/pkg/ast"
	"mython/interpreter-go/pkg/interpreter"
	"mython/interpreter-go/pkg/parser"
	"mython/interpreter-go/pkg/runtime"
)

// Program is a fully parsed source file, ready to Run.
type Program struct {
	Path string
	Root *ast.Compound
}

// Load reads and parses the source file at path.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("driver: open %s: %w", path, err)
	}
	defer f.Close()

	root, err := parser.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("driver: parse %s: %w", path, err)
	}
	return &Program{Path: path, Root: root}, nil
}

// NewContext builds a runtime.Context that writes Print/Stringify output
// to out.
func NewContext(out io.Writer) runtime.Context {
	return interpreter.NewContext(out)
}

// Run executes the program's top-level Compound in a fresh, empty closure.
func (p *Program) Run(out io.Writer) error {
	return interpreter.Execute(p.Root, out)
}
