// Package interpreter composes pkg/lexer (via pkg/parser) and pkg/runtime
// into the runnable evaluator: parse a source stream, execute it against a
// fresh top-level closure, and route Print/Stringify output to an
// injectable stream (spec.md §6). It is the seam pkg/driver's CLI plugs
// into, mirroring the teacher's split between pkg/interpreter (evaluation)
// and pkg/driver (source loading, manifests, CLI wiring).
package interpreter

import (
	"io"

	"mython/interpreter-go/pkg/ast"
	"mython/interpreter-go/pkg/parser"
	"mython/interpreter-go/pkg/runtime"
)

// outputContext is the minimal runtime.Context every top-level run uses.
type outputContext struct {
	out io.Writer
}

// NewContext builds a runtime.Context that writes Print/Stringify output
// to out.
func NewContext(out io.Writer) runtime.Context {
	return &outputContext{out: out}
}

func (c *outputContext) OutputStream() io.Writer { return c.out }

// Run parses src as a full program and executes it, writing output to out.
func Run(src io.Reader, out io.Writer) error {
	program, err := parser.Parse(src)
	if err != nil {
		return err
	}
	return Execute(program, out)
}

// Execute runs an already-parsed program against a fresh top-level
// closure. Any evaluator error (spec.md §7: NameError, AttrError,
// TypeError, MethodNotFound, CompareError, DivisionByZeroError) or an
// unmatched runtime.ReturnSignal (a Return outside any MethodBody)
// surfaces here unmodified — both are fatal to the run per spec.md §7/§8.
func Execute(program *ast.Compound, out io.Writer) error {
	closure := runtime.Closure{}
	ctx := NewContext(out)
	_, err := program.Execute(closure, ctx)
	return err
}
