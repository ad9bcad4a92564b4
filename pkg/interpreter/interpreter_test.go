package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"mython/interpreter-go/pkg/runtime"
)

func TestReturnOutsideMethodBodyIsFatal(t *testing.T) {
	var out bytes.Buffer
	err := Run(strings.NewReader("return 1\n"), &out)
	if err == nil {
		t.Fatal("expected an error for a top-level return")
	}
	if _, ok := runtime.AsReturnSignal(err); !ok {
		t.Fatalf("expected an unmatched runtime.ReturnSignal, got %T: %v", err, err)
	}
}

func TestNameErrorIsFatal(t *testing.T) {
	var out bytes.Buffer
	err := Run(strings.NewReader("print missing\n"), &out)
	if err == nil {
		t.Fatal("expected NameError for undefined identifier")
	}
	rt, ok := err.(runtime.RuntimeError)
	if !ok || rt.Kind != runtime.KindNameError {
		t.Fatalf("expected NameError, got %T: %v", err, err)
	}
}

func TestDivisionByZero(t *testing.T) {
	var out bytes.Buffer
	err := Run(strings.NewReader("print 1 / 0\n"), &out)
	if err == nil {
		t.Fatal("expected DivisionByZeroError")
	}
	rt, ok := err.(runtime.RuntimeError)
	if !ok || rt.Kind != runtime.KindDivisionByZero {
		t.Fatalf("expected DivisionByZeroError, got %T: %v", err, err)
	}
}

func TestFieldAssignmentAgainstNonInstanceYieldsNone(t *testing.T) {
	var out bytes.Buffer
	// x is a Number, not a ClassInstance: spec.md §9 pins this as a
	// silent None rather than an error.
	err := Run(strings.NewReader("x = 1\nx.field = 2\nprint x\n"), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "1\n" {
		t.Fatalf("got %q, want %q", out.String(), "1\n")
	}
}

func TestMethodCallAgainstNonInstanceYieldsNone(t *testing.T) {
	var out bytes.Buffer
	err := Run(strings.NewReader("x = 1\nprint x.whatever()\n"), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "None\n" {
		t.Fatalf("got %q, want %q", out.String(), "None\n")
	}
}
