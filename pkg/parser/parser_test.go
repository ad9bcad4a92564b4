package parser_test

import (
	"bytes"
	"strings"
	"testing"

	"mython/interpreter-go/pkg/interpreter"
	"mython/interpreter-go/pkg/parser"
)

func run(t *testing.T, src string) string {
	t.Helper()
	var out bytes.Buffer
	if err := interpreter.Run(strings.NewReader(src), &out); err != nil {
		t.Fatalf("unexpected error running %q: %v", src, err)
	}
	return out.String()
}

func TestUnexpectedTokenIsParseError(t *testing.T) {
	_, err := parser.Parse(strings.NewReader("= 1\n"))
	if err == nil {
		t.Fatal("expected a parse error for a statement starting with '='")
	}
	if _, ok := err.(*parser.ParseError); !ok {
		t.Fatalf("expected *parser.ParseError, got %T", err)
	}
}

func TestInstantiatingUndefinedClassIsParseError(t *testing.T) {
	_, err := parser.Parse(strings.NewReader("x = Ghost()\n"))
	if err == nil {
		t.Fatal("expected a parse error for an undefined class name")
	}
	if _, ok := err.(*parser.ParseError); !ok {
		t.Fatalf("expected *parser.ParseError, got %T", err)
	}
}

func TestMissingColonIsParseError(t *testing.T) {
	_, err := parser.Parse(strings.NewReader("if x\n  print x\n"))
	if err == nil {
		t.Fatal("expected a parse error for a missing ':'")
	}
}

func TestOperatorPrecedence(t *testing.T) {
	if got := run(t, "print 2 + 3 * 4\n"); got != "14\n" {
		t.Fatalf("got %q, want %q", got, "14\n")
	}
	if got := run(t, "print (2 + 3) * 4\n"); got != "20\n" {
		t.Fatalf("got %q, want %q", got, "20\n")
	}
}

func TestUnaryMinusDesugarsToSubtraction(t *testing.T) {
	if got := run(t, "print -5 + 8\n"); got != "3\n" {
		t.Fatalf("got %q, want %q", got, "3\n")
	}
	if got := run(t, "print 3 - -2\n"); got != "5\n" {
		t.Fatalf("got %q, want %q", got, "5\n")
	}
}

func TestStrBuiltinStringifiesValues(t *testing.T) {
	if got := run(t, "print str(5)\n"); got != "5\n" {
		t.Fatalf("got %q, want %q", got, "5\n")
	}
	if got := run(t, "print str(True)\n"); got != "True\n" {
		t.Fatalf("got %q, want %q", got, "True\n")
	}
}

func TestStrBuiltinRejectsWrongArity(t *testing.T) {
	_, err := parser.Parse(strings.NewReader("print str(1, 2)\n"))
	if err == nil {
		t.Fatal("expected a parse error for str() called with two arguments")
	}
}

func TestPlainAssignmentRebindsTheVariable(t *testing.T) {
	got := run(t, "x = 1\nx = 2\nprint x\n")
	if got != "2\n" {
		t.Fatalf("got %q, want %q", got, "2\n")
	}
}

func TestFieldAssignmentMutatesTheInstance(t *testing.T) {
	src := "class Box:\n" +
		"  def __init__(self):\n" +
		"    self.value = 0\n" +
		"b = Box()\n" +
		"b.value = 9\n" +
		"print b.value\n"
	got := run(t, src)
	if got != "9\n" {
		t.Fatalf("got %q, want %q", got, "9\n")
	}
}

func TestMethodCallChainResolvesLeftToRight(t *testing.T) {
	src := "class Box:\n" +
		"  def __init__(self, value):\n" +
		"    self.value = value\n" +
		"  def next(self):\n" +
		"    return Box(self.value + 1)\n" +
		"  def get(self):\n" +
		"    return self.value\n" +
		"b = Box(1)\n" +
		"print b.next().next().get()\n"
	got := run(t, src)
	if got != "3\n" {
		t.Fatalf("got %q, want %q", got, "3\n")
	}
}

func TestComparisonOperators(t *testing.T) {
	cases := map[string]string{
		"print 1 < 2\n":  "True\n",
		"print 2 < 1\n":  "False\n",
		"print 1 <= 1\n": "True\n",
		"print 2 > 1\n":  "True\n",
		"print 1 >= 2\n": "False\n",
		"print 1 == 1\n": "True\n",
		"print 1 != 1\n": "False\n",
	}
	for src, want := range cases {
		if got := run(t, src); got != want {
			t.Fatalf("run(%q) = %q, want %q", src, got, want)
		}
	}
}

func TestClassMustBeDefinedBeforeUse(t *testing.T) {
	// Forward references are rejected: the parser resolves a call's class
	// name against the table of classes seen so far while parsing.
	src := "x = Later()\nclass Later:\n  def __init__(self):\n    self.v = 1\n"
	_, err := parser.Parse(strings.NewReader(src))
	if err == nil {
		t.Fatal("expected a parse error for a class used before its definition")
	}
}
