package runtime

import (
	"bytes"
	"io"
	"testing"
)

type fakeContext struct{ w io.Writer }

func (c fakeContext) OutputStream() io.Writer { return c.w }

func newCtx() Context { return fakeContext{w: &bytes.Buffer{}} }

func printString(t *testing.T, v Value) string {
	t.Helper()
	s, err := PrintToString(v, newCtx())
	if err != nil {
		t.Fatalf("PrintToString: %v", err)
	}
	return s
}

func TestIsTrueTable(t *testing.T) {
	cases := []struct {
		name string
		h    ObjectHolder
		want bool
	}{
		{"none", None(), false},
		{"zero", Own(Number(0)), false},
		{"nonzero", Own(Number(5)), true},
		{"negative", Own(Number(-1)), true},
		{"empty string", Own(String("")), false},
		{"nonempty string", Own(String("x")), true},
		{"true", Own(Bool(true)), true},
		{"false", Own(Bool(false)), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsTrue(c.h); got != c.want {
				t.Fatalf("IsTrue(%v) = %v, want %v", c.h, got, c.want)
			}
		})
	}
}

func TestClassInstanceIsNeverTruthy(t *testing.T) {
	cls := NewClass("Point", nil, nil)
	inst := NewClassInstance(cls)
	if IsTrue(Own(inst)) {
		t.Fatal("a ClassInstance is never truthy; IsTrue must report false for it")
	}
}

func TestPrintPrimitives(t *testing.T) {
	if got := printString(t, Number(42)); got != "42" {
		t.Fatalf("got %q", got)
	}
	if got := printString(t, Number(-3)); got != "-3" {
		t.Fatalf("got %q", got)
	}
	if got := printString(t, String("hi")); got != "hi" {
		t.Fatalf("got %q", got)
	}
	if got := printString(t, Bool(true)); got != "True" {
		t.Fatalf("got %q", got)
	}
	if got := printString(t, Bool(false)); got != "False" {
		t.Fatalf("got %q", got)
	}
}

func TestClassLookupMethodWalksParentChain(t *testing.T) {
	parentGreet := &Method{Name: "greet", Params: nil}
	parent := NewClass("Animal", []*Method{parentGreet}, nil)

	childBark := &Method{Name: "bark", Params: nil}
	child := NewClass("Dog", []*Method{childBark}, parent)

	if m := child.LookupMethod("bark"); m != childBark {
		t.Fatalf("expected own method bark to resolve directly")
	}
	if m := child.LookupMethod("greet"); m != parentGreet {
		t.Fatalf("expected greet to resolve through the parent chain")
	}
	if m := child.LookupMethod("missing"); m != nil {
		t.Fatalf("expected nil for an undefined method, got %v", m)
	}
}

func TestClassOwnMethodShadowsParentRegardlessOfArity(t *testing.T) {
	parentSpeak := &Method{Name: "speak", Params: []string{"a", "b"}}
	parent := NewClass("Base", []*Method{parentSpeak}, nil)

	childSpeak := &Method{Name: "speak", Params: nil}
	child := NewClass("Derived", []*Method{childSpeak}, parent)

	if m := child.LookupMethod("speak"); m != childSpeak {
		t.Fatal("own method must shadow the parent's by name alone, regardless of arity")
	}
}

func TestClassInstanceCallBindsSelfAndParams(t *testing.T) {
	body := executableFunc(func(closure Closure, ctx Context) (ObjectHolder, error) {
		self, ok := closure.Get("self")
		if !ok {
			t.Fatal("expected self to be bound in the method closure")
		}
		if _, ok := self.Value().(*ClassInstance); !ok {
			t.Fatalf("expected self to hold a *ClassInstance, got %T", self.Value())
		}
		if !self.IsShared() {
			t.Fatal("self should be bound via Share, not Own")
		}
		x, ok := closure.Get("x")
		if !ok {
			t.Fatal("expected param x to be bound")
		}
		return x, nil
	})
	cls := NewClass("Box", []*Method{{Name: "identity", Params: []string{"x"}, Body: body}}, nil)
	inst := NewClassInstance(cls)

	result, err := inst.Call("identity", []ObjectHolder{Own(Number(7))}, newCtx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, ok := result.AsNumber()
	if !ok || n != 7 {
		t.Fatalf("expected Number(7), got %v", result)
	}
}

func TestClassInstanceCallArityMismatchIsMethodNotFound(t *testing.T) {
	cls := NewClass("Box", []*Method{{Name: "identity", Params: []string{"x"}, Body: nil}}, nil)
	inst := NewClassInstance(cls)

	_, err := inst.Call("identity", nil, newCtx())
	rt, ok := err.(RuntimeError)
	if !ok || rt.Kind != KindMethodNotFound {
		t.Fatalf("expected MethodNotFoundError, got %T: %v", err, err)
	}
}

func TestClassInstanceCallUndefinedNameIsMethodNotFound(t *testing.T) {
	cls := NewClass("Box", nil, nil)
	inst := NewClassInstance(cls)

	_, err := inst.Call("nope", nil, newCtx())
	rt, ok := err.(RuntimeError)
	if !ok || rt.Kind != KindMethodNotFound {
		t.Fatalf("expected MethodNotFoundError, got %T: %v", err, err)
	}
}

func TestClassInstancePrintWithoutStrIsStable(t *testing.T) {
	cls := NewClass("Plain", nil, nil)
	inst := NewClassInstance(cls)

	first := printString(t, inst)
	second := printString(t, inst)
	if first != second {
		t.Fatalf("expected Print of the same instance to be stable, got %q then %q", first, second)
	}
	if first == "" {
		t.Fatal("expected a non-empty address-like token")
	}
}

func TestClassInstancePrintDispatchesToStr(t *testing.T) {
	strBody := executableFunc(func(Closure, Context) (ObjectHolder, error) {
		return Own(String("a box")), nil
	})
	cls := NewClass("Box", []*Method{{Name: "__str__", Params: nil, Body: strBody}}, nil)
	inst := NewClassInstance(cls)

	if got := printString(t, inst); got != "a box" {
		t.Fatalf("got %q, want %q", got, "a box")
	}
}

func TestHolderAccessors(t *testing.T) {
	h := Own(Number(3))
	if h.IsEmpty() {
		t.Fatal("Own holder should not be empty")
	}
	if h.IsShared() {
		t.Fatal("Own holder should not report shared")
	}
	if _, ok := h.AsString(); ok {
		t.Fatal("Number holder should not convert to String")
	}
	if n, ok := h.AsNumber(); !ok || n != 3 {
		t.Fatalf("expected AsNumber to report 3, got %d, %v", n, ok)
	}

	none := None()
	if !none.IsEmpty() {
		t.Fatal("None() must be empty")
	}
	if none.Value() != nil {
		t.Fatal("None() must have a nil Value")
	}
}

// executableFunc adapts a plain function to runtime.Executable for tests
// that need a method body without constructing any ast node.
type executableFunc func(closure Closure, ctx Context) (ObjectHolder, error)

func (f executableFunc) Execute(closure Closure, ctx Context) (ObjectHolder, error) {
	return f(closure, ctx)
}
