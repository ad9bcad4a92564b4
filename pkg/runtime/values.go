// Package runtime implements the tagged value model described in
// spec.md §3.1/§4.2: primitives, classes, class instances, and the
// ObjectHolder ownership handle. It is grounded on
// original_source/mython/runtime.cpp, reshaped into the teacher repo's
// Kind-tagged Value interface convention (see the "Kind" enum and "Value"
// interface in able/interpreter-go/pkg/runtime/values.go).
package runtime

import (
	"fmt"
	"io"
)

// Kind identifies the runtime value category. There is no KindNone: an
// absent/unit value is represented by an empty ObjectHolder rather than a
// concrete Value (see ObjectHolder and DESIGN.md's Open Question OQ-2).
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindClass
	KindClassInstance
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindBool:
		return "Bool"
	case KindClass:
		return "Class"
	case KindClassInstance:
		return "ClassInstance"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values: a Kind tag and the
// canonical text representation used by Print/Stringify.
type Value interface {
	Kind() Kind
	Print(w io.Writer, ctx Context) error
}

//-----------------------------------------------------------------------------
// Primitives
//-----------------------------------------------------------------------------

// Number is a signed integer value (spec.md §1 Non-goals: integer only).
type Number int

func (Number) Kind() Kind { return KindNumber }

func (n Number) Print(w io.Writer, _ Context) error {
	_, err := fmt.Fprintf(w, "%d", int(n))
	return err
}

// String is an immutable byte sequence.
type String string

func (String) Kind() Kind { return KindString }

func (s String) Print(w io.Writer, _ Context) error {
	_, err := io.WriteString(w, string(s))
	return err
}

// Bool is a two-valued primitive.
type Bool bool

func (Bool) Kind() Kind { return KindBool }

func (b Bool) Print(w io.Writer, _ Context) error {
	if b {
		_, err := io.WriteString(w, "True")
		return err
	}
	_, err := io.WriteString(w, "False")
	return err
}

//-----------------------------------------------------------------------------
// Classes and instances
//-----------------------------------------------------------------------------

// Executable is any AST node with the standard Execute contract. Runtime
// stays free of an import cycle on pkg/ast by depending on this structural
// interface instead — pkg/ast.Statement satisfies it automatically.
type Executable interface {
	Execute(closure Closure, ctx Context) (ObjectHolder, error)
}

// Method is a named callable attached to a Class. Arity is the length of
// Params; it is not part of the lookup key (spec.md §3.1: "own methods
// shadow parent methods by name regardless of arity").
type Method struct {
	Name   string
	Params []string
	Body   Executable
}

// ClassValue is a class descriptor: name, immutable method table, and a
// non-owning reference to its parent (spec.md §3.1).
type ClassValue struct {
	Name    string
	methods map[string]*Method
	Parent  *ClassValue
}

// NewClass builds a ClassValue whose method table is fixed at construction.
func NewClass(name string, methods []*Method, parent *ClassValue) *ClassValue {
	table := make(map[string]*Method, len(methods))
	for _, m := range methods {
		table[m.Name] = m
	}
	return &ClassValue{Name: name, methods: table, Parent: parent}
}

func (*ClassValue) Kind() Kind { return KindClass }

func (c *ClassValue) Print(w io.Writer, _ Context) error {
	_, err := fmt.Fprintf(w, "Class %s", c.Name)
	return err
}

// LookupMethod walks the parent chain, returning the nearest match by name.
func (c *ClassValue) LookupMethod(name string) *Method {
	for cur := c; cur != nil; cur = cur.Parent {
		if m, ok := cur.methods[name]; ok {
			return m
		}
	}
	return nil
}

// ClassInstance binds a Class to its own mutable field scope. Fields are
// created lazily on first assignment (spec.md §3.1).
type ClassInstance struct {
	class  *ClassValue
	fields Closure
}

// NewClassInstance allocates an instance with an empty field scope.
func NewClassInstance(class *ClassValue) *ClassInstance {
	return &ClassInstance{class: class, fields: Closure{}}
}

func (*ClassInstance) Kind() Kind { return KindClassInstance }

func (ci *ClassInstance) Class() *ClassValue { return ci.class }

// Fields exposes the instance's mutable field scope.
func (ci *ClassInstance) Fields() Closure { return ci.fields }

// HasMethod reports whether the resolved method exists with exactly the
// given arity (spec.md §4.2).
func (ci *ClassInstance) HasMethod(name string, arity int) bool {
	m := ci.class.LookupMethod(name)
	return m != nil && len(m.Params) == arity
}

// Call resolves method by name through the parent chain, binds a fresh
// closure (self + positional params), and executes the body. Fails with
// MethodNotFound if resolution or arity does not match (spec.md §4.2).
func (ci *ClassInstance) Call(name string, args []ObjectHolder, ctx Context) (ObjectHolder, error) {
	m := ci.class.LookupMethod(name)
	if m == nil || len(m.Params) != len(args) {
		return ObjectHolder{}, NewMethodNotFoundError(name)
	}
	closure := Closure{}
	closure["self"] = Share(ci)
	for i, p := range m.Params {
		closure[p] = args[i]
	}
	return m.Body.Execute(closure, ctx)
}

// Print calls a zero-argument __str__ if defined; otherwise prints an
// opaque, stable, non-empty address-like token (spec.md §4.2), grounded on
// runtime.cpp's `os << this` (a raw pointer-address print) translated
// directly into Go's "%p" verb.
func (ci *ClassInstance) Print(w io.Writer, ctx Context) error {
	if ci.HasMethod("__str__", 0) {
		result, err := ci.Call("__str__", nil, ctx)
		if err != nil {
			return err
		}
		if result.IsEmpty() {
			_, err := io.WriteString(w, "None")
			return err
		}
		return result.Value().Print(w, ctx)
	}
	_, err := fmt.Fprintf(w, "%p", ci)
	return err
}

//-----------------------------------------------------------------------------
// Truthiness
//-----------------------------------------------------------------------------

// IsTrue implements spec.md §4.2's truthiness table. An empty holder (the
// representation of None) is always false.
func IsTrue(h ObjectHolder) bool {
	if h.IsEmpty() {
		return false
	}
	switch v := h.Value().(type) {
	case Number:
		return v != 0
	case String:
		return len(v) > 0
	case Bool:
		return bool(v)
	case *ClassInstance:
		return false
	default:
		return false
	}
}
