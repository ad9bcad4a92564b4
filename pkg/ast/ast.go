// Package ast defines the statement/expression node kinds executed by
// pkg/interpreter. Every node implements Statement, whose single operation
// is Execute — mirroring original_source/mython/statement.cpp's
// ast::Statement::Execute contract. Dispatch goes through the Statement
// interface: each node type carries its own Execute method, and there is
// no central type switch over node kinds.
package ast

import "mython/interpreter-go/pkg/runtime"

// Statement is any executable AST node: statements and expressions alike
// (the Language, like the original Mython, does not distinguish the two at
// the AST-node level — every node yields a value).
type Statement interface {
	Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error)
}

// Compound executes a sequence of statements in order and yields None.
type Compound struct {
	Args []Statement
}

func (c *Compound) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	for _, arg := range c.Args {
		if _, err := arg.Execute(closure, ctx); err != nil {
			return runtime.ObjectHolder{}, err
		}
	}
	return runtime.None(), nil
}

// Assignment binds Var in closure to the evaluated Rv and yields that value.
type Assignment struct {
	Var string
	Rv  Statement
}

func (a *Assignment) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	val, err := a.Rv.Execute(closure, ctx)
	if err != nil {
		return runtime.ObjectHolder{}, err
	}
	closure[a.Var] = val
	return val, nil
}

// VariableValue looks up Name in closure, then walks Dotted as a chain of
// field accesses into ClassInstance values.
type VariableValue struct {
	Name   string
	Dotted []string
}

func NewVariableValue(name string) *VariableValue { return &VariableValue{Name: name} }

func NewDottedVariableValue(ids []string) *VariableValue {
	return &VariableValue{Name: ids[0], Dotted: append([]string(nil), ids[1:]...)}
}

func (v *VariableValue) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	holder, ok := closure[v.Name]
	if !ok {
		return runtime.ObjectHolder{}, runtime.NewNameError(v.Name)
	}
	for _, field := range v.Dotted {
		inst, ok := holder.AsClassInstance()
		if !ok {
			return runtime.ObjectHolder{}, runtime.NewAttrError(field)
		}
		fv, ok := inst.Fields()[field]
		if !ok {
			return runtime.ObjectHolder{}, runtime.NewAttrError(field)
		}
		holder = fv
	}
	return holder, nil
}

// FieldAssignment writes Rv into a field on the ClassInstance named by
// Object. If Object does not evaluate to an instance, this silently yields
// None (spec-pinned behavior, not an error).
type FieldAssignment struct {
	Object *VariableValue
	Field  string
	Rv     Statement
}

func (f *FieldAssignment) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	objHolder, err := f.Object.Execute(closure, ctx)
	if err != nil {
		return runtime.ObjectHolder{}, err
	}
	inst, ok := objHolder.AsClassInstance()
	if !ok {
		return runtime.None(), nil
	}
	val, err := f.Rv.Execute(closure, ctx)
	if err != nil {
		return runtime.ObjectHolder{}, err
	}
	inst.Fields()[f.Field] = val
	return val, nil
}

// Print evaluates each argument in order, prints them space-separated with
// a trailing newline, and yields None.
type Print struct {
	Args []Statement
}

func NewPrintVariable(name string) *Print {
	return &Print{Args: []Statement{NewVariableValue(name)}}
}

func (p *Print) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	out := ctx.OutputStream()
	for i, arg := range p.Args {
		holder, err := arg.Execute(closure, ctx)
		if err != nil {
			return runtime.ObjectHolder{}, err
		}
		if holder.IsEmpty() {
			out.Write([]byte("None"))
		} else if err := holder.Value().Print(out, ctx); err != nil {
			return runtime.ObjectHolder{}, err
		}
		if i != len(p.Args)-1 {
			out.Write([]byte(" "))
		}
	}
	out.Write([]byte("\n"))
	return runtime.None(), nil
}

// Stringify formats the evaluated argument as a String via the runtime
// printer, or "None" if the argument evaluates to an empty holder.
type Stringify struct {
	Arg Statement
}

func (s *Stringify) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	holder, err := s.Arg.Execute(closure, ctx)
	if err != nil {
		return runtime.ObjectHolder{}, err
	}
	if holder.IsEmpty() {
		return runtime.Own(runtime.String("None")), nil
	}
	str, err := runtime.PrintToString(holder.Value(), ctx)
	if err != nil {
		return runtime.ObjectHolder{}, err
	}
	return runtime.Own(runtime.String(str)), nil
}

// Literal yields a fixed, pre-built value — used by the parser for number,
// string, boolean, and None literals, none of which spec.md gives their own
// named AST node (it specifies the evaluator's node kinds, not the surface
// grammar a parser must recognize to build them).
type Literal struct {
	Value runtime.ObjectHolder
}

func (l *Literal) Execute(runtime.Closure, runtime.Context) (runtime.ObjectHolder, error) {
	return l.Value, nil
}

// BinaryOperation is the shared shape of Add/Sub/Mult/Div and Comparison.
type BinaryOperation struct {
	Lhs Statement
	Rhs Statement
}

// Add implements the polymorphic '+' operator: integer+integer,
// string+string, or a class instance's __add__.
type Add struct{ BinaryOperation }

func (a *Add) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	lhs, err := a.Lhs.Execute(closure, ctx)
	if err != nil {
		return runtime.ObjectHolder{}, err
	}
	rhs, err := a.Rhs.Execute(closure, ctx)
	if err != nil {
		return runtime.ObjectHolder{}, err
	}
	return runtime.Add(lhs, rhs, ctx)
}

// Sub, Mult, Div are integer-only arithmetic operators.
type Sub struct{ BinaryOperation }
type Mult struct{ BinaryOperation }
type Div struct{ BinaryOperation }

func (s *Sub) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	lhs, rhs, err := evalNumericPair(s.BinaryOperation, closure, ctx)
	if err != nil {
		return runtime.ObjectHolder{}, err
	}
	return runtime.Own(runtime.Number(lhs - rhs)), nil
}

func (m *Mult) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	lhs, rhs, err := evalNumericPair(m.BinaryOperation, closure, ctx)
	if err != nil {
		return runtime.ObjectHolder{}, err
	}
	return runtime.Own(runtime.Number(lhs * rhs)), nil
}

func (d *Div) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	lhs, rhs, err := evalNumericPair(d.BinaryOperation, closure, ctx)
	if err != nil {
		return runtime.ObjectHolder{}, err
	}
	if rhs == 0 {
		return runtime.ObjectHolder{}, runtime.NewDivisionByZeroError()
	}
	return runtime.Own(runtime.Number(lhs / rhs)), nil
}

func evalNumericPair(b BinaryOperation, closure runtime.Closure, ctx runtime.Context) (int, int, error) {
	lhsHolder, err := b.Lhs.Execute(closure, ctx)
	if err != nil {
		return 0, 0, err
	}
	rhsHolder, err := b.Rhs.Execute(closure, ctx)
	if err != nil {
		return 0, 0, err
	}
	lhs, ok := lhsHolder.AsNumber()
	if !ok {
		return 0, 0, runtime.NewTypeError("arithmetic operand must be a number")
	}
	rhs, ok := rhsHolder.AsNumber()
	if !ok {
		return 0, 0, runtime.NewTypeError("arithmetic operand must be a number")
	}
	return lhs, rhs, nil
}

// Comparator names one of the six comparison operators.
type Comparator int

const (
	CmpEq Comparator = iota
	CmpNotEq
	CmpLess
	CmpGreater
	CmpLessOrEq
	CmpGreaterOrEq
)

// Comparison evaluates Lhs then Rhs and applies the selected comparator.
type Comparison struct {
	BinaryOperation
	Cmp Comparator
}

func (c *Comparison) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	lhs, err := c.Lhs.Execute(closure, ctx)
	if err != nil {
		return runtime.ObjectHolder{}, err
	}
	rhs, err := c.Rhs.Execute(closure, ctx)
	if err != nil {
		return runtime.ObjectHolder{}, err
	}
	var result bool
	switch c.Cmp {
	case CmpEq:
		result, err = runtime.Equal(lhs, rhs, ctx)
	case CmpNotEq:
		result, err = runtime.NotEqual(lhs, rhs, ctx)
	case CmpLess:
		result, err = runtime.Less(lhs, rhs, ctx)
	case CmpGreater:
		result, err = runtime.Greater(lhs, rhs, ctx)
	case CmpLessOrEq:
		result, err = runtime.LessOrEqual(lhs, rhs, ctx)
	case CmpGreaterOrEq:
		result, err = runtime.GreaterOrEqual(lhs, rhs, ctx)
	}
	if err != nil {
		return runtime.ObjectHolder{}, err
	}
	return runtime.Own(runtime.Bool(result)), nil
}

// And and Or evaluate both operands (no short-circuit is required) and
// yield a fresh Bool.
type And struct{ BinaryOperation }
type Or struct{ BinaryOperation }

func (a *And) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	lhs, err := a.Lhs.Execute(closure, ctx)
	if err != nil {
		return runtime.ObjectHolder{}, err
	}
	rhs, err := a.Rhs.Execute(closure, ctx)
	if err != nil {
		return runtime.ObjectHolder{}, err
	}
	return runtime.Own(runtime.Bool(runtime.IsTrue(lhs) && runtime.IsTrue(rhs))), nil
}

func (o *Or) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	lhs, err := o.Lhs.Execute(closure, ctx)
	if err != nil {
		return runtime.ObjectHolder{}, err
	}
	rhs, err := o.Rhs.Execute(closure, ctx)
	if err != nil {
		return runtime.ObjectHolder{}, err
	}
	return runtime.Own(runtime.Bool(runtime.IsTrue(lhs) || runtime.IsTrue(rhs))), nil
}

// Not yields the logical negation of Arg's truthiness.
type Not struct {
	Arg Statement
}

func (n *Not) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	val, err := n.Arg.Execute(closure, ctx)
	if err != nil {
		return runtime.ObjectHolder{}, err
	}
	return runtime.Own(runtime.Bool(!runtime.IsTrue(val))), nil
}

// IfElse executes Then when Cond is truthy, otherwise Else (if present).
type IfElse struct {
	Cond Statement
	Then Statement
	Else Statement // nil when there is no else clause
}

func (ie *IfElse) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	cond, err := ie.Cond.Execute(closure, ctx)
	if err != nil {
		return runtime.ObjectHolder{}, err
	}
	if runtime.IsTrue(cond) {
		return ie.Then.Execute(closure, ctx)
	}
	if ie.Else != nil {
		return ie.Else.Execute(closure, ctx)
	}
	return runtime.None(), nil
}

// ClassDefinition binds a Class value's name in closure.
type ClassDefinition struct {
	Class runtime.Value // always a *runtime.ClassValue, boxed via ObjectHolder at Execute time
}

func (c *ClassDefinition) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	cls, ok := c.Class.(*runtime.ClassValue)
	if !ok {
		return runtime.None(), nil
	}
	holder := runtime.Own(cls)
	closure[cls.Name] = holder
	return holder, nil
}

// NewInstance constructs a ClassInstance bound to Class, invoking __init__
// (if defined with matching arity) with the evaluated Args.
type NewInstance struct {
	Class *runtime.ClassValue
	Args  []Statement
}

func (n *NewInstance) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	inst := runtime.NewClassInstance(n.Class)
	if m := n.Class.LookupMethod("__init__"); m != nil && len(m.Params) == len(n.Args) {
		args := make([]runtime.ObjectHolder, len(n.Args))
		for i, a := range n.Args {
			v, err := a.Execute(closure, ctx)
			if err != nil {
				return runtime.ObjectHolder{}, err
			}
			args[i] = v
		}
		if _, err := inst.Call("__init__", args, ctx); err != nil {
			return runtime.ObjectHolder{}, err
		}
	}
	return runtime.Share(inst), nil
}

// MethodCall dispatches Name on the evaluated Receiver. If Receiver is not
// a ClassInstance, this silently yields None (spec-pinned behavior).
type MethodCall struct {
	Receiver Statement
	Name     string
	Args     []Statement
}

func (mc *MethodCall) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	recv, err := mc.Receiver.Execute(closure, ctx)
	if err != nil {
		return runtime.ObjectHolder{}, err
	}
	inst, ok := recv.AsClassInstance()
	if !ok {
		return runtime.None(), nil
	}
	args := make([]runtime.ObjectHolder, len(mc.Args))
	for i, a := range mc.Args {
		v, err := a.Execute(closure, ctx)
		if err != nil {
			return runtime.ObjectHolder{}, err
		}
		args[i] = v
	}
	return inst.Call(mc.Name, args, ctx)
}

// Return evaluates Expr and performs a non-local transfer up to the
// enclosing MethodBody, exactly one of which will observe it (see
// runtime.ReturnSignal / MethodBody.Execute below).
type Return struct {
	Expr Statement
}

func (r *Return) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	val, err := r.Expr.Execute(closure, ctx)
	if err != nil {
		return runtime.ObjectHolder{}, err
	}
	return runtime.ObjectHolder{}, runtime.ReturnSignal{Value: val}
}

// MethodBody installs the catch point for a Return's non-local transfer.
type MethodBody struct {
	Body Statement
}

func (mb *MethodBody) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	_, err := mb.Body.Execute(closure, ctx)
	if err == nil {
		return runtime.None(), nil
	}
	if rs, ok := err.(runtime.ReturnSignal); ok {
		return rs.Value, nil
	}
	return runtime.ObjectHolder{}, err
}
