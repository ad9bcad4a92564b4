package runtime

import "fmt"

// ErrorKind classifies a RuntimeError, grounded on the teacher's
// interpreter_error_kind enum (pkg/interpreter/standard_errors.go) and on
// the exceptions thrown throughout original_source/mython/runtime.cpp
// (ObjectHolder::TryAs, ClassInstance::Call, numeric dispatch).
type ErrorKind string

const (
	KindNameError          ErrorKind = "NameError"
	KindAttrError          ErrorKind = "AttrError"
	KindTypeError          ErrorKind = "TypeError"
	KindMethodNotFound     ErrorKind = "MethodNotFoundError"
	KindCompareError       ErrorKind = "CompareError"
	KindDivisionByZero     ErrorKind = "DivisionByZeroError"
)

// RuntimeError is the concrete error type for every evaluation failure
// named in spec.md §4-§6 (undefined name, missing field, bad operand type,
// unresolved method call, incomparable operands, division by zero).
type RuntimeError struct {
	Kind    ErrorKind
	Message string
}

func (e RuntimeError) Error() string { return e.Message }

// NewNameError reports that name has no binding in the active closure.
func NewNameError(name string) error {
	return RuntimeError{Kind: KindNameError, Message: fmt.Sprintf("name %q is not defined", name)}
}

// NewAttrError reports that field has no binding on the receiving instance.
func NewAttrError(field string) error {
	return RuntimeError{Kind: KindAttrError, Message: fmt.Sprintf("object has no attribute %q", field)}
}

// NewTypeError reports an operator or builtin applied to operand types it
// does not support.
func NewTypeError(msg string) error {
	return RuntimeError{Kind: KindTypeError, Message: msg}
}

// NewMethodNotFoundError reports that name could not be resolved through the
// parent chain at the call's arity.
func NewMethodNotFoundError(name string) error {
	return RuntimeError{Kind: KindMethodNotFound, Message: fmt.Sprintf("method %q not found", name)}
}

// NewCompareError reports that op has no defined semantics for the operand
// types given (no shared primitive kind, no user __eq__/__lt__ extension).
func NewCompareError(op string) error {
	return RuntimeError{Kind: KindCompareError, Message: fmt.Sprintf("operands do not support %s comparison", op)}
}

// NewDivisionByZeroError reports integer division by zero.
func NewDivisionByZeroError() error {
	return RuntimeError{Kind: KindDivisionByZero, Message: "division by zero"}
}

// ReturnSignal unwinds the Go call stack back to the nearest enclosing
// MethodBody, carrying the returned value. It implements error purely so it
// can travel through the normal (ObjectHolder, error) return shape every
// Execute uses — grounded directly on the teacher's raiseSignal/
// returnSignal convention in pkg/interpreter/interpreter_signals.go, which
// does the same thing for its own control-flow unwinding.
type ReturnSignal struct {
	Value ObjectHolder
}

func (ReturnSignal) Error() string { return "return" }

// AsReturnSignal extracts a ReturnSignal from err, if that's what it is.
func AsReturnSignal(err error) (ReturnSignal, bool) {
	rs, ok := err.(ReturnSignal)
	return rs, ok
}
