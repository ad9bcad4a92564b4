package runtime

import "bytes"

// ObjectHolder is the ownership handle every expression evaluates to
// (spec.md §3.1). An empty holder (zero value, Value() == nil) is the sole
// representation of None — there is no separate None Value variant; this
// mirrors original_source/mython/runtime.cpp, where ObjectHolder::None()
// constructs a holder around a nullptr and Print/IsTrue/Equal special-case
// that emptiness directly (see DESIGN.md OQ-2).
//
// Own and Share both just wrap a Value today — Go's garbage collector makes
// the original's manual reference counting unnecessary, so the two
// constructors exist to preserve the vocabulary from spec.md §3.1 (own vs.
// share a value) rather than to enforce different runtime behavior.
type ObjectHolder struct {
	value  Value
	shared bool
}

// None returns the empty holder.
func None() ObjectHolder { return ObjectHolder{} }

// Own wraps v as a holder with no other owners.
func Own(v Value) ObjectHolder { return ObjectHolder{value: v} }

// Share wraps v as a holder aliasing another holder's value (e.g. binding
// "self" to the caller's own instance).
func Share(v Value) ObjectHolder { return ObjectHolder{value: v, shared: true} }

// IsEmpty reports whether this holder represents None.
func (h ObjectHolder) IsEmpty() bool { return h.value == nil }

// IsShared reports whether this holder was constructed via Share.
func (h ObjectHolder) IsShared() bool { return h.shared }

// Value returns the wrapped Value, or nil for an empty holder.
func (h ObjectHolder) Value() Value { return h.value }

// AsNumber extracts a Number payload, if that's what this holder holds.
func (h ObjectHolder) AsNumber() (int, bool) {
	n, ok := h.value.(Number)
	return int(n), ok
}

// AsString extracts a String payload, if that's what this holder holds.
func (h ObjectHolder) AsString() (string, bool) {
	s, ok := h.value.(String)
	return string(s), ok
}

// AsClassInstance extracts a *ClassInstance payload, if that's what this
// holder holds.
func (h ObjectHolder) AsClassInstance() (*ClassInstance, bool) {
	ci, ok := h.value.(*ClassInstance)
	return ci, ok
}

// AsClass extracts a *ClassValue payload, if that's what this holder holds.
func (h ObjectHolder) AsClass() (*ClassValue, bool) {
	cv, ok := h.value.(*ClassValue)
	return cv, ok
}

// PrintToString renders v the way Print/Stringify would, capturing the
// output into a string instead of writing to a stream.
func PrintToString(v Value, ctx Context) (string, error) {
	var buf bytes.Buffer
	if err := v.Print(&buf, ctx); err != nil {
		return "", err
	}
	return buf.String(), nil
}
