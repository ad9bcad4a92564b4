package runtime

// This file implements the cross-type arithmetic and comparison dispatch
// named in spec.md §4.2, grounded on the teacher's
// pkg/interpreter/interpreter_operations_compare.go and
// interpreter_operations_arithmetic.go (primitive-pair fast paths first,
// then a single user-extension method, then failure) and on
// original_source/mython/runtime.cpp's Equal/Less free functions, which
// establish the same "both-None is equal, else dispatch on shared
// concrete type, else try __eq__/__lt__, else throw" order.

// Add implements the binary `+` operator: Number+Number, String+String
// (concatenation), or a user-defined __add__(other) on a ClassInstance.
func Add(l, r ObjectHolder, ctx Context) (ObjectHolder, error) {
	switch lv := l.Value().(type) {
	case Number:
		if rv, ok := r.Value().(Number); ok {
			return Own(lv + rv), nil
		}
	case String:
		if rv, ok := r.Value().(String); ok {
			return Own(lv + rv), nil
		}
	case *ClassInstance:
		if lv.HasMethod("__add__", 1) {
			return lv.Call("__add__", []ObjectHolder{r}, ctx)
		}
	}
	return ObjectHolder{}, NewTypeError("unsupported operand types for +")
}

// Equal implements spec.md §4.2's equality rule: both-None is equal;
// otherwise same concrete primitive type compares by value; otherwise a
// ClassInstance may define __eq__(other); otherwise CompareError.
func Equal(l, r ObjectHolder, ctx Context) (bool, error) {
	if l.IsEmpty() && r.IsEmpty() {
		return true, nil
	}
	switch lv := l.Value().(type) {
	case Number:
		if rv, ok := r.Value().(Number); ok {
			return lv == rv, nil
		}
	case String:
		if rv, ok := r.Value().(String); ok {
			return lv == rv, nil
		}
	case Bool:
		if rv, ok := r.Value().(Bool); ok {
			return lv == rv, nil
		}
	case *ClassInstance:
		if lv.HasMethod("__eq__", 1) {
			res, err := lv.Call("__eq__", []ObjectHolder{r}, ctx)
			if err != nil {
				return false, err
			}
			return IsTrue(res), nil
		}
	}
	return false, NewCompareError("==")
}

// NotEqual is the logical negation of Equal.
func NotEqual(l, r ObjectHolder, ctx Context) (bool, error) {
	eq, err := Equal(l, r, ctx)
	if err != nil {
		return false, err
	}
	return !eq, nil
}

// Less implements spec.md §4.2's ordering rule: same concrete primitive
// type compares by value; a ClassInstance may define __lt__(other);
// otherwise CompareError. There is no both-None case — None has no order.
func Less(l, r ObjectHolder, ctx Context) (bool, error) {
	switch lv := l.Value().(type) {
	case Number:
		if rv, ok := r.Value().(Number); ok {
			return lv < rv, nil
		}
	case String:
		if rv, ok := r.Value().(String); ok {
			return lv < rv, nil
		}
	case Bool:
		if rv, ok := r.Value().(Bool); ok {
			return !bool(lv) && bool(rv), nil
		}
	case *ClassInstance:
		if lv.HasMethod("__lt__", 1) {
			res, err := lv.Call("__lt__", []ObjectHolder{r}, ctx)
			if err != nil {
				return false, err
			}
			return IsTrue(res), nil
		}
	}
	return false, NewCompareError("<")
}

// Greater, LessOrEqual and GreaterOrEqual are derived from Less and Equal
// per spec.md §4.2 rather than given their own user-extension hooks.
func Greater(l, r ObjectHolder, ctx Context) (bool, error) {
	lt, err := Less(l, r, ctx)
	if err != nil {
		return false, err
	}
	if lt {
		return false, nil
	}
	eq, err := Equal(l, r, ctx)
	if err != nil {
		return false, err
	}
	return !eq, nil
}

func LessOrEqual(l, r ObjectHolder, ctx Context) (bool, error) {
	g, err := Greater(l, r, ctx)
	if err != nil {
		return false, err
	}
	return !g, nil
}

func GreaterOrEqual(l, r ObjectHolder, ctx Context) (bool, error) {
	lt, err := Less(l, r, ctx)
	if err != nil {
		return false, err
	}
	return !lt, nil
}
