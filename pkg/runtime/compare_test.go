package runtime

import "testing"

func TestAddNumbersAndStrings(t *testing.T) {
	sum, err := Add(Own(Number(2)), Own(Number(3)), newCtx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, ok := sum.AsNumber(); !ok || n != 5 {
		t.Fatalf("got %v", sum)
	}

	cat, err := Add(Own(String("foo")), Own(String("bar")), newCtx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, ok := cat.AsString(); !ok || s != "foobar" {
		t.Fatalf("got %v", cat)
	}
}

func TestAddMismatchedTypesIsTypeError(t *testing.T) {
	_, err := Add(Own(Number(1)), Own(String("x")), newCtx())
	rt, ok := err.(RuntimeError)
	if !ok || rt.Kind != KindTypeError {
		t.Fatalf("expected TypeError, got %T: %v", err, err)
	}
}

func TestAddDispatchesToUserAdd(t *testing.T) {
	addBody := executableFunc(func(closure Closure, ctx Context) (ObjectHolder, error) {
		other, _ := closure.Get("other")
		n, _ := other.AsNumber()
		return Own(Number(n + 100)), nil
	})
	cls := NewClass("Counter", []*Method{{Name: "__add__", Params: []string{"other"}, Body: addBody}}, nil)
	inst := NewClassInstance(cls)

	result, err := Add(Own(inst), Own(Number(1)), newCtx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, ok := result.AsNumber(); !ok || n != 101 {
		t.Fatalf("got %v", result)
	}
}

func TestEqualBothNoneIsTrue(t *testing.T) {
	eq, err := Equal(None(), None(), newCtx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !eq {
		t.Fatal("expected two None holders to compare equal")
	}
}

func TestEqualSamePrimitiveType(t *testing.T) {
	eq, err := Equal(Own(Number(1)), Own(Number(1)), newCtx())
	if err != nil || !eq {
		t.Fatalf("expected 1 == 1, got %v, %v", eq, err)
	}
	eq, err = Equal(Own(String("a")), Own(String("b")), newCtx())
	if err != nil || eq {
		t.Fatalf("expected \"a\" != \"b\", got %v, %v", eq, err)
	}
}

func TestEqualWithNoSharedTypeAndNoExtensionIsCompareError(t *testing.T) {
	_, err := Equal(Own(Number(1)), Own(String("1")), newCtx())
	rt, ok := err.(RuntimeError)
	if !ok || rt.Kind != KindCompareError {
		t.Fatalf("expected CompareError, got %T: %v", err, err)
	}
}

func TestEqualDispatchesToUserEq(t *testing.T) {
	eqBody := executableFunc(func(Closure, Context) (ObjectHolder, error) {
		return Own(Bool(true)), nil
	})
	cls := NewClass("AlwaysEqual", []*Method{{Name: "__eq__", Params: []string{"other"}, Body: eqBody}}, nil)
	inst := NewClassInstance(cls)

	eq, err := Equal(Own(inst), Own(Number(999)), newCtx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !eq {
		t.Fatal("expected __eq__ override to report equal")
	}
}

func TestNotEqualIsNegationOfEqual(t *testing.T) {
	neq, err := NotEqual(Own(Number(1)), Own(Number(2)), newCtx())
	if err != nil || !neq {
		t.Fatalf("expected 1 != 2, got %v, %v", neq, err)
	}
}

func TestLessHasNoBothNoneCase(t *testing.T) {
	_, err := Less(None(), None(), newCtx())
	rt, ok := err.(RuntimeError)
	if !ok || rt.Kind != KindCompareError {
		t.Fatalf("expected CompareError for None < None, got %T: %v", err, err)
	}
}

func TestLessDispatchesToUserLt(t *testing.T) {
	ltBody := executableFunc(func(closure Closure, ctx Context) (ObjectHolder, error) {
		self, _ := closure.Get("self")
		other, _ := closure.Get("other")
		si, _ := self.AsClassInstance()
		oi, _ := other.AsClassInstance()
		sv, _ := si.Fields().Get("value")
		ov, _ := oi.Fields().Get("value")
		sn, _ := sv.AsNumber()
		on, _ := ov.AsNumber()
		return Own(Bool(sn < on)), nil
	})
	cls := NewClass("Box", []*Method{{Name: "__lt__", Params: []string{"other"}, Body: ltBody}}, nil)
	a := NewClassInstance(cls)
	a.Fields().Set("value", Own(Number(1)))
	b := NewClassInstance(cls)
	b.Fields().Set("value", Own(Number(2)))

	lt, err := Less(Own(a), Own(b), newCtx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !lt {
		t.Fatal("expected a < b")
	}
}

func TestDerivedComparators(t *testing.T) {
	one, two := Own(Number(1)), Own(Number(2))

	if g, err := Greater(two, one, newCtx()); err != nil || !g {
		t.Fatalf("expected 2 > 1, got %v, %v", g, err)
	}
	if g, err := Greater(one, one, newCtx()); err != nil || g {
		t.Fatalf("expected !(1 > 1), got %v, %v", g, err)
	}
	if le, err := LessOrEqual(one, one, newCtx()); err != nil || !le {
		t.Fatalf("expected 1 <= 1, got %v, %v", le, err)
	}
	if le, err := LessOrEqual(two, one, newCtx()); err != nil || le {
		t.Fatalf("expected !(2 <= 1), got %v, %v", le, err)
	}
	if ge, err := GreaterOrEqual(one, one, newCtx()); err != nil || !ge {
		t.Fatalf("expected 1 >= 1, got %v, %v", ge, err)
	}
	if ge, err := GreaterOrEqual(one, two, newCtx()); err != nil || ge {
		t.Fatalf("expected !(1 >= 2), got %v, %v", ge, err)
	}
}
