package ir

import "testing"

func TestIntegerTypeInterning(t *testing.T) {
	ctx := NewContext()
	a := ctx.GetIntegerType(32)
	b := ctx.GetIntegerType(32)
	if a != b {
		t.Fatalf("expected identical i32 type descriptors, got distinct pointers")
	}
	c := ctx.GetIntegerType(64)
	if a == c {
		t.Fatalf("expected i32 and i64 to be distinct types")
	}
}

func TestPointerTypeOpaqueSingleton(t *testing.T) {
	ctx := NewContext()
	p1 := ctx.GetPointerTo(nil)
	p2 := ctx.GetPointerTo(nil)
	if p1 != p2 {
		t.Fatalf("expected a single opaque pointer type per context")
	}
	if p1 != ctx.OpaquePointerType() {
		t.Fatalf("expected GetPointerTo(nil) to return the context's opaque pointer singleton")
	}
}

func TestStructTypeInterningByElements(t *testing.T) {
	ctx := NewContext()
	i32 := ctx.GetIntegerType(32)
	f64 := ctx.DoubleType()
	s1 := ctx.GetStructType([]Type{i32, f64})
	s2 := ctx.GetStructType([]Type{i32, f64})
	if s1 != s2 {
		t.Fatalf("expected structurally-identical struct types to be interned to one descriptor")
	}
	s3 := ctx.GetStructType([]Type{f64, i32})
	if s1 == s3 {
		t.Fatalf("expected element order to matter for struct interning")
	}
}

func TestStructIsSized(t *testing.T) {
	ctx := NewContext()
	i32 := ctx.GetIntegerType(32)
	s := ctx.GetStructType([]Type{i32, i32})
	if !s.IsSized() {
		t.Fatalf("expected a struct of sized elements to be sized")
	}

	opaque := &StructType{typeBase: typeBase{ctx: ctx}, HasBody: false}
	if opaque.IsSized() {
		t.Fatalf("expected a body-less struct to be unsized")
	}
}

func TestPrefixedIDCounter(t *testing.T) {
	ctx := NewContext()
	if got := ctx.GetPrefixedID("add"); got != "add0" {
		t.Fatalf("first add-prefixed id = %q, want add0", got)
	}
	if got := ctx.GetPrefixedID("add"); got != "add1" {
		t.Fatalf("second add-prefixed id = %q, want add1", got)
	}
	if got := ctx.GetPrefixedID("sub"); got != "sub0" {
		t.Fatalf("first sub-prefixed id = %q, want sub0 (independent counters per prefix)", got)
	}
}

func TestIsFirstClassAndAggregate(t *testing.T) {
	ctx := NewContext()
	if ctx.VoidType().IsFirstClass() {
		t.Fatalf("void must not be first-class")
	}
	if !ctx.Int32Type().IsFirstClass() {
		t.Fatalf("i32 must be first-class")
	}
	arr := ctx.GetArrayType(ctx.Int32Type(), 4)
	if !arr.IsAggregate() {
		t.Fatalf("array must be an aggregate")
	}
	if arr.IsSingleValue() {
		t.Fatalf("array must not be single-value")
	}
}
