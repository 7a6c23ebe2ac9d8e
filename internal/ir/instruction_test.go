package ir

import "testing"

func buildSimpleFunction(ctx *Context, mod *Module) (*Function, *BasicBlock) {
	i32 := ctx.Int32Type()
	ft := ctx.GetFunctionType(i32, []Type{i32, i32}, false)
	fn := mod.GetOrInsertFunction("add", ft)
	entry := fn.AppendBlock("entry")
	return fn, entry
}

func TestTerminatorDiscipline(t *testing.T) {
	ctx := NewContext()
	mod := NewModule(ctx, "m")
	fn, entry := buildSimpleFunction(ctx, mod)

	sum := entry.NewAdd("add", fn.Arg(0), fn.Arg(1))
	entry.NewRet(sum)

	if entry.Terminator() == nil {
		t.Fatalf("expected block to record its terminator")
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected appending after a terminator to panic")
		}
	}()
	entry.NewRet(nil)
}

func TestCondBrRequiresI1(t *testing.T) {
	ctx := NewContext()
	mod := NewModule(ctx, "m")
	fn, entry := buildSimpleFunction(ctx, mod)
	thenB := fn.AppendBlock("then")
	elseB := fn.AppendBlock("else")

	defer func() {
		if recover() == nil {
			t.Fatalf("expected conditional branch on a non-i1 condition to panic")
		}
	}()
	entry.NewCondBr(fn.Arg(0), thenB, elseB)
}

func TestSelectRequiresMatchingNonVoidOperands(t *testing.T) {
	ctx := NewContext()
	mod := NewModule(ctx, "m")
	_, entry := buildSimpleFunction(ctx, mod)
	i1 := ctx.Int1Type()
	cond := ctx.GetIntTrue(i1)
	trueVal := ctx.GetInt(ctx.Int32Type(), 1, false)
	falseVal := ctx.GetInt(ctx.Int64Type(), 1, false)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected select with mismatched operand types to panic")
		}
	}()
	entry.NewSelect("sel", cond, trueVal, falseVal)
}

func TestPhiIsCompleteTracksPredecessors(t *testing.T) {
	ctx := NewContext()
	mod := NewModule(ctx, "m")
	fn, entry := buildSimpleFunction(ctx, mod)
	merge := fn.AppendBlock("merge")

	i32 := ctx.Int32Type()
	entry.NewBr(merge)
	merge.AddPredecessor(entry)

	phi := merge.NewPhi("p", i32)
	if PhiIsComplete(phi) {
		t.Fatalf("phi with zero incomings should not be complete")
	}
	phi.AddIncoming(fn.Arg(0), entry)
	if !PhiIsComplete(phi) {
		t.Fatalf("phi with one incoming matching the sole predecessor should be complete")
	}
}

func TestPhiHasConstantValue(t *testing.T) {
	ctx := NewContext()
	mod := NewModule(ctx, "m")
	fn, entry := buildSimpleFunction(ctx, mod)
	a := fn.AppendBlock("a")
	b := fn.AppendBlock("b")
	merge := fn.AppendBlock("merge")
	_ = entry

	i32 := ctx.Int32Type()
	same := ctx.GetInt(i32, 7, false)

	phi := merge.NewPhi("p", i32)
	phi.AddIncoming(same, a)
	phi.AddIncoming(same, b)
	if got := PhiHasConstantValue(phi); got != same {
		t.Fatalf("expected identical incoming values to resolve to a constant value")
	}

	other := ctx.GetInt(i32, 9, false)
	phi.AddIncoming(other, merge)
	if got := PhiHasConstantValue(phi); got != nil {
		t.Fatalf("expected divergent incoming values to resolve to nil, got %v", got)
	}
}

func TestGetOrInsertFunctionReusesByName(t *testing.T) {
	ctx := NewContext()
	mod := NewModule(ctx, "m")
	i32 := ctx.Int32Type()
	ft := ctx.GetFunctionType(i32, nil, false)
	f1 := mod.GetOrInsertFunction("f", ft)
	f2 := mod.GetOrInsertFunction("f", ft)
	if f1 != f2 {
		t.Fatalf("expected GetOrInsertFunction to return the existing function on name match")
	}
	if len(mod.Functions()) != 1 {
		t.Fatalf("expected exactly one function to be recorded, got %d", len(mod.Functions()))
	}
}

func TestEntryBlockNameLiteral(t *testing.T) {
	ctx := NewContext()
	b := NewBasicBlock(ctx, "entry")
	if b.Name() != "entry" {
		t.Fatalf("expected literal 'entry' name to be preserved, got %q", b.Name())
	}
	other := NewBasicBlock(ctx, "loop")
	if other.Name() == "loop" {
		t.Fatalf("expected non-entry name to be minted through the context prefix counter")
	}
}
