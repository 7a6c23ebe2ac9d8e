package ir

import "testing"

func TestGetIntSignExtension(t *testing.T) {
	ctx := NewContext()
	i8 := ctx.GetIntegerType(8)
	c := ctx.GetInt(i8, 0xFF, true).(*Constant)
	if c.IntValue != -1 {
		t.Fatalf("sign-extended 0xFF (i8, signed) = %d, want -1", c.IntValue)
	}

	cu := ctx.GetInt(i8, 0xFF, false).(*Constant)
	if cu.IntValue != 0xFF {
		t.Fatalf("unsigned 0xFF (i8) = %d, want 255", cu.IntValue)
	}
}

func TestGetIntAllOnes(t *testing.T) {
	ctx := NewContext()
	i8 := ctx.GetIntegerType(8)
	ones := ctx.GetIntAllOnes(i8).(*Constant)
	if ones.IntValue != 0xFF {
		t.Fatalf("all-ones i8 = %d, want 255", ones.IntValue)
	}
}

func TestIsFloatValueValid(t *testing.T) {
	ctx := NewContext()
	f32 := ctx.FloatType()
	if !IsFloatValueValid(f32, 1.5) {
		t.Fatalf("1.5 should round-trip through float32")
	}
	if IsFloatValueValid(f32, 0.1) {
		// 0.1 does not survive a float64->float32->float64 round trip exactly.
		t.Fatalf("0.1 should not round-trip through float32 unchanged")
	}
}

func TestGetStringRequiresPointerToInteger(t *testing.T) {
	ctx := NewContext()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected GetString on a non pointer-to-integer type to panic")
		}
	}()
	ctx.GetString(ctx.Int32Type(), "oops")
}
