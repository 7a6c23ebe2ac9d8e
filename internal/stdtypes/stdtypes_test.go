package stdtypes

import (
	"testing"

	"netuno/internal/ir"
	"netuno/internal/srctype"
)

func build(t *testing.T) (*Registry, *ir.Module) {
	t.Helper()
	ctx := ir.NewContext()
	module := ir.NewModule(ctx, "test")
	return Build(ctx, module), module
}

func TestBuildDeclaresUserCallableExterns(t *testing.T) {
	reg, _ := build(t)
	for _, name := range []string{"string.concat", "string.equals", "console.write", "console.readline"} {
		if _, ok := reg.Externs[name]; !ok {
			t.Fatalf("expected Externs to contain %q", name)
		}
		if _, ok := reg.Functions[name]; !ok {
			t.Fatalf("expected Functions to contain %q", name)
		}
	}
}

func TestStringConcatSignature(t *testing.T) {
	reg, _ := build(t)
	concat := reg.Externs["string.concat"]
	if concat.ID != srctype.Delegate {
		t.Fatalf("expected string.concat to be a delegate type, got %s", concat)
	}
	if concat.Return.ID != srctype.String {
		t.Fatalf("expected string.concat to return string, got %s", concat.Return)
	}
	if len(concat.Params) != 2 || concat.Params[0].ID != srctype.String || concat.Params[1].ID != srctype.String {
		t.Fatalf("expected string.concat(string, string), got %v", concat.Params)
	}
}

func TestCastHelpersAreFunctionsOnly(t *testing.T) {
	reg, _ := build(t)
	for _, name := range []string{"i32.to_string", "string.to_i32", "bool.to_string", "string.to_f64"} {
		if _, ok := reg.Functions[name]; !ok {
			t.Fatalf("expected Functions to contain cast helper %q", name)
		}
		if _, ok := reg.Externs[name]; ok {
			t.Fatalf("did not expect Externs to contain internal cast helper %q", name)
		}
	}
}

func TestBuildIsIdempotentPerModule(t *testing.T) {
	ctx := ir.NewContext()
	module := ir.NewModule(ctx, "test")
	first := Build(ctx, module)
	fn := first.Functions["string.concat"]
	if got := module.GetFunction("string.concat"); got != fn {
		t.Fatalf("expected the declared function to be retrievable from the module")
	}
	second := Build(ctx, module)
	if got := second.Functions["string.concat"]; got != fn {
		t.Fatalf("expected a second Build on the same module to return the already-declared function")
	}
}
