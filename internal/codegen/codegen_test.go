package codegen

import (
	"strings"
	"testing"

	"netuno/internal/ir"
	"netuno/internal/lexer"
	"netuno/internal/parser"
	"netuno/internal/resolver"
	"netuno/internal/stdtypes"
)

// compile runs src through the real lexer, parser, resolver and
// codegen pipeline, wiring stdtypes' externs into both the resolver
// and the engine exactly the way a driver would for one file.
func compile(t *testing.T, src string) *ir.Module {
	t.Helper()

	toks := lexer.New(src).ScanTokens()
	module, parseRep := parser.New("test.nt", toks).Parse()
	if parseRep.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %s", src, parseRep.String())
	}

	ctx := ir.NewContext()
	irModule := ir.NewModule(ctx, "test")
	reg := stdtypes.Build(ctx, irModule)

	r := resolver.New("test.nt", reg.Externs)
	if rep := r.Resolve(module); rep.HasErrors() {
		t.Fatalf("unexpected resolve errors for %q: %s", src, rep.String())
	}

	e := New(ctx, "test.nt", reg.Functions)
	got, rep := e.LowerModule(module)
	if rep.HasErrors() {
		t.Fatalf("unexpected codegen errors for %q: %s", src, rep.String())
	}
	return got
}

func findFunction(t *testing.T, m *ir.Module, name string) *ir.Function {
	t.Helper()
	fn := m.GetFunction(name)
	if fn == nil {
		t.Fatalf("expected module to contain function %q", name)
	}
	return fn
}

// blockNamed finds the block whose name starts with prefix. Every
// non-"entry" block name carries a Context-minted numeric suffix (see
// Context.GetPrefixedID), so this matches by prefix rather than exact
// equality.
func blockNamed(t *testing.T, fn *ir.Function, prefix string) *ir.BasicBlock {
	t.Helper()
	for _, b := range fn.Blocks() {
		if b.Name() == prefix || strings.HasPrefix(b.Name(), prefix) {
			return b
		}
	}
	t.Fatalf("expected function %q to contain a block prefixed %q", fn.Name(), prefix)
	return nil
}

// S1 — minimal function.
func TestMinimalFunction(t *testing.T) {
	m := compile(t, "def f(): i32 => 42")
	fn := findFunction(t, m, "f")
	if len(fn.Blocks()) != 1 {
		t.Fatalf("expected exactly one block, got %d", len(fn.Blocks()))
	}
	entry := fn.Blocks()[0]
	if entry.Name() != "entry" {
		t.Fatalf("expected the only block to be named entry, got %q", entry.Name())
	}
	insts := entry.Instructions()
	if len(insts) != 1 {
		t.Fatalf("expected entry to contain exactly ret, got %d instructions", len(insts))
	}
	ret, ok := insts[0].(*ir.RetInst)
	if !ok {
		t.Fatalf("expected a ret instruction, got %T", insts[0])
	}
	c, ok := ret.Value.(*ir.Constant)
	if !ok {
		t.Fatalf("expected ret to return a constant, got %T", ret.Value)
	}
	if c.IntValue != 42 {
		t.Fatalf("expected ret 42, got %d", c.IntValue)
	}
}

// S2 — if/else with phi-like merge: then/else both return directly, so
// ifcont is built but never reached by a branch.
func TestIfElseBothBranchesReturn(t *testing.T) {
	m := compile(t, "def f(x: i32): i32 { if x == 0 { return 1 } else { return 2 } }")
	fn := findFunction(t, m, "f")

	entry := blockNamed(t, fn, "entry")
	entryTerm, ok := entry.Terminator().(*ir.BrInst)
	if !ok || !entryTerm.IsConditional() {
		t.Fatalf("expected entry to end in a conditional branch, got %#v", entry.Terminator())
	}
	cmp, ok := entry.Instructions()[0].(*ir.CmpInst)
	if !ok || cmp.Predicate != ir.PredIEQ {
		t.Fatalf("expected entry to open with an icmp eq, got %#v", entry.Instructions()[0])
	}

	thenBlock := blockNamed(t, fn, "then")
	thenRet, ok := thenBlock.Terminator().(*ir.RetInst)
	if !ok || thenRet.Value.(*ir.Constant).IntValue != 1 {
		t.Fatalf("expected then to return 1, got %#v", thenBlock.Terminator())
	}

	elseBlock := blockNamed(t, fn, "else")
	elseRet, ok := elseBlock.Terminator().(*ir.RetInst)
	if !ok || elseRet.Value.(*ir.Constant).IntValue != 2 {
		t.Fatalf("expected else to return 2, got %#v", elseBlock.Terminator())
	}

	// ifcont exists (AppendBlock always creates it) but neither then nor
	// else falls through to it, since both already terminate with ret.
	ifcont := blockNamed(t, fn, "ifcont")
	if len(ifcont.Instructions()) != 0 {
		t.Fatalf("expected ifcont to stay empty, got %d instructions", len(ifcont.Instructions()))
	}
}

// S3 — while loop.
func TestWhileLoop(t *testing.T) {
	m := compile(t, "sub g(n: i32) { var i = 0 while i < n { i = i + 1 } }")
	fn := findFunction(t, m, "g")

	entry := blockNamed(t, fn, "entry")
	if _, ok := entry.Instructions()[0].(*ir.AllocaInst); !ok {
		t.Fatalf("expected entry to open with an alloca for i, got %#v", entry.Instructions()[0])
	}
	if _, ok := entry.Terminator().(*ir.BrInst); !ok {
		t.Fatalf("expected entry to end with a branch into the loop, got %#v", entry.Terminator())
	}

	loop := blockNamed(t, fn, "loop")
	loopTerm, ok := loop.Terminator().(*ir.BrInst)
	if !ok || !loopTerm.IsConditional() {
		t.Fatalf("expected loop to end in a conditional branch, got %#v", loop.Terminator())
	}

	body := blockNamed(t, fn, "loopcont")
	var sawLoad, sawAdd, sawStore bool
	for _, inst := range body.Instructions() {
		switch inst.(type) {
		case *ir.LoadInst:
			sawLoad = true
		case *ir.BinaryInst:
			sawAdd = true
		case *ir.StoreInst:
			sawStore = true
		}
	}
	if !sawLoad || !sawAdd || !sawStore {
		t.Fatalf("expected loopcont to load, add and store i, got %#v", body.Instructions())
	}
	if _, ok := body.Terminator().(*ir.BrInst); !ok {
		t.Fatalf("expected loopcont to branch back to loop, got %#v", body.Terminator())
	}

	end := blockNamed(t, fn, "loopend")
	ret, ok := end.Terminator().(*ir.RetInst)
	if !ok || ret.Value != nil {
		t.Fatalf("expected loopend to return void, got %#v", end.Terminator())
	}
}

// S4 — string concat lowering.
func TestStringConcatCallsRuntimeHelper(t *testing.T) {
	m := compile(t, `def h(): string => "a" + "b"`)
	fn := findFunction(t, m, "h")
	entry := fn.Blocks()[0]
	ret, ok := entry.Terminator().(*ir.RetInst)
	if !ok {
		t.Fatalf("expected entry to end in ret, got %#v", entry.Terminator())
	}
	call, ok := ret.Value.(*ir.CallInst)
	if !ok {
		t.Fatalf("expected ret value to come from a call, got %T", ret.Value)
	}
	if call.Callee.(*ir.Function).Name() != "string.concat" {
		t.Fatalf("expected the call target to be string.concat, got %s", call.Callee.(*ir.Function).Name())
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected string.concat to take 2 args, got %d", len(call.Args))
	}
}

// S5 — short-circuit &&.
func TestShortCircuitAnd(t *testing.T) {
	m := compile(t, "def k(a: bool, b: bool): bool => a && b")
	fn := findFunction(t, m, "k")

	entry := fn.Blocks()[0]
	entryTerm, ok := entry.Terminator().(*ir.BrInst)
	if !ok || !entryTerm.IsConditional() {
		t.Fatalf("expected entry to end in a conditional branch on a, got %#v", entry.Terminator())
	}

	rhs := blockNamed(t, fn, "land_rhs")
	if _, ok := rhs.Terminator().(*ir.BrInst); !ok {
		t.Fatalf("expected land_rhs to fall through unconditionally, got %#v", rhs.Terminator())
	}

	end := blockNamed(t, fn, "land_end")
	ret, ok := end.Terminator().(*ir.RetInst)
	if !ok {
		t.Fatalf("expected land_end to return, got %#v", end.Terminator())
	}
	phi, ok := ret.Value.(*ir.PhiInst)
	if !ok {
		t.Fatalf("expected the returned value to be a phi, got %T", ret.Value)
	}
	if len(phi.Incoming) != 2 {
		t.Fatalf("expected the phi to merge exactly 2 incoming values, got %d", len(phi.Incoming))
	}
}

// S6 — implicit widening.
func TestImplicitWidening(t *testing.T) {
	m := compile(t, "def w(x: i32): i64 => x")
	fn := findFunction(t, m, "w")
	entry := fn.Blocks()[0]
	ret, ok := entry.Terminator().(*ir.RetInst)
	if !ok {
		t.Fatalf("expected entry to end in ret, got %#v", entry.Terminator())
	}
	cast, ok := ret.Value.(*ir.UnaryInst)
	if !ok || cast.Opcode() != ir.OpSExt {
		t.Fatalf("expected ret to widen x with sext, got %#v", ret.Value)
	}
	if cast.Operand != fn.Arg(0) {
		t.Fatalf("expected the sext operand to be the function's argument")
	}
}
