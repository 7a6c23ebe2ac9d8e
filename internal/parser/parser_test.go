package parser

import (
	"testing"

	"netuno/internal/ast"
	"netuno/internal/lexer"
)

func parse(t *testing.T, src string) *ast.Node {
	t.Helper()
	toks := lexer.New(src).ScanTokens()
	module, rep := New("test.nt", toks).Parse()
	if rep.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %s", src, rep.String())
	}
	return module
}

func TestParseMinimalFunction(t *testing.T) {
	module := parse(t, "def f(): i32 => 42")
	if len(module.Children) != 1 {
		t.Fatalf("expected one top-level declaration, got %d", len(module.Children))
	}
	fn := module.Children[0]
	if fn.Kind != ast.KindDef || fn.Token.Lexeme != "f" {
		t.Fatalf("expected def f, got %+v", fn)
	}
	if fn.Right == nil || fn.Right.Token.Lexeme != "i32" {
		t.Fatalf("expected i32 return type, got %+v", fn.Right)
	}
	body := fn.Left
	if body.Kind != ast.KindBlock || len(body.Children) != 1 {
		t.Fatalf("expected single-statement block body, got %+v", body)
	}
	ret := body.Children[0]
	if ret.Kind != ast.KindReturn || ret.Left.Token.Lexeme != "42" {
		t.Fatalf("expected 'return 42', got %+v", ret)
	}
}

func TestParseIfElse(t *testing.T) {
	module := parse(t, "def f(x: i32): i32 { if x == 0 { return 1 } else { return 2 } }")
	fn := module.Children[0]
	ifNode := fn.Left.Children[0]
	if ifNode.Kind != ast.KindIf {
		t.Fatalf("expected if statement, got %+v", ifNode)
	}
	if ifNode.Condition == nil || ifNode.Condition.Kind != ast.KindBinary {
		t.Fatalf("expected binary condition, got %+v", ifNode.Condition)
	}
	if ifNode.Right == nil {
		t.Fatalf("expected else branch to be present")
	}
}

func TestParseWhileLoop(t *testing.T) {
	module := parse(t, "sub g(n: i32) { var i = 0 while i < n { i = i + 1 } }")
	fn := module.Children[0]
	if fn.Kind != ast.KindSub {
		t.Fatalf("expected sub declaration, got %+v", fn)
	}
	body := fn.Left
	if len(body.Children) != 2 {
		t.Fatalf("expected var decl + while, got %d statements", len(body.Children))
	}
	if body.Children[0].Kind != ast.KindVar {
		t.Fatalf("expected first statement to be var, got %+v", body.Children[0])
	}
	whileNode := body.Children[1]
	if whileNode.Kind != ast.KindWhile {
		t.Fatalf("expected while statement, got %+v", whileNode)
	}
}

func TestParseForDesugarsToBlockVarUntil(t *testing.T) {
	module := parse(t, "sub g() { for i = 0 to 10 { } }")
	fn := module.Children[0]
	forBlock := fn.Left.Children[0]
	if forBlock.Kind != ast.KindBlock {
		t.Fatalf("expected for to desugar into a block, got %+v", forBlock)
	}
	if len(forBlock.Children) != 2 {
		t.Fatalf("expected [var, until], got %d children", len(forBlock.Children))
	}
	if forBlock.Children[0].Kind != ast.KindVar {
		t.Fatalf("expected var as first desugared statement, got %+v", forBlock.Children[0])
	}
	untilNode := forBlock.Children[1]
	if untilNode.Kind != ast.KindUntil {
		t.Fatalf("expected until as second desugared statement, got %+v", untilNode)
	}
	if untilNode.Condition.Token.Lexeme != "==" {
		t.Fatalf("expected the desugared condition to use '==', got %q", untilNode.Condition.Token.Lexeme)
	}
}

func TestParseShortCircuitAnd(t *testing.T) {
	module := parse(t, "def k(a: bool, b: bool): bool => a && b")
	fn := module.Children[0]
	ret := fn.Left.Children[0]
	logical := ret.Left
	if logical.Kind != ast.KindLogical || logical.Token.Lexeme != "&&" {
		t.Fatalf("expected logical '&&' node, got %+v", logical)
	}
}

func TestParseStringConcatCall(t *testing.T) {
	module := parse(t, `def h(): string => "a" + "b"`)
	fn := module.Children[0]
	ret := fn.Left.Children[0]
	binary := ret.Left
	if binary.Kind != ast.KindBinary || binary.Token.Lexeme != "+" {
		t.Fatalf("expected binary '+' node, got %+v", binary)
	}
	if binary.Left.LiteralType != ast.LiteralString || binary.Right.LiteralType != ast.LiteralString {
		t.Fatalf("expected string literal operands, got %+v / %+v", binary.Left, binary.Right)
	}
}

func TestParseSyntaxErrorIsRecoveredAndReported(t *testing.T) {
	toks := lexer.New("def f(: i32 => 1\ndef g(): i32 => 2").ScanTokens()
	module, rep := New("test.nt", toks).Parse()
	if !rep.HasErrors() {
		t.Fatalf("expected a syntax error to be reported")
	}
	found := false
	for _, decl := range module.Children {
		if decl.Kind == ast.KindDef && decl.Token.Lexeme == "g" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected parser to recover and still parse 'g', got %+v", module.Children)
	}
}
