package lexer

import (
	"testing"

	"netuno/internal/token"
)

func typesOf(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks := New("def main i32 x").ScanTokens()
	if toks[0].Type != token.Keyword || toks[0].Keyword != token.KwDef {
		t.Fatalf("expected 'def' to scan as KwDef, got %+v", toks[0])
	}
	if toks[1].Type != token.Identifier || toks[1].Lexeme != "main" {
		t.Fatalf("expected 'main' to scan as an identifier, got %+v", toks[1])
	}
	if toks[2].Type != token.Keyword || toks[2].Keyword != token.KwI32 {
		t.Fatalf("expected 'i32' to scan as KwI32, got %+v", toks[2])
	}
}

func TestScanNumberSuffixes(t *testing.T) {
	cases := []struct {
		src  string
		want token.Type
	}{
		{"42", token.LiteralI32},
		{"42i", token.LiteralI32},
		{"42u", token.LiteralU32},
		{"42ul", token.LiteralU64},
		{"42l", token.LiteralI64},
		{"3.14", token.LiteralF64},
		{"3.14f", token.LiteralF32},
	}
	for _, c := range cases {
		toks := New(c.src).ScanTokens()
		if toks[0].Type != c.want {
			t.Errorf("scanning %q: got type %v, want %v", c.src, toks[0].Type, c.want)
		}
	}
}

func TestScanStringLiteral(t *testing.T) {
	toks := New(`"hello world"`).ScanTokens()
	if toks[0].Type != token.LiteralString || toks[0].Lexeme != "hello world" {
		t.Fatalf("unexpected string token: %+v", toks[0])
	}
}

func TestScanLineCommentsAndLineNumbers(t *testing.T) {
	toks := New("var x = 1 // comment\nvar y = 2").ScanTokens()
	var secondVarLine int
	count := 0
	for _, tk := range toks {
		if tk.Type == token.Keyword && tk.Keyword == token.KwVar {
			count++
			if count == 2 {
				secondVarLine = tk.Line
			}
		}
	}
	if secondVarLine != 2 {
		t.Fatalf("expected second 'var' on line 2, got line %d", secondVarLine)
	}
}

func TestScanOperators(t *testing.T) {
	toks := New("== != <= >= && ||").ScanTokens()
	want := []string{"==", "!=", "<=", ">=", "&&", "||"}
	for i, w := range want {
		if toks[i].Lexeme != w {
			t.Errorf("token %d: got lexeme %q, want %q", i, toks[i].Lexeme, w)
		}
	}
}

func TestScanTerminatesWithEOF(t *testing.T) {
	toks := New("x").ScanTokens()
	if toks[len(toks)-1].Type != token.EOF {
		t.Fatalf("expected last token to be EOF, got %+v", toks[len(toks)-1])
	}
}
