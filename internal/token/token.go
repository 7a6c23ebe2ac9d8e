// Package token defines the token contract produced by the scanner and
// consumed by the parser: a type, an optional keyword id, a source
// line, and the lexeme slice.
package token

// Type is the coarse classification of a token.
type Type int

const (
	Error Type = iota
	EOF
	Keyword
	Identifier
	LiteralI32
	LiteralU32
	LiteralI64
	LiteralU64
	LiteralF32
	LiteralF64
	LiteralString
	LiteralChar
	Symbol
	None
)

func (t Type) String() string {
	switch t {
	case Error:
		return "error"
	case EOF:
		return "eof"
	case Keyword:
		return "keyword"
	case Identifier:
		return "identifier"
	case LiteralI32:
		return "i32"
	case LiteralU32:
		return "u32"
	case LiteralI64:
		return "i64"
	case LiteralU64:
		return "u64"
	case LiteralF32:
		return "f32"
	case LiteralF64:
		return "f64"
	case LiteralString:
		return "string"
	case LiteralChar:
		return "char"
	case Symbol:
		return "symbol"
	case None:
		return "none"
	default:
		return "<unknown token type>"
	}
}

// Keyword identifies a reserved word; zero value is not a keyword.
type Keyword int

const (
	NoKeyword Keyword = iota
	KwDef
	KwSub
	KwVar
	KwGlobal
	KwIf
	KwElse
	KwWhile
	KwUntil
	KwFor
	KwTo
	KwStep
	KwReturn
	KwBreak
	KwContinue
	KwImport
	KwPublic
	KwPrivate
	KwTrue
	KwFalse
	KwNone
	KwBool
	KwI32
	KwI64
	KwU32
	KwU64
	KwF32
	KwF64
	KwString
	KwObject
)

// Keywords maps every reserved word's lexeme to its Keyword id.
var Keywords = map[string]Keyword{
	"def":      KwDef,
	"sub":      KwSub,
	"var":      KwVar,
	"global":   KwGlobal,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"until":    KwUntil,
	"for":      KwFor,
	"to":       KwTo,
	"step":     KwStep,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
	"import":   KwImport,
	"public":   KwPublic,
	"private":  KwPrivate,
	"true":     KwTrue,
	"false":    KwFalse,
	"none":     KwNone,
	"bool":     KwBool,
	"i32":      KwI32,
	"i64":      KwI64,
	"u32":      KwU32,
	"u64":      KwU64,
	"f32":      KwF32,
	"f64":      KwF64,
	"string":   KwString,
	"object":   KwObject,
}

// Token is one lexical unit: its type, an optional keyword id, a source
// line, and the lexeme slice it was scanned from.
type Token struct {
	Type    Type
	Keyword Keyword
	Line    int
	Lexeme  string
}

func (t Token) String() string {
	return t.Lexeme
}
