// Package ast implements the AST contract produced by the parser and
// consumed by the resolver and lowering engine: a single uniform node
// shape tagged by class and kind, rather than a family of per-construct
// Go types. This mirrors the original recursive-descent
// parser's NT_NODE, which is one tagged struct for every syntax form.
package ast

import "netuno/internal/token"

// Class is the coarse syntactic category of a Node.
type Class int

const (
	ClassNone Class = iota
	ClassExpr
	ClassStmt
	ClassType
)

// Kind is the specific syntax construct a Node represents.
type Kind int

const (
	KindLiteral Kind = iota
	KindUnary
	KindBinary
	KindVariable
	KindAssign
	KindLogical
	KindGet
	KindCall
	KindBlock
	KindIf
	KindWhile
	KindUntil
	KindFor
	KindReturn
	KindBreak
	KindContinue
	KindDef
	KindSub
	KindVar
	KindGlobal
	KindLocal
	KindExpr
	KindModule
	KindType
	KindImport
	KindPublic
	KindPrivate
	KindParam
	KindNoop
)

// LiteralType tags the shape of a KindLiteral node's value.
type LiteralType int

const (
	LiteralNone LiteralType = iota
	LiteralBool
	LiteralString
	LiteralI32
	LiteralI64
	LiteralU32
	LiteralU64
	LiteralF32
	LiteralF64
)

// Node is the single tagged AST node shape: a class/kind pair, an optional
// literal-type tag, a primary token, up to three named children (Left,
// Right, Condition), an ordered child list for variable-arity
// constructs (block statements, call arguments, parameter lists), and two
// mutable slots the resolver fills in (ExpressionType, UserData).
type Node struct {
	Class       Class
	Kind        Kind
	LiteralType LiteralType

	Token Token

	Left      *Node
	Right     *Node
	Condition *Node

	Children []*Node

	// ExpressionType is opaque to this package: the resolver stamps it
	// with a *srctype.Type (see package srctype) and the lowering engine
	// reads it back. Kept as any to avoid an import cycle between ast and
	// the resolver's type package.
	ExpressionType any
	UserData       any
}

// Token carries a node's primary lexeme and source line, copied out of
// the scanner's token stream at parse time.
type Token struct {
	Lexeme string
	Line   int
	Kind   token.Type
}

func TokenFrom(t token.Token) Token {
	return Token{Lexeme: t.Lexeme, Line: t.Line, Kind: t.Type}
}
