// Package resolver implements two interleaved jobs over an ast.Node
// tree: memoized expression-type evaluation and weak forward
// declaration of def/sub symbols, grounded on
// original_source/ntc/source/resolver.c (ntEvalExprType, the
// declareWeakFunction/addWeakFunction weak-then-strong reinsertion
// dance, and ntEvalBlockReturnType's unique-return-type-per-block rule).
package resolver

import (
	"netuno/internal/ast"
	"netuno/internal/report"
	"netuno/internal/scope"
	"netuno/internal/srctype"
)

// Resolver walks one module's AST, stamping every expression node's
// ExpressionType and building a scope chain of weak (then strengthened)
// symbols for the lowering engine to re-derive structurally.
type Resolver struct {
	file   string
	rep    *report.Report
	global *scope.Scope
	cur    *scope.Scope

	// externs resolves qualified builtin names ("string.concat",
	// "console.write", ...) to their delegate type, populated by whatever
	// wires internal/stdtypes's declarations in before Resolve runs.
	externs map[string]*srctype.Type

	public bool
}

func New(file string, externs map[string]*srctype.Type) *Resolver {
	global := scope.New(nil, scope.TagNone)
	if externs == nil {
		externs = map[string]*srctype.Type{}
	}
	return &Resolver{file: file, rep: report.New(), global: global, cur: global, externs: externs}
}

// Scope returns the resolver's root scope, for inspection or for the
// lowering engine to consult weak function signatures across files.
func (r *Resolver) Scope() *scope.Scope { return r.global }

// SeedGlobal inserts syms (typically another file's Scope().Symbols(),
// of the same assembly) into this resolver's global scope before
// Resolve runs, so an earlier file's top-level declarations are visible
// to a later file without re-parsing it.
func (r *Resolver) SeedGlobal(syms []scope.Symbol) {
	for _, sym := range syms {
		if !r.global.Insert(sym) {
			r.global.Update(sym)
		}
	}
}

func (r *Resolver) errorf(kind report.Kind, node *ast.Node, format string, args ...any) {
	r.rep.Addf(kind, r.file, node.Token.Line, format, args...)
}

// Resolve type-checks and scope-populates an entire module node
// (ast.KindModule), returning the diagnostics collected.
func (r *Resolver) Resolve(module *ast.Node) *report.Report {
	for _, stmt := range module.Children {
		switch stmt.Kind {
		case ast.KindPublic:
			r.public = true
		case ast.KindPrivate:
			r.public = false
		default:
			r.declaration(stmt)
		}
	}
	return r.rep
}

func (r *Resolver) declaration(node *ast.Node) {
	switch node.Kind {
	case ast.KindDef:
		r.declareFunction(node, true)
	case ast.KindSub:
		r.declareFunction(node, false)
	case ast.KindVar, ast.KindGlobal:
		r.varStatement(node)
	case ast.KindImport:
		// Import resolution against a module registry is out of scope
		// for a single-module resolve; the driver seeds each file's
		// resolver with the top-level symbols of the files resolved
		// before it.
	}
}

// findType resolves a type-annotation node (ast.KindType) to its
// srctype.Type, per findType in resolver.c.
func (r *Resolver) findType(node *ast.Node) *srctype.Type {
	switch node.Token.Lexeme {
	case "bool":
		return srctype.BoolT()
	case "i32":
		return srctype.I32T()
	case "i64":
		return srctype.I64T()
	case "u32":
		return srctype.U32T()
	case "u64":
		return srctype.U64T()
	case "f32":
		return srctype.F32T()
	case "f64":
		return srctype.F64T()
	case "string":
		return srctype.StringT()
	case "object":
		return srctype.ObjectT()
	default:
		r.errorf(report.TypeMismatch, node, "the type %q does not exist", node.Token.Lexeme)
		return srctype.Error_()
	}
}
