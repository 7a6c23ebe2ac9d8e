// Package codegen is the lowering engine: it walks a resolved ast.Node
// tree and builds an internal/ir.Module from it. Grounded on
// original_source/ntc/source/nir_codegen.c.
package codegen

import (
	"netuno/internal/ast"
	"netuno/internal/ir"
	"netuno/internal/report"
	"netuno/internal/scope"
	"netuno/internal/srctype"
)

// Engine owns the cursor into the IR being built: the current context,
// module, function, insertion block, and scope chain. One Engine lowers
// exactly one ast.KindModule node.
type Engine struct {
	ctx    *ir.Context
	module *ir.Module
	fn     *ir.Function
	block  *ir.BasicBlock

	file string
	rep  *report.Report

	global *scope.Scope
	cur    *scope.Scope

	// initFn/initBlock back the synthetic "$init" function that
	// module-scope global declarations alloca into; see declareVariable.
	initFn    *ir.Function
	initBlock *ir.BasicBlock

	// externs resolves qualified builtin names ("string.concat",
	// "string.to_i32", ...) to the ir.Function backing them, populated by
	// whatever wires internal/stdtypes's declarations in before
	// LowerModule runs.
	externs map[string]*ir.Function

	// returnType is the enclosing def/sub's declared or inferred return
	// type, consulted by returnStatement to cast a return expression's
	// value up to the function's signature.
	returnType *srctype.Type

	public bool
}

// New creates an Engine that lowers into ctx, sharing externs (an
// extern name -> ir.Function table, typically built once per compile
// run and reused across every file's Engine) across files of the same
// assembly.
func New(ctx *ir.Context, file string, externs map[string]*ir.Function) *Engine {
	if externs == nil {
		externs = map[string]*ir.Function{}
	}
	global := scope.New(nil, scope.TagNone)
	return &Engine{ctx: ctx, file: file, rep: report.New(), global: global, cur: global, externs: externs}
}

// Scope returns the engine's root scope, so a driver lowering several
// files of one assembly can seed later Engines with earlier ones'
// top-level declarations.
func (e *Engine) Scope() *scope.Scope { return e.global }

// SeedGlobal inserts syms (typically another file's Scope().Symbols(),
// of the same assembly) into this engine's global scope before
// LowerModule runs, so calls/references to a function or global
// defined in an earlier file resolve against its already-built
// *ir.Function or alloca *ir.Value instead of failing lookup.
func (e *Engine) SeedGlobal(syms []scope.Symbol) {
	for _, sym := range syms {
		if !e.global.Insert(sym) {
			e.global.Update(sym)
		}
	}
}

func (e *Engine) errorf(kind report.Kind, node *ast.Node, format string, args ...any) {
	e.rep.Addf(kind, e.file, node.Token.Line, format, args...)
}

// exprType reads node's memoized type, stamped by the resolver before
// LowerModule runs. A missing annotation is a programming error (the
// resolver must run first), surfaced as an ir-invariant diagnostic
// rather than a panic so one malformed node doesn't abort the whole
// compile run.
func (e *Engine) exprType(node *ast.Node) *srctype.Type {
	if t, ok := node.ExpressionType.(*srctype.Type); ok && t != nil {
		return t
	}
	e.errorf(report.IRInvariant, node, "node has no resolved expression type; the resolver must run before lowering")
	return srctype.Error_()
}

// LowerModule creates an IR module mirroring module's name, walks every
// top-level declaration, and returns the built module together with the
// diagnostics collected. A report with any error means the caller
// should discard the returned module.
func (e *Engine) LowerModule(module *ast.Node) (mod *ir.Module, rep *report.Report) {
	defer func() {
		if r := recover(); r != nil {
			if inv, ok := r.(*ir.InvariantError); ok {
				e.rep.Addf(report.IRInvariant, e.file, 0, "%s", inv.Error())
				mod, rep = nil, e.rep
				return
			}
			panic(r)
		}
	}()

	e.module = ir.NewModule(e.ctx, module.Token.Lexeme)

	for _, stmt := range module.Children {
		switch stmt.Kind {
		case ast.KindPublic:
			e.public = true
		case ast.KindPrivate:
			e.public = false
		default:
			e.declaration(stmt)
		}
	}

	if e.rep.HasErrors() {
		return nil, e.rep
	}
	return e.module, e.rep
}

func (e *Engine) declaration(node *ast.Node) {
	switch node.Kind {
	case ast.KindDef:
		e.declareFunction(node, true)
	case ast.KindSub:
		e.declareFunction(node, false)
	case ast.KindVar, ast.KindGlobal:
		e.declareVariable(node)
	case ast.KindImport:
		// Import statements lower to nothing. Cross-file visibility
		// comes from the driver, which seeds each file's engine with
		// the top-level symbols of the files lowered before it.
	default:
		e.errorf(report.FlowError, node, "expected a declaration")
	}
}

// findType resolves a type-annotation node (ast.KindType) to its
// srctype.Type, mirroring findType in nir_codegen.c's primitive branch
// (the object/symbol-table branch is handled by stdtypes wiring, not
// by this package, since this compiler has no user-defined object
// types yet).
func (e *Engine) findType(node *ast.Node) *srctype.Type {
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
		e.errorf(report.TypeMismatch, node, "the type %q does not exist", node.Token.Lexeme)
		return srctype.Error_()
	}
}

// toIRType maps a Netuno source type to its IR counterpart, mirroring
// toNirType in nir_codegen.c.
func (e *Engine) toIRType(t *srctype.Type) ir.Type {
	switch t.ID {
	case srctype.Void:
		return e.ctx.VoidType()
	case srctype.String:
		return e.ctx.GetPointerTo(e.ctx.Int32Type())
	case srctype.F64:
		return e.ctx.DoubleType()
	case srctype.F32:
		return e.ctx.FloatType()
	case srctype.I64, srctype.U64:
		return e.ctx.Int64Type()
	case srctype.I32, srctype.U32:
		return e.ctx.Int32Type()
	case srctype.Bool:
		return e.ctx.Int1Type()
	case srctype.Object:
		return e.ctx.OpaquePointerType()
	case srctype.Delegate:
		params := make([]ir.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = e.toIRType(p)
		}
		return e.ctx.GetFunctionType(e.toIRType(t.Return), params, t.IsVarArg)
	default:
		return e.ctx.ErrorType()
	}
}
