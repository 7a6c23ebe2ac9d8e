package codegen

import (
	"netuno/internal/ast"
	"netuno/internal/ir"
	"netuno/internal/report"
	"netuno/internal/scope"
	"netuno/internal/srctype"
)

// statement lowers one statement node. Mirrors statement() in
// nir_codegen.c's top-level per-kind dispatch; a KindFor node never
// reaches here, since the parser desugars for-loops into a block/var/
// until triple before the resolver or this package ever sees them.
func (e *Engine) statement(node *ast.Node) {
	switch node.Kind {
	case ast.KindExpr:
		e.expr(node.Left)
	case ast.KindBlock:
		e.blockStatement(node)
	case ast.KindIf:
		e.ifStatement(node)
	case ast.KindWhile:
		e.loopStatement(node, false)
	case ast.KindUntil:
		e.loopStatement(node, true)
	case ast.KindVar, ast.KindGlobal:
		e.declareVariable(node)
	case ast.KindReturn:
		e.returnStatement(node)
	case ast.KindBreak:
		e.breakStatement(node)
	case ast.KindContinue:
		e.continueStatement(node)
	default:
		e.errorf(report.FlowError, node, "invalid statement kind %v", node.Kind)
	}
}

// blockStatement opens a nested scope and lowers every child statement in
// order, stopping early once the current block gains a terminator (code
// past a return/break/continue is unreachable, so there is nothing left
// to lower into it). Mirrors blockStatment in nir_codegen.c.
func (e *Engine) blockStatement(node *ast.Node) {
	save := e.cur
	e.cur = scope.New(e.cur, scope.TagNone)
	for _, stmt := range node.Children {
		if e.block.HasTerminator() {
			break
		}
		e.statement(stmt)
	}
	e.cur = save
}

// ifStatement lowers if/else into then/else/ifcont blocks, mirroring
// ifStatement in nir_codegen.c. With no else branch, ifcont doubles as
// the false target directly.
func (e *Engine) ifStatement(node *ast.Node) {
	condVal := e.expr(node.Condition)
	condBool := e.typeToBool(node.Condition, e.exprType(node.Condition), condVal)

	entry := e.block
	thenBlock := e.fn.AppendBlock("then")
	contBlock := e.fn.AppendBlock("ifcont")

	elseBlock := contBlock
	if node.Right != nil {
		elseBlock = e.fn.AppendBlock("else")
	}

	entry.NewCondBr(condBool, thenBlock, elseBlock)
	thenBlock.AddPredecessor(entry)
	elseBlock.AddPredecessor(entry)

	e.block = thenBlock
	e.statement(node.Left)
	if !e.block.HasTerminator() {
		e.block.NewBr(contBlock)
		contBlock.AddPredecessor(e.block)
	}

	if node.Right != nil {
		e.block = elseBlock
		e.statement(node.Right)
		if !e.block.HasTerminator() {
			e.block.NewBr(contBlock)
			contBlock.AddPredecessor(e.block)
		}
	}

	e.block = contBlock
}

// loopStatement lowers while (until=false) and until (until=true) into
// loop/loopcont/loopend blocks. until only differs from while in which
// target the condition's branch takes on true vs false.
func (e *Engine) loopStatement(node *ast.Node, until bool) {
	entry := e.block
	loopBlock := e.fn.AppendBlock("loop")
	bodyBlock := e.fn.AppendBlock("loopcont")
	endBlock := e.fn.AppendBlock("loopend")

	entry.NewBr(loopBlock)
	loopBlock.AddPredecessor(entry)

	e.block = loopBlock
	condVal := e.expr(node.Condition)
	condBool := e.typeToBool(node.Condition, e.exprType(node.Condition), condVal)
	condEnd := e.block
	if until {
		condEnd.NewCondBr(condBool, endBlock, bodyBlock)
	} else {
		condEnd.NewCondBr(condBool, bodyBlock, endBlock)
	}
	bodyBlock.AddPredecessor(condEnd)
	endBlock.AddPredecessor(condEnd)

	save := e.cur
	loopScope := scope.New(e.cur, scope.TagBreakable)
	loopScope.Loop = loopBlock
	loopScope.EndLoop = endBlock
	e.cur = loopScope

	e.block = bodyBlock
	e.statement(node.Left)
	if !e.block.HasTerminator() {
		e.block.NewBr(loopBlock)
		loopBlock.AddPredecessor(e.block)
	}
	e.cur = save

	e.block = endBlock
}

// breakStatement branches to the nearest breakable scope's end-of-loop
// block.
func (e *Engine) breakStatement(node *ast.Node) {
	target := e.cur.NearestBreakable()
	if target == nil {
		e.errorf(report.FlowError, node, "'break' outside a loop")
		return
	}
	e.block.NewBr(target.EndLoop)
	target.EndLoop.AddPredecessor(e.block)
}

// continueStatement branches back to the nearest breakable scope's
// condition-test block.
func (e *Engine) continueStatement(node *ast.Node) {
	target := e.cur.NearestBreakable()
	if target == nil {
		e.errorf(report.FlowError, node, "'continue' outside a loop")
		return
	}
	e.block.NewBr(target.Loop)
	target.Loop.AddPredecessor(e.block)
}

// returnStatement emits the ret instruction and moves the active scope
// back to the enclosing function scope. In this engine
// the terminator check in blockStatement/declareFunction's body loop
// already keeps later sibling statements from lowering at all, so this
// is defense in depth rather than load-bearing.
func (e *Engine) returnStatement(node *ast.Node) {
	var val ir.Value
	if node.Left != nil {
		val = e.expr(node.Left)
		if e.returnType != nil && e.returnType.ID != srctype.Void {
			val = e.cast(node.Left, val, e.exprType(node.Left), e.returnType)
		}
	}
	e.block.NewRet(val)
	if fnScope := e.cur.NearestFunction(); fnScope != nil {
		e.cur = fnScope
	}
}

// declareVariable lowers a var/global declaration: an alloca named after
// the variable, an immediate store of the initializer if present, and a
// scope symbol recording the alloca pointer. Mirrors declareVariable in
// nir_codegen.c.
//
// Deliberate extension: a global declared at module scope (outside any
// function) has no enclosing block to alloca into, since this IR's
// Module holds only functions (global is just a symbol-kind bit, no
// separate IR memory class). nir_codegen.c's
// declaration() dispatcher never reaches NK_GLOBAL at module scope at
// all (only NK_VAR, inside a body), so the original gives no guidance
// here. This engine lazily creates a "$init" function whose entry block
// collects every top-level global's alloca+store, keeping the "no
// separate memory class" rule intact instead of inventing a new one.
func (e *Engine) declareVariable(node *ast.Node) {
	target := e.cur
	if node.Kind == ast.KindGlobal {
		target = e.global
	}

	var t *srctype.Type
	switch {
	case node.Left != nil:
		t = e.findType(node.Left)
		if node.Right != nil {
			initType := e.exprType(node.Right)
			if !t.Equals(initType) {
				e.errorf(report.TypeMismatch, node, "%q is declared as %s but initialized with %s", node.Token.Lexeme, t, initType)
				return
			}
		}
	case node.Right != nil:
		t = e.exprType(node.Right)
	default:
		e.errorf(report.TypeMismatch, node, "%q needs a type annotation or an initializer", node.Token.Lexeme)
		return
	}

	topLevel := e.block == nil
	if topLevel {
		e.ensureInitFn()
		e.fn, e.block = e.initFn, e.initBlock
	}

	irType := e.toIRType(t)
	ptr := e.block.NewAlloca(node.Token.Lexeme, irType, 1)
	if node.Right != nil {
		e.block.NewStore(e.expr(node.Right), ptr)
	}
	target.Insert(scope.Symbol{Name: node.Token.Lexeme, Kind: scope.KindVariable, Type: irType, Value: ptr})

	if topLevel {
		e.initBlock = e.block
		e.fn, e.block = nil, nil
	}
}

// ensureInitFn lazily creates the synthetic module-initializer function
// that module-scope global declarations alloca into.
func (e *Engine) ensureInitFn() {
	if e.initFn != nil {
		return
	}
	ft := e.ctx.GetFunctionType(e.ctx.VoidType(), nil, false).(*ir.FunctionType)
	e.initFn = e.module.GetOrInsertFunction("$init", ft)
	e.initBlock = e.initFn.AppendBlock("entry")
}

// declareFunction lowers a def/sub declaration: a function type built
// from the parameter annotations and the return type the resolver
// already settled (stored on node.Left.ExpressionType: the declared
// annotation when present, otherwise the fold of every return
// statement in the body), one argument symbol per
// parameter, the body, and a trailing ret if the body falls through
// unterminated. Mirrors declareFunction/addFunction in nir_codegen.c,
// simplified because the resolver has already settled the return type in
// a separate pass instead of this engine inferring it on the fly.
func (e *Engine) declareFunction(node *ast.Node, isFunction bool) {
	paramTypes := make([]ir.Type, len(node.Children))
	for i, param := range node.Children {
		paramTypes[i] = e.toIRType(e.findType(param.Right))
	}

	returnType := srctype.VoidT()
	if isFunction {
		if t, ok := node.Left.ExpressionType.(*srctype.Type); ok && t != nil && t.ID != srctype.Undefined {
			returnType = t
		}
	}

	name := node.Token.Lexeme
	ft := e.ctx.GetFunctionType(e.toIRType(returnType), paramTypes, false).(*ir.FunctionType)
	fn := e.module.GetOrInsertFunction(name, ft)

	kind := scope.KindSubroutine
	if isFunction {
		kind = scope.KindFunction
	}
	if e.public {
		kind |= scope.KindPublic
	} else {
		kind |= scope.KindPrivate
	}
	sym := scope.Symbol{Name: name, Kind: kind, Type: ft, Value: fn}
	if !e.global.Insert(sym) {
		e.global.Update(sym)
	}

	entry := fn.AppendBlock("entry")

	savedFn, savedBlock, savedScope, savedReturnType := e.fn, e.block, e.cur, e.returnType
	tag := scope.TagMethod
	if isFunction {
		tag = scope.TagFunction
	}
	fnScope := scope.New(e.global, tag)
	e.fn, e.block, e.cur, e.returnType = fn, entry, fnScope, returnType

	for i, param := range node.Children {
		fnScope.Insert(scope.Symbol{Name: param.Token.Lexeme, Kind: scope.KindParameter, Type: paramTypes[i], Value: fn.Arg(i)})
	}

	for _, stmt := range node.Left.Children {
		if e.block.HasTerminator() {
			break
		}
		e.statement(stmt)
	}

	// A reachable last block (the entry block, or one some branch
	// targets) that is still unterminated, as at the normal end of a
	// sub's body, gets a trailing void ret. An unreachable one, such as
	// the ifcont after an if/else whose branches both returned, is left
	// empty.
	if !e.block.HasTerminator() && (e.block == entry || e.block.PredecessorCount() > 0) {
		e.block.NewRet(nil)
	}

	e.fn, e.block, e.cur, e.returnType = savedFn, savedBlock, savedScope, savedReturnType
}
