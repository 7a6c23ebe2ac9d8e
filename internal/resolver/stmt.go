package resolver

import (
	"netuno/internal/ast"
	"netuno/internal/report"
	"netuno/internal/scope"
	"netuno/internal/srctype"
)

// statement resolves one statement node and returns the type it
// guarantees on every path through it (srctype.Undefined_() if the
// statement never returns), the building block evalBlockReturnType and
// evalIfReturnType compose in resolver.c.
func (r *Resolver) statement(node *ast.Node) *srctype.Type {
	switch node.Kind {
	case ast.KindExpr:
		r.EvalExprType(node.Left)
		return srctype.Undefined_()
	case ast.KindBlock:
		return r.blockStatement(node)
	case ast.KindIf:
		return r.ifStatement(node)
	case ast.KindWhile, ast.KindUntil:
		r.loopStatement(node)
		return srctype.Undefined_()
	case ast.KindVar, ast.KindGlobal:
		r.varStatement(node)
		return srctype.Undefined_()
	case ast.KindReturn:
		return r.returnStatement(node)
	case ast.KindBreak, ast.KindContinue:
		return srctype.Undefined_()
	default:
		r.errorf(report.FlowError, node, "invalid statement kind %v", node.Kind)
		return srctype.Undefined_()
	}
}

// blockStatement opens a nested scope, resolves every child statement,
// and folds their return contributions into one type: the block's
// return type is the first non-undefined type any child statement
// guarantees, and a later conflicting type is a diagnosed error.
// Mirrors ntEvalBlockReturnType's uniqueness rule.
func (r *Resolver) blockStatement(node *ast.Node) *srctype.Type {
	child := scope.New(r.cur, scope.TagNone)
	save := r.cur
	r.cur = child

	result := srctype.Undefined_()
	for _, stmt := range node.Children {
		t := r.statement(stmt)
		result = r.foldReturn(stmt, result, t)
	}

	r.cur = save
	node.ExpressionType = result
	return result
}

// foldReturn combines acc (the block's return type so far) with next
// (the type just-resolved statement contributes), diagnosing a type
// mismatch if both are defined and disagree.
func (r *Resolver) foldReturn(node *ast.Node, acc, next *srctype.Type) *srctype.Type {
	if next.ID == srctype.Undefined {
		return acc
	}
	if acc.ID == srctype.Undefined {
		return next
	}
	if !acc.Equals(next) {
		r.errorf(report.TypeMismatch, node, "a block cannot return both %s and %s", acc, next)
		return srctype.Error_()
	}
	return acc
}

// ifStatement resolves the condition and both branches. The if/else
// only guarantees a return on every path when it has an else branch
// and both branches agree on the returned type; a bare "if" (no else)
// never counts as guaranteed, matching evalIfReturnType.
func (r *Resolver) ifStatement(node *ast.Node) *srctype.Type {
	r.EvalExprType(node.Condition)
	thenType := r.statement(node.Left)
	if node.Right == nil {
		return srctype.Undefined_()
	}
	elseType := r.statement(node.Right)
	if thenType.ID == srctype.Undefined || elseType.ID == srctype.Undefined {
		return srctype.Undefined_()
	}
	if !thenType.Equals(elseType) {
		r.errorf(report.TypeMismatch, node, "if/else branches must return the same type, got %s and %s", thenType, elseType)
		return srctype.Error_()
	}
	return thenType
}

// loopStatement resolves a while/until body in its own breakable
// scope. A loop body's return type never escapes to its enclosing
// block, since the loop may run zero times.
func (r *Resolver) loopStatement(node *ast.Node) {
	child := scope.New(r.cur, scope.TagBreakable)
	save := r.cur
	r.cur = child
	r.statement(node.Left)
	r.cur = save
	r.EvalExprType(node.Condition)
}

func (r *Resolver) returnStatement(node *ast.Node) *srctype.Type {
	if node.Left == nil {
		return srctype.VoidT()
	}
	t := r.EvalExprType(node.Left)
	switch t.ID {
	case srctype.Undefined:
		r.errorf(report.TypeMismatch, node, "return statement's expression has no type")
		return srctype.Error_()
	case srctype.Void:
		r.errorf(report.TypeMismatch, node, "return statement's expression cannot be void")
		return srctype.Error_()
	default:
		return t
	}
}

// varStatement declares a local (or, for KindGlobal, a module-global)
// weak variable symbol. Mirrors varStatement in resolver.c: either the
// annotation and the initializer must agree, or whichever of the two
// is present supplies the variable's type.
func (r *Resolver) varStatement(node *ast.Node) {
	target := r.cur
	if node.Kind == ast.KindGlobal {
		target = r.global
	}

	var typ *srctype.Type
	switch {
	case node.Left != nil && node.Right != nil:
		typ = r.findType(node.Left)
		initType := r.EvalExprType(node.Right)
		if !typ.Equals(initType) {
			r.errorf(report.TypeMismatch, node, "%q is declared as %s but initialized with %s", node.Token.Lexeme, typ, initType)
			return
		}
	case node.Left != nil:
		typ = r.findType(node.Left)
	case node.Right != nil:
		typ = r.EvalExprType(node.Right)
	default:
		r.errorf(report.TypeMismatch, node, "%q needs a type annotation or an initializer", node.Token.Lexeme)
		return
	}

	target.Insert(scope.Symbol{Name: node.Token.Lexeme, Kind: scope.KindVariable, SrcType: typ, Weak: true})
}

// declareFunction resolves a def/sub declaration: its parameters are
// inserted as weak symbols in a fresh function scope, the function
// itself is forward-declared (weak) into the enclosing scope so that a
// recursive call inside the body type-checks, and then the body is
// walked and the forward declaration is replaced with a non-weak symbol
// carrying the final return type. Only a sub or a def with a return-type
// annotation is forward-declared; a def without one is not visible to
// its own body, so a recursive call in it is an undeclared symbol.
// Grounded on
// declareWeakFunction/addWeakFunction in resolver.c.
//
// Deviation: the original never pops the scope chain back to the
// enclosing scope at the end of a "def" (only a "sub" does). Left
// as-is, every def after the first would resolve against a stale,
// already-exited scope. This resolver always restores the enclosing
// scope once the body has been walked.
func (r *Resolver) declareFunction(node *ast.Node, isFunction bool) {
	tag := scope.TagMethod
	if isFunction {
		tag = scope.TagFunction
	}
	fnScope := scope.New(r.cur, tag)
	enclosing := r.cur
	r.cur = fnScope

	paramTypes := make([]*srctype.Type, 0, len(node.Children))
	for _, param := range node.Children {
		t := r.findType(param.Right)
		paramTypes = append(paramTypes, t)
		fnScope.Insert(scope.Symbol{Name: param.Token.Lexeme, Kind: scope.KindParameter, SrcType: t, Weak: true})
	}

	name := node.Token.Lexeme
	symbolKind := scope.KindSubroutine
	if isFunction {
		symbolKind = scope.KindFunction
	}
	if r.public {
		symbolKind |= scope.KindPublic
	} else {
		symbolKind |= scope.KindPrivate
	}

	var declared *srctype.Type
	if isFunction && node.Right != nil {
		declared = r.findType(node.Right)
		addWeakFunction(enclosing, name, symbolKind, srctype.NewDelegate(declared, paramTypes, false))
	} else if !isFunction {
		addWeakFunction(enclosing, name, symbolKind, srctype.NewDelegate(srctype.VoidT(), paramTypes, false))
	}

	hasReturn := false
	inferred := srctype.Undefined_()
	for _, stmt := range node.Left.Children {
		t := r.statement(stmt)
		if t.ID != srctype.Undefined {
			hasReturn = true
		}
		inferred = r.foldReturn(stmt, inferred, t)
	}

	r.cur = enclosing

	// returnType is either the declared return type or the block's
	// inferred return type: an explicit annotation wins over the fold of
	// the body's own return statements, so the lowering
	// engine can insert whatever implicit cast (e.g. widening an i32
	// return expression to a declared i64 with sext) makes every return
	// statement's value match the declared signature. A declared type
	// the body's inferred type cannot be cast to is left for codegen's
	// cast() to diagnose, rather than re-validated here.
	returnType := srctype.VoidT()
	if isFunction {
		switch {
		case declared != nil:
			returnType = declared
		case inferred.ID != srctype.Undefined:
			returnType = inferred
		}
		if !hasReturn {
			r.errorf(report.FlowError, node, "%q doesn't return a value on all code paths", name)
		}
	}
	node.Left.ExpressionType = returnType

	final := scope.Symbol{Name: name, Kind: symbolKind, SrcType: srctype.NewDelegate(returnType, paramTypes, false)}
	if !enclosing.Insert(final) {
		enclosing.Update(final)
	}
}

// addWeakFunction inserts sym as a new weak symbol, or, if a symbol by
// that name already exists (for example one seeded from an earlier
// file), updates it in place. Mirrors addWeakFunction's insert-then-fallback-to-update
// in resolver.c.
func addWeakFunction(s *scope.Scope, name string, kind scope.Kind, delegate *srctype.Type) {
	sym := scope.Symbol{Name: name, Kind: kind, SrcType: delegate, Weak: true}
	if !s.Insert(sym) {
		s.Update(sym)
	}
}
