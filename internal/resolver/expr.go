package resolver

import (
	"netuno/internal/ast"
	"netuno/internal/report"
	"netuno/internal/srctype"
)

var literalTypeOf = map[ast.LiteralType]func() *srctype.Type{
	ast.LiteralBool:   srctype.BoolT,
	ast.LiteralString: srctype.StringT,
	ast.LiteralI32:    srctype.I32T,
	ast.LiteralI64:    srctype.I64T,
	ast.LiteralU32:    srctype.U32T,
	ast.LiteralU64:    srctype.U64T,
	ast.LiteralF32:    srctype.F32T,
	ast.LiteralF64:    srctype.F64T,
}

// EvalExprType evaluates and memoizes node's type, following the rules
// of ntEvalExprType in resolver.c. Safe to call repeatedly on the same
// node; the second call returns the cached type.
func (r *Resolver) EvalExprType(node *ast.Node) *srctype.Type {
	if t, ok := node.ExpressionType.(*srctype.Type); ok && t != nil {
		return t
	}

	left, right := srctype.Undefined_(), srctype.Undefined_()
	if node.Left != nil {
		left = r.EvalExprType(node.Left)
	}
	if node.Right != nil {
		right = r.EvalExprType(node.Right)
	}

	var result *srctype.Type
	switch node.Kind {
	case ast.KindLiteral:
		ctor, ok := literalTypeOf[node.LiteralType]
		if !ok {
			r.errorf(report.TypeMismatch, node, "invalid literal type tag %v", node.LiteralType)
			result = srctype.Error_()
			break
		}
		result = ctor()

	case ast.KindUnary:
		result = r.evalUnary(node, left)

	case ast.KindBinary:
		result = r.evalBinary(node, left, right)

	case ast.KindLogical:
		switch node.Token.Lexeme {
		case "&&", "||":
			result = srctype.BoolT()
		default:
			r.errorf(report.TypeMismatch, node, "invalid logical operator %q", node.Token.Lexeme)
			result = srctype.Error_()
		}

	case ast.KindGet:
		result = r.evalGet(node, left)

	case ast.KindCall:
		result = r.evalCall(node, left)

	case ast.KindVariable:
		result = r.evalVariable(node)

	case ast.KindAssign:
		if !left.Equals(right) {
			r.errorf(report.TypeMismatch, node, "cannot assign a value of type %s to a variable of type %s", right, left)
			result = srctype.Error_()
			break
		}
		result = left

	default:
		r.errorf(report.TypeMismatch, node, "node kind %v cannot appear as an expression", node.Kind)
		result = srctype.Error_()
	}

	node.ExpressionType = result
	return result
}

func (r *Resolver) evalUnary(node *ast.Node, operand *srctype.Type) *srctype.Type {
	switch node.Token.Lexeme {
	case "-", "++", "--":
		return operand
	case "!":
		return srctype.BoolT()
	case "~":
		if operand.ID.IsInteger() {
			return operand
		}
		r.errorf(report.TypeMismatch, node, "'~' requires an integer operand (i32, i64, u32 or u64), got %s", operand)
		return srctype.Error_()
	default:
		r.errorf(report.TypeMismatch, node, "invalid unary operator %q", node.Token.Lexeme)
		return srctype.Error_()
	}
}

func (r *Resolver) evalBinary(node *ast.Node, left, right *srctype.Type) *srctype.Type {
	switch node.Token.Lexeme {
	case "==", "!=", "<", "<=", ">", ">=":
		return srctype.BoolT()
	case "+", "-", "*", "/", "%":
		return srctype.Promote(left, right)
	default:
		r.errorf(report.TypeMismatch, node, "invalid binary operator %q", node.Token.Lexeme)
		return srctype.Error_()
	}
}

// evalGet resolves a qualified-name member access ("string.concat"),
// consulting the extern registry stdtypes populates. The surface
// grammar never produces struct-field gets (no object field
// declarations are implemented), so every get node names a builtin.
func (r *Resolver) evalGet(node *ast.Node, _ *srctype.Type) *srctype.Type {
	if node.Left == nil || node.Left.Kind != ast.KindVariable {
		r.errorf(report.UndeclaredSymbol, node, "cannot resolve member %q", node.Token.Lexeme)
		return srctype.Error_()
	}
	qualified := node.Left.Token.Lexeme + "." + node.Token.Lexeme
	if t, ok := r.externs[qualified]; ok {
		return t
	}
	r.errorf(report.UndeclaredSymbol, node, "undeclared symbol %q", qualified)
	return srctype.Error_()
}

func (r *Resolver) evalCall(node *ast.Node, callee *srctype.Type) *srctype.Type {
	for _, arg := range node.Children {
		r.EvalExprType(arg)
	}
	switch {
	case callee.ID.IsNumeric(), callee.ID == srctype.String, callee.ID == srctype.Bool:
		// Calling a type name casts: e.g. "i32(x)".
		return callee
	case callee.ID == srctype.Delegate:
		return callee.Return
	default:
		r.errorf(report.TypeMismatch, node, "%s is not callable", callee)
		return srctype.Error_()
	}
}

func (r *Resolver) evalVariable(node *ast.Node) *srctype.Type {
	name := node.Token.Lexeme
	if _, sym, ok := r.cur.Lookup(name); ok {
		return sym.SrcType
	}
	if t, ok := r.externs[name]; ok {
		return t
	}
	if t := primitiveTypeNamed(name); t != nil {
		return t
	}
	r.errorf(report.UndeclaredSymbol, node, "undeclared symbol %q", name)
	return srctype.Error_()
}

// primitiveTypeNamed lets a bare type keyword used where an expression
// is expected (the callee of a cast call, e.g. "i32" in "i32(x)")
// evaluate to that type, mirroring findType's primitive-keyword branch
// reached indirectly through a variable lookup in the original source.
func primitiveTypeNamed(name string) *srctype.Type {
	switch name {
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
		return nil
	}
}
