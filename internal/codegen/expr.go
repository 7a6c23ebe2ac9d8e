package codegen

import (
	"strconv"
	"strings"

	"netuno/internal/ast"
	"netuno/internal/ir"
	"netuno/internal/report"
	"netuno/internal/scope"
	"netuno/internal/srctype"
)

// expr lowers node and returns the SSA value it evaluates to. Grounded on
// expression() in nir_codegen.c, which dispatches the same node kinds.
func (e *Engine) expr(node *ast.Node) ir.Value {
	switch node.Kind {
	case ast.KindLiteral:
		return e.literal(node)
	case ast.KindUnary:
		return e.unary(node)
	case ast.KindBinary:
		return e.binary(node)
	case ast.KindLogical:
		return e.logical(node)
	case ast.KindGet:
		return e.get(node)
	case ast.KindCall:
		return e.call(node)
	case ast.KindVariable:
		return e.variable(node)
	case ast.KindAssign:
		return e.assign(node)
	default:
		e.errorf(report.IRInvariant, node, "node kind %v cannot appear as an expression", node.Kind)
		return e.ctx.GetIntFalse(e.ctx.Int1Type())
	}
}

// literalSuffix strips the suffix letters the scanner leaves attached to
// a numeric literal's lexeme ("i"/"u"/"ul"/"l"/"f").
func literalSuffix(kind ast.LiteralType, lexeme string) string {
	switch kind {
	case ast.LiteralU64:
		return strings.TrimSuffix(lexeme, "ul")
	case ast.LiteralI64:
		return strings.TrimSuffix(lexeme, "l")
	case ast.LiteralU32:
		return strings.TrimSuffix(lexeme, "u")
	case ast.LiteralI32:
		return strings.TrimSuffix(lexeme, "i")
	case ast.LiteralF32:
		return strings.TrimSuffix(lexeme, "f")
	default:
		return lexeme
	}
}

// literal parses node's token lexeme per its literal-type tag and returns
// the matching IR constant. Mirrors number()/string()/literal() in
// nir_codegen.c; the AST carries no pre-parsed value, only the lexeme.
func (e *Engine) literal(node *ast.Node) ir.Value {
	text := literalSuffix(node.LiteralType, node.Token.Lexeme)
	switch node.LiteralType {
	case ast.LiteralBool:
		if node.Token.Lexeme == "true" {
			return e.ctx.GetIntTrue(e.ctx.Int1Type())
		}
		return e.ctx.GetIntFalse(e.ctx.Int1Type())
	case ast.LiteralString:
		return e.ctx.GetString(e.toIRType(srctype.StringT()), node.Token.Lexeme)
	case ast.LiteralI32:
		v, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			e.errorf(report.IRInvariant, node, "invalid i32 literal %q", node.Token.Lexeme)
		}
		return e.ctx.GetInt(e.ctx.Int32Type(), uint64(v), true)
	case ast.LiteralU32:
		v, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			e.errorf(report.IRInvariant, node, "invalid u32 literal %q", node.Token.Lexeme)
		}
		return e.ctx.GetInt(e.ctx.Int32Type(), v, false)
	case ast.LiteralI64:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			e.errorf(report.IRInvariant, node, "invalid i64 literal %q", node.Token.Lexeme)
		}
		return e.ctx.GetInt(e.ctx.Int64Type(), uint64(v), true)
	case ast.LiteralU64:
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			e.errorf(report.IRInvariant, node, "invalid u64 literal %q", node.Token.Lexeme)
		}
		return e.ctx.GetInt(e.ctx.Int64Type(), v, false)
	case ast.LiteralF32:
		v, err := strconv.ParseFloat(text, 32)
		if err != nil {
			e.errorf(report.IRInvariant, node, "invalid f32 literal %q", node.Token.Lexeme)
		}
		return e.ctx.GetFloat(e.ctx.FloatType(), v)
	case ast.LiteralF64:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			e.errorf(report.IRInvariant, node, "invalid f64 literal %q", node.Token.Lexeme)
		}
		return e.ctx.GetFloat(e.ctx.DoubleType(), v)
	default:
		e.errorf(report.IRInvariant, node, "invalid literal type tag %v", node.LiteralType)
		return e.ctx.GetIntFalse(e.ctx.Int1Type())
	}
}

// variable reads node's symbol: a variable's value lives behind an alloca
// pointer and is loaded; a parameter's or function's symbol value is used
// directly. Mirrors variable() in nir_codegen.c.
func (e *Engine) variable(node *ast.Node) ir.Value {
	name := node.Token.Lexeme
	_, sym, ok := e.cur.Lookup(name)
	if !ok {
		e.errorf(report.IRInvariant, node, "undeclared symbol %q", name)
		return e.ctx.GetIntFalse(e.ctx.Int1Type())
	}
	if sym.Kind.Has(scope.KindVariable) {
		return e.block.NewLoad("load", sym.Type, sym.Value)
	}
	return sym.Value
}

// doAssign stores val through target's alloca pointer. target must be a
// variable reference; the grammar has no other lvalue form.
func (e *Engine) doAssign(target *ast.Node, val ir.Value) {
	name := target.Token.Lexeme
	_, sym, ok := e.cur.Lookup(name)
	if !ok || !sym.Kind.Has(scope.KindVariable) {
		e.errorf(report.IRInvariant, target, "cannot assign to %q", name)
		return
	}
	e.block.NewStore(val, sym.Value)
}

// assign lowers node.Right, stores it into node.Left, and yields the
// stored value (an assignment is itself an expression).
func (e *Engine) assign(node *ast.Node) ir.Value {
	val := e.expr(node.Right)
	e.doAssign(node.Left, val)
	return val
}

// get resolves a qualified builtin reference ("string.concat") to the
// ir.Function backing it. The surface grammar produces no other member
// access, so a get node always names an extern, mirroring the
// simplification resolver.evalGet already makes over get() in
// nir_codegen.c's full field-chain walk.
func (e *Engine) get(node *ast.Node) ir.Value {
	if node.Left == nil {
		e.errorf(report.IRInvariant, node, "get node missing its object operand")
		return nil
	}
	qualified := node.Left.Token.Lexeme + "." + node.Token.Lexeme
	fn, ok := e.externs[qualified]
	if !ok {
		e.errorf(report.IRInvariant, node, "undeclared builtin %q", qualified)
		return nil
	}
	return fn
}

// call dispatches on the callee's source type: a numeric/string/bool type
// name used as a callee is a cast ("i32(x)"), a delegate is a real call.
// Mirrors call() in nir_codegen.c.
func (e *Engine) call(node *ast.Node) ir.Value {
	calleeType := e.exprType(node.Left)
	switch {
	case calleeType.ID.IsNumeric(), calleeType.ID == srctype.Bool, calleeType.ID == srctype.String:
		if len(node.Children) != 1 {
			e.errorf(report.TypeMismatch, node, "a cast takes exactly one argument")
			return e.ctx.GetIntFalse(e.ctx.Int1Type())
		}
		arg := node.Children[0]
		return e.cast(node, e.expr(arg), e.exprType(arg), calleeType)
	case calleeType.ID == srctype.Delegate:
		calleeVal := e.expr(node.Left)
		ft := e.toIRType(calleeType).(*ir.FunctionType)
		args := make([]ir.Value, len(node.Children))
		for i, a := range node.Children {
			args[i] = e.expr(a)
		}
		return e.block.NewCall("call", ft, calleeVal, args)
	default:
		e.errorf(report.TypeMismatch, node, "%s is not callable", calleeType)
		return e.ctx.GetIntFalse(e.ctx.Int1Type())
	}
}

// incDec lowers a prefix or postfix ++/-- on target, storing the updated
// value back through doAssign and returning the pre- or post-update value
// per postfix. Mirrors the node->left (postfix) vs node->right (prefix)
// split in unary() in nir_codegen.c.
func (e *Engine) incDec(target *ast.Node, op string, postfix bool) ir.Value {
	t := e.exprType(target)
	old := e.expr(target)

	var one ir.Value
	if t.ID.IsFloat() {
		one = e.ctx.GetFloat(e.toIRType(t), 1)
	} else {
		one = e.ctx.GetInt(e.toIRType(t), 1, t.ID.IsSigned())
	}

	var updated ir.Value
	switch {
	case op == "++" && t.ID.IsFloat():
		updated = e.block.NewFAdd("inc", old, one)
	case op == "++":
		updated = e.block.NewAdd("inc", old, one)
	case t.ID.IsFloat():
		updated = e.block.NewFSub("dec", old, one)
	default:
		updated = e.block.NewSub("dec", old, one)
	}

	e.doAssign(target, updated)
	if postfix {
		return old
	}
	return updated
}

// unary lowers prefix/postfix ++/--, unary -, ! and ~. Mirrors unary() in
// nir_codegen.c.
func (e *Engine) unary(node *ast.Node) ir.Value {
	switch node.Token.Lexeme {
	case "++", "--":
		if node.Left != nil {
			return e.incDec(node.Left, node.Token.Lexeme, true)
		}
		return e.incDec(node.Right, node.Token.Lexeme, false)
	case "-":
		operand := e.expr(node.Left)
		if e.exprType(node.Left).ID.IsFloat() {
			return e.block.NewFNeg("neg", operand)
		}
		return e.block.NewNeg("neg", operand)
	case "!":
		operand := e.expr(node.Left)
		b := e.typeToBool(node.Left, e.exprType(node.Left), operand)
		return e.block.NewNot("not", b)
	case "~":
		operand := e.expr(node.Left)
		return e.block.NewNot("not", operand)
	default:
		e.errorf(report.IRInvariant, node, "invalid unary operator %q", node.Token.Lexeme)
		return e.ctx.GetIntFalse(e.ctx.Int1Type())
	}
}

// stringBinary lowers ==, != and + on string operands through the
// equals/concat externs.
func (e *Engine) stringBinary(node *ast.Node, lhs, rhs ir.Value) ir.Value {
	switch node.Token.Lexeme {
	case "==":
		return e.externCall(node, "string.equals", "eq", lhs, rhs)
	case "!=":
		eq := e.externCall(node, "string.equals", "eq", lhs, rhs)
		return e.block.NewNot("ne", eq)
	case "+":
		return e.externCall(node, "string.concat", "concat", lhs, rhs)
	default:
		e.errorf(report.TypeMismatch, node, "invalid operator %q on string operands", node.Token.Lexeme)
		return e.ctx.GetIntFalse(e.ctx.Int1Type())
	}
}

// binary lowers the eleven binary operators the resolver accepts
// (evalBinary in package resolver), choosing int/float/signed opcode
// forms from the IR type and the Netuno source type of the operands,
// mirroring binary() in nir_codegen.c.
func (e *Engine) binary(node *ast.Node) ir.Value {
	lt := e.exprType(node.Left)
	rt := e.exprType(node.Right)

	if lt.ID == srctype.String || rt.ID == srctype.String {
		return e.stringBinary(node, e.expr(node.Left), e.expr(node.Right))
	}

	lhs := e.expr(node.Left)
	rhs := e.expr(node.Right)

	t := srctype.Promote(lt, rt)
	isFloat := t.ID.IsFloat()
	signed := t.ID.IsSigned()

	op := node.Token.Lexeme
	switch op {
	case "==":
		if isFloat {
			return e.block.NewCmp("cmp", ir.PredFEQ, lhs, rhs)
		}
		return e.block.NewCmp("cmp", ir.PredIEQ, lhs, rhs)
	case "!=":
		if isFloat {
			return e.block.NewCmp("cmp", ir.PredFNE, lhs, rhs)
		}
		return e.block.NewCmp("cmp", ir.PredINE, lhs, rhs)
	case "<", "<=", ">", ">=":
		return e.block.NewCmp("cmp", relationalPredicate(op, isFloat, signed), lhs, rhs)
	case "+":
		if isFloat {
			return e.block.NewFAdd("add", lhs, rhs)
		}
		return e.block.NewAdd("add", lhs, rhs)
	case "-":
		if isFloat {
			return e.block.NewFSub("sub", lhs, rhs)
		}
		return e.block.NewSub("sub", lhs, rhs)
	case "*":
		if isFloat {
			return e.block.NewFMul("mul", lhs, rhs)
		}
		return e.block.NewMul("mul", lhs, rhs)
	case "/":
		switch {
		case isFloat:
			return e.block.NewFDiv("div", lhs, rhs)
		case signed:
			return e.block.NewSDiv("div", lhs, rhs)
		default:
			return e.block.NewUDiv("div", lhs, rhs)
		}
	case "%":
		switch {
		case isFloat:
			return e.block.NewFRem("rem", lhs, rhs)
		case signed:
			return e.block.NewSRem("rem", lhs, rhs)
		default:
			return e.block.NewURem("rem", lhs, rhs)
		}
	default:
		e.errorf(report.TypeMismatch, node, "invalid binary operator %q", op)
		return e.ctx.GetIntFalse(e.ctx.Int1Type())
	}
}

func relationalPredicate(op string, isFloat, signed bool) ir.CmpPredicate {
	switch {
	case isFloat:
		switch op {
		case "<":
			return ir.PredFLT
		case "<=":
			return ir.PredFLE
		case ">":
			return ir.PredFGT
		default:
			return ir.PredFGE
		}
	case signed:
		switch op {
		case "<":
			return ir.PredSLT
		case "<=":
			return ir.PredSLE
		case ">":
			return ir.PredSGT
		default:
			return ir.PredSGE
		}
	default:
		switch op {
		case "<":
			return ir.PredULT
		case "<=":
			return ir.PredULE
		case ">":
			return ir.PredUGT
		default:
			return ir.PredUGE
		}
	}
}

// logical lowers && and || as a three-block diamond with a phi at the
// merge point, short-circuiting the right operand's evaluation,
// mirroring logicalAnd/logicalOr in nir_codegen.c.
func (e *Engine) logical(node *ast.Node) ir.Value {
	switch node.Token.Lexeme {
	case "&&":
		return e.logicalDiamond(node, true)
	case "||":
		return e.logicalDiamond(node, false)
	default:
		e.errorf(report.IRInvariant, node, "invalid logical operator %q", node.Token.Lexeme)
		return e.ctx.GetIntFalse(e.ctx.Int1Type())
	}
}

func (e *Engine) logicalDiamond(node *ast.Node, and bool) ir.Value {
	leftVal := e.expr(node.Left)
	leftBool := e.typeToBool(node.Left, e.exprType(node.Left), leftVal)
	testBlock := e.block

	label := "lor"
	if and {
		label = "land"
	}
	rhsBlock := e.fn.AppendBlock(label + "_rhs")
	endBlock := e.fn.AppendBlock(label + "_end")

	if and {
		testBlock.NewCondBr(leftBool, rhsBlock, endBlock)
	} else {
		testBlock.NewCondBr(leftBool, endBlock, rhsBlock)
	}
	rhsBlock.AddPredecessor(testBlock)
	endBlock.AddPredecessor(testBlock)

	e.block = rhsBlock
	rightVal := e.expr(node.Right)
	rightBool := e.typeToBool(node.Right, e.exprType(node.Right), rightVal)
	rhsEnd := e.block
	if !rhsEnd.HasTerminator() {
		rhsEnd.NewBr(endBlock)
		endBlock.AddPredecessor(rhsEnd)
	}

	e.block = endBlock
	phi := endBlock.NewPhi(label, e.ctx.Int1Type())
	phi.AddIncoming(leftBool, testBlock)
	phi.AddIncoming(rightBool, rhsEnd)
	return phi
}
