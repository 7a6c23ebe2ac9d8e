package codegen

import (
	"netuno/internal/ast"
	"netuno/internal/ir"
	"netuno/internal/report"
	"netuno/internal/srctype"
)

// typeToBool coerces value (of Netuno source type t) to an i1, following
// the boolean-coercion rule: i1 is identity, integer compares != 0,
// float compares != 0.0, anything else is a diagnosed error.
func (e *Engine) typeToBool(node *ast.Node, t *srctype.Type, value ir.Value) ir.Value {
	switch {
	case t.ID == srctype.Bool:
		return value
	case t.ID.IsInteger():
		zero := e.ctx.GetInt(value.Type(), 0, false)
		return e.block.NewCmp("b", ir.PredINE, value, zero)
	case t.ID.IsFloat():
		zero := e.ctx.GetFloat(value.Type(), 0)
		return e.block.NewCmp("b", ir.PredFNE, value, zero)
	default:
		e.errorf(report.TypeMismatch, node, "invalid implicit cast from type %s to bool", t)
		return e.ctx.GetIntFalse(e.ctx.Int1Type())
	}
}

// externCall looks up name (e.g. "i32.to_string", "string.to_i32",
// "string.equals", "string.concat") in the extern table and emits a
// call to it. Missing externs are an ir-invariant: stdtypes failed to
// register a builtin every valid program needs.
func (e *Engine) externCall(node *ast.Node, name, hint string, args ...ir.Value) ir.Value {
	fn, ok := e.externs[name]
	if !ok {
		e.errorf(report.IRInvariant, node, "missing builtin %q", name)
		return nil
	}
	ft := fn.Signature()
	return e.block.NewCall(hint, ft, fn, args)
}

// cast converts value from its current Netuno source type "from" to
// "to", following the cast table in cast() in nir_codegen.c. Identical
// types are a no-op. Any conversion touching string calls a
// to_<TargetTypeName> extern looked up on the source type (primitive
// -> string) or the string type (string -> primitive).
func (e *Engine) cast(node *ast.Node, value ir.Value, from, to *srctype.Type) ir.Value {
	if from.Equals(to) {
		return value
	}

	switch {
	case from.ID == srctype.String && to.ID != srctype.String:
		return e.externCall(node, "string.to_"+to.ID.String(), "str", value)
	case from.ID != srctype.String && to.ID == srctype.String:
		return e.externCall(node, from.ID.String()+".to_string", "str", value)
	}

	target := e.toIRType(to)

	var op ir.Opcode
	switch {
	case from.ID == srctype.I32 && to.ID.IsInteger() && bitWidth(to) <= 32:
		op = ir.OpTrunc
	case from.ID == srctype.I32 && to.ID.IsInteger():
		op = ir.OpSExt
	case from.ID == srctype.I32 && to.ID.IsFloat():
		op = ir.OpSIToFP
	case from.ID == srctype.U32 && to.ID.IsInteger() && bitWidth(to) <= 32:
		op = ir.OpTrunc
	case from.ID == srctype.U32 && to.ID.IsInteger():
		op = ir.OpZExt
	case from.ID == srctype.U32 && to.ID.IsFloat():
		op = ir.OpUIToFP
	case from.ID == srctype.I64 && to.ID.IsInteger():
		op = ir.OpTrunc
	case from.ID == srctype.I64 && to.ID.IsFloat():
		op = ir.OpSIToFP
	case from.ID == srctype.U64 && to.ID.IsInteger():
		op = ir.OpTrunc
	case from.ID == srctype.U64 && to.ID.IsFloat():
		op = ir.OpUIToFP
	case from.ID.IsFloat() && to.ID.IsInteger() && to.ID.IsSigned():
		op = ir.OpFPToSI
	case from.ID.IsFloat() && to.ID.IsInteger():
		op = ir.OpFPToUI
	case from.ID.IsFloat() && to.ID.IsFloat():
		op = ir.OpFPTrunc
	default:
		e.errorf(report.TypeMismatch, node, "invalid cast from %s to %s", from, to)
		return value
	}

	if target == value.Type() {
		return value
	}
	return e.block.NewCast(op, "cast", value, target)
}

// bitWidth returns the IR integer width a Netuno integer type maps to,
// used by cast to choose trunc vs [sz]ext.
func bitWidth(t *srctype.Type) int {
	switch t.ID {
	case srctype.I32, srctype.U32:
		return 32
	case srctype.I64, srctype.U64:
		return 64
	default:
		return 0
	}
}
