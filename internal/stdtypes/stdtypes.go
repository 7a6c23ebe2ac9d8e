// Package stdtypes declares the builtin modules (string, console, and
// the numeric primitives' cast helpers) that the resolver and codegen
// consult as externs, instead of the surface language declaring them
// itself. Grounded on original_source/ntc/source/modules/{string,
// numbers,console}.c and helper.h's addFunction/addCast.
//
// nir_codegen.c attaches these as member functions on a NT_TYPE's own
// field symbol table, reached through a chained scope walk at a Get
// node (so `"x".concat(y)` resolves via the string type's table). This
// port's resolver and codegen both simplify Get to a flat qualified-
// name lookup ("string.concat") instead, so this package mirrors that:
// it builds one flat name -> srctype.Type table for the resolver and
// one flat name -> ir.Function table for codegen, rather than
// installing fields on a per-type symbol table.
package stdtypes

import (
	"netuno/internal/ir"
	"netuno/internal/srctype"
)

// numericTypes lists every cast-eligible primitive other than string,
// per the addCast loop in numbers.c's startPrimitive.
var numericTypes = []*srctype.Type{
	srctype.BoolT(),
	srctype.I32T(),
	srctype.I64T(),
	srctype.U32T(),
	srctype.U64T(),
	srctype.F32T(),
	srctype.F64T(),
}

// Registry is the pair of lookup tables a compile run wires into the
// resolver (Externs) and the codegen engine (Functions) before any
// file is resolved or lowered.
type Registry struct {
	Externs   map[string]*srctype.Type
	Functions map[string]*ir.Function
}

// Build declares every builtin's IR signature in module and returns
// the registry consumed by resolver.New and codegen.New. Every
// declared function is a prototype only (no body): the bytecode VM
// these modules link against at run time supplies the actual
// implementation, the same division nir's own extern functions rely on
// (addFunction only ever registers a signature, never a body).
func Build(ctx *ir.Context, module *ir.Module) *Registry {
	reg := &Registry{
		Externs:   map[string]*srctype.Type{},
		Functions: map[string]*ir.Function{},
	}

	irType := func(t *srctype.Type) ir.Type {
		switch t.ID {
		case srctype.Void:
			return ctx.VoidType()
		case srctype.String:
			return ctx.GetPointerTo(ctx.Int32Type())
		case srctype.F64:
			return ctx.DoubleType()
		case srctype.F32:
			return ctx.FloatType()
		case srctype.I64, srctype.U64:
			return ctx.Int64Type()
		case srctype.I32, srctype.U32:
			return ctx.Int32Type()
		case srctype.Bool:
			return ctx.Int1Type()
		case srctype.Object:
			return ctx.OpaquePointerType()
		default:
			return ctx.ErrorType()
		}
	}

	declare := func(name string, ret *srctype.Type, params ...*srctype.Type) {
		paramTypes := make([]ir.Type, len(params))
		for i, p := range params {
			paramTypes[i] = irType(p)
		}
		ft := ctx.GetFunctionType(irType(ret), paramTypes, false).(*ir.FunctionType)
		reg.Functions[name] = module.GetOrInsertFunction(name, ft)
		reg.Externs[name] = srctype.NewDelegate(ret, params, false)
	}

	// string.c: addEquals, addConcat.
	declare("string.equals", srctype.BoolT(), srctype.StringT(), srctype.StringT())
	declare("string.concat", srctype.StringT(), srctype.StringT(), srctype.StringT())

	// console.c: addWrite, addReadline.
	declare("console.write", srctype.VoidT(), srctype.ObjectT())
	declare("console.readline", srctype.StringT())

	// numbers.c/string.c: addCast, both directions between string and
	// every other primitive. These two are internal cast-lowering
	// hooks, not user-callable symbols (a Netuno cast is written
	// "i32(x)", resolved by evalCall's callee-type dispatch, never by
	// name), so only Functions gets an entry; Externs would make them
	// reachable as ordinary Get/Call expressions, which nir_codegen.c
	// never allows either (addCast's names are never looked up through
	// evalGet's path, only invoked internally by cast()).
	for _, t := range numericTypes {
		paramTypes := []ir.Type{irType(t)}
		toStringFt := ctx.GetFunctionType(irType(srctype.StringT()), paramTypes, false).(*ir.FunctionType)
		toStringName := t.ID.String() + ".to_string"
		reg.Functions[toStringName] = module.GetOrInsertFunction(toStringName, toStringFt)

		fromStringFt := ctx.GetFunctionType(irType(t), []ir.Type{irType(srctype.StringT())}, false).(*ir.FunctionType)
		fromStringName := "string.to_" + t.ID.String()
		reg.Functions[fromStringName] = module.GetOrInsertFunction(fromStringName, fromStringFt)
	}

	return reg
}
