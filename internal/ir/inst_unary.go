package ir

// UnaryInst covers every single-operand instruction other than alloca and
// load: fneg and the eleven cast opcodes. Result type is the source
// operand's type for fneg, the explicit target type for casts.
type UnaryInst struct {
	instBase
	Operand Value
}

func (b *BasicBlock) newUnary(op Opcode, hint string, operand Value, resultType Type) *UnaryInst {
	if !IsUnary(op) {
		invariantf("opcode %s is not in the unary family", op)
	}
	inst := &UnaryInst{
		instBase: instBase{valueBase: valueBase{typ: resultType}, op: op},
		Operand:  operand,
	}
	inst.name = b.ctx.GetPrefixedID(hint)
	b.append(inst)
	return inst
}

// NewFNeg negates a floating-point operand.
func (b *BasicBlock) NewFNeg(hint string, operand Value) *UnaryInst {
	return b.newUnary(OpFNeg, hint, operand, operand.Type())
}

// NewCast appends one of the eleven cast opcodes, with the explicit
// target type as its result type.
func (b *BasicBlock) NewCast(op Opcode, hint string, operand Value, target Type) *UnaryInst {
	if !IsCast(op) {
		invariantf("opcode %s is not a cast", op)
	}
	return b.newUnary(op, hint, operand, target)
}

// AllocaInst reserves stack storage for Count elements of ElemType; its
// result type is pointer-to-ElemType.
type AllocaInst struct {
	instBase
	ElemType Type
	Count    uint64
}

// NewAlloca appends an alloca for count elements of elemType.
func (b *BasicBlock) NewAlloca(hint string, elemType Type, count uint64) *AllocaInst {
	inst := &AllocaInst{
		instBase: instBase{valueBase: valueBase{typ: b.ctx.GetPointerTo(elemType)}, op: OpAlloca},
		ElemType: elemType,
		Count:    count,
	}
	inst.name = b.ctx.GetPrefixedID(hint)
	b.append(inst)
	return inst
}

// LoadInst dereferences Ptr; its result type is Ptr's pointee type.
type LoadInst struct {
	instBase
	Ptr Value
}

// NewLoad appends a load of elemType through ptr.
func (b *BasicBlock) NewLoad(hint string, elemType Type, ptr Value) *LoadInst {
	inst := &LoadInst{
		instBase: instBase{valueBase: valueBase{typ: elemType}, op: OpLoad},
		Ptr:      ptr,
	}
	inst.name = b.ctx.GetPrefixedID(hint)
	b.append(inst)
	return inst
}
