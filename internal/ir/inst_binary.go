package ir

// BinaryInst is a two-operand instruction whose result type is its
// first operand's type; callers are responsible for ensuring both
// operands agree.
type BinaryInst struct {
	instBase
	LHS, RHS Value
}

func (b *BasicBlock) newBinary(op Opcode, hint string, lhs, rhs Value) *BinaryInst {
	if !IsBinary(op) {
		invariantf("opcode %s is not in the binary family", op)
	}
	inst := &BinaryInst{
		instBase: instBase{valueBase: valueBase{typ: lhs.Type()}, op: op},
		LHS:      lhs,
		RHS:      rhs,
	}
	inst.name = b.ctx.GetPrefixedID(hint)
	b.append(inst)
	return inst
}

func (b *BasicBlock) NewAdd(hint string, x, y Value) *BinaryInst  { return b.newBinary(OpAdd, hint, x, y) }
func (b *BasicBlock) NewFAdd(hint string, x, y Value) *BinaryInst { return b.newBinary(OpFAdd, hint, x, y) }
func (b *BasicBlock) NewSub(hint string, x, y Value) *BinaryInst  { return b.newBinary(OpSub, hint, x, y) }
func (b *BasicBlock) NewFSub(hint string, x, y Value) *BinaryInst { return b.newBinary(OpFSub, hint, x, y) }
func (b *BasicBlock) NewMul(hint string, x, y Value) *BinaryInst  { return b.newBinary(OpMul, hint, x, y) }
func (b *BasicBlock) NewFMul(hint string, x, y Value) *BinaryInst { return b.newBinary(OpFMul, hint, x, y) }
func (b *BasicBlock) NewUDiv(hint string, x, y Value) *BinaryInst { return b.newBinary(OpUDiv, hint, x, y) }
func (b *BasicBlock) NewSDiv(hint string, x, y Value) *BinaryInst { return b.newBinary(OpSDiv, hint, x, y) }
func (b *BasicBlock) NewFDiv(hint string, x, y Value) *BinaryInst { return b.newBinary(OpFDiv, hint, x, y) }
func (b *BasicBlock) NewURem(hint string, x, y Value) *BinaryInst { return b.newBinary(OpURem, hint, x, y) }
func (b *BasicBlock) NewSRem(hint string, x, y Value) *BinaryInst { return b.newBinary(OpSRem, hint, x, y) }
func (b *BasicBlock) NewFRem(hint string, x, y Value) *BinaryInst { return b.newBinary(OpFRem, hint, x, y) }
func (b *BasicBlock) NewShl(hint string, x, y Value) *BinaryInst  { return b.newBinary(OpShl, hint, x, y) }
func (b *BasicBlock) NewShr(hint string, x, y Value) *BinaryInst  { return b.newBinary(OpShr, hint, x, y) }
func (b *BasicBlock) NewAsr(hint string, x, y Value) *BinaryInst  { return b.newBinary(OpAsr, hint, x, y) }
func (b *BasicBlock) NewAnd(hint string, x, y Value) *BinaryInst  { return b.newBinary(OpAnd, hint, x, y) }
func (b *BasicBlock) NewOr(hint string, x, y Value) *BinaryInst   { return b.newBinary(OpOr, hint, x, y) }
func (b *BasicBlock) NewXor(hint string, x, y Value) *BinaryInst  { return b.newBinary(OpXor, hint, x, y) }

// NewNeg is sugar: sub(0, v) using an int-zero of v's type.
func (b *BasicBlock) NewNeg(hint string, v Value) *BinaryInst {
	zero := b.ctx.GetInt(v.Type(), 0, false)
	return b.NewSub(hint, zero, v)
}

// NewNot is sugar: xor(all-ones(type_of(v)), v).
func (b *BasicBlock) NewNot(hint string, v Value) *BinaryInst {
	ones := b.ctx.GetIntAllOnes(v.Type())
	return b.NewXor(hint, ones, v)
}
