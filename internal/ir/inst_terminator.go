package ir

// RetInst returns from the enclosing function. Value is nil for a void
// return.
type RetInst struct {
	instBase
	Value Value
}

// NewRet appends a ret instruction to b. value must be nil for a
// void-returning function.
func (b *BasicBlock) NewRet(value Value) *RetInst {
	inst := &RetInst{
		instBase: instBase{valueBase: valueBase{typ: b.ctx.voidType}, op: OpRet},
		Value:    value,
	}
	b.append(inst)
	return inst
}

// BrInst is unconditional iff Condition and FalseTarget are both nil;
// conditional otherwise.
type BrInst struct {
	instBase
	Condition   Value
	TrueTarget  *BasicBlock
	FalseTarget *BasicBlock
}

// IsConditional reports whether this is a two-way branch.
func (i *BrInst) IsConditional() bool { return i.Condition != nil }

// SuccessorCount returns 1 for an unconditional branch, 2 for a
// conditional one.
func (i *BrInst) SuccessorCount() int {
	if i.IsConditional() {
		return 2
	}
	return 1
}

// SetSuccessor patches the i-th successor (0 = true/unconditional target,
// 1 = false target). i must be a valid index for this branch's arity.
func (i *BrInst) SetSuccessor(idx int, b *BasicBlock) {
	switch idx {
	case 0:
		i.TrueTarget = b
	case 1:
		if !i.IsConditional() {
			invariantf("SetSuccessor(1, ...) on unconditional branch")
		}
		i.FalseTarget = b
	default:
		invariantf("SetSuccessor index out of range: %d", idx)
	}
}

// NewBr appends an unconditional branch to b, targeting dest.
func (b *BasicBlock) NewBr(dest *BasicBlock) *BrInst {
	inst := &BrInst{
		instBase:   instBase{valueBase: valueBase{typ: b.ctx.voidType}, op: OpBr},
		TrueTarget: dest,
	}
	b.append(inst)
	return inst
}

// NewCondBr appends a conditional branch to b. cond must have integer-1
// type (spec invariant 3); violating it is an ir-invariant failure.
func (b *BasicBlock) NewCondBr(cond Value, trueTarget, falseTarget *BasicBlock) *BrInst {
	if it, ok := cond.Type().(*IntegerType); !ok || it.Bits != 1 {
		invariantf("conditional branch condition must be i1, got %s", cond.Type())
	}
	inst := &BrInst{
		instBase:    instBase{valueBase: valueBase{typ: b.ctx.voidType}, op: OpBr},
		Condition:   cond,
		TrueTarget:  trueTarget,
		FalseTarget: falseTarget,
	}
	b.append(inst)
	return inst
}

// SuccessorCount returns the terminator's number of successors: 0 for
// ret, 1 or 2 for br depending on its conditionality. Calling it on a
// non-terminator instruction is a programming error.
func SuccessorCount(inst Instruction) int {
	switch v := inst.(type) {
	case *RetInst:
		return 0
	case *BrInst:
		return v.SuccessorCount()
	default:
		invariantf("SuccessorCount called on non-terminator instruction")
		return 0
	}
}
