package ir

// CmpInst compares LHS and RHS under Predicate; its result type is always
// i1.
type CmpInst struct {
	instBase
	Predicate CmpPredicate
	LHS, RHS  Value
}

// NewCmp appends a cmp instruction.
func (b *BasicBlock) NewCmp(hint string, pred CmpPredicate, lhs, rhs Value) *CmpInst {
	inst := &CmpInst{
		instBase:  instBase{valueBase: valueBase{typ: b.ctx.Int1Type()}, op: OpCmp},
		Predicate: pred,
		LHS:       lhs,
		RHS:       rhs,
	}
	inst.name = b.ctx.GetPrefixedID(hint)
	b.append(inst)
	return inst
}

// PhiIncoming is one (value, predecessor block) pair of a phi.
type PhiIncoming struct {
	Value Value
	Block *BasicBlock
}

// PhiInst merges values coming from distinct predecessor blocks. Its
// result type is the declared value type given at construction.
type PhiInst struct {
	instBase
	Incoming []PhiIncoming
}

// NewPhi appends an empty phi of the given type; incomings are added
// afterward with AddIncoming.
func (b *BasicBlock) NewPhi(hint string, typ Type) *PhiInst {
	inst := &PhiInst{instBase: instBase{valueBase: valueBase{typ: typ}, op: OpPhi}}
	inst.name = b.ctx.GetPrefixedID(hint)
	b.append(inst)
	return inst
}

func (p *PhiInst) AddIncoming(v Value, block *BasicBlock) {
	p.Incoming = append(p.Incoming, PhiIncoming{Value: v, Block: block})
}

// RemoveIncomingValue removes the incoming pair at index i.
func (p *PhiInst) RemoveIncomingValue(i int) {
	p.Incoming = append(p.Incoming[:i], p.Incoming[i+1:]...)
}

// RemoveIncomingBlock removes every incoming pair whose block is block, by
// identity.
func (p *PhiInst) RemoveIncomingBlock(block *BasicBlock) {
	kept := p.Incoming[:0]
	for _, in := range p.Incoming {
		if in.Block != block {
			kept = append(kept, in)
		}
	}
	p.Incoming = kept
}

// GetPhiBasicBlockIndex finds the index of the first incoming pair from
// block, panicking if none exists.
func (p *PhiInst) GetPhiBasicBlockIndex(block *BasicBlock) int {
	for i, in := range p.Incoming {
		if in.Block == block {
			return i
		}
	}
	invariantf("phi has no incoming from block %q", block.Name())
	return -1
}

// undefConstant is a distinguished sentinel used by PhiHasConstantValue
// when every incoming is self-referential.
var undefConstant = &Constant{}

// IsUndef reports whether v is the UNDEF sentinel returned by
// PhiHasConstantValue.
func IsUndef(v Value) bool { return v == Value(undefConstant) }

// PhiHasConstantValue scans incomings: if every non-self-referential value
// is identical, returns that value; if after filtering self-references
// only one distinct value remains, returns it; if every incoming is
// self-referential, returns the UNDEF sentinel; otherwise returns nil.
func PhiHasConstantValue(p *PhiInst) Value {
	var found Value
	allSelf := true
	for _, in := range p.Incoming {
		if in.Value == Value(p) {
			continue
		}
		allSelf = false
		if found == nil {
			found = in.Value
		} else if found != in.Value {
			return nil
		}
	}
	if allSelf {
		return undefConstant
	}
	return found
}

// PhiHasConstantOrUndefValue is PhiHasConstantValue but treats the UNDEF
// sentinel as compatible with any other single value found.
func PhiHasConstantOrUndefValue(p *PhiInst) Value {
	var found Value
	sawUndef := false
	for _, in := range p.Incoming {
		if in.Value == Value(p) {
			continue
		}
		if IsUndef(in.Value) {
			sawUndef = true
			continue
		}
		if found == nil {
			found = in.Value
		} else if found != in.Value {
			return nil
		}
	}
	if found == nil {
		if sawUndef {
			return undefConstant
		}
		return undefConstant
	}
	return found
}

// PhiIsComplete reports whether p's parent is set and every predecessor of
// the parent block appears at least once among p's incoming blocks, with
// at least as many incomings as predecessors.
func PhiIsComplete(p *PhiInst) bool {
	if p.parent == nil {
		return false
	}
	if len(p.Incoming) < p.parent.PredecessorCount() {
		return false
	}
	for i := 0; i < p.parent.PredecessorCount(); i++ {
		pred := p.parent.Predecessor(i)
		found := false
		for _, in := range p.Incoming {
			if in.Block == pred {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// CallInst retains the callee's function type explicitly (so indirect
// calls remain possible without reading it back off the callee value).
type CallInst struct {
	instBase
	FuncType *FunctionType
	Callee   Value
	Args     []Value
}

// NewCall appends a call to callee of type ft with the given arguments.
// hint is ignored (no name assigned) when ft's return type is void.
func (b *BasicBlock) NewCall(hint string, ft *FunctionType, callee Value, args []Value) *CallInst {
	inst := &CallInst{
		instBase: instBase{valueBase: valueBase{typ: ft.Ret}, op: OpCall},
		FuncType: ft,
		Callee:   callee,
		Args:     append([]Value(nil), args...),
	}
	if ft.Ret.Kind() != TypeVoid {
		inst.name = b.ctx.GetPrefixedID(hint)
	}
	b.append(inst)
	return inst
}

// SetArgOperand replaces argument i without checking types, per spec.
func (c *CallInst) SetArgOperand(i int, v Value) { c.Args[i] = v }

// SelectInst yields TrueVal or FalseVal depending on Condition; its result
// type is TrueVal's type.
type SelectInst struct {
	instBase
	Condition, TrueVal, FalseVal Value
}

// NewSelect appends a select, verifying the three operand-validity
// conditions from the data model: true/false operands share an identical,
// non-void type, and the condition is i1. A violation panics with an
// InvariantError (ir-invariant, recovered by the lowering engine).
func (b *BasicBlock) NewSelect(hint string, cond, trueVal, falseVal Value) *SelectInst {
	if it, ok := cond.Type().(*IntegerType); !ok || it.Bits != 1 {
		invariantf("select condition must be i1, got %s", cond.Type())
	}
	if trueVal.Type() != falseVal.Type() {
		invariantf("select true/false operands have differing types: %s vs %s", trueVal.Type(), falseVal.Type())
	}
	if trueVal.Type().Kind() == TypeVoid {
		invariantf("select operands must not be void")
	}
	inst := &SelectInst{
		instBase:  instBase{valueBase: valueBase{typ: trueVal.Type()}, op: OpSelect},
		Condition: cond,
		TrueVal:   trueVal,
		FalseVal:  falseVal,
	}
	inst.name = b.ctx.GetPrefixedID(hint)
	b.append(inst)
	return inst
}

// SwapValues exchanges the true and false operands. The caller must also
// invert the condition to preserve semantics; this is not done here.
func (s *SelectInst) SwapValues() {
	s.TrueVal, s.FalseVal = s.FalseVal, s.TrueVal
}

// StoreInst writes Value through Ptr; its result type is void.
type StoreInst struct {
	instBase
	StoredValue Value
	Ptr         Value
}

// NewStore appends a store, verifying the pointer operand has pointer
// type.
func (b *BasicBlock) NewStore(value, ptr Value) *StoreInst {
	if ptr.Type().Kind() != TypePointer {
		invariantf("store pointer operand must have pointer type, got %s", ptr.Type())
	}
	inst := &StoreInst{
		instBase:    instBase{valueBase: valueBase{typ: b.ctx.voidType}, op: OpStore},
		StoredValue: value,
		Ptr:         ptr,
	}
	b.append(inst)
	return inst
}

// GetElementPtrInst computes an address offset from Ptr by Indices,
// without dereferencing it. Result type is always a pointer.
type GetElementPtrInst struct {
	instBase
	ElemType Type
	Ptr      Value
	Indices  []Value
}

// NewGetElementPtr appends a getelementptr; resultElemType is the pointee
// type of the resulting pointer.
func (b *BasicBlock) NewGetElementPtr(hint string, elemType Type, ptr Value, indices []Value, resultElemType Type) *GetElementPtrInst {
	inst := &GetElementPtrInst{
		instBase: instBase{valueBase: valueBase{typ: b.ctx.GetPointerTo(resultElemType)}, op: OpGetElementPtr},
		ElemType: elemType,
		Ptr:      ptr,
		Indices:  append([]Value(nil), indices...),
	}
	inst.name = b.ctx.GetPrefixedID(hint)
	b.append(inst)
	return inst
}

// ExtractValueInst reads one element out of an aggregate value (struct or
// array), by a path of constant indices.
type ExtractValueInst struct {
	instBase
	Agg     Value
	Indices []uint
}

// NewExtractValue appends an extractvalue of resultType.
func (b *BasicBlock) NewExtractValue(hint string, agg Value, indices []uint, resultType Type) *ExtractValueInst {
	inst := &ExtractValueInst{
		instBase: instBase{valueBase: valueBase{typ: resultType}, op: OpExtractValue},
		Agg:      agg,
		Indices:  append([]uint(nil), indices...),
	}
	inst.name = b.ctx.GetPrefixedID(hint)
	b.append(inst)
	return inst
}

// InsertValueInst yields a copy of Agg with Elem written at Indices.
// Result type is Agg's type.
type InsertValueInst struct {
	instBase
	Agg     Value
	Elem    Value
	Indices []uint
}

// NewInsertValue appends an insertvalue.
func (b *BasicBlock) NewInsertValue(hint string, agg, elem Value, indices []uint) *InsertValueInst {
	inst := &InsertValueInst{
		instBase: instBase{valueBase: valueBase{typ: agg.Type()}, op: OpInsertValue},
		Agg:      agg,
		Elem:     elem,
		Indices:  append([]uint(nil), indices...),
	}
	inst.name = b.ctx.GetPrefixedID(hint)
	b.append(inst)
	return inst
}
