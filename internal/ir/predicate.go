package ir

// CmpPredicate is the condition code of a cmp instruction. Integer and
// floating predicates form two disjoint contiguous ranges.
type CmpPredicate int

const (
	icmpFirst CmpPredicate = iota
	PredIEQ
	PredINE
	PredUGT
	PredUGE
	PredULT
	PredULE
	PredSGT
	PredSGE
	PredSLT
	PredSLE
	icmpLast = PredSLE

	fcmpFirst CmpPredicate = iota
	PredFEQ
	PredFNE
	PredFGT
	PredFGE
	PredFLT
	PredFLE
	PredFOrdered
	PredFUnordered
	fcmpLast = PredFUnordered
)

func (p CmpPredicate) String() string {
	switch p {
	case PredIEQ:
		return "eq"
	case PredINE:
		return "ne"
	case PredUGT:
		return "ugt"
	case PredUGE:
		return "uge"
	case PredULT:
		return "ult"
	case PredULE:
		return "ule"
	case PredSGT:
		return "sgt"
	case PredSGE:
		return "sge"
	case PredSLT:
		return "slt"
	case PredSLE:
		return "sle"
	case PredFEQ:
		return "oeq"
	case PredFNE:
		return "one"
	case PredFGT:
		return "ogt"
	case PredFGE:
		return "oge"
	case PredFLT:
		return "olt"
	case PredFLE:
		return "ole"
	case PredFOrdered:
		return "ord"
	case PredFUnordered:
		return "uno"
	default:
		return "<unknown predicate>"
	}
}

func IsIntPredicate(p CmpPredicate) bool { return p > icmpFirst && p <= icmpLast }
func IsFPPredicate(p CmpPredicate) bool  { return p > fcmpFirst && p <= fcmpLast }

// InversePredicate returns the predicate that is true exactly when p is
// false, for the same pair of operands.
func InversePredicate(p CmpPredicate) CmpPredicate {
	switch p {
	case PredFEQ:
		return PredFNE
	case PredFNE:
		return PredFEQ
	case PredFGT:
		return PredFLE
	case PredFGE:
		return PredFLT
	case PredFLT:
		return PredFGE
	case PredFLE:
		return PredFGT
	case PredFOrdered:
		return PredFUnordered
	case PredFUnordered:
		return PredFOrdered
	case PredIEQ:
		return PredINE
	case PredINE:
		return PredIEQ
	case PredUGT:
		return PredULE
	case PredUGE:
		return PredULT
	case PredULT:
		return PredUGE
	case PredULE:
		return PredUGT
	case PredSGT:
		return PredSLE
	case PredSGE:
		return PredSLT
	case PredSLT:
		return PredSGE
	case PredSLE:
		return PredSGT
	default:
		panic("ir: unknown predicate in InversePredicate")
	}
}

// StrictPredicate maps a non-strict ordered predicate to its strict form;
// predicates with no strict counterpart are returned unchanged.
func StrictPredicate(p CmpPredicate) CmpPredicate {
	switch p {
	case PredFGE:
		return PredFGT
	case PredFLE:
		return PredFLT
	case PredUGE:
		return PredUGT
	case PredULE:
		return PredULT
	case PredSGE:
		return PredSGT
	case PredSLE:
		return PredSLT
	default:
		return p
	}
}

// NonStrictPredicate maps a strict ordered predicate to its non-strict
// form; predicates with no non-strict counterpart are returned unchanged.
func NonStrictPredicate(p CmpPredicate) CmpPredicate {
	switch p {
	case PredFGT:
		return PredFGE
	case PredFLT:
		return PredFLE
	case PredUGT:
		return PredUGE
	case PredULT:
		return PredULE
	case PredSGT:
		return PredSGE
	case PredSLT:
		return PredSLE
	default:
		return p
	}
}

// SignedPredicate converts an unsigned integer predicate to its signed
// counterpart. Panics if p is not unsigned.
func SignedPredicate(p CmpPredicate) CmpPredicate {
	if !IsUnsigned(p) {
		panic("ir: SignedPredicate requires an unsigned predicate")
	}
	switch p {
	case PredULT:
		return PredSLT
	case PredULE:
		return PredSLE
	case PredUGT:
		return PredSGT
	case PredUGE:
		return PredSGE
	default:
		panic("ir: unreachable")
	}
}

// UnsignedPredicate converts a signed integer predicate to its unsigned
// counterpart. Panics if p is not signed.
func UnsignedPredicate(p CmpPredicate) CmpPredicate {
	if !IsSigned(p) {
		panic("ir: UnsignedPredicate requires a signed predicate")
	}
	switch p {
	case PredSLT:
		return PredULT
	case PredSLE:
		return PredULE
	case PredSGT:
		return PredUGT
	case PredSGE:
		return PredUGE
	default:
		panic("ir: unreachable")
	}
}

func IsStrictPredicate(p CmpPredicate) bool {
	switch p {
	case PredFGT, PredFLT, PredUGT, PredULT, PredSGT, PredSLT:
		return true
	default:
		return false
	}
}

func IsEquality(p CmpPredicate) bool {
	switch p {
	case PredIEQ, PredINE, PredFEQ, PredFNE:
		return true
	default:
		return false
	}
}

func IsRelational(p CmpPredicate) bool { return !IsEquality(p) }

func IsSigned(p CmpPredicate) bool {
	switch p {
	case PredSGT, PredSGE, PredSLT, PredSLE:
		return true
	default:
		return false
	}
}

func IsUnsigned(p CmpPredicate) bool {
	switch p {
	case PredUGT, PredUGE, PredULT, PredULE:
		return true
	default:
		return false
	}
}

func IsTrueWhenEqual(p CmpPredicate) bool {
	switch p {
	case PredFEQ, PredFGE, PredFLE, PredIEQ, PredUGE, PredULE, PredSGE, PredSLE:
		return true
	default:
		return false
	}
}

func IsFalseWhenEqual(p CmpPredicate) bool {
	switch p {
	case PredFNE, PredFGT, PredFLT, PredINE, PredUGT, PredULT, PredSGT, PredSLT:
		return true
	default:
		return false
	}
}

// ImpliesTrue reports whether p1 being true on a pair of operands forces
// p2 to also be true on that same pair.
func ImpliesTrue(p1, p2 CmpPredicate) bool {
	if p1 == p2 {
		return true
	}
	switch p1 {
	case PredIEQ, PredFEQ:
		switch p2 {
		case PredUGE, PredULE, PredSGE, PredSLE:
			return true
		}
		return false
	case PredUGT:
		return p2 == PredINE || p2 == PredUGE
	case PredULT:
		return p2 == PredINE || p2 == PredULE
	case PredSGT:
		return p2 == PredINE || p2 == PredSGE
	case PredSLT:
		return p2 == PredINE || p2 == PredSLE
	default:
		return false
	}
}

// ImpliesFalse reports whether p1 being true forces p2 to be false.
func ImpliesFalse(p1, p2 CmpPredicate) bool {
	return ImpliesTrue(p1, InversePredicate(p2))
}
