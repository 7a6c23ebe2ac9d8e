// Package srctype is the Netuno source-level type system the resolver
// and lowering engine operate on — distinct from package ir's target
// type system. Enumerator values are load-bearing:
// the resolver's binary-operator promotion rule picks the operand type
// with the smaller enumerator value, so the ordering below (copied from
// the original compiler's type id enum) is part of the contract, not
// cosmetic.
package srctype

// ID is a Netuno source type's kind tag. The values below string are
// not value types: the resolver uses Error for a diagnosed expression,
// Undefined for a statement that guarantees no return, and Void for the
// return type of a sub.
type ID int

const (
	Error ID = iota
	Undefined
	Void
	String
	F64
	F32
	U64
	I64
	U32
	I32
	Bool
	Delegate
	Object
)

func (id ID) String() string {
	switch id {
	case Error:
		return "error"
	case Undefined:
		return "undefined"
	case Void:
		return "void"
	case String:
		return "string"
	case F64:
		return "f64"
	case F32:
		return "f32"
	case U64:
		return "u64"
	case I64:
		return "i64"
	case U32:
		return "u32"
	case I32:
		return "i32"
	case Bool:
		return "bool"
	case Delegate:
		return "delegate"
	case Object:
		return "object"
	default:
		return "<unknown type>"
	}
}

func (id ID) IsInteger() bool {
	switch id {
	case U64, I64, U32, I32:
		return true
	default:
		return false
	}
}

func (id ID) IsFloat() bool { return id == F32 || id == F64 }

func (id ID) IsSigned() bool { return id == I32 || id == I64 }

func (id ID) IsUnsigned() bool { return id == U32 || id == U64 }

func (id ID) IsNumeric() bool { return id.IsInteger() || id.IsFloat() }

// Type is a Netuno source type: a kind id, plus the extra data a delegate
// type carries (return type and ordered parameter types).
type Type struct {
	ID ID

	// Delegate-only fields.
	Return     *Type
	Params     []*Type
	IsVarArg   bool
}

func Simple(id ID) *Type { return &Type{ID: id} }

func NewDelegate(ret *Type, params []*Type, varArg bool) *Type {
	return &Type{ID: Delegate, Return: ret, Params: append([]*Type(nil), params...), IsVarArg: varArg}
}

var (
	typeError     = Simple(Error)
	typeUndefined = Simple(Undefined)
	typeVoid      = Simple(Void)
	typeString    = Simple(String)
	typeF64       = Simple(F64)
	typeF32       = Simple(F32)
	typeU64       = Simple(U64)
	typeI64       = Simple(I64)
	typeU32       = Simple(U32)
	typeI32       = Simple(I32)
	typeBool      = Simple(Bool)
	typeObject    = Simple(Object)
)

func Error_() *Type     { return typeError }
func Undefined_() *Type { return typeUndefined }
func VoidT() *Type      { return typeVoid }
func StringT() *Type    { return typeString }
func F64T() *Type       { return typeF64 }
func F32T() *Type       { return typeF32 }
func U64T() *Type       { return typeU64 }
func I64T() *Type       { return typeI64 }
func U32T() *Type       { return typeU32 }
func I32T() *Type       { return typeI32 }
func BoolT() *Type      { return typeBool }
func ObjectT() *Type    { return typeObject }

// Promote implements the resolver's arithmetic/bitwise binary promotion
// rule: the operand type with the smaller enumerator value wins.
func Promote(a, b *Type) *Type {
	if a.ID <= b.ID {
		return a
	}
	return b
}

func (t *Type) Equals(o *Type) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.ID != o.ID {
		return false
	}
	if t.ID != Delegate {
		return true
	}
	if !t.Return.Equals(o.Return) || len(t.Params) != len(o.Params) || t.IsVarArg != o.IsVarArg {
		return false
	}
	for i := range t.Params {
		if !t.Params[i].Equals(o.Params[i]) {
			return false
		}
	}
	return true
}

func (t *Type) String() string {
	if t == nil {
		return "<nil type>"
	}
	if t.ID != Delegate {
		return t.ID.String()
	}
	s := t.Return.String() + "("
	for i, p := range t.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	if t.IsVarArg {
		s += ", ..."
	}
	return s + ")"
}
