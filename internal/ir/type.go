package ir

import (
	"fmt"
	"strings"
)

// TypeKind identifies the concrete shape of a Type.
type TypeKind int

const (
	TypeError TypeKind = iota
	TypeVoid
	TypeLabel
	TypeFloat // f32
	TypeDouble
	TypeInteger
	TypePointer
	TypeArray
	TypeStruct
	TypeFunction
)

func (k TypeKind) String() string {
	switch k {
	case TypeError:
		return "error"
	case TypeVoid:
		return "void"
	case TypeLabel:
		return "label"
	case TypeFloat:
		return "float"
	case TypeDouble:
		return "double"
	case TypeInteger:
		return "integer"
	case TypePointer:
		return "pointer"
	case TypeArray:
		return "array"
	case TypeStruct:
		return "struct"
	case TypeFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Type is a context-interned type descriptor. Two Types observed from the
// same Context are equal (by identity) iff they describe the same shape;
// Types from different Contexts are never compared.
type Type interface {
	Kind() TypeKind
	Context() *Context
	String() string

	// IsFirstClass reports whether the type may be the type of a Value:
	// every type except void and function.
	IsFirstClass() bool
	// IsSingleValue reports membership in {integer, float, double, pointer}.
	IsSingleValue() bool
	// IsAggregate reports membership in {struct, array}.
	IsAggregate() bool
	// IsSized reports whether the type has a well-defined size: true for
	// primitives and pointers, recursively for arrays/structs.
	IsSized() bool
}

type typeBase struct {
	ctx *Context
}

func (t *typeBase) Context() *Context { return t.ctx }

func (t *typeBase) isFirstClass(k TypeKind) bool { return k != TypeVoid && k != TypeFunction }

// simpleType covers the context-singleton kinds with no extra data: error,
// void, label, f32 (float), f64 (double).
type simpleType struct {
	typeBase
	kind TypeKind
}

func (t *simpleType) Kind() TypeKind { return t.kind }
func (t *simpleType) String() string { return t.kind.String() }
func (t *simpleType) IsFirstClass() bool {
	return t.kind != TypeVoid
}
func (t *simpleType) IsSingleValue() bool {
	return t.kind == TypeFloat || t.kind == TypeDouble
}
func (t *simpleType) IsAggregate() bool { return false }
func (t *simpleType) IsSized() bool     { return t.kind == TypeFloat || t.kind == TypeDouble }

// IntegerBits enumerates the integer widths the IR is specified to support;
// other widths are accepted but unusual.
type IntegerBits uint

// IntegerType is an integer of a given bit width, interned per Context.
type IntegerType struct {
	typeBase
	Bits IntegerBits
}

func (t *IntegerType) Kind() TypeKind     { return TypeInteger }
func (t *IntegerType) String() string     { return fmt.Sprintf("i%d", t.Bits) }
func (t *IntegerType) IsFirstClass() bool { return true }
func (t *IntegerType) IsSingleValue() bool { return true }
func (t *IntegerType) IsAggregate() bool  { return false }
func (t *IntegerType) IsSized() bool      { return true }

// PointerType is a pointer to Elem, or an opaque pointer when Elem is nil.
// All opaque pointers minted by one Context are the same interned value.
type PointerType struct {
	typeBase
	Elem Type
}

func (t *PointerType) Kind() TypeKind     { return TypePointer }
func (t *PointerType) IsFirstClass() bool { return true }
func (t *PointerType) IsSingleValue() bool { return true }
func (t *PointerType) IsAggregate() bool  { return false }
func (t *PointerType) IsSized() bool      { return true }
func (t *PointerType) String() string {
	if t.Elem == nil {
		return "ptr"
	}
	return t.Elem.String() + "*"
}

// ArrayType is a fixed-length array of Elem.
type ArrayType struct {
	typeBase
	Elem  Type
	Count uint64
}

func (t *ArrayType) Kind() TypeKind     { return TypeArray }
func (t *ArrayType) IsFirstClass() bool { return true }
func (t *ArrayType) IsSingleValue() bool { return false }
func (t *ArrayType) IsAggregate() bool  { return true }
func (t *ArrayType) IsSized() bool      { return t.Elem.IsSized() }
func (t *ArrayType) String() string {
	return fmt.Sprintf("[%d x %s]", t.Count, t.Elem.String())
}

// StructType is an ordered sequence of element types. HasBody distinguishes
// a fully-defined struct from a forward-declared (opaque) one; IsSized is
// memoized since computing it walks every element.
type StructType struct {
	typeBase
	Elems   []Type
	HasBody bool

	sizedMemo    bool
	sizedChecked bool
}

func (t *StructType) Kind() TypeKind     { return TypeStruct }
func (t *StructType) IsFirstClass() bool { return true }
func (t *StructType) IsSingleValue() bool { return false }
func (t *StructType) IsAggregate() bool  { return true }
func (t *StructType) IsSized() bool {
	if t.sizedChecked {
		return t.sizedMemo
	}
	t.sizedChecked = true
	if !t.HasBody {
		t.sizedMemo = false
		return false
	}
	for _, e := range t.Elems {
		if !e.IsSized() {
			t.sizedMemo = false
			return false
		}
	}
	t.sizedMemo = true
	return true
}
func (t *StructType) String() string {
	if !t.HasBody {
		return "struct{opaque}"
	}
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// FunctionType is a signature: a return type, ordered parameter types, and
// a var-arg flag. Function types are not themselves first-class.
type FunctionType struct {
	typeBase
	Ret    Type
	Params []Type
	VarArg bool
}

func (t *FunctionType) Kind() TypeKind      { return TypeFunction }
func (t *FunctionType) IsFirstClass() bool  { return false }
func (t *FunctionType) IsSingleValue() bool { return false }
func (t *FunctionType) IsAggregate() bool   { return false }
func (t *FunctionType) IsSized() bool       { return false }
func (t *FunctionType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	variadic := ""
	if t.VarArg {
		variadic = ", ..."
	}
	return fmt.Sprintf("%s(%s%s)", t.Ret.String(), strings.Join(parts, ", "), variadic)
}

// --- Context accessors & interning ---------------------------------------

func (c *Context) ErrorType() Type  { return c.errorType }
func (c *Context) VoidType() Type   { return c.voidType }
func (c *Context) LabelType() Type  { return c.labelType }
func (c *Context) FloatType() Type  { return c.floatType }
func (c *Context) DoubleType() Type { return c.doubleType }

// OpaquePointerType returns the single opaque-pointer type for this Context.
func (c *Context) OpaquePointerType() Type { return c.opaquePtr }

// GetIntegerType interns an integer type of the given bit width.
func (c *Context) GetIntegerType(bits IntegerBits) Type {
	for _, t := range c.integerTypes {
		if t.Bits == bits {
			return t
		}
	}
	t := &IntegerType{typeBase: typeBase{ctx: c}, Bits: bits}
	c.integerTypes = append(c.integerTypes, t)
	return t
}

func (c *Context) Int1Type() Type  { return c.GetIntegerType(1) }
func (c *Context) Int8Type() Type  { return c.GetIntegerType(8) }
func (c *Context) Int16Type() Type { return c.GetIntegerType(16) }
func (c *Context) Int32Type() Type { return c.GetIntegerType(32) }
func (c *Context) Int64Type() Type { return c.GetIntegerType(64) }

// GetPointerTo interns a pointer to elem; elem == nil yields the Context's
// single opaque pointer type.
func (c *Context) GetPointerTo(elem Type) Type {
	if elem == nil {
		return c.opaquePtr
	}
	for _, t := range c.pointerTypes {
		if t.Elem == elem {
			return t
		}
	}
	t := &PointerType{typeBase: typeBase{ctx: c}, Elem: elem}
	c.pointerTypes = append(c.pointerTypes, t)
	return t
}

// GetArrayType interns a fixed-size array of elem.
func (c *Context) GetArrayType(elem Type, count uint64) Type {
	for _, t := range c.arrayTypes {
		if t.Elem == elem && t.Count == count {
			return t
		}
	}
	t := &ArrayType{typeBase: typeBase{ctx: c}, Elem: elem, Count: count}
	c.arrayTypes = append(c.arrayTypes, t)
	return t
}

// GetStructType interns a struct with the given ordered element types.
func (c *Context) GetStructType(elems []Type) Type {
	for _, t := range c.structTypes {
		if sameTypeSlice(t.Elems, elems) {
			return t
		}
	}
	t := &StructType{typeBase: typeBase{ctx: c}, Elems: append([]Type(nil), elems...), HasBody: true}
	c.structTypes = append(c.structTypes, t)
	return t
}

// GetFunctionType interns a function signature.
func (c *Context) GetFunctionType(ret Type, params []Type, varArg bool) Type {
	for _, t := range c.functionTypes {
		if t.Ret == ret && t.VarArg == varArg && sameTypeSlice(t.Params, params) {
			return t
		}
	}
	t := &FunctionType{typeBase: typeBase{ctx: c}, Ret: ret, Params: append([]Type(nil), params...), VarArg: varArg}
	c.functionTypes = append(c.functionTypes, t)
	return t
}

func sameTypeSlice(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
