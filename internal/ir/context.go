// Package ir implements the Netuno intermediate representation: a typed,
// context-interned type system and an SSA-form value/instruction/function/
// module model, together with the builder API the lowering engine
// (package codegen) uses to construct it.
package ir

import "fmt"

// Context owns every interned Type in a session and mints the fresh value
// names the builder assigns to non-void instruction results. A Context is
// not safe for concurrent mutation; independent Contexts may be used from
// independent goroutines without coordination.
type Context struct {
	errorType  Type
	voidType   Type
	labelType  Type
	floatType  Type
	doubleType Type
	opaquePtr  Type

	integerTypes  []*IntegerType
	pointerTypes  []*PointerType
	arrayTypes    []*ArrayType
	structTypes   []*StructType
	functionTypes []*FunctionType

	prefixCounters map[string]uint64
}

// NewContext allocates a Context with its primitive singleton types ready.
func NewContext() *Context {
	c := &Context{prefixCounters: make(map[string]uint64)}
	c.errorType = &simpleType{typeBase: typeBase{ctx: c}, kind: TypeError}
	c.voidType = &simpleType{typeBase: typeBase{ctx: c}, kind: TypeVoid}
	c.labelType = &simpleType{typeBase: typeBase{ctx: c}, kind: TypeLabel}
	c.floatType = &simpleType{typeBase: typeBase{ctx: c}, kind: TypeFloat}
	c.doubleType = &simpleType{typeBase: typeBase{ctx: c}, kind: TypeDouble}
	c.opaquePtr = &PointerType{typeBase: typeBase{ctx: c}, Elem: nil}
	return c
}

// GetPrefixedID returns a fresh string built from prefix and a monotonically
// increasing, per-prefix counter starting at 0: the n-th call for a given
// prefix returns "<prefix><n>".
func (c *Context) GetPrefixedID(prefix string) string {
	n := c.prefixCounters[prefix]
	c.prefixCounters[prefix] = n + 1
	return fmt.Sprintf("%s%d", prefix, n)
}
