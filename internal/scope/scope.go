// Package scope implements the lexical symbol table the lowering engine
// and resolver share: a parent-linked chain of scopes, each holding an
// insertion-ordered list of symbols with weak-to-strong upgrade semantics.
// The resolver and the lowering engine each build their own chain over
// the same source (re-walking the AST), populating whichever of a
// Symbol's Type/Value (IR-level, lowering) or SrcType (Netuno-level,
// resolver) fields its pass cares about.
package scope

import (
	"netuno/internal/ir"
	"netuno/internal/srctype"
)

// Kind is a bitset over the roles a symbol can play.
type Kind uint

const (
	KindFunction Kind = 1 << iota
	KindSubroutine
	KindVariable
	KindConstant
	KindParameter
	KindType
	KindPublic
	KindPrivate
	KindModule
)

func (k Kind) Has(flag Kind) bool { return k&flag != 0 }

// Tag classifies what a Scope represents, controlling break/continue and
// return-type handling.
type Tag uint

const (
	TagNone Tag = 0
	TagBreakable Tag = 1 << iota
	TagFunction
	TagMethod
	TagType
)

func (t Tag) Has(flag Tag) bool { return t&flag != 0 }

// Symbol is one entry of a scope's symbol list. Type/Value are filled in
// by the lowering engine's scope chain; SrcType is filled in by the
// resolver's scope chain. A single declaration is visited by both
// passes independently, so no one Symbol ever needs both halves at once.
type Symbol struct {
	Name    string
	Kind    Kind
	Type    ir.Type
	Value   ir.Value
	SrcType *srctype.Type
	Weak    bool
}

// Scope is one level of the lexical nesting chain. Symbol lookup walks the
// Parent chain; Loop/EndLoop are set by loop-lowering code on breakable
// scopes and consulted by break/continue lowering.
type Scope struct {
	Parent *Scope
	Tag    Tag

	ReturnType ir.Type
	symbols    []Symbol

	Loop    *ir.BasicBlock
	EndLoop *ir.BasicBlock
}

// New creates a scope nested under parent (nil for the outermost scope).
func New(parent *Scope, tag Tag) *Scope {
	return &Scope{Parent: parent, Tag: tag}
}

// LookupCurrent searches only this scope's own symbol list.
func (s *Scope) LookupCurrent(name string) (Symbol, bool) {
	for _, sym := range s.symbols {
		if sym.Name == name {
			return sym, true
		}
	}
	return Symbol{}, false
}

// Lookup searches this scope, then its ancestors, returning the scope the
// match was found in along with the symbol.
func (s *Scope) Lookup(name string) (*Scope, Symbol, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if sym, ok := cur.LookupCurrent(name); ok {
			return cur, sym, true
		}
	}
	return nil, Symbol{}, false
}

// Symbols returns a copy of this scope's own symbol list (not the parent
// chain), letting a driver carry one file's top-level declarations
// forward into the next file's scope of the same assembly.
func (s *Scope) Symbols() []Symbol {
	out := make([]Symbol, len(s.symbols))
	copy(out, s.symbols)
	return out
}

// Insert adds sym to this scope's symbol list. If an existing entry with
// the same name is weak and sym is not, the existing entry is upgraded in
// place (matching ntInsertSymbol's weak→non-weak update). Otherwise, if an
// entry with that name already exists, the insert fails (false).
func (s *Scope) Insert(sym Symbol) bool {
	for i, existing := range s.symbols {
		if existing.Name != sym.Name {
			continue
		}
		if existing.Weak && !sym.Weak {
			s.symbols[i] = sym
			return true
		}
		return false
	}
	s.symbols = append(s.symbols, sym)
	return true
}

// Update overwrites the first existing symbol with the same name, walking
// up the parent chain if not found in this scope. Reports whether any
// scope held a matching symbol.
func (s *Scope) Update(sym Symbol) bool {
	for cur := s; cur != nil; cur = cur.Parent {
		for i, existing := range cur.symbols {
			if existing.Name == sym.Name {
				cur.symbols[i] = sym
				return true
			}
		}
	}
	return false
}

// NearestBreakable walks up the parent chain for the nearest scope tagged
// breakable, the target of break/continue lowering.
func (s *Scope) NearestBreakable() *Scope {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Tag.Has(TagBreakable) {
			return cur
		}
	}
	return nil
}

// NearestFunction walks up the parent chain for the nearest scope tagged
// function or method, the boundary return-statement lowering pops back to.
func (s *Scope) NearestFunction() *Scope {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Tag.Has(TagFunction) || cur.Tag.Has(TagMethod) {
			return cur
		}
	}
	return nil
}
