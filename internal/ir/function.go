package ir

// Function is a name, a function type, one argument value per parameter,
// and an ordered list of basic blocks. A Function with no blocks is a
// declaration (no body).
type Function struct {
	name   string
	typ    Type
	args   []*Argument
	blocks []*BasicBlock
	loc    *DebugLoc
}

func newFunction(ctx *Context, name string, typ Type) *Function {
	ft := typ.(*FunctionType)
	fn := &Function{name: name, typ: typ}
	fn.args = make([]*Argument, len(ft.Params))
	for i, pt := range ft.Params {
		fn.args[i] = &Argument{
			valueBase: valueBase{name: ctx.GetPrefixedID("arg"), typ: pt},
			Parent:    fn,
			Index:     i,
		}
	}
	return fn
}

func (f *Function) Name() string            { return f.name }
func (f *Function) SetName(n string)        { f.name = n }
func (f *Function) Type() Type              { return f.typ }
func (f *Function) ValueKind() ValueKind    { return ValueFunction }
func (f *Function) DebugLoc() *DebugLoc     { return f.loc }
func (f *Function) SetDebugLoc(l DebugLoc)  { f.loc = &l }
func (f *Function) Signature() *FunctionType { return f.typ.(*FunctionType) }
func (f *Function) Args() []*Argument       { return f.args }
func (f *Function) Arg(i int) *Argument     { return f.args[i] }
func (f *Function) Blocks() []*BasicBlock   { return f.blocks }

// IsDeclaration reports whether the function has no basic blocks.
func (f *Function) IsDeclaration() bool { return len(f.blocks) == 0 }

// EntryBlock returns the first inserted block, by convention the entry
// point, or nil for a declaration.
func (f *Function) EntryBlock() *BasicBlock {
	if len(f.blocks) == 0 {
		return nil
	}
	return f.blocks[0]
}

// AppendBlock creates a new block and inserts it at the end of f's block
// list in one step.
func (f *Function) AppendBlock(name string) *BasicBlock {
	ctx := f.typ.Context()
	b := NewBasicBlock(ctx, name)
	insertBlockInto(b, f)
	return b
}
