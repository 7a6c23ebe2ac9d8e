package ir

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// legacy ANSI SGR codes, reused from the original textual dump's palette.
const (
	ansiReset  = "\x1b[0m"
	ansiOpcode = "\x1b[36m" // cyan
	ansiType   = "\x1b[33m" // yellow
	ansiValue  = "\x1b[32m" // green
)

// StdoutIsTerminal reports whether os.Stdout looks like a terminal, the
// signal `ntc` uses to decide whether WriteTo should emit color.
func StdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// WriteTo emits the legacy diagnostic pretty-printer form of m: one
// function per paragraph, value names prefixed with '%'. This is
// explicitly not a stable persisted format.
func (m *Module) WriteTo(w io.Writer, color bool) {
	p := &printer{w: w, color: color}
	p.printf("; module %s", m.Name)
	if m.SourceFile != "" {
		p.printf(" (%s)", m.SourceFile)
	}
	p.printf("\n")
	for _, fn := range m.functions {
		p.printFunction(fn)
	}
}

type printer struct {
	w     io.Writer
	color bool
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *printer) sgr(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + ansiReset
}

func (p *printer) printFunction(fn *Function) {
	sig := fn.Signature()
	params := make([]string, len(fn.args))
	for i, a := range fn.args {
		params[i] = fmt.Sprintf("%%%s %s", a.Name(), p.sgr(ansiType, a.Type().String()))
	}
	kw := "declare"
	if !fn.IsDeclaration() {
		kw = "define"
	}
	p.printf("\n%s %s @%s(%s)", kw, p.sgr(ansiType, sig.Ret.String()), fn.name, strings.Join(params, ", "))
	if fn.IsDeclaration() {
		p.printf("\n")
		return
	}
	p.printf(" {\n")
	for _, b := range fn.blocks {
		p.printBlock(b)
	}
	p.printf("}\n")
}

func (p *printer) printBlock(b *BasicBlock) {
	p.printf("%s:\n", b.name)
	for _, inst := range b.instructions {
		p.printf("  %s\n", p.instructionText(inst))
	}
}

func (p *printer) operandText(v Value) string {
	if v == nil {
		return "<nil>"
	}
	switch c := v.(type) {
	case *Constant:
		if c.IsString {
			return fmt.Sprintf("%s %q", p.sgr(ansiType, c.Type().String()), c.StringValue)
		}
		if c.Type().Kind() == TypeFloat || c.Type().Kind() == TypeDouble {
			return fmt.Sprintf("%s %s", p.sgr(ansiType, c.Type().String()), p.sgr(ansiValue, fmt.Sprintf("%g", c.FloatValue)))
		}
		return fmt.Sprintf("%s %s", p.sgr(ansiType, c.Type().String()), p.sgr(ansiValue, fmt.Sprintf("%d", c.IntValue)))
	default:
		return fmt.Sprintf("%s %%%s", p.sgr(ansiType, v.Type().String()), v.Name())
	}
}

func (p *printer) instructionText(inst Instruction) string {
	op := p.sgr(ansiOpcode, inst.Opcode().String())
	switch v := inst.(type) {
	case *RetInst:
		if v.Value == nil {
			return op
		}
		return fmt.Sprintf("%s %s", op, p.operandText(v.Value))
	case *BrInst:
		if !v.IsConditional() {
			return fmt.Sprintf("%s label %%%s", op, v.TrueTarget.name)
		}
		return fmt.Sprintf("%s %s, label %%%s, label %%%s", op, p.operandText(v.Condition), v.TrueTarget.name, v.FalseTarget.name)
	case *UnaryInst:
		return fmt.Sprintf("%%%s = %s %s to %s", v.Name(), op, p.operandText(v.Operand), p.sgr(ansiType, v.Type().String()))
	case *AllocaInst:
		return fmt.Sprintf("%%%s = %s %s, %d", v.Name(), op, p.sgr(ansiType, v.ElemType.String()), v.Count)
	case *LoadInst:
		return fmt.Sprintf("%%%s = %s %s", v.Name(), op, p.operandText(v.Ptr))
	case *BinaryInst:
		return fmt.Sprintf("%%%s = %s %s, %s", v.Name(), op, p.operandText(v.LHS), p.operandText(v.RHS))
	case *CmpInst:
		return fmt.Sprintf("%%%s = %s %s %s, %s", v.Name(), op, v.Predicate.String(), p.operandText(v.LHS), p.operandText(v.RHS))
	case *PhiInst:
		parts := make([]string, len(v.Incoming))
		for i, in := range v.Incoming {
			parts[i] = fmt.Sprintf("[ %s, %%%s ]", p.operandText(in.Value), in.Block.name)
		}
		return fmt.Sprintf("%%%s = %s %s %s", v.Name(), op, p.sgr(ansiType, v.Type().String()), strings.Join(parts, ", "))
	case *CallInst:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = p.operandText(a)
		}
		prefix := ""
		if v.Type().Kind() != TypeVoid {
			prefix = fmt.Sprintf("%%%s = ", v.Name())
		}
		return fmt.Sprintf("%s%s %s(%s)", prefix, op, p.operandText(v.Callee), strings.Join(args, ", "))
	case *SelectInst:
		return fmt.Sprintf("%%%s = %s %s, %s, %s", v.Name(), op, p.operandText(v.Condition), p.operandText(v.TrueVal), p.operandText(v.FalseVal))
	case *StoreInst:
		return fmt.Sprintf("%s %s, %s", op, p.operandText(v.StoredValue), p.operandText(v.Ptr))
	case *GetElementPtrInst:
		idx := make([]string, len(v.Indices))
		for i, ix := range v.Indices {
			idx[i] = p.operandText(ix)
		}
		return fmt.Sprintf("%%%s = %s %s, %s, %s", v.Name(), op, p.sgr(ansiType, v.ElemType.String()), p.operandText(v.Ptr), strings.Join(idx, ", "))
	case *ExtractValueInst:
		return fmt.Sprintf("%%%s = %s %s, %v", v.Name(), op, p.operandText(v.Agg), v.Indices)
	case *InsertValueInst:
		return fmt.Sprintf("%%%s = %s %s, %s, %v", v.Name(), op, p.operandText(v.Agg), p.operandText(v.Elem), v.Indices)
	default:
		return op
	}
}
