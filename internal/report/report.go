// Package report is the single sink every compile-time diagnostic flows
// into: a typed diagnostic with a source location, accumulated across
// an entire compile run so a user sees every error at once rather than
// stopping at the first. Modeled on sentra's SentraError value (a
// typed error with a fluent WithSource builder and a multi-line,
// source-excerpt rendering), generalized to a small diagnostic taxonomy
// and tagged with a per-run id so diagnostics from concurrently
// compiled files stay distinguishable.
package report

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kr/text"
)

// Kind classifies a diagnostic by the phase that raised it.
type Kind string

const (
	SyntaxError      Kind = "SyntaxError"
	TypeMismatch     Kind = "TypeMismatch"
	UndeclaredSymbol Kind = "UndeclaredSymbol"
	Redeclaration    Kind = "Redeclaration"
	FlowError        Kind = "FlowError"
	IRInvariant      Kind = "IRInvariant"
)

// Diagnostic is one reported problem.
type Diagnostic struct {
	Kind    Kind
	Message string
	File    string
	Line    int
	Source  string // optional excerpt of the offending source line
}

func (d Diagnostic) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", d.Kind, d.Message)
	if d.File != "" {
		fmt.Fprintf(&sb, "\n  at %s:%d", d.File, d.Line)
	} else if d.Line != 0 {
		fmt.Fprintf(&sb, "\n  at line %d", d.Line)
	}
	if d.Source != "" {
		fmt.Fprintf(&sb, "\n%s", text.Indent(d.Source, "  "))
	}
	return sb.String()
}

// Report accumulates diagnostics for one compile run, identified by RunID
// (a fresh UUID minted once per ntCompile call) so diagnostics interleaved
// from several concurrently scanned/parsed files remain attributable.
type Report struct {
	RunID       uuid.UUID
	diagnostics []Diagnostic
}

// New creates a Report with a fresh run id.
func New() *Report {
	return &Report{RunID: uuid.New()}
}

// Add appends a diagnostic to the report.
func (r *Report) Add(d Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
}

// Addf is sugar for Add with a formatted message.
func (r *Report) Addf(kind Kind, file string, line int, format string, args ...any) {
	r.Add(Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), File: file, Line: line})
}

// HasErrors reports whether any diagnostic has been recorded. A
// non-empty report discards the module it was produced for.
func (r *Report) HasErrors() bool { return len(r.diagnostics) > 0 }

func (r *Report) Diagnostics() []Diagnostic { return r.diagnostics }

// Merge appends every diagnostic from other into r, used to combine
// per-file reports from the driver's concurrent scan/parse phase.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.diagnostics = append(r.diagnostics, other.diagnostics...)
}

// String renders every diagnostic, one per paragraph, prefixed with the
// run id so output from multiple runs (or concurrent test cases) doesn't
// get confused in aggregated logs.
func (r *Report) String() string {
	var sb strings.Builder
	for _, d := range r.diagnostics {
		fmt.Fprintf(&sb, "[%s] %s\n\n", r.RunID, d.Error())
	}
	return sb.String()
}
