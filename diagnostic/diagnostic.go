// Package diagnostic is the error-reporting model shared by the schema
// builder, executable binder and validator: a Diagnostic never escapes as a
// Go error across those boundaries, only accumulates into a List (spec.md
// §4.6, §7). The shape — one kind, a main message, an optional primary
// span, zero or more labeled secondary spans, and free-form notes — follows
// the teacher's errors.GraphQLError (message + locations + rule) widened to
// carry multiple spans and a severity-free, errors-only taxonomy (spec.md
// explicitly drops warnings/advice levels).
package diagnostic

import (
	"fmt"

	"github.com/shyptr/gqlcompiler/ast"
)

// Label attaches a short note to a secondary span, e.g. pointing at the
// first of two conflicting definitions while the primary span points at the
// second.
type Label struct {
	Span ast.Span
	Text string
}

// Diagnostic is one validation/build failure.
type Diagnostic struct {
	Kind         Kind
	MainMessage  string
	PrimarySpan  *ast.Span
	Labels       []Label
	Notes        []string
}

func (d Diagnostic) Error() string { return d.MainMessage }

// New builds a Diagnostic with no spans; use WithPrimarySpan/WithLabel/
// WithNote to enrich it, mirroring the teacher's fluent GraphQLError
// construction in errors.New.
func New(kind Kind, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Kind: kind, MainMessage: fmt.Sprintf(format, args...)}
}

func (d Diagnostic) WithPrimarySpan(s ast.Span) Diagnostic {
	d.PrimarySpan = &s
	return d
}

func (d Diagnostic) WithLabel(s ast.Span, text string) Diagnostic {
	d.Labels = append(d.Labels, Label{Span: s, Text: text})
	return d
}

func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}
