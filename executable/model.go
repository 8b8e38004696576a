// Package executable binds a parsed executable document (operations and
// fragments) against a Schema into an ExecutableDocument (spec.md §4.4),
// then validates it (validate.go). Binding never fails outright — every
// selection gets a best-effort Definition, possibly a placeholder, so the
// validator always has a complete tree to run its rules against.
package executable

import (
	"github.com/shyptr/gqlcompiler/ast"
	"github.com/shyptr/gqlcompiler/internal/omap"
	"github.com/shyptr/gqlcompiler/schema"
	"github.com/shyptr/gqlcompiler/source"
)

// ExecutableDocument is the bound form of one or more parsed executable
// documents: operations and fragments resolved against a Schema.
type ExecutableDocument struct {
	Operations Operations
	Fragments  *omap.Map[string, *Fragment]
	Sources    *source.Map
}

// Operations holds the at-most-one anonymous operation and the ordered set
// of named operations a document may declare.
type Operations struct {
	Anonymous *Operation
	Named     *omap.Map[string, *Operation]
}

// Operation is a bound `query`/`mutation`/`subscription`.
type Operation struct {
	Type         ast.OperationType
	Name         ast.Name // zero ⇒ anonymous
	Variables    []VariableDefinition
	Directives   []ast.Directive
	RootType     schema.ExtendedType // nil when the schema has no matching root
	SelectionSet *SelectionSet
	Loc          ast.Span
}

// VariableDefinition is a bound `$name: Type = default`.
type VariableDefinition struct {
	Name         ast.Name
	Type         ast.TypeRef
	DefaultValue ast.Value
	Directives   []ast.Directive
	Loc          ast.Span
}

// Fragment is a bound `fragment Name on Type { ... }`.
type Fragment struct {
	Name          ast.Name
	TypeCondition ast.Name
	ConditionType schema.ExtendedType // nil when the named type doesn't exist
	Directives    []ast.Directive
	SelectionSet  *SelectionSet
	Loc           ast.Span
}

// SelectionSet is tagged with the name of its parent type, so validation
// rules never need to re-resolve it (spec.md §4.4 step 5).
type SelectionSet struct {
	ParentType ast.Name
	Selections []Selection
	Loc        ast.Span
}

func (s *SelectionSet) IsEmpty() bool { return s == nil || len(s.Selections) == 0 }

// Selection is implemented by *Field, *InlineFragment and *FragmentSpread.
type Selection interface {
	Location() ast.Span
	isSelection()
}

// Field is a bound field selection. Definition is nil when the field name
// could not be resolved against ParentType (spec.md §4.4 step 4) — a
// placeholder the "Undefined field" rule reports, not a Go nil the caller
// must separately guard every access against; validated code never reaches
// a Field whose Definition is nil without UndefinedField already having
// fired.
type Field struct {
	Alias        ast.Name
	Name         ast.Name
	Arguments    []ast.Argument
	Directives   []ast.Directive
	SelectionSet *SelectionSet
	Definition   *schema.FieldDefinition
	Loc          ast.Span
}

func (Field) isSelection()         {}
func (f Field) Location() ast.Span { return f.Loc }

func (f Field) ResponseName() string {
	if !f.Alias.IsZero() {
		return f.Alias.String()
	}
	return f.Name.String()
}

// InlineFragment is a bound `... on Type { ... }` or `... { ... }`.
// TypeCondition always names the effective parent type — the explicit
// condition, or the enclosing selection set's parent when omitted.
type InlineFragment struct {
	TypeCondition ast.Name
	Explicit      bool
	Directives    []ast.Directive
	SelectionSet  *SelectionSet
	Loc           ast.Span
}

func (InlineFragment) isSelection()         {}
func (f InlineFragment) Location() ast.Span { return f.Loc }

// FragmentSpread is a bound `...Name`. It carries no child selection set —
// the spread's fragment is bound once, independently, in Fragments.
type FragmentSpread struct {
	FragmentName ast.Name
	Directives   []ast.Directive
	Loc          ast.Span
}

func (FragmentSpread) isSelection()         {}
func (f FragmentSpread) Location() ast.Span { return f.Loc }
