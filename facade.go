// Package graphql is the top-level facade (spec.md §4.7): the handful of
// entry points a caller actually needs — parse a schema, parse an
// executable document against it, validate either, or do both from one
// mixed source — built entirely out of the schema, executable, source and
// diagnostic packages. It holds no state of its own and never blocks: every
// function takes its collaborators (an ast.Parser, a *source.Map) as
// explicit arguments rather than reaching for package-level globals, per
// spec.md §5's "the design explicitly forbids interior mutability in
// publicly exposed values" / "no global state".
package graphql

import (
	"fmt"

	"github.com/shyptr/gqlcompiler/ast"
	"github.com/shyptr/gqlcompiler/diagnostic"
	"github.com/shyptr/gqlcompiler/executable"
	"github.com/shyptr/gqlcompiler/schema"
	"github.com/shyptr/gqlcompiler/source"
	"github.com/shyptr/gqlcompiler/valid"
)

func appendSyntaxErrors(diags *diagnostic.List, errs []ast.SyntaxError) {
	for _, e := range errs {
		diags.Add(diagnostic.New(diagnostic.Syntax, "%s", e.Message).WithPrimarySpan(e.Span))
	}
}

// ParseSchema parses text (allocating it a file id in sources) and builds a
// Schema from it, returning every syntax and schema-structure diagnostic
// collected along the way. The returned Schema may be partially built; it
// is not validated (spec.md §4.7 "Schema::parse").
func ParseSchema(p ast.Parser, sources *source.Map, path, text string) (*schema.Schema, *diagnostic.List) {
	diags := diagnostic.NewList()
	fileID := sources.Add(path, text)
	doc, synErrs := p.Parse(text, fileID)
	appendSyntaxErrors(diags, synErrs)

	sch, buildDiags := schema.NewBuilder().Build(doc)
	diags.Merge(buildDiags)
	return sch, diags
}

// ParseAndValidateSchema parses and validates text in one step, short-
// circuiting validation if parsing/building already produced a diagnostic
// (spec.md §4.7 "Schema::parse_and_validate").
func ParseAndValidateSchema(p ast.Parser, sources *source.Map, path, text string) (valid.Valid[schema.Schema], error) {
	sch, diags := ParseSchema(p, sources, path, text)
	if diags.Len() > 0 {
		return valid.Valid[schema.Schema]{}, valid.WithErrors[schema.Schema]{Value: sch, Diagnostics: diags}
	}
	return schema.Validate(sch)
}

// ParseExecutable parses text and binds it against sch, an already-
// validated Schema (spec.md §4.7 "ExecutableDocument::parse"). The result
// is not itself validated.
func ParseExecutable(p ast.Parser, sources *source.Map, sch valid.Valid[schema.Schema], path, text string) (*executable.ExecutableDocument, *diagnostic.List) {
	diags := diagnostic.NewList()
	fileID := sources.Add(path, text)
	doc, synErrs := p.Parse(text, fileID)
	appendSyntaxErrors(diags, synErrs)

	execDoc, bindDiags := executable.Bind(sch.Get(), sources, doc)
	diags.Merge(bindDiags)
	return execDoc, diags
}

// ParseAndValidateExecutable parses, binds and validates text against sch
// in one step (spec.md §4.7 "ExecutableDocument::parse_and_validate").
func ParseAndValidateExecutable(p ast.Parser, sources *source.Map, sch valid.Valid[schema.Schema], path, text string) (valid.Valid[executable.ExecutableDocument], error) {
	execDoc, diags := ParseExecutable(p, sources, sch, path, text)
	if diags.Len() > 0 {
		return valid.Valid[executable.ExecutableDocument]{}, valid.WithErrors[executable.ExecutableDocument]{Value: execDoc, Diagnostics: diags}
	}
	return executable.Validate(sch.Get(), execDoc)
}

// ParseMixedValidate parses one source that freely interleaves type-system
// and executable definitions, builds and validates the Schema from it, then
// binds and validates the operations/fragments against that same Schema
// (spec.md §4.7 "parse_mixed_validate"). Unlike the split Schema/
// ExecutableDocument entry points, a type-system definition found alongside
// an operation is not an error here — that is the point of this function —
// so binding uses executable.BindMixed rather than executable.Bind.
//
// On any diagnostic anywhere in the pipeline, both Valid results are the
// zero value and diags is non-empty; on full success diags is empty (but
// never nil, so callers can always call Len()/Iter() on it).
func ParseMixedValidate(p ast.Parser, sources *source.Map, path, text string) (valid.Valid[schema.Schema], valid.Valid[executable.ExecutableDocument], *diagnostic.List) {
	diags := diagnostic.NewList()
	fileID := sources.Add(path, text)
	doc, synErrs := p.Parse(text, fileID)
	appendSyntaxErrors(diags, synErrs)

	sch, buildDiags := schema.NewBuilder().Build(doc)
	diags.Merge(buildDiags)

	validSchema, err := schema.Validate(sch)
	if err != nil {
		if we, ok := err.(valid.WithErrors[schema.Schema]); ok {
			diags.Merge(we.Diagnostics)
		}
		return valid.Valid[schema.Schema]{}, valid.Valid[executable.ExecutableDocument]{}, diags
	}

	execDoc, bindDiags := executable.BindMixed(validSchema.Get(), sources, doc)
	diags.Merge(bindDiags)

	validExec, err := executable.Validate(validSchema.Get(), execDoc)
	if err != nil {
		if we, ok := err.(valid.WithErrors[executable.ExecutableDocument]); ok {
			diags.Merge(we.Diagnostics)
		}
		return valid.Valid[schema.Schema]{}, valid.Valid[executable.ExecutableDocument]{}, diags
	}

	if diags.Len() > 0 {
		return valid.Valid[schema.Schema]{}, valid.Valid[executable.ExecutableDocument]{}, diags
	}
	return validSchema, validExec, diags
}

// ParseFieldSet parses a standalone selection-set snippet (no surrounding
// `{ }` required — ParseFieldSet supplies them) and binds it against
// parentType in sch, for tooling that checks a fragment-like field set
// without an enclosing operation (spec.md §4.7 "FieldSet::parse"). It
// reuses the general Parser collaborator — wrapping text as an anonymous
// query's body — rather than a separate hand-rolled field-set grammar, so
// the same recursion limit and syntax-error reporting apply uniformly.
func ParseFieldSet(p ast.Parser, sources *source.Map, sch valid.Valid[schema.Schema], parentType schema.ExtendedType, path, text string) (*executable.SelectionSet, *diagnostic.List) {
	diags := diagnostic.NewList()
	wrapped := "{" + text + "}"
	fileID := sources.Add(path, wrapped)
	doc, synErrs := p.Parse(wrapped, fileID)
	appendSyntaxErrors(diags, synErrs)

	var astSet ast.SelectionSet
	found := false
	for _, n := range doc.Definitions {
		if od, ok := n.(ast.OperationDefinition); ok && od.Type == ast.Query {
			astSet = od.SelectionSet
			found = true
			break
		}
	}
	if !found {
		diags.Add(diagnostic.New(diagnostic.Syntax, "field set text did not parse to a selection set"))
		return nil, diags
	}

	set, bindDiags := executable.BindFieldSet(sch.Get(), parentType, astSet)
	diags.Merge(bindDiags)
	return set, diags
}

// ParseTypeRef parses a bare type reference, e.g. "[String!]!" (spec.md
// §4.7 "Type::parse"). Unlike the other facade entries this needs no
// Parser collaborator or Schema: a type reference's grammar is a handful of
// tokens (a name, "[", "]", "!") with no nesting depth worth a recursion
// limit, so it is parsed directly rather than round-tripped through a full
// Document parse.
func ParseTypeRef(text string) (ast.TypeRef, error) {
	p := &typeRefParser{input: text}
	ref, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("graphql: unexpected trailing input %q", p.input[p.pos:])
	}
	return ref, nil
}

type typeRefParser struct {
	input string
	pos   int
}

func (p *typeRefParser) skipSpace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func isNameStartOrByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

func (p *typeRefParser) parseType() (ast.TypeRef, error) {
	p.skipSpace()
	var ref ast.TypeRef
	if p.pos < len(p.input) && p.input[p.pos] == '[' {
		p.pos++
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.pos >= len(p.input) || p.input[p.pos] != ']' {
			return nil, fmt.Errorf("graphql: expected ']' at offset %d", p.pos)
		}
		p.pos++
		ref = ast.ListTypeRef{Element: elem}
	} else {
		start := p.pos
		for p.pos < len(p.input) && isNameStartOrByte(p.input[p.pos]) {
			p.pos++
		}
		if start == p.pos {
			return nil, fmt.Errorf("graphql: expected a type name at offset %d", start)
		}
		name, err := ast.NewName(p.input[start:p.pos], ast.Span{})
		if err != nil {
			return nil, err
		}
		ref = ast.NamedTypeRef{Name: name}
	}
	p.skipSpace()
	if p.pos < len(p.input) && p.input[p.pos] == '!' {
		p.pos++
		ref = ast.NonNullTypeRef{Element: ref}
	}
	return ref, nil
}
