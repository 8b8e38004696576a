// Package diagjson renders a diagnostic.List as the GraphQL specification's
// error JSON shape (spec.md §6): `{ "message": string, "locations": [{
// "line": int, "column": int }, …] }`. Shared by cmd/gqlcheck and
// internal/rpcserver so both report diagnostics identically.
package diagjson

import (
	"github.com/shyptr/gqlcompiler/diagnostic"
	"github.com/shyptr/gqlcompiler/executable"
	"github.com/shyptr/gqlcompiler/schema"
	"github.com/shyptr/gqlcompiler/source"
	"github.com/shyptr/gqlcompiler/valid"
)

// Location is a 1-based line/column pair.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Diagnostic is one spec.md §6 error entry.
type Diagnostic struct {
	Message   string     `json:"message"`
	Locations []Location `json:"locations,omitempty"`
}

// FromList renders every Diagnostic in diags, translating primary spans to
// line/column via sources.
func FromList(diags *diagnostic.List, sources *source.Map) []Diagnostic {
	if diags == nil {
		return nil
	}
	out := make([]Diagnostic, 0, diags.Len())
	for _, d := range diags.Iter() {
		entry := Diagnostic{Message: d.MainMessage}
		if d.PrimarySpan != nil {
			pos := sources.LineColumn(d.PrimarySpan.FileID, d.PrimarySpan.Start)
			entry.Locations = []Location{{Line: pos.Line, Column: pos.Column}}
		}
		out = append(out, entry)
	}
	return out
}

// FromSchemaErr extracts the diagnostics carried by an error returned from
// schema.Validate/graphql.ParseAndValidateSchema, falling back to a single
// entry built from err.Error() if it isn't a valid.WithErrors[schema.Schema].
func FromSchemaErr(err error, sources *source.Map) []Diagnostic {
	if err == nil {
		return nil
	}
	if we, ok := err.(valid.WithErrors[schema.Schema]); ok {
		return FromList(we.Diagnostics, sources)
	}
	return []Diagnostic{{Message: err.Error()}}
}

// FromExecutableErr is FromSchemaErr's counterpart for
// executable.Validate/graphql.ParseAndValidateExecutable errors.
func FromExecutableErr(err error, sources *source.Map) []Diagnostic {
	if err == nil {
		return nil
	}
	if we, ok := err.(valid.WithErrors[executable.ExecutableDocument]); ok {
		return FromList(we.Diagnostics, sources)
	}
	return []Diagnostic{{Message: err.Error()}}
}
