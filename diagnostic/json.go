package diagnostic

import "github.com/shyptr/gqlcompiler/source"

// JSONLocation is one entry of a JSONError's "locations" array.
type JSONLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// JSONError is the GraphQL-spec error shape (spec.md §6):
// { "message": string, "locations": [{"line": int, "column": int}, ...] }.
type JSONError struct {
	Message   string         `json:"message"`
	Locations []JSONLocation `json:"locations,omitempty"`
}

// ToJSON converts d to the spec-shaped error object, translating its
// primary span (if any) to a 1-based line/column via sources. A Diagnostic
// with no primary span serializes with an empty/omitted "locations" array.
func (d Diagnostic) ToJSON(sources *source.Map) JSONError {
	out := JSONError{Message: d.MainMessage}
	if d.PrimarySpan != nil && sources != nil {
		pos := sources.LineColumn(d.PrimarySpan.FileID, d.PrimarySpan.Start)
		if pos != (source.Position{}) {
			out.Locations = []JSONLocation{{Line: pos.Line, Column: pos.Column}}
		}
	}
	return out
}

// ToJSON converts every Diagnostic in l.
func (l *List) ToJSON(sources *source.Map) []JSONError {
	out := make([]JSONError, 0, l.Len())
	for _, d := range l.Iter() {
		out = append(out, d.ToJSON(sources))
	}
	return out
}
