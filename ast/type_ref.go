package ast

import "fmt"

// TypeRef is the syntactic type reference used in field return types,
// argument/variable/input-field types, and interface implementation lists:
// Named(Name) | List(TypeRef) | NonNull(Named(Name)) | NonNull(List(TypeRef)).
// Resolution against a type system happens elsewhere (schema.Schema); a
// TypeRef by itself is pure syntax.
type TypeRef interface {
	Located
	// NamedType returns the innermost Named name, unwrapping List/NonNull.
	NamedType() Name
	// String renders the reference in GraphQL syntax, e.g. "[String!]!".
	String() string
	isTypeRef()
}

type NamedTypeRef struct {
	Name Name
	Loc  Span
}

func (NamedTypeRef) isTypeRef()          {}
func (t NamedTypeRef) Location() Span    { return t.Loc }
func (t NamedTypeRef) NamedType() Name   { return t.Name }
func (t NamedTypeRef) String() string    { return t.Name.String() }

type ListTypeRef struct {
	Element TypeRef
	Loc     Span
}

func (ListTypeRef) isTypeRef()        {}
func (t ListTypeRef) Location() Span  { return t.Loc }
func (t ListTypeRef) NamedType() Name { return t.Element.NamedType() }
func (t ListTypeRef) String() string  { return fmt.Sprintf("[%s]", t.Element.String()) }

// NonNullTypeRef wraps either a NamedTypeRef or a ListTypeRef. The parser
// never wraps one NonNullTypeRef in another, matching the grammar; the Go
// type itself does not prevent it.
type NonNullTypeRef struct {
	Element TypeRef
	Loc     Span
}

func (NonNullTypeRef) isTypeRef()        {}
func (t NonNullTypeRef) Location() Span  { return t.Loc }
func (t NonNullTypeRef) NamedType() Name { return t.Element.NamedType() }
func (t NonNullTypeRef) String() string  { return t.Element.String() + "!" }

// IsNonNull reports whether ref is a NonNullTypeRef, for call sites that
// need to branch without a type switch (e.g. default-value nullability).
func IsNonNull(ref TypeRef) bool {
	_, ok := ref.(NonNullTypeRef)
	return ok
}
