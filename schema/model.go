// Package schema assembles and validates a GraphQL type system: the Schema
// entity of spec.md §3, built from AST type-system definitions and
// extensions (§4.3) and checked by the type-system validation rules (§4.5).
package schema

import (
	"github.com/shyptr/gqlcompiler/ast"
	"github.com/shyptr/gqlcompiler/internal/omap"
)

// ExtensionID identifies one `extend ...` block: its AST span, which is
// stable for the lifetime of the Document it came from and unique enough
// to distinguish two extensions of the same type (spec.md §3 "Component
// origin").
type ExtensionID ast.Span

// Origin records whether a schema member came from the type's original
// Definition or from a specific Extension.
type Origin struct {
	extension *ExtensionID // nil ⇒ Definition
}

// DefinitionOrigin is the Origin of a member that came from the original
// type definition, not an extension.
var DefinitionOrigin = Origin{}

// ExtensionOrigin returns the Origin for a member merged in from ext.
func ExtensionOrigin(ext ExtensionID) Origin { return Origin{extension: &ext} }

// IsExtension reports whether the member came from an extension, and if so
// which one.
func (o Origin) IsExtension() (ExtensionID, bool) {
	if o.extension == nil {
		return ExtensionID{}, false
	}
	return *o.extension, true
}

// Component pairs a schema member's node with its Origin, so a single
// ordered collection can hold both definition-owned and extension-owned
// items while preserving where each came from (spec.md §3, §9 "Definition +
// Extensions merging").
type Component[T any] struct {
	Origin Origin
	Node   T
}

// ComponentName is a Name tagged with its Origin, used for references that
// may themselves come from a definition or an extension: the schema's root
// operation type names, a type's implemented-interfaces set, a union's
// member set.
type ComponentName struct {
	Name   ast.Name
	Origin Origin
}

// FieldDefinition is a resolved field of an Object or Interface type.
type FieldDefinition struct {
	Description *ast.StringValue
	Name        ast.Name
	Arguments   []InputValueDefinition
	Type        ast.TypeRef
	Directives  []ast.Directive
	Loc         *ast.Span
}

// Argument looks up a declared argument by name.
func (f FieldDefinition) Argument(name string) (InputValueDefinition, bool) {
	for _, a := range f.Arguments {
		if a.Name.String() == name {
			return a, true
		}
	}
	return InputValueDefinition{}, false
}

// InputValueDefinition is a resolved argument (of a field or directive) or
// input-object field.
type InputValueDefinition struct {
	Description  *ast.StringValue
	Name         ast.Name
	Type         ast.TypeRef
	DefaultValue ast.Value
	Directives   []ast.Directive
	Loc          *ast.Span
}

// EnumValueDefinition is one resolved member of an Enum type.
type EnumValueDefinition struct {
	Value      ast.Name
	Directives []ast.Directive
	Loc        *ast.Span
}

// DirectiveDefinition is a resolved `directive @name(...) on ...` — either
// user-authored or one of the four built-ins.
type DirectiveDefinition struct {
	Description *ast.StringValue
	Name        ast.Name
	Arguments   []InputValueDefinition
	Repeatable  bool
	Locations   []ast.DirectiveLocation
	Loc         *ast.Span
}

func (d DirectiveDefinition) Argument(name string) (InputValueDefinition, bool) {
	for _, a := range d.Arguments {
		if a.Name.String() == name {
			return a, true
		}
	}
	return InputValueDefinition{}, false
}

func (d DirectiveDefinition) HasLocation(loc ast.DirectiveLocation) bool {
	for _, l := range d.Locations {
		if l == loc {
			return true
		}
	}
	return false
}

// TypeKind distinguishes the six ExtendedType variants without a type
// assertion, useful for quick dispatch (e.g. in diagnostics).
type TypeKind int

const (
	ScalarKind TypeKind = iota
	ObjectKind
	InterfaceKind
	UnionKind
	EnumKind
	InputObjectKind
)

// ExtendedType is a named type in a Schema: its original definition plus
// whatever extensions were successfully merged into it (spec.md §3).
type ExtendedType interface {
	TypeName() ast.Name
	Kind() TypeKind
	Description() *ast.StringValue
}

type ScalarType struct {
	Name        ast.Name
	Desc        *ast.StringValue
	Directives  []Component[ast.Directive]
	Loc         *ast.Span
}

func (t *ScalarType) TypeName() ast.Name          { return t.Name }
func (t *ScalarType) Kind() TypeKind               { return ScalarKind }
func (t *ScalarType) Description() *ast.StringValue { return t.Desc }

// ObjectType and InterfaceType share their shape exactly (spec.md §3), so
// fieldedType captures the common fields and both embed it.
type fieldedType struct {
	Name                ast.Name
	Desc                *ast.StringValue
	ImplementsInterfaces *omap.Map[string, ComponentName]
	Directives          []Component[ast.Directive]
	Fields              *omap.Map[string, Component[FieldDefinition]]
	Loc                 *ast.Span
}

type ObjectType struct{ fieldedType }

func (t *ObjectType) TypeName() ast.Name          { return t.Name }
func (t *ObjectType) Kind() TypeKind               { return ObjectKind }
func (t *ObjectType) Description() *ast.StringValue { return t.Desc }

type InterfaceType struct{ fieldedType }

func (t *InterfaceType) TypeName() ast.Name          { return t.Name }
func (t *InterfaceType) Kind() TypeKind               { return InterfaceKind }
func (t *InterfaceType) Description() *ast.StringValue { return t.Desc }

type UnionType struct {
	Name       ast.Name
	Desc       *ast.StringValue
	Directives []Component[ast.Directive]
	Members    *omap.Map[string, ComponentName]
	Loc        *ast.Span
}

func (t *UnionType) TypeName() ast.Name          { return t.Name }
func (t *UnionType) Kind() TypeKind               { return UnionKind }
func (t *UnionType) Description() *ast.StringValue { return t.Desc }

type EnumType struct {
	Name       ast.Name
	Desc       *ast.StringValue
	Directives []Component[ast.Directive]
	Values     *omap.Map[string, Component[EnumValueDefinition]]
	Loc        *ast.Span
}

func (t *EnumType) TypeName() ast.Name          { return t.Name }
func (t *EnumType) Kind() TypeKind               { return EnumKind }
func (t *EnumType) Description() *ast.StringValue { return t.Desc }

type InputObjectType struct {
	Name       ast.Name
	Desc       *ast.StringValue
	Directives []Component[ast.Directive]
	Fields     *omap.Map[string, Component[InputValueDefinition]]
	Loc        *ast.Span
}

func (t *InputObjectType) TypeName() ast.Name          { return t.Name }
func (t *InputObjectType) Kind() TypeKind               { return InputObjectKind }
func (t *InputObjectType) Description() *ast.StringValue { return t.Desc }

// SchemaDefinition is the single required `schema { ... }` record: its
// directives and the (optional) root operation type each type carries.
type SchemaDefinition struct {
	Directives   []ast.Directive
	Query        *ComponentName
	Mutation     *ComponentName
	Subscription *ComponentName
}

// Schema is the top-level entity: the type system built from one or more
// source documents, not yet necessarily valid.
type Schema struct {
	Description         *ast.StringValue
	SchemaDefinition    SchemaDefinition
	DirectiveDefinitions *omap.Map[string, DirectiveDefinition]
	Types               *omap.Map[string, ExtendedType]
}

func newSchema() *Schema {
	return &Schema{
		DirectiveDefinitions: omap.New[string, DirectiveDefinition](),
		Types:                omap.New[string, ExtendedType](),
	}
}

// RootType returns the Object type bound to op ("query"/"mutation"/
// "subscription"), or nil if that root is not set.
func (s *Schema) RootType(op ast.OperationType) *ObjectType {
	var cn *ComponentName
	switch op {
	case ast.Query:
		cn = s.SchemaDefinition.Query
	case ast.Mutation:
		cn = s.SchemaDefinition.Mutation
	case ast.Subscription:
		cn = s.SchemaDefinition.Subscription
	}
	if cn == nil {
		return nil
	}
	t, ok := s.Types.Get(cn.Name.String())
	if !ok {
		return nil
	}
	obj, _ := t.(*ObjectType)
	return obj
}

// Clone returns a shallow copy of the Schema whose Types/DirectiveDefinitions
// maps are independently mutable (copy-on-write, spec.md §3 "Shared node").
func (s *Schema) Clone() *Schema {
	clone := *s
	clone.DirectiveDefinitions = s.DirectiveDefinitions.Clone()
	clone.Types = s.Types.Clone()
	return &clone
}
