package ast

// TypeSystemExtension is the `extend ...` counterpart to TypeSystemDefinition.
// An extension never stands on its own: the schema builder locates the
// definition it extends by name and kind (spec.md §4.3).
type TypeSystemExtension interface {
	Located
	// ExtendedName is the name of the definition this extension targets.
	ExtendedName() Name
	isTypeSystemExtension()
}

type SchemaExtension struct {
	Directives     []Directive
	OperationTypes []OperationTypeDefinition
	Loc            Span
}

func (SchemaExtension) isTypeSystemExtension() {}
func (e SchemaExtension) Location() Span       { return e.Loc }
func (e SchemaExtension) ExtendedName() Name   { return Name{} }

type ScalarTypeExtension struct {
	Name       Name
	Directives []Directive
	Loc        Span
}

func (ScalarTypeExtension) isTypeSystemExtension() {}
func (e ScalarTypeExtension) Location() Span       { return e.Loc }
func (e ScalarTypeExtension) ExtendedName() Name   { return e.Name }

type ObjectTypeExtension struct {
	Name                 Name
	ImplementsInterfaces []Name
	Directives           []Directive
	Fields               []FieldDefinition
	Loc                  Span
}

func (ObjectTypeExtension) isTypeSystemExtension() {}
func (e ObjectTypeExtension) Location() Span       { return e.Loc }
func (e ObjectTypeExtension) ExtendedName() Name   { return e.Name }

type InterfaceTypeExtension struct {
	Name                 Name
	ImplementsInterfaces []Name
	Directives           []Directive
	Fields               []FieldDefinition
	Loc                  Span
}

func (InterfaceTypeExtension) isTypeSystemExtension() {}
func (e InterfaceTypeExtension) Location() Span       { return e.Loc }
func (e InterfaceTypeExtension) ExtendedName() Name   { return e.Name }

type UnionTypeExtension struct {
	Name       Name
	Directives []Directive
	Members    []Name
	Loc        Span
}

func (UnionTypeExtension) isTypeSystemExtension() {}
func (e UnionTypeExtension) Location() Span       { return e.Loc }
func (e UnionTypeExtension) ExtendedName() Name   { return e.Name }

type EnumTypeExtension struct {
	Name       Name
	Directives []Directive
	Values     []EnumValueDefinition
	Loc        Span
}

func (EnumTypeExtension) isTypeSystemExtension() {}
func (e EnumTypeExtension) Location() Span       { return e.Loc }
func (e EnumTypeExtension) ExtendedName() Name   { return e.Name }

type InputObjectTypeExtension struct {
	Name       Name
	Directives []Directive
	Fields     []InputValueDefinition
	Loc        Span
}

func (InputObjectTypeExtension) isTypeSystemExtension() {}
func (e InputObjectTypeExtension) Location() Span       { return e.Loc }
func (e InputObjectTypeExtension) ExtendedName() Name   { return e.Name }
