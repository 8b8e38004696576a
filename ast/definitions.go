package ast

// TypeSystemDefinition is the AST-level input to the schema builder: a
// schema definition, a type definition, or a directive definition. GraphQL
// tools that only execute queries may ignore this half of the grammar
// entirely; the schema builder (package schema) is the sole consumer here.
type TypeSystemDefinition interface {
	Located
	isTypeSystemDefinition()
}

// OperationTypeDefinition binds one of query/mutation/subscription to a
// named object type inside a `schema { ... }` block.
type OperationTypeDefinition struct {
	Operation OperationType
	Type      Name
	Loc       Span
}

type SchemaDefinition struct {
	Description    *StringValue
	Directives     []Directive
	OperationTypes []OperationTypeDefinition
	Loc            Span
}

func (SchemaDefinition) isTypeSystemDefinition() {}
func (d SchemaDefinition) Location() Span        { return d.Loc }

// TypeDefinition is the common shape shared by every kind of type
// definition; a type switch distinguishes Scalar/Object/Interface/Union/
// Enum/InputObject, mirroring schema.ExtendedType's own variant.
type TypeDefinition interface {
	TypeSystemDefinition
	TypeName() Name
}

type ScalarTypeDefinition struct {
	Description *StringValue
	Name        Name
	Directives  []Directive
	Loc         Span
}

func (ScalarTypeDefinition) isTypeSystemDefinition() {}
func (d ScalarTypeDefinition) Location() Span        { return d.Loc }
func (d ScalarTypeDefinition) TypeName() Name        { return d.Name }

type FieldDefinition struct {
	Description *StringValue
	Name        Name
	Arguments   []InputValueDefinition
	Type        TypeRef
	Directives  []Directive
	Loc         Span
}

func (f FieldDefinition) Location() Span { return f.Loc }

type InputValueDefinition struct {
	Description  *StringValue
	Name         Name
	Type         TypeRef
	DefaultValue Value
	Directives   []Directive
	Loc          Span
}

func (v InputValueDefinition) Location() Span { return v.Loc }

type ObjectTypeDefinition struct {
	Description          *StringValue
	Name                  Name
	ImplementsInterfaces  []Name
	Directives            []Directive
	Fields                []FieldDefinition
	Loc                   Span
}

func (ObjectTypeDefinition) isTypeSystemDefinition() {}
func (d ObjectTypeDefinition) Location() Span        { return d.Loc }
func (d ObjectTypeDefinition) TypeName() Name        { return d.Name }

type InterfaceTypeDefinition struct {
	Description          *StringValue
	Name                  Name
	ImplementsInterfaces  []Name
	Directives            []Directive
	Fields                []FieldDefinition
	Loc                   Span
}

func (InterfaceTypeDefinition) isTypeSystemDefinition() {}
func (d InterfaceTypeDefinition) Location() Span        { return d.Loc }
func (d InterfaceTypeDefinition) TypeName() Name        { return d.Name }

type UnionTypeDefinition struct {
	Description *StringValue
	Name        Name
	Directives  []Directive
	Members     []Name
	Loc         Span
}

func (UnionTypeDefinition) isTypeSystemDefinition() {}
func (d UnionTypeDefinition) Location() Span        { return d.Loc }
func (d UnionTypeDefinition) TypeName() Name        { return d.Name }

type EnumValueDefinition struct {
	Description *StringValue
	Value       Name
	Directives  []Directive
	Loc         Span
}

func (v EnumValueDefinition) Location() Span { return v.Loc }

type EnumTypeDefinition struct {
	Description *StringValue
	Name        Name
	Directives  []Directive
	Values      []EnumValueDefinition
	Loc         Span
}

func (EnumTypeDefinition) isTypeSystemDefinition() {}
func (d EnumTypeDefinition) Location() Span        { return d.Loc }
func (d EnumTypeDefinition) TypeName() Name        { return d.Name }

type InputObjectTypeDefinition struct {
	Description *StringValue
	Name        Name
	Directives  []Directive
	Fields      []InputValueDefinition
	Loc         Span
}

func (InputObjectTypeDefinition) isTypeSystemDefinition() {}
func (d InputObjectTypeDefinition) Location() Span        { return d.Loc }
func (d InputObjectTypeDefinition) TypeName() Name        { return d.Name }

// DirectiveLocation is one of the grammar's executable or type-system
// locations a directive definition may declare.
type DirectiveLocation string

const (
	LocQuery              DirectiveLocation = "QUERY"
	LocMutation           DirectiveLocation = "MUTATION"
	LocSubscription       DirectiveLocation = "SUBSCRIPTION"
	LocField              DirectiveLocation = "FIELD"
	LocFragmentDefinition DirectiveLocation = "FRAGMENT_DEFINITION"
	LocFragmentSpread     DirectiveLocation = "FRAGMENT_SPREAD"
	LocInlineFragment     DirectiveLocation = "INLINE_FRAGMENT"
	LocVariableDefinition DirectiveLocation = "VARIABLE_DEFINITION"

	LocSchema               DirectiveLocation = "SCHEMA"
	LocScalar                DirectiveLocation = "SCALAR"
	LocObject                DirectiveLocation = "OBJECT"
	LocFieldDefinition       DirectiveLocation = "FIELD_DEFINITION"
	LocArgumentDefinition    DirectiveLocation = "ARGUMENT_DEFINITION"
	LocInterface             DirectiveLocation = "INTERFACE"
	LocUnion                 DirectiveLocation = "UNION"
	LocEnum                  DirectiveLocation = "ENUM"
	LocEnumValue             DirectiveLocation = "ENUM_VALUE"
	LocInputObject           DirectiveLocation = "INPUT_OBJECT"
	LocInputFieldDefinition  DirectiveLocation = "INPUT_FIELD_DEFINITION"
)

type DirectiveDefinition struct {
	Description *StringValue
	Name        Name
	Arguments   []InputValueDefinition
	Repeatable  bool
	Locations   []DirectiveLocation
	Loc         Span
}

func (DirectiveDefinition) isTypeSystemDefinition() {}
func (d DirectiveDefinition) Location() Span        { return d.Loc }
