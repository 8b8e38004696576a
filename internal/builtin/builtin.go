// Package builtin is the name resolver's built-ins registry: the fixed set
// of scalar, directive and introspection-type definitions every Schema
// starts from (spec.md §4.2). Built-ins are expressed as ordinary
// ast.TypeSystemDefinition values carrying ast.BuiltinFileID, so the schema
// builder can seed them through the exact same insertion path as
// user-authored definitions — no special-cased "is this a built-in" branch
// is needed anywhere outside this package.
package builtin

import "github.com/shyptr/gqlcompiler/ast"

func span() ast.Span { return ast.Span{FileID: ast.BuiltinFileID} }

func named(n ast.Name) ast.TypeRef    { return ast.NamedTypeRef{Name: n, Loc: span()} }
func nonNull(t ast.TypeRef) ast.TypeRef { return ast.NonNullTypeRef{Element: t, Loc: span()} }

func desc(s string) *ast.StringValue {
	v := ast.StringValue{Value: s, Loc: span()}
	return &v
}

// ScalarNames are the five built-in leaf scalars.
var ScalarNames = []string{"Int", "Float", "String", "Boolean", "ID"}

// IntrospectionTypeNames are the schema-introspection types every Schema
// declares implicitly; attempting to redeclare one is a validation error
// (spec.md §4.2, §9).
var IntrospectionTypeNames = []string{
	"__Schema", "__Type", "__Field", "__InputValue", "__EnumValue",
	"__Directive", "__TypeKind", "__DirectiveLocation",
}

// DirectiveNames are the four built-in directives. Redefining one of these
// is permitted by spec.md §9's resolved Open Question; redefining an
// introspection type is not.
var DirectiveNames = []string{"skip", "include", "deprecated", "specifiedBy"}

func scalar(name string, description string) ast.ScalarTypeDefinition {
	return ast.ScalarTypeDefinition{
		Description: desc(description),
		Name:        ast.MustName(name),
		Loc:         span(),
	}
}

func arg(name string, t ast.TypeRef, def ast.Value) ast.InputValueDefinition {
	return ast.InputValueDefinition{Name: ast.MustName(name), Type: t, DefaultValue: def, Loc: span()}
}

func directive(name string, repeatable bool, locs []ast.DirectiveLocation, args ...ast.InputValueDefinition) ast.DirectiveDefinition {
	return ast.DirectiveDefinition{
		Name:       ast.MustName(name),
		Arguments:  args,
		Repeatable: repeatable,
		Locations:  locs,
		Loc:        span(),
	}
}

// Scalars returns the Int/Float/String/Boolean/ID definitions.
func Scalars() []ast.TypeSystemDefinition {
	return []ast.TypeSystemDefinition{
		scalar("Int", "The `Int` scalar type represents a signed 32-bit numeric non-fractional value."),
		scalar("Float", "The `Float` scalar type represents signed double-precision fractional values as specified by IEEE 754."),
		scalar("String", "The `String` scalar type represents textual data, represented as UTF-8 character sequences."),
		scalar("Boolean", "The `Boolean` scalar type represents `true` or `false`."),
		scalar("ID", "The `ID` scalar type represents a unique identifier, often used to refetch an object or as the key for a cache."),
	}
}

// Directives returns @skip, @include, @deprecated and @specifiedBy.
func Directives() []ast.DirectiveDefinition {
	ifArg := arg("if", nonNull(named(ast.MustName("Boolean"))), nil)
	reasonDefault := ast.StringValue{Value: "No longer supported", Loc: span()}
	return []ast.DirectiveDefinition{
		directive("skip", false, []ast.DirectiveLocation{ast.LocField, ast.LocFragmentSpread, ast.LocInlineFragment}, ifArg),
		directive("include", false, []ast.DirectiveLocation{ast.LocField, ast.LocFragmentSpread, ast.LocInlineFragment}, ifArg),
		directive("deprecated", false, []ast.DirectiveLocation{ast.LocFieldDefinition, ast.LocArgumentDefinition, ast.LocInputFieldDefinition, ast.LocEnumValue},
			arg("reason", named(ast.MustName("String")), reasonDefault)),
		directive("specifiedBy", false, []ast.DirectiveLocation{ast.LocScalar},
			arg("url", nonNull(named(ast.MustName("String"))), nil)),
	}
}

func field(name string, t ast.TypeRef, args ...ast.InputValueDefinition) ast.FieldDefinition {
	return ast.FieldDefinition{Name: ast.MustName(name), Type: t, Arguments: args, Loc: span()}
}

func enumValue(v string) ast.EnumValueDefinition {
	return ast.EnumValueDefinition{Value: ast.MustName(v), Loc: span()}
}

// IntrospectionTypes returns __Schema, __Type, __Field, __InputValue,
// __EnumValue, __Directive, __TypeKind and __DirectiveLocation. Shapes
// follow the October 2021 spec's introspection schema (Appendix); the
// engine declares them so introspective queries validate but never answers
// them (spec.md §1 Non-goals).
func IntrospectionTypes() []ast.TypeSystemDefinition {
	listOf := func(n string) ast.TypeRef { return ast.ListTypeRef{Element: named(ast.MustName(n)), Loc: span()} }
	nnListOfNN := func(n string) ast.TypeRef {
		return nonNull(ast.ListTypeRef{Element: nonNull(named(ast.MustName(n))), Loc: span()})
	}

	typeKind := ast.EnumTypeDefinition{
		Name: ast.MustName("__TypeKind"),
		Values: []ast.EnumValueDefinition{
			enumValue("SCALAR"), enumValue("OBJECT"), enumValue("INTERFACE"),
			enumValue("UNION"), enumValue("ENUM"), enumValue("INPUT_OBJECT"),
			enumValue("LIST"), enumValue("NON_NULL"),
		},
		Loc: span(),
	}

	directiveLocation := ast.EnumTypeDefinition{
		Name: ast.MustName("__DirectiveLocation"),
		Values: func() []ast.EnumValueDefinition {
			var vs []ast.EnumValueDefinition
			for _, l := range []ast.DirectiveLocation{
				ast.LocQuery, ast.LocMutation, ast.LocSubscription, ast.LocField,
				ast.LocFragmentDefinition, ast.LocFragmentSpread, ast.LocInlineFragment,
				ast.LocVariableDefinition, ast.LocSchema, ast.LocScalar, ast.LocObject,
				ast.LocFieldDefinition, ast.LocArgumentDefinition, ast.LocInterface,
				ast.LocUnion, ast.LocEnum, ast.LocEnumValue, ast.LocInputObject,
				ast.LocInputFieldDefinition,
			} {
				vs = append(vs, enumValue(string(l)))
			}
			return vs
		}(),
		Loc: span(),
	}

	inputValue := ast.ObjectTypeDefinition{
		Name: ast.MustName("__InputValue"),
		Fields: []ast.FieldDefinition{
			field("name", nonNull(named(ast.MustName("String")))),
			field("description", named(ast.MustName("String"))),
			field("type", nonNull(named(ast.MustName("__Type")))),
			field("defaultValue", named(ast.MustName("String"))),
		},
		Loc: span(),
	}

	enumValueType := ast.ObjectTypeDefinition{
		Name: ast.MustName("__EnumValue"),
		Fields: []ast.FieldDefinition{
			field("name", nonNull(named(ast.MustName("String")))),
			field("description", named(ast.MustName("String"))),
			field("isDeprecated", nonNull(named(ast.MustName("Boolean")))),
			field("deprecationReason", named(ast.MustName("String"))),
		},
		Loc: span(),
	}

	fieldType := ast.ObjectTypeDefinition{
		Name: ast.MustName("__Field"),
		Fields: []ast.FieldDefinition{
			field("name", nonNull(named(ast.MustName("String")))),
			field("description", named(ast.MustName("String"))),
			field("args", nnListOfNN("__InputValue")),
			field("type", nonNull(named(ast.MustName("__Type")))),
			field("isDeprecated", nonNull(named(ast.MustName("Boolean")))),
			field("deprecationReason", named(ast.MustName("String"))),
		},
		Loc: span(),
	}

	directiveType := ast.ObjectTypeDefinition{
		Name: ast.MustName("__Directive"),
		Fields: []ast.FieldDefinition{
			field("name", nonNull(named(ast.MustName("String")))),
			field("description", named(ast.MustName("String"))),
			field("locations", nnListOfNN("__DirectiveLocation")),
			field("args", nnListOfNN("__InputValue")),
			field("isRepeatable", nonNull(named(ast.MustName("Boolean")))),
		},
		Loc: span(),
	}

	typeType := ast.ObjectTypeDefinition{
		Name: ast.MustName("__Type"),
		Fields: []ast.FieldDefinition{
			field("kind", nonNull(named(ast.MustName("__TypeKind")))),
			field("name", named(ast.MustName("String"))),
			field("description", named(ast.MustName("String"))),
			field("fields", listOf("__Field"), arg("includeDeprecated", named(ast.MustName("Boolean")), ast.BooleanValue{Value: false, Loc: span()})),
			field("interfaces", listOf("__Type")),
			field("possibleTypes", listOf("__Type")),
			field("enumValues", listOf("__EnumValue"), arg("includeDeprecated", named(ast.MustName("Boolean")), ast.BooleanValue{Value: false, Loc: span()})),
			field("inputFields", listOf("__InputValue")),
			field("ofType", named(ast.MustName("__Type"))),
			field("specifiedByURL", named(ast.MustName("String"))),
		},
		Loc: span(),
	}

	schemaType := ast.ObjectTypeDefinition{
		Name: ast.MustName("__Schema"),
		Fields: []ast.FieldDefinition{
			field("description", named(ast.MustName("String"))),
			field("types", nnListOfNN("__Type")),
			field("queryType", nonNull(named(ast.MustName("__Type")))),
			field("mutationType", named(ast.MustName("__Type"))),
			field("subscriptionType", named(ast.MustName("__Type"))),
			field("directives", nnListOfNN("__Directive")),
		},
		Loc: span(),
	}

	return []ast.TypeSystemDefinition{
		schemaType, typeType, fieldType, inputValue, enumValueType, directiveType, typeKind, directiveLocation,
	}
}

// TypenameField is the implicit `__typename: String!` meta-field selectable
// on any composite type.
func TypenameField() ast.FieldDefinition {
	return field("__typename", nonNull(named(ast.MustName("String"))))
}

// SchemaField and TypeField are the two implicit meta-fields selectable only
// on the query root type: `__schema: __Schema!` and `__type(name: String!): __Type`.
func SchemaField() ast.FieldDefinition {
	return field("__schema", nonNull(named(ast.MustName("__Schema"))))
}

func TypeField() ast.FieldDefinition {
	return field("__type", named(ast.MustName("__Type")), arg("name", nonNull(named(ast.MustName("String"))), nil))
}
