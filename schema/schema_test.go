package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqlcompiler/ast"
	"github.com/shyptr/gqlcompiler/diagnostic"
	"github.com/shyptr/gqlcompiler/parser"
	"github.com/shyptr/gqlcompiler/valid"
)

func parseDoc(t *testing.T, text string) *ast.Document {
	t.Helper()
	p := parser.New()
	doc, errs := p.Parse(text, ast.FileID(1))
	require.Empty(t, errs)
	return doc
}

func TestBuild_DefaultRootTypes(t *testing.T) {
	doc := parseDoc(t, `type Query { hello: String }`)
	s, diags := NewBuilder().Build(doc)
	require.Equal(t, 0, diags.Len())
	require.NotNil(t, s.SchemaDefinition.Query)
	assert.Equal(t, "Query", s.SchemaDefinition.Query.Name.String())
}

func TestBuild_DuplicateTypeDefinitionReported(t *testing.T) {
	doc := parseDoc(t, `
type Query { hello: String }
type Query { bye: String }
`)
	_, diags := NewBuilder().Build(doc)
	require.Equal(t, 1, diags.Len())
	assert.Equal(t, diagnostic.DuplicateDefinition, diags.Iter()[0].Kind)
}

func TestBuild_ReservedNameRejected(t *testing.T) {
	doc := parseDoc(t, `type __Foo { hello: String }`)
	_, diags := NewBuilder().Build(doc)
	require.Equal(t, 1, diags.Len())
	assert.Equal(t, diagnostic.ReservedName, diags.Iter()[0].Kind)
}

func TestBuild_OrphanExtensionRejectedByDefault(t *testing.T) {
	doc := parseDoc(t, `extend type Query { extra: String }`)
	_, diags := NewBuilder().Build(doc)
	require.Equal(t, 1, diags.Len())
	assert.Equal(t, diagnostic.OrphanExtension, diags.Iter()[0].Kind)
}

func TestBuild_OrphanExtensionAdoptedWhenConfigured(t *testing.T) {
	doc := parseDoc(t, `extend type Query { extra: String }`)
	s, diags := NewBuilder(WithAdoptOrphanExtensions(true)).Build(doc)
	require.Equal(t, 0, diags.Len())
	qt, ok := s.Types.Get("Query")
	require.True(t, ok)
	obj, ok := qt.(*ObjectType)
	require.True(t, ok)
	assert.True(t, obj.Fields.Has("extra"))
}

func TestBuild_ExtensionKindMismatchReported(t *testing.T) {
	doc := parseDoc(t, `
type Query { hello: String }
extend scalar Query
`)
	_, diags := NewBuilder().Build(doc)
	require.Equal(t, 1, diags.Len())
	assert.Equal(t, diagnostic.ExtensionKindMismatch, diags.Iter()[0].Kind)
}

func TestValidate_MissingQueryRootRejected(t *testing.T) {
	doc := parseDoc(t, `type Mutation { noop: Boolean }`)
	s, diags := NewBuilder().Build(doc)
	require.Equal(t, 0, diags.Len())
	_, err := Validate(s)
	require.Error(t, err)
}

func TestValidate_InterfaceImplementationMissingFieldRejected(t *testing.T) {
	doc := parseDoc(t, `
type Query { hello: String }
interface Named { name: String! }
type Human implements Named {
  age: Int
}
`)
	s, diags := NewBuilder().Build(doc)
	require.Equal(t, 0, diags.Len())
	_, err := Validate(s)
	require.Error(t, err)
}

func TestValidate_InterfaceImplementationOK(t *testing.T) {
	doc := parseDoc(t, `
type Query { hello: String }
interface Named { name: String! }
type Human implements Named {
  name: String!
}
`)
	s, diags := NewBuilder().Build(doc)
	require.Equal(t, 0, diags.Len())
	_, err := Validate(s)
	require.NoError(t, err)
}

func TestValidate_UnionMemberMustBeObject(t *testing.T) {
	doc := parseDoc(t, `
type Query { hello: String }
scalar Foo
union Bar = Foo
`)
	s, diags := NewBuilder().Build(doc)
	require.Equal(t, 0, diags.Len())
	_, err := Validate(s)
	require.Error(t, err)
}

func TestValidate_EmptyEnumRejected(t *testing.T) {
	doc := parseDoc(t, `
type Query { hello: String }
enum Empty
`)
	s, diags := NewBuilder().Build(doc)
	require.Equal(t, 0, diags.Len())
	_, err := Validate(s)
	require.Error(t, err)
}

func TestValidate_ReservedEnumValueRejected(t *testing.T) {
	doc := parseDoc(t, `
type Query { hello: String }
enum Bool { true false }
`)
	s, diags := NewBuilder().Build(doc)
	require.Equal(t, 0, diags.Len())
	_, err := Validate(s)
	require.Error(t, err)
}

func TestValidate_InputObjectCycleRejected(t *testing.T) {
	doc := parseDoc(t, `
type Query { hello: String }
input A {
  b: B!
}
input B {
  a: A!
}
`)
	s, diags := NewBuilder().Build(doc)
	require.Equal(t, 0, diags.Len())
	_, err := Validate(s)
	require.Error(t, err)
}

func TestValidate_NullableInputObjectCycleAllowed(t *testing.T) {
	doc := parseDoc(t, `
type Query { hello: String }
input A {
  b: B
}
input B {
  a: A
}
`)
	s, diags := NewBuilder().Build(doc)
	require.Equal(t, 0, diags.Len())
	_, err := Validate(s)
	require.NoError(t, err)
}

func TestValidate_InvalidDefaultValueRejected(t *testing.T) {
	doc := parseDoc(t, `
type Query { hello: String }
input Filter {
  name: String = 5
}
`)
	s, diags := NewBuilder().Build(doc)
	require.Equal(t, 0, diags.Len())
	_, err := Validate(s)
	require.Error(t, err)
}

func TestValidate_DuplicateArgumentRejected(t *testing.T) {
	doc := parseDoc(t, `
type Query {
  hello(a: String, a: Int): String
}
`)
	s, diags := NewBuilder().Build(doc)
	require.Equal(t, 0, diags.Len())
	_, err := Validate(s)
	require.Error(t, err)
}

func TestValidate_UndefinedFieldReturnTypeRejected(t *testing.T) {
	doc := parseDoc(t, `type Query { hero: NotAType }`)
	s, diags := NewBuilder().Build(doc)
	require.Equal(t, 0, diags.Len())
	_, err := Validate(s)
	require.Error(t, err)
	werr, ok := err.(valid.WithErrors[Schema])
	require.True(t, ok)
	assert.Equal(t, diagnostic.UndefinedType, werr.Diagnostics.Iter()[0].Kind)
}

func TestValidate_UndefinedArgumentTypeRejected(t *testing.T) {
	doc := parseDoc(t, `type Query { hero(filter: NotAType): String }`)
	s, diags := NewBuilder().Build(doc)
	require.Equal(t, 0, diags.Len())
	_, err := Validate(s)
	require.Error(t, err)
	werr, ok := err.(valid.WithErrors[Schema])
	require.True(t, ok)
	assert.Equal(t, diagnostic.UndefinedType, werr.Diagnostics.Iter()[0].Kind)
}

func TestValidate_UndefinedInputFieldTypeRejected(t *testing.T) {
	doc := parseDoc(t, `
type Query { hello: String }
input Filter {
  name: NotAType
}
`)
	s, diags := NewBuilder().Build(doc)
	require.Equal(t, 0, diags.Len())
	_, err := Validate(s)
	require.Error(t, err)
	werr, ok := err.(valid.WithErrors[Schema])
	require.True(t, ok)
	assert.Equal(t, diagnostic.UndefinedType, werr.Diagnostics.Iter()[0].Kind)
}

func TestValidate_OutputPositionRejectsInputObject(t *testing.T) {
	doc := parseDoc(t, `
type Query {
  hello: Filter
}
input Filter {
  name: String
}
`)
	s, diags := NewBuilder().Build(doc)
	require.Equal(t, 0, diags.Len())
	_, err := Validate(s)
	require.Error(t, err)
	werr, ok := err.(valid.WithErrors[Schema])
	require.True(t, ok)
	assert.Equal(t, diagnostic.UndefinedType, werr.Diagnostics.Iter()[0].Kind)
}

func TestValidate_InputPositionRejectsObjectType(t *testing.T) {
	doc := parseDoc(t, `
type Query {
  hello(human: Human): String
}
type Human {
  name: String
}
`)
	s, diags := NewBuilder().Build(doc)
	require.Equal(t, 0, diags.Len())
	_, err := Validate(s)
	require.Error(t, err)
	werr, ok := err.(valid.WithErrors[Schema])
	require.True(t, ok)
	assert.Equal(t, diagnostic.UndefinedType, werr.Diagnostics.Iter()[0].Kind)
}

func TestValidate_DirectiveArgumentUndefinedTypeRejected(t *testing.T) {
	doc := parseDoc(t, `
type Query { hello: String }
directive @foo(arg: NotAType) on FIELD
`)
	s, diags := NewBuilder().Build(doc)
	require.Equal(t, 0, diags.Len())
	_, err := Validate(s)
	require.Error(t, err)
	werr, ok := err.(valid.WithErrors[Schema])
	require.True(t, ok)
	assert.Equal(t, diagnostic.UndefinedType, werr.Diagnostics.Iter()[0].Kind)
}
