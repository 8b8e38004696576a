package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqlcompiler/ast"
)

func TestParse_SimpleSchema(t *testing.T) {
	p := New()
	doc, errs := p.Parse(`
type Query {
  hello: String
}
`, ast.FileID(1))
	require.Empty(t, errs)
	require.Len(t, doc.Definitions, 1)
	_, ok := doc.Definitions[0].(ast.ObjectTypeDefinition)
	assert.True(t, ok)
}

func TestParse_ShorthandQuery(t *testing.T) {
	p := New()
	doc, errs := p.Parse(`{ hello }`, ast.FileID(1))
	require.Empty(t, errs)
	require.Len(t, doc.Definitions, 1)
	op, ok := doc.Definitions[0].(ast.OperationDefinition)
	require.True(t, ok)
	assert.Equal(t, ast.Query, op.Type)
	assert.True(t, op.Name.IsZero())
}

func TestParse_BlockStringDedent(t *testing.T) {
	p := New()
	doc, errs := p.Parse("\"\"\"\n  description\n  line two\n  \"\"\"\nscalar Foo\n", ast.FileID(1))
	require.Empty(t, errs)
	require.Len(t, doc.Definitions, 1)
	def, ok := doc.Definitions[0].(ast.ScalarTypeDefinition)
	require.True(t, ok)
	require.NotNil(t, def.Description)
	assert.Equal(t, "description\nline two", def.Description.Value)
}

func TestParse_SyntaxErrorIsPartialAndRecovers(t *testing.T) {
	p := New()
	doc, errs := p.Parse(`type Query { hello: } type Mutation { bye: String }`, ast.FileID(1))
	require.NotEmpty(t, errs)
	// The panic/recover unwinds the whole parseDocument call, so only a
	// best-effort partial Document is returned — never a nil one.
	assert.NotNil(t, doc)
}

func TestParse_UnterminatedStringReportsSyntaxError(t *testing.T) {
	p := New()
	_, errs := p.Parse(`{ hello(arg: "unterminated) }`, ast.FileID(1))
	require.NotEmpty(t, errs)
}

func TestParse_RecursionLimitEnforced(t *testing.T) {
	p := New()
	p.SetRecursionLimit(5)
	deep := ""
	for i := 0; i < 10; i++ {
		deep += "["
	}
	deep += "String"
	for i := 0; i < 10; i++ {
		deep += "]"
	}
	_, errs := p.Parse("scalar X\ntype Query { f: "+deep+" }", ast.FileID(1))
	require.NotEmpty(t, errs)
}

func TestParse_DirectiveDefinitionRepeatable(t *testing.T) {
	p := New()
	doc, errs := p.Parse(`directive @cacheControl(maxAge: Int) repeatable on FIELD_DEFINITION | OBJECT`, ast.FileID(1))
	require.Empty(t, errs)
	require.Len(t, doc.Definitions, 1)
	dd, ok := doc.Definitions[0].(ast.DirectiveDefinition)
	require.True(t, ok)
	assert.True(t, dd.Repeatable)
	assert.Len(t, dd.Locations, 2)
}

func TestParse_ExtendType(t *testing.T) {
	p := New()
	doc, errs := p.Parse(`extend type Query { extra: String }`, ast.FileID(1))
	require.Empty(t, errs)
	require.Len(t, doc.Definitions, 1)
	_, ok := doc.Definitions[0].(ast.ObjectTypeExtension)
	assert.True(t, ok)
}
