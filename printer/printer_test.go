package printer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqlcompiler/ast"
	"github.com/shyptr/gqlcompiler/parser"
	"github.com/shyptr/gqlcompiler/schema"
)

func buildSchema(t *testing.T, text string) *schema.Schema {
	t.Helper()
	p := parser.New()
	doc, errs := p.Parse(text, ast.FileID(1))
	require.Empty(t, errs)
	sch, diags := schema.NewBuilder().Build(doc)
	require.Equal(t, 0, diags.Len())
	return sch
}

func TestPrintSchema_OmitsBuiltins(t *testing.T) {
	sch := buildSchema(t, `type Query { hello: String }`)
	out := PrintSchema(sch)
	assert.Contains(t, out, "type Query")
	assert.NotContains(t, out, "scalar String")
	assert.NotContains(t, out, "directive @skip")
	assert.NotContains(t, out, "__Schema")
}

func TestPrintSchema_ImplementsAndEnum(t *testing.T) {
	sch := buildSchema(t, `
interface Character {
  name: String
}

type Human implements Character {
  name: String
}

enum Episode {
  NEWHOPE
  JEDI
}
`)
	out := PrintSchema(sch)
	assert.Contains(t, out, "type Human implements Character")
	assert.Contains(t, out, "enum Episode")
	assert.Contains(t, out, "NEWHOPE")
}

func TestPrintSchema_ExplicitSchemaBlockOnlyWhenNeeded(t *testing.T) {
	sch := buildSchema(t, `type Query { hello: String }`)
	out := PrintSchema(sch)
	assert.False(t, strings.Contains(out, "schema {"))

	sch2 := buildSchema(t, `
schema {
  query: MyQuery
}
type MyQuery { hello: String }
`)
	out2 := PrintSchema(sch2)
	assert.Contains(t, out2, "schema {")
	assert.Contains(t, out2, "query: MyQuery")
}

func TestQuoteString_EscapesControlCharacters(t *testing.T) {
	got := quoteString("a\"b\\c\nd")
	assert.Equal(t, `"a\"b\\c\nd"`, got)
}

func TestPrintStringValue_BlockString(t *testing.T) {
	v := ast.StringValue{Value: "line one\nline two", Block: true}
	got := printStringValue(v, "")
	assert.Equal(t, "\"\"\"\nline one\nline two\n\"\"\"", got)
}
