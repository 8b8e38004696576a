package executable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqlcompiler/ast"
	"github.com/shyptr/gqlcompiler/diagnostic"
	"github.com/shyptr/gqlcompiler/executable"
	"github.com/shyptr/gqlcompiler/parser"
	"github.com/shyptr/gqlcompiler/schema"
	"github.com/shyptr/gqlcompiler/source"
	"github.com/shyptr/gqlcompiler/valid"
)

const testSchema = `
type Query {
  hero: Character
}

interface Character {
  name: String!
}

type Human implements Character {
  name: String!
  homePlanet: String
}
`

func buildValidSchema(t *testing.T) *schema.Schema {
	t.Helper()
	p := parser.New()
	doc, errs := p.Parse(testSchema, ast.FileID(1))
	require.Empty(t, errs)
	sch, diags := schema.NewBuilder().Build(doc)
	require.Equal(t, 0, diags.Len())
	_, err := schema.Validate(sch)
	require.NoError(t, err)
	return sch
}

func TestBind_ValidQuery(t *testing.T) {
	sch := buildValidSchema(t)
	p := parser.New()
	sources := source.NewMap()
	doc, errs := p.Parse(`{ hero { name ... on Human { homePlanet } } }`, ast.FileID(2))
	require.Empty(t, errs)

	execDoc, diags := executable.Bind(sch, sources, doc)
	require.Equal(t, 0, diags.Len())

	valid, err := executable.Validate(sch, execDoc)
	require.NoError(t, err)
	assert.NotNil(t, valid.Get().Operations.Anonymous)
}

func TestValidate_UndefinedFieldDetected(t *testing.T) {
	sch := buildValidSchema(t)
	p := parser.New()
	sources := source.NewMap()
	doc, errs := p.Parse(`{ hero { notAField } }`, ast.FileID(2))
	require.Empty(t, errs)

	execDoc, diags := executable.Bind(sch, sources, doc)
	require.Equal(t, 1, diags.Len())

	_, err := executable.Validate(sch, execDoc)
	require.Error(t, err)
}

func TestValidate_UnusedFragmentReported(t *testing.T) {
	sch := buildValidSchema(t)
	p := parser.New()
	sources := source.NewMap()
	doc, errs := p.Parse(`
query { hero { name } }
fragment Unused on Human { homePlanet }
`, ast.FileID(2))
	require.Empty(t, errs)

	execDoc, diags := executable.Bind(sch, sources, doc)
	require.Equal(t, 0, diags.Len())

	_, err := executable.Validate(sch, execDoc)
	require.Error(t, err)
}

func TestValidate_FragmentCycleDetected(t *testing.T) {
	sch := buildValidSchema(t)
	p := parser.New()
	sources := source.NewMap()
	doc, errs := p.Parse(`
query { hero { ...A } }
fragment A on Character { ...B }
fragment B on Character { ...A }
`, ast.FileID(2))
	require.Empty(t, errs)

	execDoc, diags := executable.Bind(sch, sources, doc)
	require.Equal(t, 0, diags.Len())

	_, err := executable.Validate(sch, execDoc)
	require.Error(t, err)
}

func TestValidate_MergeConflictAcrossFragmentsDetected(t *testing.T) {
	p := parser.New()
	schemaDoc, errs := p.Parse(`
type Query {
  dog: Dog
}

type Dog {
  name: String
  nickname: String
}
`, ast.FileID(1))
	require.Empty(t, errs)
	sch, diags := schema.NewBuilder().Build(schemaDoc)
	require.Equal(t, 0, diags.Len())
	_, err := schema.Validate(sch)
	require.NoError(t, err)

	sources := source.NewMap()
	doc, errs := p.Parse(`
query {
  ...A
  ...B
}
fragment A on Query {
  dog { name nickname: name }
}
fragment B on Query {
  dog { nickname }
}
`, ast.FileID(2))
	require.Empty(t, errs)

	execDoc, bindDiags := executable.Bind(sch, sources, doc)
	require.Equal(t, 0, bindDiags.Len())

	_, err = executable.Validate(sch, execDoc)
	require.Error(t, err)

	werr, ok := err.(valid.WithErrors[executable.ExecutableDocument])
	require.True(t, ok)
	require.Equal(t, 1, werr.Diagnostics.Len())
	assert.Equal(t, diagnostic.UnmergeableSelection, werr.Diagnostics.Iter()[0].Kind)
}

func TestBindFieldSet(t *testing.T) {
	sch := buildValidSchema(t)
	p := parser.New()
	doc, errs := p.Parse(`{ name }`, ast.FileID(2))
	require.Empty(t, errs)

	op, ok := doc.Definitions[0].(ast.OperationDefinition)
	require.True(t, ok)

	character, ok := sch.Types.Get("Character")
	require.True(t, ok)

	set, diags := executable.BindFieldSet(sch, character, op.SelectionSet)
	assert.Equal(t, 0, diags.Len())
	assert.Len(t, set.Selections, 1)
}
