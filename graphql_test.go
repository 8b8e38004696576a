package graphql

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqlcompiler/ast"
	"github.com/shyptr/gqlcompiler/parser"
	"github.com/shyptr/gqlcompiler/printer"
	"github.com/shyptr/gqlcompiler/source"
)

const starwarsSchema = `
type Query {
  hero(episode: Episode): Character
}

enum Episode {
  NEWHOPE
  EMPIRE
  JEDI
}

interface Character {
  id: ID!
  name: String!
  friends: [Character]
}

type Human implements Character {
  id: ID!
  name: String!
  friends: [Character]
  homePlanet: String
}

type Droid implements Character {
  id: ID!
  name: String!
  friends: [Character]
  primaryFunction: String
}
`

func TestParseAndValidateSchema_Valid(t *testing.T) {
	sources := source.NewMap()
	p := parser.New()
	sch, err := ParseAndValidateSchema(p, sources, "schema.graphqls", starwarsSchema)
	require.NoError(t, err)
	assert.NotNil(t, sch.Get())
	assert.NotNil(t, sch.Get().RootType(ast.Query))
}

func TestParseAndValidateSchema_UndefinedTypeReported(t *testing.T) {
	sources := source.NewMap()
	p := parser.New()
	_, err := ParseAndValidateSchema(p, sources, "schema.graphqls", "type Query { hero: NotAType }")
	require.Error(t, err)
}

func TestParseAndValidateExecutable_Valid(t *testing.T) {
	sources := source.NewMap()
	p := parser.New()
	sch, err := ParseAndValidateSchema(p, sources, "schema.graphqls", starwarsSchema)
	require.NoError(t, err)

	query := `
query HeroQuery($ep: Episode) {
  hero(episode: $ep) {
    id
    name
    ... on Droid {
      primaryFunction
    }
  }
}
`
	_, err = ParseAndValidateExecutable(p, sources, sch, "query.graphql", query)
	require.NoError(t, err)
}

func TestParseAndValidateExecutable_UndefinedFieldReported(t *testing.T) {
	sources := source.NewMap()
	p := parser.New()
	sch, err := ParseAndValidateSchema(p, sources, "schema.graphqls", starwarsSchema)
	require.NoError(t, err)

	_, err = ParseAndValidateExecutable(p, sources, sch, "query.graphql", "{ hero { notAField } }")
	require.Error(t, err)
}

func TestParseMixedValidate(t *testing.T) {
	sources := source.NewMap()
	p := parser.New()
	text := starwarsSchema + "\nquery { hero { id name } }\n"
	validSchema, validExec, diags := ParseMixedValidate(p, sources, "mixed.graphql", text)
	require.Equal(t, 0, diags.Len())
	assert.NotNil(t, validSchema.Get())
	assert.NotNil(t, validExec.Get())
}

func TestParseFieldSet(t *testing.T) {
	sources := source.NewMap()
	p := parser.New()
	sch, err := ParseAndValidateSchema(p, sources, "schema.graphqls", starwarsSchema)
	require.NoError(t, err)

	character, ok := sch.Get().Types.Get("Character")
	require.True(t, ok)

	set, diags := ParseFieldSet(p, sources, sch, character, "fields.graphql", "id name")
	assert.Equal(t, 0, diags.Len())
	assert.Len(t, set.Selections, 2)
}

func TestParseTypeRef(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"String", "String"},
		{"String!", "String!"},
		{"[String]", "[String]"},
		{"[String!]!", "[String!]!"},
	}
	for _, tt := range tests {
		ref, err := ParseTypeRef(tt.text)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ref.String())
	}
}

func TestParseTypeRef_TrailingGarbageRejected(t *testing.T) {
	_, err := ParseTypeRef("String extra")
	require.Error(t, err)
}

// TestSchemaRoundTrip exercises the P5 property: printing a validated
// schema and re-parsing it produces a structurally compatible schema,
// without needing to redeclare built-ins the builder already seeds.
func TestSchemaRoundTrip(t *testing.T) {
	sources := source.NewMap()
	p := parser.New()
	sch, err := ParseAndValidateSchema(p, sources, "schema.graphqls", starwarsSchema)
	require.NoError(t, err)

	printed := printer.PrintSchema(sch.Get())

	sources2 := source.NewMap()
	sch2, err := ParseAndValidateSchema(p, sources2, "reprinted.graphqls", printed)
	require.NoError(t, err)

	if diff := cmp.Diff(sch.Get().Types.Keys(), sch2.Get().Types.Keys()); diff != "" {
		t.Errorf("reprinted schema has a different type set (-want +got):\n%s", diff)
	}
}

// TestExecutableRoundTrip exercises the P6 property: printing a bound
// executable document and re-parsing/re-binding it against the same
// schema yields a document with the same operation/fragment names.
func TestExecutableRoundTrip(t *testing.T) {
	sources := source.NewMap()
	p := parser.New()
	sch, err := ParseAndValidateSchema(p, sources, "schema.graphqls", starwarsSchema)
	require.NoError(t, err)

	query := `query HeroQuery { hero { id name } }`
	validExec, err := ParseAndValidateExecutable(p, sources, sch, "query.graphql", query)
	require.NoError(t, err)

	printed := printer.PrintExecutableDocument(validExec.Get())

	validExec2, err := ParseAndValidateExecutable(p, sources, sch, "reprinted.graphql", printed)
	require.NoError(t, err)
	assert.Equal(t, validExec.Get().Operations.Named.Keys(), validExec2.Get().Operations.Named.Keys())
}
