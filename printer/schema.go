package printer

import (
	"strings"

	"github.com/shyptr/gqlcompiler/ast"
	"github.com/shyptr/gqlcompiler/schema"
)

// PrintSchema serializes sch back to GraphQL SDL. Built-in scalars,
// directives and introspection types are omitted — schema.NewBuilder().
// Build seeds them itself, so re-parsing the printed text and rebuilding a
// Schema reproduces an equal one without redeclaring them (the P5 property,
// SPEC_FULL.md §8).
func PrintSchema(sch *schema.Schema) string {
	var blocks []string

	if sch.Description != nil {
		blocks = append(blocks, strings.TrimSuffix(printDescription(sch.Description, ""), "\n"))
	}

	if def := printSchemaDefinition(sch); def != "" {
		blocks = append(blocks, def)
	}

	for _, name := range sch.DirectiveDefinitions.Keys() {
		d, _ := sch.DirectiveDefinitions.Get(name)
		if isBuiltinLoc(d.Loc) {
			continue
		}
		blocks = append(blocks, printDirectiveDefinition(d))
	}

	for _, name := range sch.Types.Keys() {
		t, _ := sch.Types.Get(name)
		if t.TypeName().IsIntrospection() || isBuiltinLoc(typeLoc(t)) {
			continue
		}
		blocks = append(blocks, printType(t))
	}

	return strings.Join(blocks, "\n\n") + "\n"
}

func isBuiltinLoc(loc *ast.Span) bool {
	return loc != nil && loc.FileID == ast.BuiltinFileID
}

func typeLoc(t schema.ExtendedType) *ast.Span {
	switch v := t.(type) {
	case *schema.ScalarType:
		return v.Loc
	case *schema.ObjectType:
		return v.Loc
	case *schema.InterfaceType:
		return v.Loc
	case *schema.UnionType:
		return v.Loc
	case *schema.EnumType:
		return v.Loc
	case *schema.InputObjectType:
		return v.Loc
	}
	return nil
}

// printSchemaDefinition emits an explicit `schema { ... }` block only when
// needed: a non-default root type name, or any directive on the schema
// itself. Otherwise the default-name inference the builder already
// performs (spec.md §4.3 step 1) makes an explicit block redundant.
func printSchemaDefinition(sch *schema.Schema) string {
	roots := []struct {
		op   ast.OperationType
		cn   *schema.ComponentName
		def  string
	}{
		{ast.Query, sch.SchemaDefinition.Query, "Query"},
		{ast.Mutation, sch.SchemaDefinition.Mutation, "Mutation"},
		{ast.Subscription, sch.SchemaDefinition.Subscription, "Subscription"},
	}

	needed := len(sch.SchemaDefinition.Directives) > 0
	for _, r := range roots {
		if r.cn != nil && r.cn.Name.String() != r.def {
			needed = true
		}
	}
	if !needed {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("schema")
	sb.WriteString(printDirectives(sch.SchemaDefinition.Directives))
	sb.WriteString(" {\n")
	for _, r := range roots {
		if r.cn == nil {
			continue
		}
		sb.WriteString("  ")
		sb.WriteString(string(r.op))
		sb.WriteString(": ")
		sb.WriteString(r.cn.Name.String())
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

func printDirectiveDefinition(d schema.DirectiveDefinition) string {
	var sb strings.Builder
	sb.WriteString(printDescription(d.Description, ""))
	sb.WriteString("directive @")
	sb.WriteString(d.Name.String())
	sb.WriteString(printInputValueDefinitions(d.Arguments, ""))
	if d.Repeatable {
		sb.WriteString(" repeatable")
	}
	sb.WriteString(" on ")
	locs := make([]string, len(d.Locations))
	for i, l := range d.Locations {
		locs[i] = string(l)
	}
	sb.WriteString(strings.Join(locs, " | "))
	return sb.String()
}

func printInputValueDefinitions(args []schema.InputValueDefinition, indent string) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Name.String() + ": " + a.Type.String() + printDefaultAndDirectives(a.DefaultValue, a.Directives)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func printDefaultAndDirectives(def ast.Value, directives []ast.Directive) string {
	var sb strings.Builder
	if def != nil {
		sb.WriteString(" = ")
		sb.WriteString(printValue(def, ""))
	}
	sb.WriteString(printDirectives(directives))
	return sb.String()
}

func printType(t schema.ExtendedType) string {
	switch v := t.(type) {
	case *schema.ScalarType:
		return printScalarType(v)
	case *schema.ObjectType:
		return printFieldedType("type", v.Name, v.Desc, v.ImplementsInterfaces, v.Directives, v.Fields)
	case *schema.InterfaceType:
		return printFieldedType("interface", v.Name, v.Desc, v.ImplementsInterfaces, v.Directives, v.Fields)
	case *schema.UnionType:
		return printUnionType(v)
	case *schema.EnumType:
		return printEnumType(v)
	case *schema.InputObjectType:
		return printInputObjectType(v)
	}
	return ""
}

func printComponentDirectives(ds []schema.Component[ast.Directive]) []ast.Directive {
	out := make([]ast.Directive, len(ds))
	for i, d := range ds {
		out[i] = d.Node
	}
	return out
}

func printScalarType(t *schema.ScalarType) string {
	var sb strings.Builder
	sb.WriteString(printDescription(t.Desc, ""))
	sb.WriteString("scalar ")
	sb.WriteString(t.Name.String())
	sb.WriteString(printDirectives(printComponentDirectives(t.Directives)))
	return sb.String()
}

func printFieldedType(keyword string, name ast.Name, desc *ast.StringValue, implements interface {
	Keys() []string
	Get(string) (schema.ComponentName, bool)
}, directives []schema.Component[ast.Directive], fields interface {
	Keys() []string
	Get(string) (schema.Component[schema.FieldDefinition], bool)
}) string {
	var sb strings.Builder
	sb.WriteString(printDescription(desc, ""))
	sb.WriteString(keyword)
	sb.WriteString(" ")
	sb.WriteString(name.String())

	if keys := implements.Keys(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			cn, _ := implements.Get(k)
			names[i] = cn.Name.String()
		}
		sb.WriteString(" implements ")
		sb.WriteString(strings.Join(names, " & "))
	}
	sb.WriteString(printDirectives(printComponentDirectives(directives)))

	keys := fields.Keys()
	if len(keys) == 0 {
		return sb.String()
	}
	sb.WriteString(" {\n")
	for _, k := range keys {
		c, _ := fields.Get(k)
		f := c.Node
		sb.WriteString(printDescription(f.Description, "  "))
		sb.WriteString("  ")
		sb.WriteString(f.Name.String())
		sb.WriteString(printInputValueDefinitions(f.Arguments, "  "))
		sb.WriteString(": ")
		sb.WriteString(f.Type.String())
		sb.WriteString(printDirectives(f.Directives))
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

func printUnionType(t *schema.UnionType) string {
	var sb strings.Builder
	sb.WriteString(printDescription(t.Desc, ""))
	sb.WriteString("union ")
	sb.WriteString(t.Name.String())
	sb.WriteString(printDirectives(printComponentDirectives(t.Directives)))
	keys := t.Members.Keys()
	if len(keys) == 0 {
		return sb.String()
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		cn, _ := t.Members.Get(k)
		names[i] = cn.Name.String()
	}
	sb.WriteString(" = ")
	sb.WriteString(strings.Join(names, " | "))
	return sb.String()
}

func printEnumType(t *schema.EnumType) string {
	var sb strings.Builder
	sb.WriteString(printDescription(t.Desc, ""))
	sb.WriteString("enum ")
	sb.WriteString(t.Name.String())
	sb.WriteString(printDirectives(printComponentDirectives(t.Directives)))
	keys := t.Values.Keys()
	if len(keys) == 0 {
		return sb.String()
	}
	sb.WriteString(" {\n")
	for _, k := range keys {
		c, _ := t.Values.Get(k)
		v := c.Node
		sb.WriteString("  ")
		sb.WriteString(v.Value.String())
		sb.WriteString(printDirectives(v.Directives))
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

func printInputObjectType(t *schema.InputObjectType) string {
	var sb strings.Builder
	sb.WriteString(printDescription(t.Desc, ""))
	sb.WriteString("input ")
	sb.WriteString(t.Name.String())
	sb.WriteString(printDirectives(printComponentDirectives(t.Directives)))
	keys := t.Fields.Keys()
	if len(keys) == 0 {
		return sb.String()
	}
	sb.WriteString(" {\n")
	for _, k := range keys {
		c, _ := t.Fields.Get(k)
		f := c.Node
		sb.WriteString(printDescription(f.Description, "  "))
		sb.WriteString("  ")
		sb.WriteString(f.Name.String())
		sb.WriteString(": ")
		sb.WriteString(f.Type.String())
		sb.WriteString(printDefaultAndDirectives(f.DefaultValue, f.Directives))
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}
