package executable

import (
	"github.com/shyptr/gqlcompiler/ast"
	"github.com/shyptr/gqlcompiler/diagnostic"
	"github.com/shyptr/gqlcompiler/internal/builtin"
	"github.com/shyptr/gqlcompiler/internal/omap"
	"github.com/shyptr/gqlcompiler/schema"
	"github.com/shyptr/gqlcompiler/source"
)

// Bind consumes docs against sch (possibly not yet validated) and produces
// an ExecutableDocument, following spec.md §4.4's algorithm exactly:
// collect fragments, collect operations, then recursively bind selection
// sets, resolving each Field's definition against its parent type.
// Binding is total — every selection gets a Field/InlineFragment/
// FragmentSpread node even when its definition can't be resolved, so the
// validator always has a complete tree to run rules against.
func Bind(sch *schema.Schema, sources *source.Map, docs ...*ast.Document) (*ExecutableDocument, *diagnostic.List) {
	return bind(sch, sources, true, docs...)
}

// BindMixed binds docs the same way Bind does, except type-system
// definitions/extensions found alongside operations and fragments are
// silently skipped rather than diagnosed. It exists for the facade's
// parse_mixed_validate, the one entry point where a single source
// intentionally interleaves a schema and the operations run against it
// (ast.Document's own doc comment: "A Document may freely mix type-system
// and executable definitions"); every other caller wants Bind's strictness.
func BindMixed(sch *schema.Schema, sources *source.Map, docs ...*ast.Document) (*ExecutableDocument, *diagnostic.List) {
	return bind(sch, sources, false, docs...)
}

func bind(sch *schema.Schema, sources *source.Map, strict bool, docs ...*ast.Document) (*ExecutableDocument, *diagnostic.List) {
	diags := diagnostic.NewList()
	doc := &ExecutableDocument{
		Operations: Operations{Named: omap.New[string, *Operation]()},
		Fragments:  omap.New[string, *Fragment](),
		Sources:    sources,
	}

	var fragDefs []ast.FragmentDefinition
	var opDefs []ast.OperationDefinition

	for _, d := range docs {
		for _, node := range d.Definitions {
			switch n := node.(type) {
			case ast.FragmentDefinition:
				fragDefs = append(fragDefs, n)
			case ast.OperationDefinition:
				opDefs = append(opDefs, n)
			case ast.TypeSystemDefinition:
				if strict {
					diags.Add(diagnostic.New(diagnostic.TypeSystemDefinitionInExecutableDocument,
						"type system definition is not allowed in an executable document").WithPrimarySpan(n.Location()))
				}
			case ast.TypeSystemExtension:
				if strict {
					diags.Add(diagnostic.New(diagnostic.TypeSystemDefinitionInExecutableDocument,
						"type system extension is not allowed in an executable document").WithPrimarySpan(n.Location()))
				}
			}
		}
	}

	bindFragments(sch, diags, doc, fragDefs)
	bindOperations(sch, diags, doc, opDefs)

	return doc, diags
}

func bindFragments(sch *schema.Schema, diags *diagnostic.List, doc *ExecutableDocument, fragDefs []ast.FragmentDefinition) {
	for _, fd := range fragDefs {
		if prior, ok := doc.Fragments.Get(fd.Name.String()); ok {
			diags.Add(diagnostic.New(diagnostic.DuplicateFragmentName, "duplicate fragment name %q", fd.Name.String()).
				WithPrimarySpan(fd.Name.Location()).WithLabel(prior.Name.Location(), "first defined here"))
			continue
		}
		condType, _ := sch.Types.Get(fd.TypeCondition.String())
		doc.Fragments.Set(fd.Name.String(), &Fragment{
			Name:          fd.Name,
			TypeCondition: fd.TypeCondition,
			ConditionType: condType,
			Directives:    fd.Directives,
			Loc:           fd.Loc,
		})
	}
	// Selection sets are bound in a second pass, once every fragment is
	// registered, so a spread can reach a fragment declared later in the
	// same (or another) document.
	for _, name := range doc.Fragments.Keys() {
		f, _ := doc.Fragments.Get(name)
		fd := findFragmentDef(fragDefs, name)
		f.SelectionSet = bindSelectionSet(sch, diags, fd.SelectionSet, f.TypeCondition, f.ConditionType, false)
	}
}

func findFragmentDef(defs []ast.FragmentDefinition, name string) ast.FragmentDefinition {
	for _, d := range defs {
		if d.Name.String() == name {
			return d
		}
	}
	return ast.FragmentDefinition{}
}

func bindOperations(sch *schema.Schema, diags *diagnostic.List, doc *ExecutableDocument, opDefs []ast.OperationDefinition) {
	for _, od := range opDefs {
		if od.Name.IsZero() {
			if doc.Operations.Anonymous != nil {
				diags.Add(diagnostic.New(diagnostic.AnonymousPlusNamedOperations,
					"only one anonymous operation is allowed per document").WithPrimarySpan(od.Loc))
				continue
			}
			doc.Operations.Anonymous = bindOperation(sch, diags, od)
			continue
		}
		if prior, ok := doc.Operations.Named.Get(od.Name.String()); ok {
			diags.Add(diagnostic.New(diagnostic.DuplicateOperationName, "duplicate operation name %q", od.Name.String()).
				WithPrimarySpan(od.Name.Location()).WithLabel(prior.Name.Location(), "first defined here"))
			continue
		}
		doc.Operations.Named.Set(od.Name.String(), bindOperation(sch, diags, od))
	}
	if doc.Operations.Anonymous != nil && doc.Operations.Named.Len() > 0 {
		diags.Add(diagnostic.New(diagnostic.AnonymousPlusNamedOperations,
			"an anonymous operation cannot be combined with named operations").
			WithPrimarySpan(doc.Operations.Anonymous.Loc))
	}
}

func bindOperation(sch *schema.Schema, diags *diagnostic.List, od ast.OperationDefinition) *Operation {
	root := sch.RootType(od.Type)
	if root == nil {
		diags.Add(diagnostic.New(diagnostic.RootOperationNotDefined,
			"no %s root type is defined", od.Type).WithPrimarySpan(od.Loc))
	}

	vars := make([]VariableDefinition, 0, len(od.Variables))
	for _, v := range od.Variables {
		vars = append(vars, VariableDefinition{
			Name: v.Name, Type: v.Type, DefaultValue: v.DefaultValue, Directives: v.Directives, Loc: v.Loc,
		})
	}

	var parentName ast.Name
	var parentType schema.ExtendedType
	if root != nil {
		parentName = root.Name
		parentType = root
	}

	return &Operation{
		Type:         od.Type,
		Name:         od.Name,
		Variables:    vars,
		Directives:   od.Directives,
		RootType:     parentType,
		SelectionSet: bindSelectionSet(sch, diags, od.SelectionSet, parentName, parentType, od.Type == ast.Query),
		Loc:          od.Loc,
	}
}

func bindSelectionSet(sch *schema.Schema, diags *diagnostic.List, astSet ast.SelectionSet, parentName ast.Name, parentType schema.ExtendedType, isQueryRoot bool) *SelectionSet {
	out := &SelectionSet{ParentType: parentName, Loc: astSet.Loc}
	for _, sel := range astSet.Selections {
		switch s := sel.(type) {
		case ast.Field:
			out.Selections = append(out.Selections, bindField(sch, diags, s, parentName, parentType, isQueryRoot))
		case ast.InlineFragment:
			condName, explicit, condType := parentName, false, parentType
			if s.TypeCondition != nil {
				condName, explicit = *s.TypeCondition, true
				condType, _ = sch.Types.Get(condName.String())
			}
			out.Selections = append(out.Selections, &InlineFragment{
				TypeCondition: condName,
				Explicit:      explicit,
				Directives:    s.Directives,
				SelectionSet:  bindSelectionSet(sch, diags, s.SelectionSet, condName, condType, false),
				Loc:           s.Loc,
			})
		case ast.FragmentSpread:
			out.Selections = append(out.Selections, &FragmentSpread{
				FragmentName: s.FragmentName, Directives: s.Directives, Loc: s.Loc,
			})
		}
	}
	return out
}

func bindField(sch *schema.Schema, diags *diagnostic.List, f ast.Field, parentName ast.Name, parentType schema.ExtendedType, isQueryRoot bool) *Field {
	def, childType := resolveField(sch, f.Name.String(), parentType, isQueryRoot)
	if def == nil && parentType != nil {
		diags.Add(diagnostic.New(diagnostic.UndefinedField,
			"field %q is not defined on type %q", f.Name.String(), parentName.String()).
			WithPrimarySpan(f.Name.Location()))
	}
	var childName ast.Name
	if def != nil {
		childName = def.Type.NamedType()
	}
	return &Field{
		Alias:        f.Alias,
		Name:         f.Name,
		Arguments:    f.Arguments,
		Directives:   f.Directives,
		Definition:   def,
		SelectionSet: bindSelectionSet(sch, diags, f.SelectionSet, childName, childType, false),
		Loc:          f.Loc,
	}
}

// BindFieldSet binds a standalone selection-set snippet against parentType,
// for the facade's FieldSet::parse (spec.md §4.7) — used by tooling that
// wants to check a fragment-like text fragment against a schema without a
// surrounding operation. Only binding (field-definition resolution) runs;
// callers that also want the full executable rule set should wrap the
// result in an Operation of their own and call Validate.
func BindFieldSet(sch *schema.Schema, parentType schema.ExtendedType, set ast.SelectionSet) (*SelectionSet, *diagnostic.List) {
	diags := diagnostic.NewList()
	var parentName ast.Name
	if parentType != nil {
		parentName = parentType.TypeName()
	}
	return bindSelectionSet(sch, diags, set, parentName, parentType, false), diags
}

func isCompositeType(t schema.ExtendedType) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case schema.ObjectKind, schema.InterfaceKind, schema.UnionKind:
		return true
	}
	return false
}

// resolveField implements spec.md §4.4 step 4: `__typename` on any
// composite parent, `__schema`/`__type` on the query root, otherwise the
// parent's own declared field.
func resolveField(sch *schema.Schema, name string, parentType schema.ExtendedType, isQueryRoot bool) (*schema.FieldDefinition, schema.ExtendedType) {
	if name == "__typename" && isCompositeType(parentType) {
		d := schema.FromASTField(builtin.TypenameField())
		return &d, nil
	}
	if isQueryRoot {
		switch name {
		case "__schema":
			d := schema.FromASTField(builtin.SchemaField())
			t, _ := sch.Types.Get("__Schema")
			return &d, t
		case "__type":
			d := schema.FromASTField(builtin.TypeField())
			t, _ := sch.Types.Get("__Type")
			return &d, t
		}
	}
	if parentType == nil {
		return nil, nil
	}
	fields, ok := schema.FieldsOf(parentType)
	if !ok {
		return nil, nil
	}
	c, ok := fields.Get(name)
	if !ok {
		return nil, nil
	}
	d := c.Node
	t, _ := sch.Types.Get(d.Type.NamedType().String())
	return &d, t
}
