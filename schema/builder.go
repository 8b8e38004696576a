package schema

import (
	"github.com/shyptr/gqlcompiler/ast"
	"github.com/shyptr/gqlcompiler/diagnostic"
	"github.com/shyptr/gqlcompiler/internal/builtin"
	"github.com/shyptr/gqlcompiler/internal/omap"
)

// Builder assembles a Schema from one or more parsed documents (spec.md
// §4.3). The zero Builder is usable; NewBuilder with options is the usual
// entry point, following the teacher's functional-options convention
// (options.go) rather than a boolean parameter that can't grow.
type Builder struct {
	adoptOrphanExtensions bool
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithAdoptOrphanExtensions controls whether an extension with no matching
// definition synthesizes an empty one (true) or is discarded with an
// OrphanExtension diagnostic (false, the default).
func WithAdoptOrphanExtensions(v bool) BuilderOption {
	return func(b *Builder) { b.adoptOrphanExtensions = v }
}

// NewBuilder returns a Builder configured by opts.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build consumes docs in order and returns the assembled Schema together
// with every diagnostic raised while doing so. Build always returns a
// Schema, even a partial one — callers wanting a Result-shaped API use
// Validate afterwards (or the graphql package's parse_and_validate facade).
func (b *Builder) Build(docs ...*ast.Document) (*Schema, *diagnostic.List) {
	diags := diagnostic.NewList()
	s := newSchema()

	for _, def := range builtin.Scalars() {
		insertTypeDefinition(s, diags, def.(ast.TypeDefinition), true)
	}
	for _, def := range builtin.IntrospectionTypes() {
		insertTypeDefinition(s, diags, def.(ast.TypeDefinition), true)
	}
	for _, def := range builtin.Directives() {
		insertDirectiveDefinition(s, diags, def, true)
	}

	var extensions []ast.TypeSystemExtension
	var schemaExtensions []ast.SchemaExtension
	haveExplicitSchemaDef := false

	for _, doc := range docs {
		for _, node := range doc.Definitions {
			switch n := node.(type) {
			case ast.SchemaDefinition:
				if haveExplicitSchemaDef {
					diags.Add(duplicateDefinitionDiag("schema", n.Location(), nil))
					continue
				}
				haveExplicitSchemaDef = true
				applySchemaDefinition(s, n)
			case ast.SchemaExtension:
				schemaExtensions = append(schemaExtensions, n)
			case ast.TypeDefinition:
				insertTypeDefinition(s, diags, n, false)
			case ast.DirectiveDefinition:
				insertDirectiveDefinition(s, diags, n, false)
			case ast.TypeSystemExtension:
				extensions = append(extensions, n)
			default:
				// ast.ExecutableDefinition nodes belong to the executable
				// binder, not the schema builder; silently skip them so a
				// mixed document can be fed to both without ceremony.
			}
		}
	}

	for _, ext := range schemaExtensions {
		applySchemaExtension(s, ExtensionOrigin(ExtensionID(ext.Loc)), ext)
	}

	for _, ext := range extensions {
		applyExtension(s, diags, b.adoptOrphanExtensions, ext)
	}

	if !haveExplicitSchemaDef {
		applyDefaultRootTypes(s)
	}

	return s, diags
}

func applySchemaDefinition(s *Schema, def ast.SchemaDefinition) {
	s.Description = def.Description
	s.SchemaDefinition.Directives = def.Directives
	for _, ot := range def.OperationTypes {
		cn := ComponentName{Name: ot.Type, Origin: DefinitionOrigin}
		assignRoot(s, ot.Operation, cn)
	}
}

func applySchemaExtension(s *Schema, origin Origin, ext ast.SchemaExtension) {
	s.SchemaDefinition.Directives = append(s.SchemaDefinition.Directives, ext.Directives...)
	for _, ot := range ext.OperationTypes {
		assignRoot(s, ot.Operation, ComponentName{Name: ot.Type, Origin: origin})
	}
}

func assignRoot(s *Schema, op ast.OperationType, cn ComponentName) {
	switch op {
	case ast.Query:
		if s.SchemaDefinition.Query == nil {
			s.SchemaDefinition.Query = &cn
		}
	case ast.Mutation:
		if s.SchemaDefinition.Mutation == nil {
			s.SchemaDefinition.Mutation = &cn
		}
	case ast.Subscription:
		if s.SchemaDefinition.Subscription == nil {
			s.SchemaDefinition.Subscription = &cn
		}
	}
}

// applyDefaultRootTypes implements "default root type names Query,
// Mutation, Subscription if such object types appear" for documents with no
// explicit `schema { ... }` block (spec.md §4.3 step 1).
func applyDefaultRootTypes(s *Schema) {
	for op, name := range map[ast.OperationType]string{
		ast.Query: "Query", ast.Mutation: "Mutation", ast.Subscription: "Subscription",
	} {
		if t, ok := s.Types.Get(name); ok {
			if _, isObj := t.(*ObjectType); isObj {
				assignRoot(s, op, ComponentName{Name: ast.MustName(name), Origin: DefinitionOrigin})
			}
		}
	}
}

func loc(s ast.Span) *ast.Span { c := s; return &c }

func duplicateDefinitionDiag(name string, newLoc ast.Span, priorLoc *ast.Span) diagnostic.Diagnostic {
	d := diagnostic.New(diagnostic.DuplicateDefinition, "duplicate definition of %q", name).WithPrimarySpan(newLoc)
	if priorLoc != nil {
		d = d.WithLabel(*priorLoc, "first defined here")
	}
	return d
}

func reservedNameDiag(name ast.Name) diagnostic.Diagnostic {
	return diagnostic.New(diagnostic.ReservedName, "name %q is reserved for introspection", name.String()).
		WithPrimarySpan(name.Location())
}

// insertTypeDefinition handles invariant 1 (reserved __ names), invariant 2
// (no duplicate type names) and the built-in/introspection shadowing rule
// of spec.md §4.2, §9.
func insertTypeDefinition(s *Schema, diags *diagnostic.List, def ast.TypeDefinition, isBuiltin bool) {
	name := def.TypeName()
	if !isBuiltin && name.IsIntrospection() {
		diags.Add(reservedNameDiag(name))
		return
	}
	if existing, ok := s.Types.Get(name.String()); ok {
		if !isBuiltin && isIntrospectionType(existing) {
			diags.Add(diagnostic.New(diagnostic.ShadowedIntrospectionType,
				"type %q redefines a built-in introspection type", name.String()).WithPrimarySpan(name.Location()))
			return
		}
		if !isBuiltin {
			diags.Add(duplicateDefinitionDiag(name.String(), name.Location(), typeLoc(existing)))
			return
		}
	}
	s.Types.Set(name.String(), buildExtendedType(def))
}

func isIntrospectionType(t ExtendedType) bool {
	return t.TypeName().IsIntrospection()
}

func typeLoc(t ExtendedType) *ast.Span {
	switch v := t.(type) {
	case *ScalarType:
		return v.Loc
	case *ObjectType:
		return v.Loc
	case *InterfaceType:
		return v.Loc
	case *UnionType:
		return v.Loc
	case *EnumType:
		return v.Loc
	case *InputObjectType:
		return v.Loc
	}
	return nil
}

// FromASTField converts a synthesized ast.FieldDefinition (e.g. one of the
// internal/builtin meta-fields) into a resolved FieldDefinition using the
// same conversion every user-declared field goes through. Exported for
// package executable, which binds `__typename`/`__schema`/`__type` the same
// way the builder binds an ordinary field.
func FromASTField(f ast.FieldDefinition) FieldDefinition { return toFieldDefinition(f) }

func toFieldDefinition(f ast.FieldDefinition) FieldDefinition {
	return FieldDefinition{
		Description: f.Description,
		Name:        f.Name,
		Arguments:   toInputValues(f.Arguments),
		Type:        f.Type,
		Directives:  f.Directives,
		Loc:         loc(f.Loc),
	}
}

func toInputValues(in []ast.InputValueDefinition) []InputValueDefinition {
	out := make([]InputValueDefinition, 0, len(in))
	for _, v := range in {
		out = append(out, InputValueDefinition{
			Description:  v.Description,
			Name:         v.Name,
			Type:         v.Type,
			DefaultValue: v.DefaultValue,
			Directives:   v.Directives,
			Loc:          loc(v.Loc),
		})
	}
	return out
}

func buildExtendedType(def ast.TypeDefinition) ExtendedType {
	switch d := def.(type) {
	case ast.ScalarTypeDefinition:
		return &ScalarType{Name: d.Name, Desc: d.Description, Loc: loc(d.Loc), Directives: wrapDirectives(d.Directives, DefinitionOrigin)}
	case ast.ObjectTypeDefinition:
		return &ObjectType{fieldedType: newFieldedType(d.Name, d.Description, d.ImplementsInterfaces, d.Directives, d.Fields, d.Loc)}
	case ast.InterfaceTypeDefinition:
		return &InterfaceType{fieldedType: newFieldedType(d.Name, d.Description, d.ImplementsInterfaces, d.Directives, d.Fields, d.Loc)}
	case ast.UnionTypeDefinition:
		members := omap.New[string, ComponentName]()
		for _, m := range d.Members {
			if !members.Has(m.String()) {
				members.Set(m.String(), ComponentName{Name: m, Origin: DefinitionOrigin})
			}
		}
		return &UnionType{Name: d.Name, Desc: d.Description, Directives: wrapDirectives(d.Directives, DefinitionOrigin), Members: members, Loc: loc(d.Loc)}
	case ast.EnumTypeDefinition:
		values := omap.New[string, Component[EnumValueDefinition]]()
		for _, v := range d.Values {
			if !values.Has(v.Value.String()) {
				values.Set(v.Value.String(), Component[EnumValueDefinition]{Origin: DefinitionOrigin, Node: EnumValueDefinition{Value: v.Value, Directives: v.Directives, Loc: loc(v.Loc)}})
			}
		}
		return &EnumType{Name: d.Name, Desc: d.Description, Directives: wrapDirectives(d.Directives, DefinitionOrigin), Values: values, Loc: loc(d.Loc)}
	case ast.InputObjectTypeDefinition:
		fields := omap.New[string, Component[InputValueDefinition]]()
		for _, f := range toInputValues(d.Fields) {
			if !fields.Has(f.Name.String()) {
				fields.Set(f.Name.String(), Component[InputValueDefinition]{Origin: DefinitionOrigin, Node: f})
			}
		}
		return &InputObjectType{Name: d.Name, Desc: d.Description, Directives: wrapDirectives(d.Directives, DefinitionOrigin), Fields: fields, Loc: loc(d.Loc)}
	}
	panic("schema: unknown ast.TypeDefinition variant")
}

func newFieldedType(name ast.Name, desc *ast.StringValue, implements []ast.Name, directives []ast.Directive, astFields []ast.FieldDefinition, span ast.Span) fieldedType {
	impl := omap.New[string, ComponentName]()
	for _, i := range implements {
		if !impl.Has(i.String()) {
			impl.Set(i.String(), ComponentName{Name: i, Origin: DefinitionOrigin})
		}
	}
	fields := omap.New[string, Component[FieldDefinition]]()
	for _, f := range astFields {
		if !fields.Has(f.Name.String()) {
			fields.Set(f.Name.String(), Component[FieldDefinition]{Origin: DefinitionOrigin, Node: toFieldDefinition(f)})
		}
	}
	return fieldedType{Name: name, Desc: desc, ImplementsInterfaces: impl, Directives: wrapDirectives(directives, DefinitionOrigin), Fields: fields, Loc: loc(span)}
}

func wrapDirectives(ds []ast.Directive, origin Origin) []Component[ast.Directive] {
	out := make([]Component[ast.Directive], 0, len(ds))
	for _, d := range ds {
		out = append(out, Component[ast.Directive]{Origin: origin, Node: d})
	}
	return out
}

func insertDirectiveDefinition(s *Schema, diags *diagnostic.List, def ast.DirectiveDefinition, isBuiltin bool) {
	name := def.Name
	if !isBuiltin && name.IsIntrospection() {
		diags.Add(reservedNameDiag(name))
		return
	}
	if existing, ok := s.DirectiveDefinitions.Get(name.String()); ok {
		wasBuiltin := existing.Loc != nil && existing.Loc.FileID == ast.BuiltinFileID
		if !isBuiltin && wasBuiltin {
			// Redefinition of a built-in directive is permitted (spec.md §9
			// resolved Open Question) — replace silently.
		} else if !isBuiltin {
			diags.Add(duplicateDefinitionDiag(name.String(), name.Location(), existing.Loc))
			return
		}
	}
	s.DirectiveDefinitions.Set(name.String(), DirectiveDefinition{
		Description: def.Description,
		Name:        def.Name,
		Arguments:   toInputValues(def.Arguments),
		Repeatable:  def.Repeatable,
		Locations:   def.Locations,
		Loc:         loc(def.Loc),
	})
}

// applyExtension merges one `extend ...` block into the Schema per spec.md
// §4.3 step 3: locate the definition by name and kind, adopt or reject an
// orphan per the Builder's policy, reject a kind mismatch, otherwise merge.
func applyExtension(s *Schema, diags *diagnostic.List, adoptOrphan bool, ext ast.TypeSystemExtension) {
	name := ext.ExtendedName()
	origin := ExtensionOrigin(ExtensionID(ext.Location()))
	wantKind := extensionKind(ext)

	existing, ok := s.Types.Get(name.String())
	if !ok {
		if !adoptOrphan {
			diags.Add(diagnostic.New(diagnostic.OrphanExtension, "extension of undefined type %q", name.String()).
				WithPrimarySpan(ext.Location()))
			return
		}
		existing = synthesizeEmptyType(name, wantKind)
		s.Types.Set(name.String(), existing)
	} else if existing.Kind() != wantKind {
		diags.Add(diagnostic.New(diagnostic.ExtensionKindMismatch,
			"extension of %q does not match the kind of its definition", name.String()).
			WithPrimarySpan(ext.Location()).WithLabel(existing.TypeName().Location(), "defined here"))
		return
	}

	switch e := ext.(type) {
	case ast.ScalarTypeExtension:
		t := existing.(*ScalarType)
		t.Directives = append(t.Directives, wrapDirectives(e.Directives, origin)...)
	case ast.ObjectTypeExtension:
		t := existing.(*ObjectType)
		mergeFielded(&t.fieldedType, diags, origin, e.ImplementsInterfaces, e.Directives, e.Fields)
	case ast.InterfaceTypeExtension:
		t := existing.(*InterfaceType)
		mergeFielded(&t.fieldedType, diags, origin, e.ImplementsInterfaces, e.Directives, e.Fields)
	case ast.UnionTypeExtension:
		t := existing.(*UnionType)
		t.Directives = append(t.Directives, wrapDirectives(e.Directives, origin)...)
		for _, m := range e.Members {
			if t.Members.Has(m.String()) {
				diags.Add(diagnostic.New(diagnostic.DuplicateUnionMember, "duplicate union member %q", m.String()).
					WithPrimarySpan(m.Location()))
				continue
			}
			t.Members.Set(m.String(), ComponentName{Name: m, Origin: origin})
		}
	case ast.EnumTypeExtension:
		t := existing.(*EnumType)
		t.Directives = append(t.Directives, wrapDirectives(e.Directives, origin)...)
		for _, v := range e.Values {
			if t.Values.Has(v.Value.String()) {
				diags.Add(diagnostic.New(diagnostic.DuplicateEnumValue, "duplicate enum value %q", v.Value.String()).
					WithPrimarySpan(v.Location()))
				continue
			}
			t.Values.Set(v.Value.String(), Component[EnumValueDefinition]{
				Origin: origin,
				Node:   EnumValueDefinition{Value: v.Value, Directives: v.Directives, Loc: loc(v.Loc)},
			})
		}
	case ast.InputObjectTypeExtension:
		t := existing.(*InputObjectType)
		t.Directives = append(t.Directives, wrapDirectives(e.Directives, origin)...)
		for _, f := range toInputValues(e.Fields) {
			if t.Fields.Has(f.Name.String()) {
				diags.Add(diagnostic.New(diagnostic.DuplicateFieldAcrossExtensions, "duplicate field %q across extensions", f.Name.String()).
					WithPrimarySpan(f.Name.Location()))
				continue
			}
			t.Fields.Set(f.Name.String(), Component[InputValueDefinition]{Origin: origin, Node: f})
		}
	}
}

func mergeFielded(t *fieldedType, diags *diagnostic.List, origin Origin, implements []ast.Name, directives []ast.Directive, astFields []ast.FieldDefinition) {
	t.Directives = append(t.Directives, wrapDirectives(directives, origin)...)
	for _, i := range implements {
		if !t.ImplementsInterfaces.Has(i.String()) {
			t.ImplementsInterfaces.Set(i.String(), ComponentName{Name: i, Origin: origin})
		}
	}
	for _, f := range astFields {
		if t.Fields.Has(f.Name.String()) {
			diags.Add(diagnostic.New(diagnostic.DuplicateFieldAcrossExtensions, "duplicate field %q across extensions", f.Name.String()).
				WithPrimarySpan(f.Name.Location()))
			continue
		}
		t.Fields.Set(f.Name.String(), Component[FieldDefinition]{Origin: origin, Node: toFieldDefinition(f)})
	}
}

func extensionKind(ext ast.TypeSystemExtension) TypeKind {
	switch ext.(type) {
	case ast.ScalarTypeExtension:
		return ScalarKind
	case ast.ObjectTypeExtension:
		return ObjectKind
	case ast.InterfaceTypeExtension:
		return InterfaceKind
	case ast.UnionTypeExtension:
		return UnionKind
	case ast.EnumTypeExtension:
		return EnumKind
	case ast.InputObjectTypeExtension:
		return InputObjectKind
	}
	panic("schema: unknown ast.TypeSystemExtension variant")
}

// synthesizeEmptyType builds the empty placeholder definition an adopted
// orphan extension merges into (spec.md §4.3 step 3, adopt-orphan-extensions
// policy). It carries no Loc of its own — every one of its members arrives
// with an Extension origin.
func synthesizeEmptyType(name ast.Name, kind TypeKind) ExtendedType {
	switch kind {
	case ScalarKind:
		return &ScalarType{Name: name}
	case ObjectKind:
		return &ObjectType{fieldedType: emptyFielded(name)}
	case InterfaceKind:
		return &InterfaceType{fieldedType: emptyFielded(name)}
	case UnionKind:
		return &UnionType{Name: name, Members: omap.New[string, ComponentName]()}
	case EnumKind:
		return &EnumType{Name: name, Values: omap.New[string, Component[EnumValueDefinition]]()}
	case InputObjectKind:
		return &InputObjectType{Name: name, Fields: omap.New[string, Component[InputValueDefinition]]()}
	}
	panic("schema: unknown TypeKind")
}

func emptyFielded(name ast.Name) fieldedType {
	return fieldedType{
		Name:                 name,
		ImplementsInterfaces: omap.New[string, ComponentName](),
		Fields:               omap.New[string, Component[FieldDefinition]](),
	}
}
