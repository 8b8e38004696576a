package schema

import (
	"fmt"

	"github.com/shyptr/gqlcompiler/ast"
	"github.com/shyptr/gqlcompiler/diagnostic"
	"github.com/shyptr/gqlcompiler/valid"
)

// Validate runs every type-system rule of spec.md §4.5 over s and returns a
// validated, read-only Schema on success. On failure the returned error is
// a *valid.WithErrors[Schema]* carrying both the diagnostics and the
// (invalid) Schema they were raised against, mirroring the teacher's
// validator which never discards a partially-built value on error.
//
// Unique top-level names is enforced earlier, by Builder.Build (duplicate
// names can't even be represented in the Types/DirectiveDefinitions maps,
// so there is nothing left for a rule here to detect).
func Validate(s *Schema) (valid.Valid[Schema], error) {
	diags := diagnostic.NewList()

	validateRootTypes(s, diags)
	validateReferencedTypes(s, diags)
	s.Types.Each(func(_ string, t ExtendedType) {
		validateReservedNamesOnType(t, diags)
		switch v := t.(type) {
		case *ObjectType:
			validateInterfaceImplementation(s, v.Name, &v.fieldedType, diags)
			validateFieldedArgumentUniqueness(&v.fieldedType, diags)
		case *InterfaceType:
			validateInterfaceImplementation(s, v.Name, &v.fieldedType, diags)
			validateFieldedArgumentUniqueness(&v.fieldedType, diags)
		case *UnionType:
			validateUnionMembers(s, v, diags)
		case *EnumType:
			validateEnumValues(v, diags)
		case *InputObjectType:
			validateDefaultValues(s, v, diags)
		}
	})
	s.DirectiveDefinitions.Each(func(_ string, d DirectiveDefinition) {
		validateDirectiveArgumentUniqueness(d, diags)
		validateDirectiveLocations(d, diags)
		validateReservedNamesOnDirective(d, diags)
	})
	validateInputObjectCycles(s, diags)
	validateDirectiveDefinitionCycles(s, diags)

	if diags.Len() > 0 {
		return valid.Valid[Schema]{}, valid.WithErrors[Schema]{Value: s, Diagnostics: diags}
	}
	return valid.New(s), nil
}

// validateRootTypes realizes "Valid root types": query root exists and is
// Object; mutation/subscription if present are Object.
func validateRootTypes(s *Schema, diags *diagnostic.List) {
	checkRoot := func(cn *ComponentName, required bool) {
		if cn == nil {
			if required {
				diags.Add(diagnostic.New(diagnostic.InvalidRootType, "schema has no query root type"))
			}
			return
		}
		t, ok := s.Types.Get(cn.Name.String())
		if !ok || t.Kind() != ObjectKind {
			diags.Add(diagnostic.New(diagnostic.InvalidRootType, "root type %q must be an Object type", cn.Name.String()).
				WithPrimarySpan(cn.Name.Location()))
		}
	}
	checkRoot(s.SchemaDefinition.Query, true)
	checkRoot(s.SchemaDefinition.Mutation, false)
	checkRoot(s.SchemaDefinition.Subscription, false)
}

// validateReferencedTypes realizes invariant 3 of spec.md §3: every
// TypeRef::Named(n) used in a field return type, a field/directive argument
// type, or an input-object field type must resolve to a type declared in
// s.Types, and must resolve to a type of the right *position* kind — input
// positions (arguments, input-object fields) require an input type (scalar,
// enum or input object); output positions (field return types) require an
// output type (anything but an input object). Interface-reference checks
// inside `implements` are a separate rule (validateInterfaceImplementation);
// union members have their own (validateUnionMembers).
func validateReferencedTypes(s *Schema, diags *diagnostic.List) {
	s.Types.Each(func(_ string, t ExtendedType) {
		switch v := t.(type) {
		case *ObjectType:
			validateFieldedTypeReferences(s, &v.fieldedType, diags)
		case *InterfaceType:
			validateFieldedTypeReferences(s, &v.fieldedType, diags)
		case *InputObjectType:
			v.Fields.Each(func(_ string, f Component[InputValueDefinition]) {
				checkTypeRef(s, f.Node.Type, true,
					fmt.Sprintf("input field %q of %q", f.Node.Name.String(), v.Name.String()), diags)
			})
		}
	})
	s.DirectiveDefinitions.Each(func(_ string, d DirectiveDefinition) {
		for _, a := range d.Arguments {
			checkTypeRef(s, a.Type, true,
				fmt.Sprintf("argument %q of directive %q", a.Name.String(), "@"+d.Name.String()), diags)
		}
	})
}

func validateFieldedTypeReferences(s *Schema, ft *fieldedType, diags *diagnostic.List) {
	ft.Fields.Each(func(_ string, f Component[FieldDefinition]) {
		checkTypeRef(s, f.Node.Type, false,
			fmt.Sprintf("field %q of %q", f.Node.Name.String(), ft.Name.String()), diags)
		for _, a := range f.Node.Arguments {
			checkTypeRef(s, a.Type, true,
				fmt.Sprintf("argument %q of field %q.%s", a.Name.String(), ft.Name.String(), f.Node.Name.String()), diags)
		}
	})
}

// checkTypeRef reports ref's named type as undefined if it is missing from
// s.Types, or as the wrong position kind if it exists but an input position
// resolves to an Object/Interface/Union or an output position resolves to an
// Input Object.
func checkTypeRef(s *Schema, ref ast.TypeRef, wantInput bool, context string, diags *diagnostic.List) {
	name := ref.NamedType()
	t, ok := s.Types.Get(name.String())
	if !ok {
		diags.Add(diagnostic.New(diagnostic.UndefinedType, "%s references undefined type %q", context, name.String()).
			WithPrimarySpan(name.Location()))
		return
	}
	if wantInput && !isInputKind(t.Kind()) {
		diags.Add(diagnostic.New(diagnostic.UndefinedType,
			"%s must have an input type (scalar, enum or input object), not %q", context, name.String()).
			WithPrimarySpan(name.Location()))
		return
	}
	if !wantInput && t.Kind() == InputObjectKind {
		diags.Add(diagnostic.New(diagnostic.UndefinedType,
			"%s must have an output type, but %q is an input object", context, name.String()).
			WithPrimarySpan(name.Location()))
	}
}

// validateInterfaceImplementation realizes "Interface implementation" and,
// via Schema.Implements, "Implements transitivity": the schema builder only
// records the directly-declared interfaces, so transitivity is checked here
// by requiring each transitively-reachable interface to also be declared.
func validateInterfaceImplementation(s *Schema, typeName ast.Name, ft *fieldedType, diags *diagnostic.List) {
	declared := map[string]bool{}
	ft.ImplementsInterfaces.Each(func(k string, _ ComponentName) { declared[k] = true })

	ft.ImplementsInterfaces.Each(func(_ string, cn ComponentName) {
		it, ok := s.Types.Get(cn.Name.String())
		if !ok {
			diags.Add(diagnostic.New(diagnostic.UndefinedType, "interface %q is not defined", cn.Name.String()).
				WithPrimarySpan(cn.Name.Location()))
			return
		}
		iface, ok := it.(*InterfaceType)
		if !ok {
			diags.Add(diagnostic.New(diagnostic.IncoherentInterfaceImplementation,
				"%q is not an interface type", cn.Name.String()).WithPrimarySpan(cn.Name.Location()))
			return
		}

		iface.Fields.Each(func(fname string, ifc Component[FieldDefinition]) {
			own, ok := ft.Fields.Get(fname)
			if !ok {
				diags.Add(diagnostic.New(diagnostic.IncoherentInterfaceImplementation,
					"%q must declare field %q to implement %q", typeName.String(), fname, cn.Name.String()).
					WithPrimarySpan(typeName.Location()).WithLabel(ifc.Node.Name.Location(), "required by this field"))
				return
			}
			if !s.isValidSubtype(own.Node.Type, ifc.Node.Type) {
				diags.Add(diagnostic.New(diagnostic.IncoherentInterfaceImplementation,
					"field %q of %q has type %s, not a valid covariant narrowing of %s",
					fname, typeName.String(), own.Node.Type.String(), ifc.Node.Type.String()).
					WithPrimarySpan(own.Node.Type.Location()))
			}
			for _, ifcArg := range ifc.Node.Arguments {
				ownArg, ok := own.Node.Argument(ifcArg.Name.String())
				if !ok {
					diags.Add(diagnostic.New(diagnostic.IncoherentInterfaceImplementation,
						"field %q of %q is missing argument %q required by %q",
						fname, typeName.String(), ifcArg.Name.String(), cn.Name.String()).
						WithPrimarySpan(own.Node.Name.Location()))
					continue
				}
				if ownArg.Type.String() != ifcArg.Type.String() {
					diags.Add(diagnostic.New(diagnostic.IncoherentInterfaceImplementation,
						"argument %q of field %q must have type %s to match %q",
						ifcArg.Name.String(), fname, ifcArg.Type.String(), cn.Name.String()).
						WithPrimarySpan(ownArg.Type.Location()))
				}
			}
			for _, ownArg := range own.Node.Arguments {
				if _, ok := ifc.Node.Argument(ownArg.Name.String()); !ok && ast.IsNonNull(ownArg.Type) && ownArg.DefaultValue == nil {
					diags.Add(diagnostic.New(diagnostic.IncoherentInterfaceImplementation,
						"additional argument %q of field %q must be nullable or have a default value",
						ownArg.Name.String(), fname).WithPrimarySpan(ownArg.Name.Location()))
				}
			}
		})

		// Transitivity: every interface iface itself implements must also be
		// declared by typeName.
		iface.ImplementsInterfaces.Each(func(transName string, transCN ComponentName) {
			if !declared[transName] {
				diags.Add(diagnostic.New(diagnostic.InterfaceNotTransitivelyImplemented,
					"%q implements %q transitively via %q but does not declare it",
					typeName.String(), transName, cn.Name.String()).
					WithPrimarySpan(typeName.Location()).WithLabel(transCN.Name.Location(), "transitively required here"))
			}
		})
	})
}

// validateUnionMembers realizes "Union members": each member is a declared
// Object type. Cross-extension duplicate members are already diagnosed at
// merge time (builder.go); duplicates named twice within a single
// definition are deduplicated silently by the ordered map, a deliberate
// simplification (see DESIGN.md).
func validateUnionMembers(s *Schema, u *UnionType, diags *diagnostic.List) {
	u.Members.Each(func(_ string, cn ComponentName) {
		t, ok := s.Types.Get(cn.Name.String())
		if !ok || t.Kind() != ObjectKind {
			diags.Add(diagnostic.New(diagnostic.InvalidUnionMember,
				"union member %q must be a declared Object type", cn.Name.String()).
				WithPrimarySpan(cn.Name.Location()))
		}
	})
}

// validateEnumValues realizes "Enum values": non-empty, not true/false/null.
// Duplicate values are deduplicated by the ordered map the same way union
// members are (see validateUnionMembers).
func validateEnumValues(e *EnumType, diags *diagnostic.List) {
	if e.Values.Len() == 0 {
		diags.Add(diagnostic.New(diagnostic.EmptyEnum, "enum %q must declare at least one value", e.Name.String()).
			WithPrimarySpan(e.Name.Location()))
		return
	}
	e.Values.Each(func(_ string, v Component[EnumValueDefinition]) {
		switch v.Node.Value.String() {
		case "true", "false", "null":
			diags.Add(diagnostic.New(diagnostic.ReservedEnumValue,
				"enum value %q is reserved", v.Node.Value.String()).WithPrimarySpan(v.Node.Value.Location()))
		}
	})
}

func validateFieldedArgumentUniqueness(ft *fieldedType, diags *diagnostic.List) {
	ft.Fields.Each(func(_ string, f Component[FieldDefinition]) {
		checkArgumentUniqueness(f.Node.Arguments, diags)
	})
}

func validateDirectiveArgumentUniqueness(d DirectiveDefinition, diags *diagnostic.List) {
	checkArgumentUniqueness(d.Arguments, diags)
}

// checkArgumentUniqueness realizes "Argument uniqueness" at the
// type-system level: arguments declared on a field or directive definition
// must have unique names.
func checkArgumentUniqueness(args []InputValueDefinition, diags *diagnostic.List) {
	seen := map[string]InputValueDefinition{}
	for _, a := range args {
		if prior, ok := seen[a.Name.String()]; ok {
			diags.Add(diagnostic.New(diagnostic.DuplicateArgument, "duplicate argument %q", a.Name.String()).
				WithPrimarySpan(a.Name.Location()).WithLabel(prior.Name.Location(), "first declared here"))
			continue
		}
		seen[a.Name.String()] = a
	}
}

func validateDirectiveLocations(d DirectiveDefinition, diags *diagnostic.List) {
	if len(d.Locations) == 0 {
		diags.Add(diagnostic.New(diagnostic.EmptyDirectiveLocations,
			"directive %q must declare at least one location", d.Name.String()).WithPrimarySpan(d.Name.Location()))
	}
}

func validateReservedNamesOnType(t ExtendedType, diags *diagnostic.List) {
	if t.TypeName().IsIntrospection() {
		return
	}
	checkField := func(name ast.Name) {
		if name.IsIntrospection() {
			diags.Add(reservedNameDiag(name))
		}
	}
	switch v := t.(type) {
	case *ObjectType:
		v.Fields.Each(func(_ string, f Component[FieldDefinition]) {
			checkField(f.Node.Name)
			for _, a := range f.Node.Arguments {
				checkField(a.Name)
			}
		})
	case *InterfaceType:
		v.Fields.Each(func(_ string, f Component[FieldDefinition]) {
			checkField(f.Node.Name)
			for _, a := range f.Node.Arguments {
				checkField(a.Name)
			}
		})
	case *EnumType:
		v.Values.Each(func(_ string, ev Component[EnumValueDefinition]) { checkField(ev.Node.Value) })
	case *InputObjectType:
		v.Fields.Each(func(_ string, f Component[InputValueDefinition]) { checkField(f.Node.Name) })
	}
}

func validateReservedNamesOnDirective(d DirectiveDefinition, diags *diagnostic.List) {
	for _, a := range d.Arguments {
		if a.Name.IsIntrospection() {
			diags.Add(reservedNameDiag(a.Name))
		}
	}
}

// validateInputObjectCycles realizes "Input type cycles": a chain of
// non-null input-object fields (directly, or through non-null lists) may
// not cycle back on itself, bounded at depth 32 to guard against runaway
// recursion on a malicious/mistaken schema.
const inputObjectCycleDepthLimit = 32

func validateInputObjectCycles(s *Schema, diags *diagnostic.List) {
	s.Types.Each(func(name string, t ExtendedType) {
		io, ok := t.(*InputObjectType)
		if !ok {
			return
		}
		visiting := map[string]bool{name: true}
		path := []ast.Span{}
		if loc, limited := inputObjectCycleReaches(s, io, name, visiting, &path, 0); loc != nil {
			d := diagnostic.New(diagnostic.InputObjectCycle, "input object %q has a non-null reference cycle", name).
				WithPrimarySpan(*loc)
			if limited {
				d = diagnostic.New(diagnostic.InputObjectCycleLimitExceeded,
					"input object %q exceeds the maximum cycle-detection depth (%d)", name, inputObjectCycleDepthLimit).
					WithPrimarySpan(*loc)
			}
			diags.Add(d)
		}
	})
}

// inputObjectCycleReaches walks non-null (or non-null list) fields of io
// looking for a path back to root. Returns the offending field's span, and
// whether it stopped because the depth guard tripped rather than a genuine
// cycle.
func inputObjectCycleReaches(s *Schema, io *InputObjectType, root string, visiting map[string]bool, path *[]ast.Span, depth int) (*ast.Span, bool) {
	if depth > inputObjectCycleDepthLimit {
		if len(*path) > 0 {
			return &(*path)[0], true
		}
		return nil, true
	}
	var found *ast.Span
	limited := false
	io.Fields.Each(func(_ string, f Component[InputValueDefinition]) {
		if found != nil || limited {
			return
		}
		if !isNonNullChain(f.Node.Type) {
			return
		}
		fieldLoc := f.Node.Type.Location()
		target := f.Node.Type.NamedType().String()
		if target == root {
			found = &fieldLoc
			return
		}
		if visiting[target] {
			return
		}
		next, ok := s.Types.Get(target)
		if !ok {
			return
		}
		nextIO, ok := next.(*InputObjectType)
		if !ok {
			return
		}
		visiting[target] = true
		*path = append(*path, fieldLoc)
		if f2, l2 := inputObjectCycleReaches(s, nextIO, root, visiting, path, depth+1); f2 != nil {
			found, limited = f2, l2
		}
		*path = (*path)[:len(*path)-1]
		delete(visiting, target)
	})
	return found, limited
}

// isNonNullChain reports whether ref is NonNull(Named) or NonNull(List(...NonNull chain...)),
// the shape "Input type cycles" tracks — a nullable field, or a list that
// may contain null, breaks the cycle because an empty/null value is always
// a valid way out.
func isNonNullChain(ref ast.TypeRef) bool {
	nn, ok := ref.(ast.NonNullTypeRef)
	if !ok {
		return false
	}
	switch e := nn.Element.(type) {
	case ast.NamedTypeRef:
		return true
	case ast.ListTypeRef:
		return isNonNullChain(e.Element)
	}
	return false
}

// validateDirectiveDefinitionCycles reports a directive definition one of
// whose arguments has a type named the same as the directive itself (see
// DESIGN.md). Directives applied to arguments, to argument types or to the
// fields of those types are not followed, so indirect cycles through them
// are not detected.
func validateDirectiveDefinitionCycles(s *Schema, diags *diagnostic.List) {
	for _, d := range s.DirectiveDefinitions.Values() {
		for _, a := range d.Arguments {
			if a.Type.NamedType().String() == d.Name.String() {
				diags.Add(diagnostic.New(diagnostic.DirectiveDefinitionCycle,
					"directive %q cannot reference itself in an argument type", d.Name.String()).
					WithPrimarySpan(a.Type.Location()))
			}
		}
	}
}

// validateDefaultValues realizes "Default value typing" for input-object
// field defaults only. Default values declared on field arguments and
// directive arguments are not checked, here or by the executable layer,
// whose argument rules only look at values supplied at a call site.
func validateDefaultValues(s *Schema, io *InputObjectType, diags *diagnostic.List) {
	io.Fields.Each(func(_ string, f Component[InputValueDefinition]) {
		if f.Node.DefaultValue == nil {
			return
		}
		if !isAssignable(s, f.Node.DefaultValue, f.Node.Type) {
			diags.Add(diagnostic.New(diagnostic.InvalidDefaultValue,
				"default value is not assignable to type %s", f.Node.Type.String()).
				WithPrimarySpan(f.Node.DefaultValue.Location()))
		}
	})
}

// IsAssignable reports whether literal value v may be coerced into a
// position declared as t. Exported so package executable's argument-
// legality and default-value rules reuse the same coercion check schema's
// own input-object default-value rule uses, rather than re-deriving it.
func (s *Schema) IsAssignable(v ast.Value, t ast.TypeRef) bool { return isAssignable(s, v, t) }

// isAssignable is a structural (not full-coercion) compatibility check
// between an ast.Value literal and a declared TypeRef: enough to catch the
// common type-system-time mistakes (wrong shape, null into non-null)
// without duplicating spec §5.6's runtime coercion semantics, which belongs
// to the executable layer's argument-value validation.
func isAssignable(s *Schema, v ast.Value, t ast.TypeRef) bool {
	if _, isNull := v.(ast.NullValue); isNull {
		return !ast.IsNonNull(t)
	}
	if nn, ok := t.(ast.NonNullTypeRef); ok {
		return isAssignable(s, v, nn.Element)
	}
	if _, ok := v.(ast.VariableValue); ok {
		// Default values may not reference variables; caught elsewhere by
		// the parser/grammar. Treat permissively here.
		return true
	}
	if lt, ok := t.(ast.ListTypeRef); ok {
		lv, ok := v.(ast.ListValue)
		if !ok {
			return isAssignable(s, v, lt.Element) // single-value list coercion
		}
		for _, item := range lv.Values {
			if !isAssignable(s, item, lt.Element) {
				return false
			}
		}
		return true
	}
	named, ok := t.(ast.NamedTypeRef)
	if !ok {
		return false
	}
	target, ok := s.Types.Get(named.Name.String())
	if !ok {
		return true // undefined-type errors are reported elsewhere
	}
	switch target.Kind() {
	case ScalarKind:
		_, isInt := v.(ast.IntValue)
		_, isFloat := v.(ast.FloatValue)
		_, isString := v.(ast.StringValue)
		_, isBool := v.(ast.BooleanValue)
		switch named.Name.String() {
		case "Int":
			return isInt
		case "Float":
			return isInt || isFloat
		case "String":
			return isString
		case "Boolean":
			return isBool
		case "ID":
			return isInt || isString
		}
		switch v.(type) {
		case ast.IntValue, ast.FloatValue, ast.StringValue, ast.BooleanValue, ast.ObjectValue, ast.ListValue:
			return true
		}
		return false
	case EnumKind:
		_, ok := v.(ast.EnumValue)
		return ok
	case InputObjectKind:
		ov, ok := v.(ast.ObjectValue)
		if !ok {
			return false
		}
		io := target.(*InputObjectType)
		for _, f := range ov.Fields {
			decl, ok := io.Fields.Get(f.Name.String())
			if !ok {
				return false
			}
			if !isAssignable(s, f.Value, decl.Node.Type) {
				return false
			}
		}
		return true
	}
	return false
}
