package executable

import (
	"github.com/shyptr/gqlcompiler/ast"
	"github.com/shyptr/gqlcompiler/diagnostic"
	"github.com/shyptr/gqlcompiler/schema"
	"github.com/shyptr/gqlcompiler/valid"
)

// fragmentCycleDepthLimit and fragmentExpansionDepthLimit guard the two
// recursions a malicious/mistaken document could otherwise drive forever:
// a fragment spreading itself, and a spread chain nested far deeper than
// any real document needs (spec.md §4.5 "Fragment cycles").
const (
	fragmentCycleDepthLimit     = 100
	fragmentExpansionDepthLimit = 100
)

// Validate runs every executable rule of spec.md §4.5 over doc and returns a
// validated, read-only ExecutableDocument on success. On failure the error
// is a *valid.WithErrors[ExecutableDocument]*, mirroring schema.Validate.
//
// Unknown directive names are silently skipped (location/repeatable/argument
// checks only run against a directive this schema actually declares) since
// the diagnostic taxonomy has no dedicated "undefined directive" kind — see
// DESIGN.md.
func Validate(sch *schema.Schema, doc *ExecutableDocument) (valid.Valid[ExecutableDocument], error) {
	diags := diagnostic.NewList()

	validateFragmentTypeConditions(sch, doc, diags)
	validateFragmentCycles(doc, diags)

	used := map[string]bool{}
	if doc.Operations.Anonymous != nil {
		validateOperation(sch, doc, doc.Operations.Anonymous, used, diags)
	}
	for _, name := range doc.Operations.Named.Keys() {
		op, _ := doc.Operations.Named.Get(name)
		validateOperation(sch, doc, op, used, diags)
	}
	validateUnusedFragments(doc, used, diags)

	if diags.Len() > 0 {
		return valid.Valid[ExecutableDocument]{}, valid.WithErrors[ExecutableDocument]{Value: doc, Diagnostics: diags}
	}
	return valid.New(doc), nil
}

func validateFragmentTypeConditions(sch *schema.Schema, doc *ExecutableDocument, diags *diagnostic.List) {
	for _, name := range doc.Fragments.Keys() {
		f, _ := doc.Fragments.Get(name)
		if f.ConditionType == nil || !isCompositeType(f.ConditionType) {
			diags.Add(diagnostic.New(diagnostic.InvalidFragmentTypeCondition,
				"fragment %q condition %q must be an object, interface or union type", name, f.TypeCondition.String()).
				WithPrimarySpan(f.TypeCondition.Location()))
		}
	}
}

// validateFragmentCycles walks each fragment's own selection tree (never
// crossing into a *different* fragment's own cycle check) looking for a
// spread chain that returns to the fragment it started from.
func validateFragmentCycles(doc *ExecutableDocument, diags *diagnostic.List) {
	for _, name := range doc.Fragments.Keys() {
		f, _ := doc.Fragments.Get(name)
		visiting := map[string]bool{name: true}
		if loc, limited := fragmentCycleReaches(doc, f.SelectionSet, name, visiting, 0); loc != nil {
			kind, msg := diagnostic.FragmentCycle, "fragment %q spreads itself, directly or transitively"
			if limited {
				kind, msg = diagnostic.FragmentCycleLimitExceeded, "fragment %q exceeds the maximum spread-chain depth checking for a cycle"
			}
			diags.Add(diagnostic.New(kind, msg, name).WithPrimarySpan(*loc))
		}
	}
}

func fragmentCycleReaches(doc *ExecutableDocument, set *SelectionSet, root string, visiting map[string]bool, depth int) (*ast.Span, bool) {
	if set == nil {
		return nil, false
	}
	if depth > fragmentCycleDepthLimit {
		return &set.Loc, true
	}
	for _, sel := range set.Selections {
		switch s := sel.(type) {
		case *Field:
			if loc, limited := fragmentCycleReaches(doc, s.SelectionSet, root, visiting, depth+1); loc != nil {
				return loc, limited
			}
		case *InlineFragment:
			if loc, limited := fragmentCycleReaches(doc, s.SelectionSet, root, visiting, depth+1); loc != nil {
				return loc, limited
			}
		case *FragmentSpread:
			if s.FragmentName.String() == root {
				return &s.Loc, false
			}
			if visiting[s.FragmentName.String()] {
				continue
			}
			target, ok := doc.Fragments.Get(s.FragmentName.String())
			if !ok {
				continue
			}
			visiting[s.FragmentName.String()] = true
			loc, limited := fragmentCycleReaches(doc, target.SelectionSet, root, visiting, depth+1)
			delete(visiting, s.FragmentName.String())
			if loc != nil {
				return loc, limited
			}
		}
	}
	return nil, false
}

func validateUnusedFragments(doc *ExecutableDocument, used map[string]bool, diags *diagnostic.List) {
	for _, name := range doc.Fragments.Keys() {
		if used[name] {
			continue
		}
		f, _ := doc.Fragments.Get(name)
		diags.Add(diagnostic.New(diagnostic.UnusedFragment, "fragment %q is never used", name).
			WithPrimarySpan(f.Name.Location()))
	}
}

func directiveLocationForOperation(t ast.OperationType) ast.DirectiveLocation {
	switch t {
	case ast.Mutation:
		return ast.LocMutation
	case ast.Subscription:
		return ast.LocSubscription
	default:
		return ast.LocQuery
	}
}

func validateOperation(sch *schema.Schema, doc *ExecutableDocument, op *Operation, usedFragments map[string]bool, diags *diagnostic.List) {
	vars := make(map[string]*VariableDefinition, len(op.Variables))
	for i := range op.Variables {
		vars[op.Variables[i].Name.String()] = &op.Variables[i]
	}
	usedVars := map[string]bool{}

	for i := range op.Variables {
		v := &op.Variables[i]
		if !sch.IsInputType(v.Type) {
			diags.Add(diagnostic.New(diagnostic.NonInputTypeVariable,
				"variable $%s must have an input type (scalar, enum or input object), not %s", v.Name.String(), v.Type.String()).
				WithPrimarySpan(v.Name.Location()))
		}
		validateDirectives(sch, v.Directives, ast.LocVariableDefinition, vars, usedVars, diags)
	}

	validateDirectives(sch, op.Directives, directiveLocationForOperation(op.Type), vars, usedVars, diags)
	validateSelectionSet(sch, doc, op.SelectionSet, vars, usedVars, usedFragments, 0, diags)
	validateSelectionMerging(doc, op.SelectionSet, diags)

	for name, v := range vars {
		if !usedVars[name] {
			diags.Add(diagnostic.New(diagnostic.UnusedVariable, "variable $%s is never used", name).
				WithPrimarySpan(v.Name.Location()))
		}
	}

	if op.Type == ast.Subscription {
		validateSubscriptionShape(op, diags)
	}
}

func validateSubscriptionShape(op *Operation, diags *diagnostic.List) {
	set := op.SelectionSet
	if set == nil || len(set.Selections) != 1 {
		diags.Add(diagnostic.New(diagnostic.InvalidSubscriptionShape,
			"a subscription operation must select exactly one field").WithPrimarySpan(op.Loc))
		return
	}
	f, ok := set.Selections[0].(*Field)
	if !ok {
		diags.Add(diagnostic.New(diagnostic.InvalidSubscriptionShape,
			"a subscription operation's root selection must be a single field, not a fragment").
			WithPrimarySpan(set.Selections[0].Location()))
		return
	}
	switch f.Name.String() {
	case "__typename", "__schema", "__type":
		diags.Add(diagnostic.New(diagnostic.InvalidSubscriptionShape,
			"a subscription operation's root field may not be a meta field").WithPrimarySpan(f.Loc))
	}
}

func validateSelectionSet(sch *schema.Schema, doc *ExecutableDocument, set *SelectionSet, vars map[string]*VariableDefinition, usedVars, usedFragments map[string]bool, depth int, diags *diagnostic.List) {
	if set == nil || depth > fragmentExpansionDepthLimit {
		return
	}
	parentType, _ := sch.Types.Get(set.ParentType.String())

	for _, sel := range set.Selections {
		switch s := sel.(type) {
		case *Field:
			validateField(sch, doc, s, parentType, vars, usedVars, usedFragments, depth, diags)
		case *InlineFragment:
			validateDirectives(sch, s.Directives, ast.LocInlineFragment, vars, usedVars, diags)
			if s.Explicit {
				condType, ok := sch.Types.Get(s.TypeCondition.String())
				if !ok || !isCompositeType(condType) {
					diags.Add(diagnostic.New(diagnostic.InvalidFragmentTypeCondition,
						"inline fragment condition %q must be an object, interface or union type", s.TypeCondition.String()).
						WithPrimarySpan(s.Loc))
				} else if parentType != nil && !spreadPossible(sch, parentType, condType) {
					diags.Add(diagnostic.New(diagnostic.FragmentSpreadImpossible,
						"inline fragment on %q can never match within %q", s.TypeCondition.String(), set.ParentType.String()).
						WithPrimarySpan(s.Loc))
				}
			}
			validateSelectionSet(sch, doc, s.SelectionSet, vars, usedVars, usedFragments, depth+1, diags)
		case *FragmentSpread:
			usedFragments[s.FragmentName.String()] = true
			validateDirectives(sch, s.Directives, ast.LocFragmentSpread, vars, usedVars, diags)
			frag, ok := doc.Fragments.Get(s.FragmentName.String())
			if !ok {
				diags.Add(diagnostic.New(diagnostic.UnknownFragment, "fragment %q is not defined", s.FragmentName.String()).
					WithPrimarySpan(s.Loc))
				continue
			}
			if parentType != nil && frag.ConditionType != nil && !spreadPossible(sch, parentType, frag.ConditionType) {
				diags.Add(diagnostic.New(diagnostic.FragmentSpreadImpossible,
					"fragment %q on %q can never match within %q", s.FragmentName.String(), frag.TypeCondition.String(), set.ParentType.String()).
					WithPrimarySpan(s.Loc))
			}
			validateSelectionSet(sch, doc, frag.SelectionSet, vars, usedVars, usedFragments, depth+1, diags)
		}
	}
}

func spreadPossible(sch *schema.Schema, parentType, condType schema.ExtendedType) bool {
	for name := range sch.PossibleTypes(parentType) {
		if _, ok := sch.PossibleTypes(condType)[name]; ok {
			return true
		}
	}
	return false
}

func validateField(sch *schema.Schema, doc *ExecutableDocument, f *Field, parentType schema.ExtendedType, vars map[string]*VariableDefinition, usedVars, usedFragments map[string]bool, depth int, diags *diagnostic.List) {
	validateDirectives(sch, f.Directives, ast.LocField, vars, usedVars, diags)

	if f.Definition == nil {
		// "Field definition exists": a name that does not resolve on a known
		// parent type is reported here as well as at bind time; still descend
		// so any further structural problems in the subtree are also surfaced.
		if parentType != nil {
			diags.Add(diagnostic.New(diagnostic.UndefinedField,
				"field %q is not defined on type %q", f.Name.String(), parentType.TypeName().String()).
				WithPrimarySpan(f.Name.Location()))
		}
		validateSelectionSet(sch, doc, f.SelectionSet, vars, usedVars, usedFragments, depth+1, diags)
		return
	}

	declType, _ := sch.ResolveType(f.Definition.Type)
	if declType != nil {
		isLeaf := declType.Kind() == schema.ScalarKind || declType.Kind() == schema.EnumKind
		switch {
		case isLeaf && !f.SelectionSet.IsEmpty():
			diags.Add(diagnostic.New(diagnostic.LeafFieldWithSelectionSet,
				"field %q has leaf type %s and cannot have a selection set", f.ResponseName(), f.Definition.Type.String()).
				WithPrimarySpan(f.Loc))
		case !isLeaf && f.SelectionSet.IsEmpty():
			diags.Add(diagnostic.New(diagnostic.CompositeFieldWithoutSelectionSet,
				"field %q of type %s must have a selection set", f.ResponseName(), f.Definition.Type.String()).
				WithPrimarySpan(f.Loc))
		}
	}

	validateArguments(sch, f.Arguments, f.Definition.Arguments, vars, usedVars, f.Loc, f.Name.String(), diags)
	validateSelectionSet(sch, doc, f.SelectionSet, vars, usedVars, usedFragments, depth+1, diags)
}

func validateDirectives(sch *schema.Schema, directives []ast.Directive, loc ast.DirectiveLocation, vars map[string]*VariableDefinition, usedVars map[string]bool, diags *diagnostic.List) {
	seen := map[string]ast.Directive{}
	for _, d := range directives {
		def, ok := sch.DirectiveDefinitions.Get(d.Name.String())
		if !ok {
			continue
		}
		if prior, dup := seen[d.Name.String()]; dup && !def.Repeatable {
			diags.Add(diagnostic.New(diagnostic.NonRepeatableDirectiveReused,
				"directive %q is not repeatable but is applied more than once here", d.Name.String()).
				WithPrimarySpan(d.Name.Location()).WithLabel(prior.Name.Location(), "first applied here"))
		}
		seen[d.Name.String()] = d
		if !def.HasLocation(loc) {
			diags.Add(diagnostic.New(diagnostic.DirectiveLocationMismatch,
				"directive %q cannot be used at %s", d.Name.String(), loc).WithPrimarySpan(d.Name.Location()))
		}
		validateArguments(sch, d.Arguments, def.Arguments, vars, usedVars, d.Loc, "@"+d.Name.String(), diags)
	}
}

func validateArguments(sch *schema.Schema, callArgs []ast.Argument, declared []schema.InputValueDefinition, vars map[string]*VariableDefinition, usedVars map[string]bool, loc ast.Span, owner string, diags *diagnostic.List) {
	seen := map[string]ast.Argument{}
	for _, a := range callArgs {
		if prior, ok := seen[a.Name.String()]; ok {
			diags.Add(diagnostic.New(diagnostic.DuplicateCallArgument, "argument %q is supplied more than once", a.Name.String()).
				WithPrimarySpan(a.Name.Location()).WithLabel(prior.Name.Location(), "first supplied here"))
			continue
		}
		seen[a.Name.String()] = a

		decl, ok := findInputValue(declared, a.Name.String())
		if !ok {
			diags.Add(diagnostic.New(diagnostic.UnknownArgument, "%q does not accept argument %q", owner, a.Name.String()).
				WithPrimarySpan(a.Name.Location()))
			continue
		}
		validateArgumentValue(sch, a.Value, decl.Type, vars, usedVars, diags)
	}
	for _, decl := range declared {
		if _, ok := seen[decl.Name.String()]; ok {
			continue
		}
		if decl.DefaultValue != nil || !ast.IsNonNull(decl.Type) {
			continue
		}
		diags.Add(diagnostic.New(diagnostic.MissingRequiredArgument, "%q is missing required argument %q", owner, decl.Name.String()).
			WithPrimarySpan(loc))
	}
}

func findInputValue(declared []schema.InputValueDefinition, name string) (schema.InputValueDefinition, bool) {
	for _, d := range declared {
		if d.Name.String() == name {
			return d, true
		}
	}
	return schema.InputValueDefinition{}, false
}

func validateArgumentValue(sch *schema.Schema, v ast.Value, declType ast.TypeRef, vars map[string]*VariableDefinition, usedVars map[string]bool, diags *diagnostic.List) {
	markVariableUsage(v, vars, usedVars, diags)

	if vv, ok := v.(ast.VariableValue); ok {
		if def, ok := vars[vv.Name.String()]; ok && !typeRefCompatible(def.Type, declType) {
			diags.Add(diagnostic.New(diagnostic.VariableUsageNotAllowed,
				"variable $%s of type %s cannot be used where type %s is expected", vv.Name.String(), def.Type.String(), declType.String()).
				WithPrimarySpan(vv.Loc))
		}
		return
	}
	if !sch.IsAssignable(v, declType) {
		diags.Add(diagnostic.New(diagnostic.ValueNotCoercible, "value is not coercible to type %s", declType.String()).
			WithPrimarySpan(v.Location()))
	}
}

// markVariableUsage records every $variable reference reachable anywhere
// inside v (including nested inside lists/objects) as used, and reports one
// that names an undeclared variable. typeRefCompatible, checked afterwards,
// does not apply spec §5.6's "effective type including location default"
// relaxation: a nullable variable with a non-null default is still rejected
// where a non-null type is expected.
func markVariableUsage(v ast.Value, vars map[string]*VariableDefinition, usedVars map[string]bool, diags *diagnostic.List) {
	switch vv := v.(type) {
	case ast.VariableValue:
		if _, ok := vars[vv.Name.String()]; !ok {
			diags.Add(diagnostic.New(diagnostic.UndefinedVariable, "variable $%s is not declared by this operation", vv.Name.String()).
				WithPrimarySpan(vv.Loc))
			return
		}
		usedVars[vv.Name.String()] = true
	case ast.ListValue:
		for _, item := range vv.Values {
			markVariableUsage(item, vars, usedVars, diags)
		}
	case ast.ObjectValue:
		for _, field := range vv.Fields {
			markVariableUsage(field.Value, vars, usedVars, diags)
		}
	}
}

// typeRefCompatible implements spec.md §4.5 "Variable usage allowed": varType
// (the variable's declared type) must be usable where locType is expected.
func typeRefCompatible(varType, locType ast.TypeRef) bool {
	if nn, ok := locType.(ast.NonNullTypeRef); ok {
		vnn, ok := varType.(ast.NonNullTypeRef)
		if !ok {
			return false
		}
		return typeRefCompatible(vnn.Element, nn.Element)
	}
	if vnn, ok := varType.(ast.NonNullTypeRef); ok {
		return typeRefCompatible(vnn.Element, locType)
	}
	if lst, ok := locType.(ast.ListTypeRef); ok {
		vlt, ok := varType.(ast.ListTypeRef)
		if !ok {
			return false
		}
		return typeRefCompatible(vlt.Element, lst.Element)
	}
	if _, ok := varType.(ast.ListTypeRef); ok {
		return false
	}
	return varType.NamedType().String() == locType.NamedType().String()
}

// validateSelectionMerging implements spec.md §4.5 "Selection merging" over
// the whole fragment-expanded tree reachable from set: two fields under the
// same response name, reached through any mix of direct siblings, inline
// fragments and fragment spreads, must have the same field name and equal
// arguments (FieldsInSetCanMerge). Once a group of same-response-name fields
// merges, their sub-selection sets are themselves merged and checked the
// same way, recursively — so a conflict buried under two different
// fragments spread at the same parent is still caught.
func validateSelectionMerging(doc *ExecutableDocument, set *SelectionSet, diags *diagnostic.List) {
	mergeSelectionSets(doc, []*SelectionSet{set}, 0, diags)
}

func mergeSelectionSets(doc *ExecutableDocument, sets []*SelectionSet, depth int, diags *diagnostic.List) {
	if depth > fragmentExpansionDepthLimit {
		return
	}

	var fields []*Field
	for _, set := range sets {
		fields = append(fields, collectFieldsForMerge(doc, set, map[string]bool{}, 0)...)
	}

	groups := map[string][]*Field{}
	var order []string
	for _, f := range fields {
		if _, ok := groups[f.ResponseName()]; !ok {
			order = append(order, f.ResponseName())
		}
		groups[f.ResponseName()] = append(groups[f.ResponseName()], f)
	}

	for _, response := range order {
		group := groups[response]
		first := group[0]
		for _, other := range group[1:] {
			if other.Name.String() != first.Name.String() {
				diags.Add(diagnostic.New(diagnostic.UnmergeableSelection,
					"fields %q and %q cannot both be aliased to %q", first.Name.String(), other.Name.String(), response).
					WithPrimarySpan(other.Loc).WithLabel(first.Loc, "first declared here"))
				continue
			}
			if !argumentsEqual(first.Arguments, other.Arguments) {
				diags.Add(diagnostic.New(diagnostic.UnmergeableSelection,
					"field %q is selected twice with different arguments", response).
					WithPrimarySpan(other.Loc).WithLabel(first.Loc, "first declared here"))
			}
		}

		var subSets []*SelectionSet
		for _, f := range group {
			if f.SelectionSet != nil && !f.SelectionSet.IsEmpty() {
				subSets = append(subSets, f.SelectionSet)
			}
		}
		if len(subSets) > 0 {
			mergeSelectionSets(doc, subSets, depth+1, diags)
		}
	}
}

// collectFieldsForMerge flattens every *Field directly or transitively
// visible at set, expanding inline fragments unconditionally and fragment
// spreads once each (visitedFragments breaks a spread cycle that survived
// validateFragmentCycles' own depth limit, rather than looping forever).
func collectFieldsForMerge(doc *ExecutableDocument, set *SelectionSet, visitedFragments map[string]bool, depth int) []*Field {
	if set == nil || depth > fragmentExpansionDepthLimit {
		return nil
	}
	var fields []*Field
	for _, sel := range set.Selections {
		switch s := sel.(type) {
		case *Field:
			fields = append(fields, s)
		case *InlineFragment:
			fields = append(fields, collectFieldsForMerge(doc, s.SelectionSet, visitedFragments, depth+1)...)
		case *FragmentSpread:
			name := s.FragmentName.String()
			if visitedFragments[name] {
				continue
			}
			frag, ok := doc.Fragments.Get(name)
			if !ok {
				continue
			}
			visitedFragments[name] = true
			fields = append(fields, collectFieldsForMerge(doc, frag.SelectionSet, visitedFragments, depth+1)...)
			delete(visitedFragments, name)
		}
	}
	return fields
}

func argumentsEqual(a, b []ast.Argument) bool {
	if len(a) != len(b) {
		return false
	}
	am := map[string]ast.Value{}
	for _, x := range a {
		am[x.Name.String()] = x.Value
	}
	for _, y := range b {
		v, ok := am[y.Name.String()]
		if !ok || !valueEqual(v, y.Value) {
			return false
		}
	}
	return true
}

func valueEqual(a, b ast.Value) bool {
	switch av := a.(type) {
	case ast.NullValue:
		_, ok := b.(ast.NullValue)
		return ok
	case ast.EnumValue:
		bv, ok := b.(ast.EnumValue)
		return ok && av.Value.String() == bv.Value.String()
	case ast.VariableValue:
		bv, ok := b.(ast.VariableValue)
		return ok && av.Name.String() == bv.Name.String()
	case ast.StringValue:
		bv, ok := b.(ast.StringValue)
		return ok && av.Value == bv.Value
	case ast.IntValue:
		bv, ok := b.(ast.IntValue)
		return ok && av.Lexical == bv.Lexical
	case ast.FloatValue:
		bv, ok := b.(ast.FloatValue)
		return ok && av.Lexical == bv.Lexical
	case ast.BooleanValue:
		bv, ok := b.(ast.BooleanValue)
		return ok && av.Value == bv.Value
	case ast.ListValue:
		bv, ok := b.(ast.ListValue)
		if !ok || len(av.Values) != len(bv.Values) {
			return false
		}
		for i := range av.Values {
			if !valueEqual(av.Values[i], bv.Values[i]) {
				return false
			}
		}
		return true
	case ast.ObjectValue:
		bv, ok := b.(ast.ObjectValue)
		if !ok || len(av.Fields) != len(bv.Fields) {
			return false
		}
		bm := map[string]ast.Value{}
		for _, f := range bv.Fields {
			bm[f.Name.String()] = f.Value
		}
		for _, f := range av.Fields {
			other, ok := bm[f.Name.String()]
			if !ok || !valueEqual(f.Value, other) {
				return false
			}
		}
		return true
	}
	return false
}
