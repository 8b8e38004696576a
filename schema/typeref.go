package schema

import (
	"github.com/shyptr/gqlcompiler/ast"
	"github.com/shyptr/gqlcompiler/internal/omap"
)

// ResolveType follows ref's innermost named type into s.Types, so callers
// never hand-roll the List/NonNull unwrap spec.md's TypeRef model requires.
func (s *Schema) ResolveType(ref ast.TypeRef) (ExtendedType, bool) {
	return s.Types.Get(ref.NamedType().String())
}

func isInputKind(k TypeKind) bool {
	return k == ScalarKind || k == EnumKind || k == InputObjectKind
}

func isCompositeKind(k TypeKind) bool {
	return k == ObjectKind || k == InterfaceKind || k == UnionKind
}

// IsInputType reports whether ref resolves to a Scalar, Enum or Input
// Object (spec.md §4.5 "Variable is input type").
func (s *Schema) IsInputType(ref ast.TypeRef) bool {
	t, ok := s.ResolveType(ref)
	return ok && isInputKind(t.Kind())
}

// IsCompositeType reports whether ref resolves to an Object, Interface or
// Union (spec.md §4.5 "Field on composite").
func (s *Schema) IsCompositeType(ref ast.TypeRef) bool {
	t, ok := s.ResolveType(ref)
	return ok && isCompositeKind(t.Kind())
}

// FieldsOf returns the declared fields of t, if t is an Object or Interface
// type — the only two ExtendedType kinds that have fields. Exported so
// package executable can resolve a selection's field without a type switch
// into schema's unexported fieldedType.
func FieldsOf(t ExtendedType) (*omap.Map[string, Component[FieldDefinition]], bool) {
	switch v := t.(type) {
	case *ObjectType:
		return v.Fields, true
	case *InterfaceType:
		return v.Fields, true
	}
	return nil, false
}

func implementsListOf(t ExtendedType) *omap.Map[string, ComponentName] {
	switch v := t.(type) {
	case *ObjectType:
		return v.ImplementsInterfaces
	case *InterfaceType:
		return v.ImplementsInterfaces
	}
	return nil
}

// Implements reports whether object (or interface) t implements interface
// name, transitively (spec.md §4.5 "Implements transitivity").
func (s *Schema) Implements(t ExtendedType, name string) bool {
	implements := implementsListOf(t)
	if implements == nil {
		return false
	}
	visited := map[string]bool{}
	var walk func(*omap.Map[string, ComponentName]) bool
	walk = func(m *omap.Map[string, ComponentName]) bool {
		for _, cn := range m.Values() {
			if cn.Name.String() == name {
				return true
			}
			if visited[cn.Name.String()] {
				continue
			}
			visited[cn.Name.String()] = true
			if it, ok := s.Types.Get(cn.Name.String()); ok {
				if next := implementsListOf(it); next != nil && walk(next) {
					return true
				}
			}
		}
		return false
	}
	return walk(implements)
}

// PossibleTypes returns the Object types a composite type (Object,
// Interface or Union) can concretely be at runtime, used by fragment-spread
// possibility checks (spec.md §4.5 "Fragment spread is possible").
func (s *Schema) PossibleTypes(t ExtendedType) map[string]*ObjectType {
	out := map[string]*ObjectType{}
	switch v := t.(type) {
	case *ObjectType:
		out[v.Name.String()] = v
	case *UnionType:
		v.Members.Each(func(_ string, cn ComponentName) {
			if ot, ok := s.Types.Get(cn.Name.String()); ok {
				if obj, ok := ot.(*ObjectType); ok {
					out[obj.Name.String()] = obj
				}
			}
		})
	case *InterfaceType:
		s.Types.Each(func(_ string, candidate ExtendedType) {
			if obj, ok := candidate.(*ObjectType); ok && s.Implements(obj, v.Name.String()) {
				out[obj.Name.String()] = obj
			}
		})
	}
	return out
}

// isValidSubtype implements the spec's IsValidImplementationFieldType: sub
// is an acceptable covariant narrowing of super (spec.md §4.5 "Interface
// implementation").
func (s *Schema) isValidSubtype(sub, super ast.TypeRef) bool {
	if nn, ok := sub.(ast.NonNullTypeRef); ok {
		if superNN, ok := super.(ast.NonNullTypeRef); ok {
			return s.isValidSubtype(nn.Element, superNN.Element)
		}
		return s.isValidSubtype(nn.Element, super)
	}
	if _, ok := super.(ast.NonNullTypeRef); ok {
		return false
	}
	if subList, ok := sub.(ast.ListTypeRef); ok {
		superList, ok := super.(ast.ListTypeRef)
		if !ok {
			return false
		}
		return s.isValidSubtype(subList.Element, superList.Element)
	}
	if _, ok := super.(ast.ListTypeRef); ok {
		return false
	}
	if sub.NamedType().String() == super.NamedType().String() {
		return true
	}
	subType, ok := s.Types.Get(sub.NamedType().String())
	if !ok {
		return false
	}
	obj, ok := subType.(*ObjectType)
	if !ok {
		return false
	}
	superType, ok := s.Types.Get(super.NamedType().String())
	if !ok {
		return false
	}
	switch superType.(type) {
	case *InterfaceType:
		return s.Implements(obj, super.NamedType().String())
	case *UnionType:
		_, isMember := s.PossibleTypes(superType)[obj.Name.String()]
		return isMember
	}
	return false
}
