// Package valid provides the two small generic wrappers spec.md §4.7
// defines across both Schema and ExecutableDocument: Valid[T], which hides
// mutation behind a read-only facade once validation succeeds, and
// WithErrors[T], which bundles a partial value with the diagnostics that
// kept it from validating. Both are deliberately tiny — the interesting
// logic lives in schema.Validate and executable.Validate, not here.
package valid

import "github.com/shyptr/gqlcompiler/diagnostic"

// Valid wraps a *T that has passed validation. It exposes no mutating
// method of its own; Go cannot forbid a caller from type-asserting back to
// *T and mutating it directly, so — exactly like the teacher's immutable
// wrappers — Valid's guarantee is a convention: Get is for read access,
// and Unwrap marks where the validated guarantee ends. To intentionally
// modify a validated value, call Unwrap and re-validate.
type Valid[T any] struct {
	value *T
}

// New wraps value as validated. Callers are schema.Validate and
// executable.Validate only; nothing else should construct a Valid.
func New[T any](value *T) Valid[T] { return Valid[T]{value: value} }

// Get returns the wrapped value for read access.
func (v Valid[T]) Get() *T { return v.value }

// Unwrap returns the underlying *T for mutation, ending the validated
// guarantee — the result must be re-validated before it is trusted again.
func (v Valid[T]) Unwrap() *T { return v.value }

// WithErrors bundles a (possibly partial) value with the diagnostics
// collected while building or validating it. It is the error variant of
// the Result-shaped APIs (schema.Validate, executable.Validate and the
// graphql package's ParseAndValidate* functions).
type WithErrors[T any] struct {
	Value       *T
	Diagnostics *diagnostic.List
}

func (e WithErrors[T]) Error() string {
	n := 0
	if e.Diagnostics != nil {
		n = e.Diagnostics.Len()
	}
	if n == 1 {
		return e.Diagnostics.Iter()[0].MainMessage
	}
	return "graphql: multiple diagnostics"
}
