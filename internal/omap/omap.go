// Package omap is a small insertion-ordered map, used throughout schema and
// executable wherever spec.md calls for an "ordered mapping": Schema.types,
// a type's fields, an enum's values, ExecutableDocument.fragments and
// .operations.named. Iteration order is stable and mirrors source order
// (spec.md §5), which a plain Go map cannot guarantee.
package omap

// Map is an insertion-ordered map from K to V. The zero value is ready to
// use. Map is not safe for concurrent writes; callers needing concurrent
// reads should freeze it behind an immutable wrapper (as
// valid.Valid[schema.Schema] and valid.Valid[executable.ExecutableDocument]
// do).
type Map[K comparable, V any] struct {
	index map[K]int
	keys  []K
	vals  []V
}

// New returns an empty Map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{index: make(map[K]int)}
}

// Set inserts or replaces the value for key, preserving the key's original
// insertion position on replacement.
func (m *Map[K, V]) Set(key K, val V) {
	if m.index == nil {
		m.index = make(map[K]int)
	}
	if i, ok := m.index[key]; ok {
		m.vals[i] = val
		return
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, val)
}

// Get returns the value for key and whether it was present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	var zero V
	if m.index == nil {
		return zero, false
	}
	i, ok := m.index[key]
	if !ok {
		return zero, false
	}
	return m.vals[i], true
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	if m.index == nil {
		return false
	}
	_, ok := m.index[key]
	return ok
}

// Keys returns the keys in insertion order. The returned slice must not be
// mutated by callers.
func (m *Map[K, V]) Keys() []K { return m.keys }

// Values returns the values in insertion order. The returned slice must not
// be mutated by callers.
func (m *Map[K, V]) Values() []V { return m.vals }

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return len(m.keys) }

// Each calls fn for every entry in insertion order.
func (m *Map[K, V]) Each(fn func(K, V)) {
	for i, k := range m.keys {
		fn(k, m.vals[i])
	}
}

// Clone returns a shallow copy with its own backing arrays, so mutating the
// clone never affects the original — the mechanism Schema.Clone uses for
// copy-on-write updates to an otherwise-shared node (spec.md §3 "Shared
// node").
func (m *Map[K, V]) Clone() *Map[K, V] {
	out := &Map[K, V]{
		index: make(map[K]int, len(m.index)),
		keys:  append([]K(nil), m.keys...),
		vals:  append([]V(nil), m.vals...),
	}
	for k, v := range m.index {
		out.index[k] = v
	}
	return out
}
