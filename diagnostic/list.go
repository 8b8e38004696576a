package diagnostic

import (
	"sort"

	"github.com/shyptr/gqlcompiler/ast"
)

// List is an ordered collection of Diagnostics, sorted deterministically by
// (file id, start offset, end offset) of the primary span and then by kind
// (spec.md §4.5 "Diagnostic ordering"). Diagnostics without a primary span
// sort first within their file-less group.
type List struct {
	items []Diagnostic
}

// NewList returns an empty List.
func NewList() *List { return &List{} }

func (l *List) Len() int { return len(l.items) }

func (l *List) Iter() []Diagnostic { return l.items }

// Add appends a Diagnostic, re-sorting to keep the deterministic order an
// invariant of the type rather than something callers must remember to do.
func (l *List) Add(d Diagnostic) {
	l.items = append(l.items, d)
	l.sort()
}

// Merge appends every Diagnostic of other into l, preserving determinism
// (P8: merging preserves order-by-span determinism).
func (l *List) Merge(other *List) {
	if other == nil {
		return
	}
	l.items = append(l.items, other.items...)
	l.sort()
}

func (l *List) sort() {
	sort.SliceStable(l.items, func(i, j int) bool {
		a, b := l.items[i], l.items[j]
		ak, bk := spanKey(a.PrimarySpan), spanKey(b.PrimarySpan)
		if ak != bk {
			return ak.less(bk)
		}
		return a.Kind < b.Kind
	})
}

type key struct {
	hasSpan    bool
	file       ast.FileID
	start, end int
}

func (k key) less(o key) bool {
	if k.hasSpan != o.hasSpan {
		return !k.hasSpan // spanless diagnostics sort first
	}
	if !k.hasSpan {
		return false
	}
	if k.file != o.file {
		return k.file < o.file
	}
	if k.start != o.start {
		return k.start < o.start
	}
	return k.end < o.end
}

func spanKey(s *ast.Span) key {
	if s == nil {
		return key{}
	}
	return key{hasSpan: true, file: s.FileID, start: s.Start, end: s.End}
}
