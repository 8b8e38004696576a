// Package source holds the SourceMap: the mapping from a small per-process
// file id to the original path and text of that file (spec.md §3). File ids
// are allocated by a Map instance, not a process-global counter, so
// embedding multiple compiler sessions in one process stays well-defined
// (spec.md §9 "No global mutable state").
package source

import (
	"strings"
	"sync"

	"github.com/shyptr/gqlcompiler/ast"
)

// File is one entry of a Map: a path (for diagnostics/tooling, not
// necessarily a real filesystem path) and the exact source text parsed.
type File struct {
	Path string
	Text string
}

// Map allocates file ids and remembers each File's text, so a Diagnostic's
// byte-offset Span can later be translated to 1-based line/column (spec.md
// §6's JSON error shape).
type Map struct {
	mu    sync.RWMutex
	files map[ast.FileID]File
	next  int
}

// NewMap returns an empty Map. File id 0 is never allocated, so a zero
// ast.Span reliably means "no location" — HasLocation relies on this.
func NewMap() *Map {
	return &Map{files: make(map[ast.FileID]File), next: 1}
}

// Add allocates a new file id for (path, text) and returns it.
func (m *Map) Add(path, text string) ast.FileID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := ast.FileID(m.next)
	m.next++
	m.files[id] = File{Path: path, Text: text}
	return id
}

// Get returns the File for id, plus a builtin sentinel File for
// ast.BuiltinFileID even though that id was never Add-ed.
func (m *Map) Get(id ast.FileID) (File, bool) {
	if id == ast.BuiltinFileID {
		return File{Path: "<builtin>", Text: ""}, true
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[id]
	return f, ok
}

// Position is a 1-based line/column pair, as spec.md §6's JSON error shape
// requires.
type Position struct {
	Line   int
	Column int
}

// LineColumn translates a byte offset within file id into a 1-based
// line/column pair. An unknown file id or out-of-range offset returns the
// zero Position.
func (m *Map) LineColumn(id ast.FileID, offset int) Position {
	f, ok := m.Get(id)
	if !ok || offset < 0 || offset > len(f.Text) {
		return Position{}
	}
	line := 1 + strings.Count(f.Text[:offset], "\n")
	col := offset + 1
	if idx := strings.LastIndexByte(f.Text[:offset], '\n'); idx >= 0 {
		col = offset - idx
	}
	return Position{Line: line, Column: col}
}
