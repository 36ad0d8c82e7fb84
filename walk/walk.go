// walk.go - lazy, depth-bounded, glob-aware traversal over an FS
//
// (c) 2024 Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package walk

import (
	"strings"
	"unicode/utf8"
)

// node is the walker's internal stack entry: either a leaf file or a
// directory awaiting expansion. depth is 0 at the traversal root.
type node struct {
	isDir    bool
	expanded bool // read_dir was already attempted and failed
	depth    int
	path     string
}

// WalkItem is one matched entry returned by the walker.
type WalkItem struct {
	Path  string
	IsDir bool
}

// Builder assembles a Walk from a backend, a path (which may carry
// glob metacharacters) and a set of additional filters. It mirrors
// this codebase's other Option-building constructors but is kept as
// its own small type since a walk has an irreducible required input
// (the path) the others don't.
type Builder struct {
	fs      FS
	path    string
	filters []Filter
}

// NewBuilder starts a Walk over fs.
func NewBuilder(fs FS) *Builder {
	return &Builder{fs: fs}
}

// WithPath sets the traversal path/pattern. Required.
func (b *Builder) WithPath(path string) *Builder {
	b.path = path
	return b
}

// WithFilter appends an additional filter; all filters are ANDed with
// whatever glob filter is derived from the path itself.
func (b *Builder) WithFilter(f Filter) *Builder {
	b.filters = append(b.filters, f)
	return b
}

// Build finalizes the walker.
func (b *Builder) Build() (*Walk, error) {
	if b.path == "" {
		return nil, NoPathDefined
	}
	return New(b.fs, b.path, b.filters...)
}

// Walk is a single-threaded, explicit-stack iterator over an FS. It
// holds no goroutines and does no I/O until Next is called; dropping a
// Walk mid-traversal (by simply not calling Next again) requires no
// cleanup.
type Walk struct {
	stack    []node
	fs       FS
	maxDepth int // -1 means unbounded
	filters  []Filter
}

// New builds a Walk rooted at path over fs. path may contain '*', '?'
// or '**'; if it does, a GlobFilter derived from the whole path string
// is appended to filters and the traversal root is re-derived as the
// longest literal prefix ending at a path separator before the first
// metacharacter. If path contains no metacharacters, it is both the
// root and (if it exists) the sole candidate entry.
func New(fs FS, path string, filters ...Filter) (*Walk, error) {
	if !utf8.ValidString(path) {
		return nil, &PathFormatError{Path: path}
	}

	root := path
	maxDepth := -1

	if strings.ContainsAny(path, "*?") {
		gf, err := NewGlobFilter(path)
		if err != nil {
			return nil, err
		}
		filters = append(filters, gf)
		root = globRoot(path)
	}

	if !strings.Contains(path, "**") {
		rest := strings.TrimPrefix(path, root)
		maxDepth = countComponents(rest)
	}

	w := &Walk{
		fs:       fs,
		maxDepth: maxDepth,
		filters:  filters,
	}

	if fs.IsDir(root) {
		w.stack = append(w.stack, node{isDir: true, depth: 0, path: root})
	} else if fs.Exists(root) {
		w.stack = append(w.stack, node{isDir: false, path: root})
	}

	return w, nil
}

// globRoot returns the longest prefix of path containing no glob
// metacharacter, ending at (and including) the path separator that
// precedes the first metacharacter.
func globRoot(path string) string {
	var b strings.Builder
	var seg strings.Builder

	for _, r := range path {
		switch r {
		case '*', '?', '[':
			return b.String()
		case '/':
			seg.WriteRune(r)
			b.WriteString(seg.String())
			seg.Reset()
		default:
			seg.WriteRune(r)
		}
	}
	return b.String()
}

// countComponents counts the '/'-separated components of a relative
// path suffix, ignoring a leading separator and empty trailing parts.
func countComponents(rest string) int {
	rest = strings.TrimPrefix(rest, "/")
	rest = strings.TrimRight(rest, "/")
	if rest == "" {
		return 0
	}
	return len(strings.Split(rest, "/"))
}

// isValid reports whether path satisfies every configured filter. A
// non-UTF8 path (never actually produced here, since paths flow as Go
// strings throughout) would fail every filter rather than error.
func (w *Walk) isValid(path string) bool {
	if !utf8.ValidString(path) {
		return false
	}
	return matchAll(w.filters, path)
}

// Next advances the walker and returns the next matching item. ok is
// false once the traversal is exhausted. An error from the backend
// (read_dir or a single entry) is returned once; the walker keeps
// whatever remains on its stack and a subsequent Next call continues
// with it - the stack is never cleared on error. A directory whose
// read_dir failed stays on the stack and is still yielded if it
// matches the filters.
func (w *Walk) Next() (item WalkItem, ok bool, err error) {
	for len(w.stack) > 0 {
		n := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]

		if !n.isDir {
			if w.isValid(n.path) {
				return WalkItem{Path: n.path, IsDir: false}, true, nil
			}
			continue
		}

		if !n.expanded && (w.maxDepth < 0 || n.depth < w.maxDepth) {
			if err := w.expand(n); err != nil {
				// the directory itself is still a candidate: the next
				// call tests it against the filters without listing it
				// again.
				n.expanded = true
				w.stack = append(w.stack, n)
				return WalkItem{}, false, err
			}
		}

		if w.isValid(n.path) {
			return WalkItem{Path: n.path, IsDir: true}, true, nil
		}
	}
	return WalkItem{}, false, nil
}

// expand reads the children of n and pushes them onto the stack. Each
// directory is read_dir'd at most once per traversal, by construction:
// expand is only ever called once per node, when it is popped.
func (w *Walk) expand(n node) error {
	rd, err := w.fs.ReadDir(n.path)
	if err != nil {
		return &IOError{Op: "read_dir", Path: n.path, Err: err}
	}

	for {
		entry, ok, err := rd.Next()
		if err != nil {
			return &IOError{Op: "read_dir", Path: n.path, Err: err}
		}
		if !ok {
			return nil
		}

		p := entry.Path()
		if !utf8.ValidString(p) {
			return &PathConversionError{Path: p}
		}

		if entry.IsDir() {
			w.stack = append(w.stack, node{isDir: true, depth: n.depth + 1, path: p})
		} else {
			w.stack = append(w.stack, node{isDir: false, path: p})
		}
	}
}

// All drains the walker into a slice, stopping at the first error.
// Items yielded before the error are returned in the slice; the error
// itself is returned separately so callers that want the spec's "continue past errors"
// behavior should call Next directly instead.
func (w *Walk) All() ([]WalkItem, error) {
	var items []WalkItem
	for {
		item, ok, err := w.Next()
		if err != nil {
			return items, err
		}
		if !ok {
			return items, nil
		}
		items = append(items, item)
	}
}
