// filter.go - path predicates composed by a Walk
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

	"github.com/bmatcuk/doublestar/v4"
)

// Filter is a predicate over a path string. Walk ANDs every configured
// filter; an entry is only yielded if all filters match.
type Filter interface {
	Matches(path string) bool
}

// PrefixFilter matches paths that begin with a literal prefix.
type PrefixFilter struct {
	Prefix string
}

func (f *PrefixFilter) Matches(path string) bool {
	return strings.HasPrefix(path, f.Prefix)
}

// ExtFilter matches paths with a fixed suffix. Used only by smoke
// tests, same as the upstream TestFilter this is grounded on.
type ExtFilter struct {
	Suffix string
}

func (f *ExtFilter) Matches(path string) bool {
	return strings.HasSuffix(path, f.Suffix)
}

// GlobFilter matches paths against a shell-style glob pattern:
// '*' matches any run of characters within one path segment, '?'
// matches exactly one character within a segment, '[...]' matches a
// character class, and '**' matches zero or more whole segments.
// Matching is case-sensitive and a leading dot is never special.
type GlobFilter struct {
	pattern string
}

// NewGlobFilter compiles pattern into a GlobFilter. It fails only if
// the pattern cannot be compiled by the underlying matcher.
func NewGlobFilter(pattern string) (*GlobFilter, error) {
	// doublestar has no separate compile step; probing a match is how
	// we surface a malformed pattern (e.g. an unterminated '[') before
	// the walk begins rather than on the first comparison.
	if _, err := doublestar.Match(pattern, ""); err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	return &GlobFilter{pattern: pattern}, nil
}

func (f *GlobFilter) Matches(path string) bool {
	ok, err := doublestar.Match(f.pattern, path)
	if err != nil {
		return false
	}
	return ok
}

// matchAll reports whether every filter in fs matches path. Walk.isValid
// treats a non-UTF8 path as a non-match before calling it; a non-UTF8
// entry path from a backend is reported by Walk.expand as a
// PathConversionError instead.
func matchAll(filters []Filter, path string) bool {
	for _, f := range filters {
		if !f.Matches(path) {
			return false
		}
	}
	return true
}
