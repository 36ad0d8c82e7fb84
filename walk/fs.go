// fs.go - the capability interface a Walk traverses
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

// Package walk implements a lazy, depth-bounded, glob-aware traversal
// over any backend that satisfies the FS capability interface. It
// knows nothing about local disks or HDFS - those live in sibling
// packages (localfs, hdfs) that each implement FS.
package walk

// Meta is the minimum metadata a backend must expose about a path.
type Meta interface {
	IsDir() bool
}

// Entry is one immediate child yielded by ReadDir.
type Entry interface {
	Path() string
	IsDir() bool
}

// ReadDir is a finite, non-restartable, lazy sequence of directory
// entries. Next returns ok=false once the sequence is exhausted; an
// error terminates the sequence (ok is false and err is non-nil).
// Callers must not call Next again after an error or after ok==false.
type ReadDir interface {
	Next() (entry Entry, ok bool, err error)
}

// FS is the capability a Walk depends on. It is deliberately minimal:
// implementations may carry far richer metadata (see localfs and hdfs)
// as long as the values returned here satisfy Meta/Entry.
type FS interface {
	// IsDir reports whether path is a directory. It is infallible:
	// any error while probing is reported as false.
	IsDir(path string) bool

	// Exists reports whether path is present. It is infallible.
	Exists(path string) bool

	// ReadDir opens path for listing. path must be a directory.
	ReadDir(path string) (ReadDir, error)

	// Metadata fetches the metadata for path.
	Metadata(path string) (Meta, error)
}

// DefaultIsDir implements FS.IsDir in terms of Metadata, for backends
// that have no cheaper way to answer the question.
func DefaultIsDir(fs FS, path string) bool {
	m, err := fs.Metadata(path)
	if err != nil {
		return false
	}
	return m.IsDir()
}
