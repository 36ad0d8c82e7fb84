// fs.go - local disk backend for the glob walker
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

// Package localfs implements walk.FS over the local filesystem, using
// this codebase's own fio.Info (rather than the stdlib fs.FileInfo)
// so metadata flowing out of a walk already carries xattr, uid/gid
// and device info the same way the rest of this module expects.
package localfs

import (
	"io"
	"os"
	"path/filepath"

	fio "github.com/opencoff/hdfswalk"
	"github.com/opencoff/hdfswalk/walk"
)

// FS is a walk.FS backed by the local disk.
type FS struct{}

// New returns a local disk backend.
func New() *FS {
	return &FS{}
}

var _ walk.FS = &FS{}

func (f *FS) IsDir(path string) bool {
	ii, err := fio.Lstat(path)
	if err != nil {
		return false
	}
	return ii.IsDir()
}

func (f *FS) Exists(path string) bool {
	_, err := fio.Lstat(path)
	return err == nil
}

func (f *FS) Metadata(path string) (walk.Meta, error) {
	return fio.Lstat(path)
}

// OpenRead opens path for reading, satisfying the reader capability
// the CLI's cat subcommand needs from a backend.
func (f *FS) OpenRead(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// readDir lazily wraps os.ReadDir's batch result; the local backend has
// no cheaper incremental listing API, so the laziness this type offers
// is only at the walk.Next() level, not the syscall level.
type readDir struct {
	dir     string
	entries []os.DirEntry
	i       int
}

func (f *FS) ReadDir(path string) (walk.ReadDir, error) {
	ents, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	return &readDir{dir: path, entries: ents}, nil
}

func (r *readDir) Next() (walk.Entry, bool, error) {
	if r.i >= len(r.entries) {
		return nil, false, nil
	}
	de := r.entries[r.i]
	r.i++

	p := filepath.Join(r.dir, de.Name())
	ii, err := fio.Lstat(p)
	if err != nil {
		return nil, false, err
	}
	return entry{path: p, meta: ii}, true, nil
}

type entry struct {
	path string
	meta *fio.Info
}

func (e entry) Path() string  { return e.path }
func (e entry) IsDir() bool   { return e.meta.IsDir() }
func (e entry) Meta() *fio.Info { return e.meta }
