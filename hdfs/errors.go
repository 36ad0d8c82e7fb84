// errors.go - hdfs-specific error taxonomy
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

package hdfs

import "fmt"

// DirectoryNotFoundError means the local config directory passed to
// Connect does not exist.
type DirectoryNotFoundError struct {
	Dir string
}

func (e *DirectoryNotFoundError) Error() string {
	return fmt.Sprintf("hdfs: config directory %q not found", e.Dir)
}

// FileNotFoundError means a path does not exist on the namenode.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("hdfs: %q: no such file or directory", e.Path)
}

// MissingConfigError means host/port could not be derived from the
// config directory (see hdfsconf.deriveHostPort).
type MissingConfigError struct {
	Dir string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("hdfs: %q: no namenode host/port configured", e.Dir)
}

// ErrorCreatingBuilderError means hdfsNewBuilder returned NULL.
type ErrorCreatingBuilderError struct{}

func (e *ErrorCreatingBuilderError) Error() string {
	return "hdfs: failed to create connection builder"
}

// HdfsError wraps a message returned by libhdfs3's hdfsGetLastError.
type HdfsError struct {
	Msg string
}

func (e *HdfsError) Error() string {
	return fmt.Sprintf("hdfs: %s", e.Msg)
}

// InvalidPathError means a path is not representable in the native
// (NUL-terminated, UTF-8) C string form libhdfs3 requires.
type InvalidPathError struct {
	Path string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("hdfs: path %q is not a valid native path", e.Path)
}

// UnknownError is returned when a libhdfs3 call fails (returns NULL or
// a negative count) without a more specific diagnosis available - see
// the documented decision in DESIGN.md about hdfsListDirectory and
// hdfsGetPathInfo returning NULL without consulting hdfsGetLastError.
type UnknownError struct {
	Op   string
	Path string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("hdfs: %s %q: unknown error", e.Op, e.Path)
}
