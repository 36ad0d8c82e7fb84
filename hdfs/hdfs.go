// hdfs.go - HDFS-backed walk.FS implementation
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

//go:build !nohdfs

package hdfs

/*
#include <stdlib.h>
*/
import "C"

import (
	"io"
	"path/filepath"
	"unsafe"

	"github.com/opencoff/go-logger"

	"github.com/opencoff/hdfswalk/hdfsconf"
	"github.com/opencoff/hdfswalk/walk"
)

// log is used for best-effort diagnostics that must never fail a
// connection outright (e.g. a single bad conf key). It is nil unless a
// caller embedding this package in a CLI calls SetLogger.
var log logger.Logger

// SetLogger installs l as the logger used for non-fatal diagnostics
// (e.g. a builder conf-string that the namenode rejected).
func SetLogger(l logger.Logger) {
	log = l
}

func logWarn(format string, args ...interface{}) {
	if log != nil {
		log.Warn(format, args...)
	}
}

// FS is a connection to one HDFS namenode, satisfying walk.FS.
type FS struct {
	raw C.hdfsFST
}

var _ walk.FS = &FS{}

// connopt holds the optional knobs Connect accepts.
type connopt struct {
	hostOverride  string
	effectiveUser string
}

// ConnectOption configures a single Connect call, in the same
// functional-option style used throughout this module.
type ConnectOption func(o *connopt)

// WithNameNode overrides the namenode host derived from the config
// directory; set when the caller (e.g. a CLI "-H" flag) knows better
// than core-site.xml/hdfs-site.xml.
func WithNameNode(host string) ConnectOption {
	return func(o *connopt) {
		o.hostOverride = host
	}
}

// WithEffectiveUser sets the user identity the namenode should see the
// connection as. An empty string (the default) asks libhdfs3 to use
// its own default (the process's real user).
func WithEffectiveUser(user string) ConnectOption {
	return func(o *connopt) {
		o.effectiveUser = user
	}
}

// ListGateways reads dfs.nameservices from configDir without opening a
// connection, returning every named gateway (empty if unset).
func ListGateways(configDir string) ([]string, error) {
	cfg, err := hdfsconf.New(configDir)
	if err != nil {
		if _, ok := err.(*hdfsconf.DirectoryNotFoundError); ok {
			return nil, &DirectoryNotFoundError{Dir: configDir}
		}
		return nil, err
	}
	return cfg.Gateways(), nil
}

// Connect reads core-site.xml/hdfs-site.xml from configDir, derives
// the namenode host/port (unless overridden), and opens a connection.
//
// Every other key in the parsed config map is pushed into the builder
// as a conf string; a non-zero return from hdfsBuilderConfSetStr is
// logged-and-ignored rather than fatal - a single bad key should not
// block connecting when the namenode/port are otherwise good, matching
// the "best-effort configuration" behavior this is ported from.
func Connect(configDir string, opts ...ConnectOption) (*FS, error) {
	var o connopt
	for _, fn := range opts {
		fn(&o)
	}

	cfg, err := hdfsconf.New(configDir)
	if err != nil {
		if _, ok := err.(*hdfsconf.DirectoryNotFoundError); ok {
			return nil, &DirectoryNotFoundError{Dir: configDir}
		}
		return nil, err
	}

	host := o.hostOverride
	if host == "" {
		host, _ = cfg.Get("host")
	}
	if host == "" {
		return nil, &MissingConfigError{Dir: configDir}
	}
	port, _ := cfg.GetInt("port")

	bld := C.hdfsNewBuilder()
	if bld == nil {
		return nil, &ErrorCreatingBuilderError{}
	}
	// Every Connect call wants its own namenode handle rather than one
	// shared (and possibly stale-configured) across unrelated callers.
	C.hdfsBuilderSetForceNewInstance(bld)
	defer C.hdfsFreeBuilder(bld)

	chost := cstr(host)
	defer freeCstr(chost)
	C.hdfsBuilderSetNameNode(bld, chost)
	if port > 0 {
		C.hdfsBuilderSetNameNodePort(bld, C.ushort(port))
	}

	for k, v := range cfg.Map {
		if k == "host" || k == "port" {
			continue
		}
		ck, cv := cstr(k), cstr(v)
		if rc := C.hdfsBuilderConfSetStr(bld, ck, cv); rc != 0 {
			logWarn("hdfs: builder conf %q=%q rejected (rc=%d)", k, v, int(rc))
		}
		freeCstr(ck)
		freeCstr(cv)
	}

	var cuser *C.char
	if o.effectiveUser != "" {
		cuser = cstr(o.effectiveUser)
		defer freeCstr(cuser)
	}

	raw := C.hdfsBuilderConnect(bld, cuser)
	if raw == nil {
		if msg := lastError(); msg != "" {
			return nil, &HdfsError{Msg: msg}
		}
		return nil, &UnknownError{Op: "connect", Path: host}
	}

	return &FS{raw: raw}, nil
}

// Close tears down the namenode connection. A non-zero disconnect
// return is logged and swallowed, never surfaced as an error - this
// mirrors how the original's handle destructor treats disconnect
// failure (it happens during drop/Close, where there is no good way
// to act on it anyway).
func (f *FS) Close() error {
	if f.raw == nil {
		return nil
	}
	rc := C.hdfsDisconnect(f.raw)
	f.raw = nil
	if rc != 0 {
		logWarn("hdfs: disconnect returned %d: %s", int(rc), lastError())
	}
	return nil
}

// Exists reports whether path is present. walk.FS.Exists is infallible
// by contract, so unlike the spec's false-from-error distinction (which
// would re-check the last-error slot on a non-zero return), any
// non-zero hdfsExists result - real absence or a transient namenode
// error alike - is reported simply as false.
func (f *FS) Exists(path string) bool {
	cpath := cstr(path)
	defer freeCstr(cpath)
	return C.hdfsExists(f.raw, cpath) == 0
}

// meta is the walk.Meta this backend exposes; it carries enough of
// hdfsFileInfo to support IsDir plus a handful of stat-like fields
// useful to callers that type-assert down to *meta.
type meta struct {
	isDir   bool
	size    int64
	modTime int64
	owner   string
	group   string
}

func (m *meta) IsDir() bool    { return m.isDir }
func (m *meta) Size() int64    { return m.size }
func (m *meta) ModTime() int64 { return m.modTime }
func (m *meta) Owner() string  { return m.owner }
func (m *meta) Group() string  { return m.group }

func fileInfoToMeta(fi *C.hdfsFileInfo) *meta {
	return &meta{
		isDir:   fi.mKind == C.kObjectKindDirectory,
		size:    int64(fi.mSize),
		modTime: int64(fi.mLastMod),
		owner:   C.GoString(fi.mOwner),
		group:   C.GoString(fi.mGroup),
	}
}

func (f *FS) Metadata(path string) (walk.Meta, error) {
	cpath := cstr(path)
	defer freeCstr(cpath)

	fi := C.hdfsGetPathInfo(f.raw, cpath)
	if fi == nil {
		return nil, &UnknownError{Op: "path_info", Path: path}
	}
	defer C.hdfsFreeFileInfo(fi, 1)

	return fileInfoToMeta(fi), nil
}

func (f *FS) IsDir(path string) bool {
	return walk.DefaultIsDir(f, path)
}

// entry is one child yielded while listing an HDFS directory.
type entry struct {
	path string
	meta *meta
}

func (e entry) Path() string { return e.path }
func (e entry) IsDir() bool  { return e.meta.IsDir() }

// readDir wraps the batch array hdfsListDirectory returns; libhdfs3
// has no incremental listing call, so - like localfs.readDir - the
// laziness here is only at the Walk.Next() level.
type readDir struct {
	entries []entry
	i       int
}

func (r *readDir) Next() (walk.Entry, bool, error) {
	if r.i >= len(r.entries) {
		return nil, false, nil
	}
	e := r.entries[r.i]
	r.i++
	return e, true, nil
}

func (f *FS) ReadDir(path string) (walk.ReadDir, error) {
	cpath := cstr(path)
	defer freeCstr(cpath)

	var count C.int
	arr := C.hdfsListDirectory(f.raw, cpath, &count)
	if arr == nil {
		// An empty, existing directory also returns NULL from
		// libhdfs3; we cannot distinguish that from a genuine failure
		// without a second round-trip, so (per the documented open
		// question) we report UnknownError rather than querying
		// hdfsGetLastError, which reflects whichever call last ran on
		// this thread and may not pertain to this one.
		return nil, &UnknownError{Op: "list_directory", Path: path}
	}
	defer C.hdfsFreeFileInfo(arr, count)

	n := int(count)
	entries := make([]entry, 0, n)
	base := uintptr(unsafe.Pointer(arr))
	stride := unsafe.Sizeof(*arr)
	for i := 0; i < n; i++ {
		fi := (*C.hdfsFileInfo)(unsafe.Pointer(base + uintptr(i)*stride))
		name := C.GoString(fi.mName)
		entries = append(entries, entry{
			path: filepath.Join(path, filepath.Base(name)),
			meta: fileInfoToMeta(fi),
		})
	}
	return &readDir{entries: entries}, nil
}

// OpenOptions selects the mode a remote file is opened in.
type OpenOptions struct {
	Write  bool
	Append bool
	Create bool
}

// flags ORs OpenOptions into libhdfs3's open flags. Append and Create
// both imply Write; Append also ORs in oAPPEND, and Create ORs in
// oCREAT so a file that doesn't exist yet gets made rather than
// failing open.
func (o OpenOptions) flags() C.int {
	if !o.Write && !o.Append && !o.Create {
		return oRDONLY
	}
	f := oWRONLY
	if o.Append {
		f |= oAPPEND
	}
	if o.Create {
		f |= oCREAT
	}
	return f
}

// File is an open handle to a remote HDFS file.
type File struct {
	fs   *FS
	raw  C.hdfsFileT
	path string
}

// Open opens path on the remote namenode under the given options.
func (f *FS) Open(path string, opt OpenOptions) (*File, error) {
	cpath := cstr(path)
	defer freeCstr(cpath)

	raw := C.hdfsOpenFile(f.raw, cpath, opt.flags(), defaultBufferSize, defaultReplication, defaultBlockSize)
	if raw == nil {
		if msg := lastError(); msg != "" {
			return nil, &HdfsError{Msg: msg}
		}
		return nil, &FileNotFoundError{Path: path}
	}
	return &File{fs: f, raw: raw, path: path}, nil
}

// OpenRead opens path read-only, satisfying the reader capability the
// CLI's cat subcommand needs from a backend.
func (f *FS) OpenRead(path string) (io.ReadCloser, error) {
	return f.Open(path, OpenOptions{})
}

// Read fills buf from the current file offset.
func (f *File) Read(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	n := C.hdfsRead(f.fs.raw, f.raw, unsafe.Pointer(&buf[0]), C.int(len(buf)))
	if n < 0 {
		if msg := lastError(); msg != "" {
			return 0, &HdfsError{Msg: msg}
		}
		return 0, &UnknownError{Op: "read", Path: f.path}
	}
	if n == 0 {
		return 0, io.EOF
	}
	return int(n), nil
}

// Write appends buf at the current file offset.
func (f *File) Write(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	n := C.hdfsWrite(f.fs.raw, f.raw, unsafe.Pointer(&buf[0]), C.int(len(buf)))
	if n < 0 {
		if msg := lastError(); msg != "" {
			return 0, &HdfsError{Msg: msg}
		}
		return 0, &UnknownError{Op: "write", Path: f.path}
	}
	return int(n), nil
}

// Flush pushes any buffered writes to the namenode/datanodes.
func (f *File) Flush() error {
	if C.hdfsFlush(f.fs.raw, f.raw) != 0 {
		if msg := lastError(); msg != "" {
			return &HdfsError{Msg: msg}
		}
		return &UnknownError{Op: "flush", Path: f.path}
	}
	return nil
}

// Close releases the remote file handle.
func (f *File) Close() error {
	if f.raw == nil {
		return nil
	}
	rc := C.hdfsCloseFile(f.fs.raw, f.raw)
	f.raw = nil
	if rc != 0 {
		if msg := lastError(); msg != "" {
			return &HdfsError{Msg: msg}
		}
		return &UnknownError{Op: "close", Path: f.path}
	}
	return nil
}
