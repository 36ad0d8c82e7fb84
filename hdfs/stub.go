// stub.go - no-cgo stand-in for the HDFS backend
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

//go:build nohdfs

// Package hdfs, built with the nohdfs tag, drops the cgo dependency on
// libhdfs3 entirely; every entry point returns ErrNotBuilt so a
// caller (the CLI's "gateway"/"ls"/"cat" dispatch) can degrade to a
// clear error instead of failing to link.
package hdfs

import (
	"errors"
	"io"

	"github.com/opencoff/go-logger"

	"github.com/opencoff/hdfswalk/walk"
)

// SetLogger is a no-op under nohdfs; kept so callers compile unchanged
// regardless of which tag the hdfs package was built with.
func SetLogger(logger.Logger) {}

// ErrNotBuilt is returned by every HDFS entry point when this package
// was built with the nohdfs tag.
var ErrNotBuilt = errors.New("hdfs: built without HDFS support (nohdfs)")

// FS is the disabled stand-in for the cgo-backed connection.
type FS struct{}

var _ walk.FS = &FS{}

func (f *FS) IsDir(string) bool                     { return false }
func (f *FS) Exists(string) bool                    { return false }
func (f *FS) Metadata(string) (walk.Meta, error)    { return nil, ErrNotBuilt }
func (f *FS) ReadDir(string) (walk.ReadDir, error)  { return nil, ErrNotBuilt }
func (f *FS) OpenRead(string) (io.ReadCloser, error) { return nil, ErrNotBuilt }
func (f *FS) Close() error                          { return nil }

// ConnectOption mirrors the cgo build's option type so callers compile
// unchanged under either tag.
type ConnectOption func(*struct{})

// WithNameNode is a no-op under nohdfs.
func WithNameNode(string) ConnectOption { return func(*struct{}) {} }

// WithEffectiveUser is a no-op under nohdfs.
func WithEffectiveUser(string) ConnectOption { return func(*struct{}) {} }

// Connect always fails under nohdfs.
func Connect(string, ...ConnectOption) (*FS, error) {
	return nil, ErrNotBuilt
}

// ListGateways always fails under nohdfs.
func ListGateways(string) ([]string, error) {
	return nil, ErrNotBuilt
}
