// native.go - cgo bindings to libhdfs3's C ABI
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

// Package hdfs implements walk.FS against a remote HDFS namenode via
// cgo bindings to libhdfs3 (the C++ reimplementation of libhdfs, not
// the JVM-backed original) - the same binding surface this module's
// Rust predecessor declared with #[link(name = "hdfs3")].
package hdfs

/*
#cgo LDFLAGS: -lhdfs3
#include <stdlib.h>

typedef enum tObjectKind {
    kObjectKindFile = 'F',
    kObjectKindDirectory = 'D'
} tObjectKind;

typedef struct hdfsFileInfo {
    tObjectKind mKind;
    char *mName;
    long mLastMod;
    long long mSize;
    short mReplication;
    long long mBlockSize;
    char *mOwner;
    char *mGroup;
    short mPermissions;
    long mLastAccess;
} hdfsFileInfo;

typedef void* hdfsFST;
typedef void* hdfsFileT;
typedef void* hdfsBuilderT;

hdfsBuilderT hdfsNewBuilder(void);
hdfsFST hdfsBuilderConnect(hdfsBuilderT bld, const char *effective_user);
void hdfsBuilderSetForceNewInstance(hdfsBuilderT bld);
void hdfsBuilderSetNameNode(hdfsBuilderT bld, const char *namenode);
void hdfsBuilderSetNameNodePort(hdfsBuilderT bld, unsigned short port);
void hdfsFreeBuilder(hdfsBuilderT bld);
int hdfsBuilderConfSetStr(hdfsBuilderT bld, const char *key, const char *val);

int hdfsDisconnect(hdfsFST fs);
const char *hdfsGetLastError(void);

hdfsFileInfo *hdfsListDirectory(hdfsFST fs, const char *path, int *numEntries);
hdfsFileInfo *hdfsGetPathInfo(hdfsFST fs, const char *path);
void hdfsFreeFileInfo(hdfsFileInfo *infos, int numEntries);

hdfsFileT hdfsOpenFile(hdfsFST fs, const char *path, int flags, int bufferSize,
                        short replication, long long blocksize);
int hdfsCloseFile(hdfsFST fs, hdfsFileT file);
int hdfsRead(hdfsFST fs, hdfsFileT file, void *buffer, int length);
int hdfsWrite(hdfsFST fs, hdfsFileT file, const void *buffer, int length);
int hdfsFlush(hdfsFST fs, hdfsFileT file);
int hdfsExists(hdfsFST fs, const char *path);
*/
import "C"

import (
	"unsafe"
)

// these mirror the O_* flags libhdfs3 accepts for hdfsOpenFile.
const (
	oRDONLY = C.int(0)
	oWRONLY = C.int(1)
	oAPPEND = C.int(1024)
	oCREAT  = C.int(64)
)

const defaultBufferSize = C.int(0) // 0 asks libhdfs3 for its own default
const defaultReplication = C.short(0)
const defaultBlockSize = C.longlong(0)

// lastError returns the current thread's libhdfs3 error string, or ""
// when the last call succeeded.
func lastError() string {
	msg := C.hdfsGetLastError()
	if msg == nil {
		return ""
	}
	s := C.GoString(msg)
	if s == "Success" {
		return ""
	}
	return s
}

func cstr(s string) *C.char {
	return C.CString(s)
}

func freeCstr(p *C.char) {
	C.free(unsafe.Pointer(p))
}
