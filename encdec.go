// encdec.go  - handy wrappers for encoding/decoding basic types
//
// (c) 2024- Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package fio

import (
	"encoding/binary"
	"errors"
	"fmt"
)

func enc32[T ~int32 | ~uint32 | int](b []byte, n T) []byte {
	be := binary.BigEndian

	be.PutUint32(b, uint32(n))
	return b[4:]
}

func dec32[T ~int | ~int32 | ~uint | ~uint32](b []byte) ([]byte, T) {
	be := binary.BigEndian
	n := be.Uint32(b[:4])
	return b[4:], T(n)
}

func encstr(b []byte, s string) []byte {
	n := len(s)
	b = enc32(b, n)
	copy(b, []byte(s))
	return b[n:]
}

func decstr(b []byte) ([]byte, string, error) {
	if len(b) < 4 {
		return nil, "", fmt.Errorf("unmarshal: string len: %w", ErrTooSmall)
	}

	var n int
	b, n = dec32[int](b)
	if n <= len(b) {
		return b[n:], string(b[:n]), nil
	}
	return nil, "", fmt.Errorf("unmarshal: string: %w", ErrTooSmall)
}

var (
	ErrTooSmall = errors.New("buffer is not big enough")
)

// EncodeStringMap renders m as a length-prefixed, big-endian byte
// stream: a count followed by key/value string pairs. hdfsconf.ConfigMap
// uses this (rather than re-parsing XML) to make its parsed form
// machine-checkable for round-trip equality.
func EncodeStringMap(m map[string]string) []byte {
	sz := 4
	for k, v := range m {
		sz += 4 + len(k) + 4 + len(v)
	}

	b := make([]byte, sz)
	rest := enc32(b, len(m))
	for k, v := range m {
		rest = encstr(rest, k)
		rest = encstr(rest, v)
	}
	return b
}

// DecodeStringMap parses the stream EncodeStringMap produces.
func DecodeStringMap(b []byte) (map[string]string, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("unmarshal: string map: %w", ErrTooSmall)
	}

	b, n := dec32[int](b)
	m := make(map[string]string, n)
	for i := 0; i < n; i++ {
		var k, v string
		var err error
		b, k, err = decstr(b)
		if err != nil {
			return nil, fmt.Errorf("unmarshal: string map: key %d: %w", i, err)
		}
		b, v, err = decstr(b)
		if err != nil {
			return nil, fmt.Errorf("unmarshal: string map: value %d: %w", i, err)
		}
		m[k] = v
	}
	return m, nil
}
