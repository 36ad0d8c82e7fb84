// hdfs_test.go - unit tests for the pure-logic pieces of the HDFS backend
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

import "testing"

func TestOpenOptionsFlags(t *testing.T) {
	cases := []struct {
		opt  OpenOptions
		want int
	}{
		{OpenOptions{}, int(oRDONLY)},
		{OpenOptions{Write: true}, int(oWRONLY)},
		{OpenOptions{Create: true}, int(oWRONLY | oCREAT)},
		{OpenOptions{Write: true, Create: true}, int(oWRONLY | oCREAT)},
		{OpenOptions{Append: true}, int(oWRONLY | oAPPEND)},
	}
	for _, c := range cases {
		if got := int(c.opt.flags()); got != c.want {
			t.Errorf("OpenOptions%+v.flags() = %v, want %v", c.opt, got, c.want)
		}
	}
}

func TestConnectMissingConfigDir(t *testing.T) {
	_, err := Connect("/no/such/hdfs/config/dir")
	if err == nil {
		t.Fatalf("expected an error for a missing config directory")
	}
	if _, ok := err.(*DirectoryNotFoundError); !ok {
		t.Fatalf("expected *DirectoryNotFoundError, got %T: %v", err, err)
	}
}
