// fs_test.go - local disk backend tests
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

package localfs

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/opencoff/hdfswalk/walk"
)

func mktree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "sub", "b.txt"), []byte("lo"), 0644); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestLocalFSBasics(t *testing.T) {
	root := mktree(t)
	fs := New()

	if !fs.IsDir(root) {
		t.Fatalf("expected %s to be a dir", root)
	}
	if !fs.Exists(filepath.Join(root, "a.txt")) {
		t.Fatalf("expected a.txt to exist")
	}
	if fs.Exists(filepath.Join(root, "nope")) {
		t.Fatalf("did not expect nope to exist")
	}

	m, err := fs.Metadata(filepath.Join(root, "a.txt"))
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	if m.IsDir() {
		t.Fatalf("a.txt should not be a dir")
	}
}

func TestLocalFSReadDir(t *testing.T) {
	root := mktree(t)
	fs := New()

	rd, err := fs.ReadDir(root)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	var names []string
	for {
		e, ok, err := rd.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
		names = append(names, e.Path())
	}
	sort.Strings(names)
	want := []string{filepath.Join(root, "a.txt"), filepath.Join(root, "sub")}
	sort.Strings(want)
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
}

func TestLocalFSWithWalker(t *testing.T) {
	root := mktree(t)
	w, err := walk.New(New(), filepath.Join(root, "**", "*.txt"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	items, err := w.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2: %+v", len(items), items)
	}
}
