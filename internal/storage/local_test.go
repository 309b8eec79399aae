package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLocalWriteCreatesParents(t *testing.T) {
	store := NewLocal(t.TempDir())

	if err := store.Write("courses/3/notes-abc.txt", []byte("hello")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(store.Root(), "courses", "3", "notes-abc.txt"))
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q, want hello", data)
	}
}

func TestLocalExists(t *testing.T) {
	store := NewLocal(t.TempDir())

	exists, err := store.Exists("courses/1/missing.pdf")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if exists {
		t.Error("missing file reported as present")
	}

	if err := store.Write("courses/1/present.pdf", []byte("x")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	exists, err = store.Exists("courses/1/present.pdf")
	if err != nil || !exists {
		t.Errorf("present file: exists=%v err=%v", exists, err)
	}
}

func TestLocalDelete(t *testing.T) {
	store := NewLocal(t.TempDir())

	if err := store.Write("a.txt", []byte("x")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := store.Delete("a.txt"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	err := store.Delete("a.txt")
	if err == nil {
		t.Fatal("second delete succeeded")
	}
	if !IsNotExist(err) {
		t.Errorf("second delete err = %v, want not-exist", err)
	}
}

func TestLocalList(t *testing.T) {
	store := NewLocal(t.TempDir())

	paths := []string{"courses/1/a.pdf", "courses/2/b.txt", "top.txt"}
	for _, p := range paths {
		if err := store.Write(p, []byte("x")); err != nil {
			t.Fatalf("write %s failed: %v", p, err)
		}
	}

	files, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(files) != len(paths) {
		t.Fatalf("listed %d files, want %d", len(files), len(paths))
	}

	seen := make(map[string]bool)
	for _, f := range files {
		seen[f.Path] = true
		if f.ModTime.IsZero() {
			t.Errorf("%s: zero mod time", f.Path)
		}
	}
	for _, p := range paths {
		if !seen[p] {
			t.Errorf("path %s missing from listing", p)
		}
	}
}

func TestLocalListMissingRoot(t *testing.T) {
	store := NewLocal(filepath.Join(t.TempDir(), "never-created"))

	files, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("listed %d files, want 0", len(files))
	}
}
