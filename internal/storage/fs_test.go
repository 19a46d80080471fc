package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/daybook/internal/apperr"
)

func tempRoot(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteNewAndRead(t *testing.T) {
	s := tempRoot(t)
	content := []byte(`[{},[]]`)
	if err := s.WriteNew("TodoLists/todo_a.json", content); err != nil {
		t.Fatalf("WriteNew: %v", err)
	}
	got, err := s.ReadFile("TodoLists/todo_a.json")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestWriteNewCreatesParents(t *testing.T) {
	s := tempRoot(t)
	if err := s.WriteNew("Archives/tag/Goals/goal_x.json", []byte("[]")); err != nil {
		t.Fatalf("WriteNew: %v", err)
	}
	if !s.Exists("Archives/tag/Goals/goal_x.json") {
		t.Error("file should exist")
	}
}

func TestWriteNewRefusesExistingFile(t *testing.T) {
	s := tempRoot(t)
	_ = s.WriteNew("a.json", []byte("one"))
	err := s.WriteNew("a.json", []byte("two"))
	if !errors.Is(err, apperr.ErrNameConflict) {
		t.Fatalf("err = %v, want ErrNameConflict", err)
	}
	got, _ := s.ReadFile("a.json")
	if string(got) != "one" {
		t.Errorf("original content clobbered: %q", got)
	}
}

func TestWriteNewRefusesExistingDir(t *testing.T) {
	s := tempRoot(t)
	if err := os.MkdirAll(filepath.Join(s.Root(), "a.json"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteNew("a.json", []byte("x")); !errors.Is(err, apperr.ErrNameConflict) {
		t.Fatalf("err = %v, want ErrNameConflict", err)
	}
}

func TestWriteNewRefusesFileAsParent(t *testing.T) {
	s := tempRoot(t)
	_ = s.WriteNew("blocker", []byte("x"))
	if err := s.WriteNew("blocker/a.json", []byte("y")); !errors.Is(err, apperr.ErrNameConflict) {
		t.Fatalf("err = %v, want ErrNameConflict", err)
	}
}

func TestRemove(t *testing.T) {
	s := tempRoot(t)
	_ = s.WriteNew("del.json", []byte("bye"))
	if err := s.Remove("del.json"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if s.Exists("del.json") {
		t.Error("file should be gone")
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	s := tempRoot(t)
	if err := s.Remove("never-written.json"); err != nil {
		t.Fatalf("Remove absent: %v", err)
	}
}

func TestListDir(t *testing.T) {
	s := tempRoot(t)
	_ = s.WriteNew("area/b.json", []byte("b"))
	_ = s.WriteNew("area/a.json", []byte("a"))
	_ = s.WriteNew("area/sub/c.json", []byte("c"))

	entries, err := s.ListDir("area")
	if err != nil {
		t.Fatalf("ListDir: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}
	if entries[0].Name != "a.json" || entries[1].Name != "b.json" {
		t.Errorf("entries not sorted: %+v", entries)
	}
	if !entries[2].Dir {
		t.Error("sub should be reported as a directory")
	}
}

func TestListDirMissingIsEmpty(t *testing.T) {
	s := tempRoot(t)
	entries, err := s.ListDir("no-such-area")
	if err != nil {
		t.Fatalf("ListDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %+v, want none", entries)
	}
}

func TestTraversalBlocked(t *testing.T) {
	s := tempRoot(t)

	cases := []string{
		"../../etc/passwd",
		"../outside.json",
		"/etc/shadow",
	}
	for _, p := range cases {
		if _, err := s.ReadFile(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
		if err := s.WriteNew(p, []byte("x")); err == nil {
			t.Errorf("expected error for write to %q", p)
		}
	}
}

func TestNewFS_NonExistentDir(t *testing.T) {
	_, err := NewFS("/tmp/daybook-does-not-exist-" + t.Name())
	if err == nil {
		t.Error("expected error for non-existent dir")
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp("", "daybook-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	_, err := NewFS(f.Name())
	if err == nil {
		t.Error("expected error when root is a file")
	}
}
