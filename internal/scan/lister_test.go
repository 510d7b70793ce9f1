package skim

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/spf13/afero"
)

func sorted(paths []string) []string {
	out := append([]string(nil), paths...)
	sort.Strings(out)
	return out
}

// TestOSLister exercises the godirwalk-backed lister against a real
// temporary directory.
func TestOSLister(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"alpha", "beta"} {
		if err := os.Mkdir(filepath.Join(root, d), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
	}
	for _, f := range []string{"one.txt", "two.go"} {
		if err := os.WriteFile(filepath.Join(root, f), []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}
	}

	lister := NewOSLister()

	dirs, err := lister.ListDirs(root)
	if err != nil {
		t.Fatalf("ListDirs failed: %v", err)
	}
	wantDirs := []string{filepath.Join(root, "alpha"), filepath.Join(root, "beta")}
	if got := sorted(dirs); !equalPaths(got, wantDirs) {
		t.Errorf("Expected %v, got %v", wantDirs, got)
	}

	files, err := lister.ListFiles(root)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	wantFiles := []string{filepath.Join(root, "one.txt"), filepath.Join(root, "two.go")}
	if got := sorted(files); !equalPaths(got, wantFiles) {
		t.Errorf("Expected %v, got %v", wantFiles, got)
	}

	isDir, err := lister.IsDir(root)
	if err != nil || !isDir {
		t.Errorf("Expected IsDir(root) to be true, got %v, %v", isDir, err)
	}
	isDir, err = lister.IsDir(filepath.Join(root, "one.txt"))
	if err != nil || isDir {
		t.Errorf("Expected IsDir(file) to be false, got %v, %v", isDir, err)
	}
	isDir, err = lister.IsDir(filepath.Join(root, "missing"))
	if err != nil || isDir {
		t.Errorf("Expected IsDir(missing) to be false without error, got %v, %v", isDir, err)
	}
}

// TestOSListerMissingRoot verifies a listing failure is returned unmodified.
func TestOSListerMissingRoot(t *testing.T) {
	lister := NewOSLister()
	if _, err := lister.ListDirs(filepath.Join(t.TempDir(), "gone")); err == nil {
		t.Error("Expected an error listing a missing directory")
	}
}

// TestFsLister exercises the afero-backed lister against an in-memory
// filesystem.
func TestFsLister(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll("/root/sub", 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := afero.WriteFile(fsys, "/root/a.txt", []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	lister := NewFsLister(fsys)

	dirs, err := lister.ListDirs("/root")
	if err != nil {
		t.Fatalf("ListDirs failed: %v", err)
	}
	if !equalPaths(sorted(dirs), []string{filepath.Join("/root", "sub")}) {
		t.Errorf("Expected one subdirectory, got %v", dirs)
	}

	files, err := lister.ListFiles("/root")
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if !equalPaths(sorted(files), []string{filepath.Join("/root", "a.txt")}) {
		t.Errorf("Expected one file, got %v", files)
	}

	isDir, err := lister.IsDir("/root/sub")
	if err != nil || !isDir {
		t.Errorf("Expected IsDir to be true, got %v, %v", isDir, err)
	}
}

// TestScannerOverMemMapFs runs the whole protocol end to end against the
// in-memory filesystem.
func TestScannerOverMemMapFs(t *testing.T) {
	fsys := afero.NewMemMapFs()
	for _, d := range []string{"/root/d1", "/root/d2"} {
		if err := fsys.MkdirAll(d, 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
	}
	if err := afero.WriteFile(fsys, "/root/f1.go", []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	s, err := New("/root", WithLister(NewFsLister(fsys)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	paths, err := s.Collect()
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	want := []string{
		filepath.Join("/root", "d1"),
		filepath.Join("/root", "d2"),
		filepath.Join("/root", "f1.go"),
	}
	if len(paths) != 3 {
		t.Fatalf("Expected 3 paths, got %v", paths)
	}
	if !equalPaths(sorted(paths[:2]), want[:2]) || paths[2] != want[2] {
		t.Errorf("Expected %v, got %v", want, paths)
	}
}
