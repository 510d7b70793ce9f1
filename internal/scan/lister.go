package skim

import (
	"os"
	"path/filepath"

	"github.com/karrick/godirwalk"
	"github.com/spf13/afero"
)

// Lister is the enumeration collaborator: it produces the immediate child
// directories and files of a single directory, in whatever order the
// underlying platform yields them. Listing errors (permission denied, path
// removed between calls) are returned unmodified; the engine never retries.
type Lister interface {
	// ListDirs returns the immediate child directories of root.
	ListDirs(root string) ([]string, error)
	// ListFiles returns the immediate child non-directory entries of root.
	ListFiles(root string) ([]string, error)
	// IsDir reports whether path exists and is a directory.
	IsDir(path string) (bool, error)
}

// OSLister enumerates the real filesystem using godirwalk's readdir, which
// avoids the per-entry lstat of os.ReadDir. The scratch buffer is reused
// across calls, so an OSLister must not be shared between concurrent
// traversals.
type OSLister struct {
	scratch []byte
}

// NewOSLister returns a Lister backed by the operating system.
func NewOSLister() *OSLister {
	return &OSLister{scratch: make([]byte, godirwalk.MinimumScratchBufferSize)}
}

// ListDirs implements Lister.
func (l *OSLister) ListDirs(root string) ([]string, error) {
	return l.list(root, true)
}

// ListFiles implements Lister.
func (l *OSLister) ListFiles(root string) ([]string, error) {
	return l.list(root, false)
}

// IsDir implements Lister.
func (l *OSLister) IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

func (l *OSLister) list(root string, wantDirs bool) ([]string, error) {
	dirents, err := godirwalk.ReadDirents(root, l.scratch)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, de := range dirents {
		if de.IsDir() == wantDirs {
			out = append(out, filepath.Join(root, de.Name()))
		}
	}
	return out, nil
}

// FsLister enumerates an afero filesystem. Tests use it with
// afero.NewMemMapFs to exercise the traversal protocol without touching
// the disk; it also works against any other afero backend.
type FsLister struct {
	fs afero.Fs
}

// NewFsLister returns a Lister backed by the given afero filesystem.
func NewFsLister(fsys afero.Fs) *FsLister {
	return &FsLister{fs: fsys}
}

// ListDirs implements Lister.
func (l *FsLister) ListDirs(root string) ([]string, error) {
	return l.list(root, true)
}

// ListFiles implements Lister.
func (l *FsLister) ListFiles(root string) ([]string, error) {
	return l.list(root, false)
}

// IsDir implements Lister.
func (l *FsLister) IsDir(path string) (bool, error) {
	return afero.DirExists(l.fs, path)
}

func (l *FsLister) list(root string, wantDirs bool) ([]string, error) {
	infos, err := afero.ReadDir(l.fs, root)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, info := range infos {
		if info.IsDir() == wantDirs {
			out = append(out, filepath.Join(root, info.Name()))
		}
	}
	return out, nil
}
