// Package storage abstracts the byte store backing course material uploads.
// Paths are always relative, slash-separated, and assigned by the caller;
// the store never invents names.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileStore is the minimal surface Material Admission needs from a byte
// store. Implementations must make Write create parent directories on demand
// and must treat Delete of a missing path as an error distinguishable via
// IsNotExist.
type FileStore interface {
	Write(path string, data []byte) error
	Delete(path string) error
	Exists(path string) (bool, error)
}

// FileInfo describes one stored file for enumeration.
type FileInfo struct {
	Path    string
	ModTime time.Time
}

// Lister enumerates every file in a store. Only the orphan sweeper needs it;
// regular FileStore consumers address files by exact path.
type Lister interface {
	List() ([]FileInfo, error)
}

// IsNotExist reports whether err means the target path was absent.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// Local is a FileStore over a local filesystem directory.
type Local struct {
	root string
}

// NewLocal creates a Local store rooted at dir.
func NewLocal(dir string) *Local {
	return &Local{root: dir}
}

// Root returns the store's root directory.
func (l *Local) Root() string {
	return l.root
}

// Write stores data at path, creating parent directories as needed.
func (l *Local) Write(path string, data []byte) error {
	full := filepath.Join(l.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Delete removes the file at path.
func (l *Local) Delete(path string) error {
	return os.Remove(filepath.Join(l.root, filepath.FromSlash(path)))
}

// List walks the root directory and returns every regular file with its
// modification time. A missing root is an empty store, not an error.
func (l *Local) List() ([]FileInfo, error) {
	var files []FileInfo
	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}
		files = append(files, FileInfo{
			Path:    filepath.ToSlash(rel),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Exists reports whether a file exists at path.
func (l *Local) Exists(path string) (bool, error) {
	_, err := os.Stat(filepath.Join(l.root, filepath.FromSlash(path)))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
