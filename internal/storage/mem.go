package storage

import (
	"io/fs"
	"sync"
	"time"
)

// Mem is an in-memory FileStore used by tests.
type Mem struct {
	mu       sync.Mutex
	files    map[string][]byte
	modTimes map[string]time.Time

	// FailWrites makes every Write return fs.ErrPermission, for exercising
	// cleanup paths.
	FailWrites bool
}

// NewMem creates an empty in-memory store.
func NewMem() *Mem {
	return &Mem{
		files:    make(map[string][]byte),
		modTimes: make(map[string]time.Time),
	}
}

func (m *Mem) Write(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return fs.ErrPermission
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	m.files[path] = buf
	m.modTimes[path] = time.Now()
	return nil
}

func (m *Mem) Delete(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[path]; !ok {
		return fs.ErrNotExist
	}
	delete(m.files, path)
	delete(m.modTimes, path)
	return nil
}

func (m *Mem) Exists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok, nil
}

func (m *Mem) List() ([]FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	files := make([]FileInfo, 0, len(m.files))
	for path := range m.files {
		files = append(files, FileInfo{Path: path, ModTime: m.modTimes[path]})
	}
	return files, nil
}

// SetModTime backdates a stored file, for exercising age cutoffs.
func (m *Mem) SetModTime(path string, t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[path]; ok {
		m.modTimes[path] = t
	}
}

// Len returns the number of stored files.
func (m *Mem) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}
