package provider

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"
)

// FileSystem is the narrow filesystem surface the provider needs.
// The OS implementation is the default; the in-memory implementation backs
// tests.
type FileSystem interface {
	// Stat returns file information for the given path.
	Stat(path string) (fs.FileInfo, error)

	// ReadFile reads a file's full content.
	ReadFile(path string) ([]byte, error)

	// ListFiles returns the names (not paths) of regular files directly
	// inside dir, sorted.
	ListFiles(dir string) ([]string, error)
}

// OSFileSystem implements FileSystem against the operating system.
type OSFileSystem struct{}

// NewOSFileSystem creates the default OS-backed filesystem.
func NewOSFileSystem() OSFileSystem {
	return OSFileSystem{}
}

// Stat implements FileSystem.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile implements FileSystem.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// ListFiles implements FileSystem.
func (OSFileSystem) ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// MemoryFileSystem implements FileSystem over an in-memory file map, for
// tests. Paths use forward slashes.
type MemoryFileSystem struct {
	files map[string][]byte
}

// NewMemoryFileSystem creates an in-memory filesystem from a path -> content
// map.
func NewMemoryFileSystem(files map[string]string) *MemoryFileSystem {
	m := &MemoryFileSystem{files: make(map[string][]byte, len(files))}
	for p, content := range files {
		m.files[path.Clean(p)] = []byte(content)
	}
	return m
}

// Stat implements FileSystem.
func (m *MemoryFileSystem) Stat(p string) (fs.FileInfo, error) {
	p = path.Clean(p)
	if content, ok := m.files[p]; ok {
		return memoryInfo{name: path.Base(p), size: int64(len(content))}, nil
	}
	for existing := range m.files {
		if strings.HasPrefix(existing, p+"/") {
			return memoryInfo{name: path.Base(p), dir: true}, nil
		}
	}
	return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
}

// ReadFile implements FileSystem.
func (m *MemoryFileSystem) ReadFile(p string) ([]byte, error) {
	if content, ok := m.files[path.Clean(p)]; ok {
		return content, nil
	}
	return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
}

// ListFiles implements FileSystem.
func (m *MemoryFileSystem) ListFiles(dir string) ([]string, error) {
	dir = path.Clean(dir)
	var names []string
	for p := range m.files {
		if path.Dir(p) == dir {
			names = append(names, path.Base(p))
		}
	}
	if len(names) == 0 {
		if _, err := m.Stat(dir); err != nil {
			return nil, err
		}
	}
	sort.Strings(names)
	return names, nil
}

// memoryInfo implements fs.FileInfo for in-memory entries.
type memoryInfo struct {
	name string
	size int64
	dir  bool
}

func (i memoryInfo) Name() string       { return i.name }
func (i memoryInfo) Size() int64        { return i.size }
func (i memoryInfo) Mode() fs.FileMode  { return 0o644 }
func (i memoryInfo) ModTime() time.Time { return time.Time{} }
func (i memoryInfo) IsDir() bool        { return i.dir }
func (i memoryInfo) Sys() interface{}   { return nil }
