package ports

import "time"

// FileSystem abstracts file system access for the render pipeline.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data, creating parent directories as needed.
	WriteFile(path string, data []byte) error

	MkdirAll(path string) error
	Exists(path string) (bool, error)
	Remove(path string) error

	// RemoveAll deletes path and everything beneath it.
	RemoveAll(path string) error

	// ReadDir returns the sorted entry names of a directory.
	ReadDir(path string) ([]string, error)

	// Rename atomically replaces newPath with oldPath where the platform allows.
	Rename(oldPath, newPath string) error

	// TempFile creates an empty file in dir whose name matches pattern and
	// returns its path. An empty dir uses the system temp directory.
	TempFile(dir, pattern string) (string, error)

	// ModTime returns the last modification time of path.
	ModTime(path string) (time.Time, error)
}
