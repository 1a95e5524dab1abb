package filesystem

import (
	"os"
)

// FileSystem defines the file operations used when writing results.
//
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -source=$GOFILE -destination=mock_$GOFILE -package=$GOPACKAGE
type FileSystem interface {
	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string, perm os.FileMode) error

	// WriteFile writes data to a file. Readers never observe a partial file.
	WriteFile(name string, data []byte, perm os.FileMode) error

	// ReadFile reads a file.
	ReadFile(name string) ([]byte, error)
}

// OSFileSystem is the FileSystem backed by the operating system.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS filesystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// MkdirAll implements FileSystem.
func (OSFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// WriteFile implements FileSystem with an atomic write.
func (OSFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return WriteFileAtomic(name, data, perm)
}

// ReadFile implements FileSystem.
func (OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}
