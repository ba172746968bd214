package filesystem

import (
	"errors"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// FileSystemProvider reads files and file metadata.
type FileSystemProvider interface {
	// ReadFile reads a specific file at the given path.
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path.
	// Errors for absent paths satisfy errors.Is(err, fs.ErrNotExist).
	Stat(path string) (FileInfo, error)
}

// Exists reports whether path names an existing regular file.
// Any Stat error other than "not exist" is returned to the caller.
func Exists(provider FileSystemProvider, path string) (bool, error) {
	info, err := provider.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
