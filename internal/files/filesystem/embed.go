package filesystem

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// EmbedFileSystem implements FileSystemProvider for embed.FS
type EmbedFileSystem struct {
	embedFS embed.FS
	root    string // root path within the embed.FS (always uses forward slashes)
}

// NewEmbedFileSystem creates a new filesystem provider wrapping an embed.FS.
// The root parameter specifies the subdirectory within the embed.FS to treat as the root.
func NewEmbedFileSystem(embedFS embed.FS, root string) *EmbedFileSystem {
	return &EmbedFileSystem{
		embedFS: embedFS,
		root:    path.Clean(root),
	}
}

func (efs *EmbedFileSystem) resolve(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "/")
	return path.Join(efs.root, p)
}

// ReadFile implements FileSystemProvider.ReadFile
func (efs *EmbedFileSystem) ReadFile(filePath string) ([]byte, error) {
	content, err := efs.embedFS.ReadFile(efs.resolve(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return content, nil
}

// Stat implements FileSystemProvider.Stat
func (efs *EmbedFileSystem) Stat(statPath string) (FileInfo, error) {
	info, err := fs.Stat(efs.embedFS, efs.resolve(statPath))
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %s: %w", statPath, err)
	}
	return info, nil
}
