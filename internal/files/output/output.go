// Package output writes generated files into the output tree.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultWriteLimit bounds the number of concurrent writes within one batch.
const DefaultWriteLimit = 16

// Batch runs independent whole-document writes concurrently. Unlike a bare
// errgroup, a failing write does not stop the others; Wait reports every
// failure once all writes have finished.
type Batch struct {
	group errgroup.Group
	mu    sync.Mutex
	errs  []error
}

// NewBatch creates a Batch running at most limit writes at once.
// A limit <= 0 means no limit.
func NewBatch(limit int) *Batch {
	b := &Batch{}
	if limit > 0 {
		b.group.SetLimit(limit)
	}
	return b
}

// Go schedules fn. It blocks while the batch is at its limit.
func (b *Batch) Go(fn func() error) {
	b.group.Go(func() error {
		if err := fn(); err != nil {
			b.mu.Lock()
			b.errs = append(b.errs, err)
			b.mu.Unlock()
		}
		return nil
	})
}

// Wait blocks until every scheduled write has finished and returns their
// joined errors, or nil.
func (b *Batch) Wait() error {
	_ = b.group.Wait()
	b.mu.Lock()
	defer b.mu.Unlock()
	return errors.Join(b.errs...)
}

// WriteFile writes data to dir/name, creating parent directories. The file
// is written under a temporary name and renamed into place, so readers never
// observe a partial document. Names that would resolve outside dir are rejected.
func WriteFile(dir, name string, data []byte) error {
	path, err := Join(dir, name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Join resolves name beneath dir.
func Join(dir, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty file name in %s", dir)
	}
	path := filepath.Join(dir, name)
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("file name %q resolves outside %s", name, dir)
	}
	return path, nil
}
