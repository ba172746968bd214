// Package sanitizer removes intermediate artifacts from the output directory.
package sanitizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/digidem/mapeo-config-deconstructor/internal/files/output"
	"github.com/digidem/mapeo-config-deconstructor/pkg/deconstruct"
)

// Sanitizer implements deconstruct.Sanitizer. It must only run once every
// decomposition stage has finished reading its sources.
type Sanitizer struct {
	files  []string
	logger deconstruct.Logger
}

var _ deconstruct.Sanitizer = (*Sanitizer)(nil)

// NewSanitizer creates a Sanitizer deleting the given file names. Panics on nil logger.
func NewSanitizer(files []string, logger deconstruct.Logger) *Sanitizer {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Sanitizer{files: append([]string(nil), files...), logger: logger}
}

// Sanitize deletes every listed regular file present in outputDir.
// Idempotent; other entries are never touched.
func (s *Sanitizer) Sanitize(ctx context.Context, outputDir string) error {
	var errs []error
	for _, name := range s.files {
		if err := ctx.Err(); err != nil {
			return err
		}
		path, err := output.Join(outputDir, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		info, err := os.Lstat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to stat %s: %w", path, err))
			continue
		}
		if info.IsDir() {
			s.logger.Verbose("Not removing directory %s", path)
			continue
		}

		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", path, err))
			continue
		}
		s.logger.Verbose("Removed %s", path)
	}
	return errors.Join(errs...)
}
