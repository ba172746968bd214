// Package relay copies pass-through files from the working directory to the output.
package relay

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/digidem/mapeo-config-deconstructor/internal/files/filesystem"
	"github.com/digidem/mapeo-config-deconstructor/internal/files/output"
	"github.com/digidem/mapeo-config-deconstructor/pkg/deconstruct"
)

// Relay implements deconstruct.Stage by copying a fixed table of files verbatim.
type Relay struct {
	fs     filesystem.FileSystemProvider
	files  []string
	logger deconstruct.Logger
}

var _ deconstruct.Stage = (*Relay)(nil)

// NewRelay creates a Relay for the given file names. Panics on nil dependencies.
func NewRelay(fs filesystem.FileSystemProvider, files []string, logger deconstruct.Logger) *Relay {
	if fs == nil {
		panic("fs cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Relay{fs: fs, files: append([]string(nil), files...), logger: logger}
}

func (r *Relay) Name() string { return "relay" }

// Run copies every listed file present in workingDir. Missing files are skipped.
func (r *Relay) Run(ctx context.Context, workingDir, outputDir string) error {
	var errs []error
	for _, name := range r.files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.copy(workingDir, outputDir, name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Relay) copy(workingDir, outputDir, name string) error {
	src := filepath.Join(workingDir, name)
	exists, err := filesystem.Exists(r.fs, src)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}
	if !exists {
		r.logger.Verbose("Skipping %s, not present", name)
		return nil
	}

	content, err := r.fs.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}
	if err := output.WriteFile(outputDir, name, content); err != nil {
		return err
	}
	r.logger.Verbose("Copied %s to %s", name, outputDir)
	return nil
}
