package translations

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/digidem/mapeo-config-deconstructor/internal/files/filesystem"
	"github.com/digidem/mapeo-config-deconstructor/internal/files/output"
	"github.com/digidem/mapeo-config-deconstructor/pkg/deconstruct"
)

// Flattener implements deconstruct.Stage for translations.json.
type Flattener struct {
	fs     filesystem.FileSystemProvider
	logger deconstruct.Logger
}

var _ deconstruct.Stage = (*Flattener)(nil)

// NewFlattener creates a Flattener. Panics on nil dependencies.
func NewFlattener(fs filesystem.FileSystemProvider, logger deconstruct.Logger) *Flattener {
	if fs == nil {
		panic("fs cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Flattener{fs: fs, logger: logger}
}

func (f *Flattener) Name() string { return "translations" }

// Run writes messages/<lang>.json for every language of translations.json.
// A missing translations file is not an error.
func (f *Flattener) Run(ctx context.Context, workingDir, outputDir string) error {
	path := filepath.Join(workingDir, deconstruct.TranslationsFile)
	exists, err := filesystem.Exists(f.fs, path)
	if err != nil {
		return fmt.Errorf("failed to stat translations: %w", err)
	}
	if !exists {
		f.logger.Verbose("No %s found, skipping messages", deconstruct.TranslationsFile)
		return nil
	}

	content, err := f.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read translations: %w", err)
	}
	var tree Tree
	if err := json.Unmarshal(content, &tree); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	messagesDir := filepath.Join(outputDir, deconstruct.MessagesDir)
	if err := os.MkdirAll(messagesDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", messagesDir, err)
	}

	batch := output.NewBatch(output.DefaultWriteLimit)
	for code, lang := range tree {
		if err := ctx.Err(); err != nil {
			_ = batch.Wait()
			return err
		}
		code, lang := code, lang
		batch.Go(func() error {
			data, err := Flatten(lang).MarshalIndent()
			if err != nil {
				return fmt.Errorf("language %q: %w", code, err)
			}
			rel := filepath.Join(deconstruct.MessagesDir, code+".json")
			if err := output.WriteFile(outputDir, rel, data); err != nil {
				return err
			}
			f.logger.Verbose("Wrote %s", filepath.Join(outputDir, rel))
			return nil
		})
	}
	return batch.Wait()
}
