// Package presets splits a catalog document into one file per preset and
// per field, plus the geometry defaults.
package presets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/digidem/mapeo-config-deconstructor/internal/fields"
	"github.com/digidem/mapeo-config-deconstructor/internal/files/filesystem"
	"github.com/digidem/mapeo-config-deconstructor/internal/files/output"
	"github.com/digidem/mapeo-config-deconstructor/pkg/deconstruct"
)

// Catalog sections with dedicated handling. Other top-level keys are ignored.
const (
	SectionPresets  = "presets"
	SectionFields   = "fields"
	SectionDefaults = "defaults"
)

// Decomposer implements deconstruct.Stage for the catalog document.
type Decomposer struct {
	fs     filesystem.FileSystemProvider
	logger deconstruct.Logger
}

var _ deconstruct.Stage = (*Decomposer)(nil)

// NewDecomposer creates a Decomposer. Panics on nil dependencies.
func NewDecomposer(fs filesystem.FileSystemProvider, logger deconstruct.Logger) *Decomposer {
	if fs == nil {
		panic("fs cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Decomposer{fs: fs, logger: logger}
}

func (d *Decomposer) Name() string { return "presets" }

// Run reads presets.json from workingDir and writes presets/<id>.json,
// fields/<id>.json and defaults.json under outputDir.
func (d *Decomposer) Run(ctx context.Context, workingDir, outputDir string) error {
	d.logger.Verbose("Deconstructing presets from %s to %s", workingDir, outputDir)

	catalogPath := filepath.Join(workingDir, deconstruct.CatalogFile)
	content, err := d.fs.ReadFile(catalogPath)
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(content, &sections); err != nil {
		return fmt.Errorf("failed to parse %s: %w", catalogPath, err)
	}

	batch := output.NewBatch(output.DefaultWriteLimit)
	for name, raw := range sections {
		if err := ctx.Err(); err != nil {
			_ = batch.Wait()
			return err
		}
		switch name {
		case SectionPresets:
			d.writeEntries(batch, outputDir, deconstruct.PresetsDir, raw, compactEntry)
		case SectionFields:
			d.writeEntries(batch, outputDir, deconstruct.FieldsDir, raw, fields.NormalizeJSON)
		case SectionDefaults:
			raw := raw
			batch.Go(func() error {
				data, err := compactEntry(raw)
				if err != nil {
					return fmt.Errorf("defaults: %w", err)
				}
				return d.write(outputDir, deconstruct.DefaultsFile, data)
			})
		default:
			d.logger.Verbose("Ignoring catalog section %q", name)
		}
	}
	return batch.Wait()
}

// writeEntries schedules one write per entry of an object-valued section.
func (d *Decomposer) writeEntries(batch *output.Batch, outputDir, subdir string, raw json.RawMessage, transform func([]byte) ([]byte, error)) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		batch.Go(func() error {
			return fmt.Errorf("section %q is not an object: %w", subdir, err)
		})
		return
	}

	for id, entry := range entries {
		id, entry := id, entry
		batch.Go(func() error {
			data, err := transform(entry)
			if err != nil {
				return fmt.Errorf("%s %q: %w", subdir, id, err)
			}
			return d.write(outputDir, filepath.Join(subdir, id+".json"), data)
		})
	}
}

func (d *Decomposer) write(outputDir, name string, data []byte) error {
	if err := output.WriteFile(outputDir, name, data); err != nil {
		return err
	}
	d.logger.Verbose("Wrote %s", filepath.Join(outputDir, name))
	return nil
}

func compactEntry(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
