package sprite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/digidem/mapeo-config-deconstructor/internal/files/filesystem"
	"github.com/digidem/mapeo-config-deconstructor/internal/files/output"
	"github.com/digidem/mapeo-config-deconstructor/pkg/deconstruct"
)

// Decomposer implements deconstruct.Stage for the icon sprite.
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

func (d *Decomposer) Name() string { return "icons" }

// Run writes icons/<name>-{24px|100px}.svg for every symbol of icons.svg.
// A missing sprite or a sprite without symbols is not an error and leaves
// the output untouched.
func (d *Decomposer) Run(ctx context.Context, workingDir, outputDir string) error {
	spritePath := filepath.Join(workingDir, deconstruct.SpriteFile)
	exists, err := filesystem.Exists(d.fs, spritePath)
	if err != nil {
		return fmt.Errorf("failed to stat sprite: %w", err)
	}
	if !exists {
		d.logger.Verbose("No %s found, skipping icons", deconstruct.SpriteFile)
		return nil
	}

	d.logger.Verbose("Deconstructing SVG sprite from %s to %s", workingDir, outputDir)
	content, err := d.fs.ReadFile(spritePath)
	if err != nil {
		return fmt.Errorf("failed to read sprite: %w", err)
	}
	doc, err := Parse(content)
	if err != nil {
		return err
	}
	if len(doc.Symbols) == 0 {
		d.logger.Verbose("Sprite has no symbols")
		return nil
	}

	// Later symbols win when two ids map to the same file.
	var errs []error
	winners := make(map[string]Symbol, len(doc.Symbols))
	order := make([]string, 0, len(doc.Symbols))
	for i, sym := range doc.Symbols {
		id, ok := sym.ID()
		if !ok || id == "" {
			errs = append(errs, fmt.Errorf("symbol %d has no id", i))
			continue
		}
		name := FileName(id)
		if _, seen := winners[name]; seen {
			d.logger.Verbose("Symbol %q overrides an earlier symbol for %s", id, name)
		} else {
			order = append(order, name)
		}
		winners[name] = sym
	}

	batch := output.NewBatch(output.DefaultWriteLimit)
	for _, name := range order {
		if err := ctx.Err(); err != nil {
			_ = batch.Wait()
			return err
		}
		name, sym := name, winners[name]
		batch.Go(func() error {
			rel := filepath.Join(deconstruct.IconsDir, name)
			if err := output.WriteFile(outputDir, rel, doc.Render(sym)); err != nil {
				return err
			}
			d.logger.Verbose("Wrote %s", filepath.Join(outputDir, rel))
			return nil
		})
	}
	errs = append(errs, batch.Wait())
	return errors.Join(errs...)
}
