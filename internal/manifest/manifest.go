// Package manifest renders package.json for a deconstructed configuration.
//
// The template is a plain text document in which every occurrence of the
// {name} token is replaced with the configuration name from metadata.json.
// No other templating is performed.
package manifest

import (
	"context"
	"embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/digidem/mapeo-config-deconstructor/internal/files/filesystem"
	"github.com/digidem/mapeo-config-deconstructor/internal/files/output"
	"github.com/digidem/mapeo-config-deconstructor/internal/metadata"
	"github.com/digidem/mapeo-config-deconstructor/pkg/deconstruct"
)

//go:embed templates
var templatesFS embed.FS

const defaultTemplateName = "package-template.json"

// Template locates a manifest template.
type Template struct {
	FS   filesystem.FileSystemProvider
	Path string
}

// DefaultTemplate returns the built-in template.
func DefaultTemplate() Template {
	return Template{
		FS:   filesystem.NewEmbedFileSystem(templatesFS, "templates"),
		Path: defaultTemplateName,
	}
}

// FileTemplate returns a template read from disk, or the built-in one when path is empty.
func FileTemplate(path string) Template {
	if path == "" {
		return DefaultTemplate()
	}
	return Template{FS: filesystem.NewOSFileSystem(), Path: path}
}

// Render substitutes every occurrence of the name token.
func Render(template []byte, name string) []byte {
	return []byte(strings.ReplaceAll(string(template), deconstruct.ManifestNameToken, name))
}

// Builder implements deconstruct.ManifestBuilder.
type Builder struct {
	template Template
	metadata *metadata.Reader
	fileName string
	logger   deconstruct.Logger
}

var _ deconstruct.ManifestBuilder = (*Builder)(nil)

// NewBuilder creates a Builder writing fileName (package.json when empty).
// Panics on nil dependencies.
func NewBuilder(template Template, reader *metadata.Reader, fileName string, logger deconstruct.Logger) *Builder {
	if template.FS == nil {
		panic("template filesystem cannot be nil")
	}
	if reader == nil {
		panic("reader cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if fileName == "" {
		fileName = deconstruct.ManifestFile
	}
	return &Builder{template: template, metadata: reader, fileName: fileName, logger: logger}
}

// Build reads the template and metadata.json from workingDir and writes the
// rendered manifest to outputDir. All failures wrap deconstruct.ErrManifestFailed.
func (b *Builder) Build(ctx context.Context, workingDir, outputDir string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", deconstruct.ErrManifestFailed, err)
	}
	b.logger.Verbose("Building %s in %s", b.fileName, outputDir)

	tmpl, err := b.template.FS.ReadFile(b.template.Path)
	if err != nil {
		return fmt.Errorf("%w: failed to read template %s: %w", deconstruct.ErrManifestFailed, b.template.Path, err)
	}

	md, err := b.metadata.Read(workingDir)
	if err != nil {
		return fmt.Errorf("%w: %w", deconstruct.ErrManifestFailed, err)
	}

	if err := output.WriteFile(outputDir, b.fileName, Render(tmpl, md.Name)); err != nil {
		return fmt.Errorf("%w: %w", deconstruct.ErrManifestFailed, err)
	}
	b.logger.Verbose("Wrote %s", filepath.Join(outputDir, b.fileName))
	return nil
}
