package extract

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/digidem/mapeo-config-deconstructor/internal/metadata"
	"github.com/digidem/mapeo-config-deconstructor/pkg/deconstruct"
	"github.com/google/uuid"
)

// DetectFormat maps a filename suffix to its container format.
// Unknown suffixes return deconstruct.FormatNone.
func DetectFormat(path string) deconstruct.ArchiveFormat {
	switch filepath.Ext(path) {
	case deconstruct.FormatMapeoSettings.Suffix():
		return deconstruct.FormatMapeoSettings
	case deconstruct.FormatComapeoCat.Suffix():
		return deconstruct.FormatComapeoCat
	}
	return deconstruct.FormatNone
}

// Extractor implements deconstruct.Extractor.
// Thread-Safety: safe for concurrent Extract calls; each call unpacks into its own directory.
type Extractor struct {
	rootDir  string
	metadata *metadata.Reader
	logger   deconstruct.Logger
	getwd    func() (string, error)
}

// NewExtractor creates an Extractor that unpacks archives beneath rootDir
// (os.TempDir() when empty). Panics on nil dependencies.
func NewExtractor(rootDir string, reader *metadata.Reader, logger deconstruct.Logger) *Extractor {
	if reader == nil {
		panic("reader cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if rootDir == "" {
		rootDir = os.TempDir()
	}
	return &Extractor{
		rootDir:  rootDir,
		metadata: reader,
		logger:   logger,
		getwd:    os.Getwd,
	}
}

// Extract implements deconstruct.Extractor.
func (e *Extractor) Extract(ctx context.Context, sourcePath, outputHint string) (*deconstruct.Package, error) {
	e.logger.Verbose("Starting extraction of config...")
	if sourcePath == "" {
		return nil, fmt.Errorf("no config path provided: %w", deconstruct.ErrMissingInput)
	}

	info, err := statInput(sourcePath)
	if err != nil {
		return nil, err
	}

	pkg := &deconstruct.Package{
		SourcePath: sourcePath,
		Format:     deconstruct.FormatNone,
	}

	switch {
	case info.Mode().IsRegular():
		pkg.Format = DetectFormat(sourcePath)
		if pkg.Format == deconstruct.FormatNone {
			return nil, fmt.Errorf("%s: expected a %s or %s file: %w", sourcePath,
				deconstruct.FormatMapeoSettings.Suffix(), deconstruct.FormatComapeoCat.Suffix(), deconstruct.ErrUnsupportedFormat)
		}
		f, err := os.Open(sourcePath)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %v: %w", sourcePath, err, deconstruct.ErrMissingInput)
		}
		f.Close()
		if err := e.unpack(ctx, pkg); err != nil {
			return nil, err
		}
	case info.IsDir():
		e.logger.Verbose("Config path is a directory. No extraction needed.")
		pkg.WorkingDir = sourcePath
	default:
		return nil, fmt.Errorf("%s: config path should be a file or a directory: %w", sourcePath, deconstruct.ErrInvalidInput)
	}

	md, err := e.metadata.Read(pkg.WorkingDir)
	if err != nil {
		return nil, err
	}
	pkg.Name = md.Name

	pkg.OutputDir = outputHint
	if pkg.OutputDir == "" {
		cwd, err := e.getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve output folder: %w", err)
		}
		pkg.OutputDir = cwd
	}
	if err := os.MkdirAll(pkg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output folder: %w", err)
	}

	e.logger.Verbose("Resolved package %q: working dir %s, output dir %s", pkg.Name, pkg.WorkingDir, pkg.OutputDir)
	return pkg, nil
}

// statInput follows symlinks, distinguishing dangling links (invalid input)
// from paths that are absent or unreadable (missing input).
func statInput(sourcePath string) (fs.FileInfo, error) {
	info, err := os.Stat(sourcePath)
	if err == nil {
		return info, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		if _, lerr := os.Lstat(sourcePath); lerr == nil {
			return nil, fmt.Errorf("%s: broken symbolic link: %w", sourcePath, deconstruct.ErrInvalidInput)
		}
	}
	return nil, fmt.Errorf("cannot access %s: %v: %w", sourcePath, err, deconstruct.ErrMissingInput)
}

func (e *Extractor) unpack(ctx context.Context, pkg *deconstruct.Package) error {
	e.logger.Verbose("Config path is a file. Creating temporary folder...")
	workDir := filepath.Join(e.rootDir, deconstruct.TempDirPrefix+uuid.NewString())
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return fmt.Errorf("failed to create working directory: %w", err)
	}
	pkg.WorkingDir = workDir

	e.logger.Verbose("Temporary folder created. Extracting %s archive...", pkg.Format)
	var err error
	switch pkg.Format {
	case deconstruct.FormatMapeoSettings:
		pkg.NestedArchive, err = e.untar(ctx, pkg.SourcePath, workDir)
	case deconstruct.FormatComapeoCat:
		err = e.unzip(ctx, pkg.SourcePath, workDir)
	}
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", pkg.SourcePath, err)
	}
	if pkg.NestedArchive != "" {
		e.logger.Verbose("Config path updated to: %s", pkg.NestedArchive)
	}

	if entries, err := os.ReadDir(workDir); err == nil {
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		e.logger.Verbose("Contents of %s: %s", workDir, strings.Join(names, ", "))
	}
	return nil
}
