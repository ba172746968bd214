package deconstruct

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// ArchiveFormat identifies the container an input package arrived in.
type ArchiveFormat string

const (
	// FormatNone marks a pre-extracted directory, or an unknown suffix when
	// returned from format detection.
	FormatNone ArchiveFormat = "none"

	// FormatMapeoSettings is a tar archive, optionally gzip-compressed.
	FormatMapeoSettings ArchiveFormat = "mapeosettings"

	// FormatComapeoCat is a zip archive.
	FormatComapeoCat ArchiveFormat = "comapeocat"
)

// Suffix returns the filename suffix that selects the format.
func (f ArchiveFormat) Suffix() string {
	switch f {
	case FormatMapeoSettings:
		return ".mapeosettings"
	case FormatComapeoCat:
		return ".comapeocat"
	}
	return ""
}

// Package is a configuration bundle located and, if needed, unpacked by an Extractor.
type Package struct {
	// SourcePath is the path the caller supplied.
	SourcePath string

	// Format is the detected container format; FormatNone for directories.
	Format ArchiveFormat

	// WorkingDir holds the package contents read by every stage.
	WorkingDir string

	// OutputDir receives the generated tree.
	OutputDir string

	// Name is the metadata document's name.
	Name string

	// NestedArchive is the unpacked location of an inner file carrying the
	// same suffix as the outer archive, if the archive contained one.
	NestedArchive string
}

// Extracted reports whether the working directory was created by unpacking an archive.
func (p *Package) Extracted() bool {
	return p.Format != FormatNone
}

// FileTables holds the fixed file-name sets used by the File Relay and the
// Output Sanitizer, plus the manifest template location.
type FileTables struct {
	// Relay lists files copied verbatim from the working directory to the output.
	Relay []string `yaml:"relay_files" validate:"dive,required,excludesall=/"`

	// Cleanup lists files deleted from the output after decomposition.
	Cleanup []string `yaml:"cleanup_files" validate:"dive,required,excludesall=/"`

	// ManifestTemplate is an optional path to a template replacing the embedded one.
	ManifestTemplate string `yaml:"manifest_template"`

	// ManifestFile is the manifest name written to the output directory.
	ManifestFile string `yaml:"manifest_file" validate:"omitempty,excludesall=/"`
}

// Options configures a single pipeline run.
type Options struct {
	// ConfigPath is the package archive or directory to deconstruct.
	ConfigPath string `validate:"required"`

	// OutputFolder receives the generated tree. Defaults to the process working directory.
	OutputFolder string

	// RootDir is where temporary extraction workspaces are created. Defaults to os.TempDir().
	RootDir string

	// Verbose enables diagnostic logging.
	Verbose bool

	// SkipCleanup leaves intermediate artifacts in the output directory.
	SkipCleanup bool

	// SkipPackageJSON skips the manifest.
	SkipPackageJSON bool

	// Files overrides the relay and cleanup tables. Nil slices take the defaults.
	Files FileTables
}

// ApplyDefaults fills unset fields with their defaults.
func (o *Options) ApplyDefaults() {
	if o.RootDir == "" {
		o.RootDir = os.TempDir()
	}
	if o.Files.Relay == nil {
		o.Files.Relay = append([]string(nil), DefaultRelayFiles...)
	}
	if o.Files.Cleanup == nil {
		o.Files.Cleanup = append([]string(nil), DefaultCleanupFiles...)
	}
	if o.Files.ManifestFile == "" {
		o.Files.ManifestFile = ManifestFile
	}
}

var validate = validator.New()

// Validate checks Options against its struct tags.
// It returns a multi-error if multiple validation failures occur.
func (o *Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%v: %w", err, ErrInvalidConfig)
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			errs = append(errs, fmt.Errorf("%s is required: %w", fe.Namespace(), ErrInvalidConfig))
			continue
		}
		errs = append(errs, fmt.Errorf("%s failed %q validation: %w", fe.Namespace(), fe.Tag(), ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// Result describes a completed pipeline run.
type Result struct {
	ConfigName   string
	OutputFolder string
	ConfigFolder string
}
