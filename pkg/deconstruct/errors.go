package deconstruct

import (
	"errors"
	"strings"
)

// Sentinel errors for the fatal failure tier of the pipeline.
// Callers distinguish them with errors.Is().
//
// Example usage:
//
//	_, err := deconstructor.Deconstruct(ctx, opts)
//	if errors.Is(err, deconstruct.ErrUnsupportedFormat) {
//	    // Input was neither .mapeosettings nor .comapeocat
//	}
var (
	// ErrMissingInput indicates the input path does not exist or cannot be read.
	ErrMissingInput = errors.New("missing input")

	// ErrInvalidInput indicates the input path is neither a regular file nor a directory.
	ErrInvalidInput = errors.New("invalid input path")

	// ErrUnsupportedFormat indicates the input file suffix names no known container format.
	ErrUnsupportedFormat = errors.New("unsupported container format")

	// ErrMissingMetadata indicates metadata.json is absent, unparsable, or has no name.
	ErrMissingMetadata = errors.New("missing metadata")

	// ErrManifestFailed indicates package.json could not be rendered or written.
	ErrManifestFailed = errors.New("manifest build failed")

	// ErrInvalidConfig indicates the provided options or config file are invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUsage indicates the command line was malformed.
	ErrUsage = errors.New("usage error")
)

// ExitCodeForError returns the process exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrMissingInput), errors.Is(err, ErrInvalidInput):
		return ExitInputError
	case errors.Is(err, ErrUnsupportedFormat):
		return ExitUnsupportedFormat
	case errors.Is(err, ErrManifestFailed):
		return ExitManifestFailed
	case errors.Is(err, ErrMissingMetadata):
		return ExitMissingMetadata
	}

	// cobra reports flag and argument misuse as plain errors
	errStr := err.Error()
	if strings.HasPrefix(errStr, "missing required argument") ||
		strings.HasPrefix(errStr, "unknown flag") ||
		strings.HasPrefix(errStr, "unknown shorthand flag") ||
		strings.HasPrefix(errStr, "unknown command") ||
		strings.Contains(errStr, "arg(s), received") ||
		strings.HasPrefix(errStr, "invalid argument") {
		return ExitUsageError
	}

	return ExitGeneralError
}
