package metadata

import (
	"fmt"

	"github.com/digidem/mapeo-config-deconstructor/pkg/deconstruct"
)

// MetadataError describes why a metadata document cannot be used.
// It unwraps to deconstruct.ErrMissingMetadata.
type MetadataError struct {
	FilePath string // Path to the metadata document
	Field    string // Offending field, if known
	Message  string // Primary error message
	Hint     string // Actionable suggestion for fixing
	Cause    error  // Underlying read or decode error
}

func (e *MetadataError) Error() string {
	msg := fmt.Sprintf("metadata error in %s: %s", e.FilePath, e.Message)
	if e.Field != "" {
		msg = fmt.Sprintf("metadata error in %s [field: %s]: %s", e.FilePath, e.Field, e.Message)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	return msg
}

// Unwrap lets errors.Is match both the sentinel and the underlying cause.
func (e *MetadataError) Unwrap() []error {
	if e.Cause != nil {
		return []error{deconstruct.ErrMissingMetadata, e.Cause}
	}
	return []error{deconstruct.ErrMissingMetadata}
}
