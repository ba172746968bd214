package deconstruct_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/digidem/mapeo-config-deconstructor/pkg/deconstruct"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, deconstruct.ExitSuccess},
		{"general error", errors.New("something went wrong"), deconstruct.ExitGeneralError},
		{"unknown flag", errors.New("unknown flag: --foo"), deconstruct.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x' in -x"), deconstruct.ExitUsageError},
		{"accepts args", errors.New("accepts between 1 and 2 arg(s), received 3"), deconstruct.ExitUsageError},
		{"missing argument", errors.New("missing required argument: <config-path>"), deconstruct.ExitUsageError},
		{"usage sentinel", fmt.Errorf("missing config path: %w", deconstruct.ErrUsage), deconstruct.ExitUsageError},
		{"invalid config", fmt.Errorf("ConfigPath is required: %w", deconstruct.ErrInvalidConfig), deconstruct.ExitConfigError},
		{"missing input", fmt.Errorf("stat x: %w", deconstruct.ErrMissingInput), deconstruct.ExitInputError},
		{"invalid input", deconstruct.ErrInvalidInput, deconstruct.ExitInputError},
		{"unsupported format", deconstruct.ErrUnsupportedFormat, deconstruct.ExitUnsupportedFormat},
		{"missing metadata", fmt.Errorf("read: %w", deconstruct.ErrMissingMetadata), deconstruct.ExitMissingMetadata},
		{"manifest", deconstruct.ErrManifestFailed, deconstruct.ExitManifestFailed},
		{"manifest wrapping metadata", fmt.Errorf("%w: %w", deconstruct.ErrManifestFailed, deconstruct.ErrMissingMetadata), deconstruct.ExitManifestFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deconstruct.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
