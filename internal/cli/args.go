package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireConfigPath validates that a config path and at most one output folder are provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireConfigPath(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <config-path>

Usage: %s

Example:
  %s mapeo-default-settings.mapeosettings ./output`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 2 {
		return fmt.Errorf("accepts between 1 and 2 arg(s), received %d", len(args))
	}
	return nil
}
