package cli

import (
	"os"

	"github.com/spf13/cobra"
)

const longDescription = `mapeo-deconstruct splits a packaged Mapeo or CoMapeo configuration into a
directory tree of individually editable files.

The config path may be a .mapeosettings archive (tar, optionally gzip
compressed), a .comapeocat archive (zip), or an already extracted directory.
The output folder defaults to the current directory.

Output layout:
  presets/<id>.json              one file per preset
  fields/<id>.json               one file per field, in CoMapeo format
  icons/<name>-{24px|100px}.svg  one file per sprite symbol
  messages/<lang>.json           flattened translations per language
  defaults.json, metadata.json, package.json

Environment:
  DEBUG=true     Enable verbose output (same as --verbose)
  ROOT_DIR       Root for temporary extraction folders (default: system temp)

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration (flags or deconstruct.yaml)
  11 - Config path missing, unreadable, or not a file/directory
  12 - Unsupported container format
  13 - metadata.json missing or without a name
  14 - package.json could not be produced`

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	flags := &deconstructFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "mapeo-deconstruct <config-path> [output-folder]",
		Short: "Deconstruct a Mapeo configuration into editable files",
		Long:  longDescription,
		Example: `  # Extract into the current directory
  mapeo-deconstruct mapeo-default-settings.mapeosettings

  # Extract a CoMapeo category file into a named folder
  mapeo-deconstruct config.comapeocat ./my-config

  # Keep intermediate files and skip package.json
  mapeo-deconstruct ./extracted ./out --skip-cleanup --skip-package-json`,
		Args:         RequireConfigPath,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeconstruct(cmd, args, flags)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	registerDeconstructFlags(rootCmd, flags)
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(rootCmd.OutOrStdout())
		return nil
	}
	return rootCmd.Execute()
}
