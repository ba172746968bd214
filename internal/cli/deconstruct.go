package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/digidem/mapeo-config-deconstructor/internal/config"
	"github.com/digidem/mapeo-config-deconstructor/internal/logging"
	"github.com/digidem/mapeo-config-deconstructor/internal/tui"
	"github.com/digidem/mapeo-config-deconstructor/pkg/deconstruct"
	"github.com/digidem/mapeo-config-deconstructor/pkg/deconstructor"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type deconstructFlagValues struct {
	verbose         bool
	rootDir         string
	skipCleanup     bool
	skipPackageJSON bool
	configFile      string
}

func registerDeconstructFlags(cmd *cobra.Command, flags *deconstructFlagValues) {
	cmd.Flags().StringVar(&flags.rootDir, "root-dir", "",
		"Root for temporary extraction folders\n"+
			"Precedence: --root-dir > $ROOT_DIR > system temp directory")
	cmd.Flags().BoolVar(&flags.skipCleanup, "skip-cleanup", false,
		"Keep intermediate files (presets.json, icons.svg, ...) in the output folder")
	cmd.Flags().BoolVar(&flags.skipPackageJSON, "skip-package-json", false,
		"Do not generate package.json")
	cmd.Flags().StringVar(&flags.configFile, "config", "",
		"Path to a deconstruct.yaml overriding the relay and cleanup file lists\n"+
			"(default: ./deconstruct.yaml when present)")
}

// buildOptions merges flags, environment and deconstruct.yaml into pipeline options.
// Precedence: flags > environment > deconstruct.yaml > defaults.
func buildOptions(cmd *cobra.Command, args []string, flags *deconstructFlagValues, lookup func(string) (string, bool)) (deconstruct.Options, error) {
	env := config.FromEnvironment(lookup)

	opts := deconstruct.Options{
		ConfigPath:      args[0],
		Verbose:         flags.verbose || env.Verbose,
		RootDir:         env.RootDir,
		SkipCleanup:     flags.skipCleanup,
		SkipPackageJSON: flags.skipPackageJSON,
	}
	if len(args) > 1 {
		opts.OutputFolder = args[1]
	}
	if cmd.Flags().Changed("root-dir") {
		opts.RootDir = flags.rootDir
	}

	projectCfg, err := loadProjectConfig(flags.configFile)
	if err != nil {
		return deconstruct.Options{}, err
	}
	if projectCfg != nil {
		opts.Files = projectCfg.Files
	}

	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return deconstruct.Options{}, err
	}
	return opts, nil
}

// loadProjectConfig loads an explicit config file, or ./deconstruct.yaml when present.
// Returns nil config if no config file applies (not an error).
func loadProjectConfig(explicit string) (*config.ProjectConfig, error) {
	path := explicit
	if path == "" {
		path = config.ConfigFileName
	}

	projectCfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && explicit == "" {
			return nil, nil
		}
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("config file %s: %w: %w", path, err, deconstruct.ErrInvalidConfig)
		}
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return projectCfg, nil
}

func runDeconstruct(cmd *cobra.Command, args []string, flags *deconstructFlagValues) error {
	_ = godotenv.Load()

	opts, err := buildOptions(cmd, args, flags, os.LookupEnv)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	logger := logging.NewWriterLogger(cmd.ErrOrStderr(), opts.Verbose)

	fmt.Fprintf(out, "Building project %s\n", opts.ConfigPath)

	mode := tui.DetectMode()
	if opts.Verbose {
		mode = tui.ModeNonInteractive
	}

	var result *deconstruct.Result
	err = tui.RunTask(ctx, mode, out, "Deconstructing "+opts.ConfigPath, func(ctx context.Context) (string, error) {
		var runErr error
		result, runErr = deconstructor.DeconstructWithLogger(ctx, opts, logger)
		if runErr != nil {
			return "", runErr
		}
		return fmt.Sprintf("%s deconstructed into %s", result.ConfigName, result.OutputFolder), nil
	})
	if err != nil {
		return err
	}

	logger.Verbose("Config folder: %s", result.ConfigFolder)
	fmt.Fprintln(out, "Done!")
	return nil
}
