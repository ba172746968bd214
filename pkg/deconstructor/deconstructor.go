// Package deconstructor is the programmatic entry point of the pipeline.
//
// Example:
//
//	result, err := deconstructor.Deconstruct(ctx, deconstruct.Options{
//	    ConfigPath:   "my-config.comapeocat",
//	    OutputFolder: "my-config",
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println("Deconstructed", result.ConfigName, "into", result.OutputFolder)
package deconstructor

import (
	"context"
	"fmt"

	"github.com/digidem/mapeo-config-deconstructor/internal/extract"
	"github.com/digidem/mapeo-config-deconstructor/internal/files/filesystem"
	"github.com/digidem/mapeo-config-deconstructor/internal/files/relay"
	"github.com/digidem/mapeo-config-deconstructor/internal/files/sanitizer"
	"github.com/digidem/mapeo-config-deconstructor/internal/logging"
	"github.com/digidem/mapeo-config-deconstructor/internal/manifest"
	"github.com/digidem/mapeo-config-deconstructor/internal/metadata"
	"github.com/digidem/mapeo-config-deconstructor/internal/presets"
	"github.com/digidem/mapeo-config-deconstructor/internal/services"
	"github.com/digidem/mapeo-config-deconstructor/internal/sprite"
	"github.com/digidem/mapeo-config-deconstructor/internal/translations"
	"github.com/digidem/mapeo-config-deconstructor/pkg/deconstruct"
)

// Deconstruct runs the pipeline, logging to stderr according to opts.Verbose.
func Deconstruct(ctx context.Context, opts deconstruct.Options) (*deconstruct.Result, error) {
	return DeconstructWithLogger(ctx, opts, logging.NewConsoleLogger(opts.Verbose))
}

// DeconstructWithLogger runs the pipeline with a caller-supplied logger.
func DeconstructWithLogger(ctx context.Context, opts deconstruct.Options, logger deconstruct.Logger) (*deconstruct.Result, error) {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	if opts.ConfigPath == "" {
		return nil, fmt.Errorf("configPath is required: %w", deconstruct.ErrInvalidConfig)
	}
	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return newService(opts, logger).Deconstruct(ctx, opts)
}

func newService(opts deconstruct.Options, logger deconstruct.Logger) *services.DeconstructionService {
	fsProvider := filesystem.NewOSFileSystem()
	reader := metadata.NewReader(fsProvider)

	stages := []deconstruct.Stage{
		presets.NewDecomposer(fsProvider, logger),
		sprite.NewDecomposer(fsProvider, logger),
		translations.NewFlattener(fsProvider, logger),
	}
	// The relay may overwrite defaults.json from the catalog; the relayed copy wins.
	finishers := []deconstruct.Stage{
		relay.NewRelay(fsProvider, opts.Files.Relay, logger),
	}

	return services.NewDeconstructionService(
		extract.NewExtractor(opts.RootDir, reader, logger),
		stages,
		finishers,
		manifest.NewBuilder(manifest.FileTemplate(opts.Files.ManifestTemplate), reader, opts.Files.ManifestFile, logger),
		sanitizer.NewSanitizer(opts.Files.Cleanup, logger),
		logger,
	)
}
