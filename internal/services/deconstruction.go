// Package services orchestrates the deconstruction pipeline.
package services

import (
	"context"
	"fmt"

	"github.com/digidem/mapeo-config-deconstructor/pkg/deconstruct"
	"golang.org/x/sync/errgroup"
)

// DeconstructionService runs extraction, the independent decomposition
// stages, the finishing stages, the manifest and the cleanup pass, in that order.
// Finishing stages may overwrite files produced by the concurrent stages, so
// they run one at a time after all of those have returned.
// Thread-Safety: safe for concurrent Deconstruct calls targeting different
// output directories.
type DeconstructionService struct {
	extractor deconstruct.Extractor
	stages    []deconstruct.Stage
	finishers []deconstruct.Stage
	manifest  deconstruct.ManifestBuilder
	sanitizer deconstruct.Sanitizer
	logger    deconstruct.Logger
}

// NewDeconstructionService creates a DeconstructionService with all
// dependencies injected. Panics on nil dependencies.
func NewDeconstructionService(
	extractor deconstruct.Extractor,
	stages []deconstruct.Stage,
	finishers []deconstruct.Stage,
	manifest deconstruct.ManifestBuilder,
	sanitizer deconstruct.Sanitizer,
	logger deconstruct.Logger,
) *DeconstructionService {
	if extractor == nil {
		panic("extractor cannot be nil")
	}
	for i, stage := range stages {
		if stage == nil {
			panic(fmt.Sprintf("stage %d cannot be nil", i))
		}
	}
	for i, stage := range finishers {
		if stage == nil {
			panic(fmt.Sprintf("finishing stage %d cannot be nil", i))
		}
	}
	if manifest == nil {
		panic("manifest cannot be nil")
	}
	if sanitizer == nil {
		panic("sanitizer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &DeconstructionService{
		extractor: extractor,
		stages:    append([]deconstruct.Stage(nil), stages...),
		finishers: append([]deconstruct.Stage(nil), finishers...),
		manifest:  manifest,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// Deconstruct runs the pipeline for opts.ConfigPath.
//
// Extraction and manifest failures abort the run and are returned. Stage and
// cleanup failures are logged and the run continues.
func (s *DeconstructionService) Deconstruct(ctx context.Context, opts deconstruct.Options) (*deconstruct.Result, error) {
	pkg, err := s.extractor.Extract(ctx, opts.ConfigPath, opts.OutputFolder)
	if err != nil {
		return nil, err
	}

	if pkg.Extracted() {
		s.logger.Verbose("Unpacked %s archive %s into %s", pkg.Format, pkg.SourcePath, pkg.WorkingDir)
	}

	s.runStages(ctx, pkg)
	for _, stage := range s.finishers {
		s.runStage(ctx, stage, pkg)
	}

	if opts.SkipPackageJSON {
		s.logger.Verbose("Skipping manifest")
	} else if err := s.manifest.Build(ctx, pkg.WorkingDir, pkg.OutputDir); err != nil {
		return nil, err
	}

	if opts.SkipCleanup {
		s.logger.Verbose("Skipping cleanup of %s", pkg.OutputDir)
	} else if err := s.sanitizer.Sanitize(ctx, pkg.OutputDir); err != nil {
		s.logger.Error("Error in cleanup: %v", err)
	}

	return &deconstruct.Result{
		ConfigName:   pkg.Name,
		OutputFolder: pkg.OutputDir,
		ConfigFolder: pkg.WorkingDir,
	}, nil
}

// runStages runs every stage concurrently and waits for all of them.
// Stage errors never cancel sibling stages.
func (s *DeconstructionService) runStages(ctx context.Context, pkg *deconstruct.Package) {
	var g errgroup.Group
	for _, stage := range s.stages {
		stage := stage
		g.Go(func() error {
			s.runStage(ctx, stage, pkg)
			return nil
		})
	}
	_ = g.Wait()
}

// runStage runs one stage, logging rather than returning its error.
func (s *DeconstructionService) runStage(ctx context.Context, stage deconstruct.Stage, pkg *deconstruct.Package) {
	s.logger.Verbose("Running %s", stage.Name())
	if err := stage.Run(ctx, pkg.WorkingDir, pkg.OutputDir); err != nil {
		s.logger.Error("Error in %s: %v", stage.Name(), err)
		return
	}
	s.logger.Verbose("Finished %s", stage.Name())
}
