package deconstruct

import "context"

// Extractor resolves an input path into a working directory holding the
// unpacked package contents.
type Extractor interface {
	// Extract validates sourcePath, unpacks it when it is an archive, and reads
	// the package name from its metadata document. outputHint, when non-empty,
	// becomes the output directory; otherwise the process working directory is used.
	Extract(ctx context.Context, sourcePath, outputHint string) (*Package, error)
}

// Stage is one decomposition step. Stages read from workingDir and write
// beneath outputDir. Stages with disjoint output paths run concurrently; a
// stage that may overwrite another's output runs after them as a finishing stage.
type Stage interface {
	// Name identifies the stage in diagnostics.
	Name() string

	// Run performs the decomposition. A returned error means the stage produced
	// partial or no output; the pipeline logs it and continues.
	Run(ctx context.Context, workingDir, outputDir string) error
}

// ManifestBuilder renders the package manifest into the output directory.
// Its errors are fatal to the pipeline.
type ManifestBuilder interface {
	Build(ctx context.Context, workingDir, outputDir string) error
}

// Sanitizer removes intermediate artifacts from the output directory.
type Sanitizer interface {
	Sanitize(ctx context.Context, outputDir string) error
}
