// Package files groups the file handling used by the deconstruction pipeline.
//
// Sub-packages:
//   - filesystem: read-only filesystem abstraction (OS, in-memory, embedded)
//   - output: atomic writes, bounded write batches and path guards
//   - relay: copies top-level metadata files into the output folder
//   - sanitizer: removes consumed source files after a same-folder run
package files
