// Package filesystem provides the read-side filesystem abstraction used by the
// decomposition stages.
//
// Stages read package inputs (metadata.json, presets.json, icons.svg, ...)
// through a FileSystemProvider and write outputs directly to disk. Keeping
// reads behind an interface lets the manifest template come from an embedded
// filesystem and lets tests feed inputs from memory.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
//   - EmbedFileSystem: Read-only view over an embed.FS subtree
package filesystem
