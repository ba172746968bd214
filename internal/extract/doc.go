// Package extract locates a configuration package and unpacks it into a
// working directory.
//
// Inputs are either a pre-extracted directory, used in place, or an archive
// whose container format is chosen purely from the filename suffix:
//
//	.mapeosettings  tar archive (gzip compression detected and removed)
//	.comapeocat     zip archive
//
// Archives are unpacked into a fresh directory under the configured root,
// named mapeo-settings-<uuid> so that concurrent invocations never collide.
// The extractor never deletes anything.
package extract
