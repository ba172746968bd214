// Package metadata reads the package metadata document (metadata.json).
//
// The document is required in every package. Only its name is consumed by the
// pipeline: it names the package in results and is substituted into the
// manifest template. Other members (dataset_id, version, ...) are ignored
// whatever their type.
//
// The document is checked against a small JSON Schema before decoding so
// that "present but unusable" documents are reported with the offending
// field instead of a generic decode error.
package metadata
