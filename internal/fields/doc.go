// Package fields normalizes field definitions between the two catalog
// dialects.
//
// Legacy definitions (Mapeo) identify the tag with "key", carry free-text
// hints in "placeholder" and list options as bare strings. Current
// definitions (CoMapeo) use "tagKey", "helperText", {label, value} option
// pairs and a "universal" flag. Normalize maps the former onto the latter
// and leaves current definitions untouched.
//
// Key order of the source document is preserved so that normalized files
// diff cleanly against their origin.
package fields
