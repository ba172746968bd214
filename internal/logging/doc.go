// Package logging provides concrete implementations of the deconstruct.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stderr (or any writer) with serialized output
//   - NullLogger: Discards all messages (useful for testing and library callers)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
