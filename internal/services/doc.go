// Package services defines shared utilities consumed by the alignment
// workflow and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp episode codes, pipeline stages, and
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper so callers can tell fatal
//     input failures from configuration mistakes with errors.Is.
//
// A segment that finds no subtitle span is not an error anywhere in this
// module; it is simply absent from the match set.
package services
