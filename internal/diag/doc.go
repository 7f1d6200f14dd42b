// Package diag defines the diagnostic model shared by all checker phases.
//
// Diagnostic is the central record: severity, a stable numeric Code, a
// message, a primary source.Span, optional Notes, and optional Fixes holding
// concrete text edits. Phases emit through the Reporter interface so they
// never couple to storage; BagReporter aggregates into a Bag, which supports
// limiting, merging, sorting, deduplication, and filtering.
//
// Rendering lives in internal/diagfmt, applying fixes in internal/fix. Keep
// the data model deterministic and side-effect free so diagnostics can be
// compared in tests and serialised by the CLI.
package diag
