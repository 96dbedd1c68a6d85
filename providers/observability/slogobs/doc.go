// Package slogobs provides an observability.Provider backed by log/slog.
// Spans, metric updates and log calls all become structured slog records, so
// a CLI or small service gets request tracing without an external collector.
//
// The main entry point is [New]. Output format and level default to the
// AGIXT_LOG_FORMAT and AGIXT_LOG_LEVEL environment variables and can be set
// explicitly with [WithFormat], [WithLevel], [WithOutput] and [WithLogger].
package slogobs
