// Package observability defines the tracing, metrics and structured logging
// interfaces the AGiXT client reports through, together with the semantic
// conventions (attribute keys, span, event and metric names) it uses.
//
// The central entry point is [Provider], which composes [Tracer], [Metrics]
// and [Logger] into a single injectable dependency. The client opens one
// [Span] per request and attaches it to the request context with
// [ContextWithSpan]; lower layers fetch it with [SpanFromContext] to add HTTP
// events without knowing who started it. A [Provider] travelling through a
// context is stored with [ContextWithObserver] and read with
// [ObserverFromContext].
//
// A ready-made slog-backed implementation lives in the slogobs subpackage.
package observability
