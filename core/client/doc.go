// Package client is a typed client for the AGiXT agent-orchestration HTTP
// service. A [Client] wraps a base URI and a fixed header set; each method
// issues exactly one request, decodes the JSON envelope the server answers
// with and returns the single field that carries the result.
//
// The primary entry point is [New], which accepts the server base URI and a
// set of functional options (e.g. [WithAPIKey], [WithHTTPClient],
// [WithObserver], [WithMiddleware]). A Client is immutable after construction
// and safe for concurrent use.
//
// Failures are reported as [*ConfigError] (construction), [*TransportError]
// (the request could not be sent or the server answered non-2xx) and
// [*DecodeError] (the body was not the expected envelope). Nothing is retried.
package client
