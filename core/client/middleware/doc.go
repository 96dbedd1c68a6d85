// Package middleware provides built-in middleware implementations for the AGiXT
// client. Each middleware is constructed via a New* function that returns a
// [client.Middleware] ready to be passed to [client.WithMiddleware].
//
// # Available Middleware
//
//   - [NewTimeoutMiddleware]: Adds a per-call deadline via context.WithTimeout,
//     so that a stalled server does not block the caller indefinitely.
//
//   - [NewRateLimitMiddleware]: Spaces calls out with a token bucket
//     (golang.org/x/time/rate), waiting for a token before each call.
//
//   - [NewLoggingMiddleware]: Emits structured slog entries before and after
//     every call, tagged with a per-call id, with three verbosity levels
//     (Minimal, Standard, Verbose).
//
// No retry middleware is provided: a failed call is reported to the caller
// exactly once.
//
// # Usage
//
//	import (
//	    "log/slog"
//	    "time"
//
//	    "github.com/leofalp/agixt-go/core/client"
//	    "github.com/leofalp/agixt-go/core/client/middleware"
//	)
//
//	c, err := client.New("http://localhost:7437",
//	    client.WithMiddleware(
//	        middleware.NewTimeoutMiddleware(30*time.Second),
//	        middleware.NewRateLimitMiddleware(5, 1),
//	        middleware.NewLoggingMiddleware(slog.Default(), middleware.LogLevelStandard),
//	    ),
//	)
//
// Middlewares execute outermost-first: the first entry in WithMiddleware is the
// outermost wrapper, meaning it runs first on the way in and last on the way out.
// In the example above, a call travels:
//
//	Timeout (first, outermost) → RateLimit → Logging → HTTP
//
// so time spent waiting for a rate-limit token counts against the timeout.
package middleware
