package middleware

import (
	"context"
	"time"

	"github.com/leofalp/agixt-go/core/client"
)

// NewTimeoutMiddleware creates a Middleware that enforces a per-call deadline.
//
// The context is wrapped with context.WithTimeout and cancel() is deferred, so
// the context is released once the call returns or the deadline expires. A
// non-positive timeout disables the middleware.
//
// If the caller supplies a context that already has a shorter deadline, that
// shorter deadline wins as per normal context semantics.
func NewTimeoutMiddleware(timeout time.Duration) client.Middleware {
	return func(next client.SendFunc) client.SendFunc {
		if timeout <= 0 {
			return next
		}
		return func(ctx context.Context, call *client.Call) (*client.Result, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			return next(ctx, call)
		}
	}
}
