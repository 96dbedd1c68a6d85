package middleware

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/leofalp/agixt-go/core/client"
)

// ErrRateLimitWait is returned when a call gives up waiting for a rate-limit
// token, either because its context ended or because its deadline is too close
// for a token to become available. It wraps the limiter's own error, so
// [errors.Is] with context.Canceled or context.DeadlineExceeded also works
// when the context ended.
var ErrRateLimitWait = errors.New("agixt: rate limit wait aborted")

// NewRateLimitMiddleware creates a Middleware that allows at most
// requestsPerSecond calls per second on average, with bursts of up to burst
// calls. Calls wait for a token; they are never dropped. A burst below 1 is
// treated as 1, and a non-positive rate disables the middleware.
//
// The limiter is shared by every call through the returned middleware, so
// one middleware value should be created per client.
func NewRateLimitMiddleware(requestsPerSecond float64, burst int) client.Middleware {
	if requestsPerSecond <= 0 {
		return func(next client.SendFunc) client.SendFunc { return next }
	}
	return NewRateLimitMiddlewareWithLimiter(rate.NewLimiter(rate.Limit(requestsPerSecond), max(burst, 1)))
}

// NewRateLimitMiddlewareWithLimiter is NewRateLimitMiddleware with a caller-owned
// limiter, e.g. to share one budget across several clients.
func NewRateLimitMiddlewareWithLimiter(limiter *rate.Limiter) client.Middleware {
	return func(next client.SendFunc) client.SendFunc {
		return func(ctx context.Context, call *client.Call) (*client.Result, error) {
			if err := limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrRateLimitWait, call.Operation, err)
			}
			return next(ctx, call)
		}
	}
}
