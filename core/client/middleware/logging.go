package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/leofalp/agixt-go/core/client"
	"github.com/leofalp/agixt-go/internal/utils"
	"github.com/leofalp/agixt-go/providers/observability"
)

// LogLevel controls how much detail the logging middleware emits per call.
type LogLevel int

const (
	// LogLevelMinimal logs only the operation, call id and total duration.
	// Use this when you want lightweight audit trails without noise.
	LogLevelMinimal LogLevel = iota

	// LogLevelStandard logs everything in Minimal plus the HTTP method, URL,
	// status code and body sizes. This is the recommended default for most
	// applications.
	LogLevelStandard

	// LogLevelVerbose logs everything in Standard plus the request and
	// response bodies, each truncated to 500 characters.
	//
	// WARNING: DO NOT use LogLevelVerbose in production. Request bodies carry
	// agent settings, which routinely contain provider API keys, and prompt
	// text, which may contain user data. It is intended solely for local
	// debugging and development.
	LogLevelVerbose
)

// truncateLen is the maximum body length included in verbose log output.
const truncateLen = 500

// NewLoggingMiddleware creates a Middleware that emits structured slog entries
// before and after every call. Each call gets a random call id so the two
// entries can be correlated when calls run concurrently; when the call is
// traced, the id is also set on the span. The Authorization header is never
// logged.
//
// The logger parameter must not be nil. Use slog.Default() if you have not
// configured a custom logger.
func NewLoggingMiddleware(logger *slog.Logger, level LogLevel) client.Middleware {
	return func(next client.SendFunc) client.SendFunc {
		return func(ctx context.Context, call *client.Call) (*client.Result, error) {
			callID := uuid.NewString()
			if span := observability.SpanFromContext(ctx); span != nil {
				span.SetAttributes(observability.String(observability.AttrAGiXTCallID, callID))
			}

			logger.InfoContext(ctx, "agixt call",
				buildCallAttrs(call, callID, level)...,
			)

			start := time.Now()
			result, err := next(ctx, call)
			elapsed := time.Since(start)

			if err != nil {
				logger.ErrorContext(ctx, "agixt call failed",
					buildErrorAttrs(call, callID, elapsed, err, level)...,
				)
				return nil, err
			}

			logger.InfoContext(ctx, "agixt call completed",
				buildResultAttrs(call, callID, result, elapsed, level)...,
			)

			return result, nil
		}
	}
}

// buildCallAttrs returns slog attributes for an outgoing call, expanding detail
// according to the requested verbosity level.
func buildCallAttrs(call *client.Call, callID string, level LogLevel) []any {
	attrs := []any{
		slog.String("operation", call.Operation),
		slog.String("call_id", callID),
	}

	if level >= LogLevelStandard {
		attrs = append(attrs,
			slog.String("method", call.Method),
			slog.String("url", call.URL),
			slog.Int("request_bytes", len(call.Body)),
		)
	}

	if level >= LogLevelVerbose && len(call.Body) > 0 {
		attrs = append(attrs,
			slog.String("request_body", utils.TruncateString(string(call.Body), truncateLen)),
		)
	}

	return attrs
}

// buildResultAttrs returns slog attributes for a completed call.
func buildResultAttrs(call *client.Call, callID string, result *client.Result, elapsed time.Duration, level LogLevel) []any {
	attrs := []any{
		slog.String("operation", call.Operation),
		slog.String("call_id", callID),
		slog.Duration("duration", elapsed),
	}

	if level >= LogLevelStandard {
		attrs = append(attrs,
			slog.Int("status", result.StatusCode),
			slog.Int("response_bytes", len(result.Body)),
		)
	}

	if level >= LogLevelVerbose && len(result.Body) > 0 {
		attrs = append(attrs,
			slog.String("response_body", utils.TruncateString(string(result.Body), truncateLen)),
		)
	}

	return attrs
}

// buildErrorAttrs returns slog attributes for a failed call. A non-2xx status
// is included at Standard level and above.
func buildErrorAttrs(call *client.Call, callID string, elapsed time.Duration, err error, level LogLevel) []any {
	attrs := []any{
		slog.String("operation", call.Operation),
		slog.String("call_id", callID),
		slog.Duration("duration", elapsed),
		slog.String("error", err.Error()),
	}

	var transportErr *client.TransportError
	if level >= LogLevelStandard && errors.As(err, &transportErr) && transportErr.StatusCode != 0 {
		attrs = append(attrs, slog.Int("status", transportErr.StatusCode))
	}

	return attrs
}
