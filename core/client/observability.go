package client

import (
	"context"
	"time"

	"github.com/leofalp/agixt-go/providers/observability"
)

// observe wraps run in an "agixt.request" span and records the call count,
// latency and errors on the configured observer. Both the span and the
// observer are put into the context handed to run, so the HTTP helper and
// middlewares can reach them via [observability.SpanFromContext] and
// [observability.ObserverFromContext].
func (c *Client) observe(ctx context.Context, req request, endpoint string, run func(context.Context) error) error {
	observer := c.observer
	operation := observability.String(observability.AttrAGiXTOperation, req.operation)

	attrs := append([]observability.Attribute{
		operation,
		observability.String(observability.AttrHTTPMethod, req.method),
		observability.String(observability.AttrHTTPURL, endpoint),
	}, req.attrs...)

	ctx, span := observer.StartSpan(ctx, observability.SpanAGiXTRequest, attrs...)
	defer span.End()
	ctx = observability.ContextWithSpan(ctx, span)
	ctx = observability.ContextWithObserver(ctx, observer)

	observer.Debug(ctx, "agixt call", attrs...)

	start := time.Now()
	err := run(ctx)
	elapsed := time.Since(start)

	observer.Histogram(observability.MetricClientRequestDuration).Record(ctx, elapsed.Seconds(), operation)

	if err != nil {
		kind := errorType(err)

		span.RecordError(err)
		span.SetStatus(observability.StatusError, req.operation+" failed")

		observer.Error(ctx, "agixt call failed",
			operation,
			observability.Error(err),
			observability.String(observability.AttrErrorType, kind),
			observability.Duration(observability.AttrDuration, elapsed),
		)

		observer.Counter(observability.MetricClientRequestCount).Add(ctx, 1,
			operation,
			observability.String(observability.AttrStatus, "error"),
		)
		observer.Counter(observability.MetricClientErrorCount).Add(ctx, 1,
			operation,
			observability.String(observability.AttrErrorType, kind),
		)

		return err
	}

	span.SetStatus(observability.StatusOK, "")

	observer.Debug(ctx, "agixt call completed",
		operation,
		observability.Duration(observability.AttrDuration, elapsed),
	)
	observer.Counter(observability.MetricClientRequestCount).Add(ctx, 1,
		operation,
		observability.String(observability.AttrStatus, "ok"),
	)

	return nil
}
