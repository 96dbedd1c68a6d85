package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/leofalp/agixt-go/providers/observability"
)

// Request describes a single HTTP round trip.
type Request struct {
	Method string
	URL    string
	Header http.Header
	// Body is sent verbatim. A nil Body sends no body at all.
	Body []byte
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Do performs req with client and reads the entire response body.
//
// Any status code is returned as a Response; interpreting non-2xx codes is the
// caller's job. Errors are returned only when the request cannot be built or
// sent, or when the body cannot be read. When the context carries an
// observability span, request preparation, transport failure and response
// receipt are added to it as events.
//
// The response body is always closed; a close failure is logged and never
// overrides the returned result.
func Do(ctx context.Context, client *http.Client, req Request) (*Response, error) {
	span := observability.SpanFromContext(ctx)

	if client == nil {
		client = http.DefaultClient
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	if span != nil {
		span.AddEvent(observability.EventHTTPRequestPrepared,
			observability.String(observability.AttrHTTPMethod, req.Method),
			observability.String(observability.AttrHTTPURL, req.URL),
			observability.Int(observability.AttrHTTPRequestBodySize, len(req.Body)),
		)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	for key, values := range req.Header {
		httpReq.Header[key] = append([]string(nil), values...)
	}

	start := time.Now()
	res, err := client.Do(httpReq)
	elapsed := time.Since(start)

	if err != nil {
		if span != nil {
			span.AddEvent(observability.EventHTTPRequestError,
				observability.Error(err),
				observability.Duration(observability.AttrHTTPDuration, elapsed),
			)
		}
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer CloseWithLog(res.Body)

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if span != nil {
		span.AddEvent(observability.EventHTTPResponse,
			observability.Int(observability.AttrHTTPStatusCode, res.StatusCode),
			observability.Int(observability.AttrHTTPResponseBodySize, len(respBody)),
			observability.Duration(observability.AttrHTTPDuration, elapsed),
		)
	}

	return &Response{
		StatusCode: res.StatusCode,
		Header:     res.Header,
		Body:       respBody,
	}, nil
}

// IsSuccess reports whether status is in the 2xx range.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}
