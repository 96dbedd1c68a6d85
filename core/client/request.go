package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/leofalp/agixt-go/providers/observability"
)

// request describes one endpoint call before it becomes a Call.
type request struct {
	operation string
	method    string
	// path is appended to the base URI verbatim; path parameters are not escaped.
	path  string
	query url.Values
	// body is JSON-encoded when non-nil.
	body  any
	attrs []observability.Attribute
}

// fetch runs req and projects the named envelope field into T. An empty field
// decodes the whole body into T.
func fetch[T any](ctx context.Context, c *Client, req request, field string) (T, error) {
	if field != "" {
		req.attrs = append(req.attrs[:len(req.attrs):len(req.attrs)],
			observability.String(observability.AttrAGiXTField, field))
	}

	var out T
	err := c.invoke(ctx, req, func(body []byte) error {
		var err error
		out, err = project[T](req.operation, field, body)
		return err
	})
	return out, err
}

// invoke sends req through the middleware chain and hands the response body
// to decode, wrapped in a span when an observer is configured.
func (c *Client) invoke(ctx context.Context, req request, decode func(body []byte) error) error {
	endpoint := c.endpoint(req)

	run := func(ctx context.Context) error {
		call, err := c.newCall(req, endpoint)
		if err != nil {
			return err
		}

		res, err := c.send(ctx, call)
		recordStatus(ctx, res, err)
		if err != nil {
			return err
		}

		return decode(res.Body)
	}

	if c.observer == nil {
		return run(ctx)
	}
	return c.observe(ctx, req, endpoint, run)
}

func (c *Client) endpoint(req request) string {
	endpoint := c.baseURI + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}
	return endpoint
}

func (c *Client) newCall(req request, endpoint string) (*Call, error) {
	call := &Call{
		Operation: req.operation,
		Method:    req.method,
		URL:       endpoint,
		Header:    c.header.Clone(),
	}

	if req.body != nil {
		body, err := json.Marshal(req.body)
		if err != nil {
			return nil, &TransportError{
				Operation: req.operation,
				Method:    req.method,
				URL:       endpoint,
				Err:       fmt.Errorf("error encoding request body: %w", err),
			}
		}
		call.Body = body
	}

	return call, nil
}

// project decodes body as a JSON object and unmarshals its field member into T.
// A null result, or a null element of a list result, is a DecodeError rather
// than a zero value.
func project[T any](operation, field string, body []byte) (T, error) {
	var zero T

	if field == "" {
		if isNull(body) {
			return zero, &DecodeError{Operation: operation, Body: string(body), Err: ErrNullField}
		}
		var out T
		if err := json.Unmarshal(body, &out); err != nil {
			return zero, &DecodeError{Operation: operation, Body: string(body), Err: err}
		}
		return out, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return zero, &DecodeError{Operation: operation, Field: field, Body: string(body), Err: err}
	}

	raw, ok := envelope[field]
	if !ok {
		return zero, &DecodeError{Operation: operation, Field: field, Body: string(body), Err: ErrMissingField}
	}
	if isNull(raw) {
		return zero, &DecodeError{Operation: operation, Field: field, Body: string(body), Err: ErrNullField}
	}
	if err := checkElements(raw); err != nil {
		return zero, &DecodeError{Operation: operation, Field: field, Body: string(body), Err: err}
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, &DecodeError{Operation: operation, Field: field, Body: string(body), Err: err}
	}
	return out, nil
}

func isNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// checkElements rejects null entries of a JSON array. Other values pass.
func checkElements(raw []byte) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return err
	}
	for i, element := range elements {
		if isNull(element) {
			return fmt.Errorf("%w: element %d", ErrNullField, i)
		}
	}
	return nil
}

// recordStatus tags the current span with the HTTP status of the answer.
func recordStatus(ctx context.Context, res *Result, err error) {
	span := observability.SpanFromContext(ctx)
	if span == nil {
		return
	}

	status := 0
	var transportErr *TransportError
	switch {
	case res != nil:
		status = res.StatusCode
	case errors.As(err, &transportErr):
		status = transportErr.StatusCode
	}
	if status != 0 {
		span.SetAttributes(observability.Int(observability.AttrHTTPStatusCode, status))
	}
}
