package client

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is wrapped by a DecodeError when the response envelope
	// lacks the expected field.
	ErrMissingField = errors.New("agixt: missing response field")

	// ErrNullField is wrapped by a DecodeError when the expected field, the
	// whole raw body, or an element of a list result is null.
	ErrNullField = errors.New("agixt: null response field")

	// ErrStatus is wrapped by a TransportError when the server answered with
	// a non-2xx status.
	ErrStatus = errors.New("agixt: unexpected response status")

	// ErrInvalidHeaderValue is wrapped by a ConfigError when a configured value
	// cannot be carried in an HTTP header.
	ErrInvalidHeaderValue = errors.New("invalid header value")
)

// ConfigError reports a client configuration rejected by [New].
type ConfigError struct {
	// Field is the configuration item at fault, e.g. "api_key" or "base_uri".
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("agixt: invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// TransportError reports a request that could not be built or sent, or a
// response with a non-2xx status. StatusCode is 0 when no response arrived.
type TransportError struct {
	Operation  string
	Method     string
	URL        string
	StatusCode int
	// Body is the raw response body of a non-2xx answer.
	Body string
	// Message is Body made readable: HTML pages rendered as Markdown and
	// truncated.
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		if e.Message == "" {
			return fmt.Sprintf("agixt: %s %s %s: status %d", e.Operation, e.Method, e.URL, e.StatusCode)
		}
		return fmt.Sprintf("agixt: %s %s %s: status %d: %s", e.Operation, e.Method, e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("agixt: %s %s %s: %v", e.Operation, e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response body that is not the expected envelope:
// invalid JSON, a missing field, or a field of the wrong shape.
type DecodeError struct {
	Operation string
	// Field is the envelope field that was expected. It is empty when the
	// whole body is the result.
	Field string
	// Body is the raw response body.
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("agixt: decode %s response: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("agixt: decode %s response: field %q: %v", e.Operation, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
