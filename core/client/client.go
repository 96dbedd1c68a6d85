package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/http/httpguts"

	"github.com/leofalp/agixt-go/internal/utils"
	"github.com/leofalp/agixt-go/providers/observability"
)

// errorBodyMaxLen bounds the rendered error body carried in TransportError.Message.
const errorBodyMaxLen = 1000

// Client talks to one AGiXT server. It is immutable after [New] and safe for
// concurrent use; the only shared resource is the underlying *http.Client.
type Client struct {
	baseURI        string
	header         http.Header
	httpClient     *http.Client
	observer       observability.Provider
	getBodyAsQuery bool
	send           SendFunc
}

// ClientOptions holds configuration applied by [New].
type ClientOptions struct {
	// APIKey is the credential placed in the Authorization header. HasAPIKey
	// distinguishes an empty key from no key at all.
	APIKey    string
	HasAPIKey bool

	HTTPClient     *http.Client
	Observer       observability.Provider
	Middlewares    []Middleware
	GetBodyAsQuery bool
}

// Option configures a Client.
type Option func(*ClientOptions)

// WithAPIKey sets the API key sent in the Authorization header. A leading
// case-insensitive "bearer" followed by whitespace is removed and no scheme is
// added back, so "Bearer abc", "bearer abc" and "abc" all send
// "Authorization: abc". This is what AGiXT servers accept.
func WithAPIKey(key string) Option {
	return func(o *ClientOptions) {
		o.APIKey = key
		o.HasAPIKey = true
	}
}

// WithHTTPClient sets the HTTP client used for every call. The default is a
// plain &http.Client{} without timeout; bound calls with the context or the
// timeout middleware instead.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *ClientOptions) {
		o.HTTPClient = httpClient
	}
}

// WithObserver enables tracing, metrics and logging for every call.
func WithObserver(observer observability.Provider) Option {
	return func(o *ClientOptions) {
		o.Observer = observer
	}
}

// WithMiddleware appends middlewares to the call chain. The first middleware
// is the outermost wrapper. Calling WithMiddleware more than once accumulates.
func WithMiddleware(middlewares ...Middleware) Option {
	return func(o *ClientOptions) {
		o.Middlewares = append(o.Middlewares, middlewares...)
	}
}

// WithGetBodyAsQuery makes GetConversation send its fields as URL query
// parameters instead of a JSON body on a GET request. Use it when a proxy or
// HTTP stack between the client and the server drops GET bodies.
func WithGetBodyAsQuery() Option {
	return func(o *ClientOptions) {
		o.GetBodyAsQuery = true
	}
}

// New creates a Client for the server at baseURI. A trailing "/" is appended
// when missing. No network I/O happens here.
//
// It returns a [*ConfigError] when baseURI is not an absolute URL, when the
// API key cannot be carried in an HTTP header, or when a middleware is nil.
func New(baseURI string, opts ...Option) (*Client, error) {
	options := &ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	parsed, err := url.Parse(baseURI)
	if err != nil {
		return nil, &ConfigError{Field: "base_uri", Err: err}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, &ConfigError{Field: "base_uri", Err: fmt.Errorf("%q is not an absolute URL", baseURI)}
	}
	if !strings.HasSuffix(baseURI, "/") {
		baseURI += "/"
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	if options.HasAPIKey {
		key := stripBearer(options.APIKey)
		if !validAPIKey(key) {
			return nil, &ConfigError{Field: "api_key", Err: ErrInvalidHeaderValue}
		}
		header.Set("Authorization", key)
	}

	for i, mw := range options.Middlewares {
		if mw == nil {
			return nil, &ConfigError{Field: "middleware", Err: fmt.Errorf("middleware at index %d is nil", i)}
		}
	}

	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	c := &Client{
		baseURI:        baseURI,
		header:         header,
		httpClient:     httpClient,
		observer:       options.Observer,
		getBodyAsQuery: options.GetBodyAsQuery,
	}
	c.send = buildSendChain(c.transport, options.Middlewares)

	return c, nil
}

// BaseURI returns the normalized base URI, always ending in "/".
func (c *Client) BaseURI() string {
	return c.baseURI
}

// Header returns a copy of the headers sent with every call.
func (c *Client) Header() http.Header {
	return c.header.Clone()
}

// validAPIKey accepts visible ASCII, space and tab only. httpguts admits
// obs-text bytes above 0x7e, which servers decode inconsistently.
func validAPIKey(key string) bool {
	if !httpguts.ValidHeaderFieldValue(key) {
		return false
	}
	for i := 0; i < len(key); i++ {
		if key[i] > 0x7e {
			return false
		}
	}
	return true
}

// stripBearer removes a leading case-insensitive "bearer" followed by at least
// one whitespace character.
func stripBearer(key string) string {
	const scheme = "bearer"
	if len(key) <= len(scheme) || !strings.EqualFold(key[:len(scheme)], scheme) {
		return key
	}
	rest := key[len(scheme):]
	trimmed := strings.TrimLeft(rest, " \t\r\n")
	if len(trimmed) == len(rest) {
		return key
	}
	return trimmed
}

// transport is the innermost SendFunc: one HTTP round trip.
func (c *Client) transport(ctx context.Context, call *Call) (*Result, error) {
	res, err := utils.Do(ctx, c.httpClient, utils.Request{
		Method: call.Method,
		URL:    call.URL,
		Header: call.Header,
		Body:   call.Body,
	})
	if err != nil {
		return nil, &TransportError{
			Operation: call.Operation,
			Method:    call.Method,
			URL:       call.URL,
			Err:       err,
		}
	}

	if !utils.IsSuccess(res.StatusCode) {
		return nil, &TransportError{
			Operation:  call.Operation,
			Method:     call.Method,
			URL:        call.URL,
			StatusCode: res.StatusCode,
			Body:       string(res.Body),
			Message:    utils.RenderErrorBody(res.Header.Get("Content-Type"), res.Body, errorBodyMaxLen),
			Err:        ErrStatus,
		}
	}

	return &Result{StatusCode: res.StatusCode, Header: res.Header, Body: res.Body}, nil
}

// errorType classifies err for metrics.
func errorType(err error) string {
	var (
		configErr    *ConfigError
		transportErr *TransportError
		decodeErr    *DecodeError
	)
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "deadline_exceeded"
	case errors.As(err, &transportErr):
		if transportErr.StatusCode != 0 {
			return "status"
		}
		return "transport"
	case errors.As(err, &decodeErr):
		return "decode"
	case errors.As(err, &configErr):
		return "config"
	default:
		return "other"
	}
}
