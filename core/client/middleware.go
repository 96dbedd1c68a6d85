package client

import (
	"context"
	"net/http"
)

// Call is one HTTP request about to be sent to the AGiXT server. Middlewares
// may inspect or replace it; the Header map is a per-call copy.
type Call struct {
	// Operation is the snake_case name of the client method, e.g. "get_agents".
	Operation string
	Method    string
	URL       string
	Header    http.Header
	// Body is the JSON request body. Nil means no body is sent.
	Body []byte
}

// Result is a fully read 2xx response.
type Result struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// SendFunc sends a Call and returns its result. It is the base unit threaded
// through the middleware chain. Non-2xx answers are reported as
// [*TransportError] by the innermost SendFunc.
type SendFunc func(ctx context.Context, call *Call) (*Result, error)

// Middleware intercepts calls. Each Middleware receives the next SendFunc in
// the chain and returns a new SendFunc that wraps it. Middlewares are applied
// outermost-first: the first middleware passed to [WithMiddleware] is the
// first to see a call and the last to see its result.
type Middleware func(next SendFunc) SendFunc

// buildSendChain wraps base with middlewares so that middlewares[0] is the
// outermost wrapper.
func buildSendChain(base SendFunc, middlewares []Middleware) SendFunc {
	chain := base
	for i := len(middlewares) - 1; i >= 0; i-- {
		chain = middlewares[i](chain)
	}
	return chain
}
