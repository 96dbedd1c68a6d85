package middleware

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/leofalp/agixt-go/core/client"
)

// ========== Helpers ==========

func testCall() *client.Call {
	return &client.Call{
		Operation: "update_agent_settings",
		Method:    http.MethodPut,
		URL:       "http://localhost:7437/api/agent/a1",
		Header:    http.Header{"Authorization": {"secret-key"}},
		Body:      []byte(`{"agent_name":"a1","settings":{}}`),
	}
}

// makeSendFunc returns a SendFunc that sleeps for the given duration before
// returning, simulating a slow server.
func makeSendFunc(sleep time.Duration, result *client.Result, err error) client.SendFunc {
	return func(ctx context.Context, _ *client.Call) (*client.Result, error) {
		select {
		case <-time.After(sleep):
			return result, err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func okResult() *client.Result {
	return &client.Result{StatusCode: http.StatusOK, Body: []byte(`{"message":"ok"}`)}
}

// logEntries decodes JSON log lines written by slog.NewJSONHandler.
func logEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func newJSONLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// ========== Timeout ==========

// TestTimeoutMiddleware_CompletesBeforeTimeout verifies that a fast server
// returns its result successfully.
func TestTimeoutMiddleware_CompletesBeforeTimeout(t *testing.T) {
	chain := NewTimeoutMiddleware(100 * time.Millisecond)(makeSendFunc(0, okResult(), nil))

	result, err := chain(context.Background(), testCall())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
}

// TestTimeoutMiddleware_ExceedsTimeout verifies that a slow server causes a
// DeadlineExceeded error.
func TestTimeoutMiddleware_ExceedsTimeout(t *testing.T) {
	chain := NewTimeoutMiddleware(20 * time.Millisecond)(makeSendFunc(time.Second, okResult(), nil))

	_, err := chain(context.Background(), testCall())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestTimeoutMiddleware_ParentDeadlineWins verifies that a shorter caller
// deadline is honored.
func TestTimeoutMiddleware_ParentDeadlineWins(t *testing.T) {
	var deadline time.Time
	inspect := func(ctx context.Context, _ *client.Call) (*client.Result, error) {
		deadline, _ = ctx.Deadline()
		return okResult(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	parent, _ := ctx.Deadline()

	_, err := NewTimeoutMiddleware(time.Hour)(inspect)(ctx, testCall())
	require.NoError(t, err)
	assert.Equal(t, parent, deadline)
}

// TestTimeoutMiddleware_Disabled verifies a non-positive timeout adds no deadline.
func TestTimeoutMiddleware_Disabled(t *testing.T) {
	var hasDeadline bool
	inspect := func(ctx context.Context, _ *client.Call) (*client.Result, error) {
		_, hasDeadline = ctx.Deadline()
		return okResult(), nil
	}

	_, err := NewTimeoutMiddleware(0)(inspect)(context.Background(), testCall())
	require.NoError(t, err)
	assert.False(t, hasDeadline)
}

// ========== Rate limit ==========

// TestRateLimitMiddleware_Burst verifies that calls within the burst pass
// immediately.
func TestRateLimitMiddleware_Burst(t *testing.T) {
	calls := 0
	next := func(context.Context, *client.Call) (*client.Result, error) {
		calls++
		return okResult(), nil
	}
	chain := NewRateLimitMiddleware(1, 3)(next)

	start := time.Now()
	for range 3 {
		_, err := chain(context.Background(), testCall())
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

// TestRateLimitMiddleware_WaitAborted verifies that a call whose deadline ends
// before a token is available fails without reaching the server.
func TestRateLimitMiddleware_WaitAborted(t *testing.T) {
	calls := 0
	next := func(context.Context, *client.Call) (*client.Result, error) {
		calls++
		return okResult(), nil
	}
	chain := NewRateLimitMiddleware(0.1, 1)(next)

	_, err := chain(context.Background(), testCall())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = chain(ctx, testCall())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimitWait)
	assert.Contains(t, err.Error(), "update_agent_settings")
	assert.Equal(t, 1, calls)
}

// TestRateLimitMiddleware_Canceled verifies a canceled context is reported as
// such.
func TestRateLimitMiddleware_Canceled(t *testing.T) {
	chain := NewRateLimitMiddleware(1, 1)(makeSendFunc(0, okResult(), nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := chain(ctx, testCall())
	assert.ErrorIs(t, err, ErrRateLimitWait)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestRateLimitMiddleware_Disabled verifies a non-positive rate passes calls
// straight through.
func TestRateLimitMiddleware_Disabled(t *testing.T) {
	next := func(ctx context.Context, _ *client.Call) (*client.Result, error) {
		return nil, ctx.Err()
	}
	chain := NewRateLimitMiddleware(0, 0)(next)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := chain(ctx, testCall())
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrRateLimitWait)
}

// TestRateLimitMiddleware_SharedLimiter verifies two chains share one budget.
func TestRateLimitMiddleware_SharedLimiter(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(0.1), 1)
	first := NewRateLimitMiddlewareWithLimiter(limiter)(makeSendFunc(0, okResult(), nil))
	second := NewRateLimitMiddlewareWithLimiter(limiter)(makeSendFunc(0, okResult(), nil))

	_, err := first(context.Background(), testCall())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = second(ctx, testCall())
	assert.ErrorIs(t, err, ErrRateLimitWait)
}

// ========== Logging ==========

// TestLoggingMiddleware_Standard verifies the start and completion entries
// share a call id and carry the standard attributes.
func TestLoggingMiddleware_Standard(t *testing.T) {
	var buf bytes.Buffer
	chain := NewLoggingMiddleware(newJSONLogger(&buf), LogLevelStandard)(makeSendFunc(0, okResult(), nil))

	_, err := chain(context.Background(), testCall())
	require.NoError(t, err)

	entries := logEntries(t, &buf)
	require.Len(t, entries, 2)

	start, done := entries[0], entries[1]
	assert.Equal(t, "agixt call", start["msg"])
	assert.Equal(t, "update_agent_settings", start["operation"])
	assert.Equal(t, http.MethodPut, start["method"])
	assert.Equal(t, "http://localhost:7437/api/agent/a1", start["url"])
	assert.NotContains(t, start, "request_body")

	assert.Equal(t, "agixt call completed", done["msg"])
	assert.Equal(t, float64(http.StatusOK), done["status"])
	assert.Contains(t, done, "duration")

	callID, ok := start["call_id"].(string)
	require.True(t, ok)
	_, err = uuid.Parse(callID)
	assert.NoError(t, err)
	assert.Equal(t, callID, done["call_id"])

	assert.NotContains(t, buf.String(), "secret-key")
}

// TestLoggingMiddleware_Minimal verifies Minimal level omits HTTP details.
func TestLoggingMiddleware_Minimal(t *testing.T) {
	var buf bytes.Buffer
	chain := NewLoggingMiddleware(newJSONLogger(&buf), LogLevelMinimal)(makeSendFunc(0, okResult(), nil))

	_, err := chain(context.Background(), testCall())
	require.NoError(t, err)

	for _, entry := range logEntries(t, &buf) {
		assert.NotContains(t, entry, "url")
		assert.NotContains(t, entry, "status")
		assert.Contains(t, entry, "call_id")
	}
}

// TestLoggingMiddleware_Verbose verifies bodies are logged at Verbose level.
func TestLoggingMiddleware_Verbose(t *testing.T) {
	var buf bytes.Buffer
	chain := NewLoggingMiddleware(newJSONLogger(&buf), LogLevelVerbose)(makeSendFunc(0, okResult(), nil))

	_, err := chain(context.Background(), testCall())
	require.NoError(t, err)

	entries := logEntries(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, `{"agent_name":"a1","settings":{}}`, entries[0]["request_body"])
	assert.Equal(t, `{"message":"ok"}`, entries[1]["response_body"])
}

// TestLoggingMiddleware_Error verifies failures are logged at error level with
// the HTTP status and returned unchanged.
func TestLoggingMiddleware_Error(t *testing.T) {
	var buf bytes.Buffer
	failure := &client.TransportError{
		Operation:  "update_agent_settings",
		Method:     http.MethodPut,
		URL:        "http://localhost:7437/api/agent/a1",
		StatusCode: http.StatusNotFound,
		Err:        client.ErrStatus,
	}
	chain := NewLoggingMiddleware(newJSONLogger(&buf), LogLevelStandard)(makeSendFunc(0, nil, failure))

	_, err := chain(context.Background(), testCall())
	assert.Same(t, failure, err)

	entries := logEntries(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "ERROR", entries[1]["level"])
	assert.Equal(t, "agixt call failed", entries[1]["msg"])
	assert.Equal(t, float64(http.StatusNotFound), entries[1]["status"])
	assert.True(t, strings.Contains(entries[1]["error"].(string), "status 404"))
}
