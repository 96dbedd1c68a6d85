package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type seenRequest struct {
	method string
	path   string
	auth   string
	body   string
}

// newAGiXTServer serves canned envelopes per route and records requests.
func newAGiXTServer(t *testing.T) (*httptest.Server, func() []seenRequest) {
	t.Helper()

	var (
		mu   sync.Mutex
		seen []seenRequest
	)
	routes := map[string]string{
		"GET /api/provider":                `{"providers":["openai","gpt4free"]}`,
		"GET /api/agent":                   `{"agents":[{"name":"a1","status":false}]}`,
		"GET /api/conversations":           `{"conversations":["c1"]}`,
		"GET /api/agent/a1":                `{"agent":{"settings":{"provider":"openai"}}}`,
		"POST /api/agent":                  `{"message":"Agent added"}`,
		"PUT /api/agent/a1":                `{"message":"Agent a1 configuration updated."}`,
		"DELETE /api/agent/a1":             `{"message":"Agent a1 deleted."}`,
		"POST /api/conversation":           `{"conversation_history":[]}`,
		"POST /api/agent/a1/prompt":        `{"response":"hello there"}`,
		"DELETE /api/conversation/message": `{"message":"Message deleted"}`,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		seen = append(seen, seenRequest{method: r.Method, path: r.URL.Path, auth: r.Header.Get("Authorization"), body: string(body)})
		mu.Unlock()

		response, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			http.Error(w, `{"detail":"Not Found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)

	return srv, func() []seenRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]seenRequest(nil), seen...)
	}
}

func envFrom(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func runCLI(t *testing.T, env map[string]string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, envFrom(env), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// TestRun_ProvidersJSON verifies the default JSON output of a listing.
func TestRun_ProvidersJSON(t *testing.T) {
	srv, _ := newAGiXTServer(t)

	code, stdout, stderr := runCLI(t, nil, "-uri", srv.URL, "providers")
	require.Equal(t, exitOK, code, stderr)

	var providers []string
	require.NoError(t, json.Unmarshal([]byte(stdout), &providers))
	assert.Equal(t, []string{"openai", "gpt4free"}, providers)
}

// TestRun_EnvConfig verifies AGIXT_URI and AGIXT_API_KEY are honored and the
// bearer prefix is stripped.
func TestRun_EnvConfig(t *testing.T) {
	srv, seen := newAGiXTServer(t)

	code, _, stderr := runCLI(t, map[string]string{
		"AGIXT_URI":     srv.URL,
		"AGIXT_API_KEY": "Bearer token-1",
	}, "agents")
	require.Equal(t, exitOK, code, stderr)

	requests := seen()
	require.Len(t, requests, 1)
	assert.Equal(t, "token-1", requests[0].auth)
}

// TestRun_FlagOverridesEnv verifies global flags take precedence over the
// environment.
func TestRun_FlagOverridesEnv(t *testing.T) {
	srv, seen := newAGiXTServer(t)

	code, _, stderr := runCLI(t, map[string]string{
		"AGIXT_URI":     "http://127.0.0.1:1",
		"AGIXT_API_KEY": "from-env",
	}, "-uri", srv.URL, "-key", "from-flag", "agents")
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "from-flag", seen()[0].auth)
}

// TestRun_YAMLOutput verifies YAML output keeps object member order.
func TestRun_YAMLOutput(t *testing.T) {
	srv, _ := newAGiXTServer(t)

	code, stdout, stderr := runCLI(t, nil, "-uri", srv.URL, "-output", "yaml", "agents")
	require.Equal(t, exitOK, code, stderr)

	assert.Contains(t, stdout, "- name: a1\n")
	assert.Less(t, strings.Index(stdout, "name:"), strings.Index(stdout, "status:"))

	var agents []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &agents))
	assert.Equal(t, "a1", agents[0]["name"])
}

// TestRun_TextOutput verifies strings and string lists print bare.
func TestRun_TextOutput(t *testing.T) {
	srv, _ := newAGiXTServer(t)

	code, stdout, stderr := runCLI(t, nil, "-uri", srv.URL, "-output", "text", "providers")
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "openai\ngpt4free\n", stdout)

	code, stdout, stderr = runCLI(t, nil, "-uri", srv.URL, "-output", "text", "delete-agent", "a1")
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "Agent a1 deleted.\n", stdout)
}

// TestRun_UpdateAgentSettings verifies relaxed JSON flags are repaired and
// forwarded in order.
func TestRun_UpdateAgentSettings(t *testing.T) {
	srv, seen := newAGiXTServer(t)

	code, _, stderr := runCLI(t, nil, "-uri", srv.URL,
		"update-agent-settings", "-settings", `{provider: 'openai', AI_MODEL: 'gpt-4',}`, "a1")
	require.Equal(t, exitOK, code, stderr)

	requests := seen()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPut, requests[0].method)
	assert.JSONEq(t, `{"agent_name":"a1","settings":{"provider":"openai","AI_MODEL":"gpt-4"}}`, requests[0].body)
	assert.Less(t, strings.Index(requests[0].body, "provider"), strings.Index(requests[0].body, "AI_MODEL"))
}

// TestRun_Prompt verifies key=value arguments are typed and merged with -args.
func TestRun_Prompt(t *testing.T) {
	srv, seen := newAGiXTServer(t)

	code, stdout, stderr := runCLI(t, nil, "-uri", srv.URL, "-output", "text",
		"prompt", "-args", `{"websearch": false}`, "a1", "Think About It", "user_input=why not", "context_results=3")
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "hello there\n", stdout)

	assert.JSONEq(t,
		`{"prompt_name":"Think About It","prompt_args":{"websearch":false,"user_input":"why not","context_results":3}}`,
		seen()[0].body)
}

// TestRun_Chat verifies the chat command sends the Chat prompt arguments.
func TestRun_Chat(t *testing.T) {
	srv, seen := newAGiXTServer(t)

	code, _, stderr := runCLI(t, nil, "-uri", srv.URL,
		"chat", "-conversation", "c1", "-context-results", "3", "a1", "hi")
	require.Equal(t, exitOK, code, stderr)

	assert.JSONEq(t,
		`{"prompt_name":"Chat","prompt_args":{"user_input":"hi","context_results":3,"conversation_name":"c1","disable_memory":true}}`,
		seen()[0].body)
}

// TestRun_NewConversationDefaultName verifies a random name is generated when
// none is given.
func TestRun_NewConversationDefaultName(t *testing.T) {
	srv, seen := newAGiXTServer(t)

	code, _, stderr := runCLI(t, nil, "-uri", srv.URL, "new-conversation", "a1")
	require.Equal(t, exitOK, code, stderr)

	var body struct {
		ConversationName    string            `json:"conversation_name"`
		ConversationContent []json.RawMessage `json:"conversation_content"`
	}
	require.NoError(t, json.Unmarshal([]byte(seen()[0].body), &body))
	assert.True(t, strings.HasPrefix(body.ConversationName, "conversation-"))
	assert.NotNil(t, body.ConversationContent)
	assert.Empty(t, body.ConversationContent)
}

// TestRun_Status verifies the concurrent status command combines three calls.
func TestRun_Status(t *testing.T) {
	srv, seen := newAGiXTServer(t)

	code, stdout, stderr := runCLI(t, nil, "-uri", srv.URL, "status")
	require.Equal(t, exitOK, code, stderr)

	var got struct {
		URI           string           `json:"uri"`
		Providers     []string         `json:"providers"`
		Agents        []map[string]any `json:"agents"`
		Conversations []string         `json:"conversations"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, srv.URL+"/", got.URI)
	assert.Equal(t, []string{"openai", "gpt4free"}, got.Providers)
	assert.Len(t, got.Agents, 1)
	assert.Equal(t, []string{"c1"}, got.Conversations)
	assert.Len(t, seen(), 3)
}

// TestRun_ServerError verifies a non-2xx answer exits with 1 and reports the
// status on stderr.
func TestRun_ServerError(t *testing.T) {
	srv, _ := newAGiXTServer(t)

	code, stdout, stderr := runCLI(t, nil, "-uri", srv.URL, "agent-config", "missing")
	assert.Equal(t, exitError, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "status 404")
}

// TestRun_UsageErrors covers malformed command lines.
func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
		want string
	}{
		{"no command", nil, nil, "Usage: agixt"},
		{"unknown command", nil, []string{"nope"}, `unknown command "nope"`},
		{"missing argument", nil, []string{"delete-agent"}, "takes 1 argument(s)"},
		{"bad output", nil, []string{"-output", "xml", "agents"}, "invalid -output"},
		{"bad prompt pair", nil, []string{"prompt", "a1", "p", "novalue"}, "not key=value"},
		{"bad timeout env", map[string]string{"AGIXT_TIMEOUT": "soon"}, []string{"agents"}, "invalid AGIXT_TIMEOUT"},
		{"bad api key", nil, []string{"-key", "a\nb", "agents"}, "invalid api_key"},
		{"bad settings", nil, []string{"add-agent", "-settings", "[1,2]", "a1"}, "invalid -settings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.env, tt.args...)
			assert.NotEqual(t, exitOK, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

// TestRun_Help verifies -h prints usage and succeeds.
func TestRun_Help(t *testing.T) {
	code, stdout, _ := runCLI(t, nil, "-h")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "update-agent-commands")
	assert.Contains(t, stdout, "-output")
}

// TestRun_Timeout verifies the -timeout flag bounds slow calls.
func TestRun_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)

	code, _, stderr := runCLI(t, nil, "-uri", srv.URL, "-timeout", "50ms", "providers")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "deadline exceeded")
}
