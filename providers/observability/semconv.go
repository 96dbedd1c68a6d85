package observability

// Semantic conventions shared by the client, its middlewares and observers.

// --- AGiXT Attributes ---

const (
	// AttrAGiXTOperation is the client method name (e.g. "get_agents").
	AttrAGiXTOperation = "agixt.operation"

	// AttrAGiXTAgent is the agent the call targets, when there is one.
	AttrAGiXTAgent = "agixt.agent"

	// AttrAGiXTConversation is the conversation the call targets.
	AttrAGiXTConversation = "agixt.conversation"

	// AttrAGiXTPrompt is the prompt name passed to prompt_agent.
	AttrAGiXTPrompt = "agixt.prompt"

	// AttrAGiXTField is the envelope field projected as the call result.
	AttrAGiXTField = "agixt.field"

	// AttrAGiXTCallID is the client-side correlation id of a single call.
	AttrAGiXTCallID = "agixt.call.id"
)

// --- HTTP Attributes ---

const (
	AttrHTTPMethod           = "http.method"
	AttrHTTPStatusCode       = "http.status_code"
	AttrHTTPURL              = "http.url"
	AttrHTTPRequestBodySize  = "http.request.body.size"
	AttrHTTPResponseBodySize = "http.response.body.size"
	AttrHTTPDuration         = "http.request.duration"
)

// --- General Attributes ---

const (
	AttrError             = "error"
	AttrErrorType         = "error.type"
	AttrDuration          = "duration"
	AttrStatus            = "status"
	AttrStatusDescription = "status_description"
)

// --- Span Names ---

const (
	// SpanAGiXTRequest wraps one client method call.
	SpanAGiXTRequest = "agixt.request"
)

// --- Event Names ---

const (
	EventHTTPRequestPrepared = "http.request.prepared"
	EventHTTPRequestError    = "http.request.error"
	EventHTTPResponse        = "http.response.received"
)

// --- Metric Names ---

const (
	// MetricClientRequestCount counts client calls, tagged with operation and status.
	MetricClientRequestCount = "agixt.client.request.count"

	// MetricClientRequestDuration records call latency in seconds.
	MetricClientRequestDuration = "agixt.client.request.duration"

	// MetricClientErrorCount counts failed calls, tagged with the error type.
	MetricClientErrorCount = "agixt.client.error.count"
)
