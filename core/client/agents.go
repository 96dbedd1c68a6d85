package client

import (
	"context"
	"net/http"

	"github.com/leofalp/agixt-go/core/jsonmap"
	"github.com/leofalp/agixt-go/providers/observability"
)

func agentAttr(name string) observability.Attribute {
	return observability.String(observability.AttrAGiXTAgent, name)
}

// AddAgent creates an agent. settings is forwarded untouched; a nil settings
// object is sent as {}. The whole response document is returned.
func (c *Client) AddAgent(ctx context.Context, agentName string, settings jsonmap.Object) (jsonmap.Object, error) {
	return fetch[jsonmap.Object](ctx, c, request{
		operation: "add_agent",
		method:    http.MethodPost,
		path:      "api/agent",
		body:      agentRequest{AgentName: agentName, Settings: settings},
		attrs:     []observability.Attribute{agentAttr(agentName)},
	}, "")
}

// ImportAgent creates an agent with both settings and enabled commands.
// The whole response document is returned.
func (c *Client) ImportAgent(ctx context.Context, agentName string, settings, commands jsonmap.Object) (jsonmap.Object, error) {
	return fetch[jsonmap.Object](ctx, c, request{
		operation: "import_agent",
		method:    http.MethodPost,
		path:      "api/agent/import",
		body:      importAgentRequest{AgentName: agentName, Settings: settings, Commands: commands},
		attrs:     []observability.Attribute{agentAttr(agentName)},
	}, "")
}

// RenameAgent renames agentName to newName. The whole response document is
// returned.
func (c *Client) RenameAgent(ctx context.Context, agentName, newName string) (jsonmap.Object, error) {
	return fetch[jsonmap.Object](ctx, c, request{
		operation: "rename_agent",
		method:    http.MethodPatch,
		path:      "api/agent/" + agentName,
		body:      renameAgentRequest{NewName: newName},
		attrs:     []observability.Attribute{agentAttr(agentName)},
	}, "")
}

// UpdateAgentSettings replaces the settings of an agent and returns the
// server's message.
func (c *Client) UpdateAgentSettings(ctx context.Context, agentName string, settings jsonmap.Object) (string, error) {
	return fetch[string](ctx, c, request{
		operation: "update_agent_settings",
		method:    http.MethodPut,
		path:      "api/agent/" + agentName,
		body:      agentRequest{AgentName: agentName, Settings: settings},
		attrs:     []observability.Attribute{agentAttr(agentName)},
	}, "message")
}

// UpdateAgentCommands replaces the enabled-command map of an agent and returns
// the server's message.
func (c *Client) UpdateAgentCommands(ctx context.Context, agentName string, commands jsonmap.Object) (string, error) {
	return fetch[string](ctx, c, request{
		operation: "update_agent_commands",
		method:    http.MethodPut,
		path:      "api/agent/" + agentName + "/commands",
		body:      agentCommandsRequest{AgentName: agentName, Commands: commands},
		attrs:     []observability.Attribute{agentAttr(agentName)},
	}, "message")
}

// DeleteAgent deletes an agent and returns the server's message.
func (c *Client) DeleteAgent(ctx context.Context, agentName string) (string, error) {
	return fetch[string](ctx, c, request{
		operation: "delete_agent",
		method:    http.MethodDelete,
		path:      "api/agent/" + agentName,
		attrs:     []observability.Attribute{agentAttr(agentName)},
	}, "message")
}

// GetAgents lists all agents as opaque objects.
func (c *Client) GetAgents(ctx context.Context) ([]jsonmap.Object, error) {
	return fetch[[]jsonmap.Object](ctx, c, request{
		operation: "get_agents",
		method:    http.MethodGet,
		path:      "api/agent",
	}, "agents")
}

// GetAgentConfig returns the configuration of one agent.
func (c *Client) GetAgentConfig(ctx context.Context, agentName string) (jsonmap.Object, error) {
	return fetch[jsonmap.Object](ctx, c, request{
		operation: "get_agent_config",
		method:    http.MethodGet,
		path:      "api/agent/" + agentName,
		attrs:     []observability.Attribute{agentAttr(agentName)},
	}, "agent")
}
