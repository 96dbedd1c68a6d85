package client

import (
	"context"
	"net/http"

	"github.com/leofalp/agixt-go/core/jsonmap"
	"github.com/leofalp/agixt-go/providers/observability"
)

// Prompt names used by the convenience methods.
const (
	PromptInstruct = "instruct"
	PromptChat     = "Chat"
)

// PromptAgent runs the named prompt template on an agent and returns the
// agent's response text. args is forwarded untouched; a nil args object is
// sent as {}.
func (c *Client) PromptAgent(ctx context.Context, agentName, promptName string, args jsonmap.Object) (string, error) {
	return fetch[string](ctx, c, request{
		operation: "prompt_agent",
		method:    http.MethodPost,
		path:      "api/agent/" + agentName + "/prompt",
		body:      promptRequest{PromptName: promptName, PromptArgs: args},
		attrs: []observability.Attribute{
			agentAttr(agentName),
			observability.String(observability.AttrAGiXTPrompt, promptName),
		},
	}, "response")
}

// Instruct runs the "instruct" prompt with memory disabled.
func (c *Client) Instruct(ctx context.Context, agentName, userInput, conversation string) (string, error) {
	return c.PromptAgent(ctx, agentName, PromptInstruct, jsonmap.Object{
		jsonmap.String("user_input", userInput),
		jsonmap.Bool("disable_memory", true),
		jsonmap.String("conversation_name", conversation),
	})
}

// Chat runs the "Chat" prompt with memory disabled, injecting contextResults
// memory results into the prompt.
func (c *Client) Chat(ctx context.Context, agentName, userInput, conversation string, contextResults int) (string, error) {
	return c.PromptAgent(ctx, agentName, PromptChat, jsonmap.Object{
		jsonmap.String("user_input", userInput),
		jsonmap.Int("context_results", contextResults),
		jsonmap.String("conversation_name", conversation),
		jsonmap.Bool("disable_memory", true),
	})
}

// SmartInstruct is Instruct.
func (c *Client) SmartInstruct(ctx context.Context, agentName, userInput, conversation string) (string, error) {
	return c.Instruct(ctx, agentName, userInput, conversation)
}

// SmartChat is Chat with a single context result.
func (c *Client) SmartChat(ctx context.Context, agentName, userInput, conversation string) (string, error) {
	return c.Chat(ctx, agentName, userInput, conversation, 1)
}
