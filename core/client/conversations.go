package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/leofalp/agixt-go/core/jsonmap"
	"github.com/leofalp/agixt-go/providers/observability"
)

func conversationAttrs(agentName, conversationName string) []observability.Attribute {
	return []observability.Attribute{
		agentAttr(agentName),
		observability.String(observability.AttrAGiXTConversation, conversationName),
	}
}

// GetConversations lists conversation names. An empty agentName lists every
// conversation on the server; otherwise only those of that agent.
func (c *Client) GetConversations(ctx context.Context, agentName string) ([]string, error) {
	path := "api/conversations"
	var attrs []observability.Attribute
	if agentName != "" {
		path = "api/" + agentName + "/conversations"
		attrs = append(attrs, agentAttr(agentName))
	}

	return fetch[[]string](ctx, c, request{
		operation: "get_conversations",
		method:    http.MethodGet,
		path:      path,
		attrs:     attrs,
	}, "conversations")
}

// GetConversation returns one page of a conversation's history. limit and
// page are forwarded to the server as given.
//
// The server reads these parameters from a JSON body on a GET request. When
// the client was built with [WithGetBodyAsQuery] they are sent as query
// parameters instead.
func (c *Client) GetConversation(ctx context.Context, agentName, conversationName string, limit, page int) ([]jsonmap.Object, error) {
	req := request{
		operation: "get_conversation",
		method:    http.MethodGet,
		path:      "api/conversation",
		attrs:     conversationAttrs(agentName, conversationName),
	}

	if c.getBodyAsQuery {
		req.query = url.Values{
			"conversation_name": {conversationName},
			"agent_name":        {agentName},
			"limit":             {strconv.Itoa(limit)},
			"page":              {strconv.Itoa(page)},
		}
	} else {
		req.body = getConversationRequest{
			ConversationName: conversationName,
			AgentName:        agentName,
			Limit:            limit,
			Page:             page,
		}
	}

	return fetch[[]jsonmap.Object](ctx, c, req, "conversation_history")
}

// NewConversation creates a conversation seeded with content, which may be
// empty, and returns the resulting history.
func (c *Client) NewConversation(ctx context.Context, agentName, conversationName string, content []jsonmap.Object) ([]jsonmap.Object, error) {
	if content == nil {
		content = []jsonmap.Object{}
	}

	return fetch[[]jsonmap.Object](ctx, c, request{
		operation: "new_conversation",
		method:    http.MethodPost,
		path:      "api/conversation",
		body: newConversationRequest{
			ConversationName:    conversationName,
			AgentName:           agentName,
			ConversationContent: content,
		},
		attrs: conversationAttrs(agentName, conversationName),
	}, "conversation_history")
}

// DeleteConversation deletes a conversation and returns the server's message.
func (c *Client) DeleteConversation(ctx context.Context, agentName, conversationName string) (string, error) {
	return fetch[string](ctx, c, request{
		operation: "delete_conversation",
		method:    http.MethodDelete,
		path:      "api/conversation",
		body:      conversationRequest{ConversationName: conversationName, AgentName: agentName},
		attrs:     conversationAttrs(agentName, conversationName),
	}, "message")
}

// DeleteConversationMessage deletes a message from a conversation and returns
// the server's message.
//
// The message is identified by its literal text. When several messages of the
// conversation share that text, which one the server deletes is up to the
// server.
func (c *Client) DeleteConversationMessage(ctx context.Context, agentName, conversationName, message string) (string, error) {
	return fetch[string](ctx, c, request{
		operation: "delete_conversation_message",
		method:    http.MethodDelete,
		path:      "api/conversation/message",
		body: deleteMessageRequest{
			Message:          message,
			AgentName:        agentName,
			ConversationName: conversationName,
		},
		attrs: conversationAttrs(agentName, conversationName),
	}, "message")
}

// UpdateConversationMessage replaces the text of a message and returns the
// server's message.
//
// Like [Client.DeleteConversationMessage], the target is identified by its
// current literal text, so duplicate texts make the target ambiguous.
func (c *Client) UpdateConversationMessage(ctx context.Context, agentName, conversationName, message, newMessage string) (string, error) {
	return fetch[string](ctx, c, request{
		operation: "update_conversation_message",
		method:    http.MethodPut,
		path:      "api/conversation/message",
		body: updateMessageRequest{
			Message:          message,
			NewMessage:       newMessage,
			AgentName:        agentName,
			ConversationName: conversationName,
		},
		attrs: conversationAttrs(agentName, conversationName),
	}, "message")
}
