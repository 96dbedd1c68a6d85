package client

import "github.com/leofalp/agixt-go/core/jsonmap"

// Request bodies. Field order matches the wire documents the server expects.

type agentRequest struct {
	AgentName string         `json:"agent_name"`
	Settings  jsonmap.Object `json:"settings"`
}

type importAgentRequest struct {
	AgentName string         `json:"agent_name"`
	Settings  jsonmap.Object `json:"settings"`
	Commands  jsonmap.Object `json:"commands"`
}

type renameAgentRequest struct {
	NewName string `json:"new_name"`
}

type agentCommandsRequest struct {
	AgentName string         `json:"agent_name"`
	Commands  jsonmap.Object `json:"commands"`
}

type getConversationRequest struct {
	ConversationName string `json:"conversation_name"`
	AgentName        string `json:"agent_name"`
	Limit            int    `json:"limit"`
	Page             int    `json:"page"`
}

type newConversationRequest struct {
	ConversationName    string           `json:"conversation_name"`
	AgentName           string           `json:"agent_name"`
	ConversationContent []jsonmap.Object `json:"conversation_content"`
}

type conversationRequest struct {
	ConversationName string `json:"conversation_name"`
	AgentName        string `json:"agent_name"`
}

type deleteMessageRequest struct {
	Message          string `json:"message"`
	AgentName        string `json:"agent_name"`
	ConversationName string `json:"conversation_name"`
}

type updateMessageRequest struct {
	Message          string `json:"message"`
	NewMessage       string `json:"new_message"`
	AgentName        string `json:"agent_name"`
	ConversationName string `json:"conversation_name"`
}

type promptRequest struct {
	PromptName string         `json:"prompt_name"`
	PromptArgs jsonmap.Object `json:"prompt_args"`
}
