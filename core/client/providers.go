package client

import (
	"context"
	"net/http"

	"github.com/leofalp/agixt-go/core/jsonmap"
)

// GetProviders lists the names of the providers known to the server.
func (c *Client) GetProviders(ctx context.Context) ([]string, error) {
	return fetch[[]string](ctx, c, request{
		operation: "get_providers",
		method:    http.MethodGet,
		path:      "api/provider",
	}, "providers")
}

// GetProvidersByService lists the providers that implement service,
// e.g. "llm" or "tts".
func (c *Client) GetProvidersByService(ctx context.Context, service string) ([]string, error) {
	return fetch[[]string](ctx, c, request{
		operation: "get_providers_by_service",
		method:    http.MethodGet,
		path:      "api/providers/service/" + service,
	}, "providers")
}

// GetProviderSettings returns the default settings of the named provider.
func (c *Client) GetProviderSettings(ctx context.Context, providerName string) (jsonmap.Object, error) {
	return fetch[jsonmap.Object](ctx, c, request{
		operation: "get_provider_settings",
		method:    http.MethodGet,
		path:      "api/provider/" + providerName,
	}, "settings")
}

// GetEmbedProviders lists the providers that can compute embeddings.
func (c *Client) GetEmbedProviders(ctx context.Context) ([]string, error) {
	return fetch[[]string](ctx, c, request{
		operation: "get_embed_providers",
		method:    http.MethodGet,
		path:      "api/embedding_providers",
	}, "providers")
}

// GetEmbedders returns the embedder descriptions keyed by name.
func (c *Client) GetEmbedders(ctx context.Context) (jsonmap.Object, error) {
	return fetch[jsonmap.Object](ctx, c, request{
		operation: "get_embedders",
		method:    http.MethodGet,
		path:      "api/embedders",
	}, "embedders")
}
