package llm

import (
	"context"

	"github.com/ideacrafter/ideacrafter/internal/config"
	"github.com/sashabaranov/go-openai"
)

// NewClient creates a chat-completion client for the configured provider.
func NewClient(cfg config.LLMConfig) Client {
	apiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiConfig.BaseURL = cfg.BaseURL
	}
	return &apiClient{api: openai.NewClientWithConfig(apiConfig)}
}

// apiClient adapts *openai.Client to the narrow Client interface so the
// stream can be substituted in tests.
type apiClient struct {
	api *openai.Client
}

func (c *apiClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return c.api.CreateChatCompletion(ctx, req)
}

func (c *apiClient) CreateChatCompletionStream(ctx context.Context, req openai.ChatCompletionRequest) (Stream, error) {
	return c.api.CreateChatCompletionStream(ctx, req)
}
