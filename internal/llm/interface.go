package llm

import (
	"context"

	"github.com/sashabaranov/go-openai"
)

// Stream is the minimal subset of openai.ChatCompletionStream consumed by
// the advisor; it is easy to mock in tests.
type Stream interface {
	Recv() (openai.ChatCompletionStreamResponse, error)
	Close() error
}

// Client is the minimal subset of openai.Client used by the advisor.
type Client interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	CreateChatCompletionStream(ctx context.Context, req openai.ChatCompletionRequest) (Stream, error)
}
