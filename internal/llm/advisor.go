package llm

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/ideacrafter/ideacrafter/internal/config"
	"github.com/ideacrafter/ideacrafter/internal/domain"
	"github.com/ideacrafter/ideacrafter/internal/logger"
	"github.com/sashabaranov/go-openai"
)

const (
	maxReplyTokens = 500
	maxTitleTokens = 15

	titleTemperature = 0.3
)

// Fallback strings returned when the provider yields an empty completion.
const (
	ReplyFallback = "Sorry, I couldn't generate a response."
	TitleFallback = "New Conversation"
)

// Advisor issues the two completion calls of a chat turn: the streamed main
// reply and, for new conversations, a short non-streaming title request.
// It holds no state beyond its client and model name and performs no
// persistence.
type Advisor struct {
	client Client
	model  string
}

// NewAdvisor creates an Advisor on top of a completion client.
func NewAdvisor(client Client, cfg config.LLMConfig) *Advisor {
	return &Advisor{client: client, model: cfg.Model}
}

// GenerateReply sends the system prompt plus the full prior message sequence
// and aggregates the streamed completion into one string. An empty result is
// replaced by ReplyFallback. Errors are categorized, never retried.
func (a *Advisor) GenerateReply(ctx context.Context, systemPrompt string, history []domain.Message, temperature float32) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	stream, err := a.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxReplyTokens,
		Stream:      true,
	})
	if err != nil {
		logger.L.Error("completion stream request failed", "error", err)
		return "", Categorize(err)
	}
	defer func() {
		if cerr := stream.Close(); cerr != nil {
			logger.L.Warn("completion stream close error", "error", cerr)
		}
	}()

	var b strings.Builder
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.L.Error("completion stream read failed", "error", err)
			return "", Categorize(err)
		}
		if len(chunk.Choices) > 0 {
			b.WriteString(chunk.Choices[0].Delta.Content)
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return ReplyFallback, nil
	}
	return text, nil
}

// GenerateTitle synthesizes a 3-7 word conversation title from the first
// user message and the reply. Issued on the first turn only; an empty
// completion falls back to TitleFallback.
func (a *Advisor) GenerateTitle(ctx context.Context, titlePrompt string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: titlePrompt},
		},
		Temperature: titleTemperature,
		MaxTokens:   maxTitleTokens,
	})
	if err != nil {
		logger.L.Error("title request failed", "error", err)
		return "", Categorize(err)
	}

	title := ""
	if len(resp.Choices) > 0 {
		title = strings.TrimSpace(resp.Choices[0].Message.Content)
	}
	if title == "" {
		return TitleFallback, nil
	}
	return title, nil
}
