package llm

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/ideacrafter/ideacrafter/internal/config"
	"github.com/ideacrafter/ideacrafter/internal/domain"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStream replays a fixed sequence of deltas, then io.EOF.
type mockStream struct {
	deltas []string
	pos    int
	closed bool
}

func (m *mockStream) Recv() (openai.ChatCompletionStreamResponse, error) {
	if m.pos >= len(m.deltas) {
		return openai.ChatCompletionStreamResponse{}, io.EOF
	}
	delta := m.deltas[m.pos]
	m.pos++
	return openai.ChatCompletionStreamResponse{
		Choices: []openai.ChatCompletionStreamChoice{
			{Delta: openai.ChatCompletionStreamChoiceDelta{Content: delta}},
		},
	}, nil
}

func (m *mockStream) Close() error {
	m.closed = true
	return nil
}

type mockClient struct {
	streamDeltas  []string
	streamErr     error
	lastStreamReq openai.ChatCompletionRequest
	stream        *mockStream

	completion     openai.ChatCompletionResponse
	completionErr  error
	lastCompletion openai.ChatCompletionRequest
}

func (m *mockClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.lastCompletion = req
	if m.completionErr != nil {
		return openai.ChatCompletionResponse{}, m.completionErr
	}
	return m.completion, nil
}

func (m *mockClient) CreateChatCompletionStream(ctx context.Context, req openai.ChatCompletionRequest) (Stream, error) {
	m.lastStreamReq = req
	if m.streamErr != nil {
		return nil, m.streamErr
	}
	m.stream = &mockStream{deltas: m.streamDeltas}
	return m.stream, nil
}

func newTestAdvisor(c Client) *Advisor {
	return NewAdvisor(c, config.LLMConfig{Model: "llama-3.3-70b-versatile"})
}

func TestGenerateReply_ConcatenatesStream(t *testing.T) {
	client := &mockClient{streamDeltas: []string{"Hello", ", ", "world", "!  "}}
	advisor := newTestAdvisor(client)

	history := []domain.Message{{Role: domain.RoleUser, Content: "Hi"}}
	got, err := advisor.GenerateReply(context.Background(), "system prompt", history, 0.7)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world!", got)
	assert.True(t, client.stream.closed, "stream should be closed")

	req := client.lastStreamReq
	assert.Equal(t, 500, req.MaxTokens)
	assert.True(t, req.Stream)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Equal(t, "system prompt", req.Messages[0].Content)
	assert.Equal(t, domain.RoleUser, req.Messages[1].Role)
	assert.InDelta(t, 0.7, req.Temperature, 0.0001)
}

func TestGenerateReply_EmptyStreamFallsBack(t *testing.T) {
	client := &mockClient{streamDeltas: []string{"   ", ""}}
	advisor := newTestAdvisor(client)

	got, err := advisor.GenerateReply(context.Background(), "sys", nil, 0.5)
	require.NoError(t, err)
	assert.Equal(t, ReplyFallback, got)
}

func TestGenerateReply_RateLimitCategorized(t *testing.T) {
	client := &mockClient{streamErr: errors.New("429 rate limit reached for model")}
	advisor := newTestAdvisor(client)

	_, err := advisor.GenerateReply(context.Background(), "sys", nil, 0.5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestGenerateTitle_TrimsAndFallsBack(t *testing.T) {
	client := &mockClient{completion: openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: "  Pitch Deck Feedback  "}},
		},
	}}
	advisor := newTestAdvisor(client)

	got, err := advisor.GenerateTitle(context.Background(), "title prompt")
	require.NoError(t, err)
	assert.Equal(t, "Pitch Deck Feedback", got)
	assert.Equal(t, 15, client.lastCompletion.MaxTokens)
	assert.InDelta(t, 0.3, client.lastCompletion.Temperature, 0.0001)

	client.completion = openai.ChatCompletionResponse{}
	got, err = advisor.GenerateTitle(context.Background(), "title prompt")
	require.NoError(t, err)
	assert.Equal(t, TitleFallback, got)
}

func TestCategorize_Buckets(t *testing.T) {
	cases := []struct {
		msg  string
		want error
	}{
		{"invalid API key provided", ErrConfiguration},
		{"rate limit exceeded, slow down", ErrRateLimited},
		{"the model `x` does not exist", ErrModelUnavailable},
	}
	for _, tc := range cases {
		got := Categorize(errors.New(tc.msg))
		assert.ErrorIs(t, got, tc.want, "message %q", tc.msg)
	}

	plain := errors.New("connection reset by peer")
	assert.Equal(t, plain, Categorize(plain))
	assert.NoError(t, Categorize(nil))
}

func TestUserFacingMessage(t *testing.T) {
	assert.Equal(t, "Rate limit exceeded. Please try again later.", UserFacingMessage(Categorize(errors.New("rate limit"))))
	assert.Equal(t, "API configuration error. Please check your API key.", UserFacingMessage(Categorize(errors.New("bad API key"))))
	assert.Equal(t, "AI model temporarily unavailable. Please try again.", UserFacingMessage(Categorize(errors.New("model is overloaded"))))
	assert.Equal(t, "Something went wrong while generating the response. Please try again.", UserFacingMessage(errors.New("boom")))
}
