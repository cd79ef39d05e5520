package utils

import (
	"context"
	"errors"
	"net"
	"net/url"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const completionTimeout = 2 * time.Minute

const systemPrompt = "You are a helpful AI assistant. Respond in a friendly and informative manner."

// CompletionClientInterface is the outbound completion provider. Complete
// returns the response text and the token count the call consumed; failures
// come back as *UpstreamError so callers can branch on the kind.
type CompletionClientInterface interface {
	Complete(ctx context.Context, message, model string) (string, int64, error)
}

type OpenAICompletionClient struct {
	client *openai.Client
}

func NewOpenAICompletionClient(apiKey, baseURL string) *OpenAICompletionClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAICompletionClient{client: openai.NewClientWithConfig(cfg)}
}

func (c *OpenAICompletionClient) Complete(ctx context.Context, message, model string) (string, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		MaxTokens:   maxTokensForModel(model),
		Temperature: 0.7,
	})
	if err != nil {
		return "", 0, classifyCompletionError(err)
	}

	if len(resp.Choices) == 0 {
		return "", 0, NewUpstreamError(UpstreamUnknown, errors.New("empty completion response"))
	}

	text := resp.Choices[0].Message.Content
	tokens := int64(resp.Usage.TotalTokens)
	if tokens == 0 {
		tokens = estimateTokens(message, text)
	}
	return text, tokens, nil
}

func classifyCompletionError(err error) *UpstreamError {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewUpstreamError(UpstreamTimeout, err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return NewUpstreamError(kindForStatus(apiErr.HTTPStatusCode), err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return NewUpstreamError(kindForStatus(reqErr.HTTPStatusCode), err)
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return NewUpstreamError(UpstreamNetwork, err)
	}

	return NewUpstreamError(UpstreamUnknown, err)
}

func kindForStatus(status int) UpstreamKind {
	switch {
	case status == 401:
		return UpstreamUnauthorized
	case status == 429:
		return UpstreamRateLimited
	case status == 400:
		return UpstreamBadRequest
	case status >= 500:
		return UpstreamServerUnavailable
	default:
		return UpstreamUnknown
	}
}

func maxTokensForModel(model string) int {
	switch model {
	case "gpt-4", "gpt-4-0314", "gpt-4-0613":
		return 1500
	case "gpt-4-32k", "gpt-4-32k-0314", "gpt-4-32k-0613":
		return 3000
	case "gpt-3.5-turbo-16k", "gpt-3.5-turbo-16k-0613":
		return 2000
	default:
		return 1000
	}
}

// estimateTokens is the fallback when the provider omits usage data.
// Roughly one token per four characters of English text.
func estimateTokens(input, output string) int64 {
	total := int64(len(input)+len(output)) / 4
	if total < 10 {
		return 10
	}
	return total
}
