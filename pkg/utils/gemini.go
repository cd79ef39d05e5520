package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiCompletionClient implements CompletionClientInterface against
// Google's Gemini models. Selected with AI_PROVIDER=gemini; the requested
// OpenAI-style model name is ignored in favor of the configured one.
type GeminiCompletionClient struct {
	client *genai.Client
	model  string
}

func NewGeminiCompletionClient(apiKey, model string) (*GeminiCompletionClient, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiCompletionClient{client: client, model: model}, nil
}

func (c *GeminiCompletionClient) Complete(ctx context.Context, message, _ string) (string, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	model := c.client.GenerativeModel(c.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(message))
	if err != nil {
		return "", 0, classifyGeminiError(err)
	}

	text := extractGeminiText(resp)
	if text == "" {
		return "", 0, NewUpstreamError(UpstreamUnknown, errors.New("empty Gemini response"))
	}

	var tokens int64
	if resp.UsageMetadata != nil {
		tokens = int64(resp.UsageMetadata.TotalTokenCount)
	}
	if tokens == 0 {
		tokens = estimateTokens(message, text)
	}
	return text, tokens, nil
}

func extractGeminiText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
	}
	return sb.String()
}

func classifyGeminiError(err error) *UpstreamError {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewUpstreamError(UpstreamTimeout, err)
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return NewUpstreamError(kindForStatus(gerr.Code), err)
	}

	return NewUpstreamError(UpstreamUnknown, err)
}
