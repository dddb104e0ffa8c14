package tokenizer

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiCounter counts tokens using Gemini's token counting endpoint.
// Like AnthropicCounter, it is counting-only and serves document-budget
// checks rather than the chunker itself.
type GeminiCounter struct {
	client *genai.Client
	model  string
}

// NewGeminiCounter creates a GeminiCounter with the provided client and model.
func NewGeminiCounter(client *genai.Client, model string) *GeminiCounter {
	return &GeminiCounter{
		client: client,
		model:  model,
	}
}

// CountTokens counts tokens in text using the native Gemini SDK.
// This makes an API call to Gemini's token counting endpoint.
func (c *GeminiCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	// Client and model are required for Gemini token counting
	if c.client == nil {
		return 0, fmt.Errorf("gemini client is required for token counting")
	}
	if c.model == "" {
		return 0, fmt.Errorf("gemini model is required for token counting")
	}

	result, err := c.client.Models.CountTokens(ctx, c.model, genai.Text(text), nil)
	if err != nil {
		return 0, fmt.Errorf("gemini token counting failed: %w", err)
	}

	return int(result.TotalTokens), nil
}
