package tokenizer

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
)

// DefaultAnthropicModel is the model used for token counting when none is
// configured.
const DefaultAnthropicModel = "claude-3-5-sonnet-20241022"

// AnthropicCounter counts tokens using Anthropic's token counting endpoint.
// Counting only: Anthropic exposes no decode, so this cannot drive the
// chunker itself. It serves document-budget checks before embedding.
type AnthropicCounter struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicCounter creates an AnthropicCounter with the provided client.
// An empty model falls back to DefaultAnthropicModel.
func NewAnthropicCounter(client *anthropic.Client, model string) *AnthropicCounter {
	if model == "" {
		model = DefaultAnthropicModel
	}
	return &AnthropicCounter{
		client: client,
		model:  model,
	}
}

// CountTokens counts tokens in text using the native Anthropic SDK.
// This makes an API call to Anthropic's token counting endpoint.
func (c *AnthropicCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	// Client is required for Anthropic token counting
	if c.client == nil {
		return 0, fmt.Errorf("anthropic client is required for token counting")
	}

	params := anthropic.MessageCountTokensParams{
		Model: anthropic.Model(c.model),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	}

	result, err := c.client.Messages.CountTokens(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("anthropic token counting failed: %w", err)
	}

	return int(result.InputTokens), nil
}
