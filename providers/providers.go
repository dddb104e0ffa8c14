// Package providers exposes embedding provider constructors behind the
// shared EmbeddingProvider interface.
package providers

import (
	"github.com/fieldlab/docchunk/providers/openai"
	"github.com/fieldlab/docchunk/types"
)

// NewOpenAIProvider creates a new OpenAI embedding provider
func NewOpenAIProvider(config openai.Config) (types.EmbeddingProvider, error) {
	return openai.NewProvider(config)
}
