// Package openai embeds chunk text with OpenAI's embedding API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// DefaultModel is used when no embedding model is configured.
const DefaultModel = openai.EmbeddingModelTextEmbedding3Small

// DefaultTimeout bounds a single embedding request.
const DefaultTimeout = 30 * time.Second

// Config provides configuration options for the OpenAI embedding provider.
// An empty APIKey falls back to the OPENAI_API_KEY environment variable.
type Config struct {
	APIKey  string
	BaseURL string
	OrgID   string
	Model   string

	// Dimensions requests a reduced embedding size from models that
	// support it (text-embedding-3 and later). Zero keeps the model's
	// native dimensionality.
	Dimensions int

	// Timeout bounds each request; zero means DefaultTimeout.
	Timeout time.Duration
}

func (c Config) clientOptions() ([]option.RequestOption, error) {
	key := c.APIKey
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	if key == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(key)}
	if c.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(c.BaseURL))
	}
	if c.OrgID != "" {
		opts = append(opts, option.WithOrganization(c.OrgID))
	}
	return opts, nil
}

// Provider turns chunk text into embedding vectors via OpenAI.
type Provider struct {
	client     *openai.Client
	model      string
	dimensions int
	timeout    time.Duration
}

// NewProvider creates an OpenAI embedding provider.
func NewProvider(config Config) (*Provider, error) {
	opts, err := config.clientOptions()
	if err != nil {
		return nil, err
	}

	p := &Provider{
		model:      config.Model,
		dimensions: config.Dimensions,
		timeout:    config.Timeout,
	}
	if p.model == "" {
		p.model = DefaultModel
	}
	if p.timeout <= 0 {
		p.timeout = DefaultTimeout
	}

	client := openai.NewClient(opts...)
	p.client = &client
	return p, nil
}

// EmbedText embeds a single chunk of text and returns its vector.
func (p *Provider) EmbedText(text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	params := openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(p.model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{text},
		},
	}
	if p.dimensions > 0 {
		params.Dimensions = openai.Int(int64(p.dimensions))
	}

	resp, err := p.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("no embedding returned by OpenAI")
	}

	// The API responds with float64; the stores keep float32
	vec := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}

// Close frees provider resources. The OpenAI client holds none.
func (p *Provider) Close() {}
