// Package tokenizer provides tokenization collaborators for the chunker:
// a local tiktoken BPE codec plus provider-native token counters.
package tokenizer

import (
	"context"
	"fmt"

	"github.com/tiktoken-go/tokenizer"
)

// Tiktoken is a local BPE tokenizer backed by a tiktoken encoding. It
// implements both chunker.Tokenizer (encode/decode) and types.TokenCounter.
// Encoding and decoding are in-memory CPU operations, no API calls.
type Tiktoken struct {
	codec tokenizer.Codec
}

// NewTiktoken creates a Tiktoken using the cl100k_base encoding, the
// encoding of OpenAI's embedding models.
func NewTiktoken() (*Tiktoken, error) {
	return NewTiktokenEncoding(tokenizer.Cl100kBase)
}

// NewTiktokenEncoding creates a Tiktoken with an explicit encoding.
func NewTiktokenEncoding(encoding tokenizer.Encoding) (*Tiktoken, error) {
	codec, err := tokenizer.Get(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tokenizer: %w", err)
	}
	return &Tiktoken{codec: codec}, nil
}

// Encode converts text into token ids.
func (t *Tiktoken) Encode(text string) ([]uint, error) {
	ids, _, err := t.codec.Encode(text)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Decode converts token ids back into text.
func (t *Tiktoken) Decode(ids []uint) (string, error) {
	return t.codec.Decode(ids)
}

// CountTokens counts tokens in text. This is a local, fast operation that
// doesn't require an API call; the context is accepted for interface
// compatibility with the provider-native counters.
func (t *Tiktoken) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	ids, _, err := t.codec.Encode(text)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}
