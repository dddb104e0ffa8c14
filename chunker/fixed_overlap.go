package chunker

import (
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// Progress reporting cadence: the callback fires for the first few chunks,
// then every tenth, then once more after the loop finishes.
const (
	progressWarmup   = 3
	progressInterval = 10
)

// FixedOverlapChunker implements the Chunker interface using a fixed-size
// sliding window with overlap between consecutive chunks. Chunk boundaries
// are expressed in token indices of the supplied Tokenizer.
//
// The instance holds no mutable state beyond its configuration and is safe
// for concurrent use, provided the Tokenizer is.
type FixedOverlapChunker struct {
	config ChunkConfig
	tok    Tokenizer
	logger *zap.Logger
}

// Option configures a FixedOverlapChunker.
type Option func(*FixedOverlapChunker)

// WithLogger sets the logger used for warning-level signals (empty input,
// safety-net truncation). The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *FixedOverlapChunker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewFixedOverlapChunker creates a new FixedOverlapChunker with the given
// configuration and tokenizer. Configuration is validated here and never
// silently corrected: an overlap >= chunk size would break the window's
// progress guarantee.
func NewFixedOverlapChunker(config ChunkConfig, tok Tokenizer, opts ...Option) (*FixedOverlapChunker, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chunk config: %w", err)
	}
	if tok == nil {
		return nil, ErrNilTokenizer
	}

	c := &FixedOverlapChunker{
		config: config,
		tok:    tok,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the chunker's immutable configuration.
func (c *FixedOverlapChunker) Config() ChunkConfig {
	return c.config
}

// CountTokens counts the number of tokens in the given text.
func (c *FixedOverlapChunker) CountTokens(text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	ids, err := c.tok.Encode(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTokenizerFailed, err)
	}

	return len(ids), nil
}

// ChunkText splits the text into overlapping chunks based on token count.
//
// Guarantees, for any configuration accepted by NewFixedOverlapChunker:
//   - the window start strictly increases every iteration, so the call
//     always terminates;
//   - unless Result.Truncated is set, every token index of the input is
//     covered by at least one chunk's [StartToken, EndToken) range;
//   - at most totalTokens/(ChunkSize-ChunkOverlap)+SafetyMargin chunks are
//     produced;
//   - identical input and configuration yield an identical chunk sequence.
//
// Empty or whitespace-only text is valid and yields an empty result.
// Tokenizer failure aborts the call with no partial output.
func (c *FixedOverlapChunker) ChunkText(text string, metadata map[string]string, progress ProgressFunc) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		c.logger.Warn("chunking skipped: empty or whitespace-only text")
		return &Result{}, nil
	}

	tokens, err := c.tok.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenizerFailed, err)
	}
	totalTokens := len(tokens)
	if totalTokens == 0 {
		c.logger.Warn("chunking skipped: tokenizer produced no tokens")
		return &Result{}, nil
	}

	// Single chunk covers the whole stream. This is the common path for
	// most documents.
	if totalTokens <= c.config.ChunkSize {
		return &Result{
			Chunks: []Chunk{{
				Text:       cleanText(text),
				ChunkID:    0,
				StartToken: 0,
				EndToken:   totalTokens,
				TokenCount: totalTokens,
				Metadata:   copyMetadata(metadata),
			}},
			TotalTokens: totalTokens,
		}, nil
	}

	stride := c.config.ChunkSize - c.config.ChunkOverlap
	if stride <= 0 {
		stride = c.config.ChunkSize // Fallback if overlap is misconfigured
	}

	// Hard upper bound on chunk count. Purely a termination safety net,
	// always >= the number of chunks the window can actually produce.
	maxChunks := totalTokens/stride + c.config.SafetyMargin
	estimated := totalTokens/stride + 1

	result := &Result{
		Chunks:      make([]Chunk, 0, estimated),
		TotalTokens: totalTokens,
	}

	start := 0
	chunkID := 0
	covered := 0

	for start < totalTokens {
		if chunkID >= maxChunks {
			// The estimate was exceeded: stop rather than risk an
			// unbounded loop, and surface the partial coverage.
			c.logger.Warn("chunk safety limit reached before end of input",
				zap.Int("max_chunks", maxChunks),
				zap.Int("next_start", start),
				zap.Int("total_tokens", totalTokens))
			result.Truncated = true
			break
		}

		end := min(start+c.config.ChunkSize, totalTokens)

		chunkText, err := c.tok.Decode(tokens[start:end])
		if err != nil {
			return nil, fmt.Errorf("%w: chunk %d: %v", ErrDecodeFailed, chunkID, err)
		}

		result.Chunks = append(result.Chunks, Chunk{
			Text:       cleanText(chunkText),
			ChunkID:    chunkID,
			StartToken: start,
			EndToken:   end,
			TokenCount: end - start,
			Metadata:   copyMetadata(metadata),
		})
		chunkID++
		covered = end

		if progress != nil && (chunkID <= progressWarmup || chunkID%progressInterval == 0) {
			progress(chunkID, estimated, float64(start)/float64(totalTokens)*100)
		}

		// The just-emitted chunk already reached the end; a further
		// iteration would only produce a redundant tail.
		if end >= totalTokens {
			break
		}

		next := end - c.config.ChunkOverlap
		if next <= start {
			// Mandatory forward progress: the window must advance by
			// at least one token per iteration, overlap notwithstanding.
			next = start + max(1, stride)
		}
		start = next
	}

	if progress != nil {
		progress(chunkID, estimated, float64(covered)/float64(totalTokens)*100)
	}

	return result, nil
}

// cleanText strips leading/trailing whitespace and collapses internal runs
// of whitespace and control characters into single spaces.
func cleanText(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
	return strings.Join(fields, " ")
}

// copyMetadata copies the caller-supplied map so emitted chunks stay
// immutable after the call returns.
func copyMetadata(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
