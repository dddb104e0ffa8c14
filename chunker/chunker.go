package chunker

// Tokenizer is the external tokenization collaborator. Implementations must
// be deterministic: encoding the same text always yields the same ids, and
// Decode(Encode(text)) round-trips for valid UTF-8 input.
type Tokenizer interface {
	// Encode converts text into a sequence of token ids.
	Encode(text string) ([]uint, error)

	// Decode converts a sequence of token ids back into text.
	Decode(ids []uint) (string, error)
}

// Chunker defines the interface for text chunking strategies.
// Different implementations can provide various chunking approaches
// (fixed-size with overlap, semantic boundaries, sentence-based, etc.)
type Chunker interface {
	// ChunkText splits text into chunks based on the chunker's strategy
	// and the token limits configured in the chunker. The metadata map is
	// merged into every emitted chunk; progress may be nil.
	ChunkText(text string, metadata map[string]string, progress ProgressFunc) (*Result, error)

	// CountTokens counts the number of tokens in the given text.
	// This delegates to the underlying tokenizer.
	CountTokens(text string) (int, error)
}

// ProgressFunc receives periodic progress reports during a chunking call.
// It is invoked zero or more times: implementations batch invocations, so it
// is not called for every chunk, and percent is not guaranteed to reach 100.
type ProgressFunc func(chunksDone, estimatedTotal int, percent float64)

// ChunkConfig holds configuration for text chunking behavior.
type ChunkConfig struct {
	// MaxTokens is the per-document token budget used by callers for
	// cost/limit checks. It does not affect the chunking loop itself.
	// Default: 8191 (OpenAI text-embedding-3-small limit)
	MaxTokens int

	// ChunkSize is the maximum number of tokens per chunk.
	// Default: 512 tokens
	ChunkSize int

	// ChunkOverlap is the number of trailing tokens repeated at the start
	// of the next chunk. Must be strictly less than ChunkSize or the
	// sliding window cannot advance.
	// Default: 50 tokens
	ChunkOverlap int

	// SafetyMargin is added to the computed chunk-count upper bound that
	// guards loop termination. It is a safety net, not a prediction.
	// Default: 10
	SafetyMargin int

	// Strategy specifies the chunking algorithm to use.
	// Default: FixedSizeOverlap
	Strategy ChunkStrategy
}

// ChunkStrategy represents the chunking algorithm type.
type ChunkStrategy string

const (
	// FixedSizeOverlap splits text into fixed-size chunks with overlap.
	FixedSizeOverlap ChunkStrategy = "fixed_overlap"

	// Future strategies:
	// SentenceBased ChunkStrategy = "sentence"
	// ParagraphBased ChunkStrategy = "paragraph"
)

// SourceDocumentKey is the metadata key carrying the originating document
// name on chunks produced by ChunkDocuments.
const SourceDocumentKey = "source_document"

// Chunk represents a single chunk of text with its metadata.
// Chunks are immutable once emitted.
type Chunk struct {
	// Text is the cleaned text content of this chunk
	Text string

	// ChunkID is the chunk's position in the sequence (0-based). The
	// batch wrapper remaps it to a global counter across documents.
	ChunkID int

	// StartToken is the starting token index in the source token stream
	StartToken int

	// EndToken is the ending token index, exclusive
	EndToken int

	// TokenCount is EndToken - StartToken
	TokenCount int

	// Metadata carries caller-supplied key/value pairs merged into every
	// chunk of the input
	Metadata map[string]string
}

// Result is the outcome of a single chunking call.
type Result struct {
	// Chunks is the ordered chunk sequence
	Chunks []Chunk

	// TotalTokens is the length of the tokenized input
	TotalTokens int

	// Truncated reports that the chunk-count safety net fired before the
	// window reached the end of the input. The chunks produced so far are
	// still returned, but full coverage is not guaranteed and callers
	// must not treat the result as complete.
	Truncated bool
}

// DefaultChunkConfig returns the default chunking configuration.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		MaxTokens:    8191, // OpenAI text-embedding-3-small limit
		ChunkSize:    512,  // Good balance of context and granularity
		ChunkOverlap: 50,   // Preserves context at boundaries
		SafetyMargin: 10,
		Strategy:     FixedSizeOverlap,
	}
}

// Validate checks if the chunk configuration is valid.
func (c ChunkConfig) Validate() error {
	// Validate MaxTokens first
	if c.MaxTokens <= 0 {
		return ErrInvalidMaxTokens
	}

	// Validate ChunkSize
	if c.ChunkSize <= 0 {
		return ErrInvalidChunkSize
	}
	if c.ChunkSize > c.MaxTokens {
		return ErrChunkSizeExceedsMax
	}

	// Validate Overlap
	if c.ChunkOverlap < 0 {
		return ErrInvalidOverlap
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return ErrOverlapTooLarge
	}

	// Validate SafetyMargin
	if c.SafetyMargin < 1 {
		return ErrInvalidSafetyMargin
	}

	return nil
}
