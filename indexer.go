// Package docchunk chunks long documents into token-bounded overlapping
// pieces, embeds them, and stores chunks and embeddings for semantic search.
package docchunk

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/fieldlab/docchunk/chunker"
	"github.com/fieldlab/docchunk/options"
	"github.com/fieldlab/docchunk/similarity"
	"github.com/fieldlab/docchunk/tokenizer"
	"github.com/fieldlab/docchunk/types"
)

// Indexer ties the chunker, embedding provider, and chunk store together.
// It chunks documents, embeds each chunk, and stores the results; reports
// always reflect the true state, so partial coverage or skipped documents
// never look like success.
type Indexer struct {
	store      types.ChunkStore
	provider   types.EmbeddingProvider
	chunker    chunker.Chunker
	comparator similarity.Func
	logger     *zap.Logger
	counter    types.TokenCounter
	budget     int
}

// DocumentReport describes the outcome of indexing one document.
type DocumentReport struct {
	// Document is the document name
	Document string

	// ChunkCount is the number of chunks embedded and stored
	ChunkCount int

	// TokenCount is the tokenized length of the document
	TokenCount int

	// Truncated reports that chunking hit its safety limit before full
	// coverage; the stored chunks do not span the whole document
	Truncated bool

	// OverBudget reports that the document exceeded the configured token
	// budget (if a budget check is configured)
	OverBudget bool
}

// BatchReport describes the outcome of indexing a document collection.
type BatchReport struct {
	// Documents holds one report per successfully indexed document,
	// ordered by document name
	Documents []DocumentReport

	// Failed maps document names to the error that prevented indexing
	Failed map[string]error

	// ChunksIndexed is the total number of chunks stored
	ChunksIndexed int
}

// Match represents a search result with its similarity score.
type Match struct {
	Key   string        `json:"key"`
	Chunk chunker.Chunk `json:"chunk"`
	Score float32       `json:"score"`
}

// New creates an Indexer with functional options. A store and an embedding
// provider are required; the chunker defaults to a FixedOverlapChunker with
// the default configuration over a cl100k_base tiktoken tokenizer, and the
// comparator defaults to cosine similarity.
func New(opts ...options.Option) (*Indexer, error) {
	cfg := options.NewConfig()

	if err := cfg.Apply(opts...); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Chunker == nil {
		tok, err := tokenizer.NewTiktoken()
		if err != nil {
			return nil, err
		}
		c, err := chunker.NewFixedOverlapChunker(chunker.DefaultChunkConfig(), tok, chunker.WithLogger(cfg.Logger))
		if err != nil {
			return nil, err
		}
		cfg.Chunker = c
	}

	return &Indexer{
		store:      cfg.Store,
		provider:   cfg.Provider,
		chunker:    cfg.Chunker,
		comparator: cfg.Comparator,
		logger:     cfg.Logger,
		counter:    cfg.Counter,
		budget:     cfg.TokenBudget,
	}, nil
}

// ChunkKey returns the store key for a document's chunk.
func ChunkKey(document string, chunkID int) string {
	return fmt.Sprintf("%s#%d", document, chunkID)
}

// IndexDocument chunks, embeds, and stores one document. The returned report
// carries the true chunk and token counts, including whether chunk coverage
// was truncated.
func (ix *Indexer) IndexDocument(ctx context.Context, name, text string) (*DocumentReport, error) {
	if name == "" {
		return nil, errors.New("document name cannot be empty")
	}

	report := &DocumentReport{Document: name}

	if ix.counter != nil && ix.budget > 0 {
		count, err := ix.counter.CountTokens(ctx, text)
		if err != nil {
			// Budget checking is advisory; the document still gets
			// chunked and indexed.
			ix.logger.Warn("token budget check failed",
				zap.String("document", name),
				zap.Error(err))
		} else if count > ix.budget {
			report.OverBudget = true
			ix.logger.Warn("document exceeds token budget",
				zap.String("document", name),
				zap.Int("tokens", count),
				zap.Int("budget", ix.budget))
		}
	}

	meta := map[string]string{chunker.SourceDocumentKey: name}
	res, err := ix.chunker.ChunkText(text, meta, nil)
	if err != nil {
		return nil, fmt.Errorf("chunking %s: %w", name, err)
	}

	report.TokenCount = res.TotalTokens
	report.Truncated = res.Truncated
	if res.Truncated {
		ix.logger.Warn("document chunk coverage incomplete",
			zap.String("document", name),
			zap.Int("chunks", len(res.Chunks)))
	}

	for _, c := range res.Chunks {
		embedding, err := ix.provider.EmbedText(c.Text)
		if err != nil {
			return nil, fmt.Errorf("embedding chunk %d of %s: %w", c.ChunkID, name, err)
		}
		entry := types.Entry{Embedding: embedding, Chunk: c}
		if err := ix.store.Put(ctx, ChunkKey(name, c.ChunkID), entry); err != nil {
			return nil, fmt.Errorf("storing chunk %d of %s: %w", c.ChunkID, name, err)
		}
		report.ChunkCount++
	}

	return report, nil
}

// IndexDocuments indexes a named document collection sequentially, in
// sorted-name order. One document's failure does not abort the rest; failed
// documents are logged and recorded in the report.
func (ix *Indexer) IndexDocuments(ctx context.Context, docs map[string]string) (*BatchReport, error) {
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)

	report := &BatchReport{
		Failed: make(map[string]error),
	}

	for _, name := range names {
		docReport, err := ix.IndexDocument(ctx, name, docs[name])
		if err != nil {
			ix.logger.Error("skipping document: indexing failed",
				zap.String("document", name),
				zap.Error(err))
			report.Failed[name] = err
			continue
		}
		report.Documents = append(report.Documents, *docReport)
		report.ChunksIndexed += docReport.ChunkCount
	}

	return report, nil
}

// Search embeds the query and returns up to n stored chunks sorted by
// descending similarity.
func (ix *Indexer) Search(ctx context.Context, query string, n int) ([]Match, error) {
	if n <= 0 {
		return nil, errors.New("n must be positive")
	}

	embedding, err := ix.provider.EmbedText(query)
	if err != nil {
		return nil, err
	}

	keys, err := ix.store.Keys(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(keys))
	for _, key := range keys {
		emb, found, err := ix.store.GetEmbedding(ctx, key)
		if err != nil || !found {
			continue
		}
		score := ix.comparator(embedding, emb)

		entry, found, err := ix.store.Get(ctx, key)
		if err != nil || !found {
			continue
		}
		matches = append(matches, Match{Key: key, Chunk: entry.Chunk, Score: score})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > n {
		return matches[:n], nil
	}
	return matches, nil
}

// Flush clears all entries from the store.
func (ix *Indexer) Flush(ctx context.Context) error {
	return ix.store.Flush(ctx)
}

// Len returns the number of chunks in the store.
func (ix *Indexer) Len(ctx context.Context) (int, error) {
	return ix.store.Len(ctx)
}

// Close releases the store and provider resources.
func (ix *Indexer) Close() error {
	ix.provider.Close()
	return ix.store.Close()
}
