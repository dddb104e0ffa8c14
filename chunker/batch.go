package chunker

import (
	"sort"

	"go.uber.org/zap"
)

// BatchResult is the outcome of chunking a named collection of documents.
type BatchResult struct {
	// Chunks is the combined sequence across all documents. ChunkID is a
	// running global counter; each document's internal order is preserved.
	Chunks []Chunk

	// TotalTokens aggregates the token counts of all chunked documents
	TotalTokens int

	// Failed maps document names to the error that prevented chunking
	// them. Failed documents contribute no chunks.
	Failed map[string]error

	// Truncated lists documents whose chunk sequence hit the safety
	// limit before full coverage.
	Truncated []string
}

// ChunkDocuments chunks each document in the named collection independently
// and combines the results. Documents are processed in sorted-name order so
// the global chunk ids are deterministic.
//
// Unlike ChunkText, the batch call is partial-failure tolerant: a document
// that fails to tokenize is logged and recorded in Failed, and the remaining
// documents are still processed. Every emitted chunk carries the originating
// document name under SourceDocumentKey, merged over the shared metadata.
func (c *FixedOverlapChunker) ChunkDocuments(docs map[string]string, metadata map[string]string, progress ProgressFunc) *BatchResult {
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)

	result := &BatchResult{
		Failed: make(map[string]error),
	}

	nextID := 0
	for _, name := range names {
		docMeta := make(map[string]string, len(metadata)+1)
		for k, v := range metadata {
			docMeta[k] = v
		}
		docMeta[SourceDocumentKey] = name

		res, err := c.ChunkText(docs[name], docMeta, progress)
		if err != nil {
			c.logger.Error("skipping document: chunking failed",
				zap.String("document", name),
				zap.Error(err))
			result.Failed[name] = err
			continue
		}

		for _, chunk := range res.Chunks {
			chunk.ChunkID = nextID
			nextID++
			result.Chunks = append(result.Chunks, chunk)
		}
		result.TotalTokens += res.TotalTokens
		if res.Truncated {
			result.Truncated = append(result.Truncated, name)
		}
	}

	return result
}
