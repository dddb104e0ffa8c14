package chunker

import (
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestChunkDocuments(t *testing.T) {
	c := mustChunker(t, 10, 2)

	docs := map[string]string{
		"b_pest_control.pdf": corpus(25),
		"a_soil_guide.pdf":   corpus(25),
		"c_irrigation.pdf":   corpus(5),
	}

	res := c.ChunkDocuments(docs, map[string]string{"crop": "maize"}, nil)

	if len(res.Failed) != 0 {
		t.Fatalf("unexpected failures: %v", res.Failed)
	}
	if len(res.Truncated) != 0 {
		t.Fatalf("unexpected truncations: %v", res.Truncated)
	}

	// Global chunk ids form a contiguous sequence.
	for i, chunk := range res.Chunks {
		if chunk.ChunkID != i {
			t.Errorf("chunk %d has global id %d", i, chunk.ChunkID)
		}
	}

	// Documents appear in sorted-name order, each with its internal order
	// preserved.
	var order []string
	prevStart := map[string]int{}
	for _, chunk := range res.Chunks {
		doc := chunk.Metadata[SourceDocumentKey]
		if doc == "" {
			t.Fatal("chunk missing source document metadata")
		}
		if len(order) == 0 || order[len(order)-1] != doc {
			order = append(order, doc)
		}
		if start, seen := prevStart[doc]; seen && chunk.StartToken <= start {
			t.Errorf("document %s chunk order not preserved", doc)
		}
		prevStart[doc] = chunk.StartToken
		if chunk.Metadata["crop"] != "maize" {
			t.Errorf("shared metadata not merged into chunk %d", chunk.ChunkID)
		}
	}

	wantOrder := []string{"a_soil_guide.pdf", "b_pest_control.pdf", "c_irrigation.pdf"}
	if len(order) != len(wantOrder) {
		t.Fatalf("documents seen = %v, want %v", order, wantOrder)
	}
	for i := range wantOrder {
		if order[i] != wantOrder[i] {
			t.Fatalf("documents seen = %v, want %v", order, wantOrder)
		}
	}

	if res.TotalTokens != 55 {
		t.Errorf("TotalTokens = %d, want 55", res.TotalTokens)
	}
}

// One document failing to tokenize must not prevent the others from
// producing chunks.
func TestChunkDocuments_FailureIsolation(t *testing.T) {
	tok := &failTokenizer{inner: newWordTokenizer()}
	c, err := NewFixedOverlapChunker(testConfig(10, 2), tok)
	if err != nil {
		t.Fatalf("failed to create chunker: %v", err)
	}

	docs := map[string]string{
		"good_one.pdf": corpus(25),
		"corrupt.pdf":  "prefix " + failMarker + " suffix",
		"good_two.pdf": corpus(15),
	}

	res := c.ChunkDocuments(docs, nil, nil)

	if len(res.Failed) != 1 {
		t.Fatalf("Failed = %v, want exactly one entry", res.Failed)
	}
	if !errors.Is(res.Failed["corrupt.pdf"], ErrTokenizerFailed) {
		t.Errorf("Failed[corrupt.pdf] = %v, want ErrTokenizerFailed", res.Failed["corrupt.pdf"])
	}

	seen := map[string]bool{}
	for _, chunk := range res.Chunks {
		seen[chunk.Metadata[SourceDocumentKey]] = true
	}
	if !seen["good_one.pdf"] || !seen["good_two.pdf"] {
		t.Errorf("healthy documents missing from output: %v", seen)
	}
	if seen["corrupt.pdf"] {
		t.Error("failed document contributed chunks")
	}
}

// A document cut short by the chunk ceiling is reported in Truncated while
// the rest of the batch completes normally.
func TestChunkDocuments_TruncatedDocumentReported(t *testing.T) {
	c := &FixedOverlapChunker{
		config: ChunkConfig{
			MaxTokens:    1 << 20,
			ChunkSize:    10,
			ChunkOverlap: 2,
			SafetyMargin: -10,
		},
		tok:    newWordTokenizer(),
		logger: zap.NewNop(),
	}

	docs := map[string]string{
		"big.pdf":   corpus(100), // hits the lowered ceiling after 2 chunks
		"small.pdf": corpus(5),
	}

	res := c.ChunkDocuments(docs, nil, nil)

	if len(res.Failed) != 0 {
		t.Fatalf("truncation should not count as a failure: %v", res.Failed)
	}
	if len(res.Truncated) != 1 || res.Truncated[0] != "big.pdf" {
		t.Fatalf("Truncated = %v, want [big.pdf]", res.Truncated)
	}

	seen := map[string]int{}
	for _, chunk := range res.Chunks {
		seen[chunk.Metadata[SourceDocumentKey]]++
	}
	if seen["big.pdf"] != 2 {
		t.Errorf("truncated document contributed %d chunks, want 2", seen["big.pdf"])
	}
	if seen["small.pdf"] == 0 {
		t.Error("untruncated document missing from output")
	}
}

func TestChunkDocuments_EmptyDocumentSkipped(t *testing.T) {
	c := mustChunker(t, 10, 2)

	docs := map[string]string{
		"empty.pdf":   "   \n ",
		"content.pdf": corpus(12),
	}

	res := c.ChunkDocuments(docs, nil, nil)

	if len(res.Failed) != 0 {
		t.Fatalf("empty document should not fail the batch: %v", res.Failed)
	}
	for _, chunk := range res.Chunks {
		if chunk.Metadata[SourceDocumentKey] == "empty.pdf" {
			t.Error("empty document produced a chunk")
		}
	}
	if len(res.Chunks) == 0 {
		t.Error("content document produced no chunks")
	}
}
