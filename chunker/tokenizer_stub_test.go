package chunker

import (
	"fmt"
	"strconv"
	"strings"
)

// wordTokenizer maps each whitespace-separated word to a stable integer id.
// It gives tests exact control over token counts: n words encode to exactly
// n tokens.
type wordTokenizer struct {
	words []string
	ids   map[string]uint
}

func newWordTokenizer() *wordTokenizer {
	return &wordTokenizer{ids: make(map[string]uint)}
}

func (t *wordTokenizer) Encode(text string) ([]uint, error) {
	fields := strings.Fields(text)
	out := make([]uint, 0, len(fields))
	for _, w := range fields {
		id, ok := t.ids[w]
		if !ok {
			id = uint(len(t.words))
			t.ids[w] = id
			t.words = append(t.words, w)
		}
		out = append(out, id)
	}
	return out, nil
}

func (t *wordTokenizer) Decode(ids []uint) (string, error) {
	words := make([]string, 0, len(ids))
	for _, id := range ids {
		if int(id) >= len(t.words) {
			return "", fmt.Errorf("unknown token id %d", id)
		}
		words = append(words, t.words[id])
	}
	return strings.Join(words, " "), nil
}

// failMarker makes failTokenizer reject a text.
const failMarker = "<unencodable>"

// failTokenizer fails to encode any text containing failMarker.
type failTokenizer struct {
	inner *wordTokenizer
}

func (t *failTokenizer) Encode(text string) ([]uint, error) {
	if strings.Contains(text, failMarker) {
		return nil, fmt.Errorf("byte sequence outside vocabulary")
	}
	return t.inner.Encode(text)
}

func (t *failTokenizer) Decode(ids []uint) (string, error) {
	return t.inner.Decode(ids)
}

// corpus returns a text of n distinct words: "w0 w1 ... w<n-1>".
func corpus(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString("w")
		sb.WriteString(strconv.Itoa(i))
	}
	return sb.String()
}
