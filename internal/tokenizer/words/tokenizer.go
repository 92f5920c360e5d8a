// Package words provides a deterministic, dependency-free tokenizer.
// Text is split into alternating runs of whitespace and non-whitespace,
// each run becoming one token, so decoding a token sequence recovers
// the exact original text. It is used in tests and as an offline
// fallback when the BPE vocabulary cannot be fetched.
package words

import (
	"strings"
	"sync"
	"unicode"

	"github.com/custodia-labs/askdocs/internal/core/ports/driven"
)

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// Tokenizer assigns token IDs to runs on first sight.
// Encode and Decode are only compatible within one instance.
type Tokenizer struct {
	mu   sync.Mutex
	ids  map[string]int
	runs []string
}

// New creates an empty words tokenizer.
func New() *Tokenizer {
	return &Tokenizer{
		ids: make(map[string]int),
	}
}

// Name returns the encoding name.
func (t *Tokenizer) Name() string {
	return "words"
}

// Encode converts text into a sequence of token IDs, one per run.
func (t *Tokenizer) Encode(text string) []int {
	segments := splitRuns(text)

	t.mu.Lock()
	defer t.mu.Unlock()

	tokens := make([]int, len(segments))
	for i, seg := range segments {
		id, ok := t.ids[seg]
		if !ok {
			id = len(t.runs)
			t.ids[seg] = id
			t.runs = append(t.runs, seg)
		}
		tokens[i] = id
	}
	return tokens
}

// Decode converts token IDs back into text. Unknown IDs are skipped.
func (t *Tokenizer) Decode(tokens []int) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var b strings.Builder
	for _, id := range tokens {
		if id >= 0 && id < len(t.runs) {
			b.WriteString(t.runs[id])
		}
	}
	return b.String()
}

// splitRuns splits text into maximal runs of whitespace or
// non-whitespace. Concatenating the runs yields the original text.
func splitRuns(text string) []string {
	var runs []string
	var current strings.Builder
	var inSpace bool

	for i, r := range text {
		isSpace := unicode.IsSpace(r)
		if i > 0 && isSpace != inSpace {
			runs = append(runs, current.String())
			current.Reset()
		}
		current.WriteRune(r)
		inSpace = isSpace
	}
	if current.Len() > 0 {
		runs = append(runs, current.String())
	}
	return runs
}
