// Package tiktoken provides a BPE tokenizer adapter using the
// cl100k_base encoding, matching the token space the chunk size and
// overlap parameters were tuned for.
package tiktoken

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/custodia-labs/askdocs/internal/core/ports/driven"
)

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// DefaultEncoding is the encoding used for chunking.
const DefaultEncoding = "cl100k_base"

// Tokenizer wraps a tiktoken encoding.
type Tokenizer struct {
	name string
	enc  *tiktoken.Tiktoken
}

// New creates a tokenizer for the given encoding name.
// An empty name selects DefaultEncoding. The first call may download
// the BPE vocabulary; it is cached afterwards.
func New(name string) (*Tokenizer, error) {
	if name == "" {
		name = DefaultEncoding
	}

	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("loading encoding %s: %w", name, err)
	}

	return &Tokenizer{
		name: name,
		enc:  enc,
	}, nil
}

// Name returns the encoding name.
func (t *Tokenizer) Name() string {
	return t.name
}

// Encode converts text into a sequence of token IDs.
func (t *Tokenizer) Encode(text string) []int {
	return t.enc.Encode(text, nil, nil)
}

// Decode converts a sequence of token IDs back into text.
func (t *Tokenizer) Decode(tokens []int) string {
	return t.enc.Decode(tokens)
}
