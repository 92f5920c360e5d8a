// Package chunker provides a fixed-stride token window chunking processor.
package chunker

import (
	"context"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driven"
)

// DefaultChunkSize is the default number of tokens per chunk.
const DefaultChunkSize = domain.DefaultChunkSize

// DefaultOverlap is the default number of overlapping tokens.
const DefaultOverlap = domain.DefaultChunkOverlap

// Processor splits document content into overlapping token windows.
// It implements the PostProcessor interface.
type Processor struct {
	tokenizer driven.Tokenizer
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in tokens.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in tokens.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(tokenizer driven.Tokenizer, opts ...Option) *Processor {
	p := &Processor{
		tokenizer: tokenizer,
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// An overlap at or above the chunk size makes the stride
	// non-positive and the window would never advance.
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// ChunkSize returns the effective chunk size in tokens.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Overlap returns the effective overlap in tokens.
func (p *Processor) Overlap() int {
	return p.overlap
}

// Process splits the document content into token-window chunks.
// Input chunks are ignored; this processor creates new chunks.
// Each window is decoded back to text, carries a copy of the parent
// metadata and an ID derived from the document ID and its position.
func (p *Processor) Process(ctx context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	if doc.Content == "" {
		// Empty content produces no chunks
		return nil, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tokens := p.tokenizer.Encode(doc.Content)
	if len(tokens) == 0 {
		return nil, nil
	}

	stride := p.chunkSize - p.overlap
	estimated := len(tokens)/stride + 1
	chunks := make([]domain.Chunk, 0, estimated)

	position := 0
	for start := 0; start < len(tokens); start += stride {
		end := start + p.chunkSize
		if end > len(tokens) {
			end = len(tokens)
		}

		chunk := domain.Chunk{
			ID:         domain.ChunkID(doc.ID, position),
			DocumentID: doc.ID,
			Content:    p.tokenizer.Decode(tokens[start:end]),
			Position:   position,
			Metadata:   copyMetadata(doc.Metadata),
		}

		chunks = append(chunks, chunk)
		position++
	}

	return chunks, nil
}

// copyMetadata clones the parent metadata so chunks never alias the
// document's map.
func copyMetadata(metadata map[string]any) map[string]any {
	clone := make(map[string]any, len(metadata))
	for k, v := range metadata {
		clone[k] = v
	}
	return clone
}
