package domain

import (
	"fmt"
	"time"
)

// Document represents a loaded dataset item with metadata.
// It is the canonical representation after loading and is
// immutable once created.
type Document struct {
	// ID is the unique identifier for the document within a dataset.
	ID string

	// Title is the human-readable title, when the dataset provides one.
	Title string

	// Content is the full text content before chunking.
	Content string

	// Metadata contains the pass-through key-value pairs selected
	// from the dataset item.
	Metadata map[string]any

	// CreatedAt is when the document was loaded.
	CreatedAt time.Time
}

// Chunk represents a bounded token-window slice of a document's text.
// Documents are split into chunks for granular retrieval.
type Chunk struct {
	// ID is the unique identifier for the chunk, derived from the
	// parent document ID and the chunk's position.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the decoded text of this chunk's token window.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Embedding is the vector representation for similarity search.
	Embedding []float32

	// Metadata is a copy of the parent document's metadata.
	Metadata map[string]any
}

// ChunkID derives the identifier for a chunk from its parent document
// ID and its position. Chunk IDs are unique within a processed batch as
// long as document IDs are.
func ChunkID(documentID string, position int) string {
	return fmt.Sprintf("%s_chunk_%d", documentID, position)
}
