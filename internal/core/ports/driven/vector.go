package driven

import "context"

// VectorIndex stores chunk embeddings and answers nearest-neighbour
// queries by cosine distance. The index is opaque beyond add and
// search; persistence layout is an implementation detail.
type VectorIndex interface {
	// Add inserts or replaces the vector for the given chunk ID.
	Add(ctx context.Context, chunkID string, embedding []float32) error

	// AddBatch inserts vectors for multiple chunks.
	AddBatch(ctx context.Context, chunkIDs []string, embeddings [][]float32) error

	// Search finds the k nearest neighbours to the query vector,
	// ordered by ascending cosine distance.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Count returns the number of vectors in the index.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Distance is the cosine distance (1 - cosine similarity).
	// Zero means identical direction.
	Distance float64
}
