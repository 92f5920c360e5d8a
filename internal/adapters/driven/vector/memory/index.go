// Package memory provides an in-memory vector index, useful for tests
// and ephemeral sessions.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/askdocs/internal/adapters/driven/vector/bolt"
	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index holds embeddings in memory. Safe for concurrent use.
type Index struct {
	mu      sync.RWMutex
	vectors map[string][]float32
}

// NewIndex creates an empty in-memory vector index.
func NewIndex() *Index {
	return &Index{
		vectors: make(map[string][]float32),
	}
}

// Add inserts or replaces the vector for the given chunk ID.
func (i *Index) Add(_ context.Context, chunkID string, embedding []float32) error {
	if chunkID == "" || len(embedding) == 0 {
		return fmt.Errorf("%w: empty chunk ID or embedding", domain.ErrInvalidInput)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	stored := make([]float32, len(embedding))
	copy(stored, embedding)
	i.vectors[chunkID] = stored
	return nil
}

// AddBatch inserts vectors for multiple chunks.
func (i *Index) AddBatch(ctx context.Context, chunkIDs []string, embeddings [][]float32) error {
	if len(chunkIDs) != len(embeddings) {
		return fmt.Errorf("%w: %d chunk IDs for %d embeddings",
			domain.ErrInvalidInput, len(chunkIDs), len(embeddings))
	}

	for j, id := range chunkIDs {
		if err := i.Add(ctx, id, embeddings[j]); err != nil {
			return err
		}
	}
	return nil
}

// Search finds the k nearest neighbours to the query vector, ordered
// by ascending cosine distance.
func (i *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if len(query) == 0 {
		return nil, fmt.Errorf("%w: empty query vector", domain.ErrInvalidInput)
	}
	if k <= 0 {
		return nil, nil
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	var hits []driven.VectorHit
	for id, embedding := range i.vectors {
		if len(embedding) != len(query) {
			continue
		}
		hits = append(hits, driven.VectorHit{
			ChunkID:  id,
			Distance: bolt.CosineDistance(query, embedding),
		})
	}

	sort.Slice(hits, func(a, b int) bool {
		return hits[a].Distance < hits[b].Distance
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Count returns the number of vectors in the index.
func (i *Index) Count(_ context.Context) (int, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.vectors), nil
}

// Close releases resources.
func (i *Index) Close() error {
	return nil
}
