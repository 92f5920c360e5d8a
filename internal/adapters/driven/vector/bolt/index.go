// Package bolt provides a persistent vector index backed by bbolt.
package bolt

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// vectorsBucket holds chunkID -> embedding mappings.
var vectorsBucket = []byte("vectors")

// Index stores embeddings in a bbolt database and answers
// nearest-neighbour queries with an exact cosine distance scan.
// Exact scan is linear in collection size, which is fine for the
// corpus sizes this tool targets.
type Index struct {
	db   *bbolt.DB
	path string
}

// NewIndex opens (or creates) a vector index at the specified data
// directory. If dataDir is empty, defaults to ~/.askdocs/data/vectors.db.
func NewIndex(dataDir string) (*Index, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".askdocs", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "vectors.db")

	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening vector index: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(vectorsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating vectors bucket: %w", err)
	}

	return &Index{db: db, path: dbPath}, nil
}

// Path returns the index file path.
func (i *Index) Path() string {
	return i.path
}

// Add inserts or replaces the vector for the given chunk ID.
func (i *Index) Add(ctx context.Context, chunkID string, embedding []float32) error {
	return i.AddBatch(ctx, []string{chunkID}, [][]float32{embedding})
}

// AddBatch inserts vectors for multiple chunks in one transaction.
func (i *Index) AddBatch(ctx context.Context, chunkIDs []string, embeddings [][]float32) error {
	if len(chunkIDs) != len(embeddings) {
		return fmt.Errorf("%w: %d chunk IDs for %d embeddings",
			domain.ErrInvalidInput, len(chunkIDs), len(embeddings))
	}

	err := i.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(vectorsBucket)
		for j, id := range chunkIDs {
			if err := ctx.Err(); err != nil {
				return err
			}
			if id == "" || len(embeddings[j]) == 0 {
				return fmt.Errorf("%w: empty chunk ID or embedding", domain.ErrInvalidInput)
			}
			if err := b.Put([]byte(id), encodeVector(embeddings[j])); err != nil {
				return fmt.Errorf("storing vector %s: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("adding vectors: %w", err)
	}
	return nil
}

// Search finds the k nearest neighbours to the query vector, ordered
// by ascending cosine distance.
func (i *Index) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if len(query) == 0 {
		return nil, fmt.Errorf("%w: empty query vector", domain.ErrInvalidInput)
	}
	if k <= 0 {
		return nil, nil
	}

	var hits []driven.VectorHit
	err := i.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(vectorsBucket)
		return b.ForEach(func(key, value []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			embedding := decodeVector(value)
			if len(embedding) != len(query) {
				// Skip vectors from a different embedding model.
				return nil
			}
			hits = append(hits, driven.VectorHit{
				ChunkID:  string(key),
				Distance: CosineDistance(query, embedding),
			})
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("searching vectors: %w", err)
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
func (i *Index) Count(ctx context.Context) (int, error) {
	var count int
	err := i.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket(vectorsBucket).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("counting vectors: %w", err)
	}
	return count, nil
}

// Close releases the database.
func (i *Index) Close() error {
	return i.db.Close()
}

// CosineDistance returns 1 minus the cosine similarity of a and b.
// Zero means identical direction, 2 means opposite. Vectors with zero
// norm are treated as maximally dissimilar.
func CosineDistance(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}

// encodeVector converts a []float32 to a byte slice for storage.
func encodeVector(floats []float32) []byte {
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// decodeVector converts a byte slice back to []float32.
func decodeVector(data []byte) []float32 {
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
