package services

import (
	"context"
	"math"
	"sort"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driven"
)

// fakeLoader returns a preset document slice.
type fakeLoader struct {
	docs []domain.Document
	err  error
}

func (l *fakeLoader) Name() string { return "fake" }

func (l *fakeLoader) Load(_ context.Context, _, _ string, _ []string) ([]domain.Document, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.docs, nil
}

// fakeEmbedder produces a deterministic vector from the text so that
// identical texts embed identically.
type fakeEmbedder struct {
	err error
}

func (e *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	vec := make([]float32, 8)
	for _, b := range []byte(text) {
		vec[int(b)%8]++
	}
	return vec, nil
}

func (e *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (e *fakeEmbedder) Dimensions() int              { return 8 }
func (e *fakeEmbedder) ModelName() string            { return "fake-embed" }
func (e *fakeEmbedder) Ping(_ context.Context) error { return nil }
func (e *fakeEmbedder) Close() error                 { return nil }

// fakeDocStore keeps documents and chunks in maps.
type fakeDocStore struct {
	documents map[string]domain.Document
	chunks    map[string]domain.Chunk
}

func newFakeDocStore() *fakeDocStore {
	return &fakeDocStore{
		documents: make(map[string]domain.Document),
		chunks:    make(map[string]domain.Chunk),
	}
}

func (s *fakeDocStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	s.documents[doc.ID] = *doc
	return nil
}

func (s *fakeDocStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	for _, chunk := range chunks {
		s.chunks[chunk.ID] = chunk
	}
	return nil
}

func (s *fakeDocStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (s *fakeDocStore) GetChunk(_ context.Context, id string) (*domain.Chunk, error) {
	chunk, ok := s.chunks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &chunk, nil
}

func (s *fakeDocStore) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	var out []domain.Chunk
	for _, chunk := range s.chunks {
		if chunk.DocumentID == documentID {
			out = append(out, chunk)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (s *fakeDocStore) CountChunks(_ context.Context) (int, error) {
	return len(s.chunks), nil
}

// fakeIndex is an in-memory cosine index.
type fakeIndex struct {
	vectors map[string][]float32
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{vectors: make(map[string][]float32)}
}

func (i *fakeIndex) Add(_ context.Context, chunkID string, embedding []float32) error {
	i.vectors[chunkID] = embedding
	return nil
}

func (i *fakeIndex) AddBatch(ctx context.Context, chunkIDs []string, embeddings [][]float32) error {
	for j, id := range chunkIDs {
		if err := i.Add(ctx, id, embeddings[j]); err != nil {
			return err
		}
	}
	return nil
}

func (i *fakeIndex) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	var hits []driven.VectorHit
	for id, vec := range i.vectors {
		hits = append(hits, driven.VectorHit{ChunkID: id, Distance: cosineDistance(query, vec)})
	}
	sort.Slice(hits, func(a, b int) bool { return hits[a].Distance < hits[b].Distance })
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func (i *fakeIndex) Count(_ context.Context) (int, error) {
	return len(i.vectors), nil
}

func (i *fakeIndex) Close() error { return nil }

func cosineDistance(a, b []float32) float64 {
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

// fakeLLM records the last prompt and returns a canned answer.
type fakeLLM struct {
	answer     string
	err        error
	lastPrompt string
	lastOpts   driven.GenerateOptions
}

func (l *fakeLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	l.lastPrompt = prompt
	l.lastOpts = opts
	if l.err != nil {
		return "", l.err
	}
	return l.answer, nil
}

func (l *fakeLLM) ModelName() string            { return "fake-llm" }
func (l *fakeLLM) Ping(_ context.Context) error { return nil }
func (l *fakeLLM) Close() error                 { return nil }
