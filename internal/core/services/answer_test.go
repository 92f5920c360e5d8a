package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

func seedChunks(t *testing.T, store *fakeDocStore, index *fakeIndex, embedder *fakeEmbedder, contents ...string) {
	t.Helper()
	ctx := context.Background()

	for i, content := range contents {
		id := domain.ChunkID("0", i)
		chunk := domain.Chunk{
			ID:         id,
			DocumentID: "0",
			Content:    content,
			Position:   i,
			Metadata:   map[string]any{"title": "doc"},
		}
		require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{chunk}))

		vec, err := embedder.Embed(ctx, content)
		require.NoError(t, err)
		require.NoError(t, index.Add(ctx, id, vec))
	}
}

func TestAnswerService_Query(t *testing.T) {
	store := newFakeDocStore()
	index := newFakeIndex()
	embedder := &fakeEmbedder{}
	llm := &fakeLLM{answer: "Goroutines are lightweight."}

	seedChunks(t, store, index, embedder,
		"goroutines are lightweight threads",
		"channels pass values between goroutines",
		"maps are not safe for concurrent writes")

	svc := NewAnswerService(embedder, index, store, llm)

	result, err := svc.Query(context.Background(), "goroutines are lightweight threads", 2, 500)
	require.NoError(t, err)

	assert.Equal(t, "Goroutines are lightweight.", result.Answer)
	assert.Equal(t, 2, result.NumRetrieved)
	require.Len(t, result.Retrieved, 2)

	// The question matches one chunk verbatim, so it must come back
	// first with (near) zero distance.
	assert.Equal(t, "goroutines are lightweight threads", result.Retrieved[0].Content)
	assert.InDelta(t, 0, result.Retrieved[0].Distance, 1e-9)
	assert.GreaterOrEqual(t, result.Retrieved[1].Distance, result.Retrieved[0].Distance)

	// Prompt carries the context block and the question.
	assert.Contains(t, llm.lastPrompt, "goroutines are lightweight threads")
	assert.Contains(t, llm.lastPrompt, "Question: goroutines are lightweight threads")
	assert.Equal(t, 500, llm.lastOpts.MaxTokens)
}

func TestAnswerService_Query_RelevanceFromDistance(t *testing.T) {
	store := newFakeDocStore()
	index := newFakeIndex()
	embedder := &fakeEmbedder{}

	seedChunks(t, store, index, embedder, "alpha beta gamma")

	svc := NewAnswerService(embedder, index, store, &fakeLLM{answer: "ok"})

	result, err := svc.Query(context.Background(), "alpha beta gamma", 1, 0)
	require.NoError(t, err)
	require.Len(t, result.Retrieved, 1)
	assert.InDelta(t, 1.0, result.Retrieved[0].Relevance(), 1e-9)
}

func TestAnswerService_Query_EmptyQuestion(t *testing.T) {
	svc := NewAnswerService(&fakeEmbedder{}, newFakeIndex(), newFakeDocStore(), &fakeLLM{})

	_, err := svc.Query(context.Background(), "   ", 3, 100)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAnswerService_Query_DefaultsApplied(t *testing.T) {
	store := newFakeDocStore()
	index := newFakeIndex()
	embedder := &fakeEmbedder{}
	llm := &fakeLLM{answer: "ok"}

	contents := make([]string, domain.DefaultTopK+2)
	for i := range contents {
		contents[i] = strings.Repeat("word ", i+1)
	}
	seedChunks(t, store, index, embedder, contents...)

	svc := NewAnswerService(embedder, index, store, llm)

	result, err := svc.Query(context.Background(), "word word", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTopK, result.NumRetrieved)
	assert.Equal(t, domain.DefaultMaxTokens, llm.lastOpts.MaxTokens)
}

func TestAnswerService_Query_EmbeddingError(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("connection refused")}
	svc := NewAnswerService(embedder, newFakeIndex(), newFakeDocStore(), &fakeLLM{})

	_, err := svc.Query(context.Background(), "question", 3, 100)
	assert.ErrorIs(t, err, domain.ErrEmbeddingFailed)
}

func TestAnswerService_Query_GenerationError(t *testing.T) {
	store := newFakeDocStore()
	index := newFakeIndex()
	embedder := &fakeEmbedder{}
	llm := &fakeLLM{err: errors.New("quota exceeded")}

	seedChunks(t, store, index, embedder, "some context")

	svc := NewAnswerService(embedder, index, store, llm)

	_, err := svc.Query(context.Background(), "question", 3, 100)
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
}

func TestAnswerService_Query_SkipsDriftedChunks(t *testing.T) {
	store := newFakeDocStore()
	index := newFakeIndex()
	embedder := &fakeEmbedder{}
	llm := &fakeLLM{answer: "ok"}

	seedChunks(t, store, index, embedder, "persisted chunk")

	// Indexed but never stored, as after an interrupted ingest.
	vec, err := embedder.Embed(context.Background(), "ghost chunk")
	require.NoError(t, err)
	require.NoError(t, index.Add(context.Background(), "9_chunk_0", vec))

	svc := NewAnswerService(embedder, index, store, llm)

	result, err := svc.Query(context.Background(), "persisted chunk", 5, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, result.NumRetrieved)
	assert.Equal(t, "persisted chunk", result.Retrieved[0].Content)
}

func TestAnswerService_Query_NoIndexedChunks(t *testing.T) {
	llm := &fakeLLM{answer: "I cannot find this in the context."}
	svc := NewAnswerService(&fakeEmbedder{}, newFakeIndex(), newFakeDocStore(), llm)

	result, err := svc.Query(context.Background(), "anything", 3, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, result.NumRetrieved)
	// The LLM is still consulted with an empty context block.
	assert.Contains(t, llm.lastPrompt, "Question: anything")
}
