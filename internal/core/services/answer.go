package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driven"
	"github.com/custodia-labs/askdocs/internal/core/ports/driving"
	"github.com/custodia-labs/askdocs/internal/logger"
)

// answerPromptTemplate instructs the model to answer strictly from the
// retrieved context.
const answerPromptTemplate = `Based on the following context, please answer the user's question.
If the answer cannot be found in the context, say so clearly.

Context:
%s

Question: %s

Answer:`

// Ensure AnswerService implements the interface.
var _ driving.Answerer = (*AnswerService)(nil)

// AnswerService answers questions by retrieving the nearest chunks and
// forwarding them with the question to the LLM.
type AnswerService struct {
	embedder driven.EmbeddingService
	index    driven.VectorIndex
	docs     driven.DocumentStore
	llm      driven.LLMService
}

// NewAnswerService creates an answer service.
func NewAnswerService(
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	docs driven.DocumentStore,
	llm driven.LLMService,
) *AnswerService {
	return &AnswerService{
		embedder: embedder,
		index:    index,
		docs:     docs,
		llm:      llm,
	}
}

// Query runs retrieval then generation for a single question.
func (s *AnswerService) Query(ctx context.Context, question string, topK, maxTokens int) (domain.QueryResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.QueryResult{}, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	if maxTokens <= 0 {
		maxTokens = domain.DefaultMaxTokens
	}

	retrieved, err := s.retrieve(ctx, question, topK)
	if err != nil {
		return domain.QueryResult{}, err
	}
	logger.Debug("Retrieved %d chunks for question", len(retrieved))

	answer, err := s.generate(ctx, question, retrieved, maxTokens)
	if err != nil {
		return domain.QueryResult{}, err
	}

	return domain.QueryResult{
		Answer:       answer,
		Retrieved:    retrieved,
		NumRetrieved: len(retrieved),
	}, nil
}

// retrieve embeds the question and hydrates the nearest chunks from
// the document store.
func (s *AnswerService) retrieve(ctx context.Context, question string, topK int) ([]domain.RetrievedChunk, error) {
	embedding, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: query embedding: %w", domain.ErrEmbeddingFailed, err)
	}

	hits, err := s.index.Search(ctx, embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	retrieved := make([]domain.RetrievedChunk, 0, len(hits))
	for _, hit := range hits {
		chunk, err := s.docs.GetChunk(ctx, hit.ChunkID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Index and store can drift if an ingest was interrupted.
				logger.Warn("Chunk %s in index but not in store, skipping", hit.ChunkID)
				continue
			}
			return nil, fmt.Errorf("loading chunk %s: %w", hit.ChunkID, err)
		}
		retrieved = append(retrieved, domain.RetrievedChunk{
			Content:  chunk.Content,
			Metadata: chunk.Metadata,
			Distance: hit.Distance,
		})
	}

	return retrieved, nil
}

// generate builds the prompt from the retrieved chunks and calls the LLM.
func (s *AnswerService) generate(ctx context.Context, question string, retrieved []domain.RetrievedChunk, maxTokens int) (string, error) {
	texts := make([]string, len(retrieved))
	for i, chunk := range retrieved {
		texts[i] = chunk.Content
	}
	context := strings.Join(texts, "\n\n")

	prompt := fmt.Sprintf(answerPromptTemplate, context, question)

	answer, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}

	return answer, nil
}
