package driving

import (
	"context"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

// Answerer runs the retrieve-and-generate pipeline for a question.
type Answerer interface {
	// Query embeds the question, retrieves the topK nearest chunks and
	// asks the generative model for an answer grounded in them.
	Query(ctx context.Context, question string, topK, maxTokens int) (domain.QueryResult, error)
}
