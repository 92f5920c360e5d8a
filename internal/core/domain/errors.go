package domain

import "errors"

// Domain errors represent pipeline stage failures.
// Each stage of the pipeline wraps its failures with the matching
// sentinel so the outermost boundary can classify them.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLoadFailed indicates the dataset could not be read or parsed.
	ErrLoadFailed = errors.New("dataset load failed")

	// ErrEmbeddingFailed indicates the embedding service returned an error.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrIndexFailed indicates the vector index or document store failed.
	ErrIndexFailed = errors.New("index operation failed")

	// ErrGenerationFailed indicates the generative model returned an error.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or unreachable. Nothing can be ingested or queried
	// without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the generative model service is not
	// configured, typically because its credential is missing from the
	// environment. Queries are rejected before any pipeline work runs.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
