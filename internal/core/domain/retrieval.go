package domain

// RetrievedChunk is a single nearest-neighbour hit at query time.
// It is ephemeral and constructed per query.
type RetrievedChunk struct {
	// Content is the chunk text.
	Content string

	// Metadata is the chunk's pass-through metadata.
	Metadata map[string]any

	// Distance is the cosine distance reported by the vector index.
	// Lower is closer; relevance is 1 - Distance.
	Distance float64
}

// Relevance returns the similarity score for display purposes.
func (r RetrievedChunk) Relevance() float64 {
	return 1 - r.Distance
}

// QueryResult is the outcome of a full retrieve-and-generate pass.
type QueryResult struct {
	// Answer is the generated model output, verbatim.
	Answer string

	// Retrieved holds the chunks that were supplied as context,
	// in ascending distance order.
	Retrieved []RetrievedChunk

	// NumRetrieved is len(Retrieved), kept explicit for API payloads.
	NumRetrieved int
}

// IngestStats summarises an ingest run.
type IngestStats struct {
	// DocumentsLoaded is the number of documents read from the dataset.
	DocumentsLoaded int

	// ChunksCreated is the number of chunks produced by the pipeline.
	ChunksCreated int

	// ChunksIndexed is the number of chunks written to the vector index.
	ChunksIndexed int
}

// CollectionStats describes the state of the persisted index.
type CollectionStats struct {
	// TotalChunks is the number of chunks in the vector index.
	TotalChunks int

	// CollectionName is the name of the index collection.
	CollectionName string
}
