// Package services contains the core application services wiring the
// ingestion and question answering pipelines.
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driven"
	"github.com/custodia-labs/askdocs/internal/core/ports/driving"
	"github.com/custodia-labs/askdocs/internal/logger"
)

// DefaultCollectionName identifies the chunk collection in stats output.
const DefaultCollectionName = "documents"

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// IngestService loads documents, chunks them, embeds the chunks and
// stores everything in the document store and vector index.
type IngestService struct {
	loader     driven.DatasetLoader
	pipeline   driven.PostProcessorPipeline
	embedder   driven.EmbeddingService
	docs       driven.DocumentStore
	index      driven.VectorIndex
	collection string
}

// NewIngestService creates an ingest service.
func NewIngestService(
	loader driven.DatasetLoader,
	pipeline driven.PostProcessorPipeline,
	embedder driven.EmbeddingService,
	docs driven.DocumentStore,
	index driven.VectorIndex,
) *IngestService {
	return &IngestService{
		loader:     loader,
		pipeline:   pipeline,
		embedder:   embedder,
		docs:       docs,
		index:      index,
		collection: DefaultCollectionName,
	}
}

// Ingest runs the full pipeline for a dataset file: load, chunk,
// embed, store, index.
func (s *IngestService) Ingest(ctx context.Context, path string, opts driving.IngestOptions) (domain.IngestStats, error) {
	runID := uuid.NewString()
	logger.Section("Ingest")
	logger.Debug("Run %s: %s", runID, path)

	var stats domain.IngestStats

	documents, err := s.loader.Load(ctx, path, opts.TextField, opts.MetadataFields)
	if err != nil {
		return stats, err
	}
	stats.DocumentsLoaded = len(documents)
	logger.Info("Loaded %d documents from %s", len(documents), path)

	for i := range documents {
		doc := &documents[i]

		chunks, err := s.pipeline.Process(ctx, doc)
		if err != nil {
			return stats, fmt.Errorf("chunking document %s: %w", doc.ID, err)
		}
		stats.ChunksCreated += len(chunks)
		logger.Debug("Document %s split into %d chunks", doc.ID, len(chunks))

		if len(chunks) == 0 {
			continue
		}

		texts := make([]string, len(chunks))
		for j, chunk := range chunks {
			texts[j] = chunk.Content
		}

		embeddings, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return stats, fmt.Errorf("%w: document %s: %w", domain.ErrEmbeddingFailed, doc.ID, err)
		}

		chunkIDs := make([]string, len(chunks))
		for j := range chunks {
			chunks[j].Embedding = embeddings[j]
			chunkIDs[j] = chunks[j].ID
		}

		if err := s.docs.SaveDocument(ctx, doc); err != nil {
			return stats, fmt.Errorf("%w: document %s: %w", domain.ErrIndexFailed, doc.ID, err)
		}
		if err := s.docs.SaveChunks(ctx, chunks); err != nil {
			return stats, fmt.Errorf("%w: document %s: %w", domain.ErrIndexFailed, doc.ID, err)
		}
		if err := s.index.AddBatch(ctx, chunkIDs, embeddings); err != nil {
			return stats, fmt.Errorf("%w: document %s: %w", domain.ErrIndexFailed, doc.ID, err)
		}
		stats.ChunksIndexed += len(chunks)
	}

	logger.Info("Indexed %d chunks from %d documents", stats.ChunksIndexed, stats.DocumentsLoaded)
	return stats, nil
}

// Stats reports the current size of the indexed collection.
func (s *IngestService) Stats(ctx context.Context) (domain.CollectionStats, error) {
	count, err := s.index.Count(ctx)
	if err != nil {
		return domain.CollectionStats{}, fmt.Errorf("counting indexed chunks: %w", err)
	}

	return domain.CollectionStats{
		TotalChunks:    count,
		CollectionName: s.collection,
	}, nil
}
