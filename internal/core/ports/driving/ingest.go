package driving

import (
	"context"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

// IngestOptions configures a dataset ingest run.
type IngestOptions struct {
	// TextField is the dataset field supplying document body text.
	TextField string

	// MetadataFields lists the dataset fields passed through unchanged.
	MetadataFields []string
}

// Ingestor loads a dataset, chunks it, embeds the chunks and stores
// them in the document store and vector index.
type Ingestor interface {
	// Ingest runs the full pipeline for the dataset at path.
	Ingest(ctx context.Context, path string, opts IngestOptions) (domain.IngestStats, error)

	// Stats reports the state of the persisted collection.
	Stats(ctx context.Context) (domain.CollectionStats, error)
}
