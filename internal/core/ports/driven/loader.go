package driven

import (
	"context"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

// DatasetLoader reads documents from a local dataset file.
type DatasetLoader interface {
	// Name returns the loader name for logging and configuration.
	Name() string

	// Load reads documents from the file at path. Text is taken from
	// textField and the listed metadataFields are passed through
	// unchanged. Loaders for formats without named fields (e.g. PDF)
	// may ignore both parameters.
	Load(ctx context.Context, path, textField string, metadataFields []string) ([]domain.Document, error)
}
