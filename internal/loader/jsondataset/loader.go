// Package jsondataset loads documents from a JSON array file.
package jsondataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driven"
	"github.com/custodia-labs/askdocs/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.DatasetLoader = (*Loader)(nil)

// DefaultTextField is the dataset field read when none is configured.
const DefaultTextField = "content"

// Loader reads a JSON array of objects. Each object becomes one
// document: the configured text field supplies the body and the
// configured metadata fields are passed through unchanged.
type Loader struct{}

// New creates a JSON dataset loader.
func New() *Loader {
	return &Loader{}
}

// Name returns the loader name.
func (l *Loader) Name() string {
	return "json"
}

// Load reads documents from the JSON file at path.
// Items that are not objects or lack the text field are skipped,
// keeping their positional index so document IDs stay stable.
func (l *Loader) Load(
	ctx context.Context, path, textField string, metadataFields []string,
) ([]domain.Document, error) {
	if textField == "" {
		textField = DefaultTextField
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrLoadFailed, path, err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", domain.ErrLoadFailed, path, err)
	}

	now := time.Now().UTC()
	documents := make([]domain.Document, 0, len(items))

	for i, raw := range items {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailed, err)
		}

		// Non-object items (bare strings, numbers) are skipped, like
		// items missing the text field. The positional index still
		// advances so document IDs stay stable.
		var item map[string]any
		if err := json.Unmarshal(raw, &item); err != nil {
			logger.Debug("Skipping item %d: not an object", i)
			continue
		}

		text, ok := item[textField].(string)
		if !ok {
			logger.Debug("Skipping item %d: no %q field", i, textField)
			continue
		}

		doc := domain.Document{
			ID:        strconv.Itoa(i),
			Content:   text,
			Metadata:  make(map[string]any, len(metadataFields)),
			CreatedAt: now,
		}

		for _, field := range metadataFields {
			if value, ok := item[field]; ok {
				doc.Metadata[field] = value
			}
		}

		if title, ok := item["title"].(string); ok {
			doc.Title = title
		}

		documents = append(documents, doc)
	}

	logger.Info("Loaded %d documents from %s", len(documents), path)
	return documents, nil
}
