// Package pdfdataset loads a PDF file as a single document.
package pdfdataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driven"
	"github.com/custodia-labs/askdocs/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.DatasetLoader = (*Loader)(nil)

// Loader extracts the plain text of a PDF file into one document.
// PDF files carry no named fields, so textField is ignored and the
// only metadata is the source filename.
type Loader struct{}

// New creates a PDF loader.
func New() *Loader {
	return &Loader{}
}

// Name returns the loader name.
func (l *Loader) Name() string {
	return "pdf"
}

// Load extracts text from the PDF at path.
func (l *Loader) Load(
	ctx context.Context, path, _ string, _ []string,
) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailed, err)
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", domain.ErrLoadFailed, path, err)
	}
	defer f.Close()

	textReader, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("%w: extracting text from %s: %w", domain.ErrLoadFailed, path, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, textReader); err != nil {
		return nil, fmt.Errorf("%w: reading text from %s: %w", domain.ErrLoadFailed, path, err)
	}

	text := buf.String()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: no text extracted from %s", domain.ErrLoadFailed, path)
	}

	name := filepath.Base(path)
	doc := domain.Document{
		ID:      "0",
		Title:   name,
		Content: text,
		Metadata: map[string]any{
			"filename": name,
		},
		CreatedAt: time.Now().UTC(),
	}

	logger.Info("Loaded %d characters from %s", len(text), name)
	return []domain.Document{doc}, nil
}
