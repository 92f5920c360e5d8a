package cli

import (
	"context"
	"errors"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driving"
)

// mockAnswerer returns a fixed result and records the call.
type mockAnswerer struct {
	result       domain.QueryResult
	err          error
	lastQuestion string
	lastTopK     int
}

func (m *mockAnswerer) Query(_ context.Context, question string, topK, _ int) (domain.QueryResult, error) {
	m.lastQuestion = question
	m.lastTopK = topK
	if m.err != nil {
		return domain.QueryResult{}, m.err
	}
	return m.result, nil
}

// mockIngestor returns fixed stats and records the call.
type mockIngestor struct {
	stats    domain.IngestStats
	colStats domain.CollectionStats
	err      error
	lastPath string
	lastOpts driving.IngestOptions
}

func (m *mockIngestor) Ingest(_ context.Context, path string, opts driving.IngestOptions) (domain.IngestStats, error) {
	m.lastPath = path
	m.lastOpts = opts
	if m.err != nil {
		return domain.IngestStats{}, m.err
	}
	return m.stats, nil
}

func (m *mockIngestor) Stats(_ context.Context) (domain.CollectionStats, error) {
	if m.err != nil {
		return domain.CollectionStats{}, m.err
	}
	return m.colStats, nil
}

var errMock = errors.New("mock failure")
