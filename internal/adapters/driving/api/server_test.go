package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

type mockAnswerer struct {
	result   domain.QueryResult
	err      error
	lastTopK int
}

func (m *mockAnswerer) Query(_ context.Context, _ string, topK, _ int) (domain.QueryResult, error) {
	m.lastTopK = topK
	if m.err != nil {
		return domain.QueryResult{}, m.err
	}
	return m.result, nil
}

func TestServer_Health(t *testing.T) {
	srv := httptest.NewServer(NewServer(&mockAnswerer{}).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Query(t *testing.T) {
	mock := &mockAnswerer{result: domain.QueryResult{
		Answer:       "Goroutines are lightweight.",
		NumRetrieved: 1,
		Retrieved: []domain.RetrievedChunk{
			{Content: "chunk", Metadata: map[string]any{"title": "doc"}, Distance: 0.2},
		},
	}}
	srv := httptest.NewServer(NewServer(mock).Handler())
	defer srv.Close()

	body := strings.NewReader(`{"question": "what are goroutines?", "top_k": 2}`)
	resp, err := http.Post(srv.URL+"/query", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, mock.lastTopK)

	var decoded struct {
		Response           string `json:"response"`
		NumRetrieved       int    `json:"num_documents_retrieved"`
		RetrievedDocuments []struct {
			Text     string         `json:"text"`
			Metadata map[string]any `json:"metadata"`
			Distance float64        `json:"distance"`
		} `json:"retrieved_documents"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))

	assert.Equal(t, "Goroutines are lightweight.", decoded.Response)
	assert.Equal(t, 1, decoded.NumRetrieved)
	require.Len(t, decoded.RetrievedDocuments, 1)
	assert.Equal(t, "chunk", decoded.RetrievedDocuments[0].Text)
	assert.InDelta(t, 0.2, decoded.RetrievedDocuments[0].Distance, 1e-9)
}

func TestServer_Query_MissingQuestion(t *testing.T) {
	srv := httptest.NewServer(NewServer(&mockAnswerer{}).Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/query", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_Query_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(NewServer(&mockAnswerer{}).Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/query", "application/json", strings.NewReader("not json"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_Query_MethodNotAllowed(t *testing.T) {
	srv := httptest.NewServer(NewServer(&mockAnswerer{}).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/query")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServer_Query_ServiceUnavailable(t *testing.T) {
	mock := &mockAnswerer{err: domain.ErrLLMUnavailable}
	srv := httptest.NewServer(NewServer(mock).Handler())
	defer srv.Close()

	body := strings.NewReader(`{"question": "anything"}`)
	resp, err := http.Post(srv.URL+"/query", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
