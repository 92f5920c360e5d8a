// Package api exposes the query pipeline over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driving"
	"github.com/custodia-labs/askdocs/internal/logger"
)

// Server handles HTTP requests against the answer service.
type Server struct {
	answerer driving.Answerer
}

// NewServer creates an API server.
func NewServer(answerer driving.Answerer) *Server {
	return &Server{answerer: answerer}
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/query", s.queryHandler)
	return mux
}

// ListenAndServe starts the server on addr and blocks.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintln(w, "ok")
}

// queryRequest is the POST /query body.
type queryRequest struct {
	Question  string `json:"question"`
	TopK      int    `json:"top_k"`
	MaxTokens int    `json:"max_tokens"`
}

// queryResponse mirrors the original pipeline's result shape.
type queryResponse struct {
	Response           string           `json:"response"`
	RetrievedDocuments []retrievedChunk `json:"retrieved_documents"`
	NumRetrieved       int              `json:"num_documents_retrieved"`
}

type retrievedChunk struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
	Distance float64        `json:"distance"`
}

// POST /query  { "question": "...", "top_k": 3, "max_tokens": 1000 }
func (s *Server) queryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	requestID := uuid.NewString()

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.Question == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}

	logger.Debug("Request %s: %q (top_k=%d)", requestID, req.Question, req.TopK)

	result, err := s.answerer.Query(r.Context(), req.Question, req.TopK, req.MaxTokens)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			status = http.StatusBadRequest
		case errors.Is(err, domain.ErrEmbeddingUnavailable), errors.Is(err, domain.ErrLLMUnavailable):
			status = http.StatusServiceUnavailable
		case errors.Is(err, context.Canceled):
			// Client went away, nothing to write.
			return
		}
		logger.Warn("Request %s failed: %v", requestID, err)
		http.Error(w, err.Error(), status)
		return
	}

	resp := queryResponse{
		Response:           result.Answer,
		RetrievedDocuments: make([]retrievedChunk, len(result.Retrieved)),
		NumRetrieved:       result.NumRetrieved,
	}
	for i, chunk := range result.Retrieved {
		resp.RetrievedDocuments[i] = retrievedChunk{
			Text:     chunk.Content,
			Metadata: chunk.Metadata,
			Distance: chunk.Distance,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Warn("Request %s: writing response: %v", requestID, err)
	}
}
