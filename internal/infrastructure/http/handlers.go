package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"pdfrag/internal/domain/entities"
)

// handleIndex serves the embedded web UI.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "index not available", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// handleHealth reports server health and gateway reachability. Probe
// failures are reported as "disconnected", never as an HTTP error.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ollamaStatus := "connected"
	if err := s.llm.Ping(r.Context()); err != nil {
		log.Printf("[WARN] ollama health check failed: %v", err)
		ollamaStatus = "disconnected"
	}

	count, err := s.store.Count(r.Context())
	if err != nil {
		count = 0
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "healthy",
		"documents_stored": count,
		"ollama":           ollamaStatus,
	})
}

// handleIngest accepts a multipart upload with optional chunk_size and
// overlap query parameters.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	chunkSize, err := intParam(r, "chunk_size", s.opts.ChunkSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	overlap, err := intParam(r, "overlap", s.opts.ChunkOverlap)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	result, err := s.ingest.Ingest(r.Context(), header.Filename, data, chunkSize, overlap)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":            "success",
		"chunks":            result.ChunkCount,
		"file_size_bytes":   result.ByteSize,
		"embedding_time_ms": 0,
	})
}

// queryRequest is the /query JSON body.
type queryRequest struct {
	Question    string  `json:"question"`
	TopK        int     `json:"top_k"`
	Temperature float64 `json:"temperature"`
}

// handleQuery answers a question from the ingested documents.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req := queryRequest{TopK: s.opts.TopK, Temperature: 0.3}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	// TODO: forward temperature as an Ollama generate option. Today it is
	// accepted here and then ignored.
	result, err := s.query.Query(r.Context(), &entities.QueryRequest{
		Question:    req.Question,
		TopK:        req.TopK,
		Temperature: req.Temperature,
	})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"question":          result.Question,
		"answer":            result.Answer,
		"context_chunks":    result.ContextChunks,
		"inference_time_ms": 0,
		"model":             result.Model,
	})
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// statusFor maps validation errors to 400; everything else is a 500.
// Gateway failures never reach here - the query usecase degrades them into
// answers.
func statusFor(err error) int {
	switch {
	case errors.Is(err, entities.ErrUnsupportedFileType),
		errors.Is(err, entities.ErrPayloadTooLarge),
		errors.Is(err, entities.ErrEmptyQuestion),
		errors.Is(err, entities.ErrInvalidTopK),
		errors.Is(err, entities.ErrInvalidChunking):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
