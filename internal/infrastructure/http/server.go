// Package http provides the HTTP server infrastructure.
// Clean Architecture: Framework/driver layer - outermost circle.
package http

import (
	"context"
	"embed"
	"io/fs"
	"log"
	"net/http"
	"time"

	"pdfrag/internal/domain/ports"
	"pdfrag/internal/domain/usecases"
)

//go:embed static/*
var staticFS embed.FS

// Options configures the HTTP facade.
type Options struct {
	Addr string

	// Defaults applied when a request does not specify its own values.
	ChunkSize    int
	ChunkOverlap int
	TopK         int
}

// Server is the HTTP facade over ingestion and querying.
type Server struct {
	ingest *usecases.IngestUseCase
	query  *usecases.QueryUseCase
	store  ports.DocumentStore
	llm    ports.LLMService
	opts   Options
}

// NewServer creates a new HTTP server.
func NewServer(
	ingestUC *usecases.IngestUseCase,
	queryUC *usecases.QueryUseCase,
	store ports.DocumentStore,
	llm ports.LLMService,
	opts Options,
) *Server {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = usecases.DefaultChunkSize
	}
	if opts.ChunkOverlap < 0 {
		opts.ChunkOverlap = usecases.DefaultChunkOverlap
	}
	if opts.TopK <= 0 {
		opts.TopK = usecases.DefaultTopK
	}
	return &Server{
		ingest: ingestUC,
		query:  queryUC,
		store:  store,
		llm:    llm,
		opts:   opts,
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	staticContent, _ := fs.Sub(staticFS, "static")
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ingest", s.handleIngest)
	mux.HandleFunc("/query", s.handleQuery)

	return corsMiddleware(loggingMiddleware(mux))
}

// Start runs the HTTP server until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // generate calls can take up to 30s
	}

	log.Printf("[INFO] RAG server starting on %s", s.opts.Addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	return server.ListenAndServe()
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			return
		}
		next.ServeHTTP(w, r)
	})
}
