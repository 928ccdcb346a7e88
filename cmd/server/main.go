// Command server runs the RAG question-answering service.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"pdfrag/internal/adapters/docstore"
	"pdfrag/internal/adapters/filewatcher"
	"pdfrag/internal/adapters/llm"
	"pdfrag/internal/adapters/parser"
	"pdfrag/internal/adapters/ranker"
	"pdfrag/internal/config"
	"pdfrag/internal/domain/ports"
	"pdfrag/internal/domain/usecases"
	httpserver "pdfrag/internal/infrastructure/http"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "path to YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[ERROR] loading config: %v", err)
	}

	store := docstore.NewMemoryStore()
	pdfParser := parser.NewPDFParser()
	gateway := llm.NewOllamaAdapter(cfg.Ollama.URL, cfg.Ollama.Model)

	ingestUC := usecases.NewIngestUseCase(store, pdfParser)
	queryUC := usecases.NewQueryUseCase(store, ranker.NewLexical(), gateway, gateway.Model())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Ingest.DataDir != "" {
		loadExisting(ctx, ingestUC, cfg)
		if cfg.WatchEnabled() {
			go watchDocuments(ctx, ingestUC, cfg)
		}
	}

	server := httpserver.NewServer(ingestUC, queryUC, store, gateway, httpserver.Options{
		Addr:         cfg.Server.Addr,
		ChunkSize:    cfg.Chunking.Size,
		ChunkOverlap: cfg.Chunking.Overlap,
		TopK:         cfg.Query.TopK,
	})

	if err := server.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("[ERROR] server: %v", err)
	}
}

// loadExisting ingests documents already present in the data directory so
// the store is warm before the first query.
func loadExisting(ctx context.Context, ingest *usecases.IngestUseCase, cfg *config.Config) {
	entries, err := os.ReadDir(cfg.Ingest.DataDir)
	if err != nil {
		log.Printf("[WARN] reading %s: %v", cfg.Ingest.DataDir, err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ingestFile(ctx, ingest, cfg, filepath.Join(cfg.Ingest.DataDir, entry.Name()))
	}
}

// watchDocuments auto-ingests files dropped into the data directory.
func watchDocuments(ctx context.Context, ingest *usecases.IngestUseCase, cfg *config.Config) {
	watcher, err := filewatcher.NewFSNotifyWatcher(nil)
	if err != nil {
		log.Printf("[WARN] file watching disabled: %v", err)
		return
	}
	defer watcher.Stop()

	events, err := watcher.Watch(ctx, cfg.Ingest.DataDir)
	if err != nil {
		log.Printf("[WARN] watching %s: %v", cfg.Ingest.DataDir, err)
		return
	}
	log.Printf("[INFO] watching %s for documents", cfg.Ingest.DataDir)

	for event := range events {
		if event.Operation == ports.FileDeleted {
			continue // the store is append-only
		}
		ingestFile(ctx, ingest, cfg, event.Path)
	}
}

func ingestFile(ctx context.Context, ingest *usecases.IngestUseCase, cfg *config.Config, path string) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".pdf":
	default:
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[WARN] reading %s: %v", path, err)
		return
	}

	result, err := ingest.Ingest(ctx, filepath.Base(path), data, cfg.Chunking.Size, cfg.Chunking.Overlap)
	if err != nil {
		log.Printf("[WARN] ingesting %s: %v", path, err)
		return
	}
	log.Printf("[INFO] ingested %s: %d chunks", path, result.ChunkCount)
}
