// Package ports defines interfaces for external dependencies.
// Clean Architecture: These are the boundaries - usecases depend on these abstractions,
// not concrete implementations. Adapters implement these interfaces.
package ports

import (
	"context"

	"pdfrag/internal/domain/entities"
)

// DocumentStore holds ingested chunks in insertion order.
// Append-only: nothing is ever updated or deleted, and the store lives only
// as long as the process.
type DocumentStore interface {
	// Append adds a batch of chunks to the end of the store.
	Append(ctx context.Context, chunks []entities.Chunk) error

	// All returns a snapshot of every stored chunk in insertion order.
	All(ctx context.Context) ([]entities.Chunk, error)

	// Count reports how many chunks are stored.
	Count(ctx context.Context) (int, error)
}

// DocumentParser extracts text from binary document formats (PDF).
type DocumentParser interface {
	// Parse extracts text content from document bytes.
	Parse(ctx context.Context, data []byte, filename string) (string, error)

	// SupportedFormats returns formats this parser handles (e.g., "pdf").
	SupportedFormats() []string
}

// Ranker orders stored chunks by relevance to a question.
// The boundary exists so the linear lexical scorer can later be swapped for
// an indexed or embedding-based retriever without touching the HTTP layer.
type Ranker interface {
	// Rank returns the topK most relevant chunks, best first. Chunks with
	// no relevance to the question are never returned.
	Rank(question string, chunks []entities.Chunk, topK int) []entities.Chunk
}

// LLMService generates text responses from a language model.
type LLMService interface {
	// Generate produces a completion for the given prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// Ping reports whether the backing model service is reachable.
	Ping(ctx context.Context) error
}

// FileWatcher monitors a directory for changes.
type FileWatcher interface {
	// Watch starts monitoring the directory and emits events.
	Watch(ctx context.Context, dir string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
)
