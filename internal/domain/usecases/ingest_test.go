package usecases

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pdfrag/internal/domain/entities"
)

// mockStore implements ports.DocumentStore for testing.
type mockStore struct {
	chunks   []entities.Chunk
	appendFn func(chunks []entities.Chunk) error
}

func (m *mockStore) Append(ctx context.Context, chunks []entities.Chunk) error {
	if m.appendFn != nil {
		return m.appendFn(chunks)
	}
	m.chunks = append(m.chunks, chunks...)
	return nil
}

func (m *mockStore) All(ctx context.Context) ([]entities.Chunk, error) {
	out := make([]entities.Chunk, len(m.chunks))
	copy(out, m.chunks)
	return out, nil
}

func (m *mockStore) Count(ctx context.Context) (int, error) {
	return len(m.chunks), nil
}

// mockParser implements ports.DocumentParser for testing.
type mockParser struct {
	text string
	err  error
}

func (m *mockParser) Parse(ctx context.Context, data []byte, filename string) (string, error) {
	return m.text, m.err
}

func (m *mockParser) SupportedFormats() []string {
	return []string{"pdf"}
}

func TestIngest_StoresTextChunks(t *testing.T) {
	store := &mockStore{}
	uc := NewIngestUseCase(store, &mockParser{})

	text := "cats are great pets. dogs are great too."
	result, err := uc.Ingest(context.Background(), "pets.txt", []byte(text), 20, 5)
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}

	if result.ChunkCount != 3 {
		t.Errorf("expected 3 chunks, got %d", result.ChunkCount)
	}
	if result.ByteSize != len(text) {
		t.Errorf("expected byte size %d, got %d", len(text), result.ByteSize)
	}
	if len(store.chunks) != 3 {
		t.Fatalf("expected 3 stored chunks, got %d", len(store.chunks))
	}
	for i, c := range store.chunks {
		if c.Filename != "pets.txt" {
			t.Errorf("chunk %d has filename %q", i, c.Filename)
		}
		if strings.TrimSpace(c.Text) == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
}

func TestIngest_UnsupportedExtension(t *testing.T) {
	store := &mockStore{}
	uc := NewIngestUseCase(store, &mockParser{})

	_, err := uc.Ingest(context.Background(), "report.docx", []byte("content"), 500, 100)
	if !errors.Is(err, entities.ErrUnsupportedFileType) {
		t.Errorf("expected unsupported file type error, got %v", err)
	}
	if len(store.chunks) != 0 {
		t.Error("nothing should be stored on rejection")
	}
}

func TestIngest_ExtensionCaseInsensitive(t *testing.T) {
	store := &mockStore{}
	uc := NewIngestUseCase(store, &mockParser{text: "extracted pdf text"})

	result, err := uc.Ingest(context.Background(), "REPORT.PDF", []byte("%PDF"), 500, 100)
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if result.ChunkCount != 1 {
		t.Errorf("expected 1 chunk, got %d", result.ChunkCount)
	}
}

func TestIngest_PayloadTooLarge(t *testing.T) {
	store := &mockStore{}
	uc := NewIngestUseCase(store, &mockParser{})

	data := make([]byte, MaxIngestBytes+1)
	_, err := uc.Ingest(context.Background(), "big.txt", data, 500, 100)
	if !errors.Is(err, entities.ErrPayloadTooLarge) {
		t.Errorf("expected payload too large error, got %v", err)
	}
}

func TestIngest_InvalidChunkingFailsBeforeExtraction(t *testing.T) {
	store := &mockStore{}
	uc := NewIngestUseCase(store, &mockParser{})

	_, err := uc.Ingest(context.Background(), "doc.txt", []byte("content"), 100, 100)
	if !errors.Is(err, entities.ErrInvalidChunking) {
		t.Errorf("expected invalid chunking error, got %v", err)
	}
}

func TestIngest_IDsContinueFromStoreSize(t *testing.T) {
	store := &mockStore{chunks: []entities.Chunk{
		{ID: 0, Text: "existing", Filename: "old.txt"},
		{ID: 1, Text: "existing", Filename: "old.txt"},
	}}
	uc := NewIngestUseCase(store, &mockParser{})

	_, err := uc.Ingest(context.Background(), "new.txt", []byte("fresh content here"), 10, 0)
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}

	for i, c := range store.chunks {
		if c.ID != i {
			t.Errorf("chunk at position %d has id %d", i, c.ID)
		}
	}
}

func TestIngest_Latin1Fallback(t *testing.T) {
	store := &mockStore{}
	uc := NewIngestUseCase(store, &mockParser{})

	// 0xE9 is not valid UTF-8 on its own; Latin-1 maps it to é.
	result, err := uc.Ingest(context.Background(), "menu.txt", []byte("caf\xe9 latte"), 500, 100)
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if result.ChunkCount != 1 {
		t.Fatalf("expected 1 chunk, got %d", result.ChunkCount)
	}
	if store.chunks[0].Text != "café latte" {
		t.Errorf("unexpected decoded text: %q", store.chunks[0].Text)
	}
}

func TestIngest_PDFExtractionFailureIsBestEffort(t *testing.T) {
	store := &mockStore{}
	uc := NewIngestUseCase(store, &mockParser{err: errors.New("corrupt xref table")})

	result, err := uc.Ingest(context.Background(), "broken.pdf", []byte("%PDF"), 500, 100)
	if err != nil {
		t.Fatalf("extraction failure must not propagate: %v", err)
	}
	if result.ChunkCount != 0 {
		t.Errorf("expected 0 chunks, got %d", result.ChunkCount)
	}
	if len(store.chunks) != 0 {
		t.Error("nothing should be stored when extraction yields no text")
	}
}

func TestIngest_EmptyFile(t *testing.T) {
	store := &mockStore{}
	uc := NewIngestUseCase(store, &mockParser{})

	result, err := uc.Ingest(context.Background(), "empty.md", nil, 500, 100)
	if err != nil {
		t.Fatalf("empty file should not error: %v", err)
	}
	if result.ChunkCount != 0 {
		t.Errorf("expected 0 chunks, got %d", result.ChunkCount)
	}
}
