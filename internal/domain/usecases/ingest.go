package usecases

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"pdfrag/internal/domain/entities"
	"pdfrag/internal/domain/ports"
)

// MaxIngestBytes caps upload size at 50 MiB.
const MaxIngestBytes = 50 << 20

// IngestUseCase turns uploaded bytes into stored chunks.
// Single Responsibility: Only ingestion logic.
type IngestUseCase struct {
	store  ports.DocumentStore
	parser ports.DocumentParser
}

// NewIngestUseCase creates an IngestUseCase with injected dependencies.
func NewIngestUseCase(store ports.DocumentStore, parser ports.DocumentParser) *IngestUseCase {
	return &IngestUseCase{
		store:  store,
		parser: parser,
	}
}

// Ingest validates the upload, extracts its text, chunks it, and appends
// the whole batch to the store. PDF extraction is best-effort: a parser
// failure is logged and treated as "no text extracted", never propagated.
// Chunk IDs continue from the store size observed before the append.
func (uc *IngestUseCase) Ingest(ctx context.Context, filename string, data []byte, chunkSize, overlap int) (*entities.IngestResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".md", ".pdf":
	default:
		return nil, fmt.Errorf("%w: %q", entities.ErrUnsupportedFileType, filename)
	}

	if len(data) > MaxIngestBytes {
		return nil, fmt.Errorf("%w: %d bytes", entities.ErrPayloadTooLarge, len(data))
	}

	if err := validateChunking(chunkSize, overlap); err != nil {
		return nil, err
	}

	var text string
	if ext == ".pdf" {
		extracted, err := uc.parser.Parse(ctx, data, filename)
		if err != nil {
			log.Printf("[ERROR] PDF extraction failed for %s: %v", filename, err)
		} else {
			text = extracted
		}
	} else {
		text = decodeText(data)
	}

	windows, err := splitText(text, chunkSize, overlap)
	if err != nil {
		return nil, err
	}

	base, err := uc.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading store size: %w", err)
	}

	chunks := make([]entities.Chunk, 0, len(windows))
	for _, window := range windows {
		chunks = append(chunks, entities.Chunk{
			ID:       base + len(chunks),
			Text:     window,
			Filename: filename,
		})
	}

	if len(chunks) > 0 {
		if err := uc.store.Append(ctx, chunks); err != nil {
			return nil, fmt.Errorf("storing chunks: %w", err)
		}
	}

	return &entities.IngestResult{
		ChunkCount: len(chunks),
		ByteSize:   len(data),
	}, nil
}

// decodeText decodes file bytes as UTF-8, falling back to Latin-1 when the
// bytes are not valid UTF-8. Latin-1 maps every byte value, so the fallback
// cannot fail.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}
