// Package usecases contains application business rules.
// Clean Architecture: Usecases orchestrate entities and depend on port interfaces.
// They contain NO framework code - just pure business logic.
package usecases

import (
	"fmt"
	"strings"

	"pdfrag/internal/domain/entities"
)

// Default chunking parameters, in runes.
const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 100
)

// validateChunking rejects parameter pairs that would never terminate
// (overlap >= size makes the advancement step non-positive) or make no
// sense on their own.
func validateChunking(size, overlap int) error {
	if size <= 0 {
		return fmt.Errorf("%w: chunk size %d must be positive", entities.ErrInvalidChunking, size)
	}
	if overlap < 0 || overlap >= size {
		return fmt.Errorf("%w: overlap %d must satisfy 0 <= overlap < chunk size %d",
			entities.ErrInvalidChunking, overlap, size)
	}
	return nil
}

// splitText cuts text into overlapping windows of size runes, advancing
// size-overlap runes per step until the offset passes the end. Windows that
// are empty after trimming are dropped. A window may split a word; offsets
// are rune-based so a window never splits a UTF-8 sequence.
func splitText(text string, size, overlap int) ([]string, error) {
	if err := validateChunking(size, overlap); err != nil {
		return nil, err
	}

	runes := []rune(text)
	step := size - overlap

	var windows []string
	for off := 0; off < len(runes); off += step {
		end := off + size
		if end > len(runes) {
			end = len(runes)
		}
		window := string(runes[off:end])
		if strings.TrimSpace(window) != "" {
			windows = append(windows, window)
		}
	}
	return windows, nil
}
