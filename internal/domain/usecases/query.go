// Package usecases - query.go handles chunk retrieval and answer generation.
package usecases

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"pdfrag/internal/domain/entities"
	"pdfrag/internal/domain/ports"
)

// DefaultTopK is the number of chunks retrieved when the caller does not
// ask for a specific count.
const DefaultTopK = 3

// QueryUseCase retrieves relevant chunks and asks the LLM for an answer.
type QueryUseCase struct {
	store  ports.DocumentStore
	ranker ports.Ranker
	llm    ports.LLMService
	model  string
}

// NewQueryUseCase creates a QueryUseCase with injected dependencies.
func NewQueryUseCase(store ports.DocumentStore, ranker ports.Ranker, llm ports.LLMService, model string) *QueryUseCase {
	return &QueryUseCase{
		store:  store,
		ranker: ranker,
		llm:    llm,
		model:  model,
	}
}

// Query ranks stored chunks against the question, builds a prompt from the
// best matches, and generates an answer. Once the question validates, the
// caller always gets an answer: gateway failures degrade to a textual
// answer instead of an error.
func (uc *QueryUseCase) Query(ctx context.Context, req *entities.QueryRequest) (*entities.QueryResult, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, entities.ErrEmptyQuestion
	}
	if req.TopK < 0 {
		return nil, fmt.Errorf("%w: got %d", entities.ErrInvalidTopK, req.TopK)
	}

	chunks, err := uc.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading store: %w", err)
	}

	top := uc.ranker.Rank(req.Question, chunks, req.TopK)

	texts := make([]string, len(top))
	for i, c := range top {
		texts[i] = c.Text
	}
	contextText := strings.Join(texts, "\n\n")

	answer := uc.generate(ctx, buildPrompt(contextText, req.Question), contextText)

	return &entities.QueryResult{
		Question:      req.Question,
		Answer:        answer,
		ContextChunks: len(top),
		Model:         uc.model,
	}, nil
}

// generate calls the gateway and maps failures onto degraded answers: a
// non-success status becomes a fixed placeholder, a transport failure
// embeds the error and a context preview so the caller still gets partial
// diagnostic value.
func (uc *QueryUseCase) generate(ctx context.Context, prompt, contextText string) string {
	answer, err := uc.llm.Generate(ctx, prompt)
	switch {
	case err == nil:
		if answer == "" {
			return "No response generated"
		}
		return answer
	case errors.Is(err, entities.ErrGatewayStatus):
		log.Printf("[ERROR] LLM call failed: %v", err)
		return "Error calling LLM"
	default:
		log.Printf("[ERROR] LLM unreachable: %v", err)
		return fmt.Sprintf("LLM error: %v. Context preview: %s...", err, preview(contextText, 200))
	}
}

// buildPrompt creates the LLM prompt with context.
func buildPrompt(contextText, question string) string {
	return fmt.Sprintf("Context: %s\n\nQuestion: %s\n\nAnswer:", contextText, question)
}

// preview returns the first n runes of s.
func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
