package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"pdfrag/internal/domain/entities"
)

// mockLLM implements ports.LLMService for testing.
type mockLLM struct {
	response   string
	err        error
	lastPrompt string
}

func (m *mockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.lastPrompt = prompt
	return m.response, m.err
}

func (m *mockLLM) Ping(ctx context.Context) error {
	return m.err
}

// passthroughRanker returns the first topK chunks unchanged.
type passthroughRanker struct{}

func (passthroughRanker) Rank(question string, chunks []entities.Chunk, topK int) []entities.Chunk {
	if topK < len(chunks) {
		return chunks[:topK]
	}
	return chunks
}

func TestQuery_EmptyQuestion(t *testing.T) {
	uc := NewQueryUseCase(&mockStore{}, passthroughRanker{}, &mockLLM{}, "test-model")

	for _, question := range []string{"", "   ", "\n\t"} {
		_, err := uc.Query(context.Background(), &entities.QueryRequest{Question: question, TopK: 3})
		if !errors.Is(err, entities.ErrEmptyQuestion) {
			t.Errorf("question %q: expected empty question error, got %v", question, err)
		}
	}
}

func TestQuery_NegativeTopK(t *testing.T) {
	uc := NewQueryUseCase(&mockStore{}, passthroughRanker{}, &mockLLM{}, "test-model")

	_, err := uc.Query(context.Background(), &entities.QueryRequest{Question: "why?", TopK: -1})
	if !errors.Is(err, entities.ErrInvalidTopK) {
		t.Errorf("expected invalid top_k error, got %v", err)
	}
}

func TestQuery_BuildsPromptFromRankedChunks(t *testing.T) {
	store := &mockStore{chunks: []entities.Chunk{
		{ID: 0, Text: "alpha", Filename: "a.txt"},
		{ID: 1, Text: "beta", Filename: "a.txt"},
	}}
	llm := &mockLLM{response: "the answer"}
	uc := NewQueryUseCase(store, passthroughRanker{}, llm, "test-model")

	result, err := uc.Query(context.Background(), &entities.QueryRequest{Question: "what?", TopK: 3})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}

	wantPrompt := "Context: alpha\n\nbeta\n\nQuestion: what?\n\nAnswer:"
	if llm.lastPrompt != wantPrompt {
		t.Errorf("unexpected prompt:\ngot  %q\nwant %q", llm.lastPrompt, wantPrompt)
	}
	if result.Answer != "the answer" {
		t.Errorf("unexpected answer: %q", result.Answer)
	}
	if result.ContextChunks != 2 {
		t.Errorf("expected 2 context chunks, got %d", result.ContextChunks)
	}
	if result.Model != "test-model" {
		t.Errorf("unexpected model: %q", result.Model)
	}
	if result.Question != "what?" {
		t.Errorf("unexpected question: %q", result.Question)
	}
}

func TestQuery_GatewayStatusErrorDegrades(t *testing.T) {
	store := &mockStore{chunks: []entities.Chunk{{ID: 0, Text: "context"}}}
	llm := &mockLLM{err: fmt.Errorf("%w: 500", entities.ErrGatewayStatus)}
	uc := NewQueryUseCase(store, passthroughRanker{}, llm, "test-model")

	result, err := uc.Query(context.Background(), &entities.QueryRequest{Question: "what?", TopK: 3})
	if err != nil {
		t.Fatalf("gateway failure must not propagate: %v", err)
	}
	if result.Answer != "Error calling LLM" {
		t.Errorf("unexpected answer: %q", result.Answer)
	}
}

func TestQuery_GatewayUnreachableEmbedsContextPreview(t *testing.T) {
	longText := strings.Repeat("lorem ipsum ", 30) // well over 200 chars
	store := &mockStore{chunks: []entities.Chunk{{ID: 0, Text: longText}}}
	llm := &mockLLM{err: fmt.Errorf("%w: connection refused", entities.ErrGatewayUnavailable)}
	uc := NewQueryUseCase(store, passthroughRanker{}, llm, "test-model")

	result, err := uc.Query(context.Background(), &entities.QueryRequest{Question: "lorem?", TopK: 3})
	if err != nil {
		t.Fatalf("gateway failure must not propagate: %v", err)
	}

	if !strings.Contains(result.Answer, "LLM error:") {
		t.Errorf("answer should contain the error marker: %q", result.Answer)
	}
	if !strings.Contains(result.Answer, "connection refused") {
		t.Errorf("answer should embed the transport error: %q", result.Answer)
	}
	if !strings.Contains(result.Answer, "Context preview: "+longText[:200]) {
		t.Errorf("answer should embed a 200-char context preview: %q", result.Answer)
	}
	if strings.Contains(result.Answer, longText) {
		t.Error("answer should not embed the full context")
	}
	if !strings.HasSuffix(result.Answer, "...") {
		t.Errorf("preview should be truncated with an ellipsis: %q", result.Answer)
	}
}

func TestQuery_EmptyCompletionGetsPlaceholder(t *testing.T) {
	store := &mockStore{chunks: []entities.Chunk{{ID: 0, Text: "context"}}}
	uc := NewQueryUseCase(store, passthroughRanker{}, &mockLLM{response: ""}, "test-model")

	result, err := uc.Query(context.Background(), &entities.QueryRequest{Question: "what?", TopK: 3})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if result.Answer != "No response generated" {
		t.Errorf("unexpected answer: %q", result.Answer)
	}
}

func TestQuery_EmptyStore(t *testing.T) {
	uc := NewQueryUseCase(&mockStore{}, passthroughRanker{}, &mockLLM{response: "no context"}, "test-model")

	result, err := uc.Query(context.Background(), &entities.QueryRequest{Question: "anything?", TopK: 3})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if result.ContextChunks != 0 {
		t.Errorf("expected 0 context chunks, got %d", result.ContextChunks)
	}
}
