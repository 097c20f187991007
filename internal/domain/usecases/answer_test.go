package usecases

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/askjersey/faqbot/internal/domain/entities"
)

// mockLLM implements ports.LLMService for testing
type mockLLM struct {
	response   string
	err        error
	calls      int
	lastSystem string
	lastUser   string
	lastTemp   float32
}

func (m *mockLLM) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error) {
	m.calls++
	m.lastSystem = systemPrompt
	m.lastUser = userPrompt
	m.lastTemp = temperature
	if m.err != nil {
		return "", m.err
	}
	if m.response != "" {
		return m.response, nil
	}
	return "mocked answer", nil
}

func storeWith(docs ...entities.RetrievedDocument) *mockVectorStore {
	return &mockVectorStore{queryFn: func(embedding []float32, k int) ([]entities.RetrievedDocument, error) {
		if len(docs) > k {
			return docs[:k], nil
		}
		return docs, nil
	}}
}

func TestAnswerQuestion_ReturnsAnswer(t *testing.T) {
	store := storeWith(entities.RetrievedDocument{
		Document: "Question: q\nAnswer: a",
		Metadata: entities.Metadata{Source: "Law.je"},
	})
	llm := &mockLLM{response: "The answer is here"}
	uc := NewAnswerUseCase(&mockEmbedder{}, store, llm, 3, nil)

	answer, err := uc.AnswerQuestion(context.Background(), "what is this?")

	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if answer != "The answer is here" {
		t.Errorf("unexpected answer: %s", answer)
	}
	if !strings.Contains(llm.lastUser, "Question: what is this?") {
		t.Errorf("user prompt should carry the literal question: %q", llm.lastUser)
	}
	if llm.lastTemp != 0.3 {
		t.Errorf("temperature should be fixed at 0.3, got %v", llm.lastTemp)
	}
}

func TestAnswerQuestion_SourceAttribution(t *testing.T) {
	store := storeWith(entities.RetrievedDocument{
		Document: "Question: tax rates?\nAnswer: 20 percent",
		Metadata: entities.Metadata{Source: "Law.je"},
	})
	llm := &mockLLM{}
	uc := NewAnswerUseCase(&mockEmbedder{}, store, llm, 3, nil)

	if _, err := uc.AnswerQuestion(context.Background(), "tax?"); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if !strings.Contains(llm.lastUser, "Context (Source: Law.je):\nQuestion: tax rates?\nAnswer: 20 percent") {
		t.Errorf("grounding context missing source attribution: %q", llm.lastUser)
	}
}

func TestAnswerQuestion_MissingQuestion(t *testing.T) {
	for _, question := range []string{"", "   ", "\n"} {
		embedder := &mockEmbedder{}
		llm := &mockLLM{}
		uc := NewAnswerUseCase(embedder, storeWith(), llm, 3, nil)

		_, err := uc.AnswerQuestion(context.Background(), question)

		if !errors.Is(err, ErrMissingQuestion) {
			t.Errorf("question %q: expected ErrMissingQuestion, got %v", question, err)
		}
		if embedder.calls != 0 || llm.calls != 0 {
			t.Errorf("question %q: no external service may be called", question)
		}
	}
}

func TestAnswerQuestion_EmptyStoreUsesSentinel(t *testing.T) {
	llm := &mockLLM{}
	uc := NewAnswerUseCase(&mockEmbedder{}, storeWith(), llm, 3, nil)

	if _, err := uc.AnswerQuestion(context.Background(), "anything?"); err != nil {
		t.Fatalf("empty retrieval must not fail the query: %v", err)
	}
	if !strings.Contains(llm.lastUser, NoLocalInformation) {
		t.Errorf("prompt should carry the sentinel context: %q", llm.lastUser)
	}
}

func TestAnswerQuestion_EmbeddingFailed(t *testing.T) {
	embedder := &mockEmbedder{embedFn: func(text string) ([]float32, error) {
		return nil, errors.New("timeout")
	}}
	llm := &mockLLM{}
	uc := NewAnswerUseCase(embedder, storeWith(), llm, 3, nil)

	_, err := uc.AnswerQuestion(context.Background(), "hello")

	if !errors.Is(err, ErrEmbeddingFailed) {
		t.Fatalf("expected ErrEmbeddingFailed, got %v", err)
	}
	if llm.calls != 0 {
		t.Error("generation must not run after a failed embedding")
	}
}

func TestAnswerQuestion_RetrievalFailed(t *testing.T) {
	store := &mockVectorStore{queryFn: func(embedding []float32, k int) ([]entities.RetrievedDocument, error) {
		return nil, errors.New("connection refused")
	}}
	llm := &mockLLM{}
	uc := NewAnswerUseCase(&mockEmbedder{}, store, llm, 3, nil)

	_, err := uc.AnswerQuestion(context.Background(), "hello")

	if !errors.Is(err, ErrRetrievalFailed) {
		t.Fatalf("expected ErrRetrievalFailed, got %v", err)
	}
	if llm.calls != 0 {
		t.Error("generation must not run after a failed retrieval")
	}
}

func TestAnswerQuestion_GenerationFailed(t *testing.T) {
	llm := &mockLLM{err: errors.New("rate limited")}
	uc := NewAnswerUseCase(&mockEmbedder{}, storeWith(), llm, 3, nil)

	answer, err := uc.AnswerQuestion(context.Background(), "hello")

	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if answer != "" {
		t.Errorf("no partial answer may be returned, got %q", answer)
	}
}

func TestBuildGroundingContext_Empty(t *testing.T) {
	if got := BuildGroundingContext(nil); got != NoLocalInformation {
		t.Errorf("expected sentinel, got %q", got)
	}
}

func TestBuildGroundingContext_Format(t *testing.T) {
	results := []entities.RetrievedDocument{
		{Document: "doc one", Metadata: entities.Metadata{Source: "Law.je"}},
		{Document: "doc two"}, // no source
	}

	got := BuildGroundingContext(results)

	want := "Context (Source: Law.je):\ndoc one\n\nContext (Source: N/A):\ndoc two"
	if got != want {
		t.Errorf("context mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}
