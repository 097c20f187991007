// Package usecases - answer.go handles retrieval, grounding and generation.
package usecases

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/askjersey/faqbot/internal/domain/entities"
	"github.com/askjersey/faqbot/internal/domain/ports"
)

// NoLocalInformation is the grounding context used when retrieval
// returns nothing. The generation prompt depends on this exact string.
const NoLocalInformation = "No specific local information found."

// systemPrompt constrains the model to the retrieved context. Answering
// from general knowledge is allowed only when explicitly labelled.
const systemPrompt = "You are a helpful assistant answering questions about Jersey. " +
	"Answer using ONLY the provided context. If the context does not contain " +
	"enough information to answer, say that you have no specific local " +
	"information; you may then answer from general knowledge, but you must " +
	"clearly label that part of your answer as general knowledge."

// generationTemperature biases the model toward factual phrasing.
const generationTemperature = 0.3

// AnswerUseCase runs the embed -> retrieve -> ground -> generate pipeline
// for a single question. Each external call is attempted exactly once;
// retry policy belongs to the caller.
type AnswerUseCase struct {
	embedder ports.EmbeddingService
	store    ports.VectorStore
	llm      ports.LLMService
	topK     int
	logger   *zap.Logger
}

// NewAnswerUseCase creates an AnswerUseCase with injected dependencies.
func NewAnswerUseCase(
	embedder ports.EmbeddingService,
	store ports.VectorStore,
	llm ports.LLMService,
	topK int,
	logger *zap.Logger,
) *AnswerUseCase {
	if topK <= 0 {
		topK = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnswerUseCase{
		embedder: embedder,
		store:    store,
		llm:      llm,
		topK:     topK,
		logger:   logger,
	}
}

// AnswerQuestion produces a grounded answer for the question.
// Error categories: ErrMissingQuestion before any external call,
// then ErrEmbeddingFailed, ErrRetrievalFailed or ErrGenerationFailed
// depending on which stage broke.
func (uc *AnswerUseCase) AnswerQuestion(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrMissingQuestion
	}

	embedding, err := uc.embedder.Embed(ctx, question)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	results, err := uc.store.Query(ctx, embedding, uc.topK)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRetrievalFailed, err)
	}
	uc.logger.Debug("retrieved grounding documents", zap.Int("matches", len(results)))

	groundingContext := BuildGroundingContext(results)

	userPrompt := fmt.Sprintf("Context:\n%s\n\nQuestion: %s", groundingContext, question)
	answer, err := uc.llm.Complete(ctx, systemPrompt, userPrompt, generationTemperature)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return answer, nil
}

// BuildGroundingContext renders ranked matches into a single context
// string with source attribution, or the no-information sentinel when
// retrieval came back empty.
func BuildGroundingContext(results []entities.RetrievedDocument) string {
	if len(results) == 0 {
		return NoLocalInformation
	}

	parts := make([]string, len(results))
	for i, r := range results {
		source := r.Metadata.Source
		if source == "" {
			source = "N/A"
		}
		parts[i] = fmt.Sprintf("Context (Source: %s):\n%s", source, r.Document)
	}
	return strings.Join(parts, "\n\n")
}
