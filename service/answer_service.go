package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/tieubaoca/chatpdf/types"
)

const (
	// Sampling temperature for every answer.
	AnswerTemperature float32 = 0.3

	RefusalPhrase = "answer is not available in the context"

	promptTemplate = `Answer the question as detailed as possible from the provided context, make sure to provide all the details, if the answer is not in
provided context just say, "` + RefusalPhrase + `", don't provide the wrong answer

Context:
 {context}?

Question: 
{question}

Answer:
`
)

type Answerer interface {
	Answer(ctx context.Context, question string, results []types.SearchResult) (string, error)
}

type AnswerService struct {
	completer Completer
}

func NewAnswerService(completer Completer) *AnswerService {
	return &AnswerService{completer: completer}
}

// BuildPrompt fills the template with the chunks, in order, and the question.
func BuildPrompt(question string, results []types.SearchResult) string {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = r.Chunk.Content
	}
	return strings.NewReplacer(
		"{context}", strings.Join(parts, "\n\n"),
		"{question}", question,
	).Replace(promptTemplate)
}

func (s *AnswerService) Answer(ctx context.Context, question string, results []types.SearchResult) (string, error) {
	reply, err := s.completer.Complete(ctx, BuildPrompt(question, results), AnswerTemperature)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAnswer, err)
	}
	if strings.TrimSpace(reply) == "" {
		return "", fmt.Errorf("%w: %w", ErrAnswer, errors.New("empty response"))
	}
	log.Printf("Raw answer: %q", reply)
	return reply, nil
}
