package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

// Gemini accepts at most this many texts per batch embedding request.
const geminiEmbedBatchSize = 100

// GeminiService embeds and completes through one Gemini client, authenticated with a single API key.
type GeminiService struct {
	client         *genai.Client
	embeddingModel string
	chatModel      string
	documentModel  *genai.EmbeddingModel
	queryModel     *genai.EmbeddingModel
	limiter        *rate.Limiter
}

// NewGeminiService does not validate apiKey; an empty or wrong key fails on the first call.
func NewGeminiService(ctx context.Context, apiKey, embeddingModel, chatModel string, requestsPerMinute int) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	documentModel := client.EmbeddingModel(embeddingModel)
	documentModel.TaskType = genai.TaskTypeRetrievalDocument
	queryModel := client.EmbeddingModel(embeddingModel)
	queryModel.TaskType = genai.TaskTypeRetrievalQuery

	return &GeminiService{
		client:         client,
		embeddingModel: embeddingModel,
		chatModel:      chatModel,
		documentModel:  documentModel,
		queryModel:     queryModel,
		limiter:        newLimiter(requestsPerMinute),
	}, nil
}

func (s *GeminiService) Close() error {
	return s.client.Close()
}

func (s *GeminiService) Model() string {
	return s.embeddingModel
}

func (s *GeminiService) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for i := 0; i < len(texts); i += geminiEmbedBatchSize {
		end := i + geminiEmbedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		if err := wait(ctx, s.limiter); err != nil {
			return nil, err
		}

		batch := s.documentModel.NewBatch()
		for _, t := range texts[i:end] {
			batch.AddContent(genai.Text(t))
		}
		resp, err := s.documentModel.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunks %d-%d: %w", i, end, err)
		}
		if len(resp.Embeddings) != end-i {
			return nil, fmt.Errorf("got %d embeddings for %d chunks", len(resp.Embeddings), end-i)
		}
		for _, e := range resp.Embeddings {
			if e == nil || len(e.Values) == 0 {
				return nil, errors.New("empty embedding returned")
			}
			vectors = append(vectors, e.Values)
		}
	}
	return vectors, nil
}

func (s *GeminiService) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if err := wait(ctx, s.limiter); err != nil {
		return nil, err
	}
	resp, err := s.queryModel.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, err
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, errors.New("no embedding returned")
	}
	return resp.Embedding.Values, nil
}

func (s *GeminiService) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	if err := wait(ctx, s.limiter); err != nil {
		return "", err
	}
	model := s.client.GenerativeModel(s.chatModel)
	model.SetTemperature(temperature)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 {
		return "", errors.New("no response generated")
	}

	var content strings.Builder
	if cand := resp.Candidates[0]; cand.Content != nil {
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content.WriteString(string(text))
			}
		}
	}
	return content.String(), nil
}
