package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// Inputs per embeddings request, well under the API's per-request caps.
const openaiEmbedBatchSize = 100

// OpenAIService talks to any OpenAI-compatible endpoint for both embeddings and chat.
type OpenAIService struct {
	client         *openai.Client
	embeddingModel string
	chatModel      string
	limiter        *rate.Limiter
}

func NewOpenAIService(baseURL, apiKey, embeddingModel, chatModel string, requestsPerMinute int) *OpenAIService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	client := openai.NewClientWithConfig(config)
	return &OpenAIService{
		client:         client,
		embeddingModel: embeddingModel,
		chatModel:      chatModel,
		limiter:        newLimiter(requestsPerMinute),
	}
}

func (s *OpenAIService) Model() string {
	return s.embeddingModel
}

func (s *OpenAIService) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	vectors := make([][]float32, len(texts))
	for i := 0; i < len(texts); i += openaiEmbedBatchSize {
		end := i + openaiEmbedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		if err := wait(ctx, s.limiter); err != nil {
			return nil, err
		}
		resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: texts[i:end],
			Model: openai.EmbeddingModel(s.embeddingModel),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunks %d-%d: %w", i, end, err)
		}
		if len(resp.Data) != end-i {
			return nil, fmt.Errorf("got %d embeddings for %d chunks", len(resp.Data), end-i)
		}
		for _, d := range resp.Data {
			if d.Index < 0 || d.Index >= end-i {
				return nil, fmt.Errorf("embedding index %d out of range", d.Index)
			}
			vectors[i+d.Index] = d.Embedding
		}
	}
	return vectors, nil
}

func (s *OpenAIService) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (s *OpenAIService) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	if err := wait(ctx, s.limiter); err != nil {
		return "", err
	}
	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: temperature,
		},
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response generated")
	}
	return resp.Choices[0].Message.Content, nil
}
