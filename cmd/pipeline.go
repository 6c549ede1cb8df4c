/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/tieubaoca/chatpdf/config"
	"github.com/tieubaoca/chatpdf/database"
	"github.com/tieubaoca/chatpdf/service"
	"github.com/tieubaoca/chatpdf/types"
)

type aiProvider interface {
	service.Embedder
	service.Completer
}

// pipeline holds every service built from one config.
type pipeline struct {
	session   *service.Session
	retriever *service.RetrieverService
	answerer  *service.AnswerService
	closer    func() error
}

func newAIProvider(ctx context.Context, cfg *config.Config) (aiProvider, func() error, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return service.NewOpenAIService(cfg.AIEndpoint, cfg.APIKey, cfg.EmbeddingModel, cfg.ChatModel, cfg.RequestsPerMinute), func() error { return nil }, nil
	default:
		gemini, err := service.NewGeminiService(ctx, cfg.APIKey, cfg.EmbeddingModel, cfg.ChatModel, cfg.RequestsPerMinute)
		if err != nil {
			return nil, nil, err
		}
		return gemini, gemini.Close, nil
	}
}

func newIndexStore(cfg *config.Config) (database.IndexStore, error) {
	switch cfg.Index.Backend {
	case config.BackendWeaviate:
		return database.NewWeaviateStore(cfg.WeaviateStore)
	default:
		return database.NewLocalStore(cfg.Index.Path), nil
	}
}

func newPipeline(ctx context.Context, cfg *config.Config) (*pipeline, error) {
	provider, closer, err := newAIProvider(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}
	store, err := newIndexStore(cfg)
	if err != nil {
		closer()
		return nil, fmt.Errorf("failed to open %s index store: %w", cfg.Index.Backend, err)
	}
	log.Printf("Using %s with embedding model %s and chat model %s, index backend %s",
		cfg.Provider, cfg.EmbeddingModel, cfg.ChatModel, cfg.Index.Backend)

	retriever := service.NewRetrieverService(provider, store)
	answerer := service.NewAnswerService(provider)
	session := service.NewSession(
		service.NewPDFService(),
		service.NewTextSplitter(types.DefaultDocumentServiceConfig),
		service.NewIndexService(provider, store),
		retriever,
		answerer,
	)
	return &pipeline{
		session:   session,
		retriever: retriever,
		answerer:  answerer,
		closer:    closer,
	}, nil
}

func (p *pipeline) Close() {
	if err := p.closer(); err != nil {
		log.Printf("Failed to close AI client: %v", err)
	}
}
