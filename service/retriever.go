package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tieubaoca/chatpdf/database"
	"github.com/tieubaoca/chatpdf/types"
)

// DefaultTopK is the number of chunks handed to the answerer.
const DefaultTopK = 4

type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]types.SearchResult, error)
}

type RetrieverService struct {
	embedder Embedder
	store    database.IndexStore
	topK     int
}

func NewRetrieverService(embedder Embedder, store database.IndexStore) *RetrieverService {
	return &RetrieverService{
		embedder: embedder,
		store:    store,
		topK:     DefaultTopK,
	}
}

// Retrieve opens the persisted index, embeds the query and returns the closest chunks.
func (s *RetrieverService) Retrieve(ctx context.Context, query string) ([]types.SearchResult, error) {
	index, err := s.store.Open(ctx)
	if err != nil {
		if errors.Is(err, database.ErrIndexNotFound) {
			return nil, ErrNoIndex
		}
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}
	if index.Model() != s.embedder.Model() {
		return nil, fmt.Errorf("%w: %w: index uses %q, configured %q",
			ErrRetrieval, ErrModelMismatch, index.Model(), s.embedder.Model())
	}

	vector, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding query: %w", ErrRetrieval, err)
	}
	results, err := index.Search(ctx, vector, s.topK)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}
	return results, nil
}
