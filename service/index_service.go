package service

import (
	"context"
	"fmt"
	"log"

	"github.com/tieubaoca/chatpdf/database"
	"github.com/tieubaoca/chatpdf/types"
)

// Indexer embeds chunks and replaces the persisted index with them.
type Indexer interface {
	BuildIndex(ctx context.Context, chunks []types.DocumentChunk) (*database.Index, error)
}

type IndexService struct {
	embedder Embedder
	store    database.IndexStore
}

func NewIndexService(embedder Embedder, store database.IndexStore) *IndexService {
	return &IndexService{
		embedder: embedder,
		store:    store,
	}
}

// BuildIndex embeds every chunk and persists the result. Nothing is written unless every
// embedding succeeded.
func (s *IndexService) BuildIndex(ctx context.Context, chunks []types.DocumentChunk) (*database.Index, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrIndexBuild, ErrEmptyCorpus)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	vectors, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding: %w", ErrIndexBuild, err)
	}

	index, err := database.NewIndex(s.embedder.Model(), chunks, vectors)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexBuild, err)
	}
	if err := s.store.Save(ctx, index); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexBuild, err)
	}
	log.Printf("Built index %s: %d chunks, dimension %d", index.BuildID, len(chunks), index.Dimension)
	return index, nil
}
