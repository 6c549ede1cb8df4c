package database

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tieubaoca/chatpdf/types"
)

// ErrIndexNotFound is returned by an IndexStore when no index has been persisted yet.
var ErrIndexNotFound = errors.New("index not found")

// ErrCorruptIndex is returned when a persisted index decodes but is not self-consistent.
var ErrCorruptIndex = errors.New("corrupt index")

// SimilarityIndex answers nearest-neighbour queries over embedded chunks.
type SimilarityIndex interface {
	// Model is the embedding model the stored vectors were produced with.
	Model() string
	Search(ctx context.Context, query []float32, k int) ([]types.SearchResult, error)
}

// IndexStore persists exactly one index. Save replaces whatever was stored before.
type IndexStore interface {
	Save(ctx context.Context, index *Index) error
	Open(ctx context.Context) (SimilarityIndex, error)
}

// Index is an in-memory flat vector index. Vectors[i] is the embedding of Chunks[i].
type Index struct {
	BuildID        string
	EmbeddingModel string
	Dimension      int
	CreatedAt      int64
	Chunks         []types.DocumentChunk
	Vectors        [][]float32
}

func NewIndex(model string, chunks []types.DocumentChunk, vectors [][]float32) (*Index, error) {
	if len(chunks) == 0 {
		return nil, errors.New("no chunks to index")
	}
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("got %d vectors for %d chunks", len(vectors), len(chunks))
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, errors.New("empty embedding vector")
	}
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("vector %d has dimension %d, want %d", i, len(v), dim)
		}
	}
	return &Index{
		BuildID:        uuid.NewString(),
		EmbeddingModel: model,
		Dimension:      dim,
		CreatedAt:      time.Now().Unix(),
		Chunks:         chunks,
		Vectors:        vectors,
	}, nil
}

// Validate checks that every vector has the recorded dimension and pairs with a chunk.
func (ix *Index) Validate() error {
	if ix.Dimension <= 0 {
		return fmt.Errorf("%w: dimension %d", ErrCorruptIndex, ix.Dimension)
	}
	if len(ix.Chunks) != len(ix.Vectors) {
		return fmt.Errorf("%w: %d chunks, %d vectors", ErrCorruptIndex, len(ix.Chunks), len(ix.Vectors))
	}
	for i, v := range ix.Vectors {
		if len(v) != ix.Dimension {
			return fmt.Errorf("%w: vector %d has dimension %d, want %d", ErrCorruptIndex, i, len(v), ix.Dimension)
		}
	}
	return nil
}

func (ix *Index) Model() string {
	return ix.EmbeddingModel
}

// Search returns the k chunks closest to query by squared L2 distance.
func (ix *Index) Search(ctx context.Context, query []float32, k int) ([]types.SearchResult, error) {
	if len(query) != ix.Dimension {
		return nil, fmt.Errorf("query dimension %d does not match index dimension %d", len(query), ix.Dimension)
	}
	if k <= 0 {
		return nil, nil
	}
	if err := ix.Validate(); err != nil {
		return nil, err
	}
	results := make([]types.SearchResult, len(ix.Chunks))
	for i, vec := range ix.Vectors {
		results[i] = types.SearchResult{
			Chunk:    ix.Chunks[i],
			Distance: squaredL2(query, vec),
		}
	}
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Distance < results[b].Distance
	})
	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

func squaredL2(a, b []float32) float32 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	if math.IsNaN(sum) {
		return float32(math.Inf(1))
	}
	return float32(sum)
}
