package database

import (
	"context"
	"testing"

	"github.com/tieubaoca/chatpdf/types"
)

func chunks(texts ...string) []types.DocumentChunk {
	out := make([]types.DocumentChunk, len(texts))
	for i, t := range texts {
		out[i] = types.DocumentChunk{Content: t, Index: i}
	}
	return out
}

func TestNewIndexValidates(t *testing.T) {
	tests := []struct {
		name    string
		chunks  []types.DocumentChunk
		vectors [][]float32
	}{
		{"no chunks", nil, nil},
		{"count mismatch", chunks("a", "b"), [][]float32{{1, 0}}},
		{"empty vector", chunks("a"), [][]float32{{}}},
		{"dimension mismatch", chunks("a", "b"), [][]float32{{1, 0}, {1, 0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewIndex("m", tt.chunks, tt.vectors); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestIndexSearchOrdersByDistance(t *testing.T) {
	ix, err := NewIndex("m", chunks("north", "east", "south", "north-east"), [][]float32{
		{0, 1},
		{1, 0},
		{0, -1},
		{0.7, 0.7},
	})
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	if ix.BuildID == "" || ix.Dimension != 2 || ix.Model() != "m" {
		t.Fatalf("unexpected index metadata: %+v", ix)
	}

	got, err := ix.Search(context.Background(), []float32{0, 1}, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0].Chunk.Content != "north" || got[1].Chunk.Content != "north-east" {
		t.Errorf("got %q, %q", got[0].Chunk.Content, got[1].Chunk.Content)
	}
	if got[0].Distance != 0 {
		t.Errorf("self distance = %v, want 0", got[0].Distance)
	}
}

func TestIndexSearchKLargerThanIndex(t *testing.T) {
	ix, err := NewIndex("m", chunks("a", "b"), [][]float32{{1}, {2}})
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	got, err := ix.Search(context.Background(), []float32{0}, 4)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d results, want 2", len(got))
	}
}

func TestIndexSearchTiesKeepIndexOrder(t *testing.T) {
	ix, err := NewIndex("m", chunks("first", "second", "third"), [][]float32{{1}, {-1}, {1}})
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	got, err := ix.Search(context.Background(), []float32{0}, 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Chunk.Content != want {
			t.Errorf("result %d = %q, want %q", i, got[i].Chunk.Content, want)
		}
	}
}

func TestIndexSearchRejectsWrongDimension(t *testing.T) {
	ix, err := NewIndex("m", chunks("a"), [][]float32{{1, 2}})
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	if _, err := ix.Search(context.Background(), []float32{1}, 1); err == nil {
		t.Fatal("expected dimension error")
	}
}

func TestIndexSearchUsesL2NotCosine(t *testing.T) {
	// "parallel" points the same way as the query but is far away; "near" is close but at 45°.
	ix, err := NewIndex("m", chunks("parallel", "near"), [][]float32{{10, 0}, {1, 1}})
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	got, err := ix.Search(context.Background(), []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got[0].Chunk.Content != "near" || got[0].Distance != 1 {
		t.Errorf("first result = %+v, want near at distance 1", got[0])
	}
	if got[1].Distance != 81 {
		t.Errorf("second distance = %v, want 81", got[1].Distance)
	}
}
