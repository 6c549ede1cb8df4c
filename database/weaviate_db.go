package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/tieubaoca/chatpdf/config"
	"github.com/tieubaoca/chatpdf/types"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

const BATCH_SIZE = 200

const modelDescriptionPrefix = "chatpdf index, embedding model: "

// WeaviateStore keeps the index in one Weaviate class. Vectors are supplied by the caller,
// so the class is created without a vectorizer module.
type WeaviateStore struct {
	client    *weaviate.Client
	className string
}

func NewWeaviateStore(config config.WeaviateStoreConfig) (*WeaviateStore, error) {
	var scheme string
	if strings.HasPrefix(config.Host, "https") {
		scheme = "https"
	} else {
		scheme = "http"
	}
	host := strings.TrimPrefix(config.Host, scheme+"://")
	cfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if config.APIKey != "" {
		cfg.AuthConfig = auth.ApiKey{
			Value: config.APIKey,
		}
		cfg.Headers = map[string]string{
			"X-Weaviate-Api-Key":     config.APIKey,
			"X-Weaviate-Cluster-Url": fmt.Sprintf("%s://%s", scheme, host),
		}
	}
	client, err := weaviate.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %v", err)
	}
	className := config.Class
	if className == "" {
		className = "PdfChunk"
	}
	return &WeaviateStore{
		client:    client,
		className: className,
	}, nil
}

func classObject(className, model string) *models.Class {
	return &models.Class{
		Class:       className,
		Description: modelDescriptionPrefix + model,
		Properties: []*models.Property{
			{Name: "content", DataType: []string{"text"}},
			{Name: "chunkIndex", DataType: []string{"int"}},
			{Name: "buildId", DataType: []string{"text"}},
		},
		Vectorizer:      "none",
		VectorIndexType: "hnsw",
		VectorIndexConfig: map[string]interface{}{
			"distance": "l2-squared",
		},
	}
}

// ReInit drops the class if present and recreates it empty for the given embedding model.
func (s *WeaviateStore) ReInit(ctx context.Context, model string) error {
	exists, err := s.client.Schema().ClassExistenceChecker().WithClassName(s.className).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check %s class: %v", s.className, err)
	}
	if exists {
		if err := s.client.Schema().ClassDeleter().WithClassName(s.className).Do(ctx); err != nil {
			return fmt.Errorf("failed to delete %s class: %v", s.className, err)
		}
	}
	if err := s.client.Schema().ClassCreator().WithClass(classObject(s.className, model)).Do(ctx); err != nil {
		return fmt.Errorf("failed to create %s class: %v", s.className, err)
	}
	return nil
}

func (s *WeaviateStore) Save(ctx context.Context, index *Index) error {
	if err := s.ReInit(ctx, index.EmbeddingModel); err != nil {
		return err
	}
	return s.BatchInsertChunks(ctx, index.BuildID, index.Chunks, index.Vectors)
}

func (s *WeaviateStore) BatchInsertChunks(ctx context.Context, buildID string, chunks []types.DocumentChunk, vectors [][]float32) error {
	total := len(chunks)
	for i := 0; i < total; i += BATCH_SIZE {
		end := i + BATCH_SIZE
		if end > total {
			end = total
		}

		batcher := s.client.Batch().ObjectsBatcher()
		for j := i; j < end; j++ {
			batcher = batcher.WithObjects(&models.Object{
				Class: s.className,
				ID:    strfmt.UUID(uuid.NewString()),
				Properties: map[string]interface{}{
					"content":    chunks[j].Content,
					"chunkIndex": chunks[j].Index,
					"buildId":    buildID,
				},
				Vector: vectors[j],
			})
		}

		resp, err := batcher.Do(ctx)
		if err != nil {
			return fmt.Errorf("failed to insert batch %d-%d: %v", i, end, err)
		}
		for _, obj := range resp {
			if obj.Result != nil && obj.Result.Errors != nil && len(obj.Result.Errors.Error) > 0 {
				return fmt.Errorf("failed to insert batch %d-%d: %s", i, end, obj.Result.Errors.Error[0].Message)
			}
		}
		log.Printf("Inserted batch %d-%d of %d chunks", i, end, total)
	}
	return nil
}

func (s *WeaviateStore) Open(ctx context.Context) (SimilarityIndex, error) {
	exists, err := s.client.Schema().ClassExistenceChecker().WithClassName(s.className).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s class: %v", s.className, err)
	}
	if !exists {
		return nil, ErrIndexNotFound
	}
	class, err := s.client.Schema().ClassGetter().WithClassName(s.className).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s class: %v", s.className, err)
	}
	model, ok := strings.CutPrefix(class.Description, modelDescriptionPrefix)
	if !ok {
		return nil, fmt.Errorf("class %s was not created by chatpdf", s.className)
	}
	return &weaviateIndex{store: s, model: model}, nil
}

type weaviateIndex struct {
	store *WeaviateStore
	model string
}

func (ix *weaviateIndex) Model() string {
	return ix.model
}

func (ix *weaviateIndex) Search(ctx context.Context, query []float32, k int) ([]types.SearchResult, error) {
	fields := []graphql.Field{
		{Name: "content"},
		{Name: "chunkIndex"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "distance"}}},
	}
	nearVector := ix.store.client.GraphQL().NearVectorArgBuilder().WithVector(query)
	result, err := ix.store.client.GraphQL().Get().
		WithClassName(ix.store.className).
		WithFields(fields...).
		WithNearVector(nearVector).
		WithLimit(k).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("search failed: %v", result.Errors[0].Message)
	}
	return parseSearchResults(ix.store.className, result.Data)
}

func parseSearchResults(className string, data map[string]models.JSONObject) ([]types.SearchResult, error) {
	get, ok := data["Get"].(map[string]interface{})
	if !ok {
		return nil, errors.New("search response has no Get field")
	}
	items, ok := get[className].([]interface{})
	if !ok {
		return nil, nil
	}
	results := make([]types.SearchResult, 0, len(items))
	for _, item := range items {
		doc, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		content, _ := doc["content"].(string)
		index, _ := doc["chunkIndex"].(float64)
		res := types.SearchResult{
			Chunk: types.DocumentChunk{
				Content: content,
				Index:   int(index),
			},
		}
		if additional, ok := doc["_additional"].(map[string]interface{}); ok {
			if distance, ok := additional["distance"].(float64); ok {
				res.Distance = float32(distance)
			}
		}
		results = append(results, res)
	}
	return results, nil
}
