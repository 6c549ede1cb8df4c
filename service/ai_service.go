package service

import (
	"context"

	"golang.org/x/time/rate"
)

// Embedder produces embedding vectors. The same instance embeds chunks at index time and
// questions at query time, so both sides always use one model.
type Embedder interface {
	Model() string
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Completer sends one prompt to a chat model and returns its text.
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float32) (string, error)
}

// newLimiter returns nil when requestsPerMinute is zero, which disables throttling.
func newLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	burst := requestsPerMinute / 10
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), burst)
}

func wait(ctx context.Context, limiter *rate.Limiter) error {
	if limiter == nil {
		return nil
	}
	return limiter.Wait(ctx)
}
