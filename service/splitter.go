package service

import (
	"log"
	"unicode/utf8"

	"github.com/tieubaoca/chatpdf/types"
	"github.com/tmc/langchaingo/textsplitter"
)

// Chunker splits a corpus into ordered, overlapping chunks.
type Chunker interface {
	Split(text string) []types.DocumentChunk
}

// Boundaries tried in order: paragraph, line, word, then a hard cut between characters.
var defaultSeparators = []string{"\n\n", "\n", " ", ""}

// TextSplitter is a recursive character splitter. It splits on the coarsest separator found in
// the text, recurses into pieces that are still too long, and merges small pieces back together
// up to maxChunkSize while carrying overlapSize characters into the next chunk.
type TextSplitter struct {
	maxChunkSize int // Maximum size of each text chunk
	overlapSize  int // Size of overlap between chunks
	splitter     textsplitter.RecursiveCharacter
}

func NewTextSplitter(config types.DocumentServiceConfig) *TextSplitter {
	if config.MaxChunkSize <= 0 {
		config.MaxChunkSize = types.DefaultDocumentServiceConfig.MaxChunkSize
	}
	if config.OverlapSize < 0 || config.OverlapSize >= config.MaxChunkSize {
		config.OverlapSize = 0
	}
	return &TextSplitter{
		maxChunkSize: config.MaxChunkSize,
		overlapSize:  config.OverlapSize,
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(config.MaxChunkSize),
			textsplitter.WithChunkOverlap(config.OverlapSize),
			textsplitter.WithSeparators(defaultSeparators),
			textsplitter.WithKeepSeparator(true),
			textsplitter.WithLenFunc(utf8.RuneCountInString),
		),
	}
}

// Split returns the chunks of text in order. Chunks are whitespace-trimmed and empty ones are
// dropped, so an empty corpus gives no chunks.
func (s *TextSplitter) Split(text string) []types.DocumentChunk {
	pieces, err := s.splitter.SplitText(text)
	if err != nil {
		log.Printf("Failed to split text: %v", err)
		return nil
	}
	chunks := make([]types.DocumentChunk, 0, len(pieces))
	for _, p := range pieces {
		if p == "" {
			continue
		}
		chunks = append(chunks, types.DocumentChunk{Content: p, Index: len(chunks)})
	}
	return chunks
}
