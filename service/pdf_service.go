package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/tieubaoca/chatpdf/types"
)

// TextExtractor turns uploaded PDFs into one plain-text corpus.
type TextExtractor interface {
	Extract(ctx context.Context, files []types.PDFFile) (string, error)
}

// PDFService handles PDF processing operations
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

// Extract reads every page of every file in order and concatenates the text with no separators.
// Parameters:
//   - files: PDFs in upload order
//
// Returns:
//   - string: the corpus, empty when no page carries a text layer
//   - error: ErrExtraction wrapping the parser error
func (s *PDFService) Extract(ctx context.Context, files []types.PDFFile) (string, error) {
	var corpus strings.Builder
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := s.extractFile(file)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrExtraction, file.Name, err)
		}
		corpus.WriteString(text)
	}
	return corpus.String(), nil
}

func (s *PDFService) extractFile(file types.PDFFile) (text string, err error) {
	// The parser panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(file.Data), int64(len(file.Data)))
	if err != nil {
		return "", err
	}

	totalPages := reader.NumPage()
	log.Printf("Extracting %s: %d pages", file.Name, totalPages)

	var out strings.Builder
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		fonts := make(map[string]*pdf.Font)
		for _, name := range page.Fonts() {
			font := page.Font(name)
			fonts[name] = &font
		}
		pageText, err := page.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", pageNum, err)
		}
		out.WriteString(pageText)
	}
	return out.String(), nil
}
