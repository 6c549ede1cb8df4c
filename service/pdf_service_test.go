package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tieubaoca/chatpdf/types"
)

func TestExtractSinglePage(t *testing.T) {
	files := []types.PDFFile{{Name: "france.pdf", Data: buildPDF("The capital of France is Paris.")}}
	text, err := NewPDFService().Extract(context.Background(), files)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.Contains(text, "The capital of France is Paris.") {
		t.Errorf("Extract = %q", text)
	}
}

func TestExtractKeepsPageAndFileOrder(t *testing.T) {
	files := []types.PDFFile{
		{Name: "one.pdf", Data: buildPDF("Alpha page.", "Bravo page.")},
		{Name: "two.pdf", Data: buildPDF("Charlie page.")},
	}
	text, err := NewPDFService().Extract(context.Background(), files)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	a, b, c := strings.Index(text, "Alpha"), strings.Index(text, "Bravo"), strings.Index(text, "Charlie")
	if a < 0 || b < 0 || c < 0 {
		t.Fatalf("missing page text in %q", text)
	}
	if !(a < b && b < c) {
		t.Errorf("pages out of order in %q", text)
	}
}

func TestExtractNoTextLayer(t *testing.T) {
	files := []types.PDFFile{{Name: "scan.pdf", Data: buildPDF("")}}
	text, err := NewPDFService().Extract(context.Background(), files)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if strings.TrimSpace(text) != "" {
		t.Errorf("Extract = %q, want empty", text)
	}
}

func TestExtractMalformed(t *testing.T) {
	files := []types.PDFFile{
		{Name: "ok.pdf", Data: buildPDF("fine")},
		{Name: "broken.pdf", Data: []byte("this is not a pdf at all")},
	}
	_, err := NewPDFService().Extract(context.Background(), files)
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("error = %v, want ErrExtraction", err)
	}
	if !strings.Contains(err.Error(), "broken.pdf") {
		t.Errorf("error %q does not name the file", err)
	}
}
