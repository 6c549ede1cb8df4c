package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"unicode"

	"github.com/tieubaoca/chatpdf/database"
	"github.com/tieubaoca/chatpdf/types"
)

const fakeDimension = 64

// hashEmbedder maps each word to a bucket, giving a deterministic bag-of-words vector.
type hashEmbedder struct {
	model string
	err   error

	mu          sync.Mutex
	docCalls    int
	queryCalls  int
	lastQueries []string
}

func newHashEmbedder() *hashEmbedder {
	return &hashEmbedder{model: "fake-embedding"}
}

func (e *hashEmbedder) Model() string { return e.model }

func (e *hashEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	e.docCalls++
	e.mu.Unlock()
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = hashVector(t)
	}
	return out, nil
}

func (e *hashEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	e.queryCalls++
	e.lastQueries = append(e.lastQueries, text)
	e.mu.Unlock()
	if e.err != nil {
		return nil, e.err
	}
	return hashVector(text), nil
}

func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func hashVector(text string) []float32 {
	v := make([]float32, fakeDimension)
	for _, w := range words(text) {
		h := fnv.New32a()
		h.Write([]byte(w))
		v[h.Sum32()%fakeDimension]++
	}
	return v
}

var stopWords = map[string]bool{
	"what": true, "is": true, "the": true, "of": true, "a": true, "an": true, "who": true, "which": true,
}

// contextCompleter answers with the first context sentence that contains every keyword of
// the question, and refuses otherwise.
type contextCompleter struct {
	err error

	mu      sync.Mutex
	calls   int
	prompts []string
	temps   []float32
}

func (c *contextCompleter) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	c.mu.Lock()
	c.calls++
	c.prompts = append(c.prompts, prompt)
	c.temps = append(c.temps, temperature)
	c.mu.Unlock()
	if c.err != nil {
		return "", c.err
	}

	contextText, question := parsePrompt(prompt)
	var keywords []string
	for _, w := range words(question) {
		if !stopWords[w] {
			keywords = append(keywords, w)
		}
	}
	for _, sentence := range strings.SplitAfter(contextText, ".") {
		have := map[string]bool{}
		for _, w := range words(sentence) {
			have[w] = true
		}
		all := len(keywords) > 0
		for _, k := range keywords {
			if !have[k] {
				all = false
				break
			}
		}
		if all {
			return strings.TrimSpace(sentence), nil
		}
	}
	return RefusalPhrase, nil
}

func (c *contextCompleter) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func parsePrompt(prompt string) (string, string) {
	_, afterContext, _ := strings.Cut(prompt, "Context:\n")
	contextText, afterQuestion, _ := strings.Cut(afterContext, "Question: \n")
	question, _, _ := strings.Cut(afterQuestion, "\n\nAnswer:")
	return contextText, question
}

// memoryStore is an IndexStore that keeps the index in memory.
type memoryStore struct {
	index   *database.Index
	saveErr error
	openErr error
	saves   int
}

func (s *memoryStore) Save(ctx context.Context, index *database.Index) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.index = index
	return nil
}

func (s *memoryStore) Open(ctx context.Context) (database.SimilarityIndex, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	if s.index == nil {
		return nil, database.ErrIndexNotFound
	}
	return s.index, nil
}

type fakeExtractor struct {
	text  string
	err   error
	calls int
}

func (e *fakeExtractor) Extract(ctx context.Context, files []types.PDFFile) (string, error) {
	e.calls++
	return e.text, e.err
}

type countingChunker struct {
	inner Chunker
	calls int
}

func (c *countingChunker) Split(text string) []types.DocumentChunk {
	c.calls++
	return c.inner.Split(text)
}

type countingIndexer struct {
	inner Indexer
	calls int
}

func (i *countingIndexer) BuildIndex(ctx context.Context, chunks []types.DocumentChunk) (*database.Index, error) {
	i.calls++
	return i.inner.BuildIndex(ctx, chunks)
}

var errProvider = errors.New("provider unavailable")

// buildPDF writes a minimal PDF with one page per entry, each showing its text in Helvetica.
func buildPDF(pages ...string) []byte {
	var buf bytes.Buffer
	total := 3 + 2*len(pages)
	offsets := make([]int, total+1)
	obj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	buf.WriteString("%PDF-1.4\n")
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	obj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	obj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	obj(3, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	for i, text := range pages {
		pageNum, contentNum := 4+2*i, 5+2*i
		obj(pageNum, fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", contentNum))
		stream := ""
		if text != "" {
			escaped := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`).Replace(text)
			stream = "BT /F1 12 Tf 72 712 Td (" + escaped + ") Tj ET"
		}
		obj(contentNum, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", total+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= total; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", total+1, xref)
	return buf.Bytes()
}
