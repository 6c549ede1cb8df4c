package types

// PDFFile is one uploaded PDF, kept in memory for a single process action.
type PDFFile struct {
	Name string
	Data []byte
}

type DocumentChunk struct {
	Content string `json:"content"` // The chunk text
	Index   int    `json:"index"`   // Position of the chunk in the corpus
}

// SearchResult is a chunk returned by a similarity query with its distance to the query vector.
type SearchResult struct {
	Chunk    DocumentChunk `json:"chunk"`
	Distance float32       `json:"distance"`
}

// DocumentServiceConfig contains configuration options for text chunking
type DocumentServiceConfig struct {
	MaxChunkSize int // Maximum size for text chunks, in characters
	OverlapSize  int // Size of overlap between chunks, in characters
}

var DefaultDocumentServiceConfig = DocumentServiceConfig{
	MaxChunkSize: 10000,
	OverlapSize:  1000,
}
