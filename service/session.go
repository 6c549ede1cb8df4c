package service

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/tieubaoca/chatpdf/types"
)

type SessionState int

const (
	StateNotReady SessionState = iota
	StateReady
)

func (s SessionState) String() string {
	switch s {
	case StateReady:
		return "ready"
	default:
		return "not_ready"
	}
}

// Session sequences the pipeline for one user and owns the readiness state that gates
// the question input. Once Ready it stays Ready: a later failed build leaves the previous
// index on disk, and that index stays queryable.
type Session struct {
	extractor TextExtractor
	chunker   Chunker
	indexer   Indexer
	retriever Retriever
	answerer  Answerer

	mu      sync.Mutex
	state   SessionState
	buildMu sync.Mutex
}

func NewSession(extractor TextExtractor, chunker Chunker, indexer Indexer, retriever Retriever, answerer Answerer) *Session {
	return &Session{
		extractor: extractor,
		chunker:   chunker,
		indexer:   indexer,
		retriever: retriever,
		answerer:  answerer,
		state:     StateNotReady,
	}
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) QuestionEnabled() bool {
	return s.State() == StateReady
}

// Process extracts, chunks and indexes the files. Zero files is a no-op and returns a zero
// result with a nil error.
func (s *Session) Process(ctx context.Context, files []types.PDFFile) (types.ProcessResponse, error) {
	var res types.ProcessResponse
	if len(files) == 0 {
		return res, nil
	}

	// One build at a time.
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	for _, f := range files {
		res.Files = append(res.Files, f.Name)
	}

	corpus, err := s.extractor.Extract(ctx, files)
	if err != nil {
		return res, err
	}
	res.Characters = len([]rune(corpus))

	chunks := s.chunker.Split(corpus)
	res.Chunks = len(chunks)

	index, err := s.indexer.BuildIndex(ctx, chunks)
	if err != nil {
		log.Printf("Index build failed, state stays %s: %v", s.State(), err)
		return res, err
	}
	res.BuildID = index.BuildID

	s.mu.Lock()
	s.state = StateReady
	s.mu.Unlock()
	return res, nil
}

// Ask answers a question from the persisted index. An empty question is a no-op.
func (s *Session) Ask(ctx context.Context, question string) (types.AskResponse, error) {
	question = strings.TrimSpace(question)
	res := types.AskResponse{Question: question}
	if question == "" {
		return res, nil
	}
	if !s.QuestionEnabled() {
		return res, ErrNotReady
	}

	results, err := s.retriever.Retrieve(ctx, question)
	if err != nil {
		return res, err
	}
	res.Sources = results

	reply, err := s.answerer.Answer(ctx, question, results)
	if err != nil {
		return res, err
	}
	res.Reply = reply
	return res, nil
}
