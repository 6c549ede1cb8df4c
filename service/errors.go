package service

import "errors"

// Error kinds returned by the pipeline. Every failure is wrapped around one of these,
// so callers can branch with errors.Is.
var (
	ErrExtraction    = errors.New("text extraction failed")
	ErrIndexBuild    = errors.New("index build failed")
	ErrNoIndex       = errors.New("no index present")
	ErrRetrieval     = errors.New("retrieval failed")
	ErrModelMismatch = errors.New("index was built with a different embedding model")
	ErrAnswer        = errors.New("answer synthesis failed")
	ErrNotReady      = errors.New("no PDF has been processed yet")
	ErrEmptyCorpus   = errors.New("no text could be extracted from the uploaded PDFs")
)
