package ingest

import "errors"

var (
	// ErrRepositoryRequired indicates a pipeline was built without storage.
	ErrRepositoryRequired = errors.New("evidence repository is required")

	// ErrEmbedderRequired indicates a pipeline was built without an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrEmbeddingMismatch indicates the embedder returned a different number
	// of vectors than texts submitted.
	ErrEmbeddingMismatch = errors.New("embedding count does not match record count")
)
