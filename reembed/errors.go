package reembed

import "errors"

var (
	// ErrEmbeddingMismatch indicates the embedder returned a different number
	// of vectors than records in the batch.
	ErrEmbeddingMismatch = errors.New("embedding count does not match record count")
)
