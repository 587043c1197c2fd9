package reembed

import (
	"context"
	"fmt"

	"github.com/poiesic/medcite/ai"
	"github.com/poiesic/medcite/core"
	"github.com/poiesic/medcite/ingest"
	"github.com/poiesic/medcite/source"
	"github.com/poiesic/medcite/storage"
)

// BatchProcessor regenerates embeddings for batches of evidence records.
type BatchProcessor struct {
	repository storage.EvidenceRepository
	embedder   ai.Embedder
	backoff    source.BackoffPolicy
}

// NewBatchProcessor creates a new batch processor.
// backoff controls retries around embedding API calls.
func NewBatchProcessor(repository storage.EvidenceRepository, embedder ai.Embedder, backoff source.BackoffPolicy) *BatchProcessor {
	return &BatchProcessor{
		repository: repository,
		embedder:   embedder,
		backoff:    backoff,
	}
}

// Process embeds a batch of records and writes them back to the corpus.
// The embedding text is the same composition used at ingest time, so
// reembedded vectors stay comparable to freshly ingested ones. Vectors are
// unit-normalized before storage.
func (bp *BatchProcessor) Process(ctx context.Context, records []*core.Evidence) error {
	if len(records) == 0 {
		return nil
	}

	texts := make([]string, len(records))
	for i, record := range records {
		texts[i] = ingest.EmbeddingText(record)
	}

	var embeddings [][]float32
	err := bp.backoff.Retry(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.backoff.MaxAttempts, err)
	}

	if len(embeddings) != len(records) {
		return fmt.Errorf("%w: expected %d, got %d", ErrEmbeddingMismatch, len(records), len(embeddings))
	}

	for i := range records {
		records[i].Vector = ai.NormalizeVector(embeddings[i])
	}

	if _, err := bp.repository.UpsertEvidence(ctx, records...); err != nil {
		return fmt.Errorf("failed to update records: %w", err)
	}

	return nil
}
