package storage

import (
	"context"
	"time"

	"github.com/poiesic/medcite/core"
)

// Repository provides common storage operations shared across backends.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// EvidenceRepository provides operations for the evidence corpus. It backs
// both retrieval mechanisms: exact/substring lookup over stored fields (the
// structured index) and nearest-neighbor lookup over embedding vectors (the
// semantic index).
type EvidenceRepository interface {
	Repository

	// UpsertEvidence stores one or more evidence records. The record ID is
	// recomputed from the URL, so re-ingesting a URL replaces the earlier
	// record instead of duplicating it. Replacement is all-or-nothing per
	// record; concurrent readers never observe a partial write.
	// Sets RetrievedAt to the current time if not already set.
	// Returns the records with IDs and timestamps populated.
	UpsertEvidence(ctx context.Context, records ...*core.Evidence) ([]*core.Evidence, error)

	// DeleteEvidence removes evidence records by their IDs.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteEvidence(ctx context.Context, ids ...core.ID) error

	// GetEvidence retrieves a single evidence record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetEvidence(ctx context.Context, id core.ID) (*core.Evidence, error)

	// GetEvidenceByURL retrieves the record stored under the given URL.
	// Returns ErrNotFound if no record exists for the URL.
	GetEvidenceByURL(ctx context.Context, url string) (*core.Evidence, error)

	// GetEvidenceByTopic retrieves all records whose normalized topic matches
	// exactly, in deterministic ID order.
	GetEvidenceByTopic(ctx context.Context, topic string) ([]*core.Evidence, error)

	// SearchSubstring retrieves up to limit records whose topic, title, or
	// body contains the query as a case-insensitive substring.
	SearchSubstring(ctx context.Context, query string, limit int) ([]*core.Evidence, error)

	// GetEvidenceByDateRange retrieves records with start <= RetrievedAt < end,
	// ordered by retrieval time.
	GetEvidenceByDateRange(ctx context.Context, start, end time.Time) ([]*core.Evidence, error)

	// CountEvidence returns the number of records in the corpus.
	CountEvidence(ctx context.Context) (int, error)

	// FindSimilar finds evidence similar to the given vector.
	// Distance is normalized to [0,1] (smaller is more similar); results are
	// ordered by distance ascending, up to limit results. Records without
	// embeddings are skipped.
	FindSimilar(ctx context.Context, vector []float32, limit int) ([]*core.SemanticMatch, error)
}
