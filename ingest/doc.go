// Package ingest moves raw source records into the evidence corpus. The
// pipeline normalizes and deduplicates incoming records, generates unit
// embeddings on a worker pool, and upserts the results so repeated
// ingestion of the same URLs converges instead of accumulating duplicates.
package ingest
