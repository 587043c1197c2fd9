// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ingest

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/medcite/ai"
	"github.com/poiesic/medcite/core"
	"github.com/poiesic/medcite/normalize"
	"github.com/poiesic/medcite/storage"
)

const defaultBatchSize = 16

// Pipeline turns raw source records into indexed evidence: normalize,
// deduplicate, embed, store. Embedding runs in batches on a worker pool;
// storage writes happen once all batches finish, so a failed embedding run
// never leaves half a batch indexed.
type Pipeline struct {
	repository storage.EvidenceRepository
	embedder   ai.Embedder
	pool       *ants.Pool
	batchSize  int
	logger     *slog.Logger
}

// Stats reports the outcome of an ingestion run.
type Stats struct {
	// Fetched is the number of raw records handed to the pipeline.
	Fetched int

	// Rejected is the number of records the normalizer refused.
	Rejected int

	// Stored is the number of evidence records written to the corpus.
	Stored int
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many records are embedded per API call.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size > 0 {
			p.batchSize = size
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(repository storage.EvidenceRepository, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repository: repository,
		embedder:   embedder,
		pool:       pool,
		batchSize:  defaultBatchSize,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Ingest normalizes, embeds, and stores a batch of raw records. Rejected
// records are counted and logged but do not fail the run; an embedding or
// storage error does. Re-ingesting a URL replaces the stored record.
func (p *Pipeline) Ingest(ctx context.Context, raws []*core.RawRecord) (*Stats, error) {
	stats := &Stats{Fetched: len(raws)}

	accepted, rejections := normalize.NormalizeAll(raws)
	stats.Rejected = len(rejections)
	for _, err := range rejections {
		p.logger.Debug("record rejected during normalization", "err", err)
	}

	records := normalize.Deduplicate(accepted)
	if len(records) == 0 {
		return stats, nil
	}

	if err := p.embedAll(ctx, records); err != nil {
		return stats, err
	}

	stored, err := p.repository.UpsertEvidence(ctx, records...)
	if err != nil {
		return stats, err
	}
	stats.Stored = len(stored)

	p.logger.Info("ingestion complete",
		"fetched", stats.Fetched, "rejected", stats.Rejected, "stored", stats.Stored)
	return stats, nil
}

// embedAll generates embeddings for all records, batched across the worker
// pool. Vectors are unit-normalized so the semantic index can use dot
// products as cosine similarity.
func (p *Pipeline) embedAll(ctx context.Context, records []*core.Evidence) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for start := 0; start < len(records); start += p.batchSize {
		end := start + p.batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()

			texts := make([]string, len(batch))
			for i, record := range batch {
				texts[i] = EmbeddingText(record)
			}

			vectors, err := p.embedder.EmbedTexts(ctx, texts)
			if err == nil && len(vectors) != len(batch) {
				err = ErrEmbeddingMismatch
			}
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}

			for i, record := range batch {
				record.Vector = ai.NormalizeVector(vectors[i])
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
		}
	}

	wg.Wait()
	return firstErr
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
