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


package medcite

import (
	"log/slog"

	"github.com/poiesic/medcite/ai"
	"github.com/poiesic/medcite/ai/openai"
	"github.com/poiesic/medcite/cite"
	"github.com/poiesic/medcite/ingest"
	"github.com/poiesic/medcite/search"
	"github.com/poiesic/medcite/source"
	"github.com/poiesic/medcite/storage"
	"github.com/poiesic/medcite/storage/badger"
)

// Engine is the top-level facade over the retrieval system: it owns the
// evidence store, the embedding provider, the source orchestrator, and the
// search and scoring components, and exposes the two operations callers
// need, Ingest and Retrieve.
type Engine struct {
	backend      *badger.Backend
	evidenceRepo storage.EvidenceRepository
	provider     ai.AIProvider
	orchestrator *source.Orchestrator
	pipeline     *ingest.Pipeline
	searcher     *search.Searcher
	scorer       *cite.Scorer
	logger       *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig     *ai.Config
	provider     ai.AIProvider
	fetchers     []source.Fetcher
	searchConfig *search.Config
	citeConfig   *cite.Config
	inMemory     bool
	logger       *slog.Logger
}

// WithAIConfig sets the embedding provider configuration.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects a pre-built AI provider, bypassing the default
// OpenAI-compatible one. The engine takes ownership and closes it.
func WithProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithFetchers replaces the default source set (curated knowledge base and
// PubMed).
func WithFetchers(fetchers ...source.Fetcher) EngineOption {
	return func(o *engineOptions) {
		o.fetchers = fetchers
	}
}

// WithSearchConfig sets the ranking configuration.
func WithSearchConfig(config search.Config) EngineOption {
	return func(o *engineOptions) {
		o.searchConfig = &config
	}
}

// WithCiteConfig sets the citation and confidence scoring configuration.
func WithCiteConfig(config cite.Config) EngineOption {
	return func(o *engineOptions) {
		o.citeConfig = &config
	}
}

// WithInMemory opens the evidence store in memory instead of on disk.
func WithInMemory() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewEngine opens the evidence store at filePath and wires up the full
// retrieval stack.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	evidenceRepo, err := badger.NewEvidenceRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			evidenceRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	fetchers := options.fetchers
	if fetchers == nil {
		fetchers = []source.Fetcher{
			source.NewCuratedFetcher(),
			source.NewPubMedFetcher(source.NewClient()),
		}
	}

	orchestrator, err := source.NewOrchestrator(fetchers, source.WithLogger(options.logger))
	if err != nil {
		provider.Close()
		evidenceRepo.Close()
		backend.Close()
		return nil, err
	}

	pipeline, err := ingest.NewPipeline(evidenceRepo, provider.Embedder(), ingest.WithLogger(options.logger))
	if err != nil {
		orchestrator.Release()
		provider.Close()
		evidenceRepo.Close()
		backend.Close()
		return nil, err
	}

	searchOpts := []search.Option{search.WithLogger(options.logger)}
	if options.searchConfig != nil {
		searchOpts = append(searchOpts, search.WithConfig(*options.searchConfig))
	}
	searcher, err := search.NewSearcher(evidenceRepo, provider.Embedder(), searchOpts...)
	if err != nil {
		pipeline.Release()
		orchestrator.Release()
		provider.Close()
		evidenceRepo.Close()
		backend.Close()
		return nil, err
	}

	citeOpts := []cite.Option{cite.WithLogger(options.logger)}
	if options.citeConfig != nil {
		citeOpts = append(citeOpts, cite.WithConfig(*options.citeConfig))
	}
	scorer, err := cite.NewScorer(citeOpts...)
	if err != nil {
		pipeline.Release()
		orchestrator.Release()
		provider.Close()
		evidenceRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Engine{
		backend:      backend,
		evidenceRepo: evidenceRepo,
		provider:     provider,
		orchestrator: orchestrator,
		pipeline:     pipeline,
		searcher:     searcher,
		scorer:       scorer,
		logger:       options.logger,
	}, nil
}

// Close releases the worker pools and closes the provider and store.
func (e *Engine) Close() error {
	e.pipeline.Release()
	e.orchestrator.Release()

	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	if err := e.evidenceRepo.Close(); err != nil {
		e.logger.Error("error closing evidence repository", "err", err)
		return err
	}

	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// EvidenceRepository exposes the underlying evidence store.
func (e *Engine) EvidenceRepository() storage.EvidenceRepository {
	return e.evidenceRepo
}

// Embedder exposes the embedding service, for tools like reembedding that
// operate on the store directly.
func (e *Engine) Embedder() ai.Embedder {
	return e.provider.Embedder()
}
