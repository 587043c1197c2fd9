package search

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/poiesic/medcite/ai"
	"github.com/poiesic/medcite/core"
	"github.com/poiesic/medcite/storage"
)

// Searcher runs hybrid retrieval over the evidence corpus: a structured
// lookup against stored fields and a semantic lookup against embeddings,
// executed concurrently and merged into one ranked list.
type Searcher struct {
	repository storage.EvidenceRepository
	embedder   ai.Embedder
	config     Config
	logger     *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithConfig replaces the default ranking configuration.
func WithConfig(config Config) Option {
	return func(s *Searcher) error {
		if err := config.Validate(); err != nil {
			return err
		}
		s.config = config
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(repository storage.EvidenceRepository, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		repository: repository,
		embedder:   embedder,
		config:     DefaultConfig(),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search retrieves evidence relevant to the query from both indexes.
// The topic is the exact-match key for the structured index; the query is
// the full lookup text used for substring and semantic matching. Returns up
// to MaxResults results, ranked by relevance.
func (s *Searcher) Search(ctx context.Context, topic, query string) ([]*core.RankedResult, error) {
	return s.SearchWithMonitor(ctx, topic, query, nil)
}

// SearchWithMonitor retrieves evidence relevant to the query with monitoring.
// The monitor receives callbacks at each stage of the search process.
//
// The two lookups run concurrently. A failure in one index degrades that
// side to zero results and continues; only when both fail does the search
// return an error.
func (s *Searcher) SearchWithMonitor(ctx context.Context, topic, query string, monitor SearchMonitor) ([]*core.RankedResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	var (
		structured    []*core.Evidence
		semantic      []*core.SemanticMatch
		structuredErr error
		semanticErr   error
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := s.structuredLookup(gctx, topic, query)
		if err != nil {
			structuredErr = err
			return nil
		}
		structured = records
		return nil
	})

	g.Go(func() error {
		matches, err := s.semanticLookup(gctx, query)
		if err != nil {
			semanticErr = err
			return nil
		}
		semantic = matches
		return nil
	})

	// Goroutines never return errors; Wait is for synchronization only.
	_ = g.Wait()

	if structuredErr != nil {
		s.logger.Warn("structured lookup degraded", "query", query, "err", structuredErr)
		monitor.IndexDegraded(core.OriginStructured, structuredErr)
	}
	if semanticErr != nil {
		s.logger.Warn("semantic lookup degraded", "query", query, "err", semanticErr)
		monitor.IndexDegraded(core.OriginSemantic, semanticErr)
	}
	if structuredErr != nil && semanticErr != nil {
		return nil, ErrBothIndexesFailed
	}

	monitor.AfterStructuredSearch(structured)
	monitor.AfterSemanticSearch(semantic)

	results := merge(structured, semantic, s.config.StructuredBaseline, s.config.MaxResults)
	monitor.Finish(results)

	return results, nil
}

// structuredLookup queries the structured index: exact topic match first,
// falling back to substring search over stored fields.
func (s *Searcher) structuredLookup(ctx context.Context, topic, query string) ([]*core.Evidence, error) {
	records, err := s.repository.GetEvidenceByTopic(ctx, topic)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		return records, nil
	}
	return s.repository.SearchSubstring(ctx, query, s.config.MaxResults)
}

// semanticLookup embeds the query and finds the nearest evidence vectors.
func (s *Searcher) semanticLookup(ctx context.Context, query string) ([]*core.SemanticMatch, error) {
	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.repository.FindSimilar(ctx, ai.NormalizeVector(vector), s.config.MaxResults)
}
