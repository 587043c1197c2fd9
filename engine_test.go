package medcite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/medcite/ai/mock"
	"github.com/poiesic/medcite/core"
	"github.com/poiesic/medcite/source"
)

type staticFetcher struct {
	name    string
	records []*core.RawRecord
	err     error
}

func (f *staticFetcher) Name() string { return f.name }

func (f *staticFetcher) Fetch(ctx context.Context, condition string) ([]*core.RawRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func newTestEngine(t *testing.T, fetchers ...source.Fetcher) *Engine {
	t.Helper()

	opts := []EngineOption{
		WithInMemory(),
		WithProvider(mock.NewMockProvider()),
	}
	if len(fetchers) > 0 {
		opts = append(opts, WithFetchers(fetchers...))
	}

	engine, err := NewEngine("", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func diabetesRecord(url string) *core.RawRecord {
	return &core.RawRecord{
		Source:     core.SourceHealthSite,
		SourceName: "Mayo Clinic",
		Topic:      "diabetes",
		Title:      "Diabetes symptoms and causes",
		Body:       "Increased thirst and frequent urination are common early signs.",
		URL:        url,
		Facets: map[string][]string{
			core.FacetSymptoms: {"increased thirst", "frequent urination"},
		},
	}
}

func TestRetrieve(t *testing.T) {
	t.Run("answers a recognized condition with cited evidence", func(t *testing.T) {
		engine := newTestEngine(t, &staticFetcher{
			name:    "test",
			records: []*core.RawRecord{diabetesRecord("https://example.com/diabetes")},
		})

		bundle, err := engine.Retrieve(context.Background(), "What are the symptoms of diabetes?")
		require.NoError(t, err)
		require.NotEmpty(t, bundle.RankedResults)
		assert.NotEmpty(t, bundle.Citations)
		assert.LessOrEqual(t, len(bundle.Citations), 3)
		assert.Greater(t, bundle.Confidence, float32(0))
		assert.LessOrEqual(t, bundle.Confidence, float32(1))
		assert.Equal(t, "diabetes", bundle.RankedResults[0].Evidence.Topic)
	})

	t.Run("unrecognized condition gets the fallback bundle", func(t *testing.T) {
		engine := newTestEngine(t, &staticFetcher{name: "test"})

		bundle, err := engine.Retrieve(context.Background(), "what is the best pizza topping")
		require.NoError(t, err)
		assert.Empty(t, bundle.RankedResults)
		require.Len(t, bundle.Citations, 1)
		assert.Contains(t, bundle.Citations[0], "specify a condition")
		assert.InDelta(t, 0.5, float64(bundle.Confidence), 0.0001)
	})

	t.Run("one failing source does not fail the query", func(t *testing.T) {
		engine := newTestEngine(t,
			&staticFetcher{name: "down", err: errors.New("service unavailable")},
			&staticFetcher{name: "up", records: []*core.RawRecord{diabetesRecord("https://example.com/d2")}},
		)

		bundle, err := engine.Retrieve(context.Background(), "tell me about diabetes")
		require.NoError(t, err)
		assert.NotEmpty(t, bundle.RankedResults)
	})

	t.Run("all sources failing falls back to the stored corpus", func(t *testing.T) {
		engine := newTestEngine(t, &staticFetcher{name: "down", err: errors.New("service unavailable")})

		_, err := engine.IngestRecords(context.Background(),
			[]*core.RawRecord{diabetesRecord("https://example.com/d3")})
		require.NoError(t, err)

		bundle, err := engine.Retrieve(context.Background(), "diabetes treatment options")
		require.NoError(t, err)
		assert.NotEmpty(t, bundle.RankedResults)
	})

	t.Run("no evidence anywhere gets the floor confidence", func(t *testing.T) {
		engine := newTestEngine(t, &staticFetcher{name: "empty"})

		bundle, err := engine.Retrieve(context.Background(), "tell me about bronchitis")
		require.NoError(t, err)
		assert.Empty(t, bundle.RankedResults)
		assert.Empty(t, bundle.Citations)
		assert.InDelta(t, 0.3, float64(bundle.Confidence), 0.0001)
	})

	t.Run("repeat queries do not duplicate evidence", func(t *testing.T) {
		engine := newTestEngine(t, &staticFetcher{
			name:    "test",
			records: []*core.RawRecord{diabetesRecord("https://example.com/d4")},
		})

		ctx := context.Background()
		_, err := engine.Retrieve(ctx, "diabetes symptoms")
		require.NoError(t, err)
		_, err = engine.Retrieve(ctx, "diabetes symptoms")
		require.NoError(t, err)

		count, err := engine.EvidenceRepository().CountEvidence(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestIngest(t *testing.T) {
	t.Run("stores fetched records", func(t *testing.T) {
		engine := newTestEngine(t, &staticFetcher{
			name:    "test",
			records: []*core.RawRecord{diabetesRecord("https://example.com/i1")},
		})

		stats, err := engine.Ingest(context.Background(), "diabetes")
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Fetched)
		assert.Equal(t, 1, stats.Stored)
	})

	t.Run("uses the curated knowledge base by default", func(t *testing.T) {
		engine := newTestEngine(t, source.NewCuratedFetcher())

		stats, err := engine.Ingest(context.Background(), "hypertension")
		require.NoError(t, err)
		assert.Greater(t, stats.Stored, 0)
	})
}
