package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/medcite/ai/mock"
	"github.com/poiesic/medcite/core"
	"github.com/poiesic/medcite/storage"
	"github.com/poiesic/medcite/storage/badger"
)

func setupPipeline(t *testing.T, opts ...Option) (*Pipeline, storage.EvidenceRepository, *mock.MockEmbedder) {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	embedder := mock.NewMockEmbedder()
	pipeline, err := NewPipeline(repo, embedder, opts...)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return pipeline, repo, embedder
}

func rawRecord(url, topic string) *core.RawRecord {
	return &core.RawRecord{
		Source:     core.SourceHealthSite,
		SourceName: "Mayo Clinic",
		Topic:      topic,
		Title:      "Overview of " + topic,
		Body:       "Details about " + topic + ".",
		URL:        url,
	}
}

func TestNewPipeline(t *testing.T) {
	t.Run("requires repository", func(t *testing.T) {
		_, err := NewPipeline(nil, mock.NewMockEmbedder())
		assert.ErrorIs(t, err, ErrRepositoryRequired)
	})

	t.Run("requires embedder", func(t *testing.T) {
		repo, backend, err := badger.NewMemoryRepository()
		require.NoError(t, err)
		defer backend.Close()
		defer repo.Close()

		_, err = NewPipeline(repo, nil)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})
}

func TestIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("stores normalized records with embeddings", func(t *testing.T) {
		pipeline, repo, _ := setupPipeline(t)

		stats, err := pipeline.Ingest(ctx, []*core.RawRecord{
			rawRecord("https://a.example.com/diabetes", "diabetes"),
			rawRecord("https://b.example.com/asthma", "asthma"),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Fetched)
		assert.Equal(t, 0, stats.Rejected)
		assert.Equal(t, 2, stats.Stored)

		stored, err := repo.GetEvidenceByTopic(ctx, "diabetes")
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.NotEmpty(t, stored[0].Vector)
	})

	t.Run("embeddings are unit vectors", func(t *testing.T) {
		pipeline, repo, _ := setupPipeline(t)

		_, err := pipeline.Ingest(ctx, []*core.RawRecord{rawRecord("https://a.example.com/flu", "flu")})
		require.NoError(t, err)

		stored, err := repo.GetEvidenceByTopic(ctx, "flu")
		require.NoError(t, err)
		require.Len(t, stored, 1)

		var sumSquares float64
		for _, v := range stored[0].Vector {
			sumSquares += float64(v) * float64(v)
		}
		assert.InDelta(t, 1.0, sumSquares, 0.001)
	})

	t.Run("rejected records are counted, not fatal", func(t *testing.T) {
		pipeline, _, _ := setupPipeline(t)

		bad := rawRecord("", "diabetes")
		stats, err := pipeline.Ingest(ctx, []*core.RawRecord{
			rawRecord("https://a.example.com/1", "diabetes"),
			bad,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Rejected)
		assert.Equal(t, 1, stats.Stored)
	})

	t.Run("reingestion is idempotent", func(t *testing.T) {
		pipeline, repo, _ := setupPipeline(t)

		batch := []*core.RawRecord{
			rawRecord("https://a.example.com/1", "diabetes"),
			rawRecord("https://b.example.com/2", "diabetes"),
		}

		_, err := pipeline.Ingest(ctx, batch)
		require.NoError(t, err)
		_, err = pipeline.Ingest(ctx, batch)
		require.NoError(t, err)

		count, err := repo.CountEvidence(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("duplicate urls in one batch collapse", func(t *testing.T) {
		pipeline, repo, _ := setupPipeline(t)

		stats, err := pipeline.Ingest(ctx, []*core.RawRecord{
			rawRecord("https://a.example.com/1", "diabetes"),
			rawRecord("https://a.example.com/1", "diabetes"),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Stored)

		count, err := repo.CountEvidence(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("embedding failure aborts storage", func(t *testing.T) {
		pipeline, repo, embedder := setupPipeline(t)

		sentinel := errors.New("embedding service down")
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, sentinel
		}

		_, err := pipeline.Ingest(ctx, []*core.RawRecord{rawRecord("https://a.example.com/1", "diabetes")})
		assert.ErrorIs(t, err, sentinel)

		count, err := repo.CountEvidence(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("small batch size splits embedding calls", func(t *testing.T) {
		pipeline, _, embedder := setupPipeline(t, WithBatchSize(1), WithPoolSize(1))

		_, err := pipeline.Ingest(ctx, []*core.RawRecord{
			rawRecord("https://a.example.com/1", "diabetes"),
			rawRecord("https://b.example.com/2", "diabetes"),
			rawRecord("https://c.example.com/3", "diabetes"),
		})
		require.NoError(t, err)
		assert.Equal(t, 3, embedder.CallCount())
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		pipeline, _, _ := setupPipeline(t)

		stats, err := pipeline.Ingest(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.Stored)
	})
}

func TestEmbeddingText(t *testing.T) {
	ev := &core.Evidence{
		Topic: "asthma",
		Title: "Asthma overview",
		Body:  "Airways narrow and swell.",
		Facets: map[string][]string{
			core.FacetSymptoms: {"wheezing", "chest tightness"},
		},
	}

	text := EmbeddingText(ev)
	assert.Contains(t, text, "asthma")
	assert.Contains(t, text, "Asthma overview")
	assert.Contains(t, text, "wheezing, chest tightness")
	assert.Contains(t, text, core.FacetSymptoms+":")
}
