package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := IDFromContent("some content")
		b := IDFromContent("some content")
		assert.Equal(t, a, b)
	})

	t.Run("distinct content gives distinct ids", func(t *testing.T) {
		a := IDFromContent("first")
		b := IDFromContent("second")
		assert.NotEqual(t, a, b)
	})

	t.Run("empty content produces an id", func(t *testing.T) {
		assert.NotZero(t, IDFromContent(""))
	})
}

func TestIDFromURL(t *testing.T) {
	t.Run("same url same id", func(t *testing.T) {
		a := IDFromURL("https://example.com/article")
		b := IDFromURL("https://example.com/article")
		assert.Equal(t, a, b)
	})

	t.Run("surrounding whitespace ignored", func(t *testing.T) {
		a := IDFromURL("https://example.com/article")
		b := IDFromURL("  https://example.com/article \n")
		assert.Equal(t, a, b)
	})

	t.Run("different urls differ", func(t *testing.T) {
		a := IDFromURL("https://example.com/a")
		b := IDFromURL("https://example.com/b")
		assert.NotEqual(t, a, b)
	})
}

func TestSourceTypeString(t *testing.T) {
	assert.Equal(t, "journal", SourceJournal.String())
	assert.Equal(t, "health_site", SourceHealthSite.String())
	assert.Equal(t, "community", SourceCommunity.String())
	assert.Equal(t, "curated", SourceCurated.String())
	assert.Equal(t, "unknown", SourceType(99).String())
	assert.Equal(t, "unknown", SourceType(0).String())
}

func TestFacetValues(t *testing.T) {
	t.Run("returns entries for a present facet", func(t *testing.T) {
		ev := &Evidence{
			Facets: map[string][]string{
				FacetSymptoms: {"fatigue", "thirst"},
			},
		}
		assert.Equal(t, []string{"fatigue", "thirst"}, ev.FacetValues(FacetSymptoms))
	})

	t.Run("absent facet is nil", func(t *testing.T) {
		ev := &Evidence{Facets: map[string][]string{}}
		assert.Nil(t, ev.FacetValues(FacetCauses))
	})

	t.Run("nil map is nil", func(t *testing.T) {
		ev := &Evidence{}
		assert.Nil(t, ev.FacetValues(FacetSymptoms))
	})
}

func TestRankedResultJSON(t *testing.T) {
	t.Run("round trip preserves ranking and display fields", func(t *testing.T) {
		original := &RankedResult{
			Evidence: &Evidence{
				Title:      "Managing hypertension",
				SourceName: "Mayo Clinic",
				URL:        "https://www.mayoclinic.org/hypertension",
				Facets: map[string][]string{
					FacetTreatments: {"lifestyle changes", "diuretics"},
				},
			},
			Relevance: 0.85,
			Origin:    OriginBoth,
		}

		data, err := json.Marshal(original)
		require.NoError(t, err)

		var restored RankedResult
		require.NoError(t, json.Unmarshal(data, &restored))

		assert.Equal(t, original.Relevance, restored.Relevance)
		assert.Equal(t, original.Origin, restored.Origin)
		require.NotNil(t, restored.Evidence)
		assert.Equal(t, original.Evidence.Title, restored.Evidence.Title)
		assert.Equal(t, original.Evidence.SourceName, restored.Evidence.SourceName)
		assert.Equal(t, original.Evidence.URL, restored.Evidence.URL)
		assert.Equal(t, original.Evidence.Facets, restored.Evidence.Facets)
		assert.Equal(t, IDFromURL(original.Evidence.URL), restored.Evidence.Id)
	})

	t.Run("marshal tolerates nil evidence", func(t *testing.T) {
		data, err := json.Marshal(&RankedResult{Relevance: 0.5, Origin: OriginSemantic})
		require.NoError(t, err)
		assert.Contains(t, string(data), `"relevance":0.5`)
	})

	t.Run("vector is never serialized", func(t *testing.T) {
		r := &RankedResult{
			Evidence: &Evidence{
				Title:      "t",
				SourceName: "s",
				URL:        "https://example.com",
				Vector:     []float32{0.1, 0.2},
			},
			Relevance: 1,
			Origin:    OriginStructured,
		}
		data, err := json.Marshal(r)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "Vector")
		assert.NotContains(t, string(data), "vector")
	})
}
