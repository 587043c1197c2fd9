package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/medcite/core"
)

func makeRawRecord() *core.RawRecord {
	return &core.RawRecord{
		Source:     core.SourceHealthSite,
		SourceName: "Mayo Clinic",
		Topic:      "Diabetes",
		Title:      "Diabetes - Symptoms and causes",
		Body:       "Diabetes mellitus refers to a group of diseases.",
		URL:        "https://www.mayoclinic.org/diseases/diabetes",
	}
}

func TestNormalize(t *testing.T) {
	t.Run("lowercases topic", func(t *testing.T) {
		ev, err := Normalize(makeRawRecord())
		require.NoError(t, err)
		assert.Equal(t, "diabetes", ev.Topic)
	})

	t.Run("derives id from url", func(t *testing.T) {
		raw := makeRawRecord()
		ev, err := Normalize(raw)
		require.NoError(t, err)
		assert.Equal(t, core.IDFromURL(raw.URL), ev.Id)
	})

	t.Run("cleans markup from text fields", func(t *testing.T) {
		raw := makeRawRecord()
		raw.Title = "Diabetes overview [1]"
		raw.Body = "See <b>symptoms</b> below (updated 2024). More at https://example.com/page now."
		ev, err := Normalize(raw)
		require.NoError(t, err)
		assert.Equal(t, "Diabetes overview", ev.Title)
		assert.Equal(t, "See symptoms below . More at now.", ev.Body)
	})

	t.Run("splits and dedupes facet entries", func(t *testing.T) {
		raw := makeRawRecord()
		raw.Facets = map[string][]string{
			core.FacetSymptoms: {
				"Increased thirst\nFrequent urination",
				"increased THIRST",
				"n/a",
			},
		}
		ev, err := Normalize(raw)
		require.NoError(t, err)
		assert.Equal(t, []string{"Increased thirst", "Frequent urination"}, ev.Facets[core.FacetSymptoms])
	})

	t.Run("drops unknown facet names", func(t *testing.T) {
		raw := makeRawRecord()
		raw.Facets = map[string][]string{
			"upvotes": {"one hundred and four"},
		}
		ev, err := Normalize(raw)
		require.NoError(t, err)
		assert.Empty(t, ev.Facets)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*core.RawRecord)
			want   error
		}{
			{"topic", func(r *core.RawRecord) { r.Topic = "  " }, ErrMissingTopic},
			{"title", func(r *core.RawRecord) { r.Title = "" }, ErrMissingTitle},
			{"url", func(r *core.RawRecord) { r.URL = "" }, ErrMissingURL},
			{"source name", func(r *core.RawRecord) { r.SourceName = "" }, ErrMissingSourceName},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				raw := makeRawRecord()
				tc.mutate(raw)
				_, err := Normalize(raw)
				assert.ErrorIs(t, err, ErrRejected)
				assert.ErrorIs(t, err, tc.want)
			})
		}
	})

	t.Run("rejects nil record", func(t *testing.T) {
		_, err := Normalize(nil)
		assert.ErrorIs(t, err, ErrRejected)
	})

	t.Run("rejects invalid source type", func(t *testing.T) {
		raw := makeRawRecord()
		raw.Source = core.SourceType(99)
		_, err := Normalize(raw)
		assert.ErrorIs(t, err, ErrRejected)
	})
}

func TestNormalizeAll(t *testing.T) {
	good := makeRawRecord()
	bad := makeRawRecord()
	bad.URL = ""

	accepted, rejected := NormalizeAll([]*core.RawRecord{good, bad})
	assert.Len(t, accepted, 1)
	assert.Len(t, rejected, 1)
	assert.ErrorIs(t, rejected[0], ErrMissingURL)
}

func TestDeduplicate(t *testing.T) {
	t.Run("keeps most recent per url", func(t *testing.T) {
		older := &core.Evidence{URL: "https://a.example.com", Title: "old", RetrievedAt: time.Now().Add(-time.Hour)}
		newer := &core.Evidence{URL: "https://a.example.com", Title: "new", RetrievedAt: time.Now()}
		other := &core.Evidence{URL: "https://b.example.com", Title: "other"}

		result := Deduplicate([]*core.Evidence{older, other, newer})
		require.Len(t, result, 2)
		assert.Equal(t, "new", result[0].Title)
		assert.Equal(t, "other", result[1].Title)
	})

	t.Run("later occurrence wins on equal timestamps", func(t *testing.T) {
		ts := time.Now()
		first := &core.Evidence{URL: "https://a.example.com", Title: "first", RetrievedAt: ts}
		second := &core.Evidence{URL: "https://a.example.com", Title: "second", RetrievedAt: ts}

		result := Deduplicate([]*core.Evidence{first, second})
		require.Len(t, result, 1)
		assert.Equal(t, "second", result[0].Title)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Deduplicate(nil))
	})
}

func TestCleanText(t *testing.T) {
	t.Run("collapses whitespace", func(t *testing.T) {
		assert.Equal(t, "a b c", CleanText("a\t b \n c"))
	})

	t.Run("strips citation markers", func(t *testing.T) {
		assert.Equal(t, "High blood pressure", CleanText("High blood pressure [12][13]"))
	})
}
