package cite

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/medcite/core"
)

func ranked(sourceName string, relevance float32) *core.RankedResult {
	return &core.RankedResult{
		Evidence: &core.Evidence{
			Topic:      "diabetes",
			Title:      "Diabetes overview",
			Body:       "Some body text.",
			Source:     core.SourceHealthSite,
			SourceName: sourceName,
			URL:        "https://" + strings.ReplaceAll(strings.ToLower(sourceName), " ", "") + ".example.com",
		},
		Relevance: relevance,
		Origin:    core.OriginStructured,
	}
}

func TestScore(t *testing.T) {
	t.Run("empty results get the floor confidence", func(t *testing.T) {
		scorer, err := NewScorer()
		require.NoError(t, err)

		bundle := scorer.Score(nil)
		assert.Empty(t, bundle.Citations)
		assert.InDelta(t, 0.3, float64(bundle.Confidence), 0.0001)
	})

	t.Run("confidence stays within bounds", func(t *testing.T) {
		scorer, err := NewScorer()
		require.NoError(t, err)

		results := []*core.RankedResult{
			ranked("Mayo Clinic", 1.0),
			ranked("WebMD", 1.0),
			ranked("JAMA", 1.0),
			ranked("NEJM", 1.0),
		}
		results[0].Evidence.Body = strings.Repeat("evidence ", 1000)

		bundle := scorer.Score(results)
		assert.LessOrEqual(t, bundle.Confidence, float32(1.0))
		assert.GreaterOrEqual(t, bundle.Confidence, float32(0.0))
	})

	t.Run("citation count capped", func(t *testing.T) {
		scorer, err := NewScorer()
		require.NoError(t, err)

		var results []*core.RankedResult
		for i := 0; i < 6; i++ {
			r := ranked("WebMD", 0.8)
			r.Evidence.URL = fmt.Sprintf("https://webmd.example.com/%d", i)
			results = append(results, r)
		}

		bundle := scorer.Score(results)
		assert.Len(t, bundle.Citations, 3)
	})

	t.Run("citations follow rank order", func(t *testing.T) {
		scorer, err := NewScorer()
		require.NoError(t, err)

		first := ranked("Mayo Clinic", 0.95)
		second := ranked("WebMD", 0.7)

		bundle := scorer.Score([]*core.RankedResult{first, second})
		require.Len(t, bundle.Citations, 2)
		assert.Contains(t, bundle.Citations[0], "Mayo Clinic")
		assert.Contains(t, bundle.Citations[1], "WebMD")
	})

	t.Run("distinct sources raise confidence", func(t *testing.T) {
		scorer, err := NewScorer()
		require.NoError(t, err)

		one := scorer.Score([]*core.RankedResult{
			ranked("HealthForum", 0.6),
		})
		three := scorer.Score([]*core.RankedResult{
			ranked("HealthForum", 0.6),
			ranked("OtherSite", 0.6),
			ranked("ThirdSite", 0.6),
		})
		assert.Greater(t, three.Confidence, one.Confidence)
	})

	t.Run("authority bonus applies once", func(t *testing.T) {
		scorer, err := NewScorer()
		require.NoError(t, err)

		noAuthority := scorer.Score([]*core.RankedResult{ranked("SomeBlog", 0.6)})
		oneAuthority := scorer.Score([]*core.RankedResult{ranked("Mayo Clinic", 0.6)})

		assert.InDelta(t, 0.2, float64(oneAuthority.Confidence-noAuthority.Confidence), 0.0001)

		// Two authorities add the diversity increment but not a second
		// authority bonus.
		lowOne := scorer.Score([]*core.RankedResult{ranked("Mayo Clinic", 0.4)})
		lowTwo := scorer.Score([]*core.RankedResult{
			ranked("Mayo Clinic", 0.4),
			ranked("JAMA", 0.4),
		})
		assert.InDelta(t, 0.1, float64(lowTwo.Confidence-lowOne.Confidence), 0.01)
	})

	t.Run("more evidence text raises confidence up to the cap", func(t *testing.T) {
		scorer, err := NewScorer()
		require.NoError(t, err)

		short := ranked("SomeBlog", 0.5)
		short.Evidence.Body = "brief"

		long := ranked("SomeBlog", 0.5)
		long.Evidence.Body = strings.Repeat("detailed evidence text ", 50)

		shortBundle := scorer.Score([]*core.RankedResult{short})
		longBundle := scorer.Score([]*core.RankedResult{long})
		assert.Greater(t, longBundle.Confidence, shortBundle.Confidence)

		huge := ranked("SomeBlog", 0.5)
		huge.Evidence.Body = strings.Repeat("x", 100000)
		hugeBundle := scorer.Score([]*core.RankedResult{huge})
		assert.InDelta(t, float64(longBundle.Confidence), float64(hugeBundle.Confidence), 0.21)
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		_, err := NewScorer(WithConfig(Config{MaxCitations: 0}))
		assert.ErrorIs(t, err, ErrInvalidMaxCitations)

		_, err = NewScorer(WithConfig(Config{MaxCitations: 3, AuthorityBonus: 1.5}))
		assert.ErrorIs(t, err, ErrInvalidWeight)
	})
}

func TestFormatCitation(t *testing.T) {
	t.Run("journal with year", func(t *testing.T) {
		ev := &core.Evidence{
			Source:     core.SourceJournal,
			SourceName: "NEJM",
			Title:      "Glycemic control outcomes",
			Year:       "2024",
			URL:        "https://pubmed.ncbi.nlm.nih.gov/12345/",
		}
		assert.Equal(t, "NEJM (2024). Glycemic control outcomes. https://pubmed.ncbi.nlm.nih.gov/12345/", FormatCitation(ev))
	})

	t.Run("journal without year", func(t *testing.T) {
		ev := &core.Evidence{
			Source:     core.SourceJournal,
			SourceName: "JAMA",
			Title:      "A study.",
			URL:        "https://pubmed.ncbi.nlm.nih.gov/6789/",
		}
		assert.Equal(t, "JAMA. A study. https://pubmed.ncbi.nlm.nih.gov/6789/", FormatCitation(ev))
	})

	t.Run("health site", func(t *testing.T) {
		ev := &core.Evidence{
			Source:     core.SourceHealthSite,
			SourceName: "Mayo Clinic",
			Title:      "Asthma overview",
			URL:        "https://www.mayoclinic.org/asthma",
		}
		assert.Equal(t, "Mayo Clinic. Asthma overview. Retrieved from https://www.mayoclinic.org/asthma", FormatCitation(ev))
	})

	t.Run("community", func(t *testing.T) {
		ev := &core.Evidence{
			Source:     core.SourceCommunity,
			SourceName: "HealthForum",
			Title:      "Living with migraine",
			URL:        "https://forum.example.com/t/42",
		}
		assert.Equal(t, "HealthForum community discussion. Living with migraine. https://forum.example.com/t/42", FormatCitation(ev))
	})

	t.Run("curated omits synthetic url", func(t *testing.T) {
		ev := &core.Evidence{
			Source:     core.SourceCurated,
			SourceName: "Mayo Clinic",
			Title:      "Hypertension",
			URL:        "kb://curated/hypertension",
		}
		citation := FormatCitation(ev)
		assert.Equal(t, "Mayo Clinic clinical reference. Hypertension.", citation)
		assert.NotContains(t, citation, "kb://")
	})
}
