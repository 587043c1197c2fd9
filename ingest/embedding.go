package ingest

import (
	"strings"

	"github.com/poiesic/medcite/core"
)

// EmbeddingText builds the text a record is embedded from: topic, title,
// body, and all facet entries in canonical order. Facet entries matter as
// much as prose here; a record listing "chest pain" under symptoms should
// land near queries about chest pain even if the body never repeats it.
// Reembedding tools use the same builder so vectors stay comparable across
// model upgrades.
func EmbeddingText(ev *core.Evidence) string {
	var b strings.Builder
	b.WriteString(ev.Topic)
	b.WriteString("\n")
	b.WriteString(ev.Title)
	if ev.Body != "" {
		b.WriteString("\n")
		b.WriteString(ev.Body)
	}
	for _, name := range core.FacetNames {
		entries := ev.Facets[name]
		if len(entries) == 0 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(strings.Join(entries, ", "))
	}
	return b.String()
}
